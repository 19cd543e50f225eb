package kv_test

import (
	"sync"
	"testing"

	"github.com/edgard/keeperbot/internal/kv"
)

func TestMemoryBasicOperations(t *testing.T) {
	t.Parallel()

	s := kv.NewMemory[kv.ChatKey, string]()
	k := kv.ChatKey{ChatID: 100, Key: "rules"}

	if _, ok := s.Get(k); ok {
		t.Fatal("expected empty store to miss")
	}

	s.Set(k, "be kind")
	s.Set(k, "be nice")
	if v, ok := s.Get(k); !ok || v != "be nice" {
		t.Fatalf("Get() = %q, %v; want overwritten value", v, ok)
	}

	if !s.Remove(k) {
		t.Fatal("Remove() reported absent key")
	}
	if s.Remove(k) {
		t.Fatal("second Remove() reported present key")
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}
}

func TestMemoryChatIsolation(t *testing.T) {
	t.Parallel()

	s := kv.NewMemory[kv.ChatKey, string]()
	s.Set(kv.ChatKey{ChatID: 100, Key: "a"}, "one")
	s.Set(kv.ChatKey{ChatID: 100, Key: "b"}, "two")
	s.Set(kv.ChatKey{ChatID: 200, Key: "a"}, "other")

	if _, ok := s.Get(kv.ChatKey{ChatID: 200, Key: "b"}); ok {
		t.Fatal("key from chat 100 visible in chat 200")
	}

	got := s.Scan(kv.InChat[string](100))
	if len(got) != 2 {
		t.Fatalf("Scan(chat 100) returned %d entries, want 2", len(got))
	}
	for _, e := range got {
		if e.Key.ChatID != 100 {
			t.Errorf("Scan leaked entry from chat %d", e.Key.ChatID)
		}
	}
}

func TestMemoryUpdate(t *testing.T) {
	t.Parallel()

	s := kv.NewMemory[kv.ChatKey, int]()
	k := kv.UserKey(1, 42)

	incr := func(old int, _ bool) (int, bool) { return old + 1, true }

	if v, ok := s.Update(k, incr); !ok || v != 1 {
		t.Fatalf("first Update() = %d, %v", v, ok)
	}
	if v, _ := s.Update(k, incr); v != 2 {
		t.Fatalf("second Update() = %d, want 2", v)
	}

	v, ok := s.Update(k, func(int, bool) (int, bool) { return 0, false })
	if ok || v != 0 {
		t.Fatalf("removing Update() = %d, %v", v, ok)
	}
	if _, ok := s.Get(k); ok {
		t.Fatal("key still present after removing Update()")
	}
}

func TestMemoryConcurrentUpdateLosesNothing(t *testing.T) {
	t.Parallel()

	s := kv.NewMemory[kv.ChatKey, int]()
	k := kv.UserKey(1, 1)

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			s.Update(k, func(old int, _ bool) (int, bool) { return old + 1, true })
		}()
	}
	wg.Wait()

	if v, _ := s.Get(k); v != workers {
		t.Fatalf("after %d concurrent increments got %d", workers, v)
	}
}

func TestUserKey(t *testing.T) {
	t.Parallel()

	k := kv.UserKey(-100123, 987654321)
	if k.ChatID != -100123 || k.Key != "987654321" {
		t.Fatalf("UserKey() = %+v", k)
	}
}
