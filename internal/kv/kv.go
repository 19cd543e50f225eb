// Package kv provides the concurrent key/value abstraction shared by the
// warning, filter and note stores.
package kv

import (
	"strconv"
	"sync"
)

// ChatKey scopes a string key to a single chat. All per-chat state is
// addressed this way.
type ChatKey struct {
	ChatID int64
	Key    string
}

// UserKey builds the ChatKey used for per-user state inside a chat.
func UserKey(chatID, userID int64) ChatKey {
	return ChatKey{ChatID: chatID, Key: strconv.FormatInt(userID, 10)}
}

// InChat returns a Scan predicate that keeps entries of one chat.
func InChat[V any](chatID int64) func(ChatKey, V) bool {
	return func(k ChatKey, _ V) bool { return k.ChatID == chatID }
}

// Entry is a key/value pair returned by Scan.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// UpdateFunc receives the current value (ok reports presence) and returns the
// new value. Returning keep=false removes the key.
type UpdateFunc[V any] func(old V, ok bool) (next V, keep bool)

// Store is a concurrent map. Every method is atomic with respect to the
// others; absent keys are reported through the bool result, never an error.
type Store[K comparable, V any] interface {
	Get(k K) (V, bool)
	Set(k K, v V)
	Remove(k K) bool
	Scan(pred func(K, V) bool) []Entry[K, V]
	// Update performs a read-modify-write under a single critical section and
	// returns the stored value (zero if removed) and whether the key remains.
	Update(k K, fn UpdateFunc[V]) (V, bool)
	Len() int
}

// Memory is the default Store: a map behind one mutex. Values are copied in
// and out so no caller ever holds the lock across other work.
type Memory[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]V
}

// NewMemory returns an empty in-memory store.
func NewMemory[K comparable, V any]() *Memory[K, V] {
	return &Memory[K, V]{m: make(map[K]V)}
}

func (s *Memory[K, V]) Get(k K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[k]
	return v, ok
}

func (s *Memory[K, V]) Set(k K, v V) {
	s.mu.Lock()
	s.m[k] = v
	s.mu.Unlock()
}

func (s *Memory[K, V]) Remove(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[k]; !ok {
		return false
	}
	delete(s.m, k)
	return true
}

// Scan returns matching entries in unspecified order.
func (s *Memory[K, V]) Scan(pred func(K, V) bool) []Entry[K, V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry[K, V]
	for k, v := range s.m {
		if pred == nil || pred(k, v) {
			out = append(out, Entry[K, V]{Key: k, Value: v})
		}
	}
	return out
}

func (s *Memory[K, V]) Update(k K, fn UpdateFunc[V]) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.m[k]
	next, keep := fn(old, ok)
	if !keep {
		delete(s.m, k)
		var zero V
		return zero, false
	}
	s.m[k] = next
	return next, true
}

func (s *Memory[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
