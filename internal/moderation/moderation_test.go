package moderation_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/edgard/keeperbot/internal/kv"
	"github.com/edgard/keeperbot/internal/moderation"
	"github.com/edgard/keeperbot/internal/platform"
	"github.com/edgard/keeperbot/internal/platform/platformtest"
)

func TestParseExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		token    string
		expected time.Duration
		ok       bool
	}{
		{name: "days", token: "7d", expected: 7 * 24 * time.Hour, ok: true},
		{name: "hours", token: "2h", expected: 2 * time.Hour, ok: true},
		{name: "minutes", token: "30m", expected: 30 * time.Minute, ok: true},
		{name: "zero", token: "0m", expected: 0, ok: true},
		{name: "large", token: "100000d", expected: 100000 * 24 * time.Hour, ok: true},
		{name: "empty", token: ""},
		{name: "letters", token: "abc"},
		{name: "unit only", token: "d"},
		{name: "unknown unit", token: "5s"},
		{name: "uppercase unit", token: "5D"},
		{name: "negative", token: "-5m"},
		{name: "plus sign", token: "+5m"},
		{name: "fraction", token: "1.5h"},
		{name: "overflow", token: "999999999999999999d"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := moderation.ParseExpiry(tc.token, now)
			if ok != tc.ok {
				t.Fatalf("ParseExpiry(%q) ok = %v, want %v", tc.token, ok, tc.ok)
			}
			if !ok {
				if !got.IsZero() {
					t.Errorf("ParseExpiry(%q) returned %v on failure", tc.token, got)
				}
				return
			}
			if want := now.Add(tc.expected); !got.Equal(want) {
				t.Errorf("ParseExpiry(%q) = %v, want %v", tc.token, got, want)
			}
		})
	}
}

func TestWarnThreshold(t *testing.T) {
	t.Parallel()

	w := moderation.NewWarns(nil)

	for i, want := range []int{1, 2} {
		count, banned := w.Warn(10, 20)
		if count != want || banned {
			t.Fatalf("warn #%d = (%d, %v), want (%d, false)", i+1, count, banned, want)
		}
	}

	count, banned := w.Warn(10, 20)
	if count != moderation.WarnLimit || !banned {
		t.Fatalf("third warn = (%d, %v), want (%d, true)", count, banned, moderation.WarnLimit)
	}
	if got := w.Count(10, 20); got != 0 {
		t.Fatalf("Count() after threshold = %d, want 0", got)
	}
	if w.Len() != 0 {
		t.Fatalf("store still holds %d records", w.Len())
	}

	if count, banned := w.Warn(10, 20); count != 1 || banned {
		t.Fatalf("warn after reset = (%d, %v), want (1, false)", count, banned)
	}
}

func TestUnwarnFloor(t *testing.T) {
	t.Parallel()

	w := moderation.NewWarns(kv.NewMemory[kv.ChatKey, int]())

	if got := w.Unwarn(1, 2); got != 0 {
		t.Fatalf("Unwarn() on unseen user = %d, want 0", got)
	}
	if w.Len() != 0 {
		t.Fatal("Unwarn() materialized a zero record")
	}

	w.Warn(1, 2)
	w.Warn(1, 2)
	if got := w.Unwarn(1, 2); got != 1 {
		t.Fatalf("Unwarn() = %d, want 1", got)
	}
	if got := w.Unwarn(1, 2); got != 0 {
		t.Fatalf("Unwarn() = %d, want 0", got)
	}
	if got := w.Unwarn(1, 2); got != 0 {
		t.Fatalf("Unwarn() below zero = %d", got)
	}
}

func TestWarnsChatIsolation(t *testing.T) {
	t.Parallel()

	w := moderation.NewWarns(nil)
	w.Warn(100, 5)
	if got := w.Count(200, 5); got != 0 {
		t.Fatalf("warning leaked across chats: %d", got)
	}
	if got := w.Count(100, 5); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}
}

func TestConcurrentWarnsBanExactlyOnce(t *testing.T) {
	t.Parallel()

	w := moderation.NewWarns(nil)

	const admins = 30
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		bans int
	)
	wg.Add(admins)
	for range admins {
		go func() {
			defer wg.Done()
			if _, banned := w.Warn(1, 1); banned {
				mu.Lock()
				bans++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if bans != admins/moderation.WarnLimit {
		t.Fatalf("got %d bans from %d warns, want %d", bans, admins, admins/moderation.WarnLimit)
	}
}

func newEngine() (*moderation.Engine, *platformtest.Client) {
	client := platformtest.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return moderation.NewEngine(client, logger), client
}

func TestKick(t *testing.T) {
	t.Parallel()

	t.Run("ban then unban", func(t *testing.T) {
		t.Parallel()
		e, client := newEngine()
		if err := e.Kick(context.Background(), 1, 2); err != nil {
			t.Fatalf("Kick() error = %v", err)
		}
		if got := client.Methods(); !reflect.DeepEqual(got, []string{"BanMember", "UnbanMember"}) {
			t.Fatalf("calls = %v", got)
		}
	})

	t.Run("failed ban skips unban", func(t *testing.T) {
		t.Parallel()
		e, client := newEngine()
		client.Fail["BanMember"] = platformtest.ErrRejected
		err := e.Kick(context.Background(), 1, 2)
		var apiErr *platform.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("Kick() error = %v, want *platform.APIError", err)
		}
		if got := client.Methods(); !reflect.DeepEqual(got, []string{"BanMember"}) {
			t.Fatalf("calls = %v, want only BanMember", got)
		}
	})
}

func TestBanRevokesWithExpiry(t *testing.T) {
	t.Parallel()

	e, client := newEngine()
	until := time.Now().Add(time.Hour)
	if err := e.Ban(context.Background(), 1, 2, until); err != nil {
		t.Fatal(err)
	}
	calls := client.Find("BanMember")
	if len(calls) != 1 || !calls[0].Revoke || !calls[0].Until.Equal(until) {
		t.Fatalf("BanMember calls = %+v", calls)
	}
}

func TestMuteAndUnmutePermissions(t *testing.T) {
	t.Parallel()

	e, client := newEngine()
	ctx := context.Background()
	if err := e.Mute(ctx, 1, 2, time.Time{}); err != nil {
		t.Fatal(err)
	}
	if err := e.Unmute(ctx, 1, 2); err != nil {
		t.Fatal(err)
	}

	calls := client.Find("RestrictMember")
	if len(calls) != 2 {
		t.Fatalf("got %d restrict calls", len(calls))
	}
	if calls[0].Perms != moderation.Muted || calls[0].Perms.SendMessages {
		t.Errorf("mute applied %+v", calls[0].Perms)
	}
	if !calls[1].Perms.SendMessages || calls[1].Perms.ChangeInfo || calls[1].Perms.PinMessages {
		t.Errorf("unmute applied %+v", calls[1].Perms)
	}
}

func TestReadOnlyToggle(t *testing.T) {
	t.Parallel()

	e, client := newEngine()
	ctx := context.Background()
	_ = e.ReadOnly(ctx, 1, true)
	_ = e.ReadOnly(ctx, 1, false)

	calls := client.Find("SetChatPermissions")
	if len(calls) != 2 || calls[0].Perms.SendMessages || !calls[1].Perms.SendMessages {
		t.Fatalf("SetChatPermissions calls = %+v", calls)
	}
}
