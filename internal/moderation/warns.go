package moderation

import "github.com/edgard/keeperbot/internal/kv"

// WarnLimit is the warning count that triggers an automatic ban.
const WarnLimit = 3

// Warns counts warnings per user per chat. A user never holds WarnLimit
// warnings: the warning that reaches it clears the record.
type Warns struct {
	store kv.Store[kv.ChatKey, int]
}

// NewWarns wraps store. Passing nil uses an in-memory store.
func NewWarns(store kv.Store[kv.ChatKey, int]) *Warns {
	if store == nil {
		store = kv.NewMemory[kv.ChatKey, int]()
	}
	return &Warns{store: store}
}

// Warn adds one warning. When the count reaches WarnLimit the record is
// removed in the same step and banned is true; the caller owns the ban.
func (w *Warns) Warn(chatID, userID int64) (count int, banned bool) {
	w.store.Update(kv.UserKey(chatID, userID), func(old int, _ bool) (int, bool) {
		count = old + 1
		if count >= WarnLimit {
			banned = true
			return 0, false
		}
		return count, true
	})
	return count, banned
}

// Unwarn removes one warning and returns the remaining count. It never goes
// below zero and a zero count is not stored.
func (w *Warns) Unwarn(chatID, userID int64) int {
	n, _ := w.store.Update(kv.UserKey(chatID, userID), func(old int, ok bool) (int, bool) {
		if !ok || old <= 1 {
			return 0, false
		}
		return old - 1, true
	})
	return n
}

// Count returns the current warnings, zero for unseen users.
func (w *Warns) Count(chatID, userID int64) int {
	n, _ := w.store.Get(kv.UserKey(chatID, userID))
	return n
}

// Len reports how many users hold at least one warning across all chats.
func (w *Warns) Len() int { return w.store.Len() }
