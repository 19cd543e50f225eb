// Package filters stores per-chat keyword auto-replies.
package filters

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/edgard/keeperbot/internal/kv"
)

// PreviewLen is the number of runes of a response shown by List.
const PreviewLen = 35

// Entry is one filter as shown by List.
type Entry struct {
	Keyword  string
	Response string
	Preview  string
}

// Store maps lowercased keywords to responses, per chat.
type Store struct {
	kv kv.Store[kv.ChatKey, string]
}

// New wraps store. Passing nil uses an in-memory store.
func New(store kv.Store[kv.ChatKey, string]) *Store {
	if store == nil {
		store = kv.NewMemory[kv.ChatKey, string]()
	}
	return &Store{kv: store}
}

// Set adds or replaces the filter for keyword.
func (s *Store) Set(chatID int64, keyword, response string) {
	s.kv.Set(key(chatID, keyword), response)
}

// Delete removes the filter and reports whether it existed.
func (s *Store) Delete(chatID int64, keyword string) bool {
	return s.kv.Remove(key(chatID, keyword))
}

// List returns the chat's filters sorted by keyword.
func (s *Store) List(chatID int64) []Entry {
	found := s.kv.Scan(kv.InChat[string](chatID))
	out := make([]Entry, 0, len(found))
	for _, e := range found {
		out = append(out, Entry{
			Keyword:  e.Key.Key,
			Response: e.Value,
			Preview:  Preview(e.Value),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keyword < out[j].Keyword })
	return out
}

// Match returns the response of the filter whose keyword occurs in text.
// When several match, the longest keyword wins and equal lengths fall back
// to alphabetical order.
func (s *Store) Match(chatID int64, text string) (string, bool) {
	lower := strings.ToLower(text)
	var best kv.Entry[kv.ChatKey, string]
	found := false
	for _, e := range s.kv.Scan(kv.InChat[string](chatID)) {
		kw := e.Key.Key
		if kw == "" || !strings.Contains(lower, kw) {
			continue
		}
		if !found || better(kw, best.Key.Key) {
			best, found = e, true
		}
	}
	return best.Value, found
}

// Len reports the number of filters across all chats.
func (s *Store) Len() int { return s.kv.Len() }

func better(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a < b
}

func key(chatID int64, keyword string) kv.ChatKey {
	return kv.ChatKey{ChatID: chatID, Key: strings.ToLower(keyword)}
}

// Preview shortens s to PreviewLen runes, marking the cut with an ellipsis.
func Preview(s string) string {
	if utf8.RuneCountInString(s) <= PreviewLen {
		return s
	}
	r := []rune(s)
	return string(r[:PreviewLen]) + "…"
}
