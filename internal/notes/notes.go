// Package notes stores named per-chat notes, recalled by /get or #name.
package notes

import (
	"sort"
	"strings"

	"github.com/edgard/keeperbot/internal/kv"
)

// Store maps lowercased note names to content, per chat.
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

func (s *Store) Save(chatID int64, name, content string) {
	s.kv.Set(key(chatID, name), content)
}

// Delete removes the note and reports whether it existed.
func (s *Store) Delete(chatID int64, name string) bool {
	return s.kv.Remove(key(chatID, name))
}

// List returns the chat's note names in order.
func (s *Store) List(chatID int64) []string {
	found := s.kv.Scan(kv.InChat[string](chatID))
	names := make([]string, 0, len(found))
	for _, e := range found {
		names = append(names, e.Key.Key)
	}
	sort.Strings(names)
	return names
}

// Get looks a note up by exact name. Leading '#' characters are ignored.
func (s *Store) Get(chatID int64, name string) (string, bool) {
	name = strings.TrimLeft(name, "#")
	if name == "" {
		return "", false
	}
	return s.kv.Get(key(chatID, name))
}

// Hashtag recalls a note when text starts with "#name". Only the first
// whitespace-separated token is considered.
func (s *Store) Hashtag(chatID int64, text string) (string, bool) {
	if !strings.HasPrefix(text, "#") {
		return "", false
	}
	fields := strings.Fields(text)
	name := strings.TrimLeft(fields[0], "#")
	if name == "" {
		return "", false
	}
	return s.kv.Get(key(chatID, name))
}

// Len reports the number of notes across all chats.
func (s *Store) Len() int { return s.kv.Len() }

func key(chatID int64, name string) kv.ChatKey {
	return kv.ChatKey{ChatID: chatID, Key: strings.ToLower(name)}
}
