package telegram_test

import (
	"testing"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/keeperbot/internal/platform"
	"github.com/edgard/keeperbot/internal/telegram"
)

func TestConvertMessage(t *testing.T) {
	t.Parallel()

	update := &models.Update{
		ID: 7,
		Message: &models.Message{
			ID:   11,
			Date: 1700000000,
			Chat: models.Chat{ID: -100, Type: models.ChatTypeSupergroup, Title: "Group"},
			From: &models.User{ID: 5, FirstName: "Ann", Username: "ann"},
			Text: "/warn",
			ReplyToMessage: &models.Message{
				ID:   10,
				Chat: models.Chat{ID: -100, Type: models.ChatTypeSupergroup},
				From: &models.User{ID: 6, FirstName: "Bob"},
			},
		},
	}

	ev := telegram.ConvertUpdate(update)
	if ev.ID != 7 || ev.Message == nil {
		t.Fatalf("ConvertUpdate() = %+v", ev)
	}
	msg := ev.Message
	if msg.ID != 11 || msg.Text != "/warn" || msg.Chat.Type != platform.ChatSupergroup || msg.Chat.Title != "Group" {
		t.Errorf("message = %+v", msg)
	}
	if !msg.Date.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("date = %v", msg.Date)
	}
	if msg.From == nil || msg.From.ID != 5 || msg.From.Username != "ann" {
		t.Errorf("from = %+v", msg.From)
	}
	if msg.ReplyTo == nil || msg.ReplyTo.From == nil || msg.ReplyTo.From.ID != 6 {
		t.Errorf("reply = %+v", msg.ReplyTo)
	}
	if msg.Attachment != nil {
		t.Errorf("text message has attachment %+v", msg.Attachment)
	}
}

func TestConvertAttachments(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		msg      models.Message
		expected platform.Attachment
	}{
		{
			name:     "largest photo size",
			msg:      models.Message{Photo: []models.PhotoSize{{FileID: "small", Width: 90, Height: 90}, {FileID: "big", Width: 800, Height: 600}}},
			expected: platform.Attachment{Kind: "photo", FileID: "big", Width: 800, Height: 600},
		},
		{
			name:     "document",
			msg:      models.Message{Document: &models.Document{FileID: "D", FileName: "a.pdf", MimeType: "application/pdf"}},
			expected: platform.Attachment{Kind: "document", FileID: "D", Name: "a.pdf", MimeType: "application/pdf"},
		},
		{
			name:     "location",
			msg:      models.Message{Location: &models.Location{Latitude: 1.5, Longitude: 2.5}},
			expected: platform.Attachment{Kind: "location", Lat: 1.5, Lon: 2.5},
		},
		{
			name:     "contact",
			msg:      models.Message{Contact: &models.Contact{PhoneNumber: "+1", FirstName: "Ann", LastName: "Lee"}},
			expected: platform.Attachment{Kind: "contact", Name: "Ann Lee", Phone: "+1"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ev := telegram.ConvertUpdate(&models.Update{Message: &tc.msg})
			if ev.Message.Attachment == nil || *ev.Message.Attachment != tc.expected {
				t.Errorf("attachment = %+v, want %+v", ev.Message.Attachment, tc.expected)
			}
		})
	}
}

func TestConvertCallback(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		message   models.MaybeInaccessibleMessage
		chatID    int64
		messageID int
	}{
		{
			name: "accessible",
			message: models.MaybeInaccessibleMessage{
				Type:    models.MaybeInaccessibleMessageTypeMessage,
				Message: &models.Message{ID: 3, Chat: models.Chat{ID: 9}},
			},
			chatID: 9, messageID: 3,
		},
		{
			name: "inaccessible",
			message: models.MaybeInaccessibleMessage{
				Type:                models.MaybeInaccessibleMessageTypeInaccessibleMessage,
				InaccessibleMessage: &models.InaccessibleMessage{Chat: models.Chat{ID: 8}, MessageID: 4},
			},
			chatID: 8, messageID: 4,
		},
		{name: "inline", chatID: 5},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ev := telegram.ConvertUpdate(&models.Update{CallbackQuery: &models.CallbackQuery{
				ID:      "q",
				From:    models.User{ID: 5, FirstName: "Ann"},
				Message: tc.message,
				Data:    "dice",
			}})
			cb := ev.Callback
			if cb == nil || cb.ID != "q" || cb.Data != "dice" || cb.From.ID != 5 {
				t.Fatalf("callback = %+v", cb)
			}
			if cb.ChatID != tc.chatID || cb.MessageID != tc.messageID {
				t.Errorf("chat/message = %d/%d, want %d/%d", cb.ChatID, cb.MessageID, tc.chatID, tc.messageID)
			}
		})
	}
}

func TestConvertOtherKinds(t *testing.T) {
	t.Parallel()

	ev := telegram.ConvertUpdate(&models.Update{InlineQuery: &models.InlineQuery{ID: "iq", From: &models.User{ID: 2}, Query: "go"}})
	if ev.InlineQuery == nil || ev.InlineQuery.Query != "go" || ev.InlineQuery.From.ID != 2 {
		t.Errorf("inline = %+v", ev.InlineQuery)
	}

	ev = telegram.ConvertUpdate(&models.Update{ChatJoinRequest: &models.ChatJoinRequest{
		Chat: models.Chat{ID: -1, Type: models.ChatTypeGroup},
		From: models.User{ID: 3},
	}})
	if ev.JoinRequest == nil || ev.JoinRequest.Chat.ID != -1 || ev.JoinRequest.From.ID != 3 {
		t.Errorf("join request = %+v", ev.JoinRequest)
	}

	ev = telegram.ConvertUpdate(&models.Update{MyChatMember: &models.ChatMemberUpdated{
		Chat:          models.Chat{ID: -2, Type: models.ChatTypeSupergroup},
		From:          models.User{ID: 4, FirstName: "Owner"},
		NewChatMember: models.ChatMember{Type: models.ChatMemberTypeAdministrator},
	}})
	if m := ev.Membership; m == nil || m.Chat.ID != -2 || m.From.ID != 4 || m.NewStatus != platform.StatusAdministrator {
		t.Errorf("membership = %+v", ev.Membership)
	}

	ev = telegram.ConvertUpdate(&models.Update{EditedMessage: &models.Message{ID: 1}})
	if ev.Other != "edited_message" || ev.Message != nil {
		t.Errorf("edited message = %+v", ev)
	}

	if got := telegram.UpdateType(&models.Update{}); got != "other" {
		t.Errorf("UpdateType(empty) = %q", got)
	}
}

func TestInlineKeyboard(t *testing.T) {
	t.Parallel()

	if kb := telegram.InlineKeyboard(nil); kb != nil {
		t.Errorf("InlineKeyboard(nil) = %+v, want nil", kb)
	}

	kb := telegram.InlineKeyboard(platform.Grid{
		{platform.CallbackButton("Menu", "main_menu"), platform.LinkButton("Docs", "https://go.dev")},
		{platform.CallbackButton("Back", "api_menu")},
	})
	if kb == nil || len(kb.InlineKeyboard) != 2 || len(kb.InlineKeyboard[0]) != 2 {
		t.Fatalf("InlineKeyboard() = %+v", kb)
	}
	first, link := kb.InlineKeyboard[0][0], kb.InlineKeyboard[0][1]
	if first.Text != "Menu" || first.CallbackData != "main_menu" || first.URL != "" {
		t.Errorf("callback button = %+v", first)
	}
	if link.Text != "Docs" || link.URL != "https://go.dev" || link.CallbackData != "" {
		t.Errorf("link button = %+v", link)
	}
}
