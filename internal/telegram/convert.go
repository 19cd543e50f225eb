package telegram

import (
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/keeperbot/internal/platform"
)

// ConvertUpdate maps a go-telegram update onto the platform event model.
// Update kinds the bot does not act on only carry their name in Other.
func ConvertUpdate(update *models.Update) platform.Event {
	ev := platform.Event{ID: update.ID}

	switch {
	case update.Message != nil:
		ev.Message = convertMessage(update.Message)
	case update.CallbackQuery != nil:
		ev.Callback = convertCallback(update.CallbackQuery)
	case update.InlineQuery != nil:
		ev.InlineQuery = &platform.InlineQuery{
			ID:    update.InlineQuery.ID,
			From:  convertUser(update.InlineQuery.From),
			Query: update.InlineQuery.Query,
		}
	case update.MyChatMember != nil:
		ev.Membership = &platform.MembershipChange{
			Chat:      convertChat(update.MyChatMember.Chat),
			From:      convertUser(&update.MyChatMember.From),
			NewStatus: memberStatus(update.MyChatMember.NewChatMember.Type),
		}
	case update.ChatJoinRequest != nil:
		ev.JoinRequest = &platform.JoinRequest{
			Chat: convertChat(update.ChatJoinRequest.Chat),
			From: convertUser(&update.ChatJoinRequest.From),
		}
	default:
		ev.Other = UpdateType(update)
	}
	return ev
}

// UpdateType names the populated payload of an update.
func UpdateType(update *models.Update) string {
	switch {
	case update.Message != nil:
		return "message"
	case update.EditedMessage != nil:
		return "edited_message"
	case update.ChannelPost != nil:
		return "channel_post"
	case update.EditedChannelPost != nil:
		return "edited_channel_post"
	case update.CallbackQuery != nil:
		return "callback_query"
	case update.InlineQuery != nil:
		return "inline_query"
	case update.ChosenInlineResult != nil:
		return "chosen_inline_result"
	case update.Poll != nil:
		return "poll"
	case update.PollAnswer != nil:
		return "poll_answer"
	case update.MyChatMember != nil:
		return "my_chat_member"
	case update.ChatMember != nil:
		return "chat_member"
	case update.ChatJoinRequest != nil:
		return "chat_join_request"
	default:
		return "other"
	}
}

func convertMessage(m *models.Message) *platform.Message {
	msg := &platform.Message{
		ID:         m.ID,
		Chat:       convertChat(m.Chat),
		Text:       m.Text,
		Attachment: convertAttachment(m),
	}
	if m.Date != 0 {
		msg.Date = time.Unix(int64(m.Date), 0)
	}
	if m.From != nil {
		u := convertUser(m.From)
		msg.From = &u
	}
	if m.ReplyToMessage != nil {
		msg.ReplyTo = convertMessage(m.ReplyToMessage)
	}
	return msg
}

func convertAttachment(m *models.Message) *platform.Attachment {
	switch {
	case m.Sticker != nil:
		return &platform.Attachment{
			Kind:    "sticker",
			FileID:  m.Sticker.FileID,
			Emoji:   m.Sticker.Emoji,
			SetName: m.Sticker.SetName,
			Width:   m.Sticker.Width,
			Height:  m.Sticker.Height,
		}
	case len(m.Photo) > 0:
		// Sizes are ordered smallest first.
		p := m.Photo[len(m.Photo)-1]
		return &platform.Attachment{Kind: "photo", FileID: p.FileID, Width: p.Width, Height: p.Height}
	case m.Document != nil:
		return &platform.Attachment{
			Kind:     "document",
			FileID:   m.Document.FileID,
			Name:     m.Document.FileName,
			MimeType: m.Document.MimeType,
		}
	case m.Location != nil:
		return &platform.Attachment{Kind: "location", Lat: m.Location.Latitude, Lon: m.Location.Longitude}
	case m.Contact != nil:
		name := m.Contact.FirstName
		if m.Contact.LastName != "" {
			name += " " + m.Contact.LastName
		}
		return &platform.Attachment{Kind: "contact", Name: name, Phone: m.Contact.PhoneNumber}
	}
	return nil
}

func convertCallback(q *models.CallbackQuery) *platform.CallbackQuery {
	cb := &platform.CallbackQuery{
		ID:   q.ID,
		From: convertUser(&q.From),
		Data: q.Data,
	}
	switch {
	case q.Message.Message != nil:
		cb.ChatID = q.Message.Message.Chat.ID
		cb.MessageID = q.Message.Message.ID
	case q.Message.InaccessibleMessage != nil:
		cb.ChatID = q.Message.InaccessibleMessage.Chat.ID
		cb.MessageID = q.Message.InaccessibleMessage.MessageID
	default:
		// Clicks on inline-mode messages carry no chat.
		cb.ChatID = cb.From.ID
	}
	return cb
}

func convertChat(c models.Chat) platform.Chat {
	return platform.Chat{ID: c.ID, Type: platform.ChatType(c.Type), Title: c.Title, Username: c.Username}
}

func convertUser(u *models.User) platform.User {
	if u == nil {
		return platform.User{}
	}
	return platform.User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		IsBot:     u.IsBot,
		IsPremium: u.IsPremium,
	}
}

func memberStatus(t models.ChatMemberType) platform.MemberStatus {
	switch t {
	case models.ChatMemberTypeOwner:
		return platform.StatusCreator
	case models.ChatMemberTypeAdministrator:
		return platform.StatusAdministrator
	case models.ChatMemberTypeMember:
		return platform.StatusMember
	case models.ChatMemberTypeRestricted:
		return platform.StatusRestricted
	case models.ChatMemberTypeBanned:
		return platform.StatusKicked
	default:
		return platform.StatusLeft
	}
}

func convertMember(m models.ChatMember) platform.ChatMember {
	out := platform.ChatMember{Status: memberStatus(m.Type)}
	switch {
	case m.Owner != nil:
		out.User = convertUser(m.Owner.User)
		out.CustomTitle = m.Owner.CustomTitle
	case m.Administrator != nil:
		out.User = convertUser(&m.Administrator.User)
		out.CustomTitle = m.Administrator.CustomTitle
	case m.Member != nil:
		out.User = convertUser(m.Member.User)
	case m.Restricted != nil:
		out.User = convertUser(m.Restricted.User)
	case m.Left != nil:
		out.User = convertUser(m.Left.User)
	case m.Banned != nil:
		out.User = convertUser(m.Banned.User)
	}
	return out
}

// InlineKeyboard converts a button grid into reply markup. An empty grid
// yields nil so callers can leave the markup unset.
func InlineKeyboard(grid platform.Grid) *models.InlineKeyboardMarkup {
	if len(grid) == 0 {
		return nil
	}
	rows := make([][]models.InlineKeyboardButton, 0, len(grid))
	for _, row := range grid {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			btn := models.InlineKeyboardButton{Text: b.Label}
			if b.Kind == platform.ButtonLink {
				btn.URL = b.Target
			} else {
				btn.CallbackData = b.Target
			}
			buttons = append(buttons, btn)
		}
		rows = append(rows, buttons)
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func chatPermissions(p platform.Permissions) *models.ChatPermissions {
	return &models.ChatPermissions{
		CanSendMessages:       p.SendMessages,
		CanSendAudios:         p.SendAudios,
		CanSendDocuments:      p.SendDocuments,
		CanSendPhotos:         p.SendPhotos,
		CanSendVideos:         p.SendVideos,
		CanSendVideoNotes:     p.SendVideoNotes,
		CanSendVoiceNotes:     p.SendVoiceNotes,
		CanSendPolls:          p.SendPolls,
		CanSendOtherMessages:  p.SendOtherMessages,
		CanAddWebPagePreviews: p.AddWebPagePreviews,
		CanChangeInfo:         p.ChangeInfo,
		CanInviteUsers:        p.InviteUsers,
		CanPinMessages:        p.PinMessages,
		CanManageTopics:       p.ManageTopics,
	}
}
