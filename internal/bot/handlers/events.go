package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/edgard/keeperbot/internal/content"
	"github.com/edgard/keeperbot/internal/platform"
)

func (d *Dispatcher) handleMembership(ctx context.Context, m *platform.MembershipChange) {
	log := d.log.With("chat_id", m.Chat.ID, "status", string(m.NewStatus))
	if m.NewStatus != platform.StatusMember && m.NewStatus != platform.StatusAdministrator {
		log.InfoContext(ctx, "Bot membership changed")
		return
	}
	log.InfoContext(ctx, "Bot added to chat", "title", m.Chat.Title, "by", m.From.ID)
	d.sendHTML(ctx, m.Chat.ID, content.GroupWelcome(m.Chat.Title), nil)
}

func (d *Dispatcher) handleJoinRequest(ctx context.Context, jr *platform.JoinRequest) {
	log := d.log.With("chat_id", jr.Chat.ID, "user_id", jr.From.ID)
	if err := d.deps.Client.ApproveJoinRequest(ctx, jr.Chat.ID, jr.From.ID); err != nil {
		log.WarnContext(ctx, "Failed to approve join request", "error", err)
		return
	}
	log.InfoContext(ctx, "Approved join request")
}

// describe replies to non-text content with the details a bot author would
// need to send it back.
func (d *Dispatcher) describe(ctx context.Context, msg *platform.Message) {
	text, ok := Describe(msg.Attachment)
	if !ok {
		return
	}
	d.sendHTML(ctx, msg.Chat.ID, text, nil)
}

// Describe renders an attachment summary. ok is false for kinds the bot does
// not describe.
func Describe(a *platform.Attachment) (string, bool) {
	or := func(s, fallback string) string {
		if s == "" {
			return fallback
		}
		return html.EscapeString(s)
	}
	switch a.Kind {
	case "sticker":
		return fmt.Sprintf("🎭 <b>Sticker!</b>\n\n<b>File ID:</b> <code>%s</code>\n<b>Set:</b> %s\n<b>Emoji:</b> %s",
			html.EscapeString(a.FileID), or(a.SetName, "Unknown"), or(a.Emoji, "none")), true
	case "photo":
		return fmt.Sprintf("📸 <b>Photo!</b>\n\n<b>File ID:</b> <code>%s</code>\n<b>Size:</b> %d×%d",
			html.EscapeString(a.FileID), a.Width, a.Height), true
	case "document":
		return fmt.Sprintf("📁 <b>Document!</b>\n\n<b>Name:</b> %s\n<b>File ID:</b> <code>%s</code>\n<b>MIME:</b> %s",
			or(a.Name, "Unknown"), html.EscapeString(a.FileID), or(a.MimeType, "Unknown")), true
	case "location":
		return fmt.Sprintf("📍 <b>Location!</b>\n\n<b>Lat:</b> %g\n<b>Lon:</b> %g", a.Lat, a.Lon), true
	case "contact":
		return fmt.Sprintf("📞 <b>Contact!</b>\n\n<b>Name:</b> %s\n<b>Phone:</b> <code>%s</code>",
			html.EscapeString(strings.TrimSpace(a.Name)), html.EscapeString(a.Phone)), true
	}
	return "", false
}
