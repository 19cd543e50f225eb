package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/edgard/keeperbot/internal/content"
	"github.com/edgard/keeperbot/internal/moderation"
)

const adminHintBan = "Bot must be admin with ban rights."

// moderationHandler runs the member moderation commands.
type moderationHandler struct {
	base
}

func (h moderationHandler) help(ctx context.Context, req *Request) error {
	h.reply(ctx, req, content.ModHelp, content.MenuOnly())
	return nil
}

// expiry reads an optional duration argument. An unparseable or missing
// token means a permanent action.
func expiry(args []string) (time.Time, string) {
	if len(args) == 0 {
		return time.Time{}, "<b>permanently</b>"
	}
	until, ok := moderation.ParseExpiry(args[0], time.Now())
	if !ok {
		return time.Time{}, "<b>permanently</b>"
	}
	return until, "for <b>" + html.EscapeString(args[0]) + "</b>"
}

func (h moderationHandler) ban(ctx context.Context, req *Request) error {
	t, args, ok := ResolveTarget(req.Msg, req.Args)
	if !ok {
		return usage("Reply to a message with <code>/ban</code> or <code>/ban 7d</code>")
	}
	until, label := expiry(args)
	if err := h.deps.Moderation.Ban(ctx, req.ChatID(), t.ID, until); err != nil {
		return failed("Ban", err, adminHintBan)
	}
	h.reply(ctx, req, fmt.Sprintf("🔨 <b>Banned</b> %s %s\n\n<i>Messages revoked.</i>",
		content.DisplayLink(t.ID, t.Name), label), content.MenuOnly())
	return nil
}

func (h moderationHandler) unban(ctx context.Context, req *Request) error {
	t, _, ok := ResolveTarget(req.Msg, req.Args)
	if !ok {
		return usage("Reply to a message with <code>/unban</code>")
	}
	if err := h.deps.Moderation.Unban(ctx, req.ChatID(), t.ID); err != nil {
		return failed("Unban", err, "")
	}
	h.reply(ctx, req, fmt.Sprintf("✅ <b>Unbanned</b> %s\n\n<i>User can now rejoin via invite link.</i>",
		content.DisplayLink(t.ID, t.Name)), content.MenuOnly())
	return nil
}

func (h moderationHandler) kick(ctx context.Context, req *Request) error {
	t, _, ok := ResolveTarget(req.Msg, req.Args)
	if !ok {
		return usage("Reply to a message with <code>/kick</code>")
	}
	if err := h.deps.Moderation.Kick(ctx, req.ChatID(), t.ID); err != nil {
		return failed("Kick", err, adminHintBan)
	}
	h.reply(ctx, req, fmt.Sprintf("👢 <b>Kicked</b> %s\n\n<i>They were removed but can rejoin via invite link.</i>",
		content.DisplayLink(t.ID, t.Name)), content.MenuOnly())
	return nil
}

func (h moderationHandler) mute(ctx context.Context, req *Request) error {
	t, args, ok := ResolveTarget(req.Msg, req.Args)
	if !ok {
		return usage("Reply to a message with <code>/mute</code> or <code>/mute 1h</code>")
	}
	until, label := expiry(args)
	if err := h.deps.Moderation.Mute(ctx, req.ChatID(), t.ID, until); err != nil {
		return failed("Mute", err, "Bot must be admin with restrict rights.")
	}
	h.reply(ctx, req, fmt.Sprintf("🔇 <b>Muted</b> %s %s\n\n<i>All send permissions removed.</i>",
		content.DisplayLink(t.ID, t.Name), label), content.MenuOnly())
	return nil
}

func (h moderationHandler) unmute(ctx context.Context, req *Request) error {
	t, _, ok := ResolveTarget(req.Msg, req.Args)
	if !ok {
		return usage("Reply to a message with <code>/unmute</code>")
	}
	if err := h.deps.Moderation.Unmute(ctx, req.ChatID(), t.ID); err != nil {
		return failed("Unmute", err, "")
	}
	h.reply(ctx, req, fmt.Sprintf("🔊 <b>Unmuted</b> %s\n\n<i>Standard permissions restored.</i>",
		content.DisplayLink(t.ID, t.Name)), content.MenuOnly())
	return nil
}

// warnBar draws one marker per held warning and a placeholder for the rest.
func warnBar(count int) string {
	count = max(0, min(count, moderation.WarnLimit))
	return strings.Repeat("⚠️", count) + strings.Repeat("▪️", moderation.WarnLimit-count)
}

func (h moderationHandler) warn(ctx context.Context, req *Request) error {
	t, _, ok := ResolveTarget(req.Msg, req.Args)
	if !ok {
		return usage("Reply to a message with <code>/warn</code>")
	}
	link := content.DisplayLink(t.ID, t.Name)

	count, banned := h.deps.Warns.Warn(req.ChatID(), t.ID)
	if !banned {
		h.reply(ctx, req, fmt.Sprintf("⚠️ <b>Warning %d/%d</b> issued to %s\n\n%s\n\n<i>%d warnings = auto-ban.</i>",
			count, moderation.WarnLimit, link, warnBar(count), moderation.WarnLimit), content.MenuOnly())
		return nil
	}

	// The counter is already cleared; a failed ban does not restore it.
	if err := h.deps.Moderation.AutoBan(ctx, req.ChatID(), t.ID); err != nil {
		return failed("Auto-ban", err, fmt.Sprintf("%s reached %d/%d warnings but could not be banned.",
			link, moderation.WarnLimit, moderation.WarnLimit))
	}
	h.reply(ctx, req, fmt.Sprintf("🔨 %s reached <b>%d/%d warnings</b> and was automatically <b>banned</b>.",
		link, moderation.WarnLimit, moderation.WarnLimit), content.MenuOnly())
	return nil
}

func (h moderationHandler) unwarn(ctx context.Context, req *Request) error {
	t, _, ok := ResolveTarget(req.Msg, req.Args)
	if !ok {
		return usage("Reply to a message with <code>/unwarn</code>")
	}
	left := h.deps.Warns.Unwarn(req.ChatID(), t.ID)
	h.reply(ctx, req, fmt.Sprintf("✅ Warning removed from %s\n\nCurrent warnings: <b>%d/%d</b>",
		content.DisplayLink(t.ID, t.Name), left, moderation.WarnLimit), content.MenuOnly())
	return nil
}

func (h moderationHandler) warns(ctx context.Context, req *Request) error {
	t, _, ok := ResolveTarget(req.Msg, req.Args)
	if !ok {
		return usage("Reply to a message with <code>/warns</code>")
	}
	n := h.deps.Warns.Count(req.ChatID(), t.ID)
	h.reply(ctx, req, fmt.Sprintf("📋 <b>Warnings for</b> %s: <b>%d/%d</b>\n\n%s",
		content.DisplayLink(t.ID, t.Name), n, moderation.WarnLimit, warnBar(n)), content.MenuOnly())
	return nil
}

// delete removes the command itself and the message it replies to. Success
// is silent.
func (h moderationHandler) delete(ctx context.Context, req *Request) error {
	if req.Msg.ReplyTo == nil {
		return usage("Reply to a message with <code>/delete</code>")
	}
	if err := h.deps.Moderation.Delete(ctx, req.ChatID(), req.Msg.ID); err != nil {
		req.log.WarnContext(ctx, "Failed to delete command message", "error", err)
	}
	if err := h.deps.Moderation.Delete(ctx, req.ChatID(), req.Msg.ReplyTo.ID); err != nil {
		return failed("Delete", err, "")
	}
	return nil
}

func (h moderationHandler) pin(ctx context.Context, req *Request) error {
	if req.Msg.ReplyTo == nil {
		return usage("Reply to a message with <code>/pin</code>")
	}
	if err := h.deps.Moderation.Pin(ctx, req.ChatID(), req.Msg.ReplyTo.ID); err != nil {
		return failed("Pin", err, "Bot must be admin with pin rights.")
	}
	h.reply(ctx, req, "📌 <b>Message pinned!</b>", content.MenuOnly())
	return nil
}

func (h moderationHandler) unpin(ctx context.Context, req *Request) error {
	if err := h.deps.Moderation.Unpin(ctx, req.ChatID()); err != nil {
		return failed("Unpin", err, "")
	}
	h.reply(ctx, req, "📌 <b>Message unpinned!</b>", content.MenuOnly())
	return nil
}

func (h moderationHandler) readOnly(on bool) CommandFunc {
	return func(ctx context.Context, req *Request) error {
		if err := h.deps.Moderation.ReadOnly(ctx, req.ChatID(), on); err != nil {
			return failed("Read-only", err, "Bot must be admin with restrict rights.")
		}
		text := "🔊 <b>Read-only mode OFF</b>\n\nAll members can send messages again."
		if on {
			text = "🔇 <b>Read-only mode ON</b>\n\nOnly admins can send messages.\nUse <code>/unro</code> to restore."
		}
		h.reply(ctx, req, text, content.MenuOnly())
		return nil
	}
}
