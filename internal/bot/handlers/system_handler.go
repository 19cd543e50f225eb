package handlers

import (
	"context"
	"fmt"

	"github.com/edgard/keeperbot/internal/content"
)

// systemHandler runs the bot administration commands. All of them sit
// behind AdminOnly.
type systemHandler struct {
	base
}

func (h systemHandler) setCommands(ctx context.Context, req *Request) error {
	cmds := BotCommands()
	if err := h.deps.Client.SetCommands(ctx, cmds); err != nil {
		return failed("Set commands", err, "")
	}
	req.log.InfoContext(ctx, "Registered bot commands", "count", len(cmds))
	h.reply(ctx, req, fmt.Sprintf("⚙️ <b>Commands registered!</b>\n\n%d commands are now in the menu.", len(cmds)), content.MenuOnly())
	return nil
}

func (h systemHandler) deleteCommands(ctx context.Context, req *Request) error {
	if err := h.deps.Client.DeleteCommands(ctx); err != nil {
		return failed("Delete commands", err, "")
	}
	req.log.InfoContext(ctx, "Deleted bot commands")
	h.reply(ctx, req, "🗑 <b>Commands deleted.</b>\n\nUse <code>/setcommands</code> to register them again.", content.MenuOnly())
	return nil
}

func (h systemHandler) deleteWebhook(ctx context.Context, req *Request) error {
	if err := h.deps.Client.DeleteWebhook(ctx); err != nil {
		return failed("Delete webhook", err, "")
	}
	req.log.InfoContext(ctx, "Deleted webhook")
	text := "🔌 <b>Webhook removed.</b>"
	if h.deps.Config != nil && h.deps.Config.IsWebhook() {
		text += "\n\n<i>This instance runs in webhook mode and will stop receiving updates until restarted.</i>"
	}
	h.reply(ctx, req, text, content.MenuOnly())
	return nil
}
