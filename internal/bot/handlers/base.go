package handlers

import (
	"context"

	"github.com/edgard/keeperbot/internal/platform"
)

// base carries the dependencies shared by every area handler.
type base struct {
	deps HandlerDeps
}

// reply sends an HTML message to the request's chat. Send failures are
// logged; there is nowhere else to report them.
func (b base) reply(ctx context.Context, req *Request, text string, kb platform.Grid) {
	b.send(ctx, req.ChatID(), text, kb)
}

func (b base) send(ctx context.Context, chatID int64, text string, kb platform.Grid) {
	if _, err := b.deps.Client.SendMessage(ctx, chatID, text, platform.SendOptions{HTML: true, Keyboard: kb}); err != nil {
		b.deps.Logger.ErrorContext(ctx, "Failed to send message", "error", err, "chat_id", chatID)
	}
}

// show is reply for pages that can also be opened from a menu button. A
// failed edit falls back to a new message.
func (b base) show(ctx context.Context, req *Request, text string, kb platform.Grid) {
	if req.EditID != 0 {
		err := b.deps.Client.EditMessage(ctx, req.ChatID(), req.EditID, text, platform.SendOptions{HTML: true, Keyboard: kb})
		if err == nil {
			return
		}
		b.deps.Logger.DebugContext(ctx, "Edit failed, sending new message", "error", err, "chat_id", req.ChatID())
	}
	b.reply(ctx, req, text, kb)
}
