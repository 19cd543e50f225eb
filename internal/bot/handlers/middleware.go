// Package handlers routes platform events to the bot's command, callback,
// inline and membership handlers.
package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/edgard/keeperbot/internal/platform"
)

const unauthorizedMsg = "🚫 Access denied. This command is restricted to the bot administrator."

// AdminOnly creates a middleware that checks if the message sender is the configured admin user.
// If not, it sends a "Not Authorized" message and stops processing by returning early.
func AdminOnly(deps HandlerDeps) Middleware {
	return func(next CommandFunc) CommandFunc {
		return func(ctx context.Context, req *Request) error {
			userID := req.Sender().ID
			if deps.Config.IsAdmin(userID) {
				return next(ctx, req)
			}

			log := deps.Logger.With("middleware", "AdminOnly")
			log.WarnContext(ctx, "Unauthorized access attempt", "user_id", userID, "chat_id", req.ChatID(), "command", req.Command.String())

			_, err := deps.Client.SendMessage(ctx, req.ChatID(), unauthorizedMsg, platform.SendOptions{})
			if err != nil {
				log.ErrorContext(ctx, "Failed to send unauthorized message", "error", err, "chat_id", req.ChatID())
			}
			return nil
		}
	}
}

// recoverPanic turns a handler panic into an error log so one bad update
// cannot take the process down.
func recoverPanic(ctx context.Context, log *slog.Logger, eventID int64) {
	if r := recover(); r != nil {
		log.ErrorContext(ctx, "Recovered from handler panic",
			"update_id", eventID,
			"panic", fmt.Sprint(r),
			"stack", string(debug.Stack()))
	}
}
