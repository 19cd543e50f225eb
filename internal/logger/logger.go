// Package logger provides structured logging for keeperbot.
// It uses Go's slog package with configurable levels and formats.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"

	"github.com/edgard/keeperbot/internal/telegram"
)

const previewLen = 50

// NewLogger creates a new slog Logger writing to stdout with the specified
// level and format, and makes it the default logger.
func NewLogger(levelStr string, jsonOutput bool) *slog.Logger {
	logger := New(os.Stdout, levelStr, jsonOutput)
	slog.SetDefault(logger)
	return logger
}

// New creates a logger writing to w. If jsonOutput is true, logs are
// formatted as JSON, otherwise as text.
func New(w io.Writer, levelStr string, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(levelStr)}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Middleware creates a logging middleware for the Telegram bot. Every update
// gets a request_id that ties its start and finish lines together.
func Middleware(log *slog.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			startTime := time.Now()

			logEntry := log.With(
				"request_id", uuid.NewString(),
				"update_id", update.ID,
				"update_type", telegram.UpdateType(update),
			)
			logEntry = logEntry.With(updateAttrs(update)...)

			logEntry.InfoContext(ctx, "Processing update")

			next(ctx, b, update)

			logEntry.InfoContext(ctx, "Finished processing update", "duration", time.Since(startTime))
		}
	}
}

func updateAttrs(update *models.Update) []any {
	switch {
	case update.Message != nil:
		m := update.Message
		attrs := []any{"message_id", m.ID, "chat_id", m.Chat.ID, "text_preview", truncateString(m.Text, previewLen)}
		if m.From != nil {
			attrs = append(attrs, "user_id", m.From.ID)
		}
		return attrs
	case update.CallbackQuery != nil:
		q := update.CallbackQuery
		attrs := []any{"callback_query_id", q.ID, "user_id", q.From.ID, "data", q.Data}
		switch {
		case q.Message.Message != nil:
			attrs = append(attrs, "chat_id", q.Message.Message.Chat.ID, "message_accessible", true)
		case q.Message.InaccessibleMessage != nil:
			attrs = append(attrs, "chat_id", q.Message.InaccessibleMessage.Chat.ID, "message_accessible", false)
		}
		return attrs
	case update.InlineQuery != nil:
		attrs := []any{"inline_query_id", update.InlineQuery.ID, "text_preview", truncateString(update.InlineQuery.Query, previewLen)}
		if update.InlineQuery.From != nil {
			attrs = append(attrs, "user_id", update.InlineQuery.From.ID)
		}
		return attrs
	case update.MyChatMember != nil:
		return []any{"chat_id", update.MyChatMember.Chat.ID, "new_status", string(update.MyChatMember.NewChatMember.Type)}
	case update.ChatJoinRequest != nil:
		return []any{"chat_id", update.ChatJoinRequest.Chat.ID}
	}
	return nil
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(r[:maxLen-3]) + "..."
}
