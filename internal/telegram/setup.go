// Package telegram adapts github.com/go-telegram/bot to the platform layer:
// bot construction, update conversion, the outbound client and the webhook
// transport.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/keeperbot/internal/bot/handlers"
	"github.com/edgard/keeperbot/internal/config"
	"github.com/edgard/keeperbot/internal/platform"
)

// NewTelegramBot creates a new Telegram bot instance using the go-telegram/bot library.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	prefix := token
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	log.Info("Telegram bot instance created successfully", "token_prefix", prefix+"...")
	return b, nil
}

// Options translates the transport settings into go-telegram options.
func Options(cfg config.TelegramConfig, logger *slog.Logger, mw ...bot.Middleware) []bot.Option {
	log := logger.With("component", "telegram_bot")
	opts := []bot.Option{
		bot.WithWorkers(cfg.Workers),
		bot.WithHTTPClient(cfg.PollTimeout, &http.Client{Timeout: cfg.RequestTimeout}),
		bot.WithErrorsHandler(func(err error) {
			log.Error("Telegram transport error", "error", err)
		}),
	}
	if len(mw) > 0 {
		opts = append(opts, bot.WithMiddlewares(mw...))
	}
	if cfg.APIURL != "" {
		opts = append(opts, bot.WithServerURL(cfg.APIURL))
	}
	if cfg.Mode == "webhook" && cfg.Webhook.Secret != "" {
		opts = append(opts, bot.WithWebhookSecretToken(cfg.Webhook.Secret))
	}
	return opts
}

// RegisterDispatcher routes every update through d. go-telegram runs each
// update on its own worker goroutine.
func RegisterDispatcher(b *bot.Bot, logger *slog.Logger, d *handlers.Dispatcher) error {
	if b == nil {
		return fmt.Errorf("bot instance cannot be nil")
	}
	if d == nil {
		return fmt.Errorf("dispatcher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	b.RegisterHandlerMatchFunc(func(*models.Update) bool { return true }, func(ctx context.Context, _ *bot.Bot, update *models.Update) {
		d.Handle(ctx, ConvertUpdate(update))
	})
	logger.With("component", "handler_registry").Info("Registered update dispatcher")
	return nil
}

// Configure prepares the platform side before updates start flowing: it
// registers or removes the webhook to match the transport mode and publishes
// the command menu.
func Configure(ctx context.Context, b *bot.Bot, client platform.Client, cfg config.TelegramConfig, logger *slog.Logger) error {
	log := logger.With("component", "telegram_setup")

	if cfg.Mode == "webhook" {
		_, err := b.SetWebhook(ctx, &bot.SetWebhookParams{
			URL:                cfg.Webhook.URL,
			SecretToken:        cfg.Webhook.Secret,
			DropPendingUpdates: cfg.Webhook.DropPending,
		})
		if err != nil {
			return fmt.Errorf("failed to set webhook: %w", err)
		}
		log.Info("Webhook registered", "url", cfg.Webhook.URL, "drop_pending", cfg.Webhook.DropPending)
	} else {
		// A leftover webhook makes getUpdates fail.
		_, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: cfg.Webhook.DropPending})
		if err != nil {
			return fmt.Errorf("failed to delete webhook: %w", err)
		}
		log.Debug("Webhook cleared for polling")
	}

	if !cfg.RegisterCommands {
		return nil
	}
	cmds := handlers.BotCommands()
	if err := client.SetCommands(ctx, cmds); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	log.Info("Registered bot commands", "count", len(cmds))
	return nil
}
