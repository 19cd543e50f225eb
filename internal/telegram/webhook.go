package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
	"golang.org/x/sync/errgroup"

	"github.com/edgard/keeperbot/internal/config"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// WebhookServer returns an HTTP server that feeds webhook posts at cfg.Path
// into b. The secret token header is checked by go-telegram.
func WebhookServer(b *bot.Bot, cfg config.WebhookConfig) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, b.WebhookHandler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// ServeWebhook runs the webhook workers and the HTTP listener until ctx is
// cancelled or the listener fails.
func ServeWebhook(ctx context.Context, b *bot.Bot, cfg config.WebhookConfig, logger *slog.Logger) error {
	log := logger.With("component", "webhook_server")
	srv := WebhookServer(b, cfg)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.StartWebhook(gCtx)
		return nil
	})

	g.Go(func() error {
		log.Info("Webhook listener starting", "listen", cfg.Listen, "path", cfg.Path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("webhook listener failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down webhook listener", "error", err)
			return err
		}
		log.Info("Webhook listener stopped.")
		return nil
	})

	return g.Wait()
}
