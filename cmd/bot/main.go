// Package main contains the entrypoint for the keeperbot Telegram bot.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/edgard/keeperbot/internal/bot"
	"github.com/edgard/keeperbot/internal/bot/handlers"
	"github.com/edgard/keeperbot/internal/bot/tasks"
	"github.com/edgard/keeperbot/internal/config"
	"github.com/edgard/keeperbot/internal/database"
	"github.com/edgard/keeperbot/internal/filters"
	"github.com/edgard/keeperbot/internal/logger"
	"github.com/edgard/keeperbot/internal/moderation"
	"github.com/edgard/keeperbot/internal/notes"
	"github.com/edgard/keeperbot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := execute(ctx, os.Args[1:])
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

func execute(ctx context.Context, args []string) int {
	exitCode := 0
	root := newRootCmd(func(ctx context.Context, configPath string) {
		exitCode = run(ctx, configPath)
	})
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return 2
	}
	return exitCode
}

func newRootCmd(runFn func(ctx context.Context, configPath string)) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:          "keeperbot",
		Short:        "Telegram group management bot",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, _ []string) {
			runFn(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to configuration file (default ./config.yaml if present)")
	return cmd
}

// run initializes and starts all application components (config, logger,
// stores, telegram transport, scheduler), handles graceful shutdown, and
// returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context, configPath string) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	st, err := openStores(cfg.Storage, log)
	if err != nil {
		log.Error("Failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		return 1
	}
	defer database.CloseDB(st.db) // no-op for the memory driver

	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, telegram.Options(cfg.Telegram, log, logger.Middleware(log))...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}
	client := telegram.NewClient(tg)

	me, err := client.Me(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	warns := moderation.NewWarns(st.warns)
	filterStore := filters.New(st.filters)
	noteStore := notes.New(st.notes)

	hDeps := handlers.HandlerDeps{
		Logger:     log,
		Config:     cfg,
		Client:     client,
		Warns:      warns,
		Filters:    filterStore,
		Notes:      noteStore,
		Moderation: moderation.NewEngine(client, log),
		Bot:        me,
	}
	tDeps := tasks.TaskDeps{
		Logger:  log,
		Config:  cfg,
		Warns:   warns,
		Filters: filterStore,
		Notes:   noteStore,
		DB:      st.db,
	}

	if err := telegram.RegisterDispatcher(tg, log, handlers.NewDispatcher(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}
	if err := telegram.Configure(ctx, tg, client, cfg.Telegram, log); err != nil {
		log.Error("Failed to configure Telegram bot", "error", err)
		return 1
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}
	app := bot.NewBot(log, cfg, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx) // Run blocks until context is cancelled or an error occurs
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
