// Package tasks implements the bot's scheduled housekeeping tasks.
package tasks

import (
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/edgard/keeperbot/internal/config"
	"github.com/edgard/keeperbot/internal/filters"
	"github.com/edgard/keeperbot/internal/moderation"
	"github.com/edgard/keeperbot/internal/notes"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Warns   *moderation.Warns
	Filters *filters.Store
	Notes   *notes.Store
	// DB is nil when the memory driver is configured.
	DB *sqlx.DB
}
