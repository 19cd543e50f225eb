package handlers

import (
	"log/slog"

	"github.com/edgard/keeperbot/internal/config"
	"github.com/edgard/keeperbot/internal/filters"
	"github.com/edgard/keeperbot/internal/moderation"
	"github.com/edgard/keeperbot/internal/notes"
	"github.com/edgard/keeperbot/internal/platform"
)

// HandlerDeps provides dependencies for the update handlers. The stores are
// created once at startup and shared by every update.
type HandlerDeps struct {
	Logger     *slog.Logger
	Config     *config.Config
	Client     platform.Client
	Warns      *moderation.Warns
	Filters    *filters.Store
	Notes      *notes.Store
	Moderation *moderation.Engine
	// Bot is the bot's own account, used to recognize /cmd@botname.
	Bot platform.User
}
