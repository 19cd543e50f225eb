// Package config manages application configuration from environment variables,
// config files, and default values.
package config

import (
	"errors"
	"time"
)

// ErrConfiguration wraps every load and validation failure.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration. Values can be set via
// environment variables prefixed with BOT_ (e.g., BOT_TELEGRAM_TOKEN) or
// through config.yaml.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot token and transport settings.
type TelegramConfig struct {
	Token            string        `mapstructure:"token"             validate:"required"`
	Mode             string        `mapstructure:"mode"              validate:"oneof=polling webhook"`
	APIURL           string        `mapstructure:"api_url"           validate:"omitempty,url"`
	Workers          int           `mapstructure:"workers"           validate:"min=1,max=1000"`
	PollTimeout      time.Duration `mapstructure:"poll_timeout"      validate:"min=1s,max=1m"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"   validate:"min=1s,max=5m"`
	AdminID          int64         `mapstructure:"admin_id"          validate:"gte=0"`
	RegisterCommands bool          `mapstructure:"register_commands"`
	Webhook          WebhookConfig `mapstructure:"webhook"`
}

// WebhookConfig is used when Mode is "webhook".
type WebhookConfig struct {
	URL         string `mapstructure:"url"          validate:"omitempty,url"`
	Listen      string `mapstructure:"listen"       validate:"omitempty,hostname_port"`
	Path        string `mapstructure:"path"         validate:"omitempty,startswith=/"`
	Secret      string `mapstructure:"secret"       validate:"omitempty,max=256"`
	DropPending bool   `mapstructure:"drop_pending"`
}

// StorageConfig selects the store driver. Both drivers keep data in memory
// only.
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=memory sqlite"`
	Name   string `mapstructure:"name"   validate:"required_if=Driver sqlite"`
}

// SchedulerConfig maps task names to their schedule.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig configures one scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}
