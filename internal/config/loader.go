package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

type loader struct {
	v *viper.Viper
}

// Load loads and validates configuration from:
// 1. Default values
// 2. The config file at path, or ./config.yaml when path is empty
// 3. BOT_* environment variables
//
// An explicit path must exist; the default ./config.yaml is optional.
func Load(path string) (*Config, error) {
	l := &loader{v: viper.New()}
	l.setDefaults()

	if err := l.loadConfig(path); err != nil {
		return nil, fmt.Errorf("%w: failed to load config file: %v", ErrConfiguration, err)
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	slog.Debug("Configuration loaded", "file", l.v.ConfigFileUsed(), "mode", cfg.Telegram.Mode, "storage", cfg.Storage.Driver)
	return cfg, nil
}

// loadConfig reads the config file and sets up environment overrides.
func (l *loader) loadConfig(path string) error {
	v := l.v

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// BOT_TOKEN is accepted as a shorter alias of BOT_TELEGRAM_TOKEN.
	if err := v.BindEnv("telegram.token", "BOT_TELEGRAM_TOKEN", "BOT_TOKEN"); err != nil {
		return fmt.Errorf("failed to bind token variables: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Allow missing config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}
