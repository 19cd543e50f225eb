package config

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct constraints and the cross-field rules the tags
// cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Telegram.Mode == "webhook" && c.Telegram.Webhook.URL == "" {
		return errors.New("telegram.webhook.url is required in webhook mode")
	}
	return nil
}

// IsAdmin reports whether userID may run system commands. With no admin
// configured every user may.
func (c *Config) IsAdmin(userID int64) bool {
	if c.Telegram.AdminID == 0 {
		return true
	}
	return userID == c.Telegram.AdminID
}

// IsWebhook reports whether updates arrive over a webhook.
func (c *Config) IsWebhook() bool { return c.Telegram.Mode == "webhook" }
