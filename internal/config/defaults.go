package config

import "time"

// Default values for configuration
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	DefaultTelegramMode           = "polling"
	DefaultTelegramWorkers        = 16
	DefaultTelegramPollTimeout    = 30 * time.Second
	DefaultTelegramRequestTimeout = time.Minute
	DefaultWebhookListen          = "0.0.0.0:8080"
	DefaultWebhookPath            = "/webhook"

	DefaultStorageDriver = "memory"
	DefaultStorageName   = "keeperbot"

	DefaultStoreReportSchedule    = "0 */30 * * * *" // every 30 minutes, seconds field first
	DefaultSQLMaintenanceSchedule = "0 0 4 * * *"    // daily at 04:00
)

// setDefaults sets default values for optional configuration parameters
func (l *loader) setDefaults() {
	v := l.v

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", DefaultLogJSON)

	// The token has no default but must be a known key for env overrides.
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.mode", DefaultTelegramMode)
	v.SetDefault("telegram.api_url", "")
	v.SetDefault("telegram.workers", DefaultTelegramWorkers)
	v.SetDefault("telegram.poll_timeout", DefaultTelegramPollTimeout)
	v.SetDefault("telegram.request_timeout", DefaultTelegramRequestTimeout)
	v.SetDefault("telegram.admin_id", 0)
	v.SetDefault("telegram.register_commands", true)
	v.SetDefault("telegram.webhook.url", "")
	v.SetDefault("telegram.webhook.listen", DefaultWebhookListen)
	v.SetDefault("telegram.webhook.path", DefaultWebhookPath)
	v.SetDefault("telegram.webhook.secret", "")
	v.SetDefault("telegram.webhook.drop_pending", false)

	v.SetDefault("storage.driver", DefaultStorageDriver)
	v.SetDefault("storage.name", DefaultStorageName)

	v.SetDefault("scheduler.tasks.store_report.enabled", true)
	v.SetDefault("scheduler.tasks.store_report.schedule", DefaultStoreReportSchedule)
	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", DefaultSQLMaintenanceSchedule)
}
