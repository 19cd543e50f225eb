package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/edgard/keeperbot/internal/database"
)

// newSQLMaintenanceTask creates the scheduled task function for running database maintenance.
// It does nothing with the memory driver.
func newSQLMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "sql_maintenance")

	return func(ctx context.Context) error {
		if deps.DB == nil {
			log.DebugContext(ctx, "No database configured, skipping SQL maintenance")
			return nil
		}

		log.InfoContext(ctx, "Starting scheduled SQL maintenance task...")
		startTime := time.Now()

		err := database.RunMaintenance(ctx, deps.DB)
		duration := time.Since(startTime)

		if err != nil {
			log.ErrorContext(ctx, "SQL maintenance task failed", "error", err, "duration", duration)
			return fmt.Errorf("sql maintenance failed: %w", err)
		}

		log.InfoContext(ctx, "Scheduled SQL maintenance task completed successfully", "duration", duration)
		return nil
	}
}
