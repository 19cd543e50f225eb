package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/edgard/keeperbot/internal/database"
)

// newStoreReportTask logs how many warnings, filters and notes are held.
// With sqlite it also logs the per-bucket row counts.
func newStoreReportTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "store_report")

	return func(ctx context.Context) error {
		startTime := time.Now()

		attrs := []any{
			"warns", deps.Warns.Len(),
			"filters", deps.Filters.Len(),
			"notes", deps.Notes.Len(),
		}

		if deps.DB != nil {
			sizes, err := database.BucketSizes(ctx, deps.DB)
			if err != nil {
				log.ErrorContext(ctx, "Store report failed", "error", err)
				return fmt.Errorf("store report failed: %w", err)
			}
			for bucket, n := range sizes {
				attrs = append(attrs, "rows_"+bucket, n)
			}
		}

		attrs = append(attrs, "duration", time.Since(startTime))
		log.InfoContext(ctx, "Store report", attrs...)
		return nil
	}
}
