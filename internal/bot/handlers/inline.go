package handlers

import (
	"context"

	"github.com/edgard/keeperbot/internal/content"
	"github.com/edgard/keeperbot/internal/platform"
)

func (d *Dispatcher) handleInline(ctx context.Context, q *platform.InlineQuery) {
	results := content.InlineResults(q.Query)
	if err := d.deps.Client.AnswerInlineQuery(ctx, q.ID, results); err != nil {
		d.log.WarnContext(ctx, "Failed to answer inline query", "error", err, "query", q.Query)
		return
	}
	d.log.DebugContext(ctx, "Answered inline query", "query", q.Query, "results", len(results))
}
