package jobs

import (
	"context"

	"depanku-backend/internal/domain"
	"depanku-backend/internal/logger"
)

// ResyncSearchIndex replaces the search index with every currently
// published opportunity. Running it periodically repairs any drift left
// behind by failed index writes.
func (jr *JobRunner) ResyncSearchIndex() {
	jr.runWithRecovery("ResyncSearchIndex", func() {
		ctx := context.Background()

		count, err := jr.services.Opportunity.ResyncAll(ctx)
		if err != nil {
			logger.Error("Failed to resync search index", "error", err)
			return
		}
		logger.Info("Resynced search index", "published_count", count)
	})
}

// AuditSearchIndex sweeps for lifecycle states that must never be
// searchable. Drafts and rejected listings are deleted from the index;
// the delete is idempotent so a clean index is a no-op.
func (jr *JobRunner) AuditSearchIndex() {
	jr.runWithRecovery("AuditSearchIndex", func() {
		ctx := context.Background()

		var stale []string
		for _, status := range []string{domain.StatusDraft, domain.StatusRejected} {
			opportunities, err := jr.repo.ListByStatus(ctx, status)
			if err != nil {
				logger.Error("Failed to list opportunities for audit", "status", status, "error", err)
				return
			}
			for _, o := range opportunities {
				stale = append(stale, o.ID)
			}
		}

		if len(stale) == 0 {
			logger.Info("Search index audit found no unpublishable listings")
			return
		}

		if !jr.index.Delete(ctx, stale) {
			logger.Warn("Search index audit could not remove all unpublishable listings",
				"count", len(stale))
			return
		}
		logger.Info("Search index audit removed unpublishable listings", "count", len(stale))
	})
}
