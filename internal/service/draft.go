package service

import (
	"context"
	"errors"
	"strings"

	"depanku-backend/internal/domain"
	"depanku-backend/internal/logger"
	"depanku-backend/internal/repository"
)

// draftResolver implements find-or-upsert semantics for autosaved drafts.
// Autosave clients call create repeatedly; without collapsing on
// (owner, trimmed title) every tick would leave an orphan draft behind.
type draftResolver struct {
	repo repository.OpportunityRepository
}

// findOrUpsert looks up a draft by (owner, status=draft, trimmed title) and
// either replaces its content or creates a new document. A blank title never
// matches an existing draft. The replace is a full overwrite of the mutable
// fields, not a merge: fields cleared in the editor must disappear.
func (r *draftResolver) findOrUpsert(ctx context.Context, o *domain.Opportunity) (*domain.Opportunity, bool, error) {
	title := strings.TrimSpace(o.Title)
	o.Title = title

	if title != "" {
		existing, err := r.repo.FindDraft(ctx, o.OwnerID, title)
		if err == nil {
			existing.CopyContentFrom(o)
			existing.Status = domain.StatusDraft
			existing.ModerationNotes = ""
			if err := r.repo.Replace(ctx, existing); err != nil {
				return nil, false, err
			}
			logger.Debug("Autosave collapsed into existing draft", "id", existing.ID, "owner", o.OwnerID)
			return existing, false, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, false, err
		}
	}

	o.Status = domain.StatusDraft
	o.ModerationNotes = ""
	if err := r.repo.Create(ctx, o); err != nil {
		return nil, false, err
	}
	return o, true, nil
}
