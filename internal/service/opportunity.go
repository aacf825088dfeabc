package service

import (
	"context"
	"errors"
	"fmt"

	"depanku-backend/internal/domain"
	"depanku-backend/internal/logger"
	"depanku-backend/internal/moderation"
	"depanku-backend/internal/repository"
	"depanku-backend/internal/search"
)

type opportunityService struct {
	repo   repository.OpportunityRepository
	index  search.Client
	gate   moderation.Gate
	email  EmailService
	drafts draftResolver
}

// NewOpportunityService wires the state machine to its collaborators. The
// index client and moderation gate are injected once at startup and shared
// across requests.
func NewOpportunityService(repo repository.OpportunityRepository, index search.Client, gate moderation.Gate, email EmailService) OpportunityService {
	return &opportunityService{
		repo:   repo,
		index:  index,
		gate:   gate,
		email:  email,
		drafts: draftResolver{repo: repo},
	}
}

func (s *opportunityService) Create(ctx context.Context, o *domain.Opportunity) (*domain.Opportunity, bool, *Rejection, error) {
	if o.Status == "" {
		o.Status = domain.StatusDraft
	}

	if o.Status == domain.StatusDraft {
		opp, created, err := s.drafts.findOrUpsert(ctx, o)
		return opp, created, nil, err
	}

	// Any non-draft create is a publish attempt and must pass the gate.
	approved, issues := s.gate.Moderate(ctx, moderation.ContentFromOpportunity(o))
	if !approved {
		o.Status = domain.StatusRejected
		o.ModerationNotes = moderation.Summary(issues)
		if err := s.repo.Create(ctx, o); err != nil {
			return nil, false, nil, err
		}
		// Rejected content never reaches the index.
		return o, true, &Rejection{Issues: issues, Notes: o.ModerationNotes}, nil
	}

	o.Status = domain.StatusPublished
	o.ModerationNotes = ""
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, false, nil, err
	}
	s.syncPublished(ctx, o.ID)
	s.notifyPublished(ctx, o)
	return o, true, nil, nil
}

func (s *opportunityService) GetAll(ctx context.Context) ([]domain.Opportunity, error) {
	return s.repo.List(ctx)
}

func (s *opportunityService) GetByID(ctx context.Context, id string) (*domain.Opportunity, error) {
	o, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return o, err
}

func (s *opportunityService) ListByOwner(ctx context.Context, ownerID, status string) ([]domain.Opportunity, error) {
	return s.repo.ListByOwner(ctx, ownerID, status)
}

func (s *opportunityService) Publish(ctx context.Context, id string) (*domain.Opportunity, *Rejection, error) {
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if o.Status == domain.StatusPublished {
		return nil, nil, ErrAlreadyPublished
	}

	approved, issues := s.gate.Moderate(ctx, moderation.ContentFromOpportunity(o))
	if !approved {
		notes := moderation.Summary(issues)
		if err := s.repo.SetStatus(ctx, id, domain.StatusRejected, notes); err != nil {
			return nil, nil, err
		}
		o.Status = domain.StatusRejected
		o.ModerationNotes = notes
		logger.Info("Opportunity rejected by moderation", "id", id, "issues", len(issues))
		s.notifyRejected(ctx, o)
		return o, &Rejection{Issues: issues, Notes: notes}, nil
	}

	if err := s.repo.SetStatus(ctx, id, domain.StatusPublished, ""); err != nil {
		return nil, nil, err
	}
	o.Status = domain.StatusPublished
	o.ModerationNotes = ""
	logger.Info("Opportunity published", "id", id)

	s.syncPublished(ctx, id)
	s.notifyPublished(ctx, o)
	return o, nil, nil
}

func (s *opportunityService) Unpublish(ctx context.Context, id string) (bool, error) {
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if o.Status == domain.StatusDraft {
		// Idempotent: already a draft, nothing to transition and nothing to
		// remove from the index.
		return true, nil
	}

	if err := s.repo.SetStatus(ctx, id, domain.StatusDraft, ""); err != nil {
		return false, err
	}
	logger.Info("Opportunity unpublished", "id", id)

	if !s.index.Delete(ctx, []string{id}) {
		logger.Warn("Search index divergence: unpublished listing may still be indexed", "id", id)
	}
	return false, nil
}

func (s *opportunityService) Update(ctx context.Context, id, actorID string, patch *domain.OpportunityPatch) (*domain.Opportunity, *Rejection, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if current.OwnerID != actorID {
		return nil, nil, ErrNotOwner
	}

	requested := ""
	if patch.Status != nil {
		requested = *patch.Status
	}
	switch requested {
	case "", domain.StatusDraft, domain.StatusPublished:
	default:
		// rejected is owned by the gate and can never be requested.
		return nil, nil, ErrInvalidStatus
	}

	if requested == domain.StatusPublished {
		return s.updateAndPublish(ctx, current, patch)
	}

	contentPatch := *patch
	contentPatch.Status = nil
	if err := s.repo.Update(ctx, id, &contentPatch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	unpublishing := requested == domain.StatusDraft && current.Status != domain.StatusDraft
	if unpublishing {
		// The transition goes through SetStatus so any moderation notes
		// left over from a rejected state are cleared with it.
		if err := s.repo.SetStatus(ctx, id, domain.StatusDraft, ""); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil, ErrNotFound
			}
			return nil, nil, err
		}
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if unpublishing {
		if !s.index.Delete(ctx, []string{id}) {
			logger.Warn("Search index divergence: unpublished listing may still be indexed", "id", id)
		}
	} else if current.Status == domain.StatusPublished {
		// Edits to a published listing must propagate to search. Re-upsert
		// the full, current record so the index never holds a partial view.
		if !s.index.Upsert(ctx, []search.Record{search.RecordFromOpportunity(updated)}) {
			logger.Warn("Search index divergence: published edit not propagated", "id", id)
		}
	}
	return updated, nil, nil
}

// updateAndPublish applies an edit that also requests publication: the gate
// runs against the merged content, exactly as a standalone publish would.
func (s *opportunityService) updateAndPublish(ctx context.Context, current *domain.Opportunity, patch *domain.OpportunityPatch) (*domain.Opportunity, *Rejection, error) {
	contentPatch := *patch
	contentPatch.Status = nil
	if err := s.repo.Update(ctx, current.ID, &contentPatch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	merged, err := s.GetByID(ctx, current.ID)
	if err != nil {
		return nil, nil, err
	}

	approved, issues := s.gate.Moderate(ctx, moderation.ContentFromOpportunity(merged))
	if !approved {
		notes := moderation.Summary(issues)
		if err := s.repo.SetStatus(ctx, current.ID, domain.StatusRejected, notes); err != nil {
			return nil, nil, err
		}
		merged.Status = domain.StatusRejected
		merged.ModerationNotes = notes
		// A previously published listing that fails re-moderation must come
		// out of the index.
		if current.Status == domain.StatusPublished {
			if !s.index.Delete(ctx, []string{current.ID}) {
				logger.Warn("Search index divergence: rejected listing may still be indexed", "id", current.ID)
			}
		}
		s.notifyRejected(ctx, merged)
		return merged, &Rejection{Issues: issues, Notes: notes}, nil
	}

	if err := s.repo.SetStatus(ctx, current.ID, domain.StatusPublished, ""); err != nil {
		return nil, nil, err
	}
	merged.Status = domain.StatusPublished
	merged.ModerationNotes = ""
	s.syncPublished(ctx, current.ID)
	if current.Status != domain.StatusPublished {
		s.notifyPublished(ctx, merged)
	}
	return merged, nil, nil
}

func (s *opportunityService) Delete(ctx context.Context, id, actorID string) error {
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o.OwnerID != actorID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete opportunity %s: %w", id, err)
	}
	logger.Info("Opportunity deleted", "id", id)

	// Cascade to the index regardless of status; deleting an unindexed id is
	// harmless and a stale published entry is not.
	if !s.index.Delete(ctx, []string{id}) && o.Status == domain.StatusPublished {
		logger.Warn("Search index divergence: deleted listing may still be indexed", "id", id)
	}
	return nil
}

func (s *opportunityService) ResyncAll(ctx context.Context) (int, error) {
	published, err := s.repo.ListByStatus(ctx, domain.StatusPublished)
	if err != nil {
		return 0, err
	}
	if len(published) == 0 {
		logger.Info("No published opportunities to resync")
		return 0, nil
	}

	records := make([]search.Record, 0, len(published))
	for i := range published {
		records = append(records, search.RecordFromOpportunity(&published[i]))
	}
	return s.index.ResyncAll(ctx, records), nil
}

func (s *opportunityService) ClearIndex(ctx context.Context) bool {
	return s.index.Clear(ctx)
}

// syncPublished re-fetches the full record and upserts it. The re-fetch is
// deliberate: indexing the write-path delta could leave the index missing
// fields from an earlier partial update.
func (s *opportunityService) syncPublished(ctx context.Context, id string) {
	full, err := s.GetByID(ctx, id)
	if err != nil {
		logger.Warn("Search index divergence: could not load published listing for sync", "id", id, "error", err)
		return
	}
	if !s.index.Upsert(ctx, []search.Record{search.RecordFromOpportunity(full)}) {
		logger.Warn("Search index divergence: published listing not indexed", "id", id)
	}
}

func (s *opportunityService) notifyPublished(ctx context.Context, o *domain.Opportunity) {
	if s.email == nil || o.OwnerEmail == "" {
		return
	}
	if err := s.email.SendPublishedNotification(ctx, o.OwnerEmail, o.Title); err != nil {
		logger.Warn("Failed to send publish notification", "id", o.ID, "error", err)
	}
}

func (s *opportunityService) notifyRejected(ctx context.Context, o *domain.Opportunity) {
	if s.email == nil || o.OwnerEmail == "" {
		return
	}
	if err := s.email.SendRejectionNotification(ctx, o.OwnerEmail, o.Title, o.ModerationNotes); err != nil {
		logger.Warn("Failed to send rejection notification", "id", o.ID, "error", err)
	}
}
