package repository

import (
	"context"
	"errors"

	"depanku-backend/internal/domain"
)

// ErrNotFound is returned when a referenced document does not exist. Both
// store implementations translate their native not-found signal to it.
var ErrNotFound = errors.New("document not found")

// OpportunityRepository is the primary record store for opportunities.
// Creation assigns the id and a server-side created_at timestamp.
type OpportunityRepository interface {
	Create(ctx context.Context, o *domain.Opportunity) error
	GetByID(ctx context.Context, id string) (*domain.Opportunity, error)
	// Replace overwrites the full document (draft autosave, publish gate).
	Replace(ctx context.Context, o *domain.Opportunity) error
	// Update applies only the non-nil patch fields plus the status/notes pair
	// when the service decided a transition.
	Update(ctx context.Context, id string, patch *domain.OpportunityPatch) error
	SetStatus(ctx context.Context, id, status, moderationNotes string) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context) ([]domain.Opportunity, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Opportunity, error)
	ListByOwner(ctx context.Context, ownerID, status string) ([]domain.Opportunity, error)
	// FindDraft looks up a draft by (owner, exact title). Callers must trim
	// the title first; the empty string never matches.
	FindDraft(ctx context.Context, ownerID, title string) (*domain.Opportunity, error)
}

// ApplicationRepository stores applications under their composite id.
type ApplicationRepository interface {
	// Set writes the full document, creating or overwriting.
	Set(ctx context.Context, a *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	ListByOpportunity(ctx context.Context, opportunityID string) ([]domain.Application, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Application, error)
	Delete(ctx context.Context, id string) error
}
