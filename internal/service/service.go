package service

import (
	"context"
	"errors"

	"depanku-backend/internal/domain"
)

var (
	// ErrNotFound means the referenced opportunity or application is absent.
	ErrNotFound = errors.New("opportunity not found")
	// ErrAlreadyPublished rejects publishing an already-published listing.
	ErrAlreadyPublished = errors.New("opportunity is already published")
	// ErrNotOwner rejects edits and deletes by anyone but the owner.
	ErrNotOwner = errors.New("only the owner may modify this opportunity")
	// ErrInvalidStatus rejects a direct write of a gate-controlled status.
	ErrInvalidStatus = errors.New("status cannot be set directly")
	// ErrNotPublished rejects applying to a listing that is not published.
	ErrNotPublished = errors.New("opportunity is not published")
)

// Rejection is the structured outcome of a failed moderation gate. It is a
// user-actionable result, not a system error: the listing was persisted with
// status rejected and the caller gets the full issue list.
type Rejection struct {
	Issues []string `json:"issues"`
	Notes  string   `json:"moderation_notes"`
}

// OpportunityService owns the opportunity lifecycle: draft resolution,
// the moderation gate, status transitions, and search-index synchronization.
type OpportunityService interface {
	// Create persists a new listing. A draft goes through find-or-upsert
	// deduplication and created reports whether a new document was made.
	// Any other requested status is treated as a publish attempt and may
	// return a Rejection.
	Create(ctx context.Context, o *domain.Opportunity) (opp *domain.Opportunity, created bool, rej *Rejection, err error)
	GetAll(ctx context.Context) ([]domain.Opportunity, error)
	GetByID(ctx context.Context, id string) (*domain.Opportunity, error)
	ListByOwner(ctx context.Context, ownerID, status string) ([]domain.Opportunity, error)
	// Update applies a partial edit. Requesting status=published re-runs the
	// publish gate; edits to a published listing propagate to the index.
	Update(ctx context.Context, id, actorID string, patch *domain.OpportunityPatch) (*domain.Opportunity, *Rejection, error)
	// Publish runs the moderation gate and transitions to published or
	// rejected.
	Publish(ctx context.Context, id string) (*domain.Opportunity, *Rejection, error)
	// Unpublish transitions back to draft. On an already-draft listing it is
	// a no-op and alreadyDraft is true.
	Unpublish(ctx context.Context, id string) (alreadyDraft bool, err error)
	Delete(ctx context.Context, id, actorID string) error
	// ResyncAll pushes every published listing to the search index and
	// returns the committed count.
	ResyncAll(ctx context.Context) (int, error)
	// ClearIndex wipes the search index.
	ClearIndex(ctx context.Context) bool
}

// ApplicationService manages applications against published opportunities.
type ApplicationService interface {
	// Submit creates or overwrites the application for (opportunity, user).
	// Resubmission replaces responses and bumps updated_at; it never
	// duplicates.
	Submit(ctx context.Context, opportunityID, userID, userEmail string, responses []domain.FormResponse) (*domain.Application, error)
	Get(ctx context.Context, opportunityID, userID string) (*domain.Application, error)
	// ListByOpportunity is owner-gated: only the opportunity owner may read
	// the submissions.
	ListByOpportunity(ctx context.Context, opportunityID, actorID string) ([]domain.Application, error)
	ListByApplicant(ctx context.Context, userID string) ([]domain.Application, error)
}

// EmailService sends lifecycle notifications to listing owners. Failures are
// absorbed by callers the same way index failures are.
type EmailService interface {
	SendPublishedNotification(ctx context.Context, email, title string) error
	SendRejectionNotification(ctx context.Context, email, title, summary string) error
}
