package service

import (
	"context"
	"errors"
	"time"

	"depanku-backend/internal/domain"
	"depanku-backend/internal/logger"
	"depanku-backend/internal/repository"
)

type applicationService struct {
	apps repository.ApplicationRepository
	opps repository.OpportunityRepository
}

func NewApplicationService(apps repository.ApplicationRepository, opps repository.OpportunityRepository) ApplicationService {
	return &applicationService{apps: apps, opps: opps}
}

func (s *applicationService) Submit(ctx context.Context, opportunityID, userID, userEmail string, responses []domain.FormResponse) (*domain.Application, error) {
	opp, err := s.opps.GetByID(ctx, opportunityID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if opp.Status != domain.StatusPublished {
		return nil, ErrNotPublished
	}

	id := domain.ApplicationID(opportunityID, userID)
	now := time.Now().UTC()

	existing, err := s.apps.GetByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	var app *domain.Application
	if existing != nil {
		// Resubmission: overwrite responses, keep creation time and status.
		existing.Responses = responses
		existing.UpdatedAt = now
		app = existing
		logger.Info("Application resubmitted", "id", id)
	} else {
		app = &domain.Application{
			ID:            id,
			OpportunityID: opportunityID,
			UserID:        userID,
			UserEmail:     userEmail,
			Responses:     responses,
			Status:        domain.ApplicationPending,
			CreatedAt:     now,
			UpdatedAt:     now,
			SubmittedAt:   now,
		}
		logger.Info("Application submitted", "id", id)
	}

	if err := s.apps.Set(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) Get(ctx context.Context, opportunityID, userID string) (*domain.Application, error) {
	app, err := s.apps.GetByID(ctx, domain.ApplicationID(opportunityID, userID))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return app, err
}

func (s *applicationService) ListByOpportunity(ctx context.Context, opportunityID, actorID string) ([]domain.Application, error) {
	opp, err := s.opps.GetByID(ctx, opportunityID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if opp.OwnerID != actorID {
		return nil, ErrNotOwner
	}
	return s.apps.ListByOpportunity(ctx, opportunityID)
}

func (s *applicationService) ListByApplicant(ctx context.Context, userID string) ([]domain.Application, error) {
	return s.apps.ListByUser(ctx, userID)
}
