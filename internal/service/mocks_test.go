package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"depanku-backend/internal/domain"
	"depanku-backend/internal/moderation"
	"depanku-backend/internal/search"
)

// MockOpportunityRepo
type MockOpportunityRepo struct {
	mock.Mock
}

func (m *MockOpportunityRepo) Create(ctx context.Context, o *domain.Opportunity) error {
	args := m.Called(ctx, o)
	if o.ID == "" {
		o.ID = "generated-id"
	}
	return args.Error(0)
}
func (m *MockOpportunityRepo) GetByID(ctx context.Context, id string) (*domain.Opportunity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Opportunity), args.Error(1)
}
func (m *MockOpportunityRepo) Replace(ctx context.Context, o *domain.Opportunity) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOpportunityRepo) Update(ctx context.Context, id string, patch *domain.OpportunityPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}
func (m *MockOpportunityRepo) SetStatus(ctx context.Context, id, status, moderationNotes string) error {
	args := m.Called(ctx, id, status, moderationNotes)
	return args.Error(0)
}
func (m *MockOpportunityRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOpportunityRepo) List(ctx context.Context) ([]domain.Opportunity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Opportunity), args.Error(1)
}
func (m *MockOpportunityRepo) ListByStatus(ctx context.Context, status string) ([]domain.Opportunity, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Opportunity), args.Error(1)
}
func (m *MockOpportunityRepo) ListByOwner(ctx context.Context, ownerID, status string) ([]domain.Opportunity, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Get(0).([]domain.Opportunity), args.Error(1)
}
func (m *MockOpportunityRepo) FindDraft(ctx context.Context, ownerID, title string) (*domain.Opportunity, error) {
	args := m.Called(ctx, ownerID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Opportunity), args.Error(1)
}

// MockApplicationRepo
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Set(ctx context.Context, a *domain.Application) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ListByOpportunity(ctx context.Context, opportunityID string) ([]domain.Application, error) {
	args := m.Called(ctx, opportunityID)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockIndex
type MockIndex struct {
	mock.Mock
}

func (m *MockIndex) Upsert(ctx context.Context, records []search.Record) bool {
	args := m.Called(ctx, records)
	return args.Bool(0)
}
func (m *MockIndex) Delete(ctx context.Context, ids []string) bool {
	args := m.Called(ctx, ids)
	return args.Bool(0)
}
func (m *MockIndex) ResyncAll(ctx context.Context, records []search.Record) int {
	args := m.Called(ctx, records)
	return args.Int(0)
}
func (m *MockIndex) Clear(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// MockGate
type MockGate struct {
	mock.Mock
}

func (m *MockGate) Moderate(ctx context.Context, content moderation.Content) (bool, []string) {
	args := m.Called(ctx, content)
	var issues []string
	if args.Get(1) != nil {
		issues = args.Get(1).([]string)
	}
	return args.Bool(0), issues
}

// MockEmail
type MockEmail struct {
	mock.Mock
}

func (m *MockEmail) SendPublishedNotification(ctx context.Context, email, title string) error {
	args := m.Called(ctx, email, title)
	return args.Error(0)
}
func (m *MockEmail) SendRejectionNotification(ctx context.Context, email, title, summary string) error {
	args := m.Called(ctx, email, title, summary)
	return args.Error(0)
}
