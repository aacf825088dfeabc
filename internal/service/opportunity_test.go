package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"depanku-backend/internal/domain"
	"depanku-backend/internal/repository"
	"depanku-backend/internal/service"
)

func newOpportunityFixture() (*MockOpportunityRepo, *MockIndex, *MockGate, *MockEmail, service.OpportunityService) {
	repo := new(MockOpportunityRepo)
	index := new(MockIndex)
	gate := new(MockGate)
	email := new(MockEmail)
	svc := service.NewOpportunityService(repo, index, gate, email)
	return repo, index, gate, email, svc
}

func TestOpportunityService_CreateDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("NewDraft", func(t *testing.T) {
		repo, _, _, _, svc := newOpportunityFixture()
		repo.On("FindDraft", ctx, "user-1", "Scholarship").Return(nil, repository.ErrNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Opportunity")).Return(nil)

		opp, created, rej, err := svc.Create(ctx, &domain.Opportunity{
			OwnerID: "user-1",
			Title:   "  Scholarship  ",
		})
		assert.NoError(t, err)
		assert.Nil(t, rej)
		assert.True(t, created)
		assert.Equal(t, domain.StatusDraft, opp.Status)
		assert.Equal(t, "Scholarship", opp.Title)
		repo.AssertExpectations(t)
	})

	t.Run("AutosaveCollapsesIntoExistingDraft", func(t *testing.T) {
		repo, _, _, _, svc := newOpportunityFixture()
		existing := &domain.Opportunity{
			ID:      "draft-1",
			OwnerID: "user-1",
			Title:   "Scholarship",
			Status:  domain.StatusDraft,
		}
		repo.On("FindDraft", ctx, "user-1", "Scholarship").Return(existing, nil)
		repo.On("Replace", ctx, existing).Return(nil)

		opp, created, rej, err := svc.Create(ctx, &domain.Opportunity{
			OwnerID:     "user-1",
			Title:       "Scholarship",
			Description: "updated text",
		})
		assert.NoError(t, err)
		assert.Nil(t, rej)
		assert.False(t, created)
		assert.Equal(t, "draft-1", opp.ID)
		assert.Equal(t, "updated text", opp.Description)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("EmptyTitleNeverMatches", func(t *testing.T) {
		repo, _, _, _, svc := newOpportunityFixture()
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Opportunity")).Return(nil)

		_, created, _, err := svc.Create(ctx, &domain.Opportunity{OwnerID: "user-1", Title: "   "})
		assert.NoError(t, err)
		assert.True(t, created)
		repo.AssertNotCalled(t, "FindDraft", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ResolvedDraftClearsModerationNotes", func(t *testing.T) {
		repo, _, _, _, svc := newOpportunityFixture()
		existing := &domain.Opportunity{
			ID:              "draft-1",
			OwnerID:         "user-1",
			Title:           "Scholarship",
			Status:          domain.StatusRejected,
			ModerationNotes: "old notes",
		}
		repo.On("FindDraft", ctx, "user-1", "Scholarship").Return(existing, nil)
		repo.On("Replace", ctx, existing).Return(nil)

		opp, _, _, err := svc.Create(ctx, &domain.Opportunity{OwnerID: "user-1", Title: "Scholarship"})
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusDraft, opp.Status)
		assert.Empty(t, opp.ModerationNotes)
	})
}

func TestOpportunityService_CreateAndPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("ApprovedIsPublishedAndIndexed", func(t *testing.T) {
		repo, index, gate, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{OwnerID: "user-1", Title: "Hackathon", Status: domain.StatusPublished}

		gate.On("Moderate", ctx, mock.Anything).Return(true, nil)
		repo.On("Create", ctx, o).Return(nil)
		repo.On("GetByID", ctx, mock.AnythingOfType("string")).Return(o, nil)
		index.On("Upsert", ctx, mock.Anything).Return(true)

		opp, created, rej, err := svc.Create(ctx, o)
		assert.NoError(t, err)
		assert.Nil(t, rej)
		assert.True(t, created)
		assert.Equal(t, domain.StatusPublished, opp.Status)
		index.AssertExpectations(t)
	})

	t.Run("RejectedIsPersistedButNeverIndexed", func(t *testing.T) {
		repo, index, gate, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{OwnerID: "user-1", Title: "Spam", Status: domain.StatusPublished}

		gate.On("Moderate", ctx, mock.Anything).Return(false, []string{"Contains promotional spam"})
		repo.On("Create", ctx, o).Return(nil)

		opp, created, rej, err := svc.Create(ctx, o)
		assert.NoError(t, err)
		assert.True(t, created)
		assert.NotNil(t, rej)
		assert.Equal(t, []string{"Contains promotional spam"}, rej.Issues)
		assert.Equal(t, domain.StatusRejected, opp.Status)
		assert.Contains(t, opp.ModerationNotes, "Contains promotional spam")
		index.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}

func TestOpportunityService_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("ApprovedTransitionsAndSyncs", func(t *testing.T) {
		repo, index, gate, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", OwnerID: "user-1", Title: "Hackathon", Status: domain.StatusDraft}

		repo.On("GetByID", ctx, "opp-1").Return(o, nil)
		gate.On("Moderate", ctx, mock.Anything).Return(true, nil)
		repo.On("SetStatus", ctx, "opp-1", domain.StatusPublished, "").Return(nil)
		index.On("Upsert", ctx, mock.Anything).Return(true)

		opp, rej, err := svc.Publish(ctx, "opp-1")
		assert.NoError(t, err)
		assert.Nil(t, rej)
		assert.Equal(t, domain.StatusPublished, opp.Status)
		repo.AssertExpectations(t)
		index.AssertExpectations(t)
	})

	t.Run("RejectedStoresNotesAndSkipsIndex", func(t *testing.T) {
		repo, index, gate, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", OwnerID: "user-1", Title: "Spam", Status: domain.StatusDraft}

		repo.On("GetByID", ctx, "opp-1").Return(o, nil)
		gate.On("Moderate", ctx, mock.Anything).Return(false, []string{"Misleading title", "No contact information"})
		repo.On("SetStatus", ctx, "opp-1", domain.StatusRejected, mock.AnythingOfType("string")).Return(nil)

		opp, rej, err := svc.Publish(ctx, "opp-1")
		assert.NoError(t, err)
		assert.NotNil(t, rej)
		assert.Len(t, rej.Issues, 2)
		assert.Equal(t, domain.StatusRejected, opp.Status)
		assert.Contains(t, opp.ModerationNotes, "1. Misleading title")
		assert.Contains(t, opp.ModerationNotes, "2. No contact information")
		index.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("AlreadyPublished", func(t *testing.T) {
		repo, _, gate, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", Status: domain.StatusPublished}
		repo.On("GetByID", ctx, "opp-1").Return(o, nil)

		_, _, err := svc.Publish(ctx, "opp-1")
		assert.ErrorIs(t, err, service.ErrAlreadyPublished)
		gate.AssertNotCalled(t, "Moderate", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, _, _, _, svc := newOpportunityFixture()
		repo.On("GetByID", ctx, "missing").Return(nil, repository.ErrNotFound)

		_, _, err := svc.Publish(ctx, "missing")
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("IndexFailureDoesNotFailPublish", func(t *testing.T) {
		repo, index, gate, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", Title: "Hackathon", Status: domain.StatusDraft}

		repo.On("GetByID", ctx, "opp-1").Return(o, nil)
		gate.On("Moderate", ctx, mock.Anything).Return(true, nil)
		repo.On("SetStatus", ctx, "opp-1", domain.StatusPublished, "").Return(nil)
		index.On("Upsert", ctx, mock.Anything).Return(false)

		opp, rej, err := svc.Publish(ctx, "opp-1")
		assert.NoError(t, err)
		assert.Nil(t, rej)
		assert.Equal(t, domain.StatusPublished, opp.Status)
	})
}

func TestOpportunityService_Unpublish(t *testing.T) {
	ctx := context.Background()

	t.Run("PublishedBecomesDraftAndLeavesIndex", func(t *testing.T) {
		repo, index, _, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", Status: domain.StatusPublished}

		repo.On("GetByID", ctx, "opp-1").Return(o, nil)
		repo.On("SetStatus", ctx, "opp-1", domain.StatusDraft, "").Return(nil)
		index.On("Delete", ctx, []string{"opp-1"}).Return(true)

		alreadyDraft, err := svc.Unpublish(ctx, "opp-1")
		assert.NoError(t, err)
		assert.False(t, alreadyDraft)
		repo.AssertExpectations(t)
		index.AssertExpectations(t)
	})

	t.Run("AlreadyDraftIsNoOp", func(t *testing.T) {
		repo, index, _, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", Status: domain.StatusDraft}
		repo.On("GetByID", ctx, "opp-1").Return(o, nil)

		alreadyDraft, err := svc.Unpublish(ctx, "opp-1")
		assert.NoError(t, err)
		assert.True(t, alreadyDraft)
		repo.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		index.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestOpportunityService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("NotOwner", func(t *testing.T) {
		repo, _, _, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", OwnerID: "user-1"}
		repo.On("GetByID", ctx, "opp-1").Return(o, nil)

		_, _, err := svc.Update(ctx, "opp-1", "someone-else", &domain.OpportunityPatch{})
		assert.ErrorIs(t, err, service.ErrNotOwner)
	})

	t.Run("RejectedStatusCannotBeRequested", func(t *testing.T) {
		repo, _, _, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", OwnerID: "user-1"}
		repo.On("GetByID", ctx, "opp-1").Return(o, nil)

		rejected := domain.StatusRejected
		_, _, err := svc.Update(ctx, "opp-1", "user-1", &domain.OpportunityPatch{Status: &rejected})
		assert.ErrorIs(t, err, service.ErrInvalidStatus)
	})

	t.Run("PublishedEditReindexesFullRecord", func(t *testing.T) {
		repo, index, _, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", OwnerID: "user-1", Title: "Hackathon", Status: domain.StatusPublished}
		desc := "new description"

		repo.On("GetByID", ctx, "opp-1").Return(o, nil)
		repo.On("Update", ctx, "opp-1", mock.AnythingOfType("*domain.OpportunityPatch")).Return(nil)
		index.On("Upsert", ctx, mock.Anything).Return(true)

		_, rej, err := svc.Update(ctx, "opp-1", "user-1", &domain.OpportunityPatch{Description: &desc})
		assert.NoError(t, err)
		assert.Nil(t, rej)
		index.AssertExpectations(t)
	})

	t.Run("DraftEditDoesNotTouchIndex", func(t *testing.T) {
		repo, index, _, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", OwnerID: "user-1", Status: domain.StatusDraft}
		desc := "new description"

		repo.On("GetByID", ctx, "opp-1").Return(o, nil)
		repo.On("Update", ctx, "opp-1", mock.AnythingOfType("*domain.OpportunityPatch")).Return(nil)

		_, _, err := svc.Update(ctx, "opp-1", "user-1", &domain.OpportunityPatch{Description: &desc})
		assert.NoError(t, err)
		index.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		index.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("UnpublishViaStatusPatchRemovesFromIndex", func(t *testing.T) {
		repo, index, _, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", OwnerID: "user-1", Status: domain.StatusPublished}
		draft := domain.StatusDraft

		repo.On("GetByID", ctx, "opp-1").Return(o, nil)
		repo.On("Update", ctx, "opp-1", mock.AnythingOfType("*domain.OpportunityPatch")).Return(nil)
		repo.On("SetStatus", ctx, "opp-1", domain.StatusDraft, "").Return(nil)
		index.On("Delete", ctx, []string{"opp-1"}).Return(true)

		_, rej, err := svc.Update(ctx, "opp-1", "user-1", &domain.OpportunityPatch{Status: &draft})
		assert.NoError(t, err)
		assert.Nil(t, rej)
		index.AssertExpectations(t)
		index.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("RejectedBackToDraftClearsModerationNotes", func(t *testing.T) {
		repo, index, _, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{
			ID:              "opp-1",
			OwnerID:         "user-1",
			Status:          domain.StatusRejected,
			ModerationNotes: "Your opportunity submission has the following issues:\n\n1. Spam\n\nPlease revise and resubmit.",
		}
		draft := domain.StatusDraft

		repo.On("GetByID", ctx, "opp-1").Return(o, nil)
		repo.On("Update", ctx, "opp-1", mock.MatchedBy(func(p *domain.OpportunityPatch) bool {
			return p.Status == nil
		})).Return(nil)
		repo.On("SetStatus", ctx, "opp-1", domain.StatusDraft, "").Return(nil)
		index.On("Delete", ctx, []string{"opp-1"}).Return(true)

		_, rej, err := svc.Update(ctx, "opp-1", "user-1", &domain.OpportunityPatch{Status: &draft})
		assert.NoError(t, err)
		assert.Nil(t, rej)
		repo.AssertExpectations(t)
	})

	t.Run("PublishViaPatchRunsGateOnMergedContent", func(t *testing.T) {
		repo, index, gate, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", OwnerID: "user-1", Title: "Hackathon", Status: domain.StatusDraft}
		published := domain.StatusPublished

		repo.On("GetByID", ctx, "opp-1").Return(o, nil)
		repo.On("Update", ctx, "opp-1", mock.AnythingOfType("*domain.OpportunityPatch")).Return(nil)
		gate.On("Moderate", ctx, mock.Anything).Return(true, nil)
		repo.On("SetStatus", ctx, "opp-1", domain.StatusPublished, "").Return(nil)
		index.On("Upsert", ctx, mock.Anything).Return(true)

		opp, rej, err := svc.Update(ctx, "opp-1", "user-1", &domain.OpportunityPatch{Status: &published})
		assert.NoError(t, err)
		assert.Nil(t, rej)
		assert.Equal(t, domain.StatusPublished, opp.Status)
		gate.AssertExpectations(t)
	})

	t.Run("RejectedRepublishComesOutOfIndex", func(t *testing.T) {
		repo, index, gate, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", OwnerID: "user-1", Title: "Now spam", Status: domain.StatusPublished}
		published := domain.StatusPublished

		repo.On("GetByID", ctx, "opp-1").Return(o, nil)
		repo.On("Update", ctx, "opp-1", mock.AnythingOfType("*domain.OpportunityPatch")).Return(nil)
		gate.On("Moderate", ctx, mock.Anything).Return(false, []string{"Contains profanity"})
		repo.On("SetStatus", ctx, "opp-1", domain.StatusRejected, mock.AnythingOfType("string")).Return(nil)
		index.On("Delete", ctx, []string{"opp-1"}).Return(true)

		opp, rej, err := svc.Update(ctx, "opp-1", "user-1", &domain.OpportunityPatch{Status: &published})
		assert.NoError(t, err)
		assert.NotNil(t, rej)
		assert.Equal(t, domain.StatusRejected, opp.Status)
		index.AssertExpectations(t)
	})
}

func TestOpportunityService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerDeleteCascadesToIndex", func(t *testing.T) {
		repo, index, _, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", OwnerID: "user-1", Status: domain.StatusPublished}

		repo.On("GetByID", ctx, "opp-1").Return(o, nil)
		repo.On("Delete", ctx, "opp-1").Return(nil)
		index.On("Delete", ctx, []string{"opp-1"}).Return(true)

		err := svc.Delete(ctx, "opp-1", "user-1")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
		index.AssertExpectations(t)
	})

	t.Run("NotOwner", func(t *testing.T) {
		repo, _, _, _, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", OwnerID: "user-1"}
		repo.On("GetByID", ctx, "opp-1").Return(o, nil)

		err := svc.Delete(ctx, "opp-1", "intruder")
		assert.ErrorIs(t, err, service.ErrNotOwner)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestOpportunityService_ResyncAll(t *testing.T) {
	ctx := context.Background()

	t.Run("PushesOnlyPublished", func(t *testing.T) {
		repo, index, _, _, svc := newOpportunityFixture()
		published := []domain.Opportunity{
			{ID: "opp-1", Status: domain.StatusPublished},
			{ID: "opp-2", Status: domain.StatusPublished},
		}
		repo.On("ListByStatus", ctx, domain.StatusPublished).Return(published, nil)
		index.On("ResyncAll", ctx, mock.Anything).Return(2)

		count, err := svc.ResyncAll(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("EmptyStoreSkipsIndex", func(t *testing.T) {
		repo, index, _, _, svc := newOpportunityFixture()
		repo.On("ListByStatus", ctx, domain.StatusPublished).Return([]domain.Opportunity{}, nil)

		count, err := svc.ResyncAll(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, count)
		index.AssertNotCalled(t, "ResyncAll", mock.Anything, mock.Anything)
	})
}

func TestOpportunityService_Notifications(t *testing.T) {
	ctx := context.Background()

	t.Run("PublishNotifiesOwner", func(t *testing.T) {
		repo, index, gate, email, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", OwnerEmail: "owner@example.com", Title: "Hackathon", Status: domain.StatusDraft}

		repo.On("GetByID", ctx, "opp-1").Return(o, nil)
		gate.On("Moderate", ctx, mock.Anything).Return(true, nil)
		repo.On("SetStatus", ctx, "opp-1", domain.StatusPublished, "").Return(nil)
		index.On("Upsert", ctx, mock.Anything).Return(true)
		email.On("SendPublishedNotification", ctx, "owner@example.com", "Hackathon").Return(nil)

		_, _, err := svc.Publish(ctx, "opp-1")
		assert.NoError(t, err)
		email.AssertExpectations(t)
	})

	t.Run("EmailFailureDoesNotFailPublish", func(t *testing.T) {
		repo, index, gate, email, svc := newOpportunityFixture()
		o := &domain.Opportunity{ID: "opp-1", OwnerEmail: "owner@example.com", Title: "Hackathon", Status: domain.StatusDraft}

		repo.On("GetByID", ctx, "opp-1").Return(o, nil)
		gate.On("Moderate", ctx, mock.Anything).Return(true, nil)
		repo.On("SetStatus", ctx, "opp-1", domain.StatusPublished, "").Return(nil)
		index.On("Upsert", ctx, mock.Anything).Return(true)
		email.On("SendPublishedNotification", ctx, "owner@example.com", "Hackathon").Return(assert.AnError)

		_, rej, err := svc.Publish(ctx, "opp-1")
		assert.NoError(t, err)
		assert.Nil(t, rej)
	})
}
