package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"depanku-backend/internal/domain"
	"depanku-backend/internal/repository"
)

type applicationRepository struct {
	client *firestore.Client
}

func newApplicationRepository(client *firestore.Client) repository.ApplicationRepository {
	return &applicationRepository{client: client}
}

func (r *applicationRepository) col() *firestore.CollectionRef {
	return r.client.Collection(applicationsCollection)
}

func (r *applicationRepository) Set(ctx context.Context, a *domain.Application) error {
	_, err := r.col().Doc(a.ID).Set(ctx, applicationDoc(a))
	return err
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return applicationFromSnap(snap), nil
}

func (r *applicationRepository) ListByOpportunity(ctx context.Context, opportunityID string) ([]domain.Application, error) {
	return r.queryMany(ctx, r.col().Where("opportunity_id", "==", opportunityID))
}

func (r *applicationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	return r.queryMany(ctx, r.col().Where("user_id", "==", userID))
}

func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

func (r *applicationRepository) queryMany(ctx context.Context, q firestore.Query) ([]domain.Application, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []domain.Application
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *applicationFromSnap(snap))
	}
	return out, nil
}

func applicationDoc(a *domain.Application) map[string]interface{} {
	responses := make([]map[string]interface{}, 0, len(a.Responses))
	for _, resp := range a.Responses {
		responses = append(responses, map[string]interface{}{
			"field_id": resp.FieldID,
			"label":    resp.Label,
			"value":    resp.Value,
		})
	}
	doc := map[string]interface{}{
		"opportunity_id": a.OpportunityID,
		"user_id":        a.UserID,
		"user_email":     a.UserEmail,
		"responses":      responses,
		"status":         a.Status,
		"created_at":     a.CreatedAt,
		"updated_at":     a.UpdatedAt,
		"submitted_at":   a.SubmittedAt,
	}
	if a.ReviewedAt != nil {
		doc["reviewed_at"] = *a.ReviewedAt
	}
	return doc
}

func applicationFromSnap(snap *firestore.DocumentSnapshot) *domain.Application {
	data := snap.Data()
	a := &domain.Application{
		ID:            snap.Ref.ID,
		OpportunityID: readString(data, "opportunity_id"),
		UserID:        readString(data, "user_id"),
		UserEmail:     readString(data, "user_email"),
		Status:        readString(data, "status"),
		CreatedAt:     readTime(data, "created_at"),
		UpdatedAt:     readTime(data, "updated_at"),
		SubmittedAt:   readTime(data, "submitted_at"),
	}
	if t := readTime(data, "reviewed_at"); !t.IsZero() {
		a.ReviewedAt = &t
	}
	if raw, ok := data["responses"].([]interface{}); ok {
		for _, entry := range raw {
			m, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			a.Responses = append(a.Responses, domain.FormResponse{
				FieldID: readString(m, "field_id"),
				Label:   readString(m, "label"),
				Value:   readString(m, "value"),
			})
		}
	}
	return a
}
