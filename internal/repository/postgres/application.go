package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"depanku-backend/internal/domain"
	"depanku-backend/internal/repository"
)

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, opportunity_id, user_id, user_email, responses, status, created_at, updated_at, submitted_at, reviewed_at`

func (r *applicationRepository) Set(ctx context.Context, a *domain.Application) error {
	responses, err := json.Marshal(a.Responses)
	if err != nil {
		return err
	}
	// Upsert keyed on the composite id keeps resubmission idempotent at the
	// storage layer as well.
	query := `INSERT INTO applications (id, opportunity_id, user_id, user_email, responses, status, created_at, updated_at, submitted_at, reviewed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          ON CONFLICT (id) DO UPDATE SET responses = EXCLUDED.responses, status = EXCLUDED.status, updated_at = EXCLUDED.updated_at, reviewed_at = EXCLUDED.reviewed_at`
	_, err = r.db.ExecContext(ctx, query,
		a.ID, a.OpportunityID, a.UserID, a.UserEmail, responses, a.Status,
		a.CreatedAt, a.UpdatedAt, a.SubmittedAt, a.ReviewedAt)
	return err
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	a, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	return a, err
}

func (r *applicationRepository) ListByOpportunity(ctx context.Context, opportunityID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE opportunity_id = $1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, opportunityID)
}

func (r *applicationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, userID)
}

func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *applicationRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]domain.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanApplication(row rowScanner) (*domain.Application, error) {
	a := &domain.Application{}
	var responses []byte
	err := row.Scan(&a.ID, &a.OpportunityID, &a.UserID, &a.UserEmail, &responses,
		&a.Status, &a.CreatedAt, &a.UpdatedAt, &a.SubmittedAt, &a.ReviewedAt)
	if err != nil {
		return nil, err
	}
	if len(responses) > 0 {
		if err := json.Unmarshal(responses, &a.Responses); err != nil {
			return nil, err
		}
	}
	return a, nil
}
