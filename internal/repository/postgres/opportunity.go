package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"depanku-backend/internal/domain"
	"depanku-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type opportunityRepository struct {
	db *sql.DB
}

func NewOpportunityRepository(db *sql.DB) repository.OpportunityRepository {
	return &opportunityRepository{db: db}
}

const opportunityColumns = `id, owner_id, owner_email, title, COALESCE(description, ''), COALESCE(organization, ''), COALESCE(type, ''), categories, tags, COALESCE(location, ''), COALESCE(deadline, ''), has_indefinite_deadline, COALESCE(url, ''), COALESCE(requirements, ''), COALESCE(benefits, ''), COALESCE(eligibility, ''), COALESCE(cost, ''), COALESCE(duration, ''), COALESCE(application_process, ''), COALESCE(contact_email, ''), images, social_media, application_form, status, COALESCE(moderation_notes, ''), created_at, updated_at`

func (r *opportunityRepository) Create(ctx context.Context, o *domain.Opportunity) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	social, form, err := marshalDocumentFields(o)
	if err != nil {
		return err
	}
	query := `INSERT INTO opportunities (id, owner_id, owner_email, title, description, organization, type, categories, tags, location, deadline, has_indefinite_deadline, url, requirements, benefits, eligibility, cost, duration, application_process, contact_email, images, social_media, application_form, status, moderation_notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, now(), now()) RETURNING created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		o.ID, o.OwnerID, o.OwnerEmail, o.Title, o.Description, o.Organization, o.Type,
		pq.Array(o.Categories), pq.Array(o.Tags), o.Location, o.Deadline, o.HasIndefiniteDeadline,
		o.URL, o.Requirements, o.Benefits, o.Eligibility, o.Cost, o.Duration,
		o.ApplicationProcess, o.ContactEmail, pq.Array(o.Images), social, form,
		o.Status, o.ModerationNotes,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
}

func (r *opportunityRepository) GetByID(ctx context.Context, id string) (*domain.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE id = $1`
	o, err := scanOpportunity(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	return o, err
}

func (r *opportunityRepository) Replace(ctx context.Context, o *domain.Opportunity) error {
	social, form, err := marshalDocumentFields(o)
	if err != nil {
		return err
	}
	query := `UPDATE opportunities SET title=$1, description=$2, organization=$3, type=$4, categories=$5, tags=$6, location=$7, deadline=$8, has_indefinite_deadline=$9, url=$10, requirements=$11, benefits=$12, eligibility=$13, cost=$14, duration=$15, application_process=$16, contact_email=$17, images=$18, social_media=$19, application_form=$20, status=$21, moderation_notes=$22, updated_at=now() WHERE id=$23`
	res, err := r.db.ExecContext(ctx, query,
		o.Title, o.Description, o.Organization, o.Type, pq.Array(o.Categories), pq.Array(o.Tags),
		o.Location, o.Deadline, o.HasIndefiniteDeadline, o.URL, o.Requirements, o.Benefits,
		o.Eligibility, o.Cost, o.Duration, o.ApplicationProcess, o.ContactEmail,
		pq.Array(o.Images), social, form, o.Status, o.ModerationNotes, o.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *opportunityRepository) Update(ctx context.Context, id string, patch *domain.OpportunityPatch) error {
	set := []string{}
	args := []interface{}{}
	add := func(col string, val interface{}) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s=$%d", col, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Organization != nil {
		add("organization", *patch.Organization)
	}
	if patch.Type != nil {
		add("type", *patch.Type)
	}
	if patch.Categories != nil {
		add("categories", pq.Array(*patch.Categories))
	}
	if patch.Tags != nil {
		add("tags", pq.Array(*patch.Tags))
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.Deadline != nil {
		add("deadline", *patch.Deadline)
	}
	if patch.HasIndefiniteDeadline != nil {
		add("has_indefinite_deadline", *patch.HasIndefiniteDeadline)
	}
	if patch.URL != nil {
		add("url", *patch.URL)
	}
	if patch.Requirements != nil {
		add("requirements", *patch.Requirements)
	}
	if patch.Benefits != nil {
		add("benefits", *patch.Benefits)
	}
	if patch.Eligibility != nil {
		add("eligibility", *patch.Eligibility)
	}
	if patch.Cost != nil {
		add("cost", *patch.Cost)
	}
	if patch.Duration != nil {
		add("duration", *patch.Duration)
	}
	if patch.ApplicationProcess != nil {
		add("application_process", *patch.ApplicationProcess)
	}
	if patch.ContactEmail != nil {
		add("contact_email", *patch.ContactEmail)
	}
	if patch.Images != nil {
		add("images", pq.Array(*patch.Images))
	}
	if patch.SocialMedia != nil {
		data, err := json.Marshal(*patch.SocialMedia)
		if err != nil {
			return err
		}
		add("social_media", data)
	}
	if patch.ApplicationForm != nil {
		data, err := json.Marshal(*patch.ApplicationForm)
		if err != nil {
			return err
		}
		add("application_form", data)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE opportunities SET %s, updated_at=now() WHERE id=$%d", strings.Join(set, ", "), len(args))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *opportunityRepository) SetStatus(ctx context.Context, id, status, moderationNotes string) error {
	query := `UPDATE opportunities SET status=$1, moderation_notes=$2, updated_at=now() WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, status, moderationNotes, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *opportunityRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM opportunities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *opportunityRepository) List(ctx context.Context) ([]domain.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities ORDER BY created_at DESC`
	return r.queryMany(ctx, query)
}

func (r *opportunityRepository) ListByStatus(ctx context.Context, status string) ([]domain.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE status = $1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, status)
}

func (r *opportunityRepository) ListByOwner(ctx context.Context, ownerID, status string) ([]domain.Opportunity, error) {
	if status == "" {
		query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE owner_id = $1 ORDER BY created_at DESC`
		return r.queryMany(ctx, query, ownerID)
	}
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE owner_id = $1 AND status = $2 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, ownerID, status)
}

func (r *opportunityRepository) FindDraft(ctx context.Context, ownerID, title string) (*domain.Opportunity, error) {
	if title == "" {
		return nil, repository.ErrNotFound
	}
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE owner_id = $1 AND status = $2 AND title = $3 LIMIT 1`
	o, err := scanOpportunity(r.db.QueryRowContext(ctx, query, ownerID, domain.StatusDraft, title))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	return o, err
}

func (r *opportunityRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]domain.Opportunity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOpportunity(row rowScanner) (*domain.Opportunity, error) {
	o := &domain.Opportunity{}
	var social, form []byte
	err := row.Scan(
		&o.ID, &o.OwnerID, &o.OwnerEmail, &o.Title, &o.Description, &o.Organization, &o.Type,
		pq.Array(&o.Categories), pq.Array(&o.Tags), &o.Location, &o.Deadline, &o.HasIndefiniteDeadline,
		&o.URL, &o.Requirements, &o.Benefits, &o.Eligibility, &o.Cost, &o.Duration,
		&o.ApplicationProcess, &o.ContactEmail, pq.Array(&o.Images), &social, &form,
		&o.Status, &o.ModerationNotes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(social) > 0 {
		if err := json.Unmarshal(social, &o.SocialMedia); err != nil {
			return nil, fmt.Errorf("corrupt social_media document field: %w", err)
		}
	}
	if len(form) > 0 {
		if err := json.Unmarshal(form, &o.ApplicationForm); err != nil {
			return nil, fmt.Errorf("corrupt application_form document field: %w", err)
		}
	}
	return o, nil
}

func marshalDocumentFields(o *domain.Opportunity) ([]byte, []byte, error) {
	social, err := json.Marshal(o.SocialMedia)
	if err != nil {
		return nil, nil, err
	}
	form, err := json.Marshal(o.ApplicationForm)
	if err != nil {
		return nil, nil, err
	}
	return social, form, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
