package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"depanku-backend/internal/domain"
	"depanku-backend/internal/repository"
)

type opportunityRepository struct {
	client *firestore.Client
}

func newOpportunityRepository(client *firestore.Client) repository.OpportunityRepository {
	return &opportunityRepository{client: client}
}

func (r *opportunityRepository) col() *firestore.CollectionRef {
	return r.client.Collection(opportunitiesCollection)
}

func (r *opportunityRepository) Create(ctx context.Context, o *domain.Opportunity) error {
	doc := r.col().NewDoc()
	data := opportunityDoc(o)
	data["created_at"] = firestore.ServerTimestamp
	if _, err := doc.Set(ctx, data); err != nil {
		return err
	}
	o.ID = doc.ID

	// Read back the server-assigned timestamps.
	snap, err := doc.Get(ctx)
	if err == nil {
		o.CreatedAt = readTime(snap.Data(), "created_at")
		o.UpdatedAt = readTime(snap.Data(), "updated_at")
	}
	return nil
}

func (r *opportunityRepository) GetByID(ctx context.Context, id string) (*domain.Opportunity, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return opportunityFromSnap(snap), nil
}

func (r *opportunityRepository) Replace(ctx context.Context, o *domain.Opportunity) error {
	data := opportunityDoc(o)
	data["created_at"] = o.CreatedAt
	_, err := r.col().Doc(o.ID).Set(ctx, data)
	if isNotFound(err) {
		return repository.ErrNotFound
	}
	return err
}

func (r *opportunityRepository) Update(ctx context.Context, id string, patch *domain.OpportunityPatch) error {
	updates := patchUpdates(patch)
	if len(updates) == 0 {
		return nil
	}
	updates = append(updates, firestore.Update{Path: "updated_at", Value: firestore.ServerTimestamp})
	_, err := r.col().Doc(id).Update(ctx, updates)
	if isNotFound(err) {
		return repository.ErrNotFound
	}
	return err
}

func (r *opportunityRepository) SetStatus(ctx context.Context, id, status, moderationNotes string) error {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
		{Path: "moderation_notes", Value: moderationNotes},
		{Path: "updated_at", Value: firestore.ServerTimestamp},
	})
	if isNotFound(err) {
		return repository.ErrNotFound
	}
	return err
}

func (r *opportunityRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

func (r *opportunityRepository) List(ctx context.Context) ([]domain.Opportunity, error) {
	return r.queryMany(ctx, r.col().Query)
}

func (r *opportunityRepository) ListByStatus(ctx context.Context, status string) ([]domain.Opportunity, error) {
	return r.queryMany(ctx, r.col().Where("status", "==", status))
}

func (r *opportunityRepository) ListByOwner(ctx context.Context, ownerID, status string) ([]domain.Opportunity, error) {
	q := r.col().Where("owner_id", "==", ownerID)
	if status != "" {
		q = q.Where("status", "==", status)
	}
	return r.queryMany(ctx, q)
}

func (r *opportunityRepository) FindDraft(ctx context.Context, ownerID, title string) (*domain.Opportunity, error) {
	if title == "" {
		return nil, repository.ErrNotFound
	}
	iter := r.col().
		Where("owner_id", "==", ownerID).
		Where("status", "==", domain.StatusDraft).
		Where("title", "==", title).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return opportunityFromSnap(snap), nil
}

func (r *opportunityRepository) queryMany(ctx context.Context, q firestore.Query) ([]domain.Opportunity, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []domain.Opportunity
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *opportunityFromSnap(snap))
	}
	return out, nil
}

// opportunityDoc flattens the domain entity into a Firestore document.
// updated_at is always server-assigned.
func opportunityDoc(o *domain.Opportunity) map[string]interface{} {
	return map[string]interface{}{
		"owner_id":                o.OwnerID,
		"owner_email":             o.OwnerEmail,
		"title":                   o.Title,
		"description":             o.Description,
		"organization":            o.Organization,
		"type":                    o.Type,
		"categories":              o.Categories,
		"tags":                    o.Tags,
		"location":                o.Location,
		"deadline":                o.Deadline,
		"has_indefinite_deadline": o.HasIndefiniteDeadline,
		"url":                     o.URL,
		"requirements":            o.Requirements,
		"benefits":                o.Benefits,
		"eligibility":             o.Eligibility,
		"cost":                    o.Cost,
		"duration":                o.Duration,
		"application_process":     o.ApplicationProcess,
		"contact_email":           o.ContactEmail,
		"images":                  o.Images,
		"social_media":            o.SocialMedia,
		"application_form":        formFieldDocs(o.ApplicationForm),
		"status":                  o.Status,
		"moderation_notes":        o.ModerationNotes,
		"updated_at":              firestore.ServerTimestamp,
	}
}

// formFieldDocs flattens form fields into the document key scheme
// opportunityFromSnap reads back. FormField carries only json tags, which the
// Firestore client ignores, so structs must never be written directly.
func formFieldDocs(fields []domain.FormField) []map[string]interface{} {
	forms := make([]map[string]interface{}, 0, len(fields))
	for _, f := range fields {
		forms = append(forms, map[string]interface{}{
			"id":       f.ID,
			"label":    f.Label,
			"type":     f.Type,
			"required": f.Required,
			"options":  f.Options,
		})
	}
	return forms
}

func opportunityFromSnap(snap *firestore.DocumentSnapshot) *domain.Opportunity {
	data := snap.Data()
	o := &domain.Opportunity{
		ID:                    snap.Ref.ID,
		OwnerID:               readString(data, "owner_id"),
		OwnerEmail:            readString(data, "owner_email"),
		Title:                 readString(data, "title"),
		Description:           readString(data, "description"),
		Organization:          readString(data, "organization"),
		Type:                  readString(data, "type"),
		Categories:            readStringSlice(data, "categories"),
		Tags:                  readStringSlice(data, "tags"),
		Location:              readString(data, "location"),
		Deadline:              readString(data, "deadline"),
		HasIndefiniteDeadline: readBool(data, "has_indefinite_deadline"),
		URL:                   readString(data, "url"),
		Requirements:          readString(data, "requirements"),
		Benefits:              readString(data, "benefits"),
		Eligibility:           readString(data, "eligibility"),
		Cost:                  readString(data, "cost"),
		Duration:              readString(data, "duration"),
		ApplicationProcess:    readString(data, "application_process"),
		ContactEmail:          readString(data, "contact_email"),
		Images:                readStringSlice(data, "images"),
		SocialMedia:           readStringMap(data, "social_media"),
		Status:                readString(data, "status"),
		ModerationNotes:       readString(data, "moderation_notes"),
		CreatedAt:             readTime(data, "created_at"),
		UpdatedAt:             readTime(data, "updated_at"),
	}

	if raw, ok := data["application_form"].([]interface{}); ok {
		for _, entry := range raw {
			m, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			o.ApplicationForm = append(o.ApplicationForm, domain.FormField{
				ID:       readString(m, "id"),
				Label:    readString(m, "label"),
				Type:     readString(m, "type"),
				Required: readBool(m, "required"),
				Options:  readStringSlice(m, "options"),
			})
		}
	}
	return o
}

func patchUpdates(patch *domain.OpportunityPatch) []firestore.Update {
	var updates []firestore.Update
	add := func(path string, val interface{}) {
		updates = append(updates, firestore.Update{Path: path, Value: val})
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
		add("categories", *patch.Categories)
	}
	if patch.Tags != nil {
		add("tags", *patch.Tags)
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
		add("images", *patch.Images)
	}
	if patch.SocialMedia != nil {
		add("social_media", *patch.SocialMedia)
	}
	if patch.ApplicationForm != nil {
		add("application_form", formFieldDocs(*patch.ApplicationForm))
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	return updates
}

func readString(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func readBool(data map[string]interface{}, key string) bool {
	if v, ok := data[key].(bool); ok {
		return v
	}
	return false
}

func readTime(data map[string]interface{}, key string) time.Time {
	if v, ok := data[key].(time.Time); ok {
		return v
	}
	return time.Time{}
}

func readStringSlice(data map[string]interface{}, key string) []string {
	raw, ok := data[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func readStringMap(data map[string]interface{}, key string) map[string]string {
	raw, ok := data[key].(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
