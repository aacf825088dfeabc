package search

import (
	"time"

	"depanku-backend/internal/domain"
)

// Record is the denormalized index document. Every record carries objectID
// (the index-side identifier) and id (the primary-store id) with the same
// value, so a search hit can be resolved back to the primary store without
// guessing.
type Record map[string]interface{}

// RecordFromOpportunity flattens an opportunity into an index record. Times
// are serialized as RFC 3339 strings; the index has no native time type.
func RecordFromOpportunity(o *domain.Opportunity) Record {
	rec := Record{
		"objectID":                o.ID,
		"id":                      o.ID,
		"owner_id":                o.OwnerID,
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
		"status":                  o.Status,
	}
	if len(o.Images) > 0 {
		rec["images"] = o.Images
	}
	if len(o.ApplicationForm) > 0 {
		rec["application_form"] = o.ApplicationForm
	}
	if !o.CreatedAt.IsZero() {
		rec["created_at"] = o.CreatedAt.Format(time.RFC3339)
	}
	return rec
}
