package domain

import (
	"fmt"
	"time"
)

// Application statuses
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Application is a user's submission against an opportunity's application
// form. The document id is composite so resubmission overwrites instead of
// duplicating: at most one application per (opportunity, applicant) pair.
type Application struct {
	ID            string         `json:"id"`
	OpportunityID string         `json:"opportunity_id"`
	UserID        string         `json:"user_id"`
	UserEmail     string         `json:"user_email"`
	Responses     []FormResponse `json:"responses"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	SubmittedAt   time.Time      `json:"submitted_at"`
	ReviewedAt    *time.Time     `json:"reviewed_at,omitempty"`
}

// FormResponse is the applicant's answer to one form field.
type FormResponse struct {
	FieldID string `json:"field_id"`
	Label   string `json:"label"`
	Value   string `json:"value"`
}

// ApplicationID builds the composite document id for an application.
func ApplicationID(opportunityID, userID string) string {
	return fmt.Sprintf("%s_%s", opportunityID, userID)
}
