package domain

import "time"

// Opportunity lifecycle statuses. "Unpublished" is not a distinct status;
// it is a transition back to draft.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusRejected  = "rejected"
)

// Opportunity is a listing (scholarship, competition, program) owned by a user.
type Opportunity struct {
	ID         string `json:"id"`
	OwnerID    string `json:"owner_id"`
	OwnerEmail string `json:"owner_email"`

	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Organization string   `json:"organization"`
	Type         string   `json:"type"` // research, competition, youth-program, community
	Categories   []string `json:"categories"`
	Tags         []string `json:"tags"`

	Location              string            `json:"location,omitempty"`
	Deadline              string            `json:"deadline,omitempty"` // ISO date or "indefinite"
	HasIndefiniteDeadline bool              `json:"has_indefinite_deadline,omitempty"`
	URL                   string            `json:"url,omitempty"`
	Requirements          string            `json:"requirements,omitempty"`
	Benefits              string            `json:"benefits,omitempty"`
	Eligibility           string            `json:"eligibility,omitempty"`
	Cost                  string            `json:"cost,omitempty"`
	Duration              string            `json:"duration,omitempty"`
	ApplicationProcess    string            `json:"application_process,omitempty"`
	ContactEmail          string            `json:"contact_email,omitempty"`
	Images                []string          `json:"images,omitempty"`
	SocialMedia           map[string]string `json:"social_media,omitempty"`
	ApplicationForm       []FormField       `json:"application_form,omitempty"`

	Status          string    `json:"status"`
	ModerationNotes string    `json:"moderation_notes,omitempty"` // present only when rejected
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FormField is one entry of a custom application form schema.
type FormField struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Type     string   `json:"type"` // text, textarea, select, checkbox, file
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// OpportunityPatch is a partial update. Nil fields are left untouched by the
// repository; the status field participates in the publish/unpublish gate and
// is handled by the service, never written blindly.
type OpportunityPatch struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Organization *string   `json:"organization,omitempty"`
	Type         *string   `json:"type,omitempty"`
	Categories   *[]string `json:"categories,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`

	Location              *string            `json:"location,omitempty"`
	Deadline              *string            `json:"deadline,omitempty"`
	HasIndefiniteDeadline *bool              `json:"has_indefinite_deadline,omitempty"`
	URL                   *string            `json:"url,omitempty"`
	Requirements          *string            `json:"requirements,omitempty"`
	Benefits              *string            `json:"benefits,omitempty"`
	Eligibility           *string            `json:"eligibility,omitempty"`
	Cost                  *string            `json:"cost,omitempty"`
	Duration              *string            `json:"duration,omitempty"`
	ApplicationProcess    *string            `json:"application_process,omitempty"`
	ContactEmail          *string            `json:"contact_email,omitempty"`
	Images                *[]string          `json:"images,omitempty"`
	SocialMedia           *map[string]string `json:"social_media,omitempty"`
	ApplicationForm       *[]FormField       `json:"application_form,omitempty"`

	Status *string `json:"status,omitempty"`
}

// CopyContentFrom replaces every mutable content field of o with the values
// from src. Used by the draft resolver: an autosave is a full replace, not a
// merge, so fields cleared in the editor disappear from the stored draft too.
func (o *Opportunity) CopyContentFrom(src *Opportunity) {
	o.Title = src.Title
	o.Description = src.Description
	o.Organization = src.Organization
	o.Type = src.Type
	o.Categories = src.Categories
	o.Tags = src.Tags
	o.Location = src.Location
	o.Deadline = src.Deadline
	o.HasIndefiniteDeadline = src.HasIndefiniteDeadline
	o.URL = src.URL
	o.Requirements = src.Requirements
	o.Benefits = src.Benefits
	o.Eligibility = src.Eligibility
	o.Cost = src.Cost
	o.Duration = src.Duration
	o.ApplicationProcess = src.ApplicationProcess
	o.ContactEmail = src.ContactEmail
	o.Images = src.Images
	o.SocialMedia = src.SocialMedia
	o.ApplicationForm = src.ApplicationForm
}
