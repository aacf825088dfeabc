package moderation

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"depanku-backend/internal/config"
	"depanku-backend/internal/domain"
	"depanku-backend/internal/logger"
)

// Content carries the human-authored fields under review. Structural fields
// (tags, dates, ids) are never sent to the classifier.
type Content struct {
	Title              string
	Description        string
	Organization       string
	Requirements       string
	Benefits           string
	Eligibility        string
	ApplicationProcess string
}

// ContentFromOpportunity extracts the moderatable fields of a listing.
func ContentFromOpportunity(o *domain.Opportunity) Content {
	return Content{
		Title:              o.Title,
		Description:        o.Description,
		Organization:       o.Organization,
		Requirements:       o.Requirements,
		Benefits:           o.Benefits,
		Eligibility:        o.Eligibility,
		ApplicationProcess: o.ApplicationProcess,
	}
}

// Gate is the content-moderation check run before a listing becomes publicly
// searchable. Moderate never returns an error: a classifier outage fails
// open so a third-party problem cannot block legitimate publishing. Every
// fail-open decision is logged at warning level.
type Gate interface {
	Moderate(ctx context.Context, c Content) (approved bool, issues []string)
}

const systemPrompt = `You are a content moderator for an educational opportunities platform. Your job is to review opportunity submissions and identify any issues.

<moderation_criteria>
1. Profanity or vulgar language
2. Discriminatory content (racism, sexism, etc.)
3. Spam or misleading information
4. Inappropriate or offensive content
5. Scams or fraudulent opportunities
6. Overly promotional/sales language
7. Irrelevant content
</moderation_criteria>

<response_format>
If the content is APPROPRIATE, respond with:
APPROVED

If the content has ISSUES, respond with a numbered list of specific problems:
REJECTED
1. [Brief specific issue with quote if applicable]
2. [Another issue]

Be strict but fair. Educational content should be professional and appropriate for students.
</response_format>`

// GeminiGate moderates content with the Gemini API.
type GeminiGate struct {
	client *genai.Client
	model  string
}

// NewGeminiGate builds the gate once at startup. With no API key the gate is
// permanently fail-open.
func NewGeminiGate(ctx context.Context, cfg config.ModerationConfig) *GeminiGate {
	g := &GeminiGate{model: cfg.Model}
	if cfg.GeminiAPIKey == "" {
		logger.Warn("Gemini API key not configured, moderation will approve everything")
		return g
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Error("Failed to initialize Gemini client, moderation will approve everything", "error", err)
		return g
	}
	g.client = client
	return g
}

// Moderate sends the content to the classifier and parses its verdict.
func (g *GeminiGate) Moderate(ctx context.Context, c Content) (bool, []string) {
	if g.client == nil {
		logger.FailOpen("moderation", "client not configured")
		return true, nil
	}

	prompt := fmt.Sprintf("%s\n\nPlease review this opportunity submission:\n\n%s", systemPrompt, contentBlock(c))

	logger.ExternalServiceCall("moderation", "generate_content", "model", g.model)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.3),
		MaxOutputTokens: 500,
	})
	if err != nil {
		logger.ExternalServiceResult("moderation", "generate_content", err)
		logger.FailOpen("moderation", "classifier call failed", "error", err)
		return true, nil
	}
	logger.ExternalServiceResult("moderation", "generate_content", nil)

	verdict := resp.Text()
	logger.Debug("Moderation verdict received", "verdict", verdict)

	approved, issues, parsed := ParseVerdict(verdict)
	if !parsed {
		logger.FailOpen("moderation", "unexpected verdict format", "verdict", verdict)
		return true, nil
	}
	return approved, issues
}

// contentBlock renders the fields under review as a tagged block so quoted
// issues can point at a specific field.
func contentBlock(c Content) string {
	return fmt.Sprintf(`<opportunity_submission>
    <title>%s</title>
    <description>%s</description>
    <organization>%s</organization>
    <requirements>%s</requirements>
    <benefits>%s</benefits>
    <eligibility>%s</eligibility>
    <application_process>%s</application_process>
</opportunity_submission>`,
		c.Title, c.Description, c.Organization, c.Requirements, c.Benefits, c.Eligibility, c.ApplicationProcess)
}
