package domain

// OpportunityTemplate pre-fills the editor for a given listing type.
type OpportunityTemplate struct {
	Type         string   `json:"type"`
	Categories   []string `json:"category"`
	Tags         []string `json:"tags"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"`
	Benefits     string   `json:"benefits"`
}

// OpportunityTemplates maps a listing type to its starter template.
var OpportunityTemplates = map[string]OpportunityTemplate{
	"research": {
		Type:         "research",
		Categories:   []string{"STEM", "Research"},
		Tags:         []string{"research", "academic", "science"},
		Description:  "A research opportunity for students interested in...",
		Requirements: "• Undergraduate or graduate student\n• Strong academic record\n• Interest in research",
		Benefits:     "• Hands-on research experience\n• Mentorship from faculty\n• Potential publication opportunities",
	},
	"competition": {
		Type:         "competition",
		Categories:   []string{"Competition"},
		Tags:         []string{"competition", "challenge"},
		Description:  "A competitive program where participants...",
		Requirements: "• Age requirements\n• Team size requirements\n• Submission format",
		Benefits:     "• Prize money\n• Recognition\n• Networking opportunities",
	},
	"youth-program": {
		Type:         "youth-program",
		Categories:   []string{"Youth Development", "Leadership"},
		Tags:         []string{"youth", "leadership", "development"},
		Description:  "A youth program designed to...",
		Requirements: "• Age range: 15-25\n• Leadership interest\n• Community engagement",
		Benefits:     "• Leadership training\n• Certificate of completion\n• Networking with peers",
	},
	"community": {
		Type:         "community",
		Categories:   []string{"Community", "Networking"},
		Tags:         []string{"community", "networking", "collaboration"},
		Description:  "A community for individuals interested in...",
		Requirements: "• Open to all\n• Interest in the field\n• Active participation",
		Benefits:     "• Peer support\n• Knowledge sharing\n• Collaborative projects",
	},
}

// TagPresets is the curated tag vocabulary offered by the editor.
var TagPresets = []string{
	"stem", "research", "science", "technology", "engineering", "math",
	"coding", "programming", "ai", "machine-learning", "data-science",
	"web-development", "mobile-development", "cybersecurity",
	"leadership", "entrepreneurship", "business", "innovation",
	"design", "art", "music", "writing", "literature",
	"environment", "sustainability", "climate", "social-impact",
	"health", "medicine", "psychology", "education",
	"international", "exchange", "scholarship", "fellowship",
	"hackathon", "competition", "challenge", "contest",
	"online", "hybrid", "in-person", "remote",
	"free", "paid", "funded", "stipend",
}
