package moderation

import (
	"fmt"
	"strings"
)

// The classifier answers with a tagged verdict:
//
//	APPROVED
//
// or
//
//	REJECTED
//	1. <issue>
//	2. <issue>
//
// ParseVerdict tolerates stray whitespace and never fails hard: parsed
// reports whether the response matched the grammar, and the caller maps an
// unparseable response to approval (fail open).
func ParseVerdict(response string) (approved bool, issues []string, parsed bool) {
	text := strings.TrimSpace(response)

	if strings.HasPrefix(text, "APPROVED") {
		return true, nil, true
	}
	if !strings.HasPrefix(text, "REJECTED") {
		return true, nil, false
	}

	lines := strings.Split(text, "\n")[1:]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || line[0] < '0' || line[0] > '9' {
			continue
		}
		// Strip the "N. " numbering; keep the line as-is if it isn't there.
		if _, rest, found := strings.Cut(line, ". "); found {
			line = rest
		}
		issues = append(issues, line)
	}
	return false, issues, true
}

// Summary renders issues as a user-facing explanation. Empty input yields an
// empty string.
func Summary(issues []string) string {
	if len(issues) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Your opportunity submission has the following issues:\n\n")
	for i, issue := range issues {
		fmt.Fprintf(&b, "%d. %s\n", i+1, issue)
	}
	b.WriteString("\nPlease revise and resubmit.")
	return b.String()
}
