package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// emailExclusions disqualify placeholder and role addresses. Matching is
// case-insensitive against the whole address.
var emailExclusions = []string{
	"example.com",
	"yourdomain",
	"placeholder",
	"noreply",
	"no-reply",
	"privacy@",
	"abuse@",
}

// phonePatterns is a precedence list, not exhaustive validation: the
// north-american grouping first, then generic international digit
// groups. Short numeric sequences may false-positive; that is an
// accepted heuristic cost.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
	regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{2,4}[-.\s]?\d{2,4}[-.\s]?\d{0,4}`),
}

// Email scans the page text and returns the first address that is not
// on the exclusion list. If every match is excluded the result is nil,
// never a partially valid address.
func Email(snap *model.PageSnapshot) *string {
	for _, match := range emailPattern.FindAllString(snap.Text, -1) {
		if emailExcluded(match) {
			continue
		}
		email := strings.TrimSpace(match)
		return &email
	}
	return nil
}

func emailExcluded(addr string) bool {
	lower := strings.ToLower(addr)
	for _, excl := range emailExclusions {
		if strings.Contains(lower, excl) {
			return true
		}
	}
	return false
}

// Phone returns the first pattern's first match against the page text,
// trimmed, or nil when no pattern matches.
func Phone(snap *model.PageSnapshot) *string {
	for _, p := range phonePatterns {
		if match := p.FindString(snap.Text); match != "" {
			phone := strings.TrimSpace(match)
			return &phone
		}
	}
	return nil
}
