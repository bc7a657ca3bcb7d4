package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// locationKeywords anchor a search window into the page text, in
// precedence order.
var locationKeywords = []string{"address:", "location:", "located in", "based in"}

const (
	// locationWindow is how many characters after a keyword are scanned
	// for a city/state pattern.
	locationWindow = 120

	// footerWindow is the trailing slice of page text treated as the
	// footer region for the fallback scan.
	footerWindow = 1500
)

// cityStatePattern matches "City, ST" and "City Name, Region" shapes:
// capitalized words, a comma, then a state code or capitalized region.
var cityStatePattern = regexp.MustCompile(`[A-Z][a-z]+(?: [A-Z][a-z]+)*,\s*(?:[A-Z]{2}\b|[A-Z][a-z]+)`)

// Location searches the page text for a location keyword and applies
// the city/state pattern within a fixed window after the first keyword
// found. When no keyword yields a match it falls back to scanning the
// footer region with the same pattern. Nil when both fail.
func Location(snap *model.PageSnapshot) *string {
	lower := strings.ToLower(snap.Text)
	for _, kw := range locationKeywords {
		idx := strings.Index(lower, kw)
		if idx < 0 {
			continue
		}
		start := idx + len(kw)
		end := start + locationWindow
		if end > len(snap.Text) {
			end = len(snap.Text)
		}
		if match := cityStatePattern.FindString(snap.Text[start:end]); match != "" {
			loc := strings.TrimSpace(match)
			return &loc
		}
	}

	// Footer fallback: addresses commonly live at the bottom of the page.
	footerStart := len(snap.Text) - footerWindow
	if footerStart < 0 {
		footerStart = 0
	}
	if match := cityStatePattern.FindString(snap.Text[footerStart:]); match != "" {
		loc := strings.TrimSpace(match)
		return &loc
	}
	return nil
}
