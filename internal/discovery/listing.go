package discovery

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// blockedListingHosts are search-engine and social hosts that never
// count as a company's own website.
var blockedListingHosts = []string{
	"google.com",
	"maps.google",
	"gstatic.com",
	"youtube.com",
	"facebook.com",
	"linkedin.com",
	"twitter.com",
}

// listingLocationPatterns are tried in order over the listing text.
var listingLocationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*[A-Z]{2,}`),
	regexp.MustCompile(`[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*[A-Z][a-z]+`),
	regexp.MustCompile(`(?i)(?:located in|based in|in)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
}

// Candidate is a raw listing hit before deduplication.
type Candidate struct {
	Name     string
	Domain   string // "" when the listing exposed no website
	Location string // "" when no location pattern matched
}

// ParseListing extracts company candidates from a search-result or map
// listing snapshot. Only anchors associated with a result heading count
// as entries, so pagination and navigation chrome never become
// companies. The heading text supplies the name and the href, after
// unwrapping redirect links and filtering engine/social hosts, the
// domain. Names shorter than two characters are dropped.
func ParseListing(snap *model.PageSnapshot) []Candidate {
	listingLocation := findListingLocation(snap.Text)

	var out []Candidate
	for _, a := range snap.Anchors {
		if !a.Heading {
			continue
		}
		name := strings.TrimSpace(a.Text)
		if len(name) < 2 {
			continue
		}

		domain := listingDomain(a.Href)
		out = append(out, Candidate{
			Name:     name,
			Domain:   domain,
			Location: listingLocation,
		})
	}
	return out
}

// listingDomain resolves an anchor href to a company domain: redirect
// wrappers are unwrapped, engine/social hosts rejected, "www." stripped.
// Returns "" when the href does not point at a company site.
func listingDomain(href string) string {
	href = unwrapRedirect(href)

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	for _, blocked := range blockedListingHosts {
		if strings.Contains(host, blocked) {
			return ""
		}
	}
	return strings.TrimPrefix(host, "www.")
}

// unwrapRedirect resolves search-engine "/url?q=" redirect links to
// their destination. Non-redirect hrefs pass through unchanged.
func unwrapRedirect(href string) string {
	if !strings.Contains(href, "/url?") {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("q"); target != "" {
		return target
	}
	return href
}

// findListingLocation returns the first location pattern match in the
// listing text, or "".
func findListingLocation(text string) string {
	for _, p := range listingLocationPatterns {
		groups := p.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		// Prefer the capture group when the pattern has one.
		if len(groups) > 1 && groups[1] != "" {
			return strings.TrimSpace(groups[1])
		}
		return strings.TrimSpace(groups[0])
	}
	return ""
}

// NewCompanyRecord builds the output record for an accepted candidate,
// inheriting the run's industry and falling back to the run's location
// when the listing had none.
func NewCompanyRecord(c Candidate, industry, fallbackLocation string, now time.Time) model.CompanyRecord {
	record := model.CompanyRecord{
		CompanyName: c.Name,
		Industry:    industry,
		ScrapedAt:   now,
	}
	if c.Domain != "" {
		record.Domain = model.Str(c.Domain)
	}
	location := c.Location
	if location == "" {
		location = fallbackLocation
	}
	if location != "" {
		record.Location = model.Str(location)
	}
	return record
}
