// Package scorer computes the website quality assessment and the lead
// score. Both formulas are fixed contracts: consumers band on exact
// thresholds, so the weights here are not tunable per call.
package scorer

import (
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Additive quality weights. They sum to 100.
const (
	weightSecure       = 20
	weightViewport     = 20
	weightLogo         = 15
	weightContactPage  = 10
	weightImageCount   = 10
	weightModernLayout = 15
	weightSocial       = 10

	// minImages is the image-count threshold for the image signal.
	minImages = 5
)

// Rating band thresholds.
const (
	goodThreshold    = 70
	averageThreshold = 40
)

// QualityAssessment is the 0-100 score with its qualitative band and
// the derived branding-need flag.
type QualityAssessment struct {
	Score         int
	Rating        string
	BrandingNeeds bool
	LoadTimeMs    int64 // informational only, never scored
}

// AssessQuality scores the boolean signals derived from a snapshot.
// hasSocial reports whether at least one recognized social link was
// extracted from the page.
func AssessQuality(snap *model.PageSnapshot, hasSocial bool) QualityAssessment {
	score := 0
	if snap.Secure() {
		score += weightSecure
	}
	if snap.HasViewportMeta {
		score += weightViewport
	}
	if snap.HasLogoImage {
		score += weightLogo
	}
	if hasContactAnchor(snap) {
		score += weightContactPage
	}
	if snap.ImageCount >= minImages {
		score += weightImageCount
	}
	if snap.HasModernLayout {
		score += weightModernLayout
	}
	if hasSocial {
		score += weightSocial
	}

	rating, branding := RateQuality(score)
	return QualityAssessment{
		Score:         score,
		Rating:        rating,
		BrandingNeeds: branding,
		LoadTimeMs:    snap.LoadTimeMs,
	}
}

// RateQuality maps a quality score to its band and branding-need flag:
// >=70 Good, 40-69 Average, <40 Poor. Anything below Good indicates a
// branding opportunity.
func RateQuality(score int) (rating string, brandingNeeds bool) {
	switch {
	case score >= goodThreshold:
		return model.RatingGood, false
	case score >= averageThreshold:
		return model.RatingAverage, true
	default:
		return model.RatingPoor, true
	}
}

// hasContactAnchor reports whether any anchor looks like a contact-page
// link, by href or visible text.
func hasContactAnchor(snap *model.PageSnapshot) bool {
	for _, a := range snap.Anchors {
		probe := strings.ToLower(a.Text + " " + a.Href)
		if strings.Contains(probe, "contact") {
			return true
		}
	}
	return false
}
