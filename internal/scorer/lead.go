package scorer

import "github.com/sells-group/leadgen-cli/internal/model"

// Lead score weights, grouped by subtotal. Contact maxes at 40, website
// quality at 30, social at 15, completeness at 15.
const (
	scoreEmail         = 20
	scorePhone         = 15
	scoreDecisionMaker = 5

	scoreQualityPoor    = 30 // quality < 40: biggest branding opportunity
	scoreQualityAverage = 20 // 40-69
	scoreQualityGood    = 10 // >= 70

	scoreLinkedIn = 5
	scoreFacebook = 5
	scoreOtherSoc = 5 // twitter or instagram
	scoreIndustry = 5
	scoreLocation = 5
	scoreHasName  = 5
	maxLeadScore  = 100
)

// ScoreLead aggregates extracted fields into a single 0-100 sales-
// readiness score. The formula is deterministic: the same fields always
// produce the same score.
func ScoreLead(f *model.ExtractedFields) int {
	score := 0

	// Contactability.
	if f.Email != nil {
		score += scoreEmail
	}
	if f.Phone != nil {
		score += scorePhone
	}
	if f.DecisionMakerName != nil {
		score += scoreDecisionMaker
	}

	// Website quality, banded inversely: worse sites are better
	// branding prospects.
	if f.WebsiteQualityScore != nil {
		switch q := *f.WebsiteQualityScore; {
		case q < averageThreshold:
			score += scoreQualityPoor
		case q < goodThreshold:
			score += scoreQualityAverage
		default:
			score += scoreQualityGood
		}
	}

	// Social presence.
	if f.LinkedIn != nil {
		score += scoreLinkedIn
	}
	if f.Facebook != nil {
		score += scoreFacebook
	}
	if f.Twitter != nil || f.Instagram != nil {
		score += scoreOtherSoc
	}

	// Record completeness.
	if f.Industry != nil && *f.Industry != model.IndustryOther {
		score += scoreIndustry
	}
	if f.Location != nil {
		score += scoreLocation
	}
	if f.CompanyName != nil {
		score += scoreHasName
	}

	if score > maxLeadScore {
		score = maxLeadScore
	}
	return score
}
