package model

import "time"

// Quality ratings for the website quality band contract.
const (
	RatingGood    = "Good"
	RatingAverage = "Average"
	RatingPoor    = "Poor"
)

// IndustryOther is the sentinel returned when no industry keyword matches.
// It is distinct from a nil industry, which means the classifier itself
// failed.
const IndustryOther = "Other"

// ExtractedFields holds every field the extractor can pull from a page.
// Each field is independently nullable; absence is a valid terminal state.
type ExtractedFields struct {
	CompanyName          *string `json:"companyName"`
	Email                *string `json:"email"`
	Phone                *string `json:"phone"`
	LinkedIn             *string `json:"linkedIn"`
	Facebook             *string `json:"facebook"`
	Twitter              *string `json:"twitter"`
	Instagram            *string `json:"instagram"`
	Location             *string `json:"location"`
	Industry             *string `json:"industry"`
	WebsiteQualityScore  *int    `json:"websiteQualityScore"`
	WebsiteQualityRating *string `json:"websiteQualityRating"`
	BrandingNeeds        *bool   `json:"brandingNeeds"`
	DecisionMakerName    *string `json:"decisionMakerName"`
	DecisionMakerRole    *string `json:"decisionMakerRole"`
}

// HasAnySocial reports whether at least one social platform slot is filled.
func (f *ExtractedFields) HasAnySocial() bool {
	return f.LinkedIn != nil || f.Facebook != nil || f.Twitter != nil || f.Instagram != nil
}

// LeadRecord is the scored output record for a processed URL. A record
// with extraction errors is still emitted; errors accumulate rather
// than abort.
type LeadRecord struct {
	ExtractedFields
	WebsiteURL string    `json:"websiteUrl"`
	LeadScore  int       `json:"leadScore"`
	ScrapedAt  time.Time `json:"scrapedAt"`
	Errors     []string  `json:"errors,omitempty"`
}

// AddError appends a failure description to the record's error list.
func (r *LeadRecord) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// RunSummary carries run-level counters for logging and reporting.
type RunSummary struct {
	RunID    string   `json:"run_id"`
	Found    int      `json:"found"`
	Target   int      `json:"target"`
	Warnings []string `json:"warnings,omitempty"`
}

// Str returns a pointer to s, for building records in code and tests.
func Str(s string) *string { return &s }

// Deref returns the value of p, or "" if p is nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
