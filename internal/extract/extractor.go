package extract

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/scorer"
)

// Extractor runs every field extractor over a snapshot and assembles a
// LeadRecord. Field failures degrade to nil values and error-list
// entries; extraction of the remaining fields always continues.
type Extractor struct {
	nameChain *Chain
	dmFinder  *DecisionMakerFinder
}

// New creates an Extractor. The navigator is optional; without it the
// decision-maker search is confined to the supplied snapshot.
func New(nav Navigator) *Extractor {
	return &Extractor{
		nameChain: CompanyNameChain(),
		dmFinder:  NewDecisionMakerFinder(nav),
	}
}

// Extract produces a scored LeadRecord for the snapshot. The record is
// emitted even when individual fields failed; failures are listed in
// record.Errors.
func (e *Extractor) Extract(ctx context.Context, snap *model.PageSnapshot) *model.LeadRecord {
	record := &model.LeadRecord{
		WebsiteURL: snap.URL,
		ScrapedAt:  time.Now().UTC(),
	}

	e.field(record, "companyName", func() {
		record.CompanyName = e.nameChain.First(snap)
	})
	e.field(record, "email", func() {
		record.Email = Email(snap)
	})
	e.field(record, "phone", func() {
		record.Phone = Phone(snap)
	})
	e.field(record, "social", func() {
		links := Socials(snap)
		record.LinkedIn = links.LinkedIn
		record.Facebook = links.Facebook
		record.Twitter = links.Twitter
		record.Instagram = links.Instagram
	})
	e.field(record, "location", func() {
		record.Location = Location(snap)
	})
	e.field(record, "industry", func() {
		industry := Industry(snap)
		record.Industry = &industry
	})
	e.field(record, "websiteQuality", func() {
		assessment := scorer.AssessQuality(snap, record.HasAnySocial())
		record.WebsiteQualityScore = &assessment.Score
		record.WebsiteQualityRating = &assessment.Rating
		record.BrandingNeeds = &assessment.BrandingNeeds
	})
	e.field(record, "decisionMaker", func() {
		if dm := e.dmFinder.Find(ctx, snap); dm != nil {
			record.DecisionMakerName = &dm.Name
			record.DecisionMakerRole = &dm.Title
		}
	})

	record.LeadScore = scorer.ScoreLead(&record.ExtractedFields)
	return record
}

// field runs one extraction step, converting a panic into a null field
// plus an error-list entry so the remaining fields still run.
func (e *Extractor) field(record *model.LeadRecord, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("%s extraction failed: %v", name, r)
			record.AddError(msg)
			zap.L().Debug("extract: field failed",
				zap.String("field", name),
				zap.String("url", record.WebsiteURL),
				zap.Any("cause", r),
			)
		}
	}()
	fn()
}
