package pipeline

import (
	"context"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/discovery"
	"github.com/sells-group/leadgen-cli/internal/extract"
	"github.com/sells-group/leadgen-cli/internal/model"
)

// extraSearchPages is how many plain web-search pages are added on top
// of the map searches for result variety.
const extraSearchPages = 2

// CompanyPipeline runs the company-finder path: build search queries,
// snapshot each result page, and collect deduplicated company records
// until the target is reached.
type CompanyPipeline struct {
	nav  extract.Navigator
	sink Sink
	cfg  Config
	rng  *rand.Rand
}

// NewCompanyPipeline creates a company pipeline. rng may be nil; tests
// pass a seeded source for deterministic queries.
func NewCompanyPipeline(nav extract.Navigator, sink Sink, cfg Config, rng *rand.Rand) *CompanyPipeline {
	return &CompanyPipeline{nav: nav, sink: sink, cfg: cfg, rng: rng}
}

// Run fetches listing pages one at a time — admission is inherently
// sequential here — and stops as soon as the target is met. Listing
// fetch failures skip to the next query; a low final yield is a
// warning on the summary, never an error.
func (p *CompanyPipeline) Run(ctx context.Context) (model.RunSummary, []model.CompanyRecord, error) {
	runID := p.cfg.runID()
	log := zap.L().With(zap.String("run_id", runID))

	target := discovery.TargetResults(p.cfg.MaxResults)
	processor := discovery.NewProcessor(p.cfg.Industry, p.cfg.Location, target)

	queries := discovery.BuildQueries(p.cfg.Industry, p.cfg.Location, p.rng)
	searchURLs := discovery.SearchURLs(queries, extraSearchPages, p.rng)

	log.Info("company search starting",
		zap.String("industry", p.cfg.Industry),
		zap.String("location", p.cfg.Location),
		zap.Int("queries", len(searchURLs)),
		zap.Int("target", target),
	)

	for _, searchURL := range searchURLs {
		if processor.Done() {
			break
		}
		if ctx.Err() != nil {
			return processor.Summary(runID), processor.Records(), ctx.Err()
		}

		snap, err := p.nav.Snapshot(ctx, searchURL)
		if err != nil {
			log.Warn("listing fetch failed",
				zap.String("url", searchURL),
				zap.Error(err),
			)
			continue
		}

		candidates := discovery.ParseListing(snap)
		accepted := processor.Process(candidates)

		for i := range accepted {
			if p.sink != nil {
				if err := p.sink.SaveCompany(ctx, runID, &accepted[i]); err != nil {
					log.Warn("sink save failed",
						zap.String("company", accepted[i].CompanyName),
						zap.Error(err),
					)
				}
			}
		}

		log.Info("listing processed",
			zap.Int("candidates", len(candidates)),
			zap.Int("accepted", len(accepted)),
			zap.Int("total", processor.Found()),
		)
	}

	summary := processor.Summary(runID)
	for _, w := range summary.Warnings {
		log.Warn(w, zap.Int("found", summary.Found))
	}
	log.Info("company search complete",
		zap.Int("found", summary.Found),
		zap.Int("target", summary.Target),
	)
	return summary, processor.Records(), nil
}
