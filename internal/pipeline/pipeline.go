// Package pipeline orchestrates a run: snapshots are extracted in
// parallel, candidates are admitted through the shared ledger one at a
// time, and accepted records are pushed to the sink as they finalize.
package pipeline

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadgen-cli/internal/dedup"
	"github.com/sells-group/leadgen-cli/internal/discovery"
	"github.com/sells-group/leadgen-cli/internal/extract"
	"github.com/sells-group/leadgen-cli/internal/model"
)

// Sink receives finalized records one at a time, never batched.
type Sink interface {
	SaveLead(ctx context.Context, runID string, lead *model.LeadRecord) error
	SaveCompany(ctx context.Context, runID string, company *model.CompanyRecord) error
}

// Config holds the run parameters supplied by the host.
type Config struct {
	RunID          string // optional; generated when empty
	Industry       string
	Location       string
	MaxResults     int
	IndustryFilter string // when set, leads outside this industry are skipped
	Concurrency    int
}

// runID returns the configured run ID or a fresh one.
func (c Config) runID() string {
	if c.RunID != "" {
		return c.RunID
	}
	return uuid.New().String()
}

// LeadPipeline extracts, scores, deduplicates and emits lead records
// for a list of page URLs.
type LeadPipeline struct {
	nav       extract.Navigator
	extractor *extract.Extractor
	sink      Sink
	cfg       Config
}

// NewLeadPipeline creates a lead pipeline. The sink may be nil when the
// caller only wants the returned records.
func NewLeadPipeline(nav extract.Navigator, sink Sink, cfg Config) *LeadPipeline {
	return &LeadPipeline{
		nav:       nav,
		extractor: extract.New(nav),
		sink:      sink,
		cfg:       cfg,
	}
}

// Run processes the URLs. Per-page extraction runs in parallel up to
// the configured bound; only the admit step is serialized through the
// ledger. A page that fails to snapshot is skipped, never fatal.
func (p *LeadPipeline) Run(ctx context.Context, urls []string) (model.RunSummary, []model.LeadRecord, error) {
	runID := p.cfg.runID()
	log := zap.L().With(zap.String("run_id", runID))

	target := discovery.TargetResults(p.cfg.MaxResults)
	ledger := dedup.NewLedger(target)
	results := dedup.NewResultSet[model.LeadRecord](target)

	concurrency := p.cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	// admitCh serializes admission: extraction fans out, but candidate
	// evaluation is order-dependent and owns shared ledger state.
	type candidate struct {
		record *model.LeadRecord
	}
	admitCh := make(chan candidate)

	var accepted []model.LeadRecord
	admitDone := make(chan struct{})
	go func() {
		defer close(admitDone)
		for c := range admitCh {
			if p.admit(ctx, ledger, results, runID, c.record) {
				accepted = append(accepted, *c.record)
			}
		}
	}()

	extractGroup, ectx := errgroup.WithContext(ctx)
	extractGroup.SetLimit(concurrency)
	for _, u := range urls {
		if ledger.Full() {
			break
		}
		extractGroup.Go(func() error {
			record := p.extractOne(ectx, u)
			if record == nil {
				return nil
			}
			select {
			case admitCh <- candidate{record: record}:
			case <-ectx.Done():
			}
			return nil
		})
	}

	if err := extractGroup.Wait(); err != nil {
		close(admitCh)
		<-admitDone
		return model.RunSummary{}, nil, eris.Wrap(err, "pipeline: extract")
	}
	close(admitCh)
	<-admitDone

	summary := model.RunSummary{
		RunID:  runID,
		Found:  results.Len(),
		Target: target,
	}
	log.Info("lead run complete",
		zap.Int("found", summary.Found),
		zap.Int("target", summary.Target),
	)
	return summary, accepted, nil
}

// extractOne snapshots and extracts a single URL. Returns nil when the
// page could not be snapshotted or the industry filter rejected it.
func (p *LeadPipeline) extractOne(ctx context.Context, pageURL string) *model.LeadRecord {
	snap, err := p.nav.Snapshot(ctx, pageURL)
	if err != nil {
		zap.L().Warn("pipeline: snapshot failed",
			zap.String("url", pageURL),
			zap.Error(err),
		)
		return nil
	}

	record := p.extractor.Extract(ctx, snap)

	// Industry-filter mismatch is a silent skip, not an error.
	if p.cfg.IndustryFilter != "" {
		if record.Industry == nil || !strings.EqualFold(*record.Industry, p.cfg.IndustryFilter) {
			zap.L().Debug("pipeline: industry filter skip",
				zap.String("url", pageURL),
				zap.String("industry", model.Deref(record.Industry)),
			)
			return nil
		}
	}
	return record
}

// admit runs the serialized admission step for one candidate record and
// pushes it to the sink on acceptance.
func (p *LeadPipeline) admit(ctx context.Context, ledger *dedup.Ledger, results *dedup.ResultSet[model.LeadRecord], runID string, record *model.LeadRecord) bool {
	name := model.Deref(record.CompanyName)
	if name == "" {
		// A lead with no extractable name still dedupes by its host.
		name = hostOf(record.WebsiteURL)
	}

	ok, reason := ledger.Admit(name, hostOf(record.WebsiteURL))
	if !ok {
		zap.L().Debug("pipeline: lead rejected",
			zap.String("url", record.WebsiteURL),
			zap.String("reason", string(reason)),
		)
		return false
	}

	results.Add(*record)
	if p.sink != nil {
		if err := p.sink.SaveLead(ctx, runID, record); err != nil {
			zap.L().Warn("pipeline: sink save failed",
				zap.String("url", record.WebsiteURL),
				zap.Error(err),
			)
		}
	}
	return true
}

// hostOf extracts the normalized host of a URL, or "" when unparsable.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
