package discovery

import (
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/dedup"
	"github.com/sells-group/leadgen-cli/internal/model"
)

// MinResultsFloor is the minimum acceptable company count for a run.
// Finishing below it is a warning, never a failure.
const MinResultsFloor = 10

// TargetResults returns the effective target for a run: at least the
// floor, regardless of the requested maximum.
func TargetResults(maxResults int) int {
	if maxResults < MinResultsFloor {
		return MinResultsFloor
	}
	return maxResults
}

// Processor admits listing candidates through the shared ledger into a
// bounded result set. One processor per run; Process is safe for a
// single caller at a time, matching the serialized-admission model.
type Processor struct {
	ledger   *dedup.Ledger
	results  *dedup.ResultSet[model.CompanyRecord]
	industry string
	location string
}

// NewProcessor creates a Processor for one run.
func NewProcessor(industry, location string, target int) *Processor {
	return &Processor{
		ledger:   dedup.NewLedger(target),
		results:  dedup.NewResultSet[model.CompanyRecord](target),
		industry: industry,
		location: location,
	}
}

// Process evaluates a batch of candidates in order and returns the
// newly accepted records. Duplicates and over-capacity candidates are
// dropped; rejection reasons are logged, not surfaced.
func (p *Processor) Process(candidates []Candidate) []model.CompanyRecord {
	now := time.Now().UTC()

	var accepted []model.CompanyRecord
	for _, c := range candidates {
		if p.results.Full() {
			break
		}

		ok, reason := p.ledger.Admit(c.Name, c.Domain)
		if !ok {
			zap.L().Debug("discovery: candidate rejected",
				zap.String("name", c.Name),
				zap.String("reason", string(reason)),
			)
			continue
		}

		record := NewCompanyRecord(c, p.industry, p.location, now)
		p.results.Add(record)
		accepted = append(accepted, record)
	}
	return accepted
}

// Found returns the running count of accepted companies.
func (p *Processor) Found() int {
	return p.results.Len()
}

// Done reports whether the run has reached its target.
func (p *Processor) Done() bool {
	return p.results.Full()
}

// Records returns all accepted records in admission order.
func (p *Processor) Records() []model.CompanyRecord {
	return p.results.Items()
}

// Summary builds the run summary, attaching the low-yield warning when
// the final count is under the floor.
func (p *Processor) Summary(runID string) model.RunSummary {
	summary := model.RunSummary{
		RunID:  runID,
		Found:  p.results.Len(),
		Target: p.ledger.Target(),
	}
	if summary.Found < MinResultsFloor {
		summary.Warnings = append(summary.Warnings,
			"found fewer companies than the minimum of 10; returning partial results")
	}
	return summary
}
