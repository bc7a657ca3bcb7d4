// Package store persists runs and their accepted records. The core
// pipeline only depends on the narrow Sink interface; this package
// supplies full-featured SQLite and Postgres backends for the CLI and
// the intake server.
package store

import (
	"context"
	"time"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// RunKind distinguishes lead runs from company-listing runs.
type RunKind string

const (
	RunKindLeads     RunKind = "leads"
	RunKindCompanies RunKind = "companies"
)

// Run is a persisted run row.
type Run struct {
	ID          string     `json:"id"`
	Kind        RunKind    `json:"kind"`
	Industry    string     `json:"industry"`
	Location    string     `json:"location"`
	Target      int        `json:"target"`
	Found       int        `json:"found"`
	Warnings    []string   `json:"warnings,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Store defines the persistence interface for runs and records.
type Store interface {
	CreateRun(ctx context.Context, run *Run) error
	CompleteRun(ctx context.Context, summary model.RunSummary) error
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	SaveLead(ctx context.Context, runID string, lead *model.LeadRecord) error
	SaveCompany(ctx context.Context, runID string, company *model.CompanyRecord) error
	ListLeads(ctx context.Context, runID string) ([]model.LeadRecord, error)
	ListCompanies(ctx context.Context, runID string) ([]model.CompanyRecord, error)

	Migrate(ctx context.Context) error
	Close() error
}
