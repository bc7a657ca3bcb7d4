package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store needs; pgxmock
// satisfies it for unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	kind         TEXT NOT NULL,
	industry     TEXT NOT NULL,
	location     TEXT NOT NULL,
	target       INTEGER NOT NULL,
	found        INTEGER NOT NULL DEFAULT 0,
	warnings     JSONB,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	completed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS leads (
	id         BIGSERIAL PRIMARY KEY,
	run_id     TEXT NOT NULL REFERENCES runs(id),
	website    TEXT NOT NULL,
	lead_score INTEGER NOT NULL,
	record     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS companies (
	id         BIGSERIAL PRIMARY KEY,
	run_id     TEXT NOT NULL REFERENCES runs(id),
	name       TEXT NOT NULL,
	domain     TEXT,
	record     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_leads_run_id ON leads(run_id);
CREATE INDEX IF NOT EXISTS idx_companies_run_id ON companies(run_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, run *Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, kind, industry, location, target, found, created_at) VALUES ($1, $2, $3, $4, $5, 0, $6)`,
		run.ID, string(run.Kind), run.Industry, run.Location, run.Target, run.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert run")
}

func (s *PostgresStore) CompleteRun(ctx context.Context, summary model.RunSummary) error {
	warnings, err := json.Marshal(summary.Warnings)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal warnings")
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE runs SET found = $1, warnings = $2, completed_at = $3 WHERE id = $4`,
		summary.Found, warnings, time.Now().UTC(), summary.RunID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: complete run %s", summary.RunID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: run %s not found", summary.RunID)
	}
	return nil
}

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, kind, industry, location, target, found, warnings, created_at, completed_at FROM runs WHERE id = $1`,
		runID,
	)
	r, err := scanPgRun(row)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get run %s", runID)
	}
	return r, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, kind, industry, location, target, found, warnings, created_at, completed_at FROM runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanPgRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: list runs iterate")
}

func (s *PostgresStore) SaveLead(ctx context.Context, runID string, lead *model.LeadRecord) error {
	record, err := json.Marshal(lead)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal lead")
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO leads (run_id, website, lead_score, record) VALUES ($1, $2, $3, $4)`,
		runID, lead.WebsiteURL, lead.LeadScore, record,
	)
	return eris.Wrapf(err, "postgres: insert lead for run %s", runID)
}

func (s *PostgresStore) SaveCompany(ctx context.Context, runID string, company *model.CompanyRecord) error {
	record, err := json.Marshal(company)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal company")
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO companies (run_id, name, domain, record) VALUES ($1, $2, $3, $4)`,
		runID, company.CompanyName, company.Domain, record,
	)
	return eris.Wrapf(err, "postgres: insert company for run %s", runID)
}

func (s *PostgresStore) ListLeads(ctx context.Context, runID string) ([]model.LeadRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT record FROM leads WHERE run_id = $1 ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list leads for run %s", runID)
	}
	defer rows.Close()

	var leads []model.LeadRecord
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, eris.Wrap(err, "postgres: scan lead")
		}
		var lead model.LeadRecord
		if err := json.Unmarshal(raw, &lead); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal lead")
		}
		leads = append(leads, lead)
	}
	return leads, eris.Wrap(rows.Err(), "postgres: list leads iterate")
}

func (s *PostgresStore) ListCompanies(ctx context.Context, runID string) ([]model.CompanyRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT record FROM companies WHERE run_id = $1 ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list companies for run %s", runID)
	}
	defer rows.Close()

	var companies []model.CompanyRecord
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, eris.Wrap(err, "postgres: scan company")
		}
		var company model.CompanyRecord
		if err := json.Unmarshal(raw, &company); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal company")
		}
		companies = append(companies, company)
	}
	return companies, eris.Wrap(rows.Err(), "postgres: list companies iterate")
}

func scanPgRun(row pgx.Row) (*Run, error) {
	var (
		r           Run
		kind        string
		warningsRaw []byte
		completedAt *time.Time
	)
	err := row.Scan(&r.ID, &kind, &r.Industry, &r.Location, &r.Target, &r.Found, &warningsRaw, &r.CreatedAt, &completedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrap(err, "run not found")
	}
	if err != nil {
		return nil, err
	}
	r.Kind = RunKind(kind)
	if len(warningsRaw) > 0 {
		if err := json.Unmarshal(warningsRaw, &r.Warnings); err != nil {
			return nil, eris.Wrap(err, "unmarshal warnings")
		}
	}
	r.CompletedAt = completedAt
	return &r, nil
}
