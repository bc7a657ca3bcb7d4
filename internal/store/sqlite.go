package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	kind         TEXT NOT NULL,
	industry     TEXT NOT NULL,
	location     TEXT NOT NULL,
	target       INTEGER NOT NULL,
	found        INTEGER NOT NULL DEFAULT 0,
	warnings     TEXT,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	completed_at DATETIME
);

CREATE TABLE IF NOT EXISTS leads (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id     TEXT NOT NULL REFERENCES runs(id),
	website    TEXT NOT NULL,
	lead_score INTEGER NOT NULL,
	record     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS companies (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id     TEXT NOT NULL REFERENCES runs(id),
	name       TEXT NOT NULL,
	domain     TEXT,
	record     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_leads_run_id ON leads(run_id);
CREATE INDEX IF NOT EXISTS idx_leads_score ON leads(lead_score);
CREATE INDEX IF NOT EXISTS idx_companies_run_id ON companies(run_id);
CREATE INDEX IF NOT EXISTS idx_companies_domain ON companies(domain);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, run *Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, industry, location, target, found, created_at) VALUES (?, ?, ?, ?, ?, 0, ?)`,
		run.ID, string(run.Kind), run.Industry, run.Location, run.Target, run.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert run")
}

func (s *SQLiteStore) CompleteRun(ctx context.Context, summary model.RunSummary) error {
	warnings, err := json.Marshal(summary.Warnings)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal warnings")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET found = ?, warnings = ?, completed_at = ? WHERE id = ?`,
		summary.Found, string(warnings), time.Now().UTC(), summary.RunID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete run %s", summary.RunID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: run %s not found", summary.RunID)
	}
	return nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, industry, location, target, found, warnings, created_at, completed_at FROM runs WHERE id = ?`,
		runID,
	)
	return scanRun(row)
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, industry, location, target, found, warnings, created_at, completed_at FROM runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

func (s *SQLiteStore) SaveLead(ctx context.Context, runID string, lead *model.LeadRecord) error {
	record, err := json.Marshal(lead)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal lead")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO leads (run_id, website, lead_score, record) VALUES (?, ?, ?, ?)`,
		runID, lead.WebsiteURL, lead.LeadScore, string(record),
	)
	return eris.Wrapf(err, "sqlite: insert lead for run %s", runID)
}

func (s *SQLiteStore) SaveCompany(ctx context.Context, runID string, company *model.CompanyRecord) error {
	record, err := json.Marshal(company)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal company")
	}
	var domain *string
	if company.Domain != nil {
		domain = company.Domain
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO companies (run_id, name, domain, record) VALUES (?, ?, ?, ?)`,
		runID, company.CompanyName, domain, string(record),
	)
	return eris.Wrapf(err, "sqlite: insert company for run %s", runID)
}

func (s *SQLiteStore) ListLeads(ctx context.Context, runID string) ([]model.LeadRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM leads WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list leads for run %s", runID)
	}
	defer rows.Close()

	var leads []model.LeadRecord
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan lead")
		}
		var lead model.LeadRecord
		if err := json.Unmarshal([]byte(raw), &lead); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal lead")
		}
		leads = append(leads, lead)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: list leads iterate")
}

func (s *SQLiteStore) ListCompanies(ctx context.Context, runID string) ([]model.CompanyRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM companies WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list companies for run %s", runID)
	}
	defer rows.Close()

	var companies []model.CompanyRecord
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan company")
		}
		var company model.CompanyRecord
		if err := json.Unmarshal([]byte(raw), &company); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal company")
		}
		companies = append(companies, company)
	}
	return companies, eris.Wrap(rows.Err(), "sqlite: list companies iterate")
}

// scannable covers *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*Run, error) {
	var (
		r           Run
		kind        string
		warningsRaw sql.NullString
		completedAt sql.NullTime
	)
	err := row.Scan(&r.ID, &kind, &r.Industry, &r.Location, &r.Target, &r.Found, &warningsRaw, &r.CreatedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Wrap(err, "sqlite: run not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan run")
	}
	r.Kind = RunKind(kind)
	if warningsRaw.Valid && warningsRaw.String != "" {
		if err := json.Unmarshal([]byte(warningsRaw.String), &r.Warnings); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal warnings")
		}
	}
	if completedAt.Valid {
		r.CompletedAt = &completedAt.Time
	}
	return &r, nil
}
