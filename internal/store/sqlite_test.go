package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	run := &Run{
		ID:       "run-1",
		Kind:     RunKindLeads,
		Industry: "Technology",
		Location: "Austin",
		Target:   10,
	}
	require.NoError(t, st.CreateRun(ctx, run))

	got, err := st.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, RunKindLeads, got.Kind)
	assert.Equal(t, "Technology", got.Industry)
	assert.Equal(t, 10, got.Target)
	assert.Equal(t, 0, got.Found)
	assert.Nil(t, got.CompletedAt)

	summary := model.RunSummary{
		RunID:    "run-1",
		Found:    7,
		Target:   10,
		Warnings: []string{"found fewer companies than the minimum of 10; returning partial results"},
	}
	require.NoError(t, st.CompleteRun(ctx, summary))

	got, err = st.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Found)
	require.NotNil(t, got.CompletedAt)
	require.Len(t, got.Warnings, 1)
	assert.Contains(t, got.Warnings[0], "minimum of 10")
}

func TestSQLiteStore_CompleteRun_UnknownRun(t *testing.T) {
	st := newTestStore(t)

	err := st.CompleteRun(context.Background(), model.RunSummary{RunID: "missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteStore_GetRun_NotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.GetRun(context.Background(), "missing")
	assert.Error(t, err)
}

func TestSQLiteStore_ListRuns_NewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	older := &Run{ID: "run-old", Kind: RunKindLeads, Industry: "Legal", Location: "Boston", Target: 10,
		CreatedAt: time.Now().UTC().Add(-time.Hour)}
	newer := &Run{ID: "run-new", Kind: RunKindCompanies, Industry: "Technology", Location: "Austin", Target: 10}
	require.NoError(t, st.CreateRun(ctx, older))
	require.NoError(t, st.CreateRun(ctx, newer))

	runs, err := st.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-new", runs[0].ID)
	assert.Equal(t, "run-old", runs[1].ID)

	limited, err := st.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteStore_SaveAndListLeads(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.CreateRun(ctx, &Run{ID: "run-1", Kind: RunKindLeads, Industry: "Technology", Location: "Austin", Target: 10}))

	lead := &model.LeadRecord{
		WebsiteURL: "https://acme.com",
		LeadScore:  40,
		ScrapedAt:  time.Now().UTC(),
	}
	lead.CompanyName = model.Str("Acme Corp")
	lead.Email = model.Str("contact@acme.com")
	require.NoError(t, st.SaveLead(ctx, "run-1", lead))

	leads, err := st.ListLeads(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "https://acme.com", leads[0].WebsiteURL)
	assert.Equal(t, 40, leads[0].LeadScore)
	require.NotNil(t, leads[0].CompanyName)
	assert.Equal(t, "Acme Corp", *leads[0].CompanyName)
	require.NotNil(t, leads[0].Email)
	assert.Equal(t, "contact@acme.com", *leads[0].Email)

	empty, err := st.ListLeads(ctx, "other-run")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSQLiteStore_SaveAndListCompanies(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.CreateRun(ctx, &Run{ID: "run-1", Kind: RunKindCompanies, Industry: "Technology", Location: "Austin", Target: 10}))

	withDomain := &model.CompanyRecord{
		CompanyName: "Widgets Inc",
		Domain:      model.Str("widgets.io"),
		Location:    model.Str("Austin, TX"),
		Industry:    "Technology",
		ScrapedAt:   time.Now().UTC(),
	}
	noDomain := &model.CompanyRecord{
		CompanyName: "Mystery Co",
		Industry:    "Technology",
		ScrapedAt:   time.Now().UTC(),
	}
	require.NoError(t, st.SaveCompany(ctx, "run-1", withDomain))
	require.NoError(t, st.SaveCompany(ctx, "run-1", noDomain))

	companies, err := st.ListCompanies(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Widgets Inc", companies[0].CompanyName)
	require.NotNil(t, companies[0].Domain)
	assert.Equal(t, "widgets.io", *companies[0].Domain)
	assert.Equal(t, "N/A", companies[1].DomainOrNA())
}
