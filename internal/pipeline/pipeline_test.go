package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// fakeNavigator serves canned snapshots keyed by URL.
type fakeNavigator struct {
	mu    sync.Mutex
	pages map[string]*model.PageSnapshot
	calls int
}

func (f *fakeNavigator) Snapshot(_ context.Context, url string) (*model.PageSnapshot, error) {
	f.mu.Lock()
	f.calls++
	snap := f.pages[url]
	f.mu.Unlock()
	if snap == nil {
		return nil, errors.New("unreachable")
	}
	return snap, nil
}

// memorySink records every save.
type memorySink struct {
	mu        sync.Mutex
	leads     []model.LeadRecord
	companies []model.CompanyRecord
	failLeads bool
}

func (s *memorySink) SaveLead(_ context.Context, _ string, lead *model.LeadRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failLeads {
		return errors.New("sink unavailable")
	}
	s.leads = append(s.leads, *lead)
	return nil
}

func (s *memorySink) SaveCompany(_ context.Context, _ string, company *model.CompanyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies = append(s.companies, *company)
	return nil
}

func sitePage(url, name string) *model.PageSnapshot {
	return &model.PageSnapshot{
		URL:      url,
		Protocol: "https",
		MetaTags: map[string]string{"og:site_name": name},
		Text:     "contact sales@" + name + ".example",
	}
}

func TestLeadPipeline_Run_AcceptsAndSinks(t *testing.T) {
	nav := &fakeNavigator{pages: map[string]*model.PageSnapshot{
		"https://acme.com":    sitePage("https://acme.com", "acme"),
		"https://widgets.io":  sitePage("https://widgets.io", "widgets"),
		"https://unfetchable": nil,
	}}
	sink := &memorySink{}

	cfg := Config{RunID: "run-1", MaxResults: 10, Concurrency: 2}
	summary, leads, err := NewLeadPipeline(nav, sink, cfg).Run(context.Background(),
		[]string{"https://acme.com", "https://widgets.io", "https://unfetchable"})

	require.NoError(t, err)
	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, 2, summary.Found)
	assert.Equal(t, 10, summary.Target)
	assert.Len(t, leads, 2)
	assert.Len(t, sink.leads, 2)
}

func TestLeadPipeline_Run_DeduplicatesByName(t *testing.T) {
	// Two different URLs presenting the same company name: only the
	// first admitted survives.
	nav := &fakeNavigator{pages: map[string]*model.PageSnapshot{
		"https://acme.com":     sitePage("https://acme.com", "acme"),
		"https://acme.example": sitePage("https://acme.example", "acme"),
	}}

	cfg := Config{MaxResults: 10, Concurrency: 1}
	summary, leads, err := NewLeadPipeline(nav, nil, cfg).Run(context.Background(),
		[]string{"https://acme.com", "https://acme.example"})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Found)
	assert.Len(t, leads, 1)
}

func TestLeadPipeline_Run_NamelessLeadDedupesByHost(t *testing.T) {
	bare := &model.PageSnapshot{URL: "https://bare.example", Protocol: "https", Text: "nothing here"}
	nav := &fakeNavigator{pages: map[string]*model.PageSnapshot{
		"https://bare.example": bare,
	}}

	cfg := Config{MaxResults: 10, Concurrency: 1}
	summary, leads, err := NewLeadPipeline(nav, nil, cfg).Run(context.Background(),
		[]string{"https://bare.example", "https://bare.example"})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Found)
	require.Len(t, leads, 1)
	assert.Nil(t, leads[0].CompanyName)
}

func TestLeadPipeline_Run_IndustryFilter(t *testing.T) {
	tech := sitePage("https://soft.example", "soft")
	tech.Text = "custom software development"
	food := sitePage("https://cafe.example", "cafe")
	food.Text = "a neighborhood cafe"

	nav := &fakeNavigator{pages: map[string]*model.PageSnapshot{
		"https://soft.example": tech,
		"https://cafe.example": food,
	}}

	cfg := Config{MaxResults: 10, Concurrency: 1, IndustryFilter: "Technology"}
	summary, leads, err := NewLeadPipeline(nav, nil, cfg).Run(context.Background(),
		[]string{"https://soft.example", "https://cafe.example"})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Found)
	require.Len(t, leads, 1)
	assert.Equal(t, "https://soft.example", leads[0].WebsiteURL)
}

func TestLeadPipeline_Run_SinkFailureDoesNotAbort(t *testing.T) {
	nav := &fakeNavigator{pages: map[string]*model.PageSnapshot{
		"https://acme.com": sitePage("https://acme.com", "acme"),
	}}
	sink := &memorySink{failLeads: true}

	cfg := Config{MaxResults: 10, Concurrency: 1}
	summary, leads, err := NewLeadPipeline(nav, sink, cfg).Run(context.Background(),
		[]string{"https://acme.com"})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Found)
	assert.Len(t, leads, 1)
}

func TestLeadPipeline_Run_GeneratesRunID(t *testing.T) {
	nav := &fakeNavigator{pages: map[string]*model.PageSnapshot{}}

	summary, _, err := NewLeadPipeline(nav, nil, Config{MaxResults: 10}).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, summary.RunID)
}

func TestCompanyPipeline_Run_CollectsFromListings(t *testing.T) {
	listing := &model.PageSnapshot{
		Text: "top firms in Austin, TX",
		Anchors: []model.Anchor{
			{Href: "https://www.widgets.io", Text: "Widgets Inc", Heading: true},
			{Href: "https://acme.com", Text: "Acme Corp", Heading: true},
			{Href: "https://acme.com", Text: "Acme Corp", Heading: true}, // duplicate listing entry
			{Href: "/search?start=10", Text: "Next page"},
		},
	}

	// Every search URL resolves to the same listing page.
	nav := &listingNavigator{snap: listing}
	sink := &memorySink{}

	cfg := Config{RunID: "run-c", Industry: "Technology", Location: "Austin", MaxResults: 10}
	summary, companies, err := NewCompanyPipeline(nav, sink, cfg, nil).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "run-c", summary.RunID)
	assert.Equal(t, 2, summary.Found)
	require.Len(t, summary.Warnings, 1, "below the floor of 10")
	assert.Len(t, companies, 2)
	assert.Len(t, sink.companies, 2)
	assert.Equal(t, "Widgets Inc", companies[0].CompanyName)
}

// listingNavigator returns one canned listing for every URL.
type listingNavigator struct {
	snap  *model.PageSnapshot
	calls int
}

func (l *listingNavigator) Snapshot(_ context.Context, _ string) (*model.PageSnapshot, error) {
	l.calls++
	return l.snap, nil
}

func TestCompanyPipeline_Run_StopsAtTarget(t *testing.T) {
	var anchors []model.Anchor
	for i := 0; i < 30; i++ {
		anchors = append(anchors, model.Anchor{
			Href:    fmt.Sprintf("https://c%d.example", i),
			Text:    fmt.Sprintf("Company %d", i),
			Heading: true,
		})
	}
	nav := &listingNavigator{snap: &model.PageSnapshot{Anchors: anchors}}

	cfg := Config{Industry: "Technology", Location: "Austin", MaxResults: 12}
	summary, companies, err := NewCompanyPipeline(nav, nil, cfg, nil).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 12, summary.Found)
	assert.Len(t, companies, 12)
	assert.Empty(t, summary.Warnings)
	assert.Equal(t, 1, nav.calls, "stops fetching once the target is met")
}
