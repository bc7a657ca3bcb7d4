package discovery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

func TestParseListing_Basic(t *testing.T) {
	snap := &model.PageSnapshot{
		Text: "Results near Austin, TX",
		Anchors: []model.Anchor{
			{Href: "https://www.widgets.io", Text: "Widgets Inc", Heading: true},
			{Href: "https://acme.com/about", Text: "Acme Corp", Heading: true},
		},
	}

	candidates := ParseListing(snap)
	require.Len(t, candidates, 2)

	assert.Equal(t, "Widgets Inc", candidates[0].Name)
	assert.Equal(t, "widgets.io", candidates[0].Domain)
	assert.Equal(t, "Austin, TX", candidates[0].Location)

	assert.Equal(t, "Acme Corp", candidates[1].Name)
	assert.Equal(t, "acme.com", candidates[1].Domain)
}

func TestParseListing_DropsShortNames(t *testing.T) {
	snap := &model.PageSnapshot{
		Anchors: []model.Anchor{
			{Href: "https://a.com", Text: ">", Heading: true},
			{Href: "https://b.com", Text: " ", Heading: true},
			{Href: "https://c.com", Text: "Ok Co", Heading: true},
		},
	}

	candidates := ParseListing(snap)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Ok Co", candidates[0].Name)
}

func TestParseListing_SkipsNavigationChrome(t *testing.T) {
	snap := &model.PageSnapshot{
		Anchors: []model.Anchor{
			{Href: "https://accounts.example.com", Text: "Sign in"},
			{Href: "/search?start=10", Text: "Next"},
			{Href: "/imghp", Text: "Images"},
			{Href: "https://acme.com", Text: "Acme Corp", Heading: true},
		},
	}

	candidates := ParseListing(snap)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Acme Corp", candidates[0].Name)
}

func TestListingDomain_UnwrapsRedirect(t *testing.T) {
	got := listingDomain("https://www.google.com/url?q=https%3A%2F%2Fwww.widgets.io%2Fhome&sa=U")
	assert.Equal(t, "widgets.io", got)
}

func TestListingDomain_BlockedHosts(t *testing.T) {
	tests := []string{
		"https://www.google.com/maps/place/x",
		"https://maps.google.com/x",
		"https://www.youtube.com/watch?v=1",
		"https://www.facebook.com/acme",
		"https://www.linkedin.com/company/acme",
		"https://twitter.com/acme",
		"https://www.gstatic.com/images/x.png",
	}
	for _, href := range tests {
		assert.Empty(t, listingDomain(href), href)
	}
}

func TestListingDomain_RejectsNonHTTP(t *testing.T) {
	assert.Empty(t, listingDomain("mailto:hi@acme.com"))
	assert.Empty(t, listingDomain("/relative/path"))
	assert.Empty(t, listingDomain("javascript:void(0)"))
}

func TestFindListingLocation_Patterns(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"city state code", "top firms in Austin, TX today", "Austin, TX"},
		{"city region word", "serving Portland, Oregon since 2001", "Portland, Oregon"},
		{"phrase capture", "the best agencies based in Denver", "Denver"},
		{"no location", "ten great companies reviewed", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findListingLocation(tt.text))
		})
	}
}

func TestNewCompanyRecord_LocationFallback(t *testing.T) {
	now := time.Now().UTC()

	withOwn := NewCompanyRecord(Candidate{Name: "Acme", Domain: "acme.com", Location: "Austin, TX"},
		"Technology", "New York", now)
	require.NotNil(t, withOwn.Location)
	assert.Equal(t, "Austin, TX", *withOwn.Location)

	fallback := NewCompanyRecord(Candidate{Name: "Acme"}, "Technology", "New York", now)
	require.NotNil(t, fallback.Location)
	assert.Equal(t, "New York", *fallback.Location)
	assert.Nil(t, fallback.Domain)
	assert.Equal(t, "N/A", fallback.DomainOrNA())
}
