package discovery

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func TestBuildQueries_OnePerTemplate(t *testing.T) {
	queries := BuildQueries("Technology", "New York", seededRand(1))

	require.Len(t, queries, len(baseQueryTemplates))
	for _, q := range queries {
		assert.Contains(t, q, "Technology")
		assert.Contains(t, q, "New York")
	}
}

func TestBuildQueries_DeterministicWithSeed(t *testing.T) {
	a := BuildQueries("Technology", "Austin", seededRand(42))
	b := BuildQueries("Technology", "Austin", seededRand(42))
	assert.Equal(t, a, b)
}

func TestBuildQueries_SeedChangesOutput(t *testing.T) {
	a := BuildQueries("Technology", "Austin", seededRand(1))
	b := BuildQueries("Technology", "Austin", seededRand(2))
	assert.NotEqual(t, a, b)
}

func TestBuildQueries_NilRngUsesGlobalSource(t *testing.T) {
	queries := BuildQueries("Legal", "Boston", nil)
	require.Len(t, queries, len(baseQueryTemplates))
}

func TestSearchURLs_MapsPlusExtraWebPages(t *testing.T) {
	queries := []string{"tech companies in austin", "austin tech firms"}
	urls := SearchURLs(queries, 2, seededRand(7))

	require.Len(t, urls, 4)
	for _, u := range urls[:2] {
		assert.True(t, strings.HasPrefix(u, "https://www.google.com/maps/search/"), u)
	}
	for _, u := range urls[2:] {
		assert.True(t, strings.HasPrefix(u, "https://www.google.com/search?q="), u)
	}
}

func TestSearchURLs_QueryEscaped(t *testing.T) {
	urls := SearchURLs([]string{"coffee & tea shops"}, 0, nil)
	require.Len(t, urls, 1)
	assert.NotContains(t, urls[0], " ")
	assert.NotContains(t, urls[0], "&")
}

func TestSearchURLs_EmptyQueries(t *testing.T) {
	assert.Empty(t, SearchURLs(nil, 3, nil))
}
