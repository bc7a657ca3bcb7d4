// Package discovery implements the company-finder path: building map
// and search queries for an industry/location pair and extracting
// company records from search-result listing snapshots.
package discovery

import (
	"fmt"
	"math/rand/v2"
	"net/url"
)

// varietyTerms are mixed into queries so repeated runs surface
// different result pages.
var varietyTerms = []string{
	"best", "top", "leading", "premier", "reliable",
	"established", "professional", "trusted", "quality",
	"popular", "famous", "well-known", "reputable", "successful",
}

// baseQueryTemplates produce the un-randomized search phrases.
var baseQueryTemplates = []string{
	"%[1]s companies in %[2]s",
	"%[1]s businesses in %[2]s",
	"%[1]s firms in %[2]s",
	"%[1]s in %[2]s",
	"%[2]s %[1]s companies",
}

const (
	mapsSearchURL = "https://www.google.com/maps/search/"
	webSearchURL  = "https://www.google.com/search?q="
)

// BuildQueries returns the randomized search queries for one run: every
// base template gets a variety spin. A nil rng uses the global source;
// tests pass a seeded one.
func BuildQueries(industry, location string, rng *rand.Rand) []string {
	queries := make([]string, 0, len(baseQueryTemplates))
	for _, tmpl := range baseQueryTemplates {
		base := fmt.Sprintf(tmpl, industry, location)
		queries = append(queries, randomize(base, rng))
	}
	return queries
}

// randomize rewrites a query with a random variety term and structure.
func randomize(query string, rng *rand.Rand) string {
	term := varietyTerms[intn(rng, len(varietyTerms))]
	structures := []string{
		term + " " + query,
		query + " " + term,
		query + " companies",
		query + " businesses",
		query + " firms",
	}
	return structures[intn(rng, len(structures))]
}

// SearchURLs converts queries to fetchable URLs: every query as a maps
// search, plus extraPages of them repeated as plain web searches for
// variety.
func SearchURLs(queries []string, extraPages int, rng *rand.Rand) []string {
	urls := make([]string, 0, len(queries)+extraPages)
	for _, q := range queries {
		urls = append(urls, mapsSearchURL+url.QueryEscape(q))
	}
	for i := 0; i < extraPages && len(queries) > 0; i++ {
		q := queries[intn(rng, len(queries))]
		urls = append(urls, webSearchURL+url.QueryEscape(q))
	}
	return urls
}

func intn(rng *rand.Rand, n int) int {
	if rng != nil {
		return rng.IntN(n)
	}
	return rand.IntN(n)
}
