// Package navigate is the repo's own implementation of the navigation
// collaborator: it fetches a URL over plain HTTP and condenses the
// document into a PageSnapshot for the extraction core. It does not
// render, retry, or crawl.
package navigate

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Options configures the local navigator.
type Options struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
	RatePerSec   float64
}

// DefaultOptions returns the navigator defaults used by the CLI.
func DefaultOptions() Options {
	return Options{
		UserAgent:    "Mozilla/5.0 (compatible; leadgen-cli/1.0)",
		Timeout:      15 * time.Second,
		MaxBodyBytes: 2 << 20, // 2 MB
		RatePerSec:   2,
	}
}

// Client fetches pages and produces snapshots. Fetches are paced by a
// shared rate limiter so parallel extraction cannot hammer one origin.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	opts       Options
}

// NewClient creates a navigator client.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultOptions().MaxBodyBytes
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultOptions().UserAgent
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = DefaultOptions().RatePerSec
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSec), 1),
		opts:    opts,
	}
}

// normalizeURL ensures the URL has a scheme; bare domains get https.
func normalizeURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}
