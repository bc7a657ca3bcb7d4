package navigate

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/resilience"
)

// logoHints mark an image as a probable logo, matched against src, alt
// and class attributes.
var logoHints = []string{"logo", "brand"}

// modernLayoutHints are class fragments indicating flex/grid layouts.
var modernLayoutHints = []string{"flex", "grid", "container-fluid", "row"}

// fetchResult is one successful page fetch.
type fetchResult struct {
	body     []byte
	finalURL string
	loadTime time.Duration
}

// Snapshot fetches a URL and condenses the document into a
// PageSnapshot. Transient fetch failures (timeouts, 429, 5xx) are
// retried with backoff. It satisfies the extraction core's Navigator
// interface.
func (c *Client) Snapshot(ctx context.Context, rawURL string) (*model.PageSnapshot, error) {
	target := normalizeURL(rawURL)

	res, err := resilience.DoVal(ctx, resilience.DefaultRetryConfig(), "fetch "+target,
		func(ctx context.Context) (fetchResult, error) {
			return c.fetch(ctx, target)
		})
	if err != nil {
		return nil, err
	}

	snap, err := BuildSnapshot(res.finalURL, string(res.body))
	if err != nil {
		return nil, err
	}
	snap.LoadTimeMs = res.loadTime.Milliseconds()

	zap.L().Debug("navigate: snapshot captured",
		zap.String("url", snap.URL),
		zap.Int("anchors", len(snap.Anchors)),
		zap.Int("images", snap.ImageCount),
		zap.Int64("load_ms", snap.LoadTimeMs),
	)
	return snap, nil
}

// fetch performs one paced GET of the target.
func (c *Client) fetch(ctx context.Context, target string) (fetchResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return fetchResult{}, eris.Wrap(err, "navigate: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fetchResult{}, eris.Wrapf(err, "navigate: build request for %s", target)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fetchResult{}, eris.Wrapf(err, "navigate: fetch %s", target)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		err := eris.Errorf("navigate: %s returned %d", target, resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return fetchResult{}, resilience.NewTransientError(err, resp.StatusCode)
		}
		return fetchResult{}, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBodyBytes))
	if err != nil {
		return fetchResult{}, eris.Wrapf(err, "navigate: read body of %s", target)
	}

	finalURL := target
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return fetchResult{
		body:     body,
		finalURL: finalURL,
		loadTime: time.Since(start),
	}, nil
}

// BuildSnapshot parses an HTML document into a PageSnapshot. Exposed
// separately so tests and the intake server can snapshot raw HTML
// without a fetch.
func BuildSnapshot(pageURL, html string) (*model.PageSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eris.Wrapf(err, "navigate: parse %s", pageURL)
	}

	snap := &model.PageSnapshot{
		URL:      pageURL,
		Title:    strings.TrimSpace(doc.Find("title").First().Text()),
		MetaTags: map[string]string{},
		Protocol: urlScheme(pageURL),
	}

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content := s.AttrOr("content", "")
		if name := s.AttrOr("name", ""); name != "" {
			snap.MetaTags[name] = content
			if strings.EqualFold(name, "viewport") {
				snap.HasViewportMeta = true
			}
		}
		if prop := s.AttrOr("property", ""); prop != "" {
			snap.MetaTags[prop] = content
		}
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		heading := s.Find("h1,h2,h3").Length() > 0 ||
			s.ParentsFiltered("h1,h2,h3").Length() > 0
		snap.Anchors = append(snap.Anchors, model.Anchor{
			Href:    s.AttrOr("href", ""),
			Text:    strings.TrimSpace(s.Text()),
			Heading: heading,
		})
	})

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		snap.ImageCount++
		probe := strings.ToLower(s.AttrOr("src", "") + " " + s.AttrOr("alt", "") + " " + s.AttrOr("class", ""))
		for _, hint := range logoHints {
			if strings.Contains(probe, hint) {
				snap.HasLogoImage = true
				break
			}
		}
	})

	doc.Find("[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class := strings.ToLower(s.AttrOr("class", ""))
		for _, hint := range modernLayoutHints {
			if strings.Contains(class, hint) {
				snap.HasModernLayout = true
				return false
			}
		}
		return true
	})

	// Visible text approximation: body text with collapsed whitespace.
	snap.Text = collapseWhitespace(doc.Find("body").Text())

	return snap, nil
}

func urlScheme(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Scheme
}

// collapseWhitespace squeezes runs of whitespace down to single spaces,
// keeping newlines so line-oriented patterns still work.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	lastNewline := false
	for _, r := range s {
		switch {
		case r == '\n':
			if !lastNewline {
				b.WriteRune('\n')
			}
			lastNewline = true
			lastSpace = true
		case r == ' ' || r == '\t' || r == '\r':
			if !lastSpace {
				b.WriteRune(' ')
			}
			lastSpace = true
			lastNewline = false
		default:
			b.WriteRune(r)
			lastSpace = false
			lastNewline = false
		}
	}
	return strings.TrimSpace(b.String())
}
