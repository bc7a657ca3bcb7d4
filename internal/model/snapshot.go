// Package model defines the data carriers shared across the extraction
// pipeline: page snapshots supplied by the navigation layer and the lead
// and company records the pipeline emits.
package model

// Anchor is a single outbound link captured from a rendered page.
// Heading marks links associated with a result heading (the link wraps
// or sits inside an h1-h3), which listing parsers use to tell result
// entries apart from navigation chrome.
type Anchor struct {
	Href    string `json:"href"`
	Text    string `json:"text"`
	Heading bool   `json:"heading,omitempty"`
}

// PageSnapshot is the navigation layer's capture of a rendered page.
// It is immutable once produced; extractors only read from it.
type PageSnapshot struct {
	URL             string            `json:"url"`
	Text            string            `json:"text"`
	Title           string            `json:"title"`
	MetaTags        map[string]string `json:"metaTags"`
	Anchors         []Anchor          `json:"anchors"`
	ImageCount      int               `json:"imageCount"`
	HasViewportMeta bool              `json:"hasViewportMeta"`
	HasLogoImage    bool              `json:"hasLogoImage"`
	HasModernLayout bool              `json:"hasModernLayout"`
	Protocol        string            `json:"protocol"`
	LoadTimeMs      int64             `json:"loadTimeMs"`
}

// Meta returns the content of a meta tag by name or property, or "" if
// the tag is absent. A nil meta map is treated as empty.
func (s *PageSnapshot) Meta(key string) string {
	if s.MetaTags == nil {
		return ""
	}
	return s.MetaTags[key]
}

// Secure reports whether the page was served over HTTPS.
func (s *PageSnapshot) Secure() bool {
	return s.Protocol == "https"
}
