package extract

import (
	"net/url"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// SocialLinks holds the first anchor found for each known platform.
// Each slot is filled at most once and independently of the others.
type SocialLinks struct {
	LinkedIn  *string
	Facebook  *string
	Twitter   *string
	Instagram *string
}

// socialPlatform maps a result slot to the host fragments that identify it.
type socialPlatform struct {
	hosts []string
	slot  func(*SocialLinks) **string
}

var socialPlatforms = []socialPlatform{
	{hosts: []string{"linkedin.com"}, slot: func(s *SocialLinks) **string { return &s.LinkedIn }},
	{hosts: []string{"facebook.com"}, slot: func(s *SocialLinks) **string { return &s.Facebook }},
	// twitter.com plus its rebrand domain.
	{hosts: []string{"twitter.com", "x.com"}, slot: func(s *SocialLinks) **string { return &s.Twitter }},
	{hosts: []string{"instagram.com"}, slot: func(s *SocialLinks) **string { return &s.Instagram }},
}

// Socials scans outbound anchors and keeps, per platform, the first
// anchor whose host contains one of the platform's domains.
func Socials(snap *model.PageSnapshot) SocialLinks {
	var links SocialLinks
	for _, a := range snap.Anchors {
		host := anchorHost(a.Href)
		if host == "" {
			continue
		}
		for _, p := range socialPlatforms {
			slot := p.slot(&links)
			if *slot != nil {
				continue
			}
			for _, h := range p.hosts {
				if strings.Contains(host, h) {
					href := a.Href
					*slot = &href
					break
				}
			}
		}
	}
	return links
}

// anchorHost extracts the lowercase host of an anchor href, or "" for
// relative and malformed links.
func anchorHost(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
