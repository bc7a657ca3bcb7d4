package model

import "time"

// CompanyRecord is the output shape for listing-style sources such as
// map and search-result pages. Domain is a normalized lowercase host
// without a leading "www.", or nil when the listing exposed no website.
type CompanyRecord struct {
	CompanyName string    `json:"companyName"`
	Domain      *string   `json:"domain"`
	Location    *string   `json:"location"`
	Industry    string    `json:"industry"`
	ScrapedAt   time.Time `json:"scrapedAt"`
}

// DomainOrNA returns the domain, or "N/A" when none was found. Listing
// consumers expect the placeholder rather than an empty cell.
func (c *CompanyRecord) DomainOrNA() string {
	if c.Domain == nil || *c.Domain == "" {
		return "N/A"
	}
	return *c.Domain
}
