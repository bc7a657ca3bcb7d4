// Package export writes accepted records to an XLSX workbook for
// hand-off to sales tooling.
package export

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// leadHeader is the workbook column order for lead records. It mirrors
// the output schema field names.
var leadHeader = []string{
	"companyName", "email", "phone", "linkedIn", "facebook", "twitter",
	"instagram", "location", "industry", "websiteQualityScore",
	"websiteQualityRating", "brandingNeeds", "decisionMakerName",
	"decisionMakerRole", "websiteUrl", "leadScore", "scrapedAt",
}

// companyHeader is the workbook column order for company records.
var companyHeader = []string{"companyName", "domain", "location", "industry", "scrapedAt"}

// WriteLeads writes one row per lead to a new workbook at path.
func WriteLeads(path string, leads []model.LeadRecord) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	writeRow(sheet, leadHeader)
	for i := range leads {
		lead := &leads[i]
		writeRow(sheet, []string{
			model.Deref(lead.CompanyName),
			model.Deref(lead.Email),
			model.Deref(lead.Phone),
			model.Deref(lead.LinkedIn),
			model.Deref(lead.Facebook),
			model.Deref(lead.Twitter),
			model.Deref(lead.Instagram),
			model.Deref(lead.Location),
			model.Deref(lead.Industry),
			intCell(lead.WebsiteQualityScore),
			model.Deref(lead.WebsiteQualityRating),
			boolCell(lead.BrandingNeeds),
			model.Deref(lead.DecisionMakerName),
			model.Deref(lead.DecisionMakerRole),
			lead.WebsiteURL,
			strconv.Itoa(lead.LeadScore),
			lead.ScrapedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return eris.Wrapf(file.Save(path), "export: save %s", path)
}

// WriteCompanies writes one row per company to a new workbook at path.
// A missing domain is written as "N/A" per the listing output contract.
func WriteCompanies(path string, companies []model.CompanyRecord) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Companies")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	writeRow(sheet, companyHeader)
	for i := range companies {
		c := &companies[i]
		writeRow(sheet, []string{
			c.CompanyName,
			c.DomainOrNA(),
			model.Deref(c.Location),
			c.Industry,
			c.ScrapedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return eris.Wrapf(file.Save(path), "export: save %s", path)
}

func writeRow(sheet *xlsx.Sheet, values []string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().Value = v
	}
}

func intCell(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func boolCell(p *bool) string {
	if p == nil {
		return ""
	}
	return strconv.FormatBool(*p)
}
