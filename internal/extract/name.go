package extract

import (
	"strings"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// titleSeparators are the separators commonly found in <title> values,
// in split precedence order.
var titleSeparators = []string{"|", "-"}

// CompanyNameChain builds the fallback chain for the company name:
// the og:site_name meta tag, then the application-name meta tag, then
// the title tag split on common separators as the last resort.
func CompanyNameChain() *Chain {
	return NewChain("companyName",
		Strategy{Name: "meta_og_site_name", Fn: metaValue("og:site_name")},
		Strategy{Name: "meta_application_name", Fn: metaValue("application-name")},
		Strategy{Name: "title_split", Fn: titleSplit},
	)
}

// metaValue returns a strategy function reading a single meta tag.
func metaValue(key string) func(*model.PageSnapshot) (string, error) {
	return func(snap *model.PageSnapshot) (string, error) {
		return snap.Meta(key), nil
	}
}

// titleSplit takes the segment of the title before the first separator
// found in precedence order. "Acme Corp | Home" and "Acme Corp - Home"
// both yield "Acme Corp"; a title containing both splits on "|" only,
// and a title with no separator is returned whole.
func titleSplit(snap *model.PageSnapshot) (string, error) {
	title := snap.Title
	for _, sep := range titleSeparators {
		if idx := strings.Index(title, sep); idx >= 0 {
			return title[:idx], nil
		}
	}
	return title, nil
}
