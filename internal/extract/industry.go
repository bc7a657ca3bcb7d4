package extract

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sells-group/leadgen-cli/internal/model"
)

//go:embed industries.yaml
var industriesYAML []byte

// industryEntry is one row of the embedded keyword table.
type industryEntry struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// industryTable is loaded once at init. Declaration order in the YAML
// is the tie-break: keyword sets overlap (e.g. "platform"), and the
// first industry with any hit wins.
var industryTable = mustLoadIndustries()

func mustLoadIndustries() []industryEntry {
	var entries []industryEntry
	if err := yaml.Unmarshal(industriesYAML, &entries); err != nil {
		panic("extract: parse embedded industry table: " + err.Error())
	}
	return entries
}

// Industry classifies the page against the keyword table, matching
// case-insensitively over the page text plus the meta description.
// Returns the sentinel "Other" when nothing matches; the nil/unknown
// state is reserved for extractor failure.
func Industry(snap *model.PageSnapshot) string {
	haystack := strings.ToLower(snap.Text + " " + snap.Meta("description"))
	for _, entry := range industryTable {
		for _, kw := range entry.Keywords {
			if strings.Contains(haystack, kw) {
				return entry.Name
			}
		}
	}
	return model.IndustryOther
}
