package extract

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Navigator supplies snapshots of rendered pages. The decision-maker
// finder uses it for a single bounded follow of a team/about link; it
// never crawls.
type Navigator interface {
	Snapshot(ctx context.Context, url string) (*model.PageSnapshot, error)
}

// decisionMakerTitles is the fixed precedence list. The first title
// that matches in either direction wins; there is no scoring across
// candidates.
var decisionMakerTitles = []string{
	"CEO",
	"Founder",
	"Co-Founder",
	"President",
	"Director",
	"Owner",
	"Managing Director",
	"Partner",
}

// teamLinkKeywords identify anchors pointing at team or leadership pages.
var teamLinkKeywords = []string{"team", "leadership", "about", "staff", "management"}

// DecisionMaker is a matched name/title pair.
type DecisionMaker struct {
	Name  string
	Title string
}

// titlePatterns holds the two bidirectional patterns for one title.
type titlePatterns struct {
	title      string
	nameFirst  *regexp.Regexp // "Jane Smith ... CEO"
	titleFirst *regexp.Regexp // "CEO ... Jane Smith"
}

var titleMatchers = buildTitleMatchers()

func buildTitleMatchers() []titlePatterns {
	matchers := make([]titlePatterns, 0, len(decisionMakerTitles))
	for _, title := range decisionMakerTitles {
		quoted := regexp.QuoteMeta(title)
		matchers = append(matchers, titlePatterns{
			title:      title,
			nameFirst:  regexp.MustCompile(`(?s)([A-Z][a-z]+ [A-Z][a-z]+).{0,80}?\b` + quoted + `\b`),
			titleFirst: regexp.MustCompile(`(?s)\b` + quoted + `\b.{0,80}?([A-Z][a-z]+ [A-Z][a-z]+)`),
		})
	}
	return matchers
}

// DecisionMakerFinder locates a likely decision-maker via a two-phase
// search: optionally hop to a team page, then try the ordered title
// list with bidirectional name patterns.
type DecisionMakerFinder struct {
	nav Navigator
}

// NewDecisionMakerFinder creates a finder. A nil navigator disables the
// one-hop follow; the finder then searches only the given snapshot.
func NewDecisionMakerFinder(nav Navigator) *DecisionMakerFinder {
	return &DecisionMakerFinder{nav: nav}
}

// Find searches the snapshot, after following at most one team/about
// link when a navigator is available. A failed follow degrades to
// searching the original snapshot and is not an error.
func (f *DecisionMakerFinder) Find(ctx context.Context, snap *model.PageSnapshot) *DecisionMaker {
	text := snap.Text

	if teamURL := findTeamLink(snap); teamURL != "" && f.nav != nil {
		teamSnap, err := f.nav.Snapshot(ctx, teamURL)
		if err != nil {
			zap.L().Debug("extract: team page follow failed",
				zap.String("url", teamURL),
				zap.Error(err),
			)
		} else if teamSnap != nil {
			text = teamSnap.Text
		}
	}

	return matchDecisionMaker(text)
}

// findTeamLink returns the href of the first anchor whose text or href
// mentions a team keyword, case-insensitively.
func findTeamLink(snap *model.PageSnapshot) string {
	for _, a := range snap.Anchors {
		probe := strings.ToLower(a.Text + " " + a.Href)
		for _, kw := range teamLinkKeywords {
			if strings.Contains(probe, kw) {
				return a.Href
			}
		}
	}
	return ""
}

// matchDecisionMaker tries each title in precedence order, name-first
// then title-first. Adjacent capitalized phrases can false-positive;
// first-match-wins is the accepted behavior.
func matchDecisionMaker(text string) *DecisionMaker {
	for _, m := range titleMatchers {
		if groups := m.nameFirst.FindStringSubmatch(text); groups != nil {
			return &DecisionMaker{Name: groups[1], Title: m.title}
		}
		if groups := m.titleFirst.FindStringSubmatch(text); groups != nil {
			return &DecisionMaker{Name: groups[1], Title: m.title}
		}
	}
	return nil
}
