package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// stubNavigator returns a canned snapshot per URL.
type stubNavigator struct {
	pages map[string]*model.PageSnapshot
	err   error
	calls []string
}

func (s *stubNavigator) Snapshot(_ context.Context, url string) (*model.PageSnapshot, error) {
	s.calls = append(s.calls, url)
	if s.err != nil {
		return nil, s.err
	}
	return s.pages[url], nil
}

func TestMatchDecisionMaker_NameFirst(t *testing.T) {
	dm := matchDecisionMaker("Jane Smith is the CEO of the company.")
	require.NotNil(t, dm)
	assert.Equal(t, "Jane Smith", dm.Name)
	assert.Equal(t, "CEO", dm.Title)
}

func TestMatchDecisionMaker_TitleFirst(t *testing.T) {
	dm := matchDecisionMaker("Our CEO, John Doe, leads all projects.")
	require.NotNil(t, dm)
	assert.Equal(t, "John Doe", dm.Name)
	assert.Equal(t, "CEO", dm.Title)
}

func TestMatchDecisionMaker_TitlePrecedence(t *testing.T) {
	// Founder appears first in the text, but CEO outranks it in the
	// title list. The name attributed is the nearest capitalized pair
	// preceding the winning title, which here is the founder's.
	dm := matchDecisionMaker("Alice Brown, Founder. Carol White, CEO.")
	require.NotNil(t, dm)
	assert.Equal(t, "CEO", dm.Title)
	assert.Equal(t, "Alice Brown", dm.Name)
}

func TestMatchDecisionMaker_TitleList(t *testing.T) {
	// Compound titles resolve to their shorter precedents: the word
	// boundary matches "Founder" inside "Co-Founder" and "Director"
	// inside "Managing Director", and the shorter title is tried first.
	tests := []struct {
		title string
		text  string
	}{
		{"Founder", "Pat Green, Founder of the studio"},
		{"Founder", "Sam Reed, Co-Founder"},
		{"President", "President of the firm is Lee Park"},
		{"Director", "Director of operations Dana Wolf"},
		{"Owner", "Kim Lane, Owner"},
		{"Director", "Jo Hart, Managing Director"},
		{"Partner", "Max Dean, Partner"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			dm := matchDecisionMaker(tt.text)
			require.NotNil(t, dm)
			assert.Equal(t, tt.title, dm.Title)
		})
	}
}

func TestMatchDecisionMaker_NoMatch(t *testing.T) {
	assert.Nil(t, matchDecisionMaker("a page about widgets with no people"))
}

func TestDecisionMakerFinder_FollowsTeamLink(t *testing.T) {
	home := &model.PageSnapshot{
		Text: "welcome to widgets",
		Anchors: []model.Anchor{
			{Href: "/products", Text: "Products"},
			{Href: "/team", Text: "Our Team"},
		},
	}
	nav := &stubNavigator{pages: map[string]*model.PageSnapshot{
		"/team": {Text: "Say hello to Rosa Diaz, our CEO."},
	}}

	dm := NewDecisionMakerFinder(nav).Find(context.Background(), home)
	require.NotNil(t, dm)
	assert.Equal(t, "Rosa Diaz", dm.Name)
	assert.Equal(t, []string{"/team"}, nav.calls)
}

func TestDecisionMakerFinder_FailedFollowDegrades(t *testing.T) {
	home := &model.PageSnapshot{
		Text:    "Terry Gold, Owner, started the shop in 1990.",
		Anchors: []model.Anchor{{Href: "/about", Text: "About"}},
	}
	nav := &stubNavigator{err: errors.New("timeout")}

	dm := NewDecisionMakerFinder(nav).Find(context.Background(), home)
	require.NotNil(t, dm)
	assert.Equal(t, "Terry Gold", dm.Name)
	assert.Equal(t, "Owner", dm.Title)
}

func TestDecisionMakerFinder_NilNavigatorSearchesSnapshotOnly(t *testing.T) {
	home := &model.PageSnapshot{
		Text:    "Nina Voss, President.",
		Anchors: []model.Anchor{{Href: "/team", Text: "Team"}},
	}

	dm := NewDecisionMakerFinder(nil).Find(context.Background(), home)
	require.NotNil(t, dm)
	assert.Equal(t, "Nina Voss", dm.Name)
	assert.Equal(t, "President", dm.Title)
}
