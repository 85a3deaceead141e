package widgets

import (
	"fmt"
	"strings"

	"league_results_renderer/internal/table"
	"league_results_renderer/internal/timefmt"
)

// SessionNameMode controls whether session cards show their title.
type SessionNameMode string

const (
	SessionNamesAuto   SessionNameMode = "auto"
	SessionNamesAlways SessionNameMode = "true"
	SessionNamesNever  SessionNameMode = "false"
)

// ParseSessionNameMode reads a query or config value. Unknown values fall
// back to auto.
func ParseSessionNameMode(s string) SessionNameMode {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return SessionNamesAlways
	case "false", "0", "no":
		return SessionNamesNever
	default:
		return SessionNamesAuto
	}
}

// Options select which parts of a widget are drawn.
type Options struct {
	// ChampionshipIndex selects a single tab; -1 draws all of them.
	ChampionshipIndex   int
	DisplayEventName    bool
	DisplaySessionNames SessionNameMode
}

// DefaultOptions returns the options used when a request sets none.
func DefaultOptions() Options {
	return Options{
		ChampionshipIndex:   -1,
		DisplayEventName:    true,
		DisplaySessionNames: SessionNamesAuto,
	}
}

// Card is one rendered table together with the state it was rendered in.
type Card struct {
	Key       string
	Title     string
	ShowTitle bool
	View      *table.View
	State     table.SortState
}

// Section groups the cards of one championship.
type Section struct {
	Heading string
	Cards   []Card
}

// Page is a complete widget ready for a presentation adapter.
type Page struct {
	Heading  string
	Sections []Section
}

// Empty reports whether nothing would be drawn.
func (p *Page) Empty() bool {
	for _, s := range p.Sections {
		if len(s.Cards) > 0 {
			return false
		}
	}
	return true
}

// States maps card keys to the sort state requested for them.
type States map[string]table.SortState

// CardKey returns the key of the n-th card of a page.
func CardKey(n int) string {
	return fmt.Sprintf("s%d", n)
}

// Builder assembles widget pages from API data.
type Builder struct {
	Display timefmt.Display
}

func renderCard[R any](tbl *table.Table[R], key string, states States) (Card, error) {
	if state, ok := states[key]; ok {
		tbl.Restore(state)
	}
	view, err := tbl.Render()
	if err != nil {
		return Card{}, fmt.Errorf("render table %s: %w", key, err)
	}
	return Card{Key: key, View: view, State: tbl.State()}, nil
}

func selectTabs[T any](tabs []T, index int) []T {
	if index < 0 {
		return tabs
	}
	if index >= len(tabs) {
		return nil
	}
	return tabs[index : index+1]
}

// EventHeading formats the heading line of an event.
func (b Builder) EventHeading(tab ResultTab) string {
	return fmt.Sprintf("%s - %s: %s", b.Display.FormatDate(tab.Date), tab.EventName, trackName(tab.TrackName, tab.ConfigName))
}

// ResultsPage builds the results widget. Sessions are drawn in reverse API
// order, sessions without rows are skipped.
func (b Builder) ResultsPage(tabs []ResultTab, opts Options, states States) (*Page, error) {
	page := &Page{}
	if len(tabs) == 0 {
		return page, nil
	}
	if opts.DisplayEventName {
		page.Heading = b.EventHeading(tabs[0])
	}

	n := 0
	for _, tab := range selectTabs(tabs, opts.ChampionshipIndex) {
		section := Section{Heading: tab.DisplayName}
		showTitle := opts.DisplaySessionNames == SessionNamesAlways ||
			(opts.DisplaySessionNames == SessionNamesAuto && len(tab.SessionResults) > 1)
		for i := len(tab.SessionResults) - 1; i >= 0; i-- {
			result := tab.SessionResults[i]
			if len(result.ResultRows) == 0 {
				continue
			}
			card, err := renderCard(NewResultsTable(result, tab.StrengthOfField), CardKey(n), states)
			if err != nil {
				return nil, fmt.Errorf("results %q session %q: %w", tab.DisplayName, result.SessionName, err)
			}
			card.Title = result.SessionName
			card.ShowTitle = showTitle
			section.Cards = append(section.Cards, card)
			n++
		}
		page.Sections = append(page.Sections, section)
	}
	return page, nil
}

// StandingsPage builds the standings widget with one card per championship.
func (b Builder) StandingsPage(tabs []StandingTab, opts Options, states States) (*Page, error) {
	page := &Page{}
	n := 0
	for _, tab := range selectTabs(tabs, opts.ChampionshipIndex) {
		section := Section{Heading: tab.Name}
		if len(tab.StandingRows) > 0 {
			card, err := renderCard(NewStandingTable(tab), CardKey(n), states)
			if err != nil {
				return nil, fmt.Errorf("standings %q: %w", tab.Name, err)
			}
			section.Cards = append(section.Cards, card)
			n++
		}
		page.Sections = append(page.Sections, section)
	}
	return page, nil
}

// SchedulePage builds the schedule widget.
func (b Builder) SchedulePage(events []Event, states States) (*Page, error) {
	page := &Page{}
	if len(events) == 0 {
		return page, nil
	}
	card, err := renderCard(NewScheduleTable(events, b.Display), CardKey(0), states)
	if err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}
	page.Sections = []Section{{Cards: []Card{card}}}
	return page, nil
}
