package widgets

import (
	"strconv"

	"league_results_renderer/internal/table"
	"league_results_renderer/internal/timefmt"
)

func formatNumber(v float64) string {
	if v == 0 {
		// avoid "-0" for negated zero penalties
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatDelta renders value next to a change indicator styled by the sign
// of change.
func FormatDelta(value table.Renderable, change float64) table.Renderable {
	return table.Element("div", "", "",
		table.Element("span", "d-inline-block pe-1", "min-width: 1em;", value),
		table.Element("span", "d-inline-block pos-change "+timefmt.ChangeClass(change), "", table.Text(formatNumber(change))),
	)
}

// FormatTeam renders a team name in the team color.
func FormatTeam(name, color string) table.Renderable {
	return table.Element("label", "", "color: "+color, table.Text(name))
}

// FormatPenalty renders penalty points, highlighting deductions.
func FormatPenalty(value float64) table.Renderable {
	class := ""
	if value < 0 {
		class = "negative"
	}
	return table.Element("label", class, "", table.Text(formatNumber(value)))
}

func fullName(first, last string) string {
	return first + " " + last
}

func trackName(track, config string) string {
	if config != "-" && config != "" {
		return track + " - " + config
	}
	return track
}

func text[R any](f func(row R) string) func(R, int) table.Renderable {
	return func(row R, _ int) table.Renderable {
		return table.Text(f(row))
	}
}

func number[R any](f func(row R) float64) func(R, int) table.Renderable {
	return func(row R, _ int) table.Renderable {
		return table.Text(formatNumber(f(row)))
	}
}

func key[R, K any](f func(row R) K) table.ColumnOption[R] {
	return table.WithSortKey(func(row R) any {
		return f(row)
	})
}
