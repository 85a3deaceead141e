package widgets

import (
	"fmt"
	"strconv"

	"league_results_renderer/internal/table"
)

// StandingColumns builds the fixed column set of a standing.
func StandingColumns(standing StandingTab) []*table.Column[StandingRow] {
	desc := table.WithDirection[StandingRow](table.Descending)
	return []*table.Column[StandingRow]{
		table.NewColumn("Pos",
			func(r StandingRow, _ int) table.Renderable {
				return FormatDelta(table.Text(fmt.Sprintf("%d.", r.Position)), float64(r.PositionChange))
			},
			key(func(r StandingRow) int { return r.Position })),
		table.NewColumn("Driver",
			text(func(r StandingRow) string { return fullName(r.Firstname, r.Lastname) }),
			key(func(r StandingRow) string { return fullName(r.Firstname, r.Lastname) })),
		table.NewColumn("Team",
			func(r StandingRow, _ int) table.Renderable { return FormatTeam(r.TeamName, r.TeamColor) },
			key(func(r StandingRow) string { return r.TeamName })),
		table.NewColumn("Race Pts.",
			func(r StandingRow, _ int) table.Renderable {
				return FormatDelta(table.Text(formatNumber(r.RacePoints)), r.RacePointsChange)
			},
			key(func(r StandingRow) float64 { return r.RacePoints }), desc),
		table.NewColumn("Penalty",
			func(r StandingRow, _ int) table.Renderable {
				return FormatDelta(FormatPenalty(-r.PenaltyPoints), -r.PenaltyPointsChange)
			},
			key(func(r StandingRow) float64 { return -r.PenaltyPoints }), desc),
		table.NewColumn("Total Pts.",
			func(r StandingRow, _ int) table.Renderable {
				return FormatDelta(table.Text(formatNumber(r.TotalPoints)), r.TotalPointsChange)
			},
			key(func(r StandingRow) float64 { return r.TotalPoints }), desc),
		table.NewColumn("Races",
			text(func(r StandingRow) string {
				if r.Races > r.RacesCounted {
					return fmt.Sprintf("%d (%d)", r.RacesCounted, r.Races)
				}
				return strconv.Itoa(r.RacesCounted)
			}),
			key(func(r StandingRow) int { return r.RacesCounted }), desc),
		table.NewColumn("Poles",
			func(r StandingRow, _ int) table.Renderable {
				return FormatDelta(table.Text(strconv.Itoa(r.PolePositions)), float64(r.PolePositionsChange))
			},
			key(func(r StandingRow) int { return r.PolePositions }), desc),
		table.NewColumn("Wins",
			func(r StandingRow, _ int) table.Renderable {
				return FormatDelta(table.Text(strconv.Itoa(r.Wins)), float64(r.WinsChange))
			},
			key(func(r StandingRow) int { return r.Wins }), desc),
		table.NewColumn("Podiums",
			text(func(r StandingRow) string { return strconv.Itoa(r.Top3) }),
			key(func(r StandingRow) int { return r.Top3 }), desc),
		table.NewColumn("Incidents",
			number(func(r StandingRow) float64 { return r.Incidents }),
			key(func(r StandingRow) float64 { return r.Incidents })),
	}
}

// NewStandingTable creates a table for one standing.
func NewStandingTable(standing StandingTab) *table.Table[StandingRow] {
	return table.New(standing.StandingRows, StandingColumns(standing))
}
