package widgets

import (
	"fmt"
	"strconv"

	"league_results_renderer/internal/table"
	"league_results_renderer/internal/timefmt"
)

const fastestStyle = "font-weight: bold"

// intervalLapWeight orders lapped competitors behind everyone on the lead lap.
const intervalLapWeight = 1e6

// IsTeamResult reports whether the rows belong to a team result.
func IsTeamResult(rows []ResultRow) bool {
	for _, r := range rows {
		if r.MemberID == nil {
			return true
		}
	}
	return false
}

func anyRow(rows []ResultRow, pred func(ResultRow) bool) bool {
	for _, r := range rows {
		if pred(r) {
			return true
		}
	}
	return false
}

// ResultColumns builds the columns of a session result. Individual columns
// are dropped for team results; start position, qualifying lap and bonus
// points only show when at least one row has a value.
func ResultColumns(result SessionResult, sof int) []*table.Column[ResultRow] {
	rows := result.ResultRows
	isTeamResult := IsTeamResult(rows)
	displayStartPos := anyRow(rows, func(r ResultRow) bool { return r.StartPosition != 0 })
	displayQualyLap := anyRow(rows, func(r ResultRow) bool { return r.QualifyingTime.TotalSeconds != 0 })
	displayBonusPoints := anyRow(rows, func(r ResultRow) bool { return r.BonusPoints != 0 })

	lapColumn := func(heading string, selector func(ResultRow) timefmt.StructuredTime) *table.Column[ResultRow] {
		return table.NewColumn(heading,
			text(func(r ResultRow) string { return timefmt.FormatDuration(selector(r)) }),
			key(func(r ResultRow) float64 { return selector(r).TotalSeconds }),
			table.WithStyle(func(r ResultRow) string {
				if timefmt.IsFastestLap(rows, r, selector) {
					return fastestStyle
				}
				return ""
			}),
		)
	}

	var columns []*table.Column[ResultRow]
	add := func(c *table.Column[ResultRow]) {
		columns = append(columns, c)
	}

	add(table.NewColumn("Pos",
		func(r ResultRow, _ int) table.Renderable {
			return FormatDelta(table.Text(fmt.Sprintf("%d.", r.FinalPosition)), float64(r.FinalPositionChange))
		},
		key(func(r ResultRow) int { return r.FinalPosition })))
	if !isTeamResult {
		if displayStartPos {
			add(table.NewColumn("Start",
				text(func(r ResultRow) string { return fmt.Sprintf("%d.", r.StartPosition) }),
				key(func(r ResultRow) int { return r.StartPosition })))
		}
		add(table.NewColumn("Name",
			text(func(r ResultRow) string { return fullName(r.Firstname, r.Lastname) }),
			key(func(r ResultRow) string { return fullName(r.Firstname, r.Lastname) })))
	}
	add(table.NewColumn("Team",
		func(r ResultRow, _ int) table.Renderable { return FormatTeam(r.TeamName, r.TeamColor) },
		key(func(r ResultRow) string { return r.TeamName })))
	if displayQualyLap {
		add(lapColumn("Qualy Lap", func(r ResultRow) timefmt.StructuredTime { return r.QualifyingTime }))
	}
	add(lapColumn("Fastest Lap", func(r ResultRow) timefmt.StructuredTime { return r.FastestLapTime }))
	add(lapColumn("Avg. Lap", func(r ResultRow) timefmt.StructuredTime { return r.AvgLapTime }))
	if !isTeamResult {
		add(table.NewColumn("Interval",
			text(func(r ResultRow) string { return timefmt.FormatInterval(r.Interval) }),
			key(func(r ResultRow) float64 {
				return float64(r.Interval.Laps)*intervalLapWeight + r.Interval.Time.TotalSeconds
			})))
		add(table.NewColumn("Laps Lead",
			text(func(r ResultRow) string { return strconv.Itoa(r.LeadLaps) }),
			key(func(r ResultRow) int { return r.LeadLaps })))
		add(table.NewColumn("Laps Compl.",
			text(func(r ResultRow) string { return strconv.Itoa(r.CompletedLaps) }),
			key(func(r ResultRow) int { return r.CompletedLaps })))
	}
	add(table.NewColumn("Race Pts.",
		number(func(r ResultRow) float64 { return r.RacePoints }),
		key(func(r ResultRow) float64 { return r.RacePoints })))
	if displayBonusPoints {
		add(table.NewColumn("Bonus Pts.",
			number(func(r ResultRow) float64 { return r.BonusPoints }),
			key(func(r ResultRow) float64 { return r.BonusPoints })))
	}
	add(table.NewColumn("Penalty",
		number(func(r ResultRow) float64 { return r.PenaltyPoints }),
		key(func(r ResultRow) float64 { return r.PenaltyPoints })))
	add(table.NewColumn("Total Pts.",
		number(func(r ResultRow) float64 { return r.TotalPoints }),
		key(func(r ResultRow) float64 { return r.TotalPoints })))
	if !isTeamResult {
		add(table.NewColumn(fmt.Sprintf("IR (%d)", sof),
			text(func(r ResultRow) string { return strconv.Itoa(r.OldIrating) }),
			key(func(r ResultRow) int { return r.OldIrating })))
	}
	add(table.NewColumn("Incs",
		number(func(r ResultRow) float64 { return r.Incidents }),
		key(func(r ResultRow) float64 { return r.Incidents })))
	return columns
}

// NewResultsTable creates a table for one session result.
func NewResultsTable(result SessionResult, sof int) *table.Table[ResultRow] {
	return table.New(result.ResultRows, ResultColumns(result, sof))
}
