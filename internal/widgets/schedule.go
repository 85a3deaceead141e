package widgets

import (
	"fmt"
	"strconv"

	"league_results_renderer/internal/table"
	"league_results_renderer/internal/timefmt"
)

func sessionsOfType(sessions []Session, sessionType string) []Session {
	var matched []Session
	for _, s := range sessions {
		if s.SessionType == sessionType {
			matched = append(matched, s)
		}
	}
	return matched
}

func lastSessionOfType(sessions []Session, sessionType string) *Session {
	matched := sessionsOfType(sessions, sessionType)
	if len(matched) == 0 {
		return nil
	}
	return &matched[len(matched)-1]
}

// EventLaps returns the lap count shown for an event: the laps of the last
// race session, else of the last qualifying session, else of the last
// session at all.
func EventLaps(event Event) int {
	if len(event.Sessions) == 0 {
		return 0
	}
	if race := lastSessionOfType(event.Sessions, SessionRace); race != nil {
		return race.Laps
	}
	if qualy := lastSessionOfType(event.Sessions, SessionQualifying); qualy != nil {
		return qualy.Laps
	}
	return event.Sessions[len(event.Sessions)-1].Laps
}

func sessionLength(s *Session) string {
	if s == nil {
		return ""
	}
	return timefmt.FormatSessionLength(s.Duration, s.Laps)
}

// ScheduleColumns builds the columns of a season schedule. Laps, practice
// and qualifying columns only show when any event has them; one race column
// is added per race slot of the event with the most races.
func ScheduleColumns(events []Event, display timefmt.Display) []*table.Column[Event] {
	displayLaps := false
	displayPractice := false
	displayQualy := false
	racesCount := 0
	for _, e := range events {
		if EventLaps(e) > 0 {
			displayLaps = true
		}
		if lastSessionOfType(e.Sessions, SessionPractice) != nil {
			displayPractice = true
		}
		if lastSessionOfType(e.Sessions, SessionQualifying) != nil {
			displayQualy = true
		}
		if n := len(sessionsOfType(e.Sessions, SessionRace)); n > racesCount {
			racesCount = n
		}
	}

	columns := []*table.Column[Event]{
		table.NewColumn("Nr.", func(_ Event, i int) table.Renderable { return table.Text(fmt.Sprintf("%d.", i+1)) }),
		table.NewColumn("Date", text(func(e Event) string { return display.FormatDate(e.Date) })),
		table.NewColumn("Name", text(func(e Event) string { return e.Name })),
		table.NewColumn("Track", text(func(e Event) string { return trackName(e.TrackName, e.ConfigName) })),
	}
	if displayLaps {
		columns = append(columns, table.NewColumn("Laps", text(func(e Event) string { return strconv.Itoa(EventLaps(e)) })))
	}
	columns = append(columns, table.NewColumn("Start", text(func(e Event) string { return display.FormatTimeOfDay(e.Date) })))
	if displayPractice {
		columns = append(columns, table.NewColumn("Practice", text(func(e Event) string {
			return sessionLength(lastSessionOfType(e.Sessions, SessionPractice))
		})))
	}
	if displayQualy {
		columns = append(columns, table.NewColumn("Qualy", text(func(e Event) string {
			return sessionLength(lastSessionOfType(e.Sessions, SessionQualifying))
		})))
	}
	for i := 0; i < racesCount; i++ {
		i := i // per-iteration copy (go.mod targets go 1.21)
		heading := "Race"
		if racesCount > 1 {
			heading = fmt.Sprintf("Race %d", i+1)
		}
		columns = append(columns, table.NewColumn(heading, text(func(e Event) string {
			races := sessionsOfType(e.Sessions, SessionRace)
			if i >= len(races) {
				return ""
			}
			return sessionLength(&races[i])
		})))
	}
	return columns
}

// NewScheduleTable creates a table for a season schedule.
func NewScheduleTable(events []Event, display timefmt.Display) *table.Table[Event] {
	return table.New(events, ScheduleColumns(events, display))
}
