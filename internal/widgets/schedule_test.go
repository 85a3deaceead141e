package widgets

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"league_results_renderer/internal/timefmt"
)

func TestEventLaps(t *testing.T) {
	tests := []struct {
		name     string
		sessions []Session
		want     int
	}{
		{"race wins", []Session{{SessionType: SessionQualifying, Laps: 10}, {SessionType: SessionRace, Laps: 25}}, 25},
		{"last race", []Session{{SessionType: SessionRace, Laps: 12}, {SessionType: SessionRace, Laps: 18}}, 18},
		{"qualifying fallback", []Session{{SessionType: SessionPractice, Laps: 3}, {SessionType: SessionQualifying, Laps: 4}}, 4},
		{"last session fallback", []Session{{SessionType: SessionPractice, Laps: 5}}, 5},
		{"no sessions", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EventLaps(Event{Sessions: tt.sessions}))
		})
	}
}

const scheduleJSON = `[
	{
		"date": "2024-03-05T19:00:00", "name": "Round 1", "trackName": "Spa", "configName": "Grand Prix",
		"sessions": [
			{"sessionType": "Practice", "laps": 0, "duration": "00:30:00"},
			{"sessionType": "Qualifying", "laps": 0, "duration": "00:10:00"},
			{"sessionType": "Race", "laps": 20, "duration": "00:00:00"}
		]
	},
	{
		"date": "2024-03-12T19:00:00", "name": "Round 2", "trackName": "Monza", "configName": "-",
		"sessions": [
			{"sessionType": "Race", "laps": 12, "duration": "00:00:00"},
			{"sessionType": "Race", "laps": 0, "duration": "00:45:00"}
		]
	}
]`

func loadSchedule(t *testing.T) []Event {
	t.Helper()
	var events []Event
	require.NoError(t, json.Unmarshal([]byte(scheduleJSON), &events))
	return events
}

func TestScheduleColumns(t *testing.T) {
	events := loadSchedule(t)
	columns := ScheduleColumns(events, timefmt.DefaultDisplay())
	assert.Equal(t, []string{
		"Nr.", "Date", "Name", "Track", "Laps", "Start", "Practice", "Qualy", "Race 1", "Race 2",
	}, headings(columns))
	for _, c := range columns {
		assert.False(t, c.Sortable(), c.Heading)
	}
}

func TestScheduleColumns_SingleRace(t *testing.T) {
	events := []Event{{Name: "Solo", Sessions: []Session{{SessionType: SessionRace, Duration: timefmt.ParseDuration("01:00:00")}}}}
	columns := ScheduleColumns(events, timefmt.DefaultDisplay())
	assert.Equal(t, []string{"Nr.", "Date", "Name", "Track", "Start", "Race"}, headings(columns))
}

func TestScheduleTable_Render(t *testing.T) {
	view, err := NewScheduleTable(loadSchedule(t), timefmt.DefaultDisplay()).Render()
	require.NoError(t, err)

	assert.Equal(t, []string{"1.", "2."}, cellTexts(view, 0))
	assert.Equal(t, []string{"3/5/2024", "3/12/2024"}, cellTexts(view, 1))
	assert.Equal(t, []string{"Spa - Grand Prix", "Monza"}, cellTexts(view, 3))
	assert.Equal(t, []string{"20", "0"}, cellTexts(view, 4))
	assert.Equal(t, []string{"7:00:00 PM", "7:00:00 PM"}, cellTexts(view, 5))
	assert.Equal(t, []string{"00:30", ""}, cellTexts(view, 6))
	assert.Equal(t, []string{"00:10", ""}, cellTexts(view, 7))
	assert.Equal(t, []string{"20 laps", "12 laps"}, cellTexts(view, 8))
	assert.Equal(t, []string{"", "00:45"}, cellTexts(view, 9))
}
