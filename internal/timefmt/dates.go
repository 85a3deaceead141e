package timefmt

import (
	"fmt"
	"strings"
	"time"
)

// Display holds the layouts used for event dates and start times.
type Display struct {
	DateLayout string
	TimeLayout string
	Location   *time.Location
}

// DefaultDisplay mirrors the en-US rendering of the hosted widgets.
func DefaultDisplay() Display {
	return Display{
		DateLayout: "1/2/2006",
		TimeLayout: "3:04:05 PM",
		Location:   time.UTC,
	}
}

const invalidDate = "Invalid Date"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate reads an API timestamp. Timestamps without an offset are taken
// to be in the display location.
func (d Display) ParseDate(s string) (time.Time, error) {
	loc := d.location()
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// FormatDate renders the calendar date of an API timestamp.
func (d Display) FormatDate(s string) string {
	t, err := d.ParseDate(s)
	if err != nil {
		return invalidDate
	}
	return t.Format(d.DateLayout)
}

// FormatTimeOfDay renders the wall clock time of an API timestamp.
func (d Display) FormatTimeOfDay(s string) string {
	t, err := d.ParseDate(s)
	if err != nil {
		return invalidDate
	}
	return t.Format(d.TimeLayout)
}

func (d Display) location() *time.Location {
	if d.Location == nil {
		return time.UTC
	}
	return d.Location
}

// FormatSessionLength renders a session as "HH:MM", "N laps" or both
// joined by " / ". Unset parts are skipped.
func FormatSessionLength(duration StructuredTime, laps int) string {
	parts := make([]string, 0, 2)
	if duration.TotalSeconds > 0 {
		parts = append(parts, fmt.Sprintf("%02d:%02d", int(duration.Hours), int(duration.Minutes)))
	}
	if laps > 0 {
		parts = append(parts, fmt.Sprintf("%d laps", laps))
	}
	return strings.Join(parts, " / ")
}
