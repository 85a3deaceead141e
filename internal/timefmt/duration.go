// Package timefmt parses and renders the time values delivered by the league
// API: lap times, intervals, session lengths and event dates.
package timefmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StructuredTime is a duration split into its display components.
// TotalSeconds is the value used for sorting and comparisons; a zero value
// means that no time was recorded. A malformed source string leaves NaN in
// the fields instead of failing.
type StructuredTime struct {
	Hours        float64
	Minutes      float64
	Seconds      float64
	Milliseconds float64
	TotalSeconds float64
}

// Interval is the gap of a competitor to the session leader.
type Interval struct {
	Time StructuredTime `json:"time"`
	Laps int            `json:"laps"`
}

var invalidTime = StructuredTime{
	Hours:        math.NaN(),
	Minutes:      math.NaN(),
	Seconds:      math.NaN(),
	Milliseconds: math.NaN(),
	TotalSeconds: math.NaN(),
}

// ParseDuration reads a "H:MM:SS.mmm" string. The fractional part is read as
// fractions of a second, so "1:23.4" and "1:23.4000000" both yield 400 ms.
func ParseDuration(text string) StructuredTime {
	groups := strings.Split(strings.TrimSpace(text), ":")
	if len(groups) < 3 {
		return invalidTime
	}
	hours := parseSegment(groups[0])
	minutes := parseSegment(groups[1])
	secondsText, fraction, hasFraction := strings.Cut(groups[2], ".")
	seconds := parseSegment(secondsText)
	milliseconds := 0.0
	if hasFraction {
		milliseconds = parseFraction(fraction)
	}

	return StructuredTime{
		Hours:        hours,
		Minutes:      minutes,
		Seconds:      seconds,
		Milliseconds: milliseconds,
		TotalSeconds: milliseconds*0.001 + seconds + minutes*60 + hours*3600,
	}
}

func parseSegment(s string) float64 {
	v, err := strconv.Atoi(s)
	if err != nil {
		return math.NaN()
	}
	return float64(v)
}

func parseFraction(s string) float64 {
	if s == "" {
		return 0
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return math.NaN()
		}
	}
	if len(s) > 3 {
		s = s[:3]
	}
	s += strings.Repeat("0", 3-len(s))
	return parseSegment(s)
}

// IsZero reports whether no time was recorded.
func (t StructuredTime) IsZero() bool {
	return t.TotalSeconds == 0
}

// Valid reports whether the source string could be parsed.
func (t StructuredTime) Valid() bool {
	return !math.IsNaN(t.TotalSeconds)
}

// UnmarshalJSON normalizes the API's duration strings while decoding.
// A JSON null decodes to the zero time.
func (t *StructuredTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = StructuredTime{}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	*t = ParseDuration(text)
	return nil
}

// FormatDuration renders t as [HH:]M:SS.mmm. Hours are left out when zero,
// minutes are not padded, seconds and milliseconds are.
func FormatDuration(t StructuredTime) string {
	var b strings.Builder
	if t.Hours != 0 && !math.IsNaN(t.Hours) {
		b.WriteString(padded(t.Hours, 2))
		b.WriteByte(':')
	}
	b.WriteString(padded(t.Minutes, 1))
	b.WriteByte(':')
	b.WriteString(padded(t.Seconds, 2))
	b.WriteByte('.')
	ms := padded(t.Milliseconds, 3)
	if !math.IsNaN(t.Milliseconds) && len(ms) > 3 {
		ms = ms[:3]
	}
	b.WriteString(ms)
	return b.String()
}

func padded(v float64, width int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%0*d", width, int64(v))
}

// FormatInterval renders the gap to the leader, either in laps or in time.
func FormatInterval(interval Interval) string {
	if interval.Laps > 0 {
		return fmt.Sprintf("+%d Laps", interval.Laps)
	}
	return "+" + FormatDuration(interval.Time)
}

// IsFastestLap reports whether the time selected from row is the smallest
// positive time among rows. Rows without a recorded time never qualify.
func IsFastestLap[R any](rows []R, row R, selector func(R) StructuredTime) bool {
	best := math.Inf(1)
	for _, r := range rows {
		if v := selector(r).TotalSeconds; v > 0 && v < best {
			best = v
		}
	}
	return selector(row).TotalSeconds == best
}

// ChangeClass maps a signed change between two standings snapshots to the
// css class used for its indicator.
func ChangeClass(change float64) string {
	switch {
	case change > 0:
		return "positive"
	case change < 0:
		return "negative"
	default:
		return "equal"
	}
}
