package table

import (
	"fmt"
	"strconv"
	"strings"
)

// NoSort marks a state without an active sort column.
const NoSort = -1

// SortState is the sort related state of a table: the active column and
// the stored direction of every column.
type SortState struct {
	Active     int
	Directions []Direction
}

// Click returns the state after a click on the header of column index.
// Clicking the active column toggles its direction, any other column
// becomes active with the direction it already has.
func (s SortState) Click(index int) SortState {
	next := SortState{
		Active:     index,
		Directions: append([]Direction(nil), s.Directions...),
	}
	if index == s.Active && index >= 0 && index < len(next.Directions) {
		next.Directions[index] = next.Directions[index].Toggle()
	}
	return next
}

// String encodes the state as "<active>.<dirs>", one 'a' or 'd' per column,
// e.g. "3.aaddaa".
func (s SortState) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(s.Active))
	b.WriteByte('.')
	for _, d := range s.Directions {
		if d == Descending {
			b.WriteByte('d')
		} else {
			b.WriteByte('a')
		}
	}
	return b.String()
}

// ParseSortState decodes the output of SortState.String.
func ParseSortState(s string) (SortState, error) {
	activeText, dirs, ok := strings.Cut(s, ".")
	if !ok {
		return SortState{}, fmt.Errorf("sort state %q: missing direction list", s)
	}
	active, err := strconv.Atoi(activeText)
	if err != nil {
		return SortState{}, fmt.Errorf("sort state %q: invalid column index: %w", s, err)
	}
	if active < NoSort {
		active = NoSort
	}

	state := SortState{Active: active, Directions: make([]Direction, 0, len(dirs))}
	for _, r := range dirs {
		switch r {
		case 'a':
			state.Directions = append(state.Directions, Ascending)
		case 'd':
			state.Directions = append(state.Directions, Descending)
		default:
			return SortState{}, fmt.Errorf("sort state %q: invalid direction %q", s, r)
		}
	}
	return state, nil
}
