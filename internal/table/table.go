// Package table implements a generic sortable table. A Table holds typed rows
// and the columns describing them; Render produces a presentation neutral
// View that adapters turn into HTML, spreadsheets or CSV.
package table

import (
	"fmt"
	"sort"
)

// HeaderCell is one rendered column header.
type HeaderCell struct {
	Index     int
	Heading   string
	Direction Direction
	Active    bool
	Sortable  bool
}

// Class returns the css class list of the header cell.
func (h HeaderCell) Class() string {
	class := "table-header " + string(h.Direction)
	if h.Active {
		class += " active"
	}
	if h.Sortable {
		class += " action"
	}
	return class
}

// Cell is one rendered body cell.
type Cell struct {
	Content Renderable
	Style   string
}

// View is the output of a render pass.
type View struct {
	Header []HeaderCell
	Body   [][]Cell
}

// Table is a sortable table over rows of type R. It is not safe for
// concurrent use.
type Table[R any] struct {
	rows    []R
	columns []*Column[R]
	active  int
}

// New creates a table sorted by its first column.
func New[R any](rows []R, columns []*Column[R]) *Table[R] {
	return &Table[R]{rows: rows, columns: columns}
}

// Populate replaces rows and columns. The active column index is kept, so
// it may point at a different or missing column afterwards.
func (t *Table[R]) Populate(rows []R, columns []*Column[R]) {
	t.rows = rows
	t.columns = columns
}

// Rows returns the rows in input order.
func (t *Table[R]) Rows() []R {
	return t.rows
}

// Columns returns the table columns.
func (t *Table[R]) Columns() []*Column[R] {
	return t.columns
}

// ActiveIndex returns the index of the sort column, or NoSort.
func (t *Table[R]) ActiveIndex() int {
	return t.active
}

// State captures the sort state of the table.
func (t *Table[R]) State() SortState {
	state := SortState{Active: t.active, Directions: make([]Direction, len(t.columns))}
	for i, c := range t.columns {
		state.Directions[i] = c.Direction
	}
	return state
}

// Restore applies a state captured by State. Directions beyond the current
// column count are ignored.
func (t *Table[R]) Restore(state SortState) {
	t.active = state.Active
	for i, d := range state.Directions {
		if i >= len(t.columns) {
			break
		}
		t.columns[i].Direction = d
	}
}

func (t *Table[R]) sortColumn() *Column[R] {
	if t.active < 0 || t.active >= len(t.columns) {
		return nil
	}
	return t.columns[t.active]
}

// SortRows returns a sorted copy of rows ordered by the active column. When
// there is no sortable active column the copy keeps the input order.
// Descending order swaps the comparator arguments.
func (t *Table[R]) SortRows(rows []R) ([]R, error) {
	sorted := append([]R(nil), rows...)
	column := t.sortColumn()
	if !column.Sortable() {
		return sorted, nil
	}

	var sortErr error
	sort.SliceStable(sorted, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		a, b := sorted[i], sorted[j]
		if column.Direction == Descending {
			a, b = b, a
		}
		c, err := compareKeys(column.SortKey(a), column.SortKey(b))
		if err != nil {
			sortErr = err
			return false
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, fmt.Errorf("sort by %q: %w", column.Heading, sortErr)
	}
	return sorted, nil
}

// Render sorts the rows and builds a complete header and body. Every call
// returns a new View.
func (t *Table[R]) Render() (*View, error) {
	rows, err := t.SortRows(t.rows)
	if err != nil {
		return nil, err
	}

	view := &View{
		Header: make([]HeaderCell, len(t.columns)),
		Body:   make([][]Cell, len(rows)),
	}
	for i, c := range t.columns {
		view.Header[i] = HeaderCell{
			Index:     i,
			Heading:   c.Heading,
			Direction: c.Direction,
			Active:    i == t.active,
			Sortable:  c.Sortable(),
		}
	}
	for rowIndex, row := range rows {
		cells := make([]Cell, len(t.columns))
		for i, c := range t.columns {
			cells[i].Content = c.Value(row, rowIndex)
			if c.Style != nil {
				cells[i].Style = c.Style(row)
			}
		}
		view.Body[rowIndex] = cells
	}
	return view, nil
}

// OnHeaderClick handles a click on the header of column index and renders
// the table again. Clicks on columns that cannot be sorted change nothing.
func (t *Table[R]) OnHeaderClick(index int) (*View, error) {
	if index >= 0 && index < len(t.columns) && t.columns[index].Sortable() {
		t.Restore(t.State().Click(index))
	}
	return t.Render()
}
