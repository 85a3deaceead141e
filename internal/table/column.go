package table

// Direction is the sort order of a column. The values double as the css
// class of the column header.
type Direction string

const (
	Ascending  Direction = "sort-ascending"
	Descending Direction = "sort-descending"
)

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Column describes how one table column is displayed and sorted.
// A column without a SortKey is displayed but cannot be sorted by.
type Column[R any] struct {
	Heading   string
	Value     func(row R, rowIndex int) Renderable
	Style     func(row R) string
	SortKey   func(row R) any
	Direction Direction
}

// ColumnOption configures optional parts of a Column.
type ColumnOption[R any] func(*Column[R])

// WithSortKey makes the column sortable by key.
func WithSortKey[R any](key func(row R) any) ColumnOption[R] {
	return func(c *Column[R]) {
		c.SortKey = key
	}
}

// WithStyle sets an inline style per cell.
func WithStyle[R any](style func(row R) string) ColumnOption[R] {
	return func(c *Column[R]) {
		c.Style = style
	}
}

// WithDirection sets the initial sort direction.
func WithDirection[R any](d Direction) ColumnOption[R] {
	return func(c *Column[R]) {
		c.Direction = d
	}
}

// NewColumn creates a column sorted ascending unless configured otherwise.
func NewColumn[R any](heading string, value func(row R, rowIndex int) Renderable, opts ...ColumnOption[R]) *Column[R] {
	c := &Column[R]{
		Heading:   heading,
		Value:     value,
		Direction: Ascending,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sortable reports whether the column has a sort key.
func (c *Column[R]) Sortable() bool {
	return c != nil && c.SortKey != nil
}
