package table

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type driver struct {
	name   string
	points int
	team   string
}

func testRows() []driver {
	return []driver{
		{"Alice", 10, "Red"},
		{"Bob", 25, "Blue"},
		{"Carol", 18, "Red"},
		{"Dave", 18, "Green"},
	}
}

func testColumns() []*Column[driver] {
	return []*Column[driver]{
		NewColumn("Nr.", func(_ driver, i int) Renderable { return Text(fmt.Sprintf("%d.", i+1)) }),
		NewColumn("Name", func(d driver, _ int) Renderable { return Text(d.name) },
			WithSortKey(func(d driver) any { return d.name })),
		NewColumn("Points", func(d driver, _ int) Renderable { return Text(fmt.Sprint(d.points)) },
			WithSortKey(func(d driver) any { return d.points }),
			WithDirection[driver](Descending),
			WithStyle(func(d driver) string {
				if d.points > 20 {
					return "font-weight: bold"
				}
				return ""
			})),
	}
}

func column(v *View, index int) []string {
	values := make([]string, len(v.Body))
	for i, row := range v.Body {
		values[i] = row[index].Content.String()
	}
	return values
}

func TestNewColumn_Defaults(t *testing.T) {
	c := NewColumn("Name", func(d driver, _ int) Renderable { return Text(d.name) })
	assert.Equal(t, Ascending, c.Direction)
	assert.False(t, c.Sortable())
	assert.Nil(t, c.Style)
}

func TestRender_NoSortKeyKeepsInputOrder(t *testing.T) {
	tbl := New(testRows(), testColumns())

	view, err := tbl.Render()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dave"}, column(view, 1))
	assert.Equal(t, []string{"1.", "2.", "3.", "4."}, column(view, 0))
}

func TestRender_Header(t *testing.T) {
	tbl := New(testRows(), testColumns())
	tbl.Restore(SortState{Active: 2})

	view, err := tbl.Render()
	require.NoError(t, err)
	want := []HeaderCell{
		{Index: 0, Heading: "Nr.", Direction: Ascending},
		{Index: 1, Heading: "Name", Direction: Ascending, Sortable: true},
		{Index: 2, Heading: "Points", Direction: Descending, Active: true, Sortable: true},
	}
	if diff := cmp.Diff(want, view.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "table-header sort-descending active action", view.Header[2].Class())
	assert.Equal(t, "table-header sort-ascending", view.Header[0].Class())
}

func TestRender_StyleAndRowIndex(t *testing.T) {
	tbl := New(testRows(), testColumns())
	tbl.Restore(SortState{Active: 2})

	view, err := tbl.Render()
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob", "Carol", "Dave", "Alice"}, column(view, 1))
	assert.Equal(t, []string{"1.", "2.", "3.", "4."}, column(view, 0))
	assert.Equal(t, "font-weight: bold", view.Body[0][2].Style)
	assert.Equal(t, "", view.Body[1][2].Style)
	assert.Equal(t, "", view.Body[0][1].Style)
}

func TestRender_DoesNotReorderInput(t *testing.T) {
	rows := testRows()
	tbl := New(rows, testColumns())
	_, err := tbl.OnHeaderClick(1)
	require.NoError(t, err)
	_, err = tbl.OnHeaderClick(1)
	require.NoError(t, err)
	assert.Equal(t, testRows(), rows)
}

func TestOnHeaderClick_Toggle(t *testing.T) {
	tbl := New(testRows(), testColumns())

	view, err := tbl.OnHeaderClick(1)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.ActiveIndex())
	assert.Equal(t, Ascending, tbl.Columns()[1].Direction)
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dave"}, column(view, 1))

	view, err = tbl.OnHeaderClick(1)
	require.NoError(t, err)
	assert.Equal(t, Descending, tbl.Columns()[1].Direction)
	assert.Equal(t, []string{"Dave", "Carol", "Bob", "Alice"}, column(view, 1))

	view, err = tbl.OnHeaderClick(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dave"}, column(view, 1))
}

func TestOnHeaderClick_KeepsStoredDirection(t *testing.T) {
	tbl := New(testRows(), testColumns())

	_, err := tbl.OnHeaderClick(1)
	require.NoError(t, err)
	_, err = tbl.OnHeaderClick(1)
	require.NoError(t, err)
	require.Equal(t, Descending, tbl.Columns()[1].Direction)

	view, err := tbl.OnHeaderClick(2)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.ActiveIndex())
	assert.Equal(t, Descending, tbl.Columns()[2].Direction)
	assert.Equal(t, []string{"Bob", "Carol", "Dave", "Alice"}, column(view, 1))

	view, err = tbl.OnHeaderClick(1)
	require.NoError(t, err)
	assert.Equal(t, Descending, tbl.Columns()[1].Direction)
	assert.Equal(t, []string{"Dave", "Carol", "Bob", "Alice"}, column(view, 1))
}

func TestOnHeaderClick_IgnoresUnsortable(t *testing.T) {
	tbl := New(testRows(), testColumns())
	tbl.Restore(SortState{Active: 2})

	_, err := tbl.OnHeaderClick(0)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.ActiveIndex())

	_, err = tbl.OnHeaderClick(7)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.ActiveIndex())
}

func TestSortRows_TiesKeepInputOrder(t *testing.T) {
	tbl := New(testRows(), testColumns())
	tbl.Restore(SortState{Active: 2})

	sorted, err := tbl.SortRows(tbl.Rows())
	require.NoError(t, err)
	assert.Equal(t, "Carol", sorted[1].name)
	assert.Equal(t, "Dave", sorted[2].name)
}

func TestSortRows_StaleIndex(t *testing.T) {
	tbl := New(testRows(), testColumns())
	tbl.Restore(SortState{Active: 2})
	tbl.Populate(testRows(), testColumns()[:2])

	view, err := tbl.Render()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dave"}, column(view, 1))

	tbl.Restore(SortState{Active: NoSort})
	view, err = tbl.Render()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dave"}, column(view, 1))
}

func TestRender_IncomparableKeys(t *testing.T) {
	cols := []*Column[driver]{
		NewColumn("Mixed", func(d driver, _ int) Renderable { return Text(d.name) },
			WithSortKey(func(d driver) any {
				if d.team == "Red" {
					return d.name
				}
				return d.points
			})),
	}
	tbl := New(testRows(), cols)

	view, err := tbl.Render()
	assert.Nil(t, view)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncomparable))
}

func TestRender_Empty(t *testing.T) {
	tbl := New([]driver{}, testColumns())
	view, err := tbl.Render()
	require.NoError(t, err)
	assert.Len(t, view.Header, 3)
	assert.Empty(t, view.Body)
}

func TestRenderable(t *testing.T) {
	r := Element("div", "", "",
		Element("span", "d-inline-block pe-1", "min-width: 1em;", Text("3.")),
		Element("span", "d-inline-block pos-change positive", "", Text("2")))
	assert.True(t, r.IsMarkup())
	assert.Equal(t, "3. 2", r.String())
	assert.Equal(t, "span", r.Node().Children[0].Node().Tag)

	plain := Text("Alice")
	assert.False(t, plain.IsMarkup())
	assert.Nil(t, plain.Node())
	assert.Equal(t, "Alice", plain.String())
}
