package simpletable

import (
	"fmt"
	"slices"
)

// Direction of sorting.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String implements the fmt.Stringer interface for Direction.
func (d Direction) String() string {
	switch d {
	case Ascending:
		return "Ascending"
	case Descending:
		return "Descending"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// NoSortColumn is the SortState.Column of an unsorted table.
const NoSortColumn = -1

// SortState is the sort column and direction of a table.
type SortState struct {
	// Column is the index of the sorted column
	// or NoSortColumn if the table is unsorted.
	Column    int
	Direction Direction
}

// Unsorted returns the SortState of an unsorted table.
func Unsorted() SortState {
	return SortState{Column: NoSortColumn}
}

// IsSorted returns true if this state selects a column.
func (s SortState) IsSorted() bool {
	return s.Column >= 0
}

// String implements the fmt.Stringer interface for SortState.
func (s SortState) String() string {
	if !s.IsSorted() {
		return "Unsorted"
	}
	return fmt.Sprintf("Column %d %s", s.Column, s.Direction)
}

// SortStateFromDefault converts a default sorting column
// as passed by table configurations into a SortState.
//
// defaultSortingColumn is a 1-based column number,
// zero means no default sorting and a negative number
// sorts descending by the column -defaultSortingColumn.
// Numbers outside of [1, numColumns] result in an unsorted state.
func SortStateFromDefault(defaultSortingColumn, numColumns int) SortState {
	dir := Ascending
	col := defaultSortingColumn
	if col < 0 {
		dir = Descending
		col = -col
	}
	if col < 1 || col > numColumns {
		return Unsorted()
	}
	return SortState{Column: col - 1, Direction: dir}
}

// ClickHeader returns the SortState after a click
// on the header of the column with index col.
// Clicking the active column toggles the direction,
// clicking another column sorts it ascending.
func (s SortState) ClickHeader(col int) SortState {
	if col < 0 {
		return s
	}
	if s.IsSorted() && s.Column == col {
		return SortState{Column: col, Direction: s.Direction.Toggle()}
	}
	return SortState{Column: col, Direction: Ascending}
}

// Sort returns rows ordered by the resolved values
// of the column selected by state.
//
// Rows with equal values keep their relative order in ascending direction.
// The descending order is the exact reverse of the ascending order,
// so rows with equal values appear in reverse input order when descending.
// If state is unsorted or selects a column outside of columns
// then rows is returned unchanged.
// A nil cmp uses DefaultComparer.
// The passed rows slice is never modified.
func Sort(rows []Row, state SortState, columns Columns, cmp Comparer) []Row {
	if !state.IsSorted() || state.Column >= len(columns) || len(rows) == 0 {
		return rows
	}
	if cmp == nil {
		cmp = DefaultComparer
	}
	column := columns[state.Column]

	type keyedRow struct {
		row Row
		key any
	}
	keyed := make([]keyedRow, len(rows))
	for i, row := range rows {
		keyed[i] = keyedRow{row: row, key: Resolve(row, column)}
	}
	slices.SortStableFunc(keyed, func(a, b keyedRow) int {
		return cmp.Compare(a.key, b.key)
	})

	sorted := make([]Row, len(keyed))
	for i, k := range keyed {
		sorted[i] = k.row
	}
	if state.Direction == Descending {
		slices.Reverse(sorted)
	}
	return sorted
}
