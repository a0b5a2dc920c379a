package simpletable

// View is a read-only two dimensional table of cell values
// with column titles, consumed by renderers and writers.
type View interface {
	Title() string
	Columns() []string
	NumRows() int
	// Cell returns the value at row and col
	// or nil if the indices are out of bounds.
	Cell(row, col int) any
}
