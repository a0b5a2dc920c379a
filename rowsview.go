package simpletable

var _ View = new(RowsView)

// RowsView is a View of rows whose cell values
// are resolved with column descriptors.
//
// Example:
//
//	view := &simpletable.RowsView{
//	    Tit: "Pods",
//	    Cols: simpletable.Columns{
//	        simpletable.Datum("Name", "name"),
//	        simpletable.Getter("Ready", func(r simpletable.Row) any { return r["ready"] == true }),
//	    },
//	    Rows: rows,
//	}
//	fmt.Println(view.Cell(0, 0))
type RowsView struct {
	// Tit is the title of this view, returned by the Title() method.
	Tit  string
	Cols Columns
	Rows []Row
}

// NewRowsView returns a RowsView with Datum columns
// for the passed keys, each key used as column label.
func NewRowsView(title string, rows []Row, keys ...string) *RowsView {
	return &RowsView{Tit: title, Cols: DatumColumns(keys...), Rows: rows}
}

func (view *RowsView) Title() string     { return view.Tit }
func (view *RowsView) Columns() []string { return view.Cols.Labels() }
func (view *RowsView) NumRows() int      { return len(view.Rows) }

// Cell resolves the value of the column col for the row.
// Out of bounds indices return nil.
func (view *RowsView) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= len(view.Rows) || col >= len(view.Cols) {
		return nil
	}
	return Resolve(view.Rows[row], view.Cols[col])
}
