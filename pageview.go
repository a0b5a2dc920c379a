package simpletable

var _ View = new(PageView)

// PageView is a View of a range of rows of a Source view,
// optionally with mapped columns.
type PageView struct {
	Source View
	// Offset index of the first row from Source, must be positive.
	RowOffset int
	// Limits the number of rows, only used if > 0.
	RowLimit int
	// If not nil then the view has as many
	// columns as ColumnMapping has elements and
	// every element is a column index into the Source view.
	// If nil then the view has as many columns as the Source view.
	ColumnMapping []int
}

// NewPageView returns a PageView showing the page
// selected by state of the rows of source.
// The page index is clamped like Paginate does.
func NewPageView(source View, state PaginationState) *PageView {
	size := state.PageSize
	if size <= 0 {
		size = max(source.NumRows(), 1)
	}
	state.PageSize = size
	state = state.Clamp(source.NumRows())
	return &PageView{Source: source, RowOffset: state.Offset(), RowLimit: size}
}

func (view *PageView) Title() string {
	return view.Source.Title()
}

func (view *PageView) Columns() []string {
	sourceCols := view.Source.Columns()
	if view.ColumnMapping == nil {
		return sourceCols
	}
	mappedCols := make([]string, len(view.ColumnMapping))
	for i, iSource := range view.ColumnMapping {
		if iSource >= 0 && iSource < len(sourceCols) {
			mappedCols[i] = sourceCols[iSource]
		}
	}
	return mappedCols
}

func (view *PageView) NumCols() int {
	if view.ColumnMapping != nil {
		return len(view.ColumnMapping)
	}
	return len(view.Source.Columns())
}

func (view *PageView) NumRows() int {
	n := view.Source.NumRows() - max(view.RowOffset, 0)
	if n < 0 {
		return 0
	}
	if view.RowLimit > 0 && n > view.RowLimit {
		return view.RowLimit
	}
	return n
}

func (view *PageView) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= view.NumRows() || col >= view.NumCols() {
		return nil
	}
	row += max(view.RowOffset, 0)
	if view.ColumnMapping != nil {
		col = view.ColumnMapping[col]
	}
	return view.Source.Cell(row, col)
}

// RowNumber implements RowNumberer
// with the number of the row within the Source view.
func (view *PageView) RowNumber(row int) int { return max(view.RowOffset, 0) + row + 1 }
