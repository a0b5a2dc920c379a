package simpletable

import "fmt"

// RenderStatus tells what a renderer should display instead of, or as, rows.
type RenderStatus int

const (
	// StatusRows means the page has at least one row.
	StatusRows RenderStatus = iota
	// StatusEmpty means no row passed the filter, Render.Message holds the empty message.
	StatusEmpty
	// StatusError means the caller reported an error, Render.Message holds it.
	StatusError
	// StatusLoading means the data has not been loaded yet.
	StatusLoading
)

// String implements the fmt.Stringer interface for RenderStatus.
func (s RenderStatus) String() string {
	switch s {
	case StatusRows:
		return "Rows"
	case StatusEmpty:
		return "Empty"
	case StatusError:
		return "Error"
	case StatusLoading:
		return "Loading"
	default:
		return fmt.Sprintf("RenderStatus(%d)", s)
	}
}

// Header describes one column header of a rendered table.
type Header struct {
	Label  string
	Column int
	// Sorted is true for the column the rows are sorted by.
	Sorted    bool
	Direction Direction
}

var _ View = new(Render)

// Render is the result of filtering, sorting and paginating a Table.
// It implements View with the resolved cell values of the page.
type Render struct {
	Tit     string
	Status  RenderStatus
	Message string
	Headers []Header
	// Rows of the current page
	Rows []Row
	// Cells holds the resolved values of Rows for every column
	Cells       [][]any
	Page        Page
	Pagination  PaginationState
	Sort        SortState
	RowsPerPage []int
}

func (r *Render) Title() string { return r.Tit }

func (r *Render) Columns() []string {
	labels := make([]string, len(r.Headers))
	for i, h := range r.Headers {
		labels[i] = h.Label
	}
	return labels
}

func (r *Render) NumRows() int { return len(r.Cells) }

func (r *Render) Cell(row, col int) any {
	if row < 0 || row >= len(r.Cells) || col < 0 || col >= len(r.Cells[row]) {
		return nil
	}
	return r.Cells[row][col]
}

// HasPrevious returns true if there is a page before the current one.
func (r *Render) HasPrevious() bool { return r.Page.PageIndex > 0 }

// HasNext returns true if there is a page after the current one.
func (r *Render) HasNext() bool { return r.Page.PageIndex < r.Page.PageCount-1 }

// Render filters, sorts and paginates the configured data
// and resolves the cell values of the current page.
func (t *Table) Render() *Render {
	cols := t.config.Columns
	r := &Render{
		Tit:         t.config.Title,
		Headers:     make([]Header, len(cols)),
		Sort:        t.sort,
		RowsPerPage: t.RowsPerPage(),
	}
	for i, col := range cols {
		r.Headers[i] = Header{
			Label:     col.Label(),
			Column:    i,
			Sorted:    t.sort.IsSorted() && t.sort.Column == i,
			Direction: t.sort.Direction,
		}
	}

	switch {
	case t.config.ErrorMessage != "":
		r.Status = StatusError
		r.Message = t.config.ErrorMessage
		r.Pagination = t.page
		r.Page = Page{PageIndex: t.page.PageIndex, PageSize: t.page.PageSize, PageCount: 1}
		return r
	case !t.Loaded():
		r.Status = StatusLoading
		r.Pagination = t.page
		r.Page = Page{PageIndex: t.page.PageIndex, PageSize: t.page.PageSize, PageCount: 1}
		return r
	}

	sorted := Sort(t.filtered, t.sort, cols, t.comparer)
	r.Page = Paginate(sorted, t.page)
	r.Pagination = PaginationState{PageIndex: r.Page.PageIndex, PageSize: r.Page.PageSize}
	r.Rows = r.Page.Rows
	r.Cells = make([][]any, len(r.Rows))
	for i, row := range r.Rows {
		r.Cells[i] = ResolveRow(row, cols)
	}
	if len(sorted) == 0 {
		r.Status = StatusEmpty
		r.Message = t.config.EffectiveEmptyMessage()
	}
	return r
}

// RowNumber implements RowNumberer
// with the number of the row within all visible rows.
func (r *Render) RowNumber(row int) int { return r.Page.Offset + row + 1 }
