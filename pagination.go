package simpletable

import (
	"fmt"
	"slices"
)

// DefaultRowsPerPage is used when a table is configured
// without any valid page size.
var DefaultRowsPerPage = []int{15, 25, 50}

// PaginationState is the current page index and page size of a table.
type PaginationState struct {
	// PageIndex is 0-based.
	PageIndex int
	// PageSize is a member of the table's rows per page options.
	PageSize int
}

// DefaultPagination returns the first page
// with the first of the normalized rowsPerPage as size.
func DefaultPagination(rowsPerPage []int) PaginationState {
	return PaginationState{PageIndex: 0, PageSize: NormalizeRowsPerPage(rowsPerPage)[0]}
}

// String implements the fmt.Stringer interface for PaginationState.
func (s PaginationState) String() string {
	return fmt.Sprintf("page %d size %d", s.PageIndex, s.PageSize)
}

// Offset returns the index of the first row of the page.
func (s PaginationState) Offset() int {
	return max(s.PageIndex, 0) * max(s.PageSize, 0)
}

// Clamp returns the state with PageIndex clamped
// into [0, PageCount(total, PageSize)-1].
func (s PaginationState) Clamp(total int) PaginationState {
	s.PageIndex = clampPageIndex(s.PageIndex, PageCount(total, s.PageSize))
	return s
}

// WithPageSize returns the state for a new page size.
//
// The size is corrected to the nearest member of rowsPerPage
// and the page index is recomputed so that the first visible row
// stays on the new page, then clamped for total rows.
func (s PaginationState) WithPageSize(size, total int, rowsPerPage []int) PaginationState {
	size = NearestPageSize(size, rowsPerPage)
	firstRow := s.Clamp(total).Offset()
	return PaginationState{PageIndex: firstRow / size, PageSize: size}.Clamp(total)
}

// NormalizeRowsPerPage returns the positive values of rowsPerPage
// in their original order without duplicates.
// If no positive value remains then DefaultRowsPerPage is returned.
func NormalizeRowsPerPage(rowsPerPage []int) []int {
	normalized := make([]int, 0, len(rowsPerPage))
	for _, size := range rowsPerPage {
		if size > 0 && !slices.Contains(normalized, size) {
			normalized = append(normalized, size)
		}
	}
	if len(normalized) == 0 {
		return slices.Clone(DefaultRowsPerPage)
	}
	return normalized
}

// NearestPageSize returns the member of the normalized rowsPerPage
// that is nearest to size. Equally near members resolve to the smaller one.
func NearestPageSize(size int, rowsPerPage []int) int {
	options := NormalizeRowsPerPage(rowsPerPage)
	nearest := options[0]
	for _, option := range options[1:] {
		dist, nearestDist := absInt(option-size), absInt(nearest-size)
		if dist < nearestDist || (dist == nearestDist && option < nearest) {
			nearest = option
		}
	}
	return nearest
}

// PageCount returns the number of pages needed
// for total rows with pageSize rows per page.
// There is always at least one page, even for zero rows.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Page is one slice of paginated rows.
type Page struct {
	// Rows of the page
	Rows []Row
	// PageIndex is the effective 0-based page index after clamping.
	PageIndex int
	// PageSize used for slicing
	PageSize int
	// PageCount is at least 1
	PageCount int
	// Offset of the first row of the page within all rows
	Offset int
	// Total number of rows of all pages
	Total int
}

// Paginate slices rows into the page selected by state.
// The page index is clamped into [0, PageCount-1].
// A non-positive page size puts all rows on a single page.
func Paginate(rows []Row, state PaginationState) Page {
	total := len(rows)
	size := state.PageSize
	if size <= 0 {
		size = max(total, 1)
	}
	count := PageCount(total, size)
	index := clampPageIndex(state.PageIndex, count)
	start := min(index*size, total)
	end := min(start+size, total)
	return Page{
		Rows:      rows[start:end:end],
		PageIndex: index,
		PageSize:  size,
		PageCount: count,
		Offset:    start,
		Total:     total,
	}
}

func clampPageIndex(index, pageCount int) int {
	return min(max(index, 0), max(pageCount-1, 0))
}

func absInt(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
