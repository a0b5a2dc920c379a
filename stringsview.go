package simpletable

import (
	"strings"
)

// StringsView is a View implementation that uses strings as cell values.
// Row sources like CSV files and spreadsheets produce StringsViews
// that are converted to rows with ViewRows.
//
// The Cols field defines the column names and determines the number of columns.
// Each element in Rows represents a row of data, where each row is a slice of strings.
//
// StringsView supports sparse data: a row within Rows can have fewer slice elements
// than Cols, in which case empty strings ("") are returned as values for missing cells.
//
// Example usage:
//
//	view := simpletable.NewStringsView(
//	    "Products",
//	    [][]string{
//	        {"ID", "Name", "Price"},
//	        {"1", "Widget", "9.99"},
//	        {"2", "Gadget", "19.99"},
//	    },
//	)
//	fmt.Println(view.Cell(0, 1)) // Output: Widget
type StringsView struct {
	// Tit is the title of this view, returned by the Title() method.
	Tit string

	// Cols contains the column names defining both the column headers
	// and the number of columns in this view.
	Cols []string

	// Rows contains the data rows, where each row is a slice of strings.
	// Rows can have fewer elements than len(Cols) for sparse data support.
	Rows [][]string
}

var _ View = new(StringsView)

// NewStringsView creates a new StringsView.
//
// If no cols are provided and rows is not empty, the first row
// is used as column names and removed from the data rows.
// All column names have leading and trailing whitespace trimmed.
func NewStringsView(title string, rows [][]string, cols ...string) *StringsView {
	if len(cols) == 0 && len(rows) > 0 {
		cols = rows[0]
		rows = rows[1:]
	}
	trimmed := make([]string, len(cols))
	for i, col := range cols {
		trimmed[i] = strings.TrimSpace(col)
	}
	return &StringsView{Tit: title, Cols: trimmed, Rows: rows}
}

func (view *StringsView) Title() string     { return view.Tit }
func (view *StringsView) Columns() []string { return view.Cols }
func (view *StringsView) NumRows() int      { return len(view.Rows) }

// Cell returns the value at the specified row and column indices:
//   - The string value at [row][col] if the cell exists
//   - An empty string "" if the row exists but has fewer columns (sparse data)
//   - nil if row or col indices are out of bounds
func (view *StringsView) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= len(view.Rows) || col >= len(view.Cols) {
		return nil
	}
	if col >= len(view.Rows[row]) {
		return ""
	}
	return view.Rows[row][col]
}

// RemoveEmptyStringRows removes all rows
// that only contain empty or whitespace strings.
func RemoveEmptyStringRows(rows [][]string) [][]string {
	result := rows[:0]
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				result = append(result, row)
				break
			}
		}
	}
	return result
}

// RemoveEmptyStringColumns removes all columns
// that only contain empty or whitespace strings in every row
// and returns the resulting maximum number of columns.
// The rows are modified in place.
func RemoveEmptyStringColumns(rows [][]string) (numCols int) {
	for _, row := range rows {
		numCols = max(numCols, len(row))
	}
	for col := numCols - 1; col >= 0; col-- {
		empty := true
		for _, row := range rows {
			if col < len(row) && strings.TrimSpace(row[col]) != "" {
				empty = false
				break
			}
		}
		if !empty {
			continue
		}
		for i, row := range rows {
			if col < len(row) {
				rows[i] = append(row[:col], row[col+1:]...)
			}
		}
		numCols--
	}
	return numCols
}
