package simpletable

import (
	"context"
	"strconv"
	"unicode/utf8"
)

// RowNumberer is implemented by views showing a range of
// a larger sequence of rows, like a page.
type RowNumberer interface {
	// RowNumber returns the 1-based number of row
	// within the complete sequence of rows.
	RowNumber(row int) int
}

// FormatViewAsStrings converts a View into a 2D string slice.
//
// Every cell is formatted with formatter falling back
// to DisplayString for unsupported cells, a nil formatter
// formats all cells with DisplayString.
//
// When OptionAddHeaderRow is set, the column titles
// are added as the first row.
// When OptionNumberRows is set, a first column with
// the row numbers is added, numbered by the view
// if it implements RowNumberer.
//
// Example:
//
//	rows, err := FormatViewAsStrings(ctx, table.Render(), nil, OptionAddHeaderRow)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, row := range rows {
//	    fmt.Println(strings.Join(row, " | "))
//	}
func FormatViewAsStrings(ctx context.Context, view View, formatter CellFormatter, options ...Option) (rows [][]string, err error) {
	formatter = TryFormattersOrDisplayString(formatter)
	numberRows := HasOption(options, OptionNumberRows)
	numRows := view.NumRows()
	numCols := len(view.Columns())
	first := 0
	if numberRows {
		first = 1
	}

	if HasOption(options, OptionAddHeaderRow) {
		header := make([]string, 0, first+numCols)
		if numberRows {
			header = append(header, "#")
		}
		header = append(header, view.Columns()...)
		rows = append(rows, header)
	}

	numberer, _ := view.(RowNumberer)
	for row := 0; row < numRows; row++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		rowStrings := make([]string, first+numCols)
		if numberRows {
			num := row + 1
			if numberer != nil {
				num = numberer.RowNumber(row)
			}
			rowStrings[0] = strconv.Itoa(num)
		}
		for col := 0; col < numCols; col++ {
			rowStrings[first+col], _, err = formatter.FormatCell(ctx, view, row, col)
			if err != nil {
				return nil, err
			}
		}
		rows = append(rows, rowStrings)
	}

	return rows, nil
}

// StringColumnWidths returns the column widths of the passed
// table as count of UTF-8 runes.
// If numCols is negative, then the maximum row length is used.
func StringColumnWidths(rows [][]string, numCols int) []int {
	if numCols < 0 {
		for _, row := range rows {
			if rowCols := len(row); rowCols > numCols {
				numCols = rowCols
			}
		}
		if numCols <= 0 {
			return nil
		}
	}
	colWidths := make([]int, numCols)
	for row := range rows {
		for col := 0; col < numCols && col < len(rows[row]); col++ {
			numRunes := utf8.RuneCountInString(rows[row][col])
			if numRunes > colWidths[col] {
				colWidths[col] = numRunes
			}
		}
	}
	return colWidths
}
