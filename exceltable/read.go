// Package exceltable reads spreadsheet sheets into table rows
// and writes table views as spreadsheets.
package exceltable

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"

	simpletable "github.com/domonda/go-simpletable"
)

// Read returns a view for every non-empty sheet of the spreadsheet.
// The first non-empty row of every sheet holds the column titles.
// If rawCellStrings is true then cell values are not formatted
// with the number formats of the cells.
func Read(reader io.Reader, rawCellStrings bool) (sheetViews []*simpletable.StringsView, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	for _, sheet := range f.GetSheetList() {
		view, err := readSheet(f, sheet, rawCellStrings)
		if err != nil {
			if errors.Is(err, ErrEmptySheet) {
				continue
			}
			return nil, err
		}
		sheetViews = append(sheetViews, view)
	}
	return sheetViews, nil
}

// ReadSheet returns a view of the sheet with the passed name,
// or of the first sheet if name is empty.
func ReadSheet(reader io.Reader, name string, rawCellStrings bool) (sheetView *simpletable.StringsView, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if name == "" {
		name = f.GetSheetName(0)
		if name == "" {
			return nil, ErrSheetNotExist{SheetName: "<FirstSheet>"}
		}
	}
	return readSheet(f, name, rawCellStrings)
}

// ReadRows returns the rows of a sheet keyed by its column titles,
// see ReadSheet.
func ReadRows(reader io.Reader, sheet string) ([]simpletable.Row, simpletable.Columns, error) {
	view, err := ReadSheet(reader, sheet, false)
	if err != nil {
		return nil, nil, err
	}
	rows, cols := simpletable.ViewRows(view)
	return rows, cols, nil
}

func readSheet(f *excelize.File, sheet string, rawCellStrings bool) (*simpletable.StringsView, error) {
	if index, err := f.GetSheetIndex(sheet); err != nil || index < 0 {
		return nil, ErrSheetNotExist{SheetName: sheet}
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: rawCellStrings})
	if err != nil {
		return nil, err
	}
	rows = simpletable.RemoveEmptyStringRows(rows)
	numCols := simpletable.RemoveEmptyStringColumns(rows)
	if len(rows) == 0 || numCols == 0 {
		return nil, ErrEmptySheet
	}
	columns := rows[0]
	if len(columns) < numCols {
		columns = append(columns, make([]string, numCols-len(columns))...)
	}
	return simpletable.NewStringsView(sheet, rows[1:], columns...), nil
}
