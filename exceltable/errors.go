package exceltable

import (
	"errors"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrEmptySheet is returned for a sheet without any non-empty cell.
	// Empty sheets are skipped when reading all sheets of a file.
	ErrEmptySheet = errors.New("empty sheet")
)

// ErrSheetNotExist is re-exported from excelize.
//
//	var sheetErr exceltable.ErrSheetNotExist
//	if errors.As(err, &sheetErr) {
//	    fmt.Printf("Sheet not found: %s\n", sheetErr.SheetName)
//	}
type ErrSheetNotExist = excelize.ErrSheetNotExist
