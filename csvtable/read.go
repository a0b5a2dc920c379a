package csvtable

import (
	simpletable "github.com/domonda/go-simpletable"
)

// ReadRows parses CSV data into table rows keyed by the
// titles of the first non-empty record.
//
// If format is nil then the format is detected with
// NewDefaultFormatDetectionConfig and returned.
// Empty records are skipped.
func ReadRows(data []byte, format *Format) (rows []simpletable.Row, cols simpletable.Columns, used *Format, err error) {
	var records [][]string
	if format == nil {
		records, format, err = ParseDetectFormat(data, nil)
	} else {
		records, err = ParseWithFormat(data, format)
	}
	if err != nil {
		return nil, nil, format, err
	}
	view := simpletable.NewStringsView("", simpletable.RemoveEmptyStringRows(records))
	rows, cols = simpletable.ViewRows(view)
	return rows, cols, format, nil
}
