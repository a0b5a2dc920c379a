package sqltable

import (
	"context"
	"database/sql"
	"slices"

	simpletable "github.com/domonda/go-simpletable"
)

// ScanRowsAsView reads all rows into a view with the
// result columns as column titles and closes rows.
func ScanRowsAsView(ctx context.Context, rows Rows) (*simpletable.AnyValuesView, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	view := &simpletable.AnyValuesView{Cols: columns}
	for rows.Next() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		scannedValues := make([]any, len(columns))
		valueScanners := make([]any, len(columns))
		for i := range valueScanners {
			valueScanners[i] = valueScanner{&scannedValues[i]}
		}
		err = rows.Scan(valueScanners...)
		if err != nil {
			return view, err
		}
		view.Rows = append(view.Rows, scannedValues)
	}
	return view, rows.Err()
}

// ReadRows reads all rows into table rows keyed by column name
// and closes rows. Byte slice values are converted to strings.
func ReadRows(ctx context.Context, rows Rows) ([]simpletable.Row, simpletable.Columns, error) {
	view, err := ScanRowsAsView(ctx, rows)
	if err != nil {
		return nil, nil, err
	}
	for _, values := range view.Rows {
		for i, value := range values {
			if b, ok := value.([]byte); ok {
				values[i] = string(b)
			}
		}
	}
	tableRows, cols := simpletable.ViewRows(view)
	return tableRows, cols, nil
}

// Query executes query and reads the result, see ReadRows.
func Query(ctx context.Context, db Querier, query string, args ...any) ([]simpletable.Row, simpletable.Columns, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	return ReadRows(ctx, rows)
}

var (
	_ sql.Scanner = new(valueScanner)
)

type valueScanner struct {
	dest *any
}

func (s valueScanner) Scan(src any) error {
	if b, ok := src.([]byte); ok {
		src = slices.Clone(b)
	}
	*s.dest = src
	return nil
}
