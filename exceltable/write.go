package exceltable

import (
	"context"
	"errors"
	"io"
	"reflect"
	"time"

	"github.com/xuri/excelize/v2"

	simpletable "github.com/domonda/go-simpletable"
)

// DefaultSheetName is used for views without title.
const DefaultSheetName = "Sheet1"

// Write writes view as single sheet spreadsheet to dest
// with the column titles as first row.
//
// Numbers, booleans and times are written as typed cells,
// all other values as their simpletable.DisplayString.
func Write(ctx context.Context, dest io.Writer, view simpletable.View) (err error) {
	f := excelize.NewFile()
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	sheet := sheetName(view.Title())
	if sheet != DefaultSheetName {
		if err = f.SetSheetName(DefaultSheetName, sheet); err != nil {
			return err
		}
	}

	header := make([]any, 0, len(view.Columns()))
	for _, title := range view.Columns() {
		header = append(header, title)
	}
	if err = f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	values := make([]any, len(header))
	for row := 0; row < view.NumRows(); row++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		for col := range values {
			values[col] = cellValue(view.Cell(row, col))
		}
		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.Write(dest)
}

func cellValue(value any) any {
	v := reflect.ValueOf(value)
	if simpletable.ValueIsNil(v) {
		return nil
	}
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if _, isDuration := v.Interface().(time.Duration); isDuration {
			return simpletable.DisplayString(value)
		}
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Bool:
		return v.Bool()
	}
	if t, ok := v.Interface().(time.Time); ok {
		return t
	}
	return simpletable.DisplayString(value)
}

// sheetName returns title shortened to the 31 characters
// allowed for sheet names without the characters :\/?*[]
func sheetName(title string) string {
	name := make([]rune, 0, 31)
	for _, r := range title {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			continue
		}
		if name = append(name, r); len(name) == 31 {
			break
		}
	}
	if len(name) == 0 {
		return DefaultSheetName
	}
	return string(name)
}
