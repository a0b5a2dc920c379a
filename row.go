package simpletable

import (
	"errors"
	"fmt"
	"reflect"
)

// Row is one opaque data record displayed as a table line.
// The table never modifies a Row.
type Row map[string]any

// Field returns the value stored under key
// or nil if the row has no such key.
// Keys are looked up directly, dots are not
// interpreted as nested paths.
func (r Row) Field(key string) any {
	if r == nil {
		return nil
	}
	return r[key]
}

// StructRows converts a slice or array of structs
// (or pointers to structs) into rows and Datum columns.
//
// The row keys and column labels are the column titles
// returned by naming for every exported struct field
// including the inlined fields of anonymously embedded structs.
// Fields titled naming.Ignore are skipped.
// A nil naming uses the struct field names.
//
// Nil struct pointers in items result in empty rows.
func StructRows(items any, naming *StructFieldNaming) (rows []Row, cols []Column, err error) {
	v := reflect.ValueOf(items)
	if !v.IsValid() {
		return nil, nil, errors.New("expected slice of structs, got <nil>")
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, nil, fmt.Errorf("expected slice of structs, got %T", items)
	}
	structType := v.Type().Elem()
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("expected slice of structs, got %T", items)
	}

	fields := StructFieldTypes(structType)
	titles := make([]string, len(fields))
	for i, field := range fields {
		titles[i] = naming.StructFieldColumn(field)
		if naming.IsIgnored(titles[i]) {
			continue
		}
		cols = append(cols, Datum(titles[i], titles[i]))
	}

	rows = make([]Row, v.Len())
	for i := range rows {
		row := make(Row, len(cols))
		elem := v.Index(i)
		if elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				rows[i] = row
				continue
			}
			elem = elem.Elem()
		}
		for f, val := range StructFieldValues(elem) {
			if naming.IsIgnored(titles[f]) {
				continue
			}
			row[titles[f]] = val.Interface()
		}
		rows[i] = row
	}
	return rows, cols, nil
}
