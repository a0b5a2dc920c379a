package simpletable

import (
	"fmt"
	"reflect"
)

// Resolve returns the display value of column for row.
//
// Getter and Render columns return the result of their function verbatim,
// which may be nil or any non-primitive value.
// Datum columns return the row field or nil for a missing key.
// Columns without accessor resolve to nil.
// Resolve never panics on a missing accessor function.
func Resolve(row Row, column Column) any {
	switch column.kind {
	case GetterAccessor, RenderAccessor:
		if column.fn == nil {
			return nil
		}
		return column.fn(row)
	case DatumAccessor:
		return row.Field(column.datum)
	default:
		return nil
	}
}

// ResolveRow resolves the values of all columns for row.
func ResolveRow(row Row, columns Columns) []any {
	values := make([]any, len(columns))
	for i, col := range columns {
		values[i] = Resolve(row, col)
	}
	return values
}

// DisplayString returns the text for a resolved value.
// Nil values and nil pointers result in an empty string,
// other pointers are dereferenced.
func DisplayString(value any) string {
	switch x := value.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		if ValueIsNil(reflect.ValueOf(x)) {
			return ""
		}
		return x.String()
	}
	v := reflect.ValueOf(value)
	if ValueIsNil(v) {
		return ""
	}
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
		if ValueIsNil(v) {
			return ""
		}
	}
	return fmt.Sprint(v.Interface())
}
