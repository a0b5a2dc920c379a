package simpletable

import "fmt"

// AccessorKind tells which accessor of a Column
// produces the cell value.
type AccessorKind int

const (
	// NoAccessor columns only have a label
	// and always display an empty cell.
	NoAccessor AccessorKind = iota
	// DatumAccessor looks up a row field by key.
	DatumAccessor
	// GetterAccessor computes the value with a function.
	GetterAccessor
	// RenderAccessor computes the value with a function
	// whose result is meant for display only.
	RenderAccessor
)

// String implements the fmt.Stringer interface for AccessorKind.
func (k AccessorKind) String() string {
	switch k {
	case NoAccessor:
		return "None"
	case DatumAccessor:
		return "Datum"
	case GetterAccessor:
		return "Getter"
	case RenderAccessor:
		return "Render"
	default:
		return fmt.Sprintf("AccessorKind(%d)", k)
	}
}

// Column describes how to label a table column
// and how to extract its cell value from a Row.
//
// Exactly one accessor is active, selected by
// the constructor used to create the Column:
// Datum, Getter, RenderFunc or Label.
type Column struct {
	label string
	kind  AccessorKind
	datum string
	fn    func(Row) any
}

// Datum returns a Column that displays the row field with the passed key.
func Datum(label, key string) Column {
	return Column{label: label, kind: DatumAccessor, datum: key}
}

// Getter returns a Column that displays the result of getter.
func Getter(label string, getter func(Row) any) Column {
	return Column{label: label, kind: GetterAccessor, fn: getter}
}

// RenderFunc returns a Column that displays the result of render.
// For sorting and resolving it behaves like a Getter column.
func RenderFunc(label string, render func(Row) any) Column {
	return Column{label: label, kind: RenderAccessor, fn: render}
}

// Label returns a Column without accessor
// that always displays an empty cell.
func Label(label string) Column {
	return Column{label: label}
}

func (c Column) Label() string      { return c.label }
func (c Column) Kind() AccessorKind { return c.kind }

// DatumKey returns the row key of a Datum column
// or an empty string for other kinds.
func (c Column) DatumKey() string {
	if c.kind != DatumAccessor {
		return ""
	}
	return c.datum
}

// String implements the fmt.Stringer interface for Column.
func (c Column) String() string {
	if c.kind == DatumAccessor {
		return fmt.Sprintf("Column{%q, Datum: %q}", c.label, c.datum)
	}
	return fmt.Sprintf("Column{%q, %s}", c.label, c.kind)
}

// Columns is an ordered sequence of Column descriptors.
type Columns []Column

// Labels returns the labels of all columns.
func (cols Columns) Labels() []string {
	labels := make([]string, len(cols))
	for i, c := range cols {
		labels[i] = c.label
	}
	return labels
}

// Index returns the index of the first column with the passed label or -1.
func (cols Columns) Index(label string) int {
	for i, c := range cols {
		if c.label == label {
			return i
		}
	}
	return -1
}

// DatumColumns returns a Datum column for every key
// using the key also as label.
func DatumColumns(keys ...string) Columns {
	cols := make(Columns, len(keys))
	for i, key := range keys {
		cols[i] = Datum(key, key)
	}
	return cols
}
