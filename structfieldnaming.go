package simpletable

import (
	"fmt"
	"reflect"
	"strings"
)

// StructFieldNaming defines how struct fields
// are mapped to row keys and column labels by StructRows.
//
// nil is a valid value for *StructFieldNaming
// and is equal to the zero value
// which will use all exported struct fields
// with their field name as column title.
type StructFieldNaming struct {
	// Tag is the struct field tag to be used as column title.
	// If Tag is empty, then every struct field will be treated as untagged.
	Tag string
	// Ignore is the column title of fields that are skipped.
	Ignore string
	// Untagged will be called with the struct field name to
	// return a title in case the struct field has no tag named Tag.
	// If Untagged is nil, then the struct field name will be used.
	Untagged func(fieldName string) (column string)
}

// String implements the fmt.Stringer interface for StructFieldNaming.
func (n *StructFieldNaming) String() string {
	if n == nil {
		return `StructFieldNaming{Tag: "", Ignore: ""}`
	}
	return fmt.Sprintf("StructFieldNaming{Tag: %#v, Ignore: %#v}", n.Tag, n.Ignore)
}

// StructFieldColumn returns the column title for a struct field.
func (n *StructFieldNaming) StructFieldColumn(structField reflect.StructField) string {
	if n == nil {
		return structField.Name
	}
	if n.Tag != "" {
		if tag, ok := structField.Tag.Lookup(n.Tag); ok {
			if i := strings.IndexByte(tag, ','); i != -1 {
				tag = tag[:i]
			}
			if tag != "" {
				return tag
			}
		}
	}
	if n.Untagged == nil {
		return structField.Name
	}
	return n.Untagged(structField.Name)
}

// IsIgnored returns true if column is the Ignore title.
func (n *StructFieldNaming) IsIgnored(column string) bool {
	return n != nil && n.Ignore != "" && column == n.Ignore
}

// Columns returns the column titles of the exported fields
// of the struct or struct pointer strct without ignored columns.
func (n *StructFieldNaming) Columns(strct any) []string {
	fields := StructFieldTypes(reflect.TypeOf(strct))
	columns := make([]string, 0, len(fields))
	for _, field := range fields {
		column := n.StructFieldColumn(field)
		if !n.IsIgnored(column) {
			columns = append(columns, column)
		}
	}
	return columns
}
