package simpletable

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// CellFormatter formats the cell of a View as string.
type CellFormatter interface {
	// FormatCell formats the cell at row and col of view as string
	// or returns a wrapped errors.ErrUnsupported error if
	// it doesn't support formatting the value of the cell.
	// The raw result indicates if the returned string
	// is in the raw format of the output (for example HTML)
	// and can be used as is or if it has to be escaped.
	FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error)
}

// CellFormatterFunc implements CellFormatter for a function.
type CellFormatterFunc func(ctx context.Context, view View, row, col int) (str string, raw bool, err error)

func (f CellFormatterFunc) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return f(ctx, view, row, col)
}

// PrintfCellFormatter implements CellFormatter by calling
// fmt.Sprintf with this type's string value as format.
type PrintfCellFormatter string

func (format PrintfCellFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return fmt.Sprintf(string(format), view.Cell(row, col)), false, nil
}

// PrintfRawCellFormatter implements CellFormatter by calling
// fmt.Sprintf with this type's string value as format.
// The result will be indicated to be a raw value.
type PrintfRawCellFormatter string

func (format PrintfRawCellFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return fmt.Sprintf(string(format), view.Cell(row, col)), true, nil
}

// DisplayStringFormatter formats every cell with DisplayString.
// It never returns an error.
type DisplayStringFormatter struct{}

func (DisplayStringFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return DisplayString(view.Cell(row, col)), false, nil
}

// TryFormattersOrDisplayString returns a CellFormatter that tries
// the passed formatters in order and falls back to DisplayString
// if none of them supports a cell.
// Nil formatters are ignored.
func TryFormattersOrDisplayString(formatters ...CellFormatter) CellFormatter {
	return CellFormatterFunc(func(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
		for _, f := range formatters {
			if f == nil {
				continue
			}
			str, raw, err = f.FormatCell(ctx, view, row, col)
			if !errors.Is(err, errors.ErrUnsupported) {
				return str, raw, err
			}
		}
		return DisplayStringFormatter{}.FormatCell(ctx, view, row, col)
	})
}

// ColumnFormatters maps column indices to CellFormatters.
// Columns without formatter are unsupported.
type ColumnFormatters map[int]CellFormatter

func (f ColumnFormatters) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	if cf, ok := f[col]; ok && cf != nil {
		return cf.FormatCell(ctx, view, row, col)
	}
	return "", false, errors.ErrUnsupported
}

// Ensure that TypeFormatters implements CellFormatter
var _ CellFormatter = new(TypeFormatters)

// TypeFormatters selects a CellFormatter by the type of the cell value.
// Exact types are tried first, then interface types,
// then the reflect.Kind of the value.
// A nil *TypeFormatters supports no cell.
type TypeFormatters struct {
	Types          map[reflect.Type]CellFormatter
	InterfaceTypes map[reflect.Type]CellFormatter
	Kinds          map[reflect.Kind]CellFormatter
}

func (f *TypeFormatters) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	if f == nil {
		return "", false, errors.ErrUnsupported
	}
	val := reflect.ValueOf(view.Cell(row, col))
	if !val.IsValid() {
		return "", false, errors.ErrUnsupported
	}
	if tf, ok := f.Types[val.Type()]; ok {
		str, raw, err = tf.FormatCell(ctx, view, row, col)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	for it, itf := range f.InterfaceTypes {
		if val.Type().Implements(it) {
			str, raw, err = itf.FormatCell(ctx, view, row, col)
			if !errors.Is(err, errors.ErrUnsupported) {
				return str, raw, err
			}
		}
	}
	if kf, ok := f.Kinds[val.Kind()]; ok {
		return kf.FormatCell(ctx, view, row, col)
	}
	return "", false, errors.ErrUnsupported
}

func (f *TypeFormatters) cloneOrNew() *TypeFormatters {
	if f == nil {
		return new(TypeFormatters)
	}
	c := new(TypeFormatters)
	if len(f.Types) > 0 {
		c.Types = make(map[reflect.Type]CellFormatter, len(f.Types))
		for key, val := range f.Types {
			c.Types[key] = val
		}
	}
	if len(f.InterfaceTypes) > 0 {
		c.InterfaceTypes = make(map[reflect.Type]CellFormatter, len(f.InterfaceTypes))
		for key, val := range f.InterfaceTypes {
			c.InterfaceTypes[key] = val
		}
	}
	if len(f.Kinds) > 0 {
		c.Kinds = make(map[reflect.Kind]CellFormatter, len(f.Kinds))
		for key, val := range f.Kinds {
			c.Kinds[key] = val
		}
	}
	return c
}

// WithTypeFormatter returns a copy of f with a formatter
// for values of exactly the type typ.
func (f *TypeFormatters) WithTypeFormatter(typ reflect.Type, fmt CellFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	if mod.Types == nil {
		mod.Types = make(map[reflect.Type]CellFormatter)
	}
	mod.Types[typ] = fmt
	return mod
}

// WithInterfaceTypeFormatter returns a copy of f with a formatter
// for values implementing the interface type typ.
func (f *TypeFormatters) WithInterfaceTypeFormatter(typ reflect.Type, fmt CellFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	if mod.InterfaceTypes == nil {
		mod.InterfaceTypes = make(map[reflect.Type]CellFormatter)
	}
	mod.InterfaceTypes[typ] = fmt
	return mod
}

// WithKindFormatter returns a copy of f with a formatter
// for values of the kind.
func (f *TypeFormatters) WithKindFormatter(kind reflect.Kind, fmt CellFormatter) *TypeFormatters {
	mod := f.cloneOrNew()
	if mod.Kinds == nil {
		mod.Kinds = make(map[reflect.Kind]CellFormatter)
	}
	mod.Kinds[kind] = fmt
	return mod
}
