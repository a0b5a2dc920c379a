package simpletable

import (
	"errors"
	"fmt"
)

// DefaultEmptyMessage is displayed for an empty
// table without configured EmptyMessage.
const DefaultEmptyMessage = "No data to be shown."

var (
	// DefaultStructFieldNaming provides the default StructFieldNaming
	// using "col" as title tag, ignores "-" titled fields,
	// and uses SpacePascalCase for untagged fields.
	DefaultStructFieldNaming = StructFieldNaming{
		Tag:      "col",
		Ignore:   "-",
		Untagged: SpacePascalCase,
	}

	// DefaultStructFieldNamingIgnoreUntagged provides the default StructFieldNaming
	// using "col" as title tag, ignores "-" titled as well as untitled fields.
	DefaultStructFieldNamingIgnoreUntagged = StructFieldNaming{
		Tag:      "col",
		Ignore:   "-",
		Untagged: UseTitle("-"),
	}
)

// Config is the caller supplied configuration of a Table.
// It is treated as read-only input.
type Config struct {
	// Title is an optional caption for renderers.
	Title   string
	Columns Columns
	// Data is the already fetched collection of rows.
	// A nil slice means the data has not been loaded yet,
	// an empty slice means there are no rows.
	Data []Row
	// RowsPerPage are the selectable page sizes.
	// Invalid or missing values are replaced by DefaultRowsPerPage.
	RowsPerPage []int
	// DefaultSortingColumn is the 1-based number of the column
	// to sort by on mount, negative to sort descending,
	// zero for no default sorting.
	DefaultSortingColumn int
	// Filter selects the visible rows, nil shows all rows.
	Filter       Predicate
	ReflectInURL URLReflection
	// EmptyMessage is displayed if no row is visible.
	// DefaultEmptyMessage is used if empty.
	EmptyMessage string
	// ErrorMessage suppresses all rows and is displayed instead if not empty.
	ErrorMessage string
}

// Validate reports configuration problems that New would silently correct.
// Query store availability can't be checked here, see Table.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Columns) == 0 {
		errs = append(errs, ErrNoColumns)
	}
	for _, size := range c.RowsPerPage {
		if size <= 0 {
			errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidRowsPerPage, size))
			break
		}
	}
	if c.DefaultSortingColumn != 0 {
		col := c.DefaultSortingColumn
		if col < 0 {
			col = -col
		}
		if col > len(c.Columns) {
			errs = append(errs, fmt.Errorf("%w: %d of %d columns", ErrInvalidSortingColumn, c.DefaultSortingColumn, len(c.Columns)))
		}
	}
	return errors.Join(errs...)
}

// EffectiveEmptyMessage returns EmptyMessage or DefaultEmptyMessage.
func (c *Config) EffectiveEmptyMessage() string {
	if c.EmptyMessage == "" {
		return DefaultEmptyMessage
	}
	return c.EmptyMessage
}
