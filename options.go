package simpletable

import "strings"

// Option flags for converting views to strings.
type Option int

const (
	// OptionAddHeaderRow adds the column titles as first row.
	OptionAddHeaderRow Option = 1 << iota
	// OptionNumberRows prepends a column with the 1-based row number.
	OptionNumberRows
)

func (o Option) Has(option Option) bool {
	return o&option != 0
}

func (o Option) String() string {
	var names []string
	if o.Has(OptionAddHeaderRow) {
		names = append(names, "AddHeaderRow")
	}
	if o.Has(OptionNumberRows) {
		names = append(names, "NumberRows")
	}
	if len(names) == 0 {
		return "no Option"
	}
	return strings.Join(names, "|")
}

func HasOption(options []Option, option Option) bool {
	for _, o := range options {
		if o.Has(option) {
			return true
		}
	}
	return false
}
