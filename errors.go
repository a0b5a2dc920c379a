package simpletable

import "errors"

// Config validation errors returned by Config.Validate.
// New never fails because of them, it corrects the configuration instead.
var (
	ErrNoColumns            = errors.New("table has no columns")
	ErrInvalidRowsPerPage   = errors.New("rows per page must contain positive page sizes")
	ErrInvalidSortingColumn = errors.New("default sorting column out of range")
	ErrQueryStoreMissing    = errors.New("URL reflection enabled without query store")
)
