package simpletable

import (
	"log/slog"
	"slices"
)

// TableOption configures a Table on creation.
type TableOption func(*Table)

// WithQueryStore sets the QueryStore used
// when the configuration enables ReflectInURL.
func WithQueryStore(store QueryStore) TableOption {
	return func(t *Table) { t.store = store }
}

// WithLogger sets the logger for debug messages
// about corrected configurations and pagination.
func WithLogger(logger *slog.Logger) TableOption {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithComparer sets the Comparer used for sorting.
func WithComparer(cmp Comparer) TableOption {
	return func(t *Table) {
		if cmp != nil {
			t.comparer = cmp
		}
	}
}

// Table owns the sort and pagination state of one table instance
// and computes the visible page from its configuration
// by filtering, sorting and paginating in that order.
//
// A Table is not safe for concurrent use,
// all methods are meant to be called from one event loop.
// The QueryStore may be shared with other tables and components.
type Table struct {
	config      Config
	rowsPerPage []int
	filtered    []Row

	store    QueryStore
	sync     *URLSync
	logger   *slog.Logger
	comparer Comparer

	sort SortState
	page PaginationState
}

// New mounts a table for config.
//
// The sort state is seeded from config.DefaultSortingColumn.
// If config.ReflectInURL is enabled then the pagination state
// is read from the QueryStore passed with WithQueryStore,
// otherwise it starts on the first page with the first page size.
// Invalid configuration values are corrected, never reported as error.
func New(config Config, options ...TableOption) *Table {
	t := &Table{
		logger:   slog.New(slog.DiscardHandler),
		comparer: DefaultComparer,
	}
	for _, option := range options {
		option(t)
	}
	t.applyConfig(config)
	t.sync = t.newURLSync()
	t.sort = SortStateFromDefault(config.DefaultSortingColumn, len(config.Columns))

	page, fromURL := t.sync.Read(t.rowsPerPage)
	if fromURL {
		t.logger.Debug("pagination from URL", "pageIndex", page.PageIndex, "pageSize", page.PageSize)
	}
	t.page = t.clampLoaded(page)
	return t
}

func (t *Table) applyConfig(config Config) {
	if err := config.Validate(); err != nil {
		t.logger.Debug("correcting table config", "error", err)
	}
	t.config = config
	t.rowsPerPage = NormalizeRowsPerPage(config.RowsPerPage)
	t.filtered = Filter(config.Data, config.Filter)
}

func (t *Table) newURLSync() *URLSync {
	if t.config.ReflectInURL.Enabled && t.store == nil {
		t.logger.Debug("not reflecting pagination in URL", "error", ErrQueryStoreMissing)
	}
	return NewURLSync(t.store, t.config.ReflectInURL)
}

// Config returns the current configuration.
func (t *Table) Config() Config { return t.config }

// RowsPerPage returns the normalized selectable page sizes.
func (t *Table) RowsPerPage() []int { return slices.Clone(t.rowsPerPage) }

// SortState returns the current sort state.
func (t *Table) SortState() SortState { return t.sort }

// Pagination returns the current pagination state.
func (t *Table) Pagination() PaginationState { return t.page }

// URLSync returns the binding to the URL query
// or nil if the table doesn't reflect its pagination in the URL.
func (t *Table) URLSync() *URLSync { return t.sync }

// Loaded returns false while the configured Data is nil.
func (t *Table) Loaded() bool { return t.config.Data != nil }

// VisibleCount returns the number of rows passing the filter.
func (t *Table) VisibleCount() int { return len(t.filtered) }

// VisibleRows returns the rows of all pages
// filtered and sorted like Render does.
func (t *Table) VisibleRows() []Row {
	return Sort(t.filtered, t.sort, t.config.Columns, t.comparer)
}

// SetConfig passes a fresh configuration, for example
// after the caller re-rendered with new data or a new filter.
//
// If the number of visible rows changed then the page index is reset to 0,
// otherwise it is clamped. Data changing from nil to loaded
// only clamps so that a page selected by the URL survives loading.
// The page size is corrected to the nearest member of the new RowsPerPage.
func (t *Table) SetConfig(config Config) {
	prevReflection := t.config.ReflectInURL
	prevLoaded := t.Loaded()
	prevCount := len(t.filtered)

	t.applyConfig(config)

	if config.ReflectInURL != prevReflection {
		t.sync = t.newURLSync()
		page, _ := t.sync.Read(t.rowsPerPage)
		t.page = page
	}
	if !slices.Contains(t.rowsPerPage, t.page.PageSize) {
		t.logger.Debug("page size not selectable", "pageSize", t.page.PageSize, "rowsPerPage", t.rowsPerPage)
		t.page = t.page.WithPageSize(t.page.PageSize, len(t.filtered), t.rowsPerPage)
	}
	if prevLoaded && t.Loaded() && prevCount != len(t.filtered) {
		t.resetPage()
		return
	}
	t.page = t.clampLoaded(t.page)
}

// SetData replaces the rows, see SetConfig for the pagination rules.
func (t *Table) SetData(rows []Row) {
	config := t.config
	config.Data = rows
	t.SetConfig(config)
}

// SetFilter replaces the filter predicate
// and always resets the page index to 0.
func (t *Table) SetFilter(pred Predicate) {
	t.config.Filter = pred
	t.filtered = Filter(t.config.Data, pred)
	t.resetPage()
}

func (t *Table) resetPage() {
	if t.page.PageIndex == 0 {
		return
	}
	t.logger.Debug("visible rows changed, resetting page", "pageIndex", t.page.PageIndex)
	t.page.PageIndex = 0
	t.sync.Write(t.page)
}

// ClickHeader handles a click on the header of the column with index col.
// The active column toggles its direction, any other column
// becomes sorted ascending. Pagination is not changed.
func (t *Table) ClickHeader(col int) {
	if col < 0 || col >= len(t.config.Columns) {
		return
	}
	t.sort = t.sort.ClickHeader(col)
}

// SetPage selects the page with the 0-based index.
// Out of range indices are clamped.
func (t *Table) SetPage(index int) {
	page := t.page
	page.PageIndex = index
	t.setPagination(page)
}

// NextPage selects the page after the current one if there is one.
func (t *Table) NextPage() { t.SetPage(t.page.PageIndex + 1) }

// PreviousPage selects the page before the current one if there is one.
func (t *Table) PreviousPage() { t.SetPage(t.page.PageIndex - 1) }

// SetPageSize selects a page size.
// Sizes that are not in RowsPerPage are corrected to the nearest member.
// The page index is recomputed to keep the first visible row on the page.
func (t *Table) SetPageSize(size int) {
	if !slices.Contains(t.rowsPerPage, size) {
		t.logger.Debug("page size not selectable", "pageSize", size, "rowsPerPage", t.rowsPerPage)
	}
	total := len(t.filtered)
	if !t.Loaded() {
		total = t.page.Offset() + 1
	}
	t.setPagination(t.page.WithPageSize(size, total, t.rowsPerPage))
}

func (t *Table) setPagination(page PaginationState) {
	page = t.clampLoaded(page)
	if page == t.page {
		return
	}
	t.page = page
	t.sync.Write(page)
}

// Navigate re-reads the pagination state from the URL
// after an external navigation changed it.
// It never writes to the URL.
func (t *Table) Navigate() {
	if t.sync == nil {
		return
	}
	page, _ := t.sync.Read(t.rowsPerPage)
	t.page = t.clampLoaded(page)
}

func (t *Table) clampLoaded(page PaginationState) PaginationState {
	if page.PageIndex < 0 {
		page.PageIndex = 0
	}
	if !t.Loaded() {
		return page
	}
	clamped := page.Clamp(len(t.filtered))
	if clamped.PageIndex != page.PageIndex {
		t.logger.Debug("clamping page index", "requested", page.PageIndex, "clamped", clamped.PageIndex)
	}
	return clamped
}
