package simpletable

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const (
	// PageParam is the query parameter with the 1-based page number.
	PageParam = "p"
	// RowsParam is the query parameter with the page size.
	RowsParam = "rows"
)

// URLReflection configures if and under which
// query parameter names a table mirrors its
// pagination state into the URL.
type URLReflection struct {
	Enabled bool
	// Prefix namespaces the parameters as "<Prefix>_p" and "<Prefix>_rows"
	// so that multiple tables can share one URL.
	Prefix string
}

// NoURLReflection disables mirroring pagination into the URL.
var NoURLReflection = URLReflection{}

// ReflectInURL enables mirroring pagination into the URL
// using the plain parameter names.
func ReflectInURL() URLReflection {
	return URLReflection{Enabled: true}
}

// ReflectInURLWithPrefix enables mirroring pagination into the URL
// using parameter names namespaced with prefix.
func ReflectInURLWithPrefix(prefix string) URLReflection {
	return URLReflection{Enabled: true, Prefix: prefix}
}

// PageKey returns the query parameter name for the page number.
func (r URLReflection) PageKey() string {
	return r.key(PageParam)
}

// RowsKey returns the query parameter name for the page size.
func (r URLReflection) RowsKey() string {
	return r.key(RowsParam)
}

func (r URLReflection) key(param string) string {
	if r.Prefix == "" {
		return param
	}
	return r.Prefix + "_" + param
}

// URLSync binds the pagination state of one table
// to two parameters of a QueryStore.
type URLSync struct {
	store   QueryStore
	pageKey string
	rowsKey string
}

// NewURLSync returns a URLSync for store
// or nil if reflection is not enabled or store is nil.
func NewURLSync(store QueryStore, reflection URLReflection) *URLSync {
	if !reflection.Enabled || store == nil {
		return nil
	}
	return &URLSync{
		store:   store,
		pageKey: reflection.PageKey(),
		rowsKey: reflection.RowsKey(),
	}
}

// PageKey returns the query parameter name for the page number
// or an empty string for a nil URLSync.
func (s *URLSync) PageKey() string {
	if s == nil {
		return ""
	}
	return s.pageKey
}

// RowsKey returns the query parameter name for the page size
// or an empty string for a nil URLSync.
func (s *URLSync) RowsKey() string {
	if s == nil {
		return ""
	}
	return s.rowsKey
}

// Read returns the pagination state stored in the URL.
//
// The page parameter must be an integer >= 1 and is converted
// to a 0-based index. The rows parameter must be an integer
// that is a member of rowsPerPage. Every parameter that is missing
// or invalid falls back to its value in DefaultPagination(rowsPerPage).
// The result ok is true if at least one parameter was used.
func (s *URLSync) Read(rowsPerPage []int) (state PaginationState, ok bool) {
	rowsPerPage = NormalizeRowsPerPage(rowsPerPage)
	state = DefaultPagination(rowsPerPage)
	if s == nil {
		return state, false
	}
	query := s.store.Query()
	if page, valid := parseQueryInt(query, s.pageKey); valid && page >= 1 {
		state.PageIndex = page - 1
		ok = true
	}
	if rows, valid := parseQueryInt(query, s.rowsKey); valid && slices.Contains(rowsPerPage, rows) {
		state.PageSize = rows
		ok = true
	}
	return state, ok
}

// Write merges state into the current query parameters
// leaving all other parameters untouched.
// The store is read right before writing
// to pick up changes made by other components.
func (s *URLSync) Write(state PaginationState) {
	if s == nil {
		return
	}
	set := func(query url.Values) {
		query.Set(s.pageKey, strconv.Itoa(max(state.PageIndex, 0)+1))
		query.Set(s.rowsKey, strconv.Itoa(state.PageSize))
	}
	if updater, ok := s.store.(interface{ Update(func(url.Values)) }); ok {
		updater.Update(set)
		return
	}
	query := s.store.Query()
	set(query)
	s.store.ReplaceQuery(query)
}

// PageQuery returns a copy of base with the parameters of state set.
// Used to build links to other pages without changing the store.
func (s *URLSync) PageQuery(base url.Values, state PaginationState) url.Values {
	query := make(url.Values, len(base)+2)
	for key, vals := range base {
		query[key] = slices.Clone(vals)
	}
	if s == nil {
		return query
	}
	query.Set(s.pageKey, strconv.Itoa(max(state.PageIndex, 0)+1))
	query.Set(s.rowsKey, strconv.Itoa(state.PageSize))
	return query
}

// Query returns the current query parameters of the store.
func (s *URLSync) Query() url.Values {
	if s == nil {
		return url.Values{}
	}
	return s.store.Query()
}

func parseQueryInt(query url.Values, key string) (int, bool) {
	str := strings.TrimSpace(query.Get(key))
	if str == "" {
		return 0, false
	}
	i, err := strconv.Atoi(str)
	return i, err == nil
}
