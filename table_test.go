package simpletable

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func podRows() []Row {
	return []Row{
		{"name": "coredns", "namespace": "kube-system", "restarts": 2},
		{"name": "nginx", "namespace": "default", "restarts": 0},
		{"name": "grafana", "namespace": "monitoring", "restarts": 11},
		{"name": "api", "namespace": "default", "restarts": 1},
	}
}

func podColumns() Columns {
	return Columns{
		Datum("Name", "name"),
		Datum("Namespace", "namespace"),
		Getter("Restarts", func(r Row) any { return r["restarts"] }),
	}
}

func namespaceContains(search string) Predicate {
	return func(r Row) bool {
		return strings.Contains(DisplayString(r["namespace"]), search)
	}
}

func TestTableEndToEnd(t *testing.T) {
	table := New(Config{
		Columns:     podColumns(),
		Data:        podRows(),
		RowsPerPage: []int{15, 25, 50},
	})

	r := table.Render()
	require.Equal(t, StatusRows, r.Status)
	require.Equal(t, 1, r.Page.PageCount)
	require.Len(t, r.Rows, 4)
	require.Equal(t, []string{"Name", "Namespace", "Restarts"}, r.Columns())

	table.SetFilter(namespaceContains("monitor"))
	r = table.Render()
	require.Equal(t, StatusRows, r.Status)
	require.Equal(t, 1, table.VisibleCount())
	require.Equal(t, 1, r.Page.PageCount)
	require.Equal(t, "grafana", r.Cell(0, 0))

	table.SetFilter(namespaceContains("does-not-exist"))
	r = table.Render()
	require.Equal(t, StatusEmpty, r.Status)
	require.Equal(t, DefaultEmptyMessage, r.Message)
	require.Equal(t, 0, r.NumRows())
	require.Equal(t, 1, r.Page.PageCount)
}

func TestTableFilterResetsPage(t *testing.T) {
	store := newStore(t, "/pods")
	table := New(
		Config{
			Columns:      DatumColumns("number"),
			Data:         numberRows(100),
			RowsPerPage:  []int{10},
			ReflectInURL: ReflectInURL(),
		},
		WithQueryStore(store),
	)
	table.SetPage(5)
	require.Equal(t, 5, table.Pagination().PageIndex)
	require.Equal(t, "6", store.Query().Get("p"))

	table.SetFilter(even)
	require.Equal(t, 0, table.Pagination().PageIndex)
	require.Equal(t, "1", store.Query().Get("p"))
	require.Equal(t, 50, table.VisibleCount())

	table.SetPage(3)
	table.SetData(numberRows(80))
	require.Equal(t, 0, table.Pagination().PageIndex, "visible count changed")

	table.SetPage(3)
	table.SetData(numberRows(80))
	require.Equal(t, 3, table.Pagination().PageIndex, "visible count unchanged")

	table.SetData(numberRows(20))
	require.Equal(t, 0, table.Pagination().PageIndex)
}

func TestTableDefaultSorting(t *testing.T) {
	table := New(Config{
		Columns:              podColumns(),
		Data:                 podRows(),
		DefaultSortingColumn: -3,
	})
	require.Equal(t, SortState{Column: 2, Direction: Descending}, table.SortState())

	r := table.Render()
	names := func(r *Render) []any {
		var names []any
		for i := range r.NumRows() {
			names = append(names, r.Cell(i, 0))
		}
		return names
	}
	require.Equal(t, []any{"grafana", "coredns", "api", "nginx"}, names(r))
	require.True(t, r.Headers[2].Sorted)
	require.False(t, r.Headers[0].Sorted)

	table.ClickHeader(2)
	require.Equal(t, []any{"nginx", "api", "coredns", "grafana"}, names(table.Render()))

	table.ClickHeader(0)
	require.Equal(t, []any{"api", "coredns", "grafana", "nginx"}, names(table.Render()))

	table.ClickHeader(7)
	require.Equal(t, SortState{Column: 0, Direction: Ascending}, table.SortState())
}

func TestTableSortKeepsPage(t *testing.T) {
	table := New(Config{
		Columns:     DatumColumns("number"),
		Data:        numberRows(30),
		RowsPerPage: []int{10},
	})
	table.SetPage(2)
	table.ClickHeader(0)
	table.ClickHeader(0)
	require.Equal(t, 2, table.Pagination().PageIndex)

	r := table.Render()
	require.Equal(t, 9, r.Cell(0, 0))
	require.Equal(t, 21, r.RowNumber(0))
}

func TestTablePagingControls(t *testing.T) {
	table := New(Config{
		Columns:     DatumColumns("number"),
		Data:        numberRows(25),
		RowsPerPage: []int{10, 20},
	})
	r := table.Render()
	assert.False(t, r.HasPrevious())
	assert.True(t, r.HasNext())

	table.NextPage()
	table.NextPage()
	table.NextPage()
	assert.Equal(t, 2, table.Pagination().PageIndex)
	r = table.Render()
	assert.True(t, r.HasPrevious())
	assert.False(t, r.HasNext())
	assert.Len(t, r.Rows, 5)

	table.SetPageSize(20)
	assert.Equal(t, PaginationState{PageIndex: 1, PageSize: 20}, table.Pagination())

	table.SetPageSize(13)
	assert.Equal(t, PaginationState{PageIndex: 2, PageSize: 10}, table.Pagination())

	table.SetPage(-7)
	assert.Equal(t, 0, table.Pagination().PageIndex)
	table.PreviousPage()
	assert.Equal(t, 0, table.Pagination().PageIndex)
}

func TestTableURLRoundTrip(t *testing.T) {
	store := newStore(t, "/pods?namespace=default")
	config := Config{
		Columns:      DatumColumns("number"),
		Data:         numberRows(100),
		RowsPerPage:  []int{15, 25, 50},
		ReflectInURL: ReflectInURLWithPrefix("foo"),
	}
	table := New(config, WithQueryStore(store))
	table.SetPageSize(25)
	table.SetPage(1)

	query := store.Query()
	require.Equal(t, "2", query.Get("foo_p"))
	require.Equal(t, "25", query.Get("foo_rows"))
	require.Equal(t, "default", query.Get("namespace"))

	remounted := New(config, WithQueryStore(store))
	require.Equal(t, table.Pagination(), remounted.Pagination())
}

func TestTablePrefixIsolation(t *testing.T) {
	store := newStore(t, "/overview")
	mount := func(prefix string) *Table {
		return New(
			Config{
				Columns:      DatumColumns("number"),
				Data:         numberRows(100),
				RowsPerPage:  []int{10, 20},
				ReflectInURL: ReflectInURLWithPrefix(prefix),
			},
			WithQueryStore(store),
		)
	}
	pods := mount("pods")
	nodes := mount("nodes")

	pods.SetPage(3)
	nodes.SetPageSize(20)
	nodes.SetPage(1)

	require.Equal(t, PaginationState{PageIndex: 3, PageSize: 10}, pods.Pagination())
	require.Equal(t, PaginationState{PageIndex: 1, PageSize: 20}, nodes.Pagination())

	query := store.Query()
	require.Equal(t, "4", query.Get("pods_p"))
	require.Equal(t, "10", query.Get("pods_rows"))
	require.Equal(t, "2", query.Get("nodes_p"))
	require.Equal(t, "20", query.Get("nodes_rows"))

	pods.Navigate()
	nodes.Navigate()
	require.Equal(t, PaginationState{PageIndex: 3, PageSize: 10}, pods.Pagination())
	require.Equal(t, PaginationState{PageIndex: 1, PageSize: 20}, nodes.Pagination())
}

func TestTableNavigate(t *testing.T) {
	store := newStore(t, "/pods?p=2")
	table := New(
		Config{
			Columns:      DatumColumns("number"),
			Data:         numberRows(100),
			RowsPerPage:  []int{10},
			ReflectInURL: ReflectInURL(),
		},
		WithQueryStore(store),
	)
	require.Equal(t, 1, table.Pagination().PageIndex)

	store.Update(func(q url.Values) { q.Set("p", "99") })
	require.Equal(t, 1, table.Pagination().PageIndex, "URL is only read on mount and navigation")

	table.Navigate()
	require.Equal(t, 9, table.Pagination().PageIndex)
	require.Equal(t, "99", store.Query().Get("p"), "Navigate never writes")
}

func TestTableWithoutQueryStore(t *testing.T) {
	table := New(Config{
		Columns:      DatumColumns("number"),
		Data:         numberRows(30),
		ReflectInURL: ReflectInURL(),
	})
	require.Nil(t, table.URLSync())
	table.SetPage(1)
	require.Equal(t, 1, table.Pagination().PageIndex)
}

func TestTableErrorAndLoading(t *testing.T) {
	table := New(Config{Columns: podColumns()})
	r := table.Render()
	require.Equal(t, StatusLoading, r.Status)
	require.False(t, table.Loaded())
	require.Empty(t, r.Rows)

	table.SetConfig(Config{
		Columns:      podColumns(),
		Data:         podRows(),
		ErrorMessage: "connection refused",
	})
	r = table.Render()
	require.Equal(t, StatusError, r.Status)
	require.Equal(t, "connection refused", r.Message)
	require.Empty(t, r.Rows)

	table.SetConfig(Config{
		Columns:      podColumns(),
		Data:         []Row{},
		EmptyMessage: "No pods",
	})
	r = table.Render()
	require.Equal(t, StatusEmpty, r.Status)
	require.Equal(t, "No pods", r.Message)
}

func TestTableURLPageSurvivesLoading(t *testing.T) {
	store := newStore(t, "/pods?p=3")
	config := Config{
		Columns:      DatumColumns("number"),
		RowsPerPage:  []int{10},
		ReflectInURL: ReflectInURL(),
	}
	table := New(config, WithQueryStore(store))
	require.Equal(t, 2, table.Pagination().PageIndex)

	table.SetData(numberRows(50))
	require.Equal(t, 2, table.Pagination().PageIndex)
	require.Equal(t, 20, table.Render().Cell(0, 0))
}

func TestTableInvalidConfigCorrected(t *testing.T) {
	config := Config{
		Columns:              DatumColumns("number"),
		Data:                 numberRows(5),
		RowsPerPage:          []int{0, -1},
		DefaultSortingColumn: 4,
	}
	require.ErrorIs(t, config.Validate(), ErrInvalidRowsPerPage)
	require.ErrorIs(t, config.Validate(), ErrInvalidSortingColumn)
	require.ErrorIs(t, (&Config{}).Validate(), ErrNoColumns)

	table := New(config)
	require.Equal(t, DefaultRowsPerPage, table.RowsPerPage())
	require.False(t, table.SortState().IsSorted())
	require.Equal(t, 15, table.Pagination().PageSize)
}

func TestTableVisibleRows(t *testing.T) {
	table := New(Config{
		Columns:              podColumns(),
		Data:                 podRows(),
		RowsPerPage:          []int{2},
		DefaultSortingColumn: -3,
	})
	var names []string
	for _, row := range table.VisibleRows() {
		names = append(names, row["name"].(string))
	}
	assert.Equal(t, []string{"grafana", "coredns", "api", "nginx"}, names, "all pages sorted by restarts descending")
	assert.Len(t, table.Render().Rows, 2)
}
