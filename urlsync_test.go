package simpletable

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, rawURL string) *URLQueryStore {
	t.Helper()
	store, err := NewURLQueryStore(rawURL)
	require.NoError(t, err)
	return store
}

func TestURLReflectionKeys(t *testing.T) {
	assert.Equal(t, "p", ReflectInURL().PageKey())
	assert.Equal(t, "rows", ReflectInURL().RowsKey())
	assert.Equal(t, "foo_p", ReflectInURLWithPrefix("foo").PageKey())
	assert.Equal(t, "foo_rows", ReflectInURLWithPrefix("foo").RowsKey())
}

func TestNewURLSync(t *testing.T) {
	store := newStore(t, "/pods")
	assert.Nil(t, NewURLSync(store, NoURLReflection))
	assert.Nil(t, NewURLSync(nil, ReflectInURL()))

	var nilSync *URLSync
	state, ok := nilSync.Read(nil)
	assert.False(t, ok)
	assert.Equal(t, DefaultPagination(nil), state)
	nilSync.Write(PaginationState{PageIndex: 3, PageSize: 15})
	assert.Equal(t, "", nilSync.PageKey())
	assert.Equal(t, url.Values{}, nilSync.Query())
}

func TestURLSyncRead(t *testing.T) {
	rowsPerPage := []int{15, 25, 50}
	tests := []struct {
		name   string
		query  string
		prefix string
		want   PaginationState
		wantOK bool
	}{
		{name: "empty", query: "", want: PaginationState{PageIndex: 0, PageSize: 15}},
		{name: "both", query: "p=3&rows=25", want: PaginationState{PageIndex: 2, PageSize: 25}, wantOK: true},
		{name: "page only", query: "p=2", want: PaginationState{PageIndex: 1, PageSize: 15}, wantOK: true},
		{name: "rows only", query: "rows=50", want: PaginationState{PageIndex: 0, PageSize: 50}, wantOK: true},
		{name: "page zero", query: "p=0&rows=25", want: PaginationState{PageIndex: 0, PageSize: 25}, wantOK: true},
		{name: "negative page", query: "p=-2", want: PaginationState{PageIndex: 0, PageSize: 15}},
		{name: "not a number", query: "p=abc&rows=x", want: PaginationState{PageIndex: 0, PageSize: 15}},
		{name: "rows not an option", query: "p=2&rows=7", want: PaginationState{PageIndex: 1, PageSize: 15}, wantOK: true},
		{name: "prefixed", query: "foo_p=2&foo_rows=25&p=9", prefix: "foo", want: PaginationState{PageIndex: 1, PageSize: 25}, wantOK: true},
		{name: "other prefix ignored", query: "bar_p=2", prefix: "foo", want: PaginationState{PageIndex: 0, PageSize: 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reflection := ReflectInURL()
			if tt.prefix != "" {
				reflection = ReflectInURLWithPrefix(tt.prefix)
			}
			sync := NewURLSync(newStore(t, "/pods?"+tt.query), reflection)
			got, ok := sync.Read(rowsPerPage)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestURLSyncWriteMerges(t *testing.T) {
	store := newStore(t, "/c/main/pods?namespace=kube-system&p=4")
	sync := NewURLSync(store, ReflectInURLWithPrefix("foo"))

	sync.Write(PaginationState{PageIndex: 1, PageSize: 25})

	query := store.Query()
	assert.Equal(t, "2", query.Get("foo_p"))
	assert.Equal(t, "25", query.Get("foo_rows"))
	assert.Equal(t, "kube-system", query.Get("namespace"))
	assert.Equal(t, "4", query.Get("p"), "unprefixed key belongs to another table")
	assert.Equal(t, "/c/main/pods", store.URL().Path)
}

func TestURLSyncRoundTrip(t *testing.T) {
	store := newStore(t, "/pods")
	sync := NewURLSync(store, ReflectInURLWithPrefix("foo"))
	rowsPerPage := []int{15, 25, 50}

	for _, state := range []PaginationState{
		{PageIndex: 0, PageSize: 15},
		{PageIndex: 1, PageSize: 25},
		{PageIndex: 9, PageSize: 50},
	} {
		sync.Write(state)
		got, ok := sync.Read(rowsPerPage)
		require.True(t, ok)
		require.Equal(t, state, got)
	}
}

// replaceOnlyStore has no Update method,
// so URLSync falls back to read-modify-replace.
type replaceOnlyStore struct {
	query url.Values
}

func (s *replaceOnlyStore) Query() url.Values {
	query := make(url.Values, len(s.query))
	for k, v := range s.query {
		query[k] = append([]string(nil), v...)
	}
	return query
}

func (s *replaceOnlyStore) ReplaceQuery(query url.Values) { s.query = query }

func TestURLSyncWriteWithoutUpdate(t *testing.T) {
	store := &replaceOnlyStore{query: url.Values{"search": {"nginx"}}}
	sync := NewURLSync(store, ReflectInURL())
	sync.Write(PaginationState{PageIndex: 2, PageSize: 50})
	assert.Equal(t, url.Values{"search": {"nginx"}, "p": {"3"}, "rows": {"50"}}, store.query)
}

func TestURLSyncPageQuery(t *testing.T) {
	store := newStore(t, "/pods?a=1&p=1&rows=15")
	sync := NewURLSync(store, ReflectInURL())

	base := store.Query()
	query := sync.PageQuery(base, PaginationState{PageIndex: 4, PageSize: 15})
	assert.Equal(t, "5", query.Get("p"))
	assert.Equal(t, "1", query.Get("a"))
	assert.Equal(t, "1", base.Get("p"), "base must not be modified")
	assert.Equal(t, "1", store.Query().Get("p"), "store must not be modified")
}

func TestURLQueryStore(t *testing.T) {
	_, err := NewURLQueryStore("http://[::1")
	require.Error(t, err)

	store := newStore(t, "https://example.com/pods?x=1#frag")
	store.ReplaceQuery(url.Values{"y": {"2"}})
	assert.Equal(t, "https://example.com/pods?y=2#frag", store.String())

	store.Update(func(q url.Values) { q.Set("z", "3") })
	assert.Equal(t, url.Values{"y": {"2"}, "z": {"3"}}, store.Query())

	query := store.Query()
	query.Set("y", "changed")
	assert.Equal(t, "2", store.Query().Get("y"), "Query returns a copy")
}
