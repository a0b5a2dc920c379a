package simpletable

import (
	"net/url"
	"sync"
)

// QueryStore is read/write access to a URL query string
// that may be shared by several tables and other components.
type QueryStore interface {
	// Query returns a copy of the current query parameters.
	Query() url.Values
	// ReplaceQuery replaces all query parameters
	// without any navigation or reload.
	ReplaceQuery(url.Values)
}

var _ QueryStore = new(URLQueryStore)

// URLQueryStore is a QueryStore backed by a url.URL.
// It is safe for concurrent use.
type URLQueryStore struct {
	mtx sync.Mutex
	url url.URL
}

// NewURLQueryStore parses rawURL into a URLQueryStore.
func NewURLQueryStore(rawURL string) (*URLQueryStore, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return &URLQueryStore{url: *u}, nil
}

// Query implements QueryStore.
// Malformed query strings result in the parameters
// that could be parsed.
func (s *URLQueryStore) Query() url.Values {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	query, _ := url.ParseQuery(s.url.RawQuery)
	return query
}

// ReplaceQuery implements QueryStore.
func (s *URLQueryStore) ReplaceQuery(query url.Values) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.url.RawQuery = query.Encode()
}

// Update calls modify with the current query parameters
// and stores the result while holding the lock,
// so concurrent updates of different keys don't get lost.
func (s *URLQueryStore) Update(modify func(url.Values)) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	query, _ := url.ParseQuery(s.url.RawQuery)
	modify(query)
	s.url.RawQuery = query.Encode()
}

// URL returns a copy of the current URL.
func (s *URLQueryStore) URL() *url.URL {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	u := s.url
	return &u
}

// String returns the current URL as string.
func (s *URLQueryStore) String() string {
	return s.URL().String()
}
