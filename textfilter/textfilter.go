// Package textfilter matches table rows against a free text search
// and a namespace selection.
//
// Rows are matched through their JSON form, so nested fields
// like "metadata.labels" can be addressed with gjson paths.
package textfilter

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/tidwall/gjson"

	simpletable "github.com/domonda/go-simpletable"
)

// DefaultCriteria are the paths searched when
// a Matcher is created without criteria.
var DefaultCriteria = []string{
	"metadata.name",
	"metadata.namespace",
	"metadata.uid",
	"metadata.labels",
}

// DefaultNamespacePath is the path of the namespace of a row.
const DefaultNamespacePath = "metadata.namespace"

// Matcher decides if rows match a search text.
//
// A row matches if the value at one of the Criteria paths contains the
// search text case-insensitively. Objects match by any "key", "value"
// or "key=value" of their members, arrays by any element.
// If Namespaces is not empty then the row's value at NamespacePath
// must additionally be one of them.
type Matcher struct {
	Criteria      []string
	NamespacePath string
	Namespaces    []string
}

// New returns a Matcher for criteria paths or DefaultCriteria.
// A leading dot of a path is ignored, so ".spec.nodeName"
// and "spec.nodeName" address the same value.
func New(criteria ...string) *Matcher {
	if len(criteria) == 0 {
		criteria = DefaultCriteria
	}
	m := &Matcher{
		Criteria:      make([]string, len(criteria)),
		NamespacePath: DefaultNamespacePath,
	}
	for i, c := range criteria {
		m.Criteria[i] = strings.TrimPrefix(c, ".")
	}
	return m
}

// WithNamespaces returns a copy of the Matcher
// that only matches rows in the passed namespaces.
func (m *Matcher) WithNamespaces(namespaces ...string) *Matcher {
	mod := *m
	mod.Namespaces = slices.DeleteFunc(slices.Clone(namespaces), func(ns string) bool { return ns == "" })
	return &mod
}

// WithNamespacePath returns a copy of the Matcher
// reading the namespace of rows from path.
func (m *Matcher) WithNamespacePath(path string) *Matcher {
	mod := *m
	mod.NamespacePath = strings.TrimPrefix(path, ".")
	return &mod
}

// Match returns true if row is in the selected namespaces
// and matches search. An empty search matches all rows.
// Top level values that can't be encoded as JSON are treated as missing.
func (m *Matcher) Match(row simpletable.Row, search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" && len(m.Namespaces) == 0 {
		return true
	}
	doc := document(row)
	if len(m.Namespaces) > 0 {
		ns := gjson.GetBytes(doc, m.NamespacePath)
		if !ns.Exists() || !slices.Contains(m.Namespaces, ns.String()) {
			return false
		}
	}
	if search == "" {
		return true
	}
	for _, result := range gjson.GetManyBytes(doc, m.Criteria...) {
		if resultContains(result, search) {
			return true
		}
	}
	return false
}

// Predicate returns a simpletable.Predicate matching search,
// or nil to show all rows if there is nothing to filter.
func (m *Matcher) Predicate(search string) simpletable.Predicate {
	if strings.TrimSpace(search) == "" && len(m.Namespaces) == 0 {
		return nil
	}
	return func(row simpletable.Row) bool {
		return m.Match(row, search)
	}
}

// document returns the JSON object of row
// without the values that can't be encoded like NaN or funcs.
func document(row simpletable.Row) []byte {
	fields := make(map[string]json.RawMessage, len(row))
	for key, value := range row {
		encoded, err := json.Marshal(value)
		if err != nil {
			continue
		}
		fields[key] = encoded
	}
	doc, err := json.Marshal(fields)
	if err != nil {
		return nil
	}
	return doc
}

func resultContains(result gjson.Result, search string) bool {
	switch {
	case !result.Exists() || result.Type == gjson.Null:
		return false
	case result.IsObject():
		found := false
		result.ForEach(func(key, value gjson.Result) bool {
			found = containsFold(key.String(), search) ||
				resultContains(value, search) ||
				containsFold(key.String()+"="+value.String(), search)
			return !found
		})
		return found
	case result.IsArray():
		found := false
		result.ForEach(func(_, value gjson.Result) bool {
			found = resultContains(value, search)
			return !found
		})
		return found
	default:
		return containsFold(result.String(), search)
	}
}

// containsFold expects substr to be lower case already.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
