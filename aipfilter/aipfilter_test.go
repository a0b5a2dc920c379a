package aipfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	simpletable "github.com/domonda/go-simpletable"
)

func podRows() []simpletable.Row {
	return []simpletable.Row{
		{"name": "nginx-1", "namespace": "default", "restarts": 0, "cpu": 0.5},
		{"name": "nginx-2", "namespace": "default", "restarts": 3, "cpu": 1.5},
		{"name": "coredns", "namespace": "kube-system", "restarts": "7", "cpu": "0.1"},
		{"name": "monitor", "namespace": "monitoring"},
	}
}

var podFields = Fields{
	"name":      FieldString,
	"namespace": FieldString,
	"restarts":  FieldInt,
	"cpu":       FieldFloat,
}

func matchingNames(t *testing.T, pred simpletable.Predicate) []string {
	t.Helper()
	var names []string
	for _, row := range simpletable.Filter(podRows(), pred) {
		names = append(names, row["name"].(string))
	}
	return names
}

func TestCompile(t *testing.T) {
	tests := []struct {
		filter string
		want   []string
	}{
		{filter: `namespace = "default"`, want: []string{"nginx-1", "nginx-2"}},
		{filter: `namespace != "default"`, want: []string{"coredns", "monitor"}},
		{filter: `name = "nginx*"`, want: []string{"nginx-1", "nginx-2"}},
		{filter: `name = "*dns"`, want: []string{"coredns"}},
		{filter: `restarts > 2`, want: []string{"nginx-2", "coredns"}},
		{filter: `restarts <= 3`, want: []string{"nginx-1", "nginx-2"}},
		{filter: `restarts != 3`, want: []string{"nginx-1", "coredns", "monitor"}},
		{filter: `cpu >= 0.5`, want: []string{"nginx-1", "nginx-2"}},
		{filter: `namespace = "default" AND restarts > 0`, want: []string{"nginx-2"}},
		{filter: `namespace = "monitoring" OR restarts = 7`, want: []string{"coredns", "monitor"}},
		{filter: `NOT namespace = "default"`, want: []string{"coredns", "monitor"}},
		{filter: `name = "nothing"`, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			pred, err := Compile(tt.filter, podFields)
			require.NoError(t, err)
			require.NotNil(t, pred)
			assert.Equal(t, tt.want, matchingNames(t, pred))
		})
	}
}

func TestCompileMissingField(t *testing.T) {
	rows := []simpletable.Row{
		{"name": "nginx-1", "restarts": 2},
		{"restarts": 5},
		{"name": "coredns"},
	}
	tests := []struct {
		filter string
		want   []int
	}{
		{filter: `name != "nginx-1"`, want: []int{1, 2}},
		{filter: `name != "zzz"`, want: []int{0, 1, 2}},
		{filter: `name = "*"`, want: []int{0, 2}},
		{filter: `name : "dns"`, want: []int{2}},
		{filter: `restarts != 99`, want: []int{0, 1, 2}},
		{filter: `restarts >= 2`, want: []int{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			pred, err := Compile(tt.filter, Fields{"name": FieldString, "restarts": FieldInt})
			require.NoError(t, err)
			var got []int
			for i, row := range rows {
				if pred(row) {
					got = append(got, i)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileEmpty(t *testing.T) {
	pred, err := Compile("  ", podFields)
	require.NoError(t, err)
	require.Nil(t, pred)
	assert.Len(t, simpletable.Filter(podRows(), pred), 4)
}

func TestCompileErrors(t *testing.T) {
	for _, filter := range []string{
		`unknown = "x"`,
		`restarts > "many"`,
		`namespace = `,
		`(name = "x"`,
	} {
		t.Run(filter, func(t *testing.T) {
			pred, err := Compile(filter, podFields)
			require.ErrorIs(t, err, ErrInvalidFilter)
			require.Nil(t, pred)
		})
	}
}

func TestInferFields(t *testing.T) {
	rows := []simpletable.Row{
		{"name": "a", "count": 1, "ratio": 0.5, "ready": true, "text": "10", "mixed": 1},
		{"name": "b", "count": "2", "ratio": "3", "ready": nil, "text": "1.5", "mixed": "x"},
	}
	fields := InferFields(rows, "name", "count", "ratio", "ready", "text", "mixed", "missing")
	assert.Equal(t, Fields{
		"name":    FieldString,
		"count":   FieldInt,
		"ratio":   FieldFloat,
		"ready":   FieldBool,
		"text":    FieldFloat,
		"mixed":   FieldString,
		"missing": FieldString,
	}, fields)
}

func TestParseFieldType(t *testing.T) {
	for _, ft := range []FieldType{FieldString, FieldInt, FieldFloat, FieldBool} {
		parsed, err := ParseFieldType(ft.String())
		require.NoError(t, err)
		assert.Equal(t, ft, parsed)
	}
	_, err := ParseFieldType("date")
	require.Error(t, err)
	assert.Equal(t, "FieldType(9)", FieldType(9).String())
}

func TestMatchWildcard(t *testing.T) {
	assert.True(t, matchWildcard("nginx", "nginx"))
	assert.True(t, matchWildcard("nginx", "ngi*"))
	assert.True(t, matchWildcard("nginx", "*inx"))
	assert.True(t, matchWildcard("nginx", "*gin*"))
	assert.False(t, matchWildcard("nginx", "gin"))
	assert.False(t, matchWildcard(nil, "*"))
	assert.True(t, matchWildcard(42, "4*"))
}
