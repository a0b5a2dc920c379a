package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	simpletable "github.com/domonda/go-simpletable"
)

func TestLoadDefaults(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, NewDefaults().Locales, d.Locales)
	assert.Equal(t, simpletable.DefaultEmptyMessage, d.EmptyMessage)
	assert.Empty(t, d.SearchCriteria)
	assert.Equal(t, simpletable.DefaultRowsPerPage, d.RowsPerPage)
	assert.Equal(t, "text", d.Format)
	assert.Equal(t, "en", d.Locale)
}

func TestLoadLayers(t *testing.T) {
	file := filepath.Join(t.TempDir(), "simpletable.yaml")
	err := os.WriteFile(file, []byte(`
rows_per_page: [10, 20]
empty_message: Nothing here
format: html
locale: es
search_criteria:
  - metadata.name
`), 0o600)
	require.NoError(t, err)

	d, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20}, d.RowsPerPage)
	assert.Equal(t, "Nothing here", d.EmptyMessage)
	assert.Equal(t, "html", d.Format)
	assert.Equal(t, "es", d.Locale)
	assert.Equal(t, []string{"metadata.name"}, d.SearchCriteria)
	assert.False(t, d.IgnoreCase)

	t.Setenv("SIMPLETABLE_LOCALE", "de")
	t.Setenv("SIMPLETABLE_ROWS_PER_PAGE", "5,50")
	t.Setenv("SIMPLETABLE_IGNORE_CASE", "true")
	t.Setenv("SIMPLETABLE_PREFIX", "pods")

	d, err = Load(file)
	require.NoError(t, err)
	assert.Equal(t, "de", d.Locale, "environment overrides file")
	assert.Equal(t, []int{5, 50}, d.RowsPerPage)
	assert.True(t, d.IgnoreCase)
	assert.Equal(t, "pods", d.Prefix)
	assert.Equal(t, "html", d.Format, "file value kept")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	t.Setenv("SIMPLETABLE_ROWS_PER_PAGE", "many")
	_, err = Load("")
	require.Error(t, err)
}
