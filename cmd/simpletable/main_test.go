package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const podsJSON = `[
	{"metadata": {"name": "mypod", "namespace": "default", "uid": "phony"}, "restarts": 2},
	{"metadata": {"name": "mypod1", "namespace": "MyNamespace", "uid": "phony1"}, "restarts": 10},
	{"metadata": {"name": "mypod2", "namespace": "default", "uid": "phony2"}, "restarts": 0},
	{"metadata": {"name": "mypod3", "namespace": "kube-system", "uid": "phony3"}, "restarts": 7}
]`

func writePods(t *testing.T) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "pods.json")
	require.NoError(t, os.WriteFile(file, []byte(podsJSON), 0o600))
	return file
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRenderText(t *testing.T) {
	file := writePods(t)
	columns := "--columns=metadata.name,metadata.namespace,restarts"

	stdout, stderr, err := execute(t, "render", "--data", file, columns)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "#  metadata.name  metadata.namespace  restarts", lines[0])
	assert.Equal(t, "1  mypod          default             2", lines[1])
	assert.Equal(t, "1-4 of 4, page 1 of 1, 15 rows per page", lines[5])
	assert.Equal(t, "/?p=1&rows=15\n", stderr)

	stdout, _, err = execute(t, "render", "--data", file, columns, "--search", "MyNamespace")
	require.NoError(t, err)
	assert.Contains(t, stdout, "mypod1")
	assert.NotContains(t, stdout, "mypod2")
	assert.Contains(t, stdout, "1-1 of 1")

	stdout, _, err = execute(t, "render", "--data", file, columns, "--search", "somethingthatsnotapossiblematch123")
	require.NoError(t, err)
	assert.Equal(t, "No data to be shown.\n", stdout)

	stdout, _, err = execute(t, "render", "--data", file, columns, "--namespace", "default", "--sort", "-3")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "restarts ▼")
	assert.Contains(t, lines[1], "mypod ")
	assert.Contains(t, lines[2], "mypod2")

	stdout, _, err = execute(t, "render", "--data", file, columns, "--filter", "restarts > 2", "--sort", "3")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "mypod3")
	assert.Contains(t, lines[2], "mypod1")
}

func TestRenderURL(t *testing.T) {
	file := writePods(t)

	_, stderr, err := execute(t, "render", "--data", file, "--url", "/pods?foo_p=2&foo_rows=25&other=x", "--prefix", "foo")
	require.NoError(t, err)
	assert.Equal(t, "/pods?foo_p=1&foo_rows=25&other=x\n", stderr, "page clamped to the only page")

	stdout, stderr, err := execute(t, "render", "--data", file, "--rows", "50", "--page", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "50 rows per page")
	assert.Equal(t, "/?p=1&rows=50\n", stderr)

	_, _, err = execute(t, "render", "--data", file, "--url", "%%")
	require.Error(t, err)
}

func TestRenderFormats(t *testing.T) {
	file := writePods(t)
	columns := "--columns=metadata.name,restarts"

	stdout, _, err := execute(t, "render", "--data", file, columns, "--format", "csv", "--sort", "1")
	require.NoError(t, err)
	assert.Equal(t, "metadata.name;restarts\r\nmypod;2\r\nmypod1;10\r\nmypod2;0\r\nmypod3;7\r\n", stdout)

	stdout, _, err = execute(t, "render", "--data", file, columns, "--format", "html", "--url", "/pods")
	require.NoError(t, err)
	assert.Contains(t, stdout, "<table")
	assert.Contains(t, stdout, "mypod3")
	assert.Contains(t, stdout, "/pods?p=1&amp;rows=25")

	stdout, _, err = execute(t, "render", "--data", file, columns, "--format", "xlsx")
	require.NoError(t, err)
	f, err := excelize.OpenReader(strings.NewReader(stdout))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"metadata.name", "restarts"}, rows[0])

	_, _, err = execute(t, "render", "--data", file, "--format", "pdf")
	require.ErrorContains(t, err, "unsupported --format")
}

func TestRenderErrors(t *testing.T) {
	_, _, err := execute(t, "render")
	require.Error(t, err, "--data is required")

	_, _, err = execute(t, "render", "--data", filepath.Join(t.TempDir(), "pods.txt"))
	require.Error(t, err)

	_, _, err = execute(t, "render", "--data", writePods(t), "--filter", "unknown = 1")
	require.Error(t, err)
}

func TestRenderConfig(t *testing.T) {
	config := filepath.Join(t.TempDir(), "simpletable.yaml")
	require.NoError(t, os.WriteFile(config, []byte("rows_per_page: [2, 4]\nprefix: pods\nempty_message: Nothing\n"), 0o600))
	file := writePods(t)

	stdout, stderr, err := execute(t, "--config", config, "render", "--data", file, "--columns=metadata.name")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1-2 of 4, page 1 of 2, 2 rows per page")
	assert.Equal(t, "/?pods_p=1&pods_rows=2\n", stderr)

	stdout, _, err = execute(t, "--config", config, "render", "--data", file, "--search", "nope")
	require.NoError(t, err)
	assert.Equal(t, "Nothing\n", stdout)
}

func TestLocales(t *testing.T) {
	t.Setenv("SIMPLETABLE_LOCALES", "en,de,cimode,ar")

	stdout, _, err := execute(t, "locales")
	require.NoError(t, err)
	assert.Equal(t, "*  en  en  ltr\n   de  de  ltr\n   ar  ar  rtl\n", stdout)

	stdout, _, err = execute(t, "locales", "--full-names", "--accept", "de-AT,de;q=0.9")
	require.NoError(t, err)
	assert.Contains(t, stdout, "*  de  Deutsch  ltr")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "simpletable dev\n", stdout)
}

func TestRenderAll(t *testing.T) {
	file := writePods(t)

	config := filepath.Join(t.TempDir(), "simpletable.yaml")
	require.NoError(t, os.WriteFile(config, []byte("rows_per_page: [3]\n"), 0o600))

	stdout, stderr, err := execute(t, "--config", config, "render", "--data", file, "--columns=metadata.name", "--sort", "-1", "--all")
	require.NoError(t, err)
	assert.Equal(t, "Page 1 of 2\n"+
		"#  metadata.name\n"+
		"1  mypod3\n"+
		"2  mypod2\n"+
		"3  mypod1\n"+
		"Page 2 of 2\n"+
		"#  metadata.name\n"+
		"4  mypod\n", stdout)
	assert.Equal(t, "/?p=1&rows=3\n", stderr)

	stdout, _, err = execute(t, "render", "--data", file, "--columns=metadata.name", "--format", "csv", "--all", "--search", "default")
	require.NoError(t, err)
	assert.Equal(t, "metadata.name\r\nmypod\r\nmypod2\r\n", stdout)
}
