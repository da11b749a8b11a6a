package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/datagrid/datatable"
)

func writePings(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("host,rtt\n")
	for i := range n {
		fmt.Fprintf(&b, "h%02d,%d\n", i, (i*7)%25)
	}
	path := filepath.Join(t.TempDir(), "pings.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func runCat(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), err
}

func TestRun_SortedFirstPage(t *testing.T) {
	out, err := runCat(t, "--sort", "rtt:desc", writePings(t, 25))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 13)
	assert.Equal(t, "Table pings.csv (2 columns x 25 rows) | Sorted: rtt ↓", lines[0])
	assert.Contains(t, lines[1], "rtt ↓")
	assert.Contains(t, lines[2], "h07")
	assert.Contains(t, lines[12], "Page 1 of 3 | Total 25 items")
}

func TestRun_PageIsClamped(t *testing.T) {
	out, err := runCat(t, "--page", "9", "--page-size", "20", writePings(t, 25))
	require.NoError(t, err)

	assert.Contains(t, out, "Page 2 of 2 | Total 25 items")
	assert.Contains(t, out, "h24")
	assert.NotContains(t, out, "h00")
}

func TestRun_SelectAndExport(t *testing.T) {
	target := filepath.Join(t.TempDir(), "picked.csv")
	out, err := runCat(t, "--select", "3,1", "--export", target, writePings(t, 25))
	require.NoError(t, err)
	assert.Contains(t, out, "| 2 selected")
	assert.Contains(t, out, "[x] h01")

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []string{"host,rtt", "h01,7", "h03,21"},
		strings.Split(strings.TrimSpace(string(content)), "\n"))
}

func TestRun_SingleSelectKeepsLast(t *testing.T) {
	out, err := runCat(t, "--single-select", "--select", "1,4", writePings(t, 5))
	require.NoError(t, err)

	assert.Contains(t, out, "| 1 selected")
	assert.Contains(t, out, "[x] h04")
	assert.NotContains(t, out, "[x] h01")
}

func TestRun_SelectPage(t *testing.T) {
	out, err := runCat(t, "--select-page", "--page", "2", writePings(t, 25))
	require.NoError(t, err)
	assert.Contains(t, out, "| 10 selected")
}

func TestRun_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	_, err := runCat(t, path)
	assert.ErrorIs(t, err, datatable.ErrEmptyData)
}

func TestRun_Layout(t *testing.T) {
	layout := filepath.Join(t.TempDir(), "pings.yaml")
	require.NoError(t, os.WriteFile(layout, []byte(`
columns:
  - key: rtt
    label: RTT
    render: fmt.Sprintf("%v ms", row["rtt"])
sort:
  key: rtt
page_size: 5
`), 0o644))

	out, err := runCat(t, "--layout", layout, writePings(t, 25))
	require.NoError(t, err)

	assert.Contains(t, out, "(1 columns x 25 rows)")
	assert.Contains(t, out, "RTT ↑")
	assert.Contains(t, out, "0 ms")
	assert.NotContains(t, out, "h00")
	assert.Contains(t, out, "Page 1 of 5")
}

func TestRun_NeedsSource(t *testing.T) {
	_, err := runCat(t)
	assert.ErrorIs(t, err, datatable.ErrNoDataSource)

	_, err = runCat(t, "--table", "a.b.c")
	assert.ErrorIs(t, err, datatable.ErrNoDataSource)
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-h"}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "gridcat [flags] FILE")
	assert.Contains(t, stderr.String(), "--select-page")
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, datatable.SortState{Key: "rtt"}, parseSort("rtt"))
	assert.Equal(t, datatable.SortState{Key: "rtt", Direction: datatable.SortDescending}, parseSort("rtt:desc"))
}
