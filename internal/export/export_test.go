package export

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	arrowadapter "github.com/magpierre/datagrid/adapters/arrow"
	csvadapter "github.com/magpierre/datagrid/adapters/csv"
	"github.com/magpierre/datagrid/datatable"
	"github.com/magpierre/datagrid/internal/loader"
)

var (
	testColumns = []datatable.Column[datatable.Record]{
		{Key: "name", Label: "Name"},
		{Key: "qty", Label: "Qty", Sortable: true},
		{Key: "price", Label: "Price", Sortable: true},
	}
	testRows = []datatable.Record{
		{"name": "washer", "qty": 40, "price": 0.05},
		{"name": "bolt", "qty": 12, "price": 0.25},
		{"name": "nut, hex", "qty": 3, "price": 1.5},
	}
)

func TestWriteCSV_SelectedRows(t *testing.T) {
	selected := datatable.ResolveSelection(testRows, datatable.NewSelection(2, 1))
	table := arrowadapter.ToArrowTable(testColumns, selected, nil)
	defer table.Release()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(table, &buf))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "selected_rows_csv", buf.Bytes())
}

func TestRows_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.json")
	require.NoError(t, Rows(FormatJSON, testColumns, testRows, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(content, &got))
	require.Len(t, got, 3)
	assert.Equal(t, "washer", got[0]["name"])
	assert.Equal(t, float64(12), got[1]["qty"])
}

func TestRows_ParquetLoadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.parquet")
	require.NoError(t, Rows(FormatParquet, testColumns, testRows, path))

	ds, err := loader.LoadParquet(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "qty", "price"}, ds.ColumnKeys())
	require.Equal(t, 3, ds.RowCount())
	assert.Equal(t, 1.5, ds.Records[2]["price"])
}

func TestRows_Empty(t *testing.T) {
	err := Rows(FormatCSV, testColumns, nil, filepath.Join(t.TempDir(), "x.csv"))
	assert.ErrorIs(t, err, datatable.ErrExportFailed)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("out.JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)
	assert.Equal(t, ".json", f.Ext())

	_, err = FormatFromPath("out.xlsx")
	assert.ErrorIs(t, err, datatable.ErrUnsupportedFile)
}

func TestGridRows(t *testing.T) {
	g := datatable.NewGrid(testColumns, datatable.RecordField, datatable.DefaultConfig())
	g.SetCollection(testRows)
	g.SortBy("qty")

	t.Run("sorted when nothing selected", func(t *testing.T) {
		rows := GridRows(g)
		require.Len(t, rows, 3)
		assert.Equal(t, "nut, hex", rows[0]["name"])
		assert.Equal(t, "washer", rows[2]["name"])
	})

	t.Run("selection in source order", func(t *testing.T) {
		g.ToggleRow(2)
		g.ToggleRow(0)
		rows := GridRows(g)
		require.Len(t, rows, 2)
		assert.Equal(t, "washer", rows[0]["name"])
		assert.Equal(t, "nut, hex", rows[1]["name"])
	})
}

func TestRows_IntAndFloatColumnKeepsEveryValue(t *testing.T) {
	ds, err := csvadapter.NewFromReader("prices.csv", strings.NewReader("id,price\na1,10\n7,10.5\n"), csvadapter.DefaultConfig())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, Rows(FormatCSV, ds.Columns, ds.Records, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,price\na1,10.000000\n7,10.500000\n", string(content))
}

func TestRows_NumberAndStringColumnBecomesText(t *testing.T) {
	cols := []datatable.Column[datatable.Record]{{Key: "code"}}
	rows := []datatable.Record{{"code": 7}, {"code": "x7"}, {"code": nil}}

	path := filepath.Join(t.TempDir(), "codes.json")
	require.NoError(t, Rows(FormatJSON, cols, rows, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(content, &got))
	require.Len(t, got, 3)
	assert.Equal(t, "7", got[0]["code"])
	assert.Equal(t, "x7", got[1]["code"])
	assert.Nil(t, got[2]["code"])
}
