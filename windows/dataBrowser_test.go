package windows

import (
	"io"
	"log/slog"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/magpierre/datagrid/datatable"
	"github.com/magpierre/datagrid/internal/config"
	"github.com/magpierre/datagrid/internal/summary"
)

func testDataset(name string, n int) *datatable.Dataset {
	return &datatable.Dataset{
		Name:     name,
		Columns:  testColumns(),
		Records:  testRecords(n),
		Metadata: datatable.Metadata{"source": "test"},
	}
}

func newTestBrowser(t *testing.T, layout *config.Layout) (*DataBrowser, *[]string) {
	t.Helper()
	test.NewTempApp(t)

	var status []string
	b := NewDataBrowser(datatable.DefaultConfig(), layout, summary.NewPrinter(language.English),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		func(s string) { status = append(status, s) })
	return b, &status
}

func TestDataBrowser_Open(t *testing.T) {
	b, status := newTestBrowser(t, nil)
	assert.Nil(t, b.Current())

	data, err := b.Open(testDataset("pings", 25))
	require.NoError(t, err)

	assert.Same(t, data, b.Current())
	assert.Len(t, b.Tabs().Items, 1)
	require.NotEmpty(t, *status)
	assert.Equal(t, "Table pings (3 columns x 25 rows)", (*status)[len(*status)-1])

	data.View().SortBy("rtt")
	assert.Equal(t, "Table pings (3 columns x 25 rows) | Sorted: rtt ↑", (*status)[len(*status)-1])
}

func TestDataBrowser_ReopenReplacesCollection(t *testing.T) {
	b, _ := newTestBrowser(t, nil)

	data, err := b.Open(testDataset("pings", 25))
	require.NoError(t, err)
	data.View().NextPage()
	data.View().toggleRow(12)

	again, err := b.Open(testDataset("pings", 5))
	require.NoError(t, err)

	assert.Same(t, data, again)
	assert.Len(t, b.Tabs().Items, 1)
	assert.Equal(t, 1, data.View().Grid().PageState().CurrentPage)
	assert.Equal(t, 0, data.View().Grid().Selection().Len())
	assert.Equal(t, 5, data.Dataset().RowCount())
}

func TestDataBrowser_CloseTab(t *testing.T) {
	b, status := newTestBrowser(t, nil)

	_, err := b.Open(testDataset("a", 3))
	require.NoError(t, err)
	_, err = b.Open(testDataset("b", 3))
	require.NoError(t, err)
	require.Len(t, b.Tabs().Items, 2)

	b.Tabs().CloseIntercept(b.Tabs().Items[1])
	b.Tabs().CloseIntercept(b.Tabs().Items[0])

	assert.Empty(t, b.Tabs().Items)
	assert.Nil(t, b.Current())
	assert.Equal(t, "Ready", (*status)[len(*status)-1])
}

func TestDataBrowser_Layout(t *testing.T) {
	layout, err := config.ParseLayout([]byte(`
columns:
  - key: rtt
    label: Round trip
    sortable: true
    render: fmt.Sprintf("%v ms", row["rtt"])
  - key: host
sort: {key: rtt, direction: desc}
page_size: 5
`))
	require.NoError(t, err)
	b, _ := newTestBrowser(t, layout)

	data, err := b.Open(testDataset("pings", 25))
	require.NoError(t, err)

	grid := data.View().Grid()
	assert.Equal(t, 5, grid.PageState().PageSize)
	assert.Equal(t, datatable.SortState{Key: "rtt", Direction: datatable.SortDescending}, grid.SortState())

	p := grid.Projection()
	require.Len(t, p.VisibleRows, 5)
	assert.Equal(t, "24 ms", datatable.CellText(p.VisibleRows[0].Value, grid.Columns()[0], grid.Field()))
}

func TestDataBrowser_BadLayoutRenderer(t *testing.T) {
	layout, err := config.ParseLayout([]byte("columns:\n  - key: rtt\n    render: row[\n"))
	require.NoError(t, err)
	b, _ := newTestBrowser(t, layout)

	_, err = b.Open(testDataset("pings", 3))
	assert.ErrorIs(t, err, datatable.ErrInvalidRenderer)
}
