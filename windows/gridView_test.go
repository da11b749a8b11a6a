package windows

import (
	"fmt"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/magpierre/datagrid/datatable"
	"github.com/magpierre/datagrid/internal/summary"
)

func testColumns() []datatable.Column[datatable.Record] {
	return []datatable.Column[datatable.Record]{
		{Key: "host", Label: "Host", Sortable: true},
		{Key: "rtt", Label: "RTT", Sortable: true, Width: "80px"},
		{Key: "note", Label: "Note"},
	}
}

func testRecords(n int) []datatable.Record {
	rows := make([]datatable.Record, n)
	for i := range rows {
		rows[i] = datatable.Record{"host": fmt.Sprintf("h%02d", i), "rtt": (i * 7) % 25, "note": "-"}
	}
	return rows
}

func newTestView(t *testing.T, n int, cfg datatable.Config) *GridView {
	t.Helper()
	test.NewTempApp(t)

	g := datatable.NewGrid(testColumns(), datatable.RecordField, cfg)
	g.SetCollection(testRecords(n))
	return NewGridView("pings", g, summary.NewPrinter(language.English))
}

func headerButton(t *testing.T, obj fyne.CanvasObject) *widget.Button {
	t.Helper()
	b, ok := obj.(*fyne.Container).Objects[0].(*widget.Button)
	require.True(t, ok)
	return b
}

func headerCheck(t *testing.T, obj fyne.CanvasObject) *widget.Check {
	t.Helper()
	c, ok := obj.(*fyne.Container).Objects[1].(*widget.Check)
	require.True(t, ok)
	return c
}

func cellLabel(t *testing.T, obj fyne.CanvasObject) *widget.Label {
	t.Helper()
	l, ok := obj.(*fyne.Container).Objects[0].(*widget.Label)
	require.True(t, ok)
	return l
}

func cellCheck(t *testing.T, obj fyne.CanvasObject) *widget.Check {
	t.Helper()
	return headerCheck(t, obj)
}

func TestGridView_Pager(t *testing.T) {
	gv := newTestView(t, 25, datatable.DefaultConfig())

	assert.True(t, gv.footer.Visible())
	assert.Equal(t, "Page 1 of 3 | Total 25 items", gv.pageLabel.Text)
	assert.True(t, gv.prevButton.Disabled())

	test.Tap(gv.nextButton)
	test.Tap(gv.nextButton)
	assert.Equal(t, "Page 3 of 3 | Total 25 items", gv.pageLabel.Text)
	assert.True(t, gv.nextButton.Disabled())
	assert.Len(t, gv.proj.VisibleRows, 5)

	test.Tap(gv.prevButton)
	assert.Equal(t, 2, gv.proj.CurrentPage)
}

func TestGridView_SinglePageHidesFooter(t *testing.T) {
	gv := newTestView(t, 3, datatable.DefaultConfig())
	assert.False(t, gv.footer.Visible())
	assert.False(t, gv.emptyLabel.Visible())
}

func TestGridView_Empty(t *testing.T) {
	gv := newTestView(t, 0, datatable.DefaultConfig())
	assert.True(t, gv.emptyLabel.Visible())
	assert.Equal(t, noDataText, gv.emptyLabel.Text)

	rows, cols := gv.tableSize()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 4, cols)
}

func TestGridView_HeaderSort(t *testing.T) {
	gv := newTestView(t, 25, datatable.DefaultConfig())

	header := gv.createHeader()
	gv.updateHeader(widget.TableCellID{Row: -1, Col: 2}, header)
	button := headerButton(t, header)
	assert.Equal(t, "RTT", button.Text)

	test.Tap(button)
	gv.updateHeader(widget.TableCellID{Row: -1, Col: 2}, header)
	assert.Equal(t, "RTT ↑", button.Text)
	assert.Equal(t, 0, gv.proj.VisibleRows[0].Value["rtt"])

	test.Tap(button)
	gv.updateHeader(widget.TableCellID{Row: -1, Col: 2}, header)
	assert.Equal(t, "RTT ↓", button.Text)
	assert.Equal(t, 24, gv.proj.VisibleRows[0].Value["rtt"])
}

func TestGridView_UnsortableHeader(t *testing.T) {
	gv := newTestView(t, 3, datatable.DefaultConfig())

	header := gv.createHeader()
	gv.updateHeader(widget.TableCellID{Row: -1, Col: 3}, header)
	assert.Nil(t, headerButton(t, header).OnTapped)
}

func TestGridView_RowCheckbox(t *testing.T) {
	gv := newTestView(t, 25, datatable.DefaultConfig())

	var notified [][]datatable.Record
	gv.Grid().OnSelectionChange(func(rows []datatable.Record) { notified = append(notified, rows) })

	cell := gv.createCell()
	gv.updateCell(widget.TableCellID{Row: 1, Col: 0}, cell)
	check := cellCheck(t, cell)
	require.True(t, check.Visible())
	assert.False(t, check.Checked)

	test.Tap(check)
	require.Len(t, notified, 1)
	assert.Equal(t, "h01", notified[0][0]["host"])
	assert.Contains(t, gv.Status(), "1 selected")

	// A recycled cell must not toggle the row it showed before.
	gv.updateCell(widget.TableCellID{Row: 2, Col: 0}, cell)
	assert.False(t, check.Checked)
	assert.Len(t, notified, 1)
}

func TestGridView_SelectAllOnPage(t *testing.T) {
	gv := newTestView(t, 25, datatable.DefaultConfig())

	header := gv.createHeader()
	gv.updateHeader(widget.TableCellID{Row: -1, Col: 0}, header)
	check := headerCheck(t, header)
	require.True(t, check.Visible())

	test.Tap(check)
	assert.Equal(t, 10, gv.Grid().Selection().Len())
	assert.True(t, gv.proj.IsAllVisibleSelected)

	test.Tap(gv.nextButton)
	gv.updateHeader(widget.TableCellID{Row: -1, Col: 0}, header)
	assert.False(t, check.Checked)
}

func TestGridView_SingleSelectHasNoSelectAll(t *testing.T) {
	cfg := datatable.DefaultConfig()
	cfg.MultiSelect = false
	gv := newTestView(t, 5, cfg)

	header := gv.createHeader()
	gv.updateHeader(widget.TableCellID{Row: -1, Col: 0}, header)
	assert.False(t, headerCheck(t, header).Visible())
}

func TestGridView_NotSelectable(t *testing.T) {
	cfg := datatable.DefaultConfig()
	cfg.Selectable = false
	gv := newTestView(t, 5, cfg)

	_, cols := gv.tableSize()
	assert.Equal(t, 3, cols)

	cell := gv.createCell()
	gv.updateCell(widget.TableCellID{Row: 0, Col: 0}, cell)
	assert.Equal(t, "h00", cellLabel(t, cell).Text)
}

func TestGridView_RowClick(t *testing.T) {
	gv := newTestView(t, 5, datatable.DefaultConfig())

	var clicked []int
	gv.Grid().OnRowClick(func(r datatable.DecoratedRow[datatable.Record]) {
		clicked = append(clicked, r.OriginalIndex)
	})
	gv.table.OnSelected(widget.TableCellID{Row: 3, Col: 1})
	assert.Equal(t, []int{3}, clicked)
}

func TestColumnWidth(t *testing.T) {
	assert.Equal(t, float32(120), columnWidth("120px"))
	assert.Equal(t, float32(90), columnWidth("90"))
	assert.Equal(t, float32(defaultColumnWidth), columnWidth(""))
	assert.Equal(t, float32(defaultColumnWidth), columnWidth("wide"))
}
