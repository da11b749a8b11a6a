// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package windows

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/datagrid/datatable"
	"github.com/magpierre/datagrid/internal/summary"
)

const (
	defaultColumnWidth   = 140
	selectionColumnWidth = 40
	noDataText           = "No data available"
)

// GridView shows one Grid as a Fyne table with sortable headers,
// selection boxes and a pager.
type GridView struct {
	name    string
	grid    *datatable.Grid[datatable.Record]
	printer *summary.Printer

	table      *widget.Table
	emptyLabel *widget.Label
	pageLabel  *widget.Label
	prevButton *widget.Button
	nextButton *widget.Button
	footer     *fyne.Container
	content    fyne.CanvasObject

	// Snapshot the table callbacks draw from. Refreshed after every action.
	proj datatable.Projection[datatable.Record]
	sel  datatable.Selection
	cols []datatable.Column[datatable.Record]

	onChange func()
}

// NewGridView builds the view. Call Refresh after changing the grid from
// outside the view.
func NewGridView(name string, grid *datatable.Grid[datatable.Record], printer *summary.Printer) *GridView {
	gv := &GridView{
		name:    name,
		grid:    grid,
		printer: printer,
	}

	gv.table = widget.NewTable(gv.tableSize, gv.createCell, gv.updateCell)
	gv.table.ShowHeaderRow = true
	gv.table.CreateHeader = gv.createHeader
	gv.table.UpdateHeader = gv.updateHeader
	gv.table.OnSelected = func(id widget.TableCellID) {
		gv.table.Unselect(id)
		if id.Row >= 0 {
			gv.grid.ClickRow(id.Row)
		}
	}

	gv.emptyLabel = widget.NewLabel(noDataText)
	gv.emptyLabel.TextStyle = fyne.TextStyle{Italic: true}
	gv.emptyLabel.Hide()

	gv.pageLabel = widget.NewLabel("")
	gv.prevButton = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), gv.PrevPage)
	gv.nextButton = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), gv.NextPage)
	gv.footer = container.NewHBox(gv.prevButton, gv.pageLabel, gv.nextButton)

	gv.content = container.NewBorder(nil, container.NewCenter(gv.footer), nil, nil,
		container.NewStack(gv.table, container.NewCenter(gv.emptyLabel)))

	gv.Refresh()
	return gv
}

// Content returns the canvas object to place in a window.
func (gv *GridView) Content() fyne.CanvasObject {
	return gv.content
}

// Grid returns the grid behind the view.
func (gv *GridView) Grid() *datatable.Grid[datatable.Record] {
	return gv.grid
}

// OnChange registers fn to run after each refresh.
func (gv *GridView) OnChange(fn func()) {
	gv.onChange = fn
}

// Status describes the view for a status bar.
func (gv *GridView) Status() string {
	return summary.Status(gv.printer, gv.name, len(gv.cols), gv.proj, gv.sel.Len())
}

// Refresh recomputes the projection and redraws.
func (gv *GridView) Refresh() {
	gv.proj = gv.grid.Projection()
	gv.sel = gv.grid.Selection()
	gv.cols = gv.grid.Columns()

	offset := gv.selectionOffset()
	if offset == 1 {
		gv.table.SetColumnWidth(0, selectionColumnWidth)
	}
	for i, c := range gv.cols {
		gv.table.SetColumnWidth(i+offset, columnWidth(c.Width))
	}
	gv.table.Refresh()

	if gv.proj.Empty() {
		gv.emptyLabel.Show()
	} else {
		gv.emptyLabel.Hide()
	}

	if text := gv.printer.Footer(gv.proj.PageCount, gv.proj.CurrentPage, gv.proj.TotalRows); text != "" {
		gv.pageLabel.SetText(text)
		setEnabled(gv.prevButton, gv.proj.CurrentPage > 1)
		setEnabled(gv.nextButton, gv.proj.CurrentPage < gv.proj.PageCount)
		gv.footer.Show()
	} else {
		gv.footer.Hide()
	}

	if gv.onChange != nil {
		gv.onChange()
	}
}

// SortBy applies a header click.
func (gv *GridView) SortBy(key string) {
	gv.grid.SortBy(key)
	gv.Refresh()
}

// NextPage moves one page forward.
func (gv *GridView) NextPage() {
	gv.grid.NextPage()
	gv.Refresh()
}

// PrevPage moves one page back.
func (gv *GridView) PrevPage() {
	gv.grid.PrevPage()
	gv.Refresh()
}

func (gv *GridView) toggleRow(originalIndex int) {
	if gv.grid.ToggleRow(originalIndex) {
		gv.Refresh()
	}
}

func (gv *GridView) toggleAll(checked bool) {
	if gv.grid.ToggleAllOnPage(checked) {
		gv.Refresh()
	}
}

func (gv *GridView) selectionOffset() int {
	if gv.grid.Config().Selectable {
		return 1
	}
	return 0
}

func (gv *GridView) tableSize() (int, int) {
	return len(gv.proj.VisibleRows), len(gv.cols) + gv.selectionOffset()
}

func (gv *GridView) createCell() fyne.CanvasObject {
	label := widget.NewLabel("")
	label.Truncation = fyne.TextTruncateEllipsis
	return container.NewStack(label, widget.NewCheck("", nil))
}

func (gv *GridView) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	box := obj.(*fyne.Container)
	label := box.Objects[0].(*widget.Label)
	check := box.Objects[1].(*widget.Check)

	if id.Row < 0 || id.Row >= len(gv.proj.VisibleRows) {
		return
	}
	row := gv.proj.VisibleRows[id.Row]

	offset := gv.selectionOffset()
	if offset == 1 && id.Col == 0 {
		label.Hide()
		check.Show()
		setCheck(check, gv.sel.Has(row.OriginalIndex), func(bool) {
			gv.toggleRow(row.OriginalIndex)
		})
		return
	}

	check.Hide()
	label.Show()
	col := id.Col - offset
	if col < 0 || col >= len(gv.cols) {
		label.SetText("")
		return
	}
	label.SetText(datatable.CellText(row.Value, gv.cols[col], gv.grid.Field()))
}

func (gv *GridView) createHeader() fyne.CanvasObject {
	button := widget.NewButton("", nil)
	button.Importance = widget.LowImportance
	button.Alignment = widget.ButtonAlignLeading
	return container.NewStack(button, widget.NewCheck("", nil))
}

func (gv *GridView) updateHeader(id widget.TableCellID, obj fyne.CanvasObject) {
	box := obj.(*fyne.Container)
	button := box.Objects[0].(*widget.Button)
	check := box.Objects[1].(*widget.Check)

	offset := gv.selectionOffset()
	if offset == 1 && id.Col == 0 {
		button.Hide()
		cfg := gv.grid.Config()
		if !cfg.MultiSelect {
			check.Hide()
			return
		}
		check.Show()
		setCheck(check, gv.proj.IsAllVisibleSelected, gv.toggleAll)
		return
	}

	check.Hide()
	button.Show()
	col := id.Col - offset
	if col < 0 || col >= len(gv.cols) {
		button.SetText("")
		button.OnTapped = nil
		return
	}
	c := gv.cols[col]
	button.SetText(summary.HeaderLabel(c.Label, c.Key, gv.proj.Sort))
	if c.Sortable {
		button.OnTapped = func() { gv.SortBy(c.Key) }
	} else {
		button.OnTapped = nil
	}
}

// setCheck updates a recycled checkbox without firing the previous handler.
func setCheck(check *widget.Check, checked bool, onChanged func(bool)) {
	check.OnChanged = nil
	check.SetChecked(checked)
	check.OnChanged = onChanged
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

// columnWidth reads a width hint like "120px" or "120".
func columnWidth(hint string) float32 {
	w, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(hint), "px"), 32)
	if err != nil || w <= 0 {
		return defaultColumnWidth
	}
	return float32(w)
}
