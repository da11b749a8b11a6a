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
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2/container"

	"github.com/magpierre/datagrid/datatable"
	"github.com/magpierre/datagrid/internal/config"
	"github.com/magpierre/datagrid/internal/script"
	"github.com/magpierre/datagrid/internal/summary"
)

// Data holds one open dataset and its view.
type Data struct {
	dataset *datatable.Dataset
	view    *GridView
	tab     *container.TabItem
}

// Dataset returns the loaded dataset.
func (d *Data) Dataset() *datatable.Dataset { return d.dataset }

// View returns the grid view.
func (d *Data) View() *GridView { return d.view }

// DataBrowser manages one tab per open dataset.
type DataBrowser struct {
	tabs           *container.DocTabs
	tabDataMap     map[*container.TabItem]*Data
	gridConfig     datatable.Config
	layout         *config.Layout
	printer        *summary.Printer
	logger         *slog.Logger
	statusCallback func(string)
}

// NewDataBrowser creates an empty browser. layout may be nil.
func NewDataBrowser(gridConfig datatable.Config, layout *config.Layout, printer *summary.Printer, logger *slog.Logger, statusCallback func(string)) *DataBrowser {
	t := &DataBrowser{
		tabs:           container.NewDocTabs(),
		tabDataMap:     make(map[*container.TabItem]*Data),
		gridConfig:     gridConfig,
		layout:         layout,
		printer:        printer,
		logger:         logger,
		statusCallback: statusCallback,
	}
	t.gridConfig.Logger = logger
	if layout != nil && layout.PageSize > 0 {
		t.gridConfig.Pagination = true
		t.gridConfig.PageSize = layout.PageSize
	}

	t.tabs.CloseIntercept = func(ti *container.TabItem) {
		delete(t.tabDataMap, ti)
		t.tabs.Remove(ti)

		if t.tabs.Selected() != nil {
			t.updateStatusForTab(t.tabs.Selected())
		} else {
			t.setStatus("Ready")
		}
	}
	t.tabs.OnSelected = t.updateStatusForTab
	return t
}

// Tabs returns the tab container.
func (t *DataBrowser) Tabs() *container.DocTabs {
	return t.tabs
}

// Current returns the data in the selected tab, or nil.
func (t *DataBrowser) Current() *Data {
	if ti := t.tabs.Selected(); ti != nil {
		return t.tabDataMap[ti]
	}
	return nil
}

// Open shows ds in a new tab, or replaces the collection of an open tab
// with the same name. The layout is applied to new tabs.
func (t *DataBrowser) Open(ds *datatable.Dataset) (*Data, error) {
	for ti, data := range t.tabDataMap {
		if data.dataset.Name == ds.Name {
			data.dataset = ds
			data.view.Grid().SetCollection(ds.Records)
			data.view.Refresh()
			t.tabs.Select(ti)
			return data, nil
		}
	}

	if renderers := t.layout.Apply(ds); len(renderers) > 0 {
		if err := script.BindRenderers(ds.Columns, renderers); err != nil {
			return nil, fmt.Errorf("layout for %s: %w", ds.Name, err)
		}
	}

	grid := datatable.NewGrid(ds.Columns, datatable.RecordField, t.gridConfig)
	grid.SetSortState(t.layout.SortState())
	grid.SetCollection(ds.Records)

	view := NewGridView(ds.Name, grid, t.printer)
	tab := container.NewTabItem(ds.Name, view.Content())
	data := &Data{dataset: ds, view: view, tab: tab}

	grid.OnSelectionChange(func(rows []datatable.Record) {
		t.logger.Debug("selection changed", "table", ds.Name, "selected", len(rows))
	})
	grid.OnRowClick(func(row datatable.DecoratedRow[datatable.Record]) {
		t.logger.Debug("row clicked", "table", ds.Name, "index", row.OriginalIndex)
	})
	view.OnChange(func() {
		if t.tabs.Selected() == tab {
			t.setStatus(view.Status())
		}
	})

	t.tabDataMap[tab] = data
	t.tabs.Append(tab)
	t.tabs.Select(tab)
	t.updateStatusForTab(tab)
	return data, nil
}

func (t *DataBrowser) updateStatusForTab(ti *container.TabItem) {
	if data, ok := t.tabDataMap[ti]; ok {
		t.setStatus(data.view.Status())
	}
}

func (t *DataBrowser) setStatus(text string) {
	if t.statusCallback != nil {
		t.statusCallback(text)
	}
}
