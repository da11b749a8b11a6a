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

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/magpierre/datagrid/internal/export"
)

// exportData asks for a target file and writes the current tab to it. The
// format follows the chosen file extension.
func (t *MainWindow) exportData() {
	data := t.browser.Current()
	if data == nil {
		dialog.ShowInformation("Export", "Open a table first", t.w)
		return
	}
	grid := data.View().Grid()

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if writer == nil {
			return
		}
		filePath := writer.URI().Path()
		writer.Close()

		format, err := export.FormatFromPath(filePath)
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}

		rows := export.GridRows(grid)
		stop := t.showProgress("Exporting...")
		go func() {
			err := export.Rows(format, grid.Columns(), rows, filePath)
			fyne.Do(func() {
				stop()
				if err != nil {
					t.logger.Error("export failed", "path", filePath, "error", err)
					dialog.ShowError(fmt.Errorf("export failed: %w", err), t.w)
					return
				}
				t.logger.Info("exported rows", "path", filePath, "rows", len(rows), "format", format.Ext())
				dialog.ShowInformation("Export Successful",
					fmt.Sprintf("%d rows exported to:\n%s", len(rows), filePath), t.w)
			})
		}()
	}, t.w)

	saveDialog.SetFilter(storage.NewExtensionFileFilter([]string{
		export.FormatCSV.Ext(), export.FormatParquet.Ext(), export.FormatJSON.Ext(),
	}))
	saveDialog.SetFileName(cleanFilename(data.Dataset().Name) + export.FormatCSV.Ext())
	saveDialog.Show()
}
