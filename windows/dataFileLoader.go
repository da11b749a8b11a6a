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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/datagrid/datatable"
	"github.com/magpierre/datagrid/internal/loader"
)

// dataFileExtensions are offered by the open dialog.
var dataFileExtensions = []string{".csv", ".parquet", ".json", ".share", ".txt"}

// showProgress shows a modal spinner and returns the function that hides
// it. The returned function must run on the UI goroutine.
func (t *MainWindow) showProgress(title string) func() {
	pbi := widget.NewProgressBarInfinite()
	di := dialog.NewCustomWithoutButtons(title, pbi, t.w)
	di.Resize(fyne.NewSize(300, 100))
	di.Show()
	pbi.Start()
	return func() {
		pbi.Stop()
		di.Hide()
	}
}

// OpenFile shows a file picker for data files and profiles.
func (t *MainWindow) OpenFile() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		t.LoadDataFile(path)
	}, t.w)
	fd.SetFilter(storage.NewExtensionFileFilter(dataFileExtensions))
	fd.Show()
}

// LoadDataFile loads path in the background and opens it in a tab. A Delta
// Sharing profile populates the navigation tree instead.
func (t *MainWindow) LoadDataFile(path string) {
	name := filepath.Base(path)
	t.SetStatus("Loading file: " + name)
	stop := t.showProgress(fmt.Sprintf("Loading %s...", name))

	go func() {
		content, err := readHead(path)
		if err == nil && loader.DetectFileType(path, content) == loader.FileTypeDeltaSharingProfile {
			var profile []byte
			profile, err = os.ReadFile(path)
			fyne.Do(func() {
				stop()
				if err != nil {
					t.showLoadError(name, err)
				}
			})
			if err != nil {
				return
			}
			t.openProfile(string(profile))
			return
		}

		var ds *datatable.Dataset
		if err == nil {
			ds, err = loader.LoadFile(context.Background(), path)
		}
		fyne.Do(func() {
			stop()
			if err != nil {
				t.showLoadError(name, err)
				return
			}
			t.openDataset(ds)
		})
	}()
}

// loadDeltaTable downloads a shared table and opens it in a tab.
func (t *MainWindow) loadDeltaTable(ref loader.TableRef) {
	t.SetStatus("Loading table data: " + ref.String())
	stop := t.showProgress(fmt.Sprintf("Loading %s...", ref.Name))
	profile := t.profile

	go func() {
		ctx, cancel := createTimeoutContext(t.cfg.APITimeout)
		defer cancel()
		ds, err := loader.LoadDeltaTable(ctx, t.logger, profile, ref)
		fyne.Do(func() {
			stop()
			if err != nil {
				t.showLoadError(ref.String(), err)
				return
			}
			t.openDataset(ds)
		})
	}()
}

// openProfile lists the tables of a Delta Sharing profile into the tree.
// It blocks on the network and must not run on the UI goroutine.
func (t *MainWindow) openProfile(profile string) {
	fyne.Do(func() { t.SetStatus("Loading profile...") })

	err := t.tree.LoadShares(profile, t.cfg.APITimeout)
	fyne.Do(func() {
		if err != nil {
			t.logger.Error("failed to load profile", "error", err)
			t.SetStatus("Error connecting to Delta Sharing")
			dialog.ShowError(err, t.w)
			return
		}
		t.profile = profile
		t.treeWidget.Refresh()
		t.SetStatus("Profile loaded successfully")
	})
}

func (t *MainWindow) openDataset(ds *datatable.Dataset) {
	if _, err := t.browser.Open(ds); err != nil {
		t.showLoadError(ds.Name, err)
		return
	}
	t.logger.Info("opened dataset", "name", ds.Name, "rows", ds.RowCount(), "columns", ds.ColumnCount(),
		"source", ds.Metadata["source"])
}

func (t *MainWindow) showLoadError(name string, err error) {
	t.logger.Error("failed to load", "name", name, "error", err)
	t.SetStatus("Error loading " + name)
	dialog.ShowError(err, t.w)
}

// readHead reads enough of a file to tell a profile from JSON data.
func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, 64*1024)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}
