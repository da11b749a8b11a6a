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

// Package loader turns data files and Delta Sharing tables into grid
// datasets.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	arrowadapter "github.com/magpierre/datagrid/adapters/arrow"
	csvadapter "github.com/magpierre/datagrid/adapters/csv"
	"github.com/magpierre/datagrid/datatable"
)

// FileType represents the type of data file
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeParquet
	FileTypeJSON
	FileTypeDeltaSharingProfile
)

// String returns the file type name.
func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "CSV"
	case FileTypeParquet:
		return "Parquet"
	case FileTypeJSON:
		return "JSON"
	case FileTypeDeltaSharingProfile:
		return "Delta Sharing profile"
	default:
		return "unknown"
	}
}

// DetectFileType determines the type of file based on extension and content
func DetectFileType(filePath string, content []byte) FileType {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv", ".tsv":
		return FileTypeCSV
	case ".parquet":
		return FileTypeParquet
	case ".json", ".share", ".txt":
		if IsDeltaSharingProfile(content) {
			return FileTypeDeltaSharingProfile
		}
		return FileTypeJSON
	default:
		return FileTypeUnknown
	}
}

// IsDeltaSharingProfile checks if the content looks like a Delta Sharing profile
func IsDeltaSharingProfile(content []byte) bool {
	var profile map[string]any
	if err := json.Unmarshal(content, &profile); err != nil {
		return false
	}

	_, hasVersion := profile["shareCredentialsVersion"]
	_, hasEndpoint := profile["endpoint"]
	_, hasBearerToken := profile["bearerToken"]

	return hasVersion && hasEndpoint && hasBearerToken
}

// LoadFile loads a CSV, Parquet or JSON file into a dataset.
func LoadFile(ctx context.Context, filePath string) (*datatable.Dataset, error) {
	var head []byte
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == ".json" || ext == ".share" || ext == ".txt" {
		content, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		head = content
	}

	switch ft := DetectFileType(filePath, head); ft {
	case FileTypeCSV:
		return LoadCSV(filePath)
	case FileTypeParquet:
		return LoadParquet(ctx, filePath)
	case FileTypeJSON:
		return LoadJSON(filepath.Base(filePath), head)
	default:
		return nil, fmt.Errorf("%s (%s): %w", filepath.Base(filePath), ft, datatable.ErrUnsupportedFile)
	}
}

// LoadCSV loads a CSV file, detecting its separator.
func LoadCSV(filePath string) (*datatable.Dataset, error) {
	ds, err := csvadapter.NewFromFile(filePath, csvadapter.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to load CSV file: %w", err)
	}
	return ds, nil
}

// LoadParquet reads a Parquet file through Arrow.
func LoadParquet(ctx context.Context, filePath string) (*datatable.Dataset, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(parquet.NewReaderProperties(nil)))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	mem := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer table.Release()

	ds, err := arrowadapter.NewFromArrowTable(filepath.Base(filePath), table)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow data source: %w", err)
	}
	ds.Metadata["source"] = "parquet"
	return ds, nil
}

// LoadJSON parses an array of objects, or a single object, into a dataset.
// Columns are the keys of the first object in sorted order followed by keys
// first seen in later objects.
func LoadJSON(name string, content []byte) (*datatable.Dataset, error) {
	var data []map[string]any
	if err := decodeJSON(content, &data); err != nil {
		var single map[string]any
		if err := decodeJSON(content, &single); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		data = []map[string]any{single}
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%s has no records: %w", name, datatable.ErrEmptyData)
	}

	ds := &datatable.Dataset{
		Name:     name,
		Records:  make([]datatable.Record, len(data)),
		Metadata: datatable.Metadata{"source": "json"},
	}
	seen := make(map[string]bool)
	for i, obj := range data {
		rec := make(datatable.Record, len(obj))
		for k, v := range obj {
			rec[k] = jsonValue(v)
		}
		ds.Records[i] = rec

		for _, k := range slices.Sorted(maps.Keys(obj)) {
			if seen[k] {
				continue
			}
			seen[k] = true
			ds.Columns = append(ds.Columns, datatable.Column[datatable.Record]{
				Key: k, Label: k, Sortable: true,
			})
		}
	}

	return ds, nil
}

func decodeJSON(content []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	return dec.Decode(v)
}

// jsonValue turns json.Number into int64 or float64 so numbers sort
// numerically.
func jsonValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
