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

// Package export writes grid rows to Parquet, CSV and JSON files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	arrowadapter "github.com/magpierre/datagrid/adapters/arrow"
	"github.com/magpierre/datagrid/datatable"
)

// Format represents the supported export formats
type Format int

const (
	// FormatParquet writes Snappy-compressed Parquet.
	FormatParquet Format = iota
	// FormatCSV writes comma-separated text with a header line.
	FormatCSV
	// FormatJSON writes an array of objects keyed by column.
	FormatJSON
)

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	switch f {
	case FormatParquet:
		return ".parquet"
	case FormatJSON:
		return ".json"
	default:
		return ".csv"
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return FormatParquet, nil
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%s: %w", path, datatable.ErrUnsupportedFile)
	}
}

// GridRows returns what an export of g writes: the selected rows in source
// order, or every row in the current sort order when nothing is selected.
func GridRows(g *datatable.Grid[datatable.Record]) []datatable.Record {
	if selected := g.Selected(); len(selected) > 0 {
		return selected
	}
	return g.SortedRows()
}

// Rows writes rows to filePath in the given format, with one field per
// column in column order.
func Rows(format Format, cols []datatable.Column[datatable.Record], rows []datatable.Record, filePath string) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: no data to export", datatable.ErrExportFailed)
	}

	table := arrowadapter.ToArrowTable(cols, rows, nil)
	defer table.Release()

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("%w: failed to create file: %w", datatable.ErrExportFailed, err)
	}
	defer file.Close()

	switch format {
	case FormatParquet:
		err = WriteParquet(table, file)
	case FormatJSON:
		err = WriteJSON(table, file)
	default:
		err = WriteCSV(table, file)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", datatable.ErrExportFailed, err)
	}
	return nil
}

// WriteParquet writes the Arrow table as Snappy-compressed Parquet.
func WriteParquet(table arrow.Table, w io.Writer) error {
	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	if err := writer.WriteTable(table, table.NumRows()); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	return writer.Close()
}

// WriteCSV writes a header line of field names followed by one line per
// row.
func WriteCSV(table arrow.Table, w io.Writer) error {
	writer := csv.NewWriter(w)

	schema := table.Schema()
	headers := make([]string, schema.NumFields())
	for i, field := range schema.Fields() {
		headers[i] = field.Name
	}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	tr := array.NewTableReader(table, table.NumRows())
	defer tr.Release()

	for tr.Next() {
		rec := tr.Record()
		for rowIdx := 0; rowIdx < int(rec.NumRows()); rowIdx++ {
			row := make([]string, rec.NumCols())
			for colIdx, col := range rec.Columns() {
				row[colIdx] = formatCell(col, rowIdx)
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}
	if tr.Err() != nil {
		return fmt.Errorf("error reading table: %w", tr.Err())
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON writes an indented array of objects keyed by field name.
func WriteJSON(table arrow.Table, w io.Writer) error {
	tr := array.NewTableReader(table, table.NumRows())
	defer tr.Release()

	records := make([]map[string]any, 0, table.NumRows())
	schema := table.Schema()

	for tr.Next() {
		rec := tr.Record()
		for rowIdx := 0; rowIdx < int(rec.NumRows()); rowIdx++ {
			record := make(map[string]any, rec.NumCols())
			for colIdx, col := range rec.Columns() {
				record[schema.Field(colIdx).Name] = jsonCell(col, rowIdx)
			}
			records = append(records, record)
		}
	}
	if tr.Err() != nil {
		return fmt.Errorf("error reading table: %w", tr.Err())
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// formatCell converts an Arrow value to CSV text.
func formatCell(col arrow.Array, pos int) string {
	switch v := arrowadapter.TypedValue(col, pos).(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%.6f", v)
	case time.Time:
		if col.DataType().ID() == arrow.DATE32 || col.DataType().ID() == arrow.DATE64 {
			return v.Format("2006-01-02")
		}
		return v.UTC().Format("2006-01-02 15:04:05.999999999")
	case []byte:
		return string(v)
	default:
		if s, ok := v.(string); ok {
			return s
		}
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

// jsonCell returns the value for JSON export, preserving numbers and
// booleans.
func jsonCell(col arrow.Array, pos int) any {
	switch v := arrowadapter.TypedValue(col, pos).(type) {
	case time.Time:
		if col.DataType().ID() == arrow.DATE32 || col.DataType().ID() == arrow.DATE64 {
			return v.Format("2006-01-02")
		}
		return v.UTC().Format(time.RFC3339Nano)
	case []byte:
		return string(v)
	default:
		return v
	}
}
