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

// Package arrow converts between Apache Arrow tables and grid datasets.
package arrow

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/magpierre/datagrid/datatable"
)

// NewFromArrowTable reads every row of table into a dataset. One column
// descriptor is created per schema field; columns of orderable types are
// marked sortable.
func NewFromArrowTable(name string, table arrow.Table) (*datatable.Dataset, error) {
	if table == nil {
		return nil, datatable.ErrNoDataSource
	}

	schema := table.Schema()
	ds := &datatable.Dataset{
		Name:     name,
		Columns:  make([]datatable.Column[datatable.Record], schema.NumFields()),
		Records:  make([]datatable.Record, 0, table.NumRows()),
		Metadata: datatable.Metadata{"source": "arrow"},
	}
	for i, field := range schema.Fields() {
		ds.Columns[i] = datatable.Column[datatable.Record]{
			Key:      field.Name,
			Label:    field.Name,
			Sortable: isOrderable(field.Type),
		}
	}

	tr := array.NewTableReader(table, table.NumRows())
	defer tr.Release()

	for tr.Next() {
		rec := tr.Record()
		for row := 0; row < int(rec.NumRows()); row++ {
			r := make(datatable.Record, rec.NumCols())
			for colIdx, col := range rec.Columns() {
				r[schema.Field(colIdx).Name] = TypedValue(col, row)
			}
			ds.Records = append(ds.Records, r)
		}
	}
	if err := tr.Err(); err != nil {
		return nil, fmt.Errorf("error reading table: %w", err)
	}

	return ds, nil
}

// isOrderable reports whether values of t have a natural ordering in the
// grid.
func isOrderable(t arrow.DataType) bool {
	switch t.ID() {
	case arrow.STRUCT, arrow.LIST, arrow.LARGE_LIST, arrow.MAP, arrow.NULL:
		return false
	default:
		return true
	}
}

// TypedValue returns the Go value at pos: string, int64, uint64, float64,
// bool, time.Time or []byte for scalar types, nil for nulls, and a JSON
// friendly value for nested types. Strings and bytes are copied out of the
// Arrow buffers so the table may be released afterwards.
func TypedValue(col arrow.Array, pos int) any {
	if col.IsNull(pos) {
		return nil
	}

	switch col.DataType().ID() {
	case arrow.STRING:
		return strings.Clone(col.(*array.String).Value(pos))
	case arrow.LARGE_STRING:
		return strings.Clone(col.(*array.LargeString).Value(pos))
	case arrow.BINARY:
		return bytes.Clone(col.(*array.Binary).Value(pos))
	case arrow.BOOL:
		return col.(*array.Boolean).Value(pos)
	case arrow.INT8:
		return int64(col.(*array.Int8).Value(pos))
	case arrow.INT16:
		return int64(col.(*array.Int16).Value(pos))
	case arrow.INT32:
		return int64(col.(*array.Int32).Value(pos))
	case arrow.INT64:
		return col.(*array.Int64).Value(pos)
	case arrow.UINT8:
		return uint64(col.(*array.Uint8).Value(pos))
	case arrow.UINT16:
		return uint64(col.(*array.Uint16).Value(pos))
	case arrow.UINT32:
		return uint64(col.(*array.Uint32).Value(pos))
	case arrow.UINT64:
		return col.(*array.Uint64).Value(pos)
	case arrow.FLOAT16:
		return float64(col.(*array.Float16).Value(pos).Float32())
	case arrow.FLOAT32:
		return float64(col.(*array.Float32).Value(pos))
	case arrow.FLOAT64:
		return col.(*array.Float64).Value(pos)
	case arrow.DATE32:
		return col.(*array.Date32).Value(pos).ToTime()
	case arrow.DATE64:
		return col.(*array.Date64).Value(pos).ToTime()
	case arrow.TIMESTAMP:
		unit := col.DataType().(*arrow.TimestampType).Unit
		return col.(*array.Timestamp).Value(pos).ToTime(unit)
	case arrow.DECIMAL128:
		scale := col.DataType().(*arrow.Decimal128Type).Scale
		return col.(*array.Decimal128).Value(pos).ToFloat64(scale)
	case arrow.STRUCT, arrow.LIST, arrow.LARGE_LIST, arrow.MAP:
		return col.GetOneForMarshal(pos)
	default:
		return col.ValueStr(pos)
	}
}
