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

package arrow

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/magpierre/datagrid/datatable"
)

// ToArrowTable builds an Arrow table holding rows, one field per column, in
// the order given. Each field's type is the narrowest one that holds every
// non-null value of that column, so no value is dropped.
//
// The caller must Release the returned table.
func ToArrowTable(cols []datatable.Column[datatable.Record], rows []datatable.Record, mem memory.Allocator) arrow.Table {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	fields := make([]arrow.Field, len(cols))
	for i, col := range cols {
		fields[i] = arrow.Field{
			Name:     col.Key,
			Type:     inferType(col.Key, rows),
			Nullable: true,
		}
	}
	schema := arrow.NewSchema(fields, nil)

	columns := make([]arrow.Column, len(cols))
	for i, field := range fields {
		builder := array.NewBuilder(mem, field.Type)
		for _, row := range rows {
			appendValue(builder, datatable.NewValue(row[field.Name]))
		}
		arr := builder.NewArray()
		builder.Release()

		chunked := arrow.NewChunked(field.Type, []arrow.Array{arr})
		arr.Release()
		columns[i] = *arrow.NewColumn(field, chunked)
		chunked.Release()
	}

	table := array.NewTable(schema, columns, int64(len(rows)))
	for i := range columns {
		columns[i].Release()
	}
	return table
}

// inferType picks the Arrow type for key across all rows. Integer columns
// that also hold floats or mixed signedness become Float64; any other mix of
// types, or a column with no typed value, becomes String.
func inferType(key string, rows []datatable.Record) arrow.DataType {
	seen := make(map[datatable.DataType]bool)
	for _, row := range rows {
		if v := datatable.NewValue(row[key]); !v.IsNull {
			seen[v.Type] = true
		}
	}

	if len(seen) == 1 {
		for t := range seen {
			return arrowType(t)
		}
	}
	numeric := len(seen) > 0
	for t := range seen {
		if t != datatable.TypeInt && t != datatable.TypeUint && t != datatable.TypeFloat {
			numeric = false
		}
	}
	if numeric {
		return arrow.PrimitiveTypes.Float64
	}
	return arrow.BinaryTypes.String
}

func arrowType(t datatable.DataType) arrow.DataType {
	switch t {
	case datatable.TypeInt:
		return arrow.PrimitiveTypes.Int64
	case datatable.TypeUint:
		return arrow.PrimitiveTypes.Uint64
	case datatable.TypeFloat:
		return arrow.PrimitiveTypes.Float64
	case datatable.TypeBool:
		return arrow.FixedWidthTypes.Boolean
	case datatable.TypeTimestamp:
		return &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: "UTC"}
	case datatable.TypeBinary:
		return arrow.BinaryTypes.Binary
	default:
		return arrow.BinaryTypes.String
	}
}

// appendValue appends v to a builder created from inferType.
func appendValue(builder array.Builder, v datatable.Value) {
	if v.IsNull {
		builder.AppendNull()
		return
	}

	switch b := builder.(type) {
	case *array.Int64Builder:
		if n, ok := v.Raw.(int64); ok {
			b.Append(n)
			return
		}
	case *array.Uint64Builder:
		if n, ok := v.Raw.(uint64); ok {
			b.Append(n)
			return
		}
	case *array.Float64Builder:
		switch n := v.Raw.(type) {
		case float64:
			b.Append(n)
			return
		case int64:
			b.Append(float64(n))
			return
		case uint64:
			b.Append(float64(n))
			return
		}
	case *array.BooleanBuilder:
		if x, ok := v.Raw.(bool); ok {
			b.Append(x)
			return
		}
	case *array.TimestampBuilder:
		if ts, ok := v.Raw.(time.Time); ok {
			b.Append(arrow.Timestamp(ts.UTC().UnixNano()))
			return
		}
	case *array.BinaryBuilder:
		if x, ok := v.Raw.([]byte); ok {
			b.Append(x)
			return
		}
	case *array.StringBuilder:
		b.Append(v.Formatted)
		return
	}
	builder.AppendNull()
}
