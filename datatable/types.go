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

// Package datatable provides the projection engine behind a sortable,
// paginated and selectable data grid.
//
// The engine is a set of pure functions over explicit state values
// (SortState, PageState, Selection). Grid wraps them for a single UI
// context and owns the reset rule for replaced collections.
package datatable

import (
	"fmt"
	"time"
)

// DataType represents the type of data held by a Value.
type DataType int

const (
	// TypeUnknown is used for values the engine cannot order.
	TypeUnknown DataType = iota
	// TypeString represents string data.
	TypeString
	// TypeInt represents signed integer data (any size).
	TypeInt
	// TypeUint represents unsigned integer data (any size).
	TypeUint
	// TypeFloat represents floating-point data (any precision).
	TypeFloat
	// TypeBool represents boolean data.
	TypeBool
	// TypeTimestamp represents date and time data.
	TypeTimestamp
	// TypeBinary represents binary/blob data.
	TypeBinary
)

// String returns the string representation of a DataType.
func (dt DataType) String() string {
	switch dt {
	case TypeUnknown:
		return "Unknown"
	case TypeString:
		return "String"
	case TypeInt:
		return "Int"
	case TypeUint:
		return "Uint"
	case TypeFloat:
		return "Float"
	case TypeBool:
		return "Bool"
	case TypeTimestamp:
		return "Timestamp"
	case TypeBinary:
		return "Binary"
	default:
		return fmt.Sprintf("Unknown(%d)", dt)
	}
}

// Value is a typed container for a single field of a row.
// It holds the normalized raw value, type information, and a pre-formatted
// string for display.
type Value struct {
	// Raw holds the normalized value: string, int64, uint64, float64,
	// bool, time.Time or []byte depending on Type.
	Raw any

	// Type indicates the data type of this value.
	Type DataType

	// IsNull indicates whether the field was missing or nil.
	IsNull bool

	// Formatted is a pre-formatted string representation for display.
	Formatted string
}

// NewValue creates a Value from an arbitrary raw field, inferring its type.
func NewValue(raw any) Value {
	if v, ok := raw.(Value); ok {
		return v
	}

	norm, dataType := normalize(raw)
	if norm == nil {
		return NewNullValue()
	}

	return Value{
		Raw:       norm,
		Type:      dataType,
		Formatted: formatValue(norm, dataType),
	}
}

// NewNullValue creates a null value.
func NewNullValue() Value {
	return Value{IsNull: true}
}

// normalize widens numeric kinds so that values of the same family compare
// directly.
func normalize(raw any) (any, DataType) {
	switch v := raw.(type) {
	case nil:
		return nil, TypeUnknown
	case string:
		return v, TypeString
	case int:
		return int64(v), TypeInt
	case int8:
		return int64(v), TypeInt
	case int16:
		return int64(v), TypeInt
	case int32:
		return int64(v), TypeInt
	case int64:
		return v, TypeInt
	case uint:
		return uint64(v), TypeUint
	case uint8:
		return uint64(v), TypeUint
	case uint16:
		return uint64(v), TypeUint
	case uint32:
		return uint64(v), TypeUint
	case uint64:
		return v, TypeUint
	case float32:
		return float64(v), TypeFloat
	case float64:
		return v, TypeFloat
	case bool:
		return v, TypeBool
	case time.Time:
		return v, TypeTimestamp
	case *time.Time:
		if v == nil {
			return nil, TypeUnknown
		}
		return *v, TypeTimestamp
	case []byte:
		return v, TypeBinary
	case fmt.Stringer:
		return v.String(), TypeString
	default:
		return v, TypeUnknown
	}
}

// formatValue converts a normalized value to a display string.
func formatValue(raw any, dataType DataType) string {
	switch dataType {
	case TypeTimestamp:
		return raw.(time.Time).Format("2006-01-02 15:04:05")
	case TypeBinary:
		return string(raw.([]byte))
	default:
		return fmt.Sprintf("%v", raw)
	}
}

// SortDirection specifies the direction of sorting.
type SortDirection int

const (
	// SortAscending puts smaller values first. It is the zero value so that
	// an empty SortState reads as "unsorted, next click ascending".
	SortAscending SortDirection = iota
	// SortDescending puts larger values first.
	SortDescending
)

// String returns the string representation of a SortDirection.
func (sd SortDirection) String() string {
	switch sd {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return fmt.Sprintf("unknown(%d)", sd)
	}
}

// Arrow returns the header indicator for the direction.
func (sd SortDirection) Arrow() string {
	if sd == SortDescending {
		return "↓"
	}
	return "↑"
}

// ParseSortDirection maps "asc"/"desc" to a direction. Anything else is
// ascending.
func ParseSortDirection(s string) SortDirection {
	switch s {
	case "desc", "DESC", "descending":
		return SortDescending
	default:
		return SortAscending
	}
}

// SortState represents the current sorting configuration.
type SortState struct {
	// Key is the column key rows are ordered by. Empty means unsorted.
	Key string
	// Direction is the sort direction.
	Direction SortDirection
}

// IsSorted returns true if this state represents an active sort.
func (s SortState) IsSorted() bool {
	return s.Key != ""
}

// PageState holds the current page and page size.
type PageState struct {
	// CurrentPage is 1-based.
	CurrentPage int
	// PageSize is the number of rows per page. Zero or negative disables
	// pagination.
	PageSize int
}

// DefaultPageSize matches the table widget default.
const DefaultPageSize = 10

// NewPageState returns page 1 with the given size.
func NewPageState(pageSize int) PageState {
	return PageState{CurrentPage: 1, PageSize: pageSize}
}

// Paginated reports whether the rows are split into pages.
func (p PageState) Paginated() bool {
	return p.PageSize > 0
}

// Column describes one grid column. Columns are supplied by the caller and
// are not modified by the engine.
type Column[R any] struct {
	// Key names the field the column displays and sorts by.
	Key string
	// Label is the header text.
	Label string
	// Sortable marks the header as clickable. It is advisory only.
	Sortable bool
	// Width is an optional presentation hint such as "120px".
	Width string
	// Render formats a row for this column. Nil means the raw field.
	Render func(R) string
}

// DecoratedRow pairs a source row with its position in the collection
// passed to the current projection.
type DecoratedRow[R any] struct {
	OriginalIndex int
	Value         R
}

// Projection is the engine output for one state snapshot.
type Projection[R any] struct {
	// VisibleRows are the rows on the current page, in sorted order.
	VisibleRows []DecoratedRow[R]
	// PageCount is at least 1, even for an empty collection.
	PageCount int
	// IsAllVisibleSelected is true iff the page is non-empty and every
	// visible row is selected.
	IsAllVisibleSelected bool

	// TotalRows is the length of the source collection.
	TotalRows int
	// CurrentPage echoes the page the rows were cut from.
	CurrentPage int
	// Sort echoes the sort the rows were ordered by.
	Sort SortState
}

// VisibleIndexes returns the original indexes of the visible rows.
func (p Projection[R]) VisibleIndexes() []int {
	idx := make([]int, len(p.VisibleRows))
	for i, row := range p.VisibleRows {
		idx[i] = row.OriginalIndex
	}
	return idx
}

// Empty reports whether the current page has no rows.
func (p Projection[R]) Empty() bool {
	return len(p.VisibleRows) == 0
}
