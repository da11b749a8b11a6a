package datatable

// FieldFunc reads the field named key from a row. It reports false when the
// row has no such field. The engine only looks inside rows through a
// FieldFunc.
type FieldFunc[R any] func(row R, key string) (any, bool)

// Record is the row shape produced by the bundled adapters: field name to
// raw value.
type Record map[string]any

// RecordField is the FieldFunc for Record rows.
func RecordField(row Record, key string) (any, bool) {
	v, ok := row[key]
	return v, ok
}

// Metadata holds optional metadata about a data source.
type Metadata map[string]any

// Dataset is a loaded collection together with the column descriptors
// derived from its schema.
type Dataset struct {
	// Name is shown as the grid title.
	Name string
	// Columns are in schema order.
	Columns []Column[Record]
	// Records are in source order.
	Records []Record
	// Metadata carries loader details such as the CSV delimiter.
	Metadata Metadata
}

// RowCount returns the number of records.
func (d *Dataset) RowCount() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int {
	if d == nil {
		return 0
	}
	return len(d.Columns)
}

// ColumnKeys returns the column keys in display order.
func (d *Dataset) ColumnKeys() []string {
	keys := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		keys[i] = c.Key
	}
	return keys
}

// Column returns the descriptor for key, or ErrColumnNotFound.
func (d *Dataset) Column(key string) (Column[Record], error) {
	for _, c := range d.Columns {
		if c.Key == key {
			return c, nil
		}
	}
	return Column[Record]{}, ErrColumnNotFound
}

// CellText formats a row for a column: the column renderer when set,
// otherwise the formatted raw field.
func CellText[R any](row R, col Column[R], field FieldFunc[R]) string {
	if col.Render != nil {
		return col.Render(row)
	}
	raw, ok := field(row, col.Key)
	if !ok {
		return ""
	}
	return NewValue(raw).Formatted
}
