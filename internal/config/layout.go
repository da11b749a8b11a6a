package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/magpierre/datagrid/datatable"
)

// ColumnLayout is one column entry of a layout file.
type ColumnLayout struct {
	Key      string `yaml:"key"`
	Label    string `yaml:"label"`
	Sortable bool   `yaml:"sortable"`
	Width    string `yaml:"width"`
	// Render is a Go expression over `row`; see package script.
	Render string `yaml:"render"`
}

// SortLayout is the initial sort of a layout file.
type SortLayout struct {
	Key       string `yaml:"key"`
	Direction string `yaml:"direction"`
}

// Layout describes which columns a grid shows and how it starts.
//
//	columns:
//	  - key: host
//	    label: Host
//	    sortable: true
//	  - key: rtt
//	    label: RTT
//	    sortable: true
//	    render: fmt.Sprintf("%v ms", row["rtt"])
//	sort: {key: rtt, direction: desc}
//	page_size: 25
type Layout struct {
	Columns  []ColumnLayout `yaml:"columns"`
	Sort     *SortLayout    `yaml:"sort"`
	PageSize int            `yaml:"page_size"`
}

// LoadLayout reads a layout file.
func LoadLayout(path string) (*Layout, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return ParseLayout(content)
}

// ParseLayout decodes a layout document. Every column needs a key.
func ParseLayout(content []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(content, &l); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	for i, c := range l.Columns {
		if c.Key == "" {
			return nil, fmt.Errorf("parse layout: column %d has no key", i+1)
		}
	}
	return &l, nil
}

// SortState returns the initial sort. The key is not checked against the
// columns.
func (l *Layout) SortState() datatable.SortState {
	if l == nil || l.Sort == nil {
		return datatable.SortState{}
	}
	return datatable.SortState{
		Key:       l.Sort.Key,
		Direction: datatable.ParseSortDirection(l.Sort.Direction),
	}
}

// Apply restricts and reorders the dataset's columns to the layout, taking
// labels, sortability and widths from it. Renderer expressions are returned
// by key for the caller to compile. A layout column the dataset lacks is
// still shown, with empty cells.
func (l *Layout) Apply(ds *datatable.Dataset) map[string]string {
	if l == nil || len(l.Columns) == 0 {
		return nil
	}

	renderers := make(map[string]string)
	cols := make([]datatable.Column[datatable.Record], 0, len(l.Columns))
	for _, c := range l.Columns {
		col, err := ds.Column(c.Key)
		if err != nil {
			col = datatable.Column[datatable.Record]{Key: c.Key}
		}
		col.Label = c.Label
		if col.Label == "" {
			col.Label = c.Key
		}
		col.Sortable = c.Sortable
		col.Width = c.Width
		if c.Render != "" {
			renderers[c.Key] = c.Render
		}
		cols = append(cols, col)
	}
	ds.Columns = cols
	return renderers
}
