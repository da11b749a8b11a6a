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

// Package csv loads delimited text into grid datasets.
package csv

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/magpierre/datagrid/datatable"
)

// Config controls how delimited text is read.
type Config struct {
	// Delimiter separates fields. Zero means detect from the first line.
	Delimiter rune
	// HasHeaders takes column names from the first record.
	HasHeaders bool
	// TrimSpace trims leading and trailing space from every field.
	TrimSpace bool
	// InferTypes converts integer, float and boolean looking fields so
	// that they sort numerically.
	InferTypes bool
}

// DefaultConfig returns a config with headers, trimming, inference and
// delimiter detection.
func DefaultConfig() Config {
	return Config{
		HasHeaders: true,
		TrimSpace:  true,
		InferTypes: true,
	}
}

// NewFromFile loads the file at path.
func NewFromFile(path string, config Config) (*datatable.Dataset, error) {
	if config.Delimiter == 0 {
		sep, err := DetectSeparator(path)
		if err != nil {
			return nil, err
		}
		config.Delimiter = sep
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return NewFromReader(filepath.Base(path), f, config)
}

// NewFromReader loads delimited text from r. Columns are all sortable.
func NewFromReader(name string, r io.Reader, config Config) (*datatable.Dataset, error) {
	reader := csv.NewReader(r)
	if config.Delimiter != 0 {
		reader.Comma = config.Delimiter
	}
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = config.TrimSpace

	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%s: %w", name, datatable.ErrEmptyData)
	}

	var headers []string
	if config.HasHeaders {
		headers, all = all[0], all[1:]
	} else {
		headers = make([]string, len(all[0]))
		for i := range headers {
			headers[i] = fmt.Sprintf("column_%d", i+1)
		}
	}

	ds := &datatable.Dataset{
		Name:    name,
		Columns: make([]datatable.Column[datatable.Record], len(headers)),
		Records: make([]datatable.Record, 0, len(all)),
		Metadata: datatable.Metadata{
			"source":    "csv",
			"delimiter": SeparatorName(reader.Comma),
		},
	}
	for i, h := range headers {
		if config.TrimSpace {
			h = strings.TrimSpace(h)
		}
		headers[i] = h
		ds.Columns[i] = datatable.Column[datatable.Record]{Key: h, Label: h, Sortable: true}
	}

	for _, fields := range all {
		rec := make(datatable.Record, len(headers))
		for i, h := range headers {
			if i >= len(fields) {
				rec[h] = nil
				continue
			}
			field := fields[i]
			if config.TrimSpace {
				field = strings.TrimSpace(field)
			}
			rec[h] = parseField(field, config.InferTypes)
		}
		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

// parseField turns empty fields into nulls and, when infer is set, numbers
// and booleans into typed values.
func parseField(s string, infer bool) any {
	if s == "" {
		return nil
	}
	if !infer {
		return s
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

// DetectSeparator guesses the delimiter from the first line of the file by
// counting common separators. It falls back to a comma.
func DetectSeparator(path string) (rune, error) {
	file, err := os.Open(path)
	if err != nil {
		return ',', fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return ',', nil
	}
	return detectSeparatorInLine(scanner.Text()), nil
}

func detectSeparatorInLine(line string) rune {
	// Fixed order so ties resolve the same way every run.
	candidates := []rune{',', ';', '\t', '|'}

	best, bestCount := ',', 0
	for _, sep := range candidates {
		if n := strings.Count(line, string(sep)); n > bestCount {
			best, bestCount = sep, n
		}
	}
	return best
}

// SeparatorName returns a human-readable name for the separator.
func SeparatorName(sep rune) string {
	switch sep {
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	case '\t':
		return "tab"
	case '|':
		return "pipe"
	default:
		return string(sep)
	}
}
