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

// Package script compiles column renderers written as Go expressions.
//
// A renderer expression sees the current row as `row`, a
// map[string]interface{}, and must evaluate to a string, for example
//
//	fmt.Sprintf("%.1f ms", row["rtt"])
//
// Expressions run in a yaegi interpreter with the standard library
// available.
package script

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/magpierre/datagrid/datatable"
)

// Imports available to every expression.
var renderImports = []string{"fmt", "strings", "strconv", "time", "math"}

// CompileRenderer compiles expr into a column renderer. A renderer that
// panics at runtime yields its error text instead of crashing the grid.
func CompileRenderer(expr string) (func(datatable.Record) string, error) {
	var stderr bytes.Buffer
	i := interp.New(interp.Options{Stdout: &stderr, Stderr: &stderr})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("error loading stdlib: %w", err)
	}

	if _, err := i.Eval(wrap(expr)); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", datatable.ErrInvalidRenderer, expr, err)
	}
	v, err := i.Eval("render.Render")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", datatable.ErrInvalidRenderer, err)
	}
	fn, ok := v.Interface().(func(map[string]interface{}) string)
	if !ok {
		return nil, fmt.Errorf("%w: %q does not evaluate to a string", datatable.ErrInvalidRenderer, expr)
	}

	// One interpreter per renderer; calls into it are serialized.
	var mu sync.Mutex
	return func(row datatable.Record) (out string) {
		mu.Lock()
		defer mu.Unlock()
		defer func() {
			if r := recover(); r != nil {
				out = fmt.Sprintf("!%v", r)
			}
		}()
		return fn(map[string]interface{}(row))
	}, nil
}

func wrap(expr string) string {
	var src bytes.Buffer
	src.WriteString("package render\n\nimport (\n")
	for _, imp := range renderImports {
		fmt.Fprintf(&src, "\t%q\n", imp)
	}
	src.WriteString(")\n\n")
	// Keep every import referenced so unused ones do not fail compilation.
	src.WriteString("var _ = fmt.Sprint\nvar _ = strings.ToUpper\nvar _ = strconv.Itoa\nvar _ = time.Now\nvar _ = math.Abs\n\n")
	fmt.Fprintf(&src, "func Render(row map[string]interface{}) string {\n\treturn %s\n}\n", expr)
	return src.String()
}

// BindRenderers compiles the expressions in renderers, keyed by column key,
// and sets them on the matching columns. Unknown keys are an error.
func BindRenderers(cols []datatable.Column[datatable.Record], renderers map[string]string) error {
	for key, expr := range renderers {
		idx := -1
		for i := range cols {
			if cols[i].Key == key {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("renderer for %q: %w", key, datatable.ErrColumnNotFound)
		}

		fn, err := CompileRenderer(expr)
		if err != nil {
			return fmt.Errorf("column %q: %w", key, err)
		}
		cols[idx].Render = fn
	}
	return nil
}
