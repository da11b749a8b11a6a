// Package summary formats the status line shown under a grid.
package summary

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/magpierre/datagrid/datatable"
)

// Printer formats counts for one locale.
type Printer struct {
	p *message.Printer
}

// NewPrinter returns a printer for tag, e.g. language.English.
func NewPrinter(tag language.Tag) *Printer {
	return &Printer{p: message.NewPrinter(tag)}
}

// Footer returns "Page X of Y | Total N items", or "" when everything fits
// on one page.
func (pr *Printer) Footer(pageCount, currentPage, total int) string {
	if pageCount <= 1 {
		return ""
	}
	return pr.p.Sprintf("Page %d of %d | Total %d items", currentPage, pageCount, total)
}

// Status describes a projection for a status bar:
// "Table x (3 columns x 1,250 rows) | 2 selected | Sorted: rtt ↓".
func Status[R any](pr *Printer, name string, columns int, p datatable.Projection[R], selected int) string {
	var b strings.Builder
	b.WriteString(pr.p.Sprintf("Table %s (%d columns x %d rows)", name, columns, p.TotalRows))
	if selected > 0 {
		b.WriteString(pr.p.Sprintf(" | %d selected", selected))
	}
	if p.Sort.IsSorted() {
		b.WriteString(pr.p.Sprintf(" | Sorted: %s %s", p.Sort.Key, p.Sort.Direction.Arrow()))
	}
	return b.String()
}

// HeaderLabel decorates a column label with the sort indicator when the
// grid is sorted by that column.
func HeaderLabel(label, key string, s datatable.SortState) string {
	if s.Key != key {
		return label
	}
	return label + " " + s.Direction.Arrow()
}
