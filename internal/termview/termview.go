// Package termview renders a grid projection as styled terminal text.
package termview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/magpierre/datagrid/datatable"
	"github.com/magpierre/datagrid/internal/summary"
)

// NoDataText is shown in place of rows when the page is empty.
const NoDataText = "No data available"

const (
	checkboxOn  = "[x]"
	checkboxOff = "[ ]"

	// maxColumnWidth caps a column so one long value cannot push the
	// rest of the table off screen.
	maxColumnWidth = 40
)

// Theme holds the colors used by the renderer.
type Theme struct {
	HeaderForeground   lipgloss.Color
	NormalText         lipgloss.Color
	FaintText          lipgloss.Color
	SelectedForeground lipgloss.Color
	SelectedBackground lipgloss.Color
}

// DefaultTheme works on dark and light terminals.
var DefaultTheme = Theme{
	HeaderForeground:   lipgloss.Color("12"),
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	SelectedForeground: lipgloss.Color("230"),
	SelectedBackground: lipgloss.Color("62"),
}

// Renderer draws projections of a Record grid.
type Renderer struct {
	theme   Theme
	printer *summary.Printer
	// checkboxes adds a leading selection column.
	checkboxes bool
	// multi shows the select-all box in the header.
	multi bool
}

// NewRenderer returns a renderer. Selection boxes are drawn when the grid
// config is selectable.
func NewRenderer(theme Theme, printer *summary.Printer, cfg datatable.Config) Renderer {
	return Renderer{
		theme:      theme,
		printer:    printer,
		checkboxes: cfg.Selectable,
		multi:      cfg.Selectable && cfg.MultiSelect,
	}
}

// Render draws the header, the visible rows and the page footer.
func (r Renderer) Render(cols []datatable.Column[datatable.Record], p datatable.Projection[datatable.Record], sel datatable.Selection, field datatable.FieldFunc[datatable.Record]) string {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = summary.HeaderLabel(c.Label, c.Key, p.Sort)
	}

	cells := make([][]string, len(p.VisibleRows))
	for i, row := range p.VisibleRows {
		cells[i] = make([]string, len(cols))
		for j, c := range cols {
			cells[i][j] = datatable.CellText(row.Value, c, field)
		}
	}

	widths := columnWidths(headers, cells)

	var b strings.Builder
	b.WriteString(r.renderHeader(headers, widths, p.IsAllVisibleSelected))
	b.WriteByte('\n')

	if p.Empty() {
		b.WriteString(lipgloss.NewStyle().Foreground(r.theme.FaintText).Italic(true).Render(" " + NoDataText))
		b.WriteByte('\n')
	}
	for i, row := range p.VisibleRows {
		b.WriteString(r.renderRow(cells[i], widths, sel.Has(row.OriginalIndex)))
		b.WriteByte('\n')
	}

	if footer := r.printer.Footer(p.PageCount, p.CurrentPage, p.TotalRows); footer != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(r.theme.FaintText).Render(" " + footer))
		b.WriteByte('\n')
	}
	return b.String()
}

func (r Renderer) renderHeader(headers []string, widths []int, allSelected bool) string {
	style := lipgloss.NewStyle().Foreground(r.theme.HeaderForeground).Bold(true)

	var parts []string
	if r.checkboxes {
		box := strings.Repeat(" ", len(checkboxOff))
		if r.multi {
			box = checkbox(allSelected)
		}
		parts = append(parts, box)
	}
	for i, h := range headers {
		parts = append(parts, pad(h, widths[i]))
	}
	return style.Render(" " + strings.Join(parts, " "))
}

func (r Renderer) renderRow(cells []string, widths []int, selected bool) string {
	style := lipgloss.NewStyle().Foreground(r.theme.NormalText)
	if selected {
		style = style.
			Background(r.theme.SelectedBackground).
			Foreground(r.theme.SelectedForeground)
	}

	var parts []string
	if r.checkboxes {
		parts = append(parts, checkbox(selected))
	}
	for i, c := range cells {
		parts = append(parts, pad(c, widths[i]))
	}
	return style.Render(" " + strings.Join(parts, " "))
}

func checkbox(on bool) string {
	if on {
		return checkboxOn
	}
	return checkboxOff
}

func columnWidths(headers []string, cells [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for i, c := range row {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], maxColumnWidth)
	}
	return widths
}

// pad truncates or right-pads text to exactly width cells.
func pad(text string, width int) string {
	if lipgloss.Width(text) > width {
		text = truncate(text, width-1) + "…"
	}
	return text + strings.Repeat(" ", max(0, width-lipgloss.Width(text)))
}

func truncate(text string, maxWidth int) string {
	runes := []rune(text)
	for length := len(runes); length >= 0; length-- {
		candidate := string(runes[:length])
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
