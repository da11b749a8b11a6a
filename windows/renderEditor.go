package windows

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/datagrid/datatable"
	"github.com/magpierre/datagrid/internal/script"
)

const renderPlaceholder = `// Go expression over row, e.g.
// fmt.Sprintf("%v ms", row["rtt"])
// strings.ToUpper(fmt.Sprint(row["host"]))`

// RenderEditor edits the renderer expression of one column of a grid
// view and previews it on the first visible row.
type RenderEditor struct {
	w       fyne.Window
	view    *GridView
	column  *widget.Select
	editor  *widget.Entry
	output  *widget.Label
	applyFn func(datatable.Record) string
}

// NewRenderEditor builds an editor for view.
func NewRenderEditor(w fyne.Window, view *GridView) *RenderEditor {
	re := &RenderEditor{w: w, view: view}

	keys := make([]string, 0, len(view.Grid().Columns()))
	for _, c := range view.Grid().Columns() {
		keys = append(keys, c.Key)
	}
	re.column = widget.NewSelect(keys, nil)

	re.editor = widget.NewMultiLineEntry()
	re.editor.SetPlaceHolder(renderPlaceholder)
	re.editor.TextStyle = fyne.TextStyle{Monospace: true}
	re.editor.Wrapping = fyne.TextWrapOff

	re.output = widget.NewLabel("Preview will appear here...")
	re.output.TextStyle = fyne.TextStyle{Monospace: true}
	re.output.Wrapping = fyne.TextWrapWord

	if len(keys) > 0 {
		re.column.SetSelectedIndex(0)
	}
	return re
}

// Compile compiles the current expression and previews it. It reports
// whether the expression is usable.
func (re *RenderEditor) Compile() bool {
	re.applyFn = nil
	expr := re.editor.Text
	if expr == "" {
		re.output.SetText("Error: no expression")
		return false
	}

	fn, err := script.CompileRenderer(expr)
	if err != nil {
		re.output.SetText(fmt.Sprintf("Error: %v", err))
		return false
	}
	re.applyFn = fn

	p := re.view.Grid().Projection()
	if p.Empty() {
		re.output.SetText("Compiled. No rows to preview.")
		return true
	}
	re.output.SetText("Preview: " + fn(p.VisibleRows[0].Value))
	return true
}

// Apply sets the compiled renderer on the selected column. An empty
// expression restores the raw value.
func (re *RenderEditor) Apply() error {
	key := re.column.Selected
	if key == "" {
		return fmt.Errorf("select a column: %w", datatable.ErrColumnNotFound)
	}

	var render func(datatable.Record) string
	if re.editor.Text != "" {
		if !re.Compile() {
			return fmt.Errorf("column %q: %w", key, datatable.ErrInvalidRenderer)
		}
		render = re.applyFn
	}

	cols := append([]datatable.Column[datatable.Record](nil), re.view.Grid().Columns()...)
	for i := range cols {
		if cols[i].Key == key {
			cols[i].Render = render
		}
	}
	re.view.Grid().SetColumns(cols)
	re.view.Refresh()
	return nil
}

// Show opens the editor as a dialog.
func (re *RenderEditor) Show() {
	compile := widget.NewButtonWithIcon("Preview", theme.MediaPlayIcon(), func() { re.Compile() })

	content := container.NewBorder(
		container.NewVBox(widget.NewLabel("Column:"), re.column, widget.NewLabel("Expression:")),
		container.NewVBox(compile, widget.NewCard("", "Result:", re.output)),
		nil, nil,
		container.NewScroll(re.editor),
	)

	d := dialog.NewCustomConfirm("Column Renderer", "Apply", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		if err := re.Apply(); err != nil {
			dialog.ShowError(err, re.w)
		}
	}, re.w)
	d.Resize(fyne.NewSize(600, 450))
	d.Show()
}
