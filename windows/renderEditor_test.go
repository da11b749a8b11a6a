package windows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/datagrid/datatable"
)

func TestRenderEditor_Apply(t *testing.T) {
	gv := newTestView(t, 3, datatable.DefaultConfig())
	re := NewRenderEditor(nil, gv)

	re.column.SetSelected("rtt")
	re.editor.SetText(`fmt.Sprintf("%v ms", row["rtt"])`)
	require.True(t, re.Compile())
	assert.Equal(t, "Preview: 0 ms", re.output.Text)

	require.NoError(t, re.Apply())
	cols := gv.Grid().Columns()
	assert.Equal(t, "7 ms", datatable.CellText(testRecords(3)[1], cols[1], datatable.RecordField))
	assert.Nil(t, cols[0].Render)
}

func TestRenderEditor_InvalidExpression(t *testing.T) {
	gv := newTestView(t, 3, datatable.DefaultConfig())
	re := NewRenderEditor(nil, gv)

	re.column.SetSelected("host")
	re.editor.SetText(`row[`)
	assert.False(t, re.Compile())
	assert.Contains(t, re.output.Text, "Error:")

	assert.ErrorIs(t, re.Apply(), datatable.ErrInvalidRenderer)
	assert.Nil(t, gv.Grid().Columns()[0].Render)
}

func TestRenderEditor_ClearRestoresRawValue(t *testing.T) {
	gv := newTestView(t, 3, datatable.DefaultConfig())
	re := NewRenderEditor(nil, gv)

	re.column.SetSelected("host")
	re.editor.SetText(`strings.ToUpper(fmt.Sprint(row["host"]))`)
	require.NoError(t, re.Apply())
	assert.Equal(t, "H00", datatable.CellText(testRecords(1)[0], gv.Grid().Columns()[0], datatable.RecordField))

	re.editor.SetText("")
	require.NoError(t, re.Apply())
	assert.Equal(t, "h00", datatable.CellText(testRecords(1)[0], gv.Grid().Columns()[0], datatable.RecordField))
}
