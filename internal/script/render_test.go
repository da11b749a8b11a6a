package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/datagrid/datatable"
)

func TestCompileRenderer(t *testing.T) {
	render, err := CompileRenderer(`fmt.Sprintf("%v ms", row["rtt"])`)
	require.NoError(t, err)

	assert.Equal(t, "12 ms", render(datatable.Record{"rtt": 12}))
	assert.Equal(t, "<nil> ms", render(datatable.Record{}))
}

func TestCompileRenderer_Strings(t *testing.T) {
	render, err := CompileRenderer(`strings.ToUpper(fmt.Sprint(row["host"]))`)
	require.NoError(t, err)
	assert.Equal(t, "ALPHA", render(datatable.Record{"host": "alpha"}))
}

func TestCompileRenderer_Invalid(t *testing.T) {
	_, err := CompileRenderer(`row["rtt"] +`)
	assert.ErrorIs(t, err, datatable.ErrInvalidRenderer)

	_, err = CompileRenderer(`42`)
	assert.ErrorIs(t, err, datatable.ErrInvalidRenderer)
}

func TestBindRenderers(t *testing.T) {
	cols := []datatable.Column[datatable.Record]{{Key: "host"}, {Key: "rtt"}}

	err := BindRenderers(cols, map[string]string{"rtt": `fmt.Sprint(row["rtt"], "ms")`})
	require.NoError(t, err)
	assert.Nil(t, cols[0].Render)
	require.NotNil(t, cols[1].Render)
	assert.Equal(t, "5ms", datatable.CellText(datatable.Record{"rtt": 5}, cols[1], datatable.RecordField))

	err = BindRenderers(cols, map[string]string{"nope": `""`})
	assert.ErrorIs(t, err, datatable.ErrColumnNotFound)
}
