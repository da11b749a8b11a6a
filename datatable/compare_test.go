package datatable

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"ints", 2, 10, -1},
		{"int widths", int8(5), int64(5), 0},
		{"int vs float", 3, 2.5, 1},
		{"uint vs negative int", uint(1), -1, 1},
		{"strings lexicographic", "10", "9", -1},
		{"bools", false, true, -1},
		{"times", late, early, 1},
		{"bytes", []byte("a"), []byte("b"), -1},
		{"nil after number", nil, 3, 1},
		{"nils tie", nil, nil, 0},
		{"number before string", 3, "3", -1},
		{"string before bool", "z", false, -1},
		{"bool before time", true, early, -1},
		{"unknown before nil", struct{}{}, nil, -1},
		{"unknown values tie", struct{}{}, struct{ x int }{}, 0},
		{"NaN after number", math.NaN(), 1.0, 1},
		{"NaNs tie", math.NaN(), math.NaN(), 0},
		{"NaN before nil", math.NaN(), nil, -1},
		{"null value after string", NewNullValue(), "x", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestNewValue(t *testing.T) {
	v := NewValue(int32(7))
	assert.Equal(t, TypeInt, v.Type)
	assert.Equal(t, int64(7), v.Raw)
	assert.Equal(t, "7", v.Formatted)

	assert.True(t, NewValue(nil).IsNull)
	assert.Equal(t, "Float", NewValue(1.5).Type.String())
}

func TestCompare_TotalOrder(t *testing.T) {
	values := []any{nil, 2, "b", math.NaN(), true, 1.5, "a", nil, uint(7), -3, false}
	for _, a := range values {
		for _, b := range values {
			assert.Equal(t, Compare(a, b), -Compare(b, a), "%v vs %v", a, b)
			for _, c := range values {
				if Compare(a, b) <= 0 && Compare(b, c) <= 0 {
					assert.LessOrEqual(t, Compare(a, c), 0, "%v <= %v <= %v", a, b, c)
				}
			}
		}
	}
}
