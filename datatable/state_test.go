package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetSort(t *testing.T) {
	tests := []struct {
		name string
		from SortState
		key  string
		want SortState
	}{
		{"unsorted to asc", SortState{}, "price", SortState{Key: "price"}},
		{"asc to desc", SortState{Key: "price"}, "price", SortState{Key: "price", Direction: SortDescending}},
		{"desc back to asc", SortState{Key: "price", Direction: SortDescending}, "price", SortState{Key: "price"}},
		{"other key from desc", SortState{Key: "price", Direction: SortDescending}, "name", SortState{Key: "name"}},
		{"other key from asc", SortState{Key: "price"}, "name", SortState{Key: "name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SetSort(tt.from, tt.key))
		})
	}
}

func TestSetSort_NeverReturnsToUnsorted(t *testing.T) {
	s := SortState{}
	for range 5 {
		s = SetSort(s, "k")
		assert.True(t, s.IsSorted())
	}
}

func TestSetPageAndClamp(t *testing.T) {
	p := NewPageState(10)

	assert.Equal(t, 4, SetPage(p, 4).CurrentPage)
	assert.Equal(t, 1, SetPage(p, -2).CurrentPage)
	assert.Equal(t, 10, SetPage(p, 4).PageSize)

	assert.Equal(t, 3, ClampPage(PageState{CurrentPage: 7, PageSize: 10}, 3).CurrentPage)
	assert.Equal(t, 1, ClampPage(PageState{CurrentPage: 0, PageSize: 10}, 3).CurrentPage)
	assert.Equal(t, 1, ClampPage(PageState{CurrentPage: 2, PageSize: 10}, 0).CurrentPage)
}

func TestParseSortDirection(t *testing.T) {
	assert.Equal(t, SortDescending, ParseSortDirection("desc"))
	assert.Equal(t, SortAscending, ParseSortDirection("asc"))
	assert.Equal(t, SortAscending, ParseSortDirection(""))
	assert.Equal(t, "↓", SortDescending.Arrow())
}
