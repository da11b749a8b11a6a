package datatable

import (
	"maps"
	"slices"
)

// Selection is an immutable set of original indexes. The zero value is the
// empty selection. Mutating operations return a new Selection.
type Selection struct {
	set map[int]struct{}
}

// NewSelection returns a selection holding idx.
func NewSelection(idx ...int) Selection {
	if len(idx) == 0 {
		return Selection{}
	}
	set := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		set[i] = struct{}{}
	}
	return Selection{set: set}
}

// Has reports whether idx is selected.
func (s Selection) Has(idx int) bool {
	_, ok := s.set[idx]
	return ok
}

// Len returns the number of selected rows.
func (s Selection) Len() int {
	return len(s.set)
}

// Indexes returns the selected indexes in ascending order, which is source
// order.
func (s Selection) Indexes() []int {
	return slices.Sorted(maps.Keys(s.set))
}

// Equal reports whether both selections hold the same indexes.
func (s Selection) Equal(o Selection) bool {
	if len(s.set) != len(o.set) {
		return false
	}
	for i := range s.set {
		if !o.Has(i) {
			return false
		}
	}
	return true
}

func (s Selection) clone() map[int]struct{} {
	set := make(map[int]struct{}, len(s.set)+1)
	maps.Copy(set, s.set)
	return set
}

// ToggleRow flips the selection of one row.
//
// In multi-select mode it adds idx when absent and removes it when present.
// In single-select mode the result is {idx}, except when idx is already the
// only selected row, in which case the result is empty.
func ToggleRow(s Selection, idx int, multiSelect bool) Selection {
	if !multiSelect {
		if s.Len() == 1 && s.Has(idx) {
			return Selection{}
		}
		return NewSelection(idx)
	}

	set := s.clone()
	if _, ok := set[idx]; ok {
		delete(set, idx)
	} else {
		set[idx] = struct{}{}
	}
	return Selection{set: set}
}

// ToggleAllOnPage checks or unchecks every row on the current page, given by
// its original indexes. Rows on other pages keep their state.
func ToggleAllOnPage(s Selection, checked bool, page []int) Selection {
	set := s.clone()
	for _, i := range page {
		if checked {
			set[i] = struct{}{}
		} else {
			delete(set, i)
		}
	}
	return Selection{set: set}
}

// ResolveSelection returns the selected rows of the collection in source
// order. Indexes outside rows are skipped.
func ResolveSelection[R any](rows []R, s Selection) []R {
	out := make([]R, 0, s.Len())
	for _, i := range s.Indexes() {
		if i >= 0 && i < len(rows) {
			out = append(out, rows[i])
		}
	}
	return out
}
