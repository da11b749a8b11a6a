package datatable

import "slices"

// Decorate pairs every row with its position in rows.
func Decorate[R any](rows []R) []DecoratedRow[R] {
	out := make([]DecoratedRow[R], len(rows))
	for i, row := range rows {
		out[i] = DecoratedRow[R]{OriginalIndex: i, Value: row}
	}
	return out
}

// Sort orders decorated rows by the field named in s. The sort is stable:
// rows that compare equal keep their relative input order in both
// directions. An unsorted state returns rows unchanged; otherwise a new
// slice is returned and rows is left untouched.
//
// Any key is accepted. A key no row carries leaves the order as it was.
func Sort[R any](rows []DecoratedRow[R], s SortState, field FieldFunc[R]) []DecoratedRow[R] {
	if !s.IsSorted() || field == nil {
		return rows
	}

	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b DecoratedRow[R]) int {
		av, _ := field(a.Value, s.Key)
		bv, _ := field(b.Value, s.Key)
		c := Compare(av, bv)
		if s.Direction == SortDescending {
			return -c
		}
		return c
	})
	return sorted
}

// PageCount returns ceil(total/pageSize), and never less than 1. With
// pagination disabled everything is on one page.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate cuts the current page out of the sorted rows and returns it with
// the page count. It never reorders. A page outside [1, pageCount] yields an
// empty page; callers clamp with ClampPage.
func Paginate[R any](rows []DecoratedRow[R], p PageState) ([]DecoratedRow[R], int) {
	count := PageCount(len(rows), p.PageSize)
	if !p.Paginated() {
		return rows, count
	}
	if p.CurrentPage < 1 {
		return rows[:0:0], count
	}

	start := (p.CurrentPage - 1) * p.PageSize
	if start >= len(rows) {
		return rows[:0:0], count
	}
	end := min(start+p.PageSize, len(rows))
	return rows[start:end:end], count
}

// Project runs the full pipeline for one state snapshot: decorate, sort,
// paginate, and derive the select-all flag for the visible page.
//
// Sorting reads fields through field rather than through cols, so a sort
// key without a matching column still orders rows.
func Project[R any](rows []R, cols []Column[R], s SortState, p PageState, sel Selection, field FieldFunc[R]) Projection[R] {
	sorted := Sort(Decorate(rows), s, field)
	visible, count := Paginate(sorted, p)

	return Projection[R]{
		VisibleRows:          visible,
		PageCount:            count,
		IsAllVisibleSelected: AllSelected(sel, visible),
		TotalRows:            len(rows),
		CurrentPage:          p.CurrentPage,
		Sort:                 s,
	}
}

// AllSelected reports whether page is non-empty and every row on it is in
// sel.
func AllSelected[R any](sel Selection, page []DecoratedRow[R]) bool {
	if len(page) == 0 {
		return false
	}
	for _, row := range page {
		if !sel.Has(row.OriginalIndex) {
			return false
		}
	}
	return true
}
