package datatable

// SetSort returns the sort state after a header click on key. Clicking the
// ascending key flips it to descending; any other click sorts key
// ascending. Repeated clicks never return to unsorted; use SortState{} for
// that.
//
// Sortability of the column is not checked here.
func SetSort(s SortState, key string) SortState {
	if s.Key == key && s.Direction == SortAscending {
		return SortState{Key: key, Direction: SortDescending}
	}
	return SortState{Key: key, Direction: SortAscending}
}

// SetPage moves to target. Pages below 1 become 1; the upper bound is the
// caller's to enforce with ClampPage once the page count is known.
func SetPage(p PageState, target int) PageState {
	p.CurrentPage = max(target, 1)
	return p
}

// ClampPage keeps the current page within [1, pageCount].
func ClampPage(p PageState, pageCount int) PageState {
	p.CurrentPage = min(max(p.CurrentPage, 1), max(pageCount, 1))
	return p
}
