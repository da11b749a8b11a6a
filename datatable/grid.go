package datatable

import (
	"io"
	"log/slog"
	"sync"
)

// ResetPolicy decides when SetCollection treats the rows as a new
// collection and clears page and selection state.
type ResetPolicy int

const (
	// ResetOnLength resets when the number of rows changes.
	ResetOnLength ResetPolicy = iota
	// ResetOnIdentity also resets when the rows are backed by a different
	// array, even at the same length.
	ResetOnIdentity
)

// Config holds grid behavior switches.
type Config struct {
	// Pagination splits rows into pages of PageSize.
	Pagination bool
	// PageSize is the number of rows per page when Pagination is on.
	PageSize int
	// Selectable enables row selection.
	Selectable bool
	// MultiSelect allows more than one selected row and enables
	// select-all for the current page.
	MultiSelect bool
	// ResetPolicy controls collection change detection.
	ResetPolicy ResetPolicy
	// Logger receives debug records. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the table widget defaults: paginated by 10,
// selectable, multi-select, reset on length change.
func DefaultConfig() Config {
	return Config{
		Pagination:  true,
		PageSize:    DefaultPageSize,
		Selectable:  true,
		MultiSelect: true,
		ResetPolicy: ResetOnLength,
	}
}

// Grid owns the sort, page and selection state of one grid instance and
// applies user actions to it through the engine functions.
//
// Callbacks run after the state change is committed and after Grid's lock
// is released, so they may call back into the Grid.
type Grid[R any] struct {
	mu      sync.Mutex
	cfg     Config
	columns []Column[R]
	field   FieldFunc[R]
	logger  *slog.Logger

	rows []R
	sort SortState
	page PageState
	sel  Selection

	onSelectionChange func([]R)
	onRowClick        func(DecoratedRow[R])
}

// NewGrid creates a grid over columns. field reads sort keys from rows.
func NewGrid[R any](columns []Column[R], field FieldFunc[R], cfg Config) *Grid[R] {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	g := &Grid[R]{
		cfg:     cfg,
		columns: columns,
		field:   field,
		logger:  logger,
	}
	g.page = g.initialPage()
	return g
}

func (g *Grid[R]) initialPage() PageState {
	if !g.cfg.Pagination {
		return NewPageState(0)
	}
	size := g.cfg.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	return NewPageState(size)
}

// OnSelectionChange registers fn to receive the selected rows, in source
// order, each time the selection changes.
func (g *Grid[R]) OnSelectionChange(fn func([]R)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onSelectionChange = fn
}

// OnRowClick registers fn to receive clicked rows.
func (g *Grid[R]) OnRowClick(fn func(DecoratedRow[R])) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onRowClick = fn
}

// Config returns the grid configuration.
func (g *Grid[R]) Config() Config {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg
}

// Columns returns the column descriptors.
func (g *Grid[R]) Columns() []Column[R] {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.columns
}

// SetColumns replaces the column descriptors, e.g. after a renderer
// changed. Sort, page and selection are kept.
func (g *Grid[R]) SetColumns(columns []Column[R]) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.columns = columns
}

// Field returns the field accessor.
func (g *Grid[R]) Field() FieldFunc[R] {
	return g.field
}

// Rows returns the current source collection.
func (g *Grid[R]) Rows() []R {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rows
}

// SortState returns the current sort.
func (g *Grid[R]) SortState() SortState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sort
}

// PageState returns the current page.
func (g *Grid[R]) PageState() PageState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.page
}

// Selection returns the current selection.
func (g *Grid[R]) Selection() Selection {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sel
}

// Selected returns the selected rows in source order.
func (g *Grid[R]) Selected() []R {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ResolveSelection(g.rows, g.sel)
}

// SortedRows returns every row in the current sort order, ignoring the
// page.
func (g *Grid[R]) SortedRows() []R {
	g.mu.Lock()
	defer g.mu.Unlock()
	sorted := Sort(Decorate(g.rows), g.sort, g.field)
	rows := make([]R, len(sorted))
	for i, r := range sorted {
		rows[i] = r.Value
	}
	return rows
}

// SetCollection replaces the source rows. When the reset policy sees a new
// collection, the page goes back to 1 and the selection is cleared. It
// reports whether a reset happened.
func (g *Grid[R]) SetCollection(rows []R) bool {
	g.mu.Lock()
	same := g.sameCollection(rows)
	g.rows = rows
	if same {
		g.mu.Unlock()
		return false
	}

	g.logger.Debug("collection replaced, resetting page and selection",
		"rows", len(rows), "selected", g.sel.Len())
	g.page = g.initialPage()
	notify := g.commitSelection(Selection{})
	g.mu.Unlock()

	notify()
	return true
}

func (g *Grid[R]) sameCollection(rows []R) bool {
	if len(rows) != len(g.rows) {
		return false
	}
	if g.cfg.ResetPolicy == ResetOnLength || len(rows) == 0 {
		return true
	}
	return &rows[0] == &g.rows[0]
}

// Reset clears sort, page and selection.
func (g *Grid[R]) Reset() {
	g.mu.Lock()
	g.sort = SortState{}
	g.page = g.initialPage()
	notify := g.commitSelection(Selection{})
	g.mu.Unlock()

	notify()
}

// Projection computes the visible rows for the current state. A current
// page past the last page is clamped and the projection recomputed.
func (g *Grid[R]) Projection() Projection[R] {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.project()
}

func (g *Grid[R]) project() Projection[R] {
	p := Project(g.rows, g.columns, g.sort, g.page, g.sel, g.field)
	if !g.page.Paginated() {
		return p
	}
	if clamped := ClampPage(g.page, p.PageCount); clamped != g.page {
		g.logger.Debug("clamping page", "from", g.page.CurrentPage, "to", clamped.CurrentPage)
		g.page = clamped
		p = Project(g.rows, g.columns, g.sort, g.page, g.sel, g.field)
	}
	return p
}

// SortBy applies a header click on key and returns the new sort.
func (g *Grid[R]) SortBy(key string) SortState {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sort = SetSort(g.sort, key)
	return g.sort
}

// SetSortState replaces the sort, including clearing it with SortState{}.
func (g *Grid[R]) SetSortState(s SortState) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sort = s
}

// SetPage moves to target, clamped to [1, pageCount].
func (g *Grid[R]) SetPage(target int) PageState {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.page.Paginated() {
		return g.page
	}
	count := PageCount(len(g.rows), g.page.PageSize)
	g.page = ClampPage(SetPage(g.page, target), count)
	return g.page
}

// NextPage moves forward one page, stopping at the last page.
func (g *Grid[R]) NextPage() PageState {
	return g.SetPage(g.PageState().CurrentPage + 1)
}

// PrevPage moves back one page, stopping at page 1.
func (g *Grid[R]) PrevPage() PageState {
	return g.SetPage(g.PageState().CurrentPage - 1)
}

// SetPageSize changes the page size and returns to page 1.
func (g *Grid[R]) SetPageSize(size int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cfg.Pagination = size > 0
	g.cfg.PageSize = size
	g.page = g.initialPage()
}

// ToggleRow flips the selection of the row at originalIndex. It reports
// whether the selection changed.
func (g *Grid[R]) ToggleRow(originalIndex int) bool {
	g.mu.Lock()
	if !g.cfg.Selectable || originalIndex < 0 || originalIndex >= len(g.rows) {
		g.mu.Unlock()
		return false
	}
	next := ToggleRow(g.sel, originalIndex, g.cfg.MultiSelect)
	changed := !next.Equal(g.sel)
	notify := g.commitSelection(next)
	g.mu.Unlock()

	notify()
	return changed
}

// ToggleAllOnPage checks or unchecks every row on the current page. It is a
// no-op in single-select mode. It reports whether the selection changed.
func (g *Grid[R]) ToggleAllOnPage(checked bool) bool {
	g.mu.Lock()
	if !g.cfg.Selectable || !g.cfg.MultiSelect {
		g.mu.Unlock()
		return false
	}
	p := g.project()
	next := ToggleAllOnPage(g.sel, checked, p.VisibleIndexes())
	changed := !next.Equal(g.sel)
	notify := g.commitSelection(next)
	g.mu.Unlock()

	notify()
	return changed
}

// ClickRow reports a click on the row at position pos of the current page
// to the row click callback. It reports whether a row was there.
func (g *Grid[R]) ClickRow(pos int) bool {
	g.mu.Lock()
	p := g.project()
	fn := g.onRowClick
	g.mu.Unlock()

	if pos < 0 || pos >= len(p.VisibleRows) {
		return false
	}
	if fn != nil {
		fn(p.VisibleRows[pos])
	}
	return true
}

// commitSelection stores next and returns the notification to run once the
// lock is released. Unchanged selections notify nobody.
func (g *Grid[R]) commitSelection(next Selection) func() {
	if next.Equal(g.sel) {
		g.sel = next
		return func() {}
	}
	g.sel = next

	fn := g.onSelectionChange
	if fn == nil {
		return func() {}
	}
	selected := ResolveSelection(g.rows, next)
	return func() { fn(selected) }
}
