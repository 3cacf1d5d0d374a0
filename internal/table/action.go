package table

import "tabula/internal/sorting"

// Action is a state transition understood by Reduce.
type Action interface {
	Name() string
}

// SetFilter replaces the filter text and returns to page 1.
type SetFilter struct{ Text string }

// ToggleSort cycles a column through unset, ascending and descending.
type ToggleSort struct{ Column string }

// SetSort assigns a direction to a column, keeping its rank if already sorted.
type SetSort struct {
	Column    string
	Direction sorting.Direction
}

// ReplaceSort installs a whole sort spec.
type ReplaceSort struct{ Spec sorting.Spec }

// ClearSort removes every sort column.
type ClearSort struct{}

// GoToPage jumps to a page. Out-of-range pages are clamped.
type GoToPage struct{ Page int }

// NextPage advances one page.
type NextPage struct{}

// PrevPage goes back one page.
type PrevPage struct{}

// SetPageSize changes the page size and returns to page 1. Non-positive sizes
// are ignored.
type SetPageSize struct{ Size int }

// ToggleColumn hides a visible column or shows a hidden one at its original
// position.
type ToggleColumn struct{ Column string }

// SetColumns shows exactly the given columns, in original order. Unknown
// names are ignored; an empty result leaves the selection unchanged.
type SetColumns struct{ Columns []string }

// ShowAllColumns makes every column visible.
type ShowAllColumns struct{}

// Restore replaces the whole state, e.g. when undoing.
type Restore struct{ State State }

func (SetFilter) Name() string      { return "set_filter" }
func (ToggleSort) Name() string     { return "toggle_sort" }
func (SetSort) Name() string        { return "set_sort" }
func (ReplaceSort) Name() string    { return "replace_sort" }
func (ClearSort) Name() string      { return "clear_sort" }
func (GoToPage) Name() string       { return "go_to_page" }
func (NextPage) Name() string       { return "next_page" }
func (PrevPage) Name() string       { return "prev_page" }
func (SetPageSize) Name() string    { return "set_page_size" }
func (ToggleColumn) Name() string   { return "toggle_column" }
func (SetColumns) Name() string     { return "set_columns" }
func (ShowAllColumns) Name() string { return "show_all_columns" }
func (Restore) Name() string        { return "restore" }
