package table

import (
	"slices"

	"tabula/internal/sorting"
)

// Reduce applies action to state and returns the next state. It is pure: the
// input state is left untouched. The upper page bound depends on the dataset
// and is enforced by Derive.
func Reduce(state State, action Action) State {
	next := state.clone()

	switch a := action.(type) {
	case SetFilter:
		next.Filter = a.Text
		next.Page = 1

	case ToggleSort:
		next.Sort = next.Sort.Toggle(a.Column)

	case SetSort:
		next.Sort = next.Sort.Set(a.Column, a.Direction)

	case ReplaceSort:
		next.Sort = a.Spec

	case ClearSort:
		next.Sort = sorting.Spec{}

	case GoToPage:
		next.Page = max(a.Page, 1)

	case NextPage:
		next.Page = max(next.Page+1, 1)

	case PrevPage:
		next.Page = max(next.Page-1, 1)

	case SetPageSize:
		if a.Size > 0 {
			next.PageSize = a.Size
			next.Page = 1
		}

	case ToggleColumn:
		next.Columns = toggleColumn(next.AllColumns, next.Columns, a.Column)

	case SetColumns:
		if cols := orderedSubset(next.AllColumns, a.Columns); len(cols) > 0 {
			next.Columns = cols
		}

	case ShowAllColumns:
		next.Columns = slices.Clone(next.AllColumns)

	case Restore:
		next = a.State.clone()
		if len(next.AllColumns) == 0 {
			next.AllColumns = slices.Clone(state.AllColumns)
		}
	}

	return next
}

// toggleColumn removes a visible column, refusing to remove the last one, or
// re-inserts a hidden column at its position in the original order.
func toggleColumn(all, visible []string, column string) []string {
	if !slices.Contains(all, column) {
		return visible
	}
	if slices.Contains(visible, column) {
		if len(visible) <= 1 {
			return visible
		}
		return slices.DeleteFunc(slices.Clone(visible), func(c string) bool { return c == column })
	}
	return orderedSubset(all, append(slices.Clone(visible), column))
}

// orderedSubset returns the members of all that appear in want, in the order
// of all.
func orderedSubset(all, want []string) []string {
	out := make([]string, 0, len(want))
	for _, c := range all {
		if slices.Contains(want, c) {
			out = append(out, c)
		}
	}
	return out
}
