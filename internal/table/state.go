package table

import (
	"slices"

	"tabula/internal/pagination"
	"tabula/internal/sorting"
)

// State is the user-controlled part of a table view. It is treated as
// immutable: Reduce always returns a fresh value and never writes through the
// slices of its input.
type State struct {
	Filter   string
	Sort     sorting.Spec
	Page     int
	PageSize int

	// Columns lists the visible columns in display order.
	Columns []string
	// AllColumns is the dataset's full column order.
	AllColumns []string
}

// DefaultState returns the state of a freshly mounted table: page 1, default
// page size, no sort, every column visible, empty filter.
func DefaultState(columns []string) State {
	return State{
		Page:       pagination.DefaultPage,
		PageSize:   pagination.DefaultPageSize,
		Columns:    slices.Clone(columns),
		AllColumns: slices.Clone(columns),
	}
}

// IsVisible reports whether column is currently shown.
func (s State) IsVisible(column string) bool {
	return slices.Contains(s.Columns, column)
}

func (s State) clone() State {
	s.Columns = slices.Clone(s.Columns)
	s.AllColumns = slices.Clone(s.AllColumns)
	return s
}
