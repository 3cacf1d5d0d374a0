package table

import (
	"time"

	"tabula/internal/model"
	"tabula/internal/pagination"
	"tabula/internal/sorting"
)

// View is everything a renderer needs for one frame of the table.
type View struct {
	// Columns are the visible columns in display order.
	Columns []string
	// Rows is the current page, projected onto Columns.
	Rows []model.Record

	Sort   sorting.Spec
	Filter string

	Page          int
	PageSize      int
	TotalPages    int
	FilteredCount int
	TotalCount    int

	// Err is set when sorting failed; Rows are then in filtered order.
	Err error
}

// Meta returns the pagination metadata of the view.
func (v View) Meta() pagination.Meta {
	return pagination.NewMeta(v.Page, v.PageSize, v.FilteredCount)
}

// Derive recomputes the view for state in a fixed order: filter, sort, count
// pages, slice the current page. The page is clamped into range; the returned
// View.Page is the effective page.
func Derive(ds model.Dataset, state State, formatDate func(time.Time) string) View {
	filtered := NewMatcher(state.Filter, ds.Columns, formatDate).Filter(ds.Records)

	sorted, err := sorting.Sort(filtered, state.Sort)
	if err != nil {
		sorted = filtered
	}

	pageSize := state.PageSize
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	totalPages := pagination.TotalPages(len(sorted), pageSize)
	page := pagination.ClampPage(state.Page, totalPages)
	start, end := pagination.Bounds(page, pageSize, len(sorted))

	rows := make([]model.Record, 0, end-start)
	for _, r := range sorted[start:end] {
		rows = append(rows, r.Project(state.Columns))
	}

	return View{
		Columns:       state.Columns,
		Rows:          rows,
		Sort:          state.Sort,
		Filter:        state.Filter,
		Page:          page,
		PageSize:      pageSize,
		TotalPages:    totalPages,
		FilteredCount: len(sorted),
		TotalCount:    len(ds.Records),
		Err:           err,
	}
}
