package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"tabula/internal/sorting"
	"tabula/internal/table"
	"tabula/internal/util"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 28
	cellPadding    = 2
)

// headerLabel renders the column name with its sort arrow. The rank badge is
// only shown when more than one column takes part in the sort.
func headerLabel(column string, spec sorting.Spec) string {
	entry, ok := spec.Lookup(column)
	if !ok {
		return column
	}
	label := column + " " + entry.Direction.Arrow()
	if spec.Len() > 1 {
		label += fmt.Sprintf("%d", entry.Rank)
	}
	return label
}

// columnWidths sizes every visible column to its header and the cells of the
// current page, then hands the remaining width to the last column.
func columnWidths(view table.View, formatDate func(time.Time) string, width int) []int {
	widths := make([]int, len(view.Columns))
	total := 0
	for i, col := range view.Columns {
		w := lipgloss.Width(headerLabel(col, view.Sort))
		for _, row := range view.Rows {
			w = max(w, lipgloss.Width(util.FormatCell(row.Get(col), formatDate)))
		}
		widths[i] = min(max(w, minColumnWidth), maxColumnWidth) + cellPadding
		total += widths[i]
	}
	if extra := width - total; extra > 0 && len(widths) > 0 {
		widths[len(widths)-1] += extra
	}
	return widths
}

// columnAt maps a screen column to the index of the table column under it.
func columnAt(widths []int, x int) int {
	left := 0
	for i, w := range widths {
		if x >= left && x < left+w {
			return i
		}
		left += w
	}
	return -1
}

func renderCell(text string, width int, style lipgloss.Style) string {
	text = util.TruncateString(text, max(1, width-cellPadding))
	return style.Width(width).MaxWidth(width).Padding(0, 1).Render(text)
}

func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	parts := make([]string, 0, len(cells))
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, renderCell(cell, widths[i], style))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderTableDivider(widths []int) string {
	total := 0
	for _, w := range widths {
		total += w
	}
	return DividerStyle.Render(strings.Repeat("─", total))
}

// renderTable draws the header, divider and the rows of the current page.
// The result is exactly height lines tall.
func renderTable(view table.View, formatDate func(time.Time) string, activeColumn, cursor, width, height int) string {
	if height <= 0 {
		return ""
	}
	if len(view.Columns) == 0 {
		return EmptyStateStyle.Width(width).Height(height).MaxHeight(height).
			Render("No visible columns. Press C to show all columns.")
	}

	widths := columnWidths(view, formatDate, width)

	var header []string
	for i, col := range view.Columns {
		style := TableHeaderStyle
		if i == activeColumn {
			style = ActiveHeaderStyle
		}
		header = append(header, renderCell(headerLabel(col, view.Sort), widths[i], style))
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, header...),
		renderTableDivider(widths),
	}

	if len(view.Rows) == 0 {
		msg := "No rows."
		if view.Filter != "" {
			msg = fmt.Sprintf("No rows match %q.", view.Filter)
		}
		lines = append(lines, EmptyStateStyle.Render(msg))
	}

	for i, row := range view.Rows {
		if len(lines) >= height {
			break
		}
		style := NormalRowStyle
		if i == cursor {
			style = SelectedRowStyle
		}
		cells := make([]string, len(view.Columns))
		for j, col := range view.Columns {
			cells[j] = util.FormatCell(row.Get(col), formatDate)
		}
		lines = append(lines, renderTableRow(cells, widths, style))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		MaxWidth(width).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

// resultsLine is the "N results" summary shown above the table.
func resultsLine(view table.View) string {
	noun := "results"
	if view.FilteredCount == 1 {
		noun = "result"
	}
	line := fmt.Sprintf("%d %s", view.FilteredCount, noun)
	if view.Filter != "" {
		line += fmt.Sprintf(" of %d", view.TotalCount)
	}
	if view.Sort.Len() > 0 {
		line += "  ·  sort " + view.Sort.String()
	}
	return line
}
