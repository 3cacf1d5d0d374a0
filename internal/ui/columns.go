package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tabula/internal/table"
)

// dialogChromeTop is the number of dialog lines above the first item: the
// border and the title.
const dialogChromeTop = 2

// ColumnSelector is the dialog listing every column with a check mark next
// to the visible ones.
type ColumnSelector struct {
	columns []string
	cursor  int
	open    bool
}

// NewColumnSelector creates a closed selector.
func NewColumnSelector() *ColumnSelector {
	return &ColumnSelector{}
}

// Open shows the dialog for the given full column order.
func (c *ColumnSelector) Open(columns []string, cursor int) {
	c.columns = columns
	c.open = true
	c.cursor = min(max(cursor, 0), max(len(columns)-1, 0))
}

// Close hides the dialog.
func (c *ColumnSelector) Close() { c.open = false }

// IsOpen reports whether the dialog is showing.
func (c *ColumnSelector) IsOpen() bool { return c.open }

// Move shifts the cursor by delta, wrapping around.
func (c *ColumnSelector) Move(delta int) {
	n := len(c.columns)
	if n == 0 {
		return
	}
	c.cursor = ((c.cursor+delta)%n + n) % n
}

// Current returns the column under the cursor.
func (c *ColumnSelector) Current() (string, bool) {
	if c.cursor < 0 || c.cursor >= len(c.columns) {
		return "", false
	}
	return c.columns[c.cursor], true
}

// ItemAt maps a dialog-relative line to a column index.
func (c *ColumnSelector) ItemAt(line int) (int, bool) {
	idx := line - dialogChromeTop
	if idx < 0 || idx >= len(c.columns) {
		return 0, false
	}
	return idx, true
}

// Select moves the cursor to idx.
func (c *ColumnSelector) Select(idx int) {
	if idx >= 0 && idx < len(c.columns) {
		c.cursor = idx
	}
}

// Render draws the dialog against the current visibility in state.
func (c *ColumnSelector) Render(state table.State) string {
	lines := []string{HeaderStyle.Padding(0).Render("Columns")}
	for i, col := range c.columns {
		mark := "[ ]"
		if state.IsVisible(col) {
			mark = "[✓]"
		}
		style := NormalRowStyle
		if i == c.cursor {
			style = SelectedRowStyle
		}
		lines = append(lines, style.Render(mark+" "+col))
	}
	return DialogStyle.Render(strings.Join(lines, "\n"))
}

// Size returns the rendered width and height of the dialog.
func (c *ColumnSelector) Size(state table.State) (int, int) {
	out := c.Render(state)
	return lipgloss.Width(out), lipgloss.Height(out)
}
