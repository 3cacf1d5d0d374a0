package ui

import (
	"fmt"
	"slices"

	"tabula/internal/pagination"
)

// PageSizeMenu is the dropdown behind the "Rows per page" trigger.
type PageSizeMenu struct {
	options []int
	cursor  int
	open    bool
}

// NewPageSizeMenu creates a closed menu. Non-positive options are dropped;
// an empty list falls back to the default options.
func NewPageSizeMenu(options []int) *PageSizeMenu {
	var clean []int
	for _, o := range options {
		if o > 0 && !slices.Contains(clean, o) {
			clean = append(clean, o)
		}
	}
	if len(clean) == 0 {
		clean = slices.Clone(pagination.DefaultPageSizeOptions)
	}
	return &PageSizeMenu{options: clean}
}

// Open shows the menu with the cursor on current, if it is an option.
func (m *PageSizeMenu) Open(current int) {
	m.open = true
	m.cursor = max(slices.Index(m.options, current), 0)
}

// Close hides the menu.
func (m *PageSizeMenu) Close() { m.open = false }

// IsOpen reports whether the menu is showing.
func (m *PageSizeMenu) IsOpen() bool { return m.open }

// Move shifts the cursor by delta, wrapping around.
func (m *PageSizeMenu) Move(delta int) {
	n := len(m.options)
	m.cursor = ((m.cursor+delta)%n + n) % n
}

// Selected returns the option under the cursor.
func (m *PageSizeMenu) Selected() int { return m.options[m.cursor] }

// Render draws the open menu as a single line of options.
func (m *PageSizeMenu) Render(current int) (string, []hitRegion) {
	var l lineBuilder
	l.add(PageStyle.Render("Page size "))
	for i, o := range m.options {
		label := fmt.Sprintf(" %d ", o)
		if o == current {
			label = fmt.Sprintf(" %d✓", o)
		}
		style := MenuOptionStyle
		if i == m.cursor {
			style = MenuCursorStyle
		}
		l.addHit(style.Render(label), hitMenuOption, o)
	}
	return l.String(), l.regions
}
