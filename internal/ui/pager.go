package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tabula/internal/pagination"
	"tabula/internal/table"
)

type hitKind int

const (
	hitNone hitKind = iota
	hitMenuButton
	hitMenuOption
	hitPrev
	hitNext
	hitPage
)

// hitRegion is a clickable span of a single rendered line.
type hitRegion struct {
	kind  hitKind
	x0    int
	x1    int
	value int
}

func hitAt(regions []hitRegion, x int) (hitRegion, bool) {
	for _, r := range regions {
		if x >= r.x0 && x < r.x1 {
			return r, true
		}
	}
	return hitRegion{kind: hitNone}, false
}

// lineBuilder concatenates styled fragments and records where clickable ones
// land.
type lineBuilder struct {
	b       strings.Builder
	x       int
	regions []hitRegion
}

func (l *lineBuilder) add(s string) {
	l.b.WriteString(s)
	l.x += lipgloss.Width(s)
}

func (l *lineBuilder) addHit(s string, kind hitKind, value int) {
	w := lipgloss.Width(s)
	l.regions = append(l.regions, hitRegion{kind: kind, x0: l.x, x1: l.x + w, value: value})
	l.add(s)
}

func (l *lineBuilder) String() string { return l.b.String() }

// renderPager draws the page-size trigger and the page token bar. The token
// bar is omitted when there is nothing to paginate.
func renderPager(view table.View, siblings int, menuOpen bool) (string, []hitRegion) {
	var l lineBuilder

	l.add(PageStyle.Render("Rows per page "))
	button := MenuButtonStyle
	if menuOpen {
		button = MenuOpenStyle
	}
	l.addHit(button.Render(fmt.Sprintf(" %d ▾ ", view.PageSize)), hitMenuButton, view.PageSize)

	tokens := pagination.ComputeRange(view.Page, view.TotalPages, siblings)
	if pagination.ShouldRender(view.Page, tokens) {
		l.add("   ")
		l.addHit(PageStyle.Render("‹"), hitPrev, view.Page-1)
		for _, tok := range tokens {
			l.add(" ")
			if tok.IsEllipsis() {
				l.add(PageStyle.Render(tok.String()))
				continue
			}
			style := PageStyle
			if tok.Page == view.Page {
				style = CurrentPageStyle
			}
			l.addHit(style.Render(tok.String()), hitPage, tok.Page)
		}
		l.add(" ")
		l.addHit(PageStyle.Render("›"), hitNext, view.Page+1)
	}

	if view.TotalPages > 0 {
		l.add(PageStyle.Render(fmt.Sprintf("   page %d of %d", view.Page, view.TotalPages)))
	}
	return l.String(), l.regions
}
