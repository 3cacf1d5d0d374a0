// Package pagination computes page-button ranges and page windows for the
// table view.
//
// The range calculator collapses long page lists into
//
//	1 … 4 5 6 … 10
//
// keeping the first page, the last page and siblingCount pages on each side of
// the current page. Ellipsis is a distinct token kind, never a page number.
package pagination

import (
	"strconv"
	"strings"
)

// TokenKind distinguishes page buttons from ellipsis placeholders.
type TokenKind int

const (
	TokenPage TokenKind = iota
	TokenEllipsis
)

// PageToken is one renderable unit of the pagination bar.
type PageToken struct {
	Kind TokenKind
	Page int
}

// Page returns a page-number token.
func Page(n int) PageToken { return PageToken{Kind: TokenPage, Page: n} }

// Ellipsis returns an ellipsis token.
func Ellipsis() PageToken { return PageToken{Kind: TokenEllipsis} }

// IsEllipsis reports whether the token is a placeholder.
func (t PageToken) IsEllipsis() bool { return t.Kind == TokenEllipsis }

func (t PageToken) String() string {
	if t.IsEllipsis() {
		return "…"
	}
	return strconv.Itoa(t.Page)
}

// slotsBesideSiblings counts first page, last page and the current page.
const slotsBesideSiblings = 3

// ComputeRange returns the tokens to render for currentPage out of
// totalPages. Negative siblingCount is treated as 0, currentPage is clamped
// into [1, totalPages], and totalPages <= 0 yields an empty range.
func ComputeRange(currentPage, totalPages, siblingCount int) []PageToken {
	if totalPages <= 0 {
		return nil
	}
	siblingCount = max(siblingCount, 0)
	currentPage = ClampPage(currentPage, totalPages)

	visibleWindow := 2*siblingCount + slotsBesideSiblings
	leftSibling := max(currentPage-siblingCount, 1)
	rightSibling := min(currentPage+siblingCount, totalPages)
	needLeft := leftSibling > 2
	needRight := rightSibling < totalPages-1

	switch {
	case totalPages <= visibleWindow:
		return pages(1, totalPages)

	case !needLeft && needRight:
		out := pages(1, visibleWindow-1)
		return append(out, Ellipsis(), Page(totalPages))

	case needLeft && !needRight:
		out := []PageToken{Page(1), Ellipsis()}
		return append(out, pages(totalPages-visibleWindow+2, totalPages)...)

	case needLeft && needRight:
		out := []PageToken{Page(1), Ellipsis()}
		out = append(out, pages(leftSibling, rightSibling)...)
		return append(out, Ellipsis(), Page(totalPages))

	default:
		out := []PageToken{Page(1)}
		out = append(out, pages(2, totalPages-1)...)
		return append(out, Page(totalPages))
	}
}

func pages(from, to int) []PageToken {
	if to < from {
		return nil
	}
	out := make([]PageToken, 0, to-from+1)
	for p := from; p <= to; p++ {
		out = append(out, Page(p))
	}
	return out
}

// ShouldRender reports whether a pagination control should be shown at all:
// not for an uninitialised current page nor for fewer than two tokens.
func ShouldRender(currentPage int, tokens []PageToken) bool {
	return currentPage != 0 && len(tokens) >= 2
}

// Format joins tokens with single spaces, e.g. "1 … 4 5 6 … 10".
func Format(tokens []PageToken) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
