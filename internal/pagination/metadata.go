package pagination

// Page size defaults and the options offered by the page-size menu.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSiblings = 1
)

// DefaultPageSizeOptions are the sizes offered by the page-size menu.
var DefaultPageSizeOptions = []int{5, 10, 15, 20, 30, 50, 100}

// TotalPages returns ceil(totalItems / pageSize). Non-positive inputs yield 0.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	pages := totalItems / pageSize
	if totalItems%pageSize > 0 {
		pages++
	}
	return pages
}

// ClampPage keeps page inside [1, totalPages]. With no pages it returns 1.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		return DefaultPage
	}
	return min(max(page, 1), totalPages)
}

// Bounds returns the half-open slice window [start, end) of page, clipped to
// totalItems.
//
//nolint:nonamedreturns // Named returns document the window ends.
func Bounds(page, pageSize, totalItems int) (start, end int) {
	if pageSize <= 0 || totalItems <= 0 || page < 1 {
		return 0, 0
	}
	start = min((page-1)*pageSize, totalItems)
	end = min(start+pageSize, totalItems)
	return start, end
}

// Meta describes one page of a result set.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta builds page metadata for currentPage of totalItems.
func NewMeta(currentPage, pageSize, totalItems int) Meta {
	totalPages := TotalPages(totalItems, pageSize)
	return Meta{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
}
