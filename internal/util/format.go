package util

import (
	"strings"
	"time"

	"tabula/internal/model"
)

// DefaultDateLayout renders dates as 05-Mar-2024.
const DefaultDateLayout = "02-Jan-2006"

// MissingCell is shown for null cells.
const MissingCell = "-"

// FormatDate formats a date for display.
func FormatDate(t time.Time) string {
	return t.Format(DefaultDateLayout)
}

// DateFormatter returns a formatDate function for layout, falling back to the
// default layout when layout is blank.
func DateFormatter(layout string) func(time.Time) string {
	layout = strings.TrimSpace(layout)
	if layout == "" {
		return FormatDate
	}
	return func(t time.Time) string {
		return t.Format(layout)
	}
}

// FormatCell renders a cell for the table body, using MissingCell for nulls
// and empty strings.
func FormatCell(v model.Value, formatDate func(time.Time) string) string {
	s := v.Format(formatDate)
	if s == "" {
		return MissingCell
	}
	return s
}

// ParseDate accepts the date layouts the dataset loaders recognise.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		DefaultDateLayout,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:max(maxLen, 0)])
	}
	return string(runes[:maxLen-3]) + "..."
}
