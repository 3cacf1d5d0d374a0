package table

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"tabula/internal/model"
)

// Matcher reports whether a record matches filter text. A record matches when
// any of its columns, rendered as displayed, contains the text ignoring case.
type Matcher struct {
	needle     string
	columns    []string
	formatDate func(time.Time) string
	fold       cases.Caser
}

// NewMatcher prepares a case-insensitive matcher over columns.
func NewMatcher(text string, columns []string, formatDate func(time.Time) string) Matcher {
	fold := cases.Fold()
	return Matcher{
		needle:     fold.String(text),
		columns:    columns,
		formatDate: formatDate,
		fold:       fold,
	}
}

// Empty reports whether the matcher accepts everything.
func (m Matcher) Empty() bool { return m.needle == "" }

// Match tests a single record.
func (m Matcher) Match(r model.Record) bool {
	if m.Empty() {
		return true
	}
	for _, c := range m.columns {
		v := r.Get(c)
		if v.IsNull() {
			continue
		}
		if strings.Contains(m.fold.String(v.Format(m.formatDate)), m.needle) {
			return true
		}
	}
	return false
}

// Filter returns the matching records in input order. An empty filter returns
// a copy of the input.
func (m Matcher) Filter(records []model.Record) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if m.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
