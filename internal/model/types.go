package model

import (
	"fmt"
	"strconv"
	"time"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a single table cell. The zero Value is Null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	t    time.Time
}

// Null returns the empty cell value.
func Null() Value { return Value{} }

// String wraps a string cell.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a numeric cell.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool wraps a boolean cell.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Date wraps a date cell.
func Date(t time.Time) Value { return Value{kind: KindDate, t: t} }

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }
func (v Value) Str() string     { return v.str }
func (v Value) Num() float64    { return v.num }
func (v Value) Boolean() bool   { return v.b }
func (v Value) Time() time.Time { return v.t }

// Equal reports whether both values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindDate:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// Format renders the value for display. Dates go through formatDate; a nil
// formatDate falls back to the value's RFC 3339 form.
func (v Value) Format(formatDate func(time.Time) string) string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDate:
		if formatDate == nil {
			return v.t.Format(time.RFC3339)
		}
		return formatDate(v.t)
	default:
		return ""
	}
}

// Record maps column names to cell values. Records inside a Dataset are never
// mutated; derived views copy them.
type Record map[string]Value

// Get returns the cell for column, Null if absent.
func (r Record) Get(column string) Value {
	return r[column]
}

// Project returns a copy of the record holding only the given columns.
func (r Record) Project(columns []string) Record {
	out := make(Record, len(columns))
	for _, c := range columns {
		out[c] = r[c]
	}
	return out
}

// Dataset is a homogeneous collection of records. Columns holds the full
// column set in its original order.
type Dataset struct {
	Name    string
	Columns []string
	Records []Record
}

// HasColumn reports whether column belongs to the dataset.
func (d Dataset) HasColumn(column string) bool {
	return d.ColumnIndex(column) >= 0
}

// ColumnIndex returns the position of column in the original order, or -1.
func (d Dataset) ColumnIndex(column string) int {
	for i, c := range d.Columns {
		if c == column {
			return i
		}
	}
	return -1
}
