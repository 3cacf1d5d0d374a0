package sorting

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Direction is the sort direction of a single column.
type Direction int

const (
	Unset Direction = iota
	Asc
	Desc
)

func (d Direction) String() string {
	switch d {
	case Asc:
		return "asc"
	case Desc:
		return "desc"
	default:
		return "unset"
	}
}

// Arrow returns the header indicator for the direction.
func (d Direction) Arrow() string {
	switch d {
	case Asc:
		return "↑"
	case Desc:
		return "↓"
	default:
		return ""
	}
}

// next cycles unset -> asc -> desc -> unset.
func (d Direction) next() Direction {
	switch d {
	case Unset:
		return Asc
	case Asc:
		return Desc
	default:
		return Unset
	}
}

// Entry is the sort state of one column. Rank 1 is the primary key.
type Entry struct {
	Column    string
	Direction Direction
	Rank      int
}

// Active reports whether the entry takes part in comparison.
func (e Entry) Active() bool {
	return e.Direction == Asc || e.Direction == Desc
}

// Spec is an immutable multi-column sort specification. Every method that
// changes it returns a new Spec.
type Spec struct {
	entries []Entry
}

// NewSpec builds a Spec from raw entries. Unset entries are kept but ignored;
// ranks are taken as given and compacted on the first modification.
func NewSpec(entries ...Entry) Spec {
	return Spec{entries: slices.Clone(entries)}
}

// Active returns the active entries ordered by ascending rank.
func (s Spec) Active() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Active() {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b Entry) int { return a.Rank - b.Rank })
	return out
}

// Len returns the number of active columns.
func (s Spec) Len() int {
	n := 0
	for _, e := range s.entries {
		if e.Active() {
			n++
		}
	}
	return n
}

// Lookup returns the active entry for column.
func (s Spec) Lookup(column string) (Entry, bool) {
	for _, e := range s.entries {
		if e.Column == column && e.Active() {
			return e, true
		}
	}
	return Entry{}, false
}

// Toggle cycles the direction of column. A column that was unset joins at the
// next free rank; a column that becomes unset gives up its rank and all
// lower-priority columns move up by one.
func (s Spec) Toggle(column string) Spec {
	cur, ok := s.Lookup(column)
	if !ok {
		return s.Set(column, Asc)
	}
	return s.Set(column, cur.Direction.next())
}

// Set assigns a direction to column. An already active column keeps its rank;
// Unset removes it.
func (s Spec) Set(column string, dir Direction) Spec {
	if dir != Asc && dir != Desc {
		return s.Remove(column)
	}
	active := s.Active()
	for i := range active {
		if active[i].Column == column {
			active[i].Direction = dir
			return compact(active)
		}
	}
	active = append(active, Entry{Column: column, Direction: dir})
	return compact(active)
}

// Remove drops column from the spec and compacts the remaining ranks.
func (s Spec) Remove(column string) Spec {
	active := s.Active()
	out := active[:0]
	for _, e := range active {
		if e.Column != column {
			out = append(out, e)
		}
	}
	return compact(out)
}

// compact renumbers rank-ordered entries from 1.
func compact(ordered []Entry) Spec {
	entries := make([]Entry, len(ordered))
	for i, e := range ordered {
		e.Rank = i + 1
		entries[i] = e
	}
	return Spec{entries: entries}
}

// String renders the spec as "col:dir,col:dir" in rank order.
func (s Spec) String() string {
	active := s.Active()
	parts := make([]string, len(active))
	for i, e := range active {
		parts[i] = e.Column + ":" + e.Direction.String()
	}
	return strings.Join(parts, ",")
}

// Common parse errors.
var (
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'age:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
)

const sortPartsMax = 2

// ParseSpec parses a comma separated list of "field" or "field:order" terms.
// Earlier terms get higher priority. Examples: "name", "age:desc,name:asc".
func ParseSpec(expr string) (Spec, error) {
	var spec Spec
	if strings.TrimSpace(expr) == "" {
		return spec, nil
	}
	for _, term := range strings.Split(expr, ",") {
		parts := strings.Split(term, ":")
		if len(parts) > sortPartsMax {
			return Spec{}, fmt.Errorf("%w: %q", ErrInvalidSortFormat, term)
		}
		field := strings.TrimSpace(parts[0])
		if field == "" {
			return Spec{}, ErrEmptySortField
		}
		dir := Asc
		if len(parts) == sortPartsMax {
			switch order := strings.ToLower(strings.TrimSpace(parts[1])); order {
			case "asc":
			case "desc":
				dir = Desc
			default:
				return Spec{}, fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
			}
		}
		spec = spec.Set(field, dir)
	}
	return spec, nil
}
