package sorting

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"tabula/internal/model"
)

// ErrTypeMismatch is returned when a sort column mixes value kinds.
var ErrTypeMismatch = errors.New("sort column holds mixed value types")

// TypeMismatchError names the offending column and the two kinds found in it.
type TypeMismatchError struct {
	Column string
	Want   model.Kind
	Got    model.Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot sort column %q: found %s and %s values", e.Column, e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// Sort returns a new slice ordered by the active columns of spec in rank
// order. The input is never modified. The sort is stable, so records that
// compare equal on every active column keep their input order.
//
// Null cells sort before every other value in ascending order. Two non-null
// cells of different kinds in an active column fail the whole sort with a
// *TypeMismatchError.
func Sort(records []model.Record, spec Spec) ([]model.Record, error) {
	active := spec.Active()
	if err := checkKinds(records, active); err != nil {
		return nil, err
	}

	sorted := slices.Clone(records)
	if len(active) == 0 {
		return sorted, nil
	}

	slices.SortStableFunc(sorted, func(a, b model.Record) int {
		for _, e := range active {
			c := Compare(a.Get(e.Column), b.Get(e.Column))
			if c == 0 {
				continue
			}
			if e.Direction == Desc {
				return -c
			}
			return c
		}
		return 0
	})
	return sorted, nil
}

func checkKinds(records []model.Record, active []Entry) error {
	for _, e := range active {
		want := model.KindNull
		for _, r := range records {
			k := r.Get(e.Column).Kind()
			if k == model.KindNull {
				continue
			}
			if want == model.KindNull {
				want = k
				continue
			}
			if k != want {
				return &TypeMismatchError{Column: e.Column, Want: want, Got: k}
			}
		}
	}
	return nil
}

// Compare orders two values of the same kind by their natural order. Nulls
// come first. Values of different non-null kinds are ordered by kind so the
// result is still total; Sort rejects such input before comparing.
func Compare(a, b model.Value) int {
	if a.Kind() != b.Kind() {
		return cmp.Compare(a.Kind(), b.Kind())
	}
	switch a.Kind() {
	case model.KindString:
		return cmp.Compare(a.Str(), b.Str())
	case model.KindNumber:
		return cmp.Compare(a.Num(), b.Num())
	case model.KindBool:
		switch {
		case a.Boolean() == b.Boolean():
			return 0
		case b.Boolean():
			return -1
		default:
			return 1
		}
	case model.KindDate:
		return a.Time().Compare(b.Time())
	default:
		return 0
	}
}
