package bussinbank

import (
	"encoding/json"
	"fmt"
)

// Bound is a result that is either a finite value or unbounded.
//
// Unbounded stands for outcomes like an infinite runway or a goal that is
// never reached. Callers must look at the tag before using the value, so no
// arithmetic can happen on a non-numeric condition. The zero value is unbounded.
type Bound[T any] struct {
	v      T
	finite bool
}

// Finite returns a bounded result holding v.
func Finite[T any](v T) Bound[T] { return Bound[T]{v: v, finite: true} }

// Unbounded returns the unbounded result.
func Unbounded[T any]() Bound[T] { return Bound[T]{} }

// Value returns the finite value, ok is false when b is unbounded.
func (b Bound[T]) Value() (v T, ok bool) { return b.v, b.finite }

// IsUnbounded reports whether b holds no finite value.
func (b Bound[T]) IsUnbounded() bool { return !b.finite }

// Format prints the finite value, or label when b is unbounded.
func (b Bound[T]) Format(label string) string {
	if !b.finite {
		return label
	}
	return fmt.Sprint(b.v)
}

// String uses "unbounded" as label.
func (b Bound[T]) String() string { return b.Format("unbounded") }

// MarshalJSON writes null for the unbounded result.
func (b Bound[T]) MarshalJSON() ([]byte, error) {
	if !b.finite {
		return []byte("null"), nil
	}
	return json.Marshal(b.v)
}

func (b *Bound[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = Unbounded[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = Finite(v)
	return nil
}
