// Package listutil builds read-only, order-preserving lists.
package listutil

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrUnsupported is returned by every mutating method of List.
var ErrUnsupported = fmt.Errorf("listutil: list is unmodifiable: %w", errors.ErrUnsupported)

// List is an immutable sequence. Its backing array is private to the List,
// so neither the caller of Of nor any holder can change it.
// The zero value is an empty list.
type List[E any] struct {
	elems []E
}

// Of returns a List holding a copy of elems in the given order.
// Elements are not inspected; zero values are kept as-is.
func Of[E any](elems ...E) List[E] {
	if len(elems) == 0 {
		return List[E]{}
	}
	return List[E]{elems: slices.Clone(elems)}
}

func (l List[E]) Len() int { return len(l.elems) }

// At returns the element at i; ok is false when i is out of range.
func (l List[E]) At(i int) (e E, ok bool) {
	if i < 0 || i >= len(l.elems) {
		return e, false
	}
	return l.elems[i], true
}

// All iterates index/element pairs in order.
func (l List[E]) All() iter.Seq2[int, E] { return slices.All(l.elems) }

// Values iterates elements in order.
func (l List[E]) Values() iter.Seq[E] { return slices.Values(l.elems) }

// Slice returns a fresh copy that the caller may modify.
func (l List[E]) Slice() []E { return slices.Clone(l.elems) }

// Index returns the position of the first element matching f, or -1.
func (l List[E]) Index(f func(E) bool) int { return slices.IndexFunc(l.elems, f) }

func (l List[E]) Add(E) error            { return ErrUnsupported }
func (l List[E]) Insert(int, ...E) error { return ErrUnsupported }
func (l List[E]) Remove(int) error       { return ErrUnsupported }
func (l List[E]) Set(int, E) error       { return ErrUnsupported }
func (l List[E]) Clear() error           { return ErrUnsupported }

func (l List[E]) String() string { return fmt.Sprint(l.elems) }

// Equal reports whether l holds exactly elems, in order.
func Equal[E comparable](l List[E], elems ...E) bool {
	return slices.Equal(l.elems, elems)
}
