package irimm

import "errors"

// ErrFrozen is the panic value for any mutation of a sealed list. Sealing
// violations are programming errors and fail loudly, never silently.
var ErrFrozen = errors.New("irimm: sealed list modified")

// List is an append-only list that becomes fully immutable once sealed.
// Every container in the immutable mirror is sealed immediately after its
// owning node finishes construction, which makes aliasing safe: multiple
// parents may share one sealed list without copies.
type List[T any] struct {
	elems  []T
	frozen bool
}

// NewList builds a list from a copy of elems, not yet sealed.
func NewList[T any](elems []T) *List[T] {
	return &List[T]{elems: append([]T(nil), elems...)}
}

// SealedList builds a list from a copy of elems and seals it.
func SealedList[T any](elems []T) *List[T] {
	l := NewList(elems)
	l.Seal()
	return l
}

// Seal freezes the list. All mutating methods panic afterwards.
func (l *List[T]) Seal() { l.frozen = true }

// Sealed reports whether the list is frozen.
func (l *List[T]) Sealed() bool { return l.frozen }

func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.elems)
}

// At returns the i-th element.
func (l *List[T]) At(i int) T { return l.elems[i] }

// First returns the first element, or the zero value when empty.
func (l *List[T]) First() (T, bool) {
	var zero T
	if l.Len() == 0 {
		return zero, false
	}
	return l.elems[0], true
}

// Slice returns a defensive copy of the elements.
func (l *List[T]) Slice() []T {
	if l == nil {
		return nil
	}
	return append([]T(nil), l.elems...)
}

// Each calls fn for every element in order until fn returns false.
// Returns false when the iteration was aborted.
func (l *List[T]) Each(fn func(i int, v T) bool) bool {
	if l == nil {
		return true
	}
	for i, v := range l.elems {
		if !fn(i, v) {
			return false
		}
	}
	return true
}

// Append adds an element. Panics with ErrFrozen on a sealed list.
func (l *List[T]) Append(v T) {
	if l.frozen {
		panic(ErrFrozen)
	}
	l.elems = append(l.elems, v)
}

// Insert places an element at index i. Panics with ErrFrozen on a sealed
// list.
func (l *List[T]) Insert(i int, v T) {
	if l.frozen {
		panic(ErrFrozen)
	}
	l.elems = append(l.elems[:i], append([]T{v}, l.elems[i:]...)...)
}

// Remove deletes the element at index i. Panics with ErrFrozen on a sealed
// list.
func (l *List[T]) Remove(i int) {
	if l.frozen {
		panic(ErrFrozen)
	}
	l.elems = append(l.elems[:i], l.elems[i+1:]...)
}

// Clear removes all elements. Panics with ErrFrozen on a sealed list.
func (l *List[T]) Clear() {
	if l.frozen {
		panic(ErrFrozen)
	}
	l.elems = l.elems[:0]
}
