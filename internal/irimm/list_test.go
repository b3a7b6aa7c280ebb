package irimm_test

import (
	"errors"
	"testing"

	"irkit/internal/irimm"
)

func TestList_AppendThenSeal(t *testing.T) {
	l := irimm.NewList([]int{1, 2})
	l.Append(3)
	if l.Len() != 3 || l.At(2) != 3 {
		t.Fatalf("unexpected contents, len=%d", l.Len())
	}
	if l.Sealed() {
		t.Error("list should not be sealed yet")
	}
	l.Seal()
	if !l.Sealed() {
		t.Error("list should report sealed")
	}
}

func TestList_MutateAfterSealPanics(t *testing.T) {
	tests := []struct {
		name string
		call func(l *irimm.List[int])
	}{
		{"append", func(l *irimm.List[int]) { l.Append(4) }},
		{"insert", func(l *irimm.List[int]) { l.Insert(0, 4) }},
		{"remove", func(l *irimm.List[int]) { l.Remove(0) }},
		{"clear", func(l *irimm.List[int]) { l.Clear() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := irimm.SealedList([]int{1, 2, 3})
			defer func() {
				r := recover()
				if r == nil {
					t.Fatalf("%s on a sealed list should panic", tt.name)
				}
				err, ok := r.(error)
				if !ok || !errors.Is(err, irimm.ErrFrozen) {
					t.Errorf("panic value = %v, want ErrFrozen", r)
				}
			}()
			tt.call(l)
		})
	}
}

func TestList_ReadsAfterSeal(t *testing.T) {
	l := irimm.SealedList([]string{"a", "b"})
	if v, ok := l.First(); !ok || v != "a" {
		t.Errorf("First = (%q, %v)", v, ok)
	}
	s := l.Slice()
	s[0] = "mutated"
	if l.At(0) != "a" {
		t.Error("Slice must be a defensive copy")
	}

	var seen []string
	done := l.Each(func(_ int, v string) bool {
		seen = append(seen, v)
		return true
	})
	if !done || len(seen) != 2 {
		t.Errorf("Each visited %d, aborted=%v", len(seen), !done)
	}
	aborted := !l.Each(func(i int, _ string) bool { return i < 0 })
	if !aborted {
		t.Error("Each should report early termination")
	}
}
