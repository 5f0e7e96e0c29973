// Package filter manages the range selections placed on chart axes.
//
// A filter is an interval [P0, P1] in axis percent units together with the
// data values at its ends. Filters are grouped by dimension key.
package filter

import (
	"fmt"
	"math"
)

// Filter is a closed interval along one axis.
type Filter struct {
	P0     float64 `json:"p0"`
	P1     float64 `json:"p1"`
	Value0 any     `json:"value0"`
	Value1 any     `json:"value1"`
}

// Empty returns the placeholder left behind by a merge.
func Empty() Filter {
	return Filter{P0: math.NaN(), P1: math.NaN()}
}

// IsEmpty reports whether both ends are unset.
func (f Filter) IsEmpty() bool {
	return math.IsNaN(f.P0) && math.IsNaN(f.P1)
}

// IsInvalid reports whether the interval has no width.
func (f Filter) IsInvalid() bool {
	return f.P0 >= f.P1
}

// Contains reports whether p lies within the interval, ends included.
func (f Filter) Contains(p float64) bool {
	return f.P0 <= p && p <= f.P1
}

// Normalize swaps reversed ends together with their values.
func (f Filter) Normalize() Filter {
	if f.P1 < f.P0 {
		f.P0, f.P1 = f.P1, f.P0
		f.Value0, f.Value1 = f.Value1, f.Value0
	}
	return f
}

// Intersects reports whether two intervals overlap or touch.
func Intersects(a, b Filter) bool {
	return a.P0 <= b.P1 && b.P0 <= a.P1
}

// Merge returns the smallest interval covering both filters. The result
// does not depend on argument order.
func Merge(a, b Filter) Filter {
	out := b
	switch {
	case a.P0 < b.P0:
		out.P0, out.Value0 = a.P0, a.Value0
	case a.P0 == b.P0:
		out.Value0 = tieValue(a.Value0, b.Value0)
	}
	switch {
	case a.P1 > b.P1:
		out.P1, out.Value1 = a.P1, a.Value1
	case a.P1 == b.P1:
		out.Value1 = tieValue(a.Value1, b.Value1)
	}
	return out
}

// tieValue picks between the values of two equal ends: a set value over
// nil, then the one that prints first.
func tieValue(x, y any) any {
	switch {
	case x == nil:
		return y
	case y == nil:
		return x
	case fmt.Sprint(x) < fmt.Sprint(y):
		return x
	}
	return y
}

// Cleanup merges overlapping filters and drops empty or zero-width ones.
// Each overlapping pair is folded into the later entry, so the survivors
// keep their relative order.
func Cleanup(list []Filter) []Filter {
	fs := append([]Filter(nil), list...)
	for i := range fs {
		if fs[i].IsInvalid() {
			fs[i] = Empty()
			continue
		}
		for j := i + 1; j < len(fs); j++ {
			if Intersects(fs[i], fs[j]) {
				fs[j] = Merge(fs[i], fs[j])
				fs[i] = Empty()
				break
			}
		}
	}

	out := fs[:0]
	for _, f := range fs {
		if f.IsEmpty() {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Set holds the filters of every dimension, keyed by dimension key.
type Set map[string][]Filter

// Add appends f to the filters of key and returns its index.
func (s Set) Add(key string, f Filter) int {
	s[key] = append(s[key], f)
	return len(s[key]) - 1
}

// IndexAt returns the index of the first filter of key containing p, or -1.
func (s Set) IndexAt(key string, p float64) int {
	for i, f := range s[key] {
		if f.Contains(p) {
			return i
		}
	}
	return -1
}

// Remove deletes the filter at index i of key and returns it.
func (s Set) Remove(key string, i int) Filter {
	list := s[key]
	f := list[i]
	s[key] = append(list[:i:i], list[i+1:]...)
	if len(s[key]) == 0 {
		delete(s, key)
	}
	return f
}

// Cleanup normalizes the filters of key, deleting the key when none remain.
func (s Set) Cleanup(key string) {
	list, ok := s[key]
	if !ok {
		return
	}
	list = Cleanup(list)
	if len(list) == 0 {
		delete(s, key)
		return
	}
	s[key] = list
}

// Count returns the total number of filters across all keys.
func (s Set) Count() int {
	n := 0
	for _, list := range s {
		n += len(list)
	}
	return n
}

// Clone returns a copy that shares no slices with s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, list := range s {
		out[k] = append([]Filter(nil), list...)
	}
	return out
}

// Passes reports whether a value at percent p survives the filters of key.
// A key without filters passes everything. Reversed filters, which exist
// while a gesture is still dragging, are read in either direction.
func (s Set) Passes(key string, p float64) bool {
	list := s[key]
	if len(list) == 0 {
		return true
	}
	for _, f := range list {
		if f.Normalize().Contains(p) {
			return true
		}
	}
	return false
}
