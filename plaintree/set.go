package plaintree

import (
	"cmp"

	"teardowntree/internal/drivers"
	"teardowntree/internal/repr"
	"teardowntree/internal/sink"
)

// Set is an ordered key set, implemented as a Map keyed on an empty
// struct value (spec §3: "For sets, V is the unit type").
type Set[K cmp.Ordered] struct {
	m *Map[K, struct{}]
}

// NewSet builds a Set from an unsorted slice of keys.
func NewSet[K cmp.Ordered](keys []K) *Set[K] {
	entries := make([]repr.Entry[K, struct{}], len(keys))
	for i, k := range keys {
		entries[i] = repr.Entry[K, struct{}]{Key: k}
	}
	return &Set[K]{m: New(entries)}
}

// NewSortedSet builds a Set in O(n) from already-sorted, duplicate-free keys.
func NewSortedSet[K cmp.Ordered](sorted []K) *Set[K] {
	entries := make([]repr.Entry[K, struct{}], len(sorted))
	for i, k := range sorted {
		entries[i] = repr.Entry[K, struct{}]{Key: k}
	}
	return &Set[K]{m: NewSorted(entries)}
}

func (s *Set[K]) Size() int     { return s.m.Size() }
func (s *Set[K]) IsEmpty() bool { return s.m.IsEmpty() }
func (s *Set[K]) Cap() int      { return s.m.Cap() }

func (s *Set[K]) Contains(q K) bool { return s.m.Contains(q) }

func (s *Set[K]) Delete(q K) bool {
	_, found := s.m.Delete(q)
	return found
}

// keySink adapts a Sink[K] into the Sink[Entry[K,struct{}]] the
// underlying Map's range operations expect.
type keySink[K cmp.Ordered] struct {
	out sink.Sink[K]
}

func (k keySink[K]) Consume(e repr.Entry[K, struct{}]) { k.out.Consume(e.Key) }

func (s *Set[K]) DeleteRange(lo, hi K, out sink.Sink[K]) {
	s.m.DeleteRange(lo, hi, keySink[K]{out})
}

func (s *Set[K]) FilterRange(lo, hi K, filter drivers.ItemFilter[K], out sink.Sink[K]) {
	s.m.FilterRange(lo, hi, filter, keySink[K]{out})
}

func (s *Set[K]) QueryRange(lo, hi K, out sink.Sink[K]) {
	s.m.QueryRange(lo, hi, keySink[K]{out})
}

func (s *Set[K]) Clear() { s.m.Clear() }

func (s *Set[K]) Refill(master *Set[K]) { s.m.Refill(master.m) }

func (s *Set[K]) TryRefill(master *Set[K]) error { return s.m.TryRefill(master.m) }
