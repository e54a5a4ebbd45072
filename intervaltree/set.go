package intervaltree

import (
	"cmp"

	"teardowntree/internal/drivers"
	"teardowntree/internal/repr"
	"teardowntree/internal/sink"
)

// Set is an interval set, implemented as a Map keyed on an empty struct
// value.
type Set[B cmp.Ordered, Iv Interval[B]] struct {
	m *Map[B, Iv, struct{}]
}

// NewSet builds a Set from an unsorted slice of intervals.
func NewSet[B cmp.Ordered, Iv Interval[B]](ivs []Iv) *Set[B, Iv] {
	entries := make([]repr.Entry[Iv, struct{}], len(ivs))
	for i, iv := range ivs {
		entries[i] = repr.Entry[Iv, struct{}]{Key: iv}
	}
	return &Set[B, Iv]{m: New[B](entries)}
}

// NewSortedSet builds a Set in O(n) from intervals already sorted by
// (Lo, Hi).
func NewSortedSet[B cmp.Ordered, Iv Interval[B]](sorted []Iv) *Set[B, Iv] {
	entries := make([]repr.Entry[Iv, struct{}], len(sorted))
	for i, iv := range sorted {
		entries[i] = repr.Entry[Iv, struct{}]{Key: iv}
	}
	return &Set[B, Iv]{m: NewSorted[B](entries)}
}

func (s *Set[B, Iv]) Size() int     { return s.m.Size() }
func (s *Set[B, Iv]) IsEmpty() bool { return s.m.IsEmpty() }
func (s *Set[B, Iv]) Cap() int      { return s.m.Cap() }

func (s *Set[B, Iv]) Contains(q Iv) bool { return s.m.Contains(q) }

func (s *Set[B, Iv]) Delete(q Iv) bool {
	_, found := s.m.Delete(q)
	return found
}

// keySink adapts a Sink[Iv] into the Sink[Entry[Iv,struct{}]] the
// underlying Map's overlap operations expect.
type keySink[B cmp.Ordered, Iv Interval[B]] struct {
	out sink.Sink[Iv]
}

func (k keySink[B, Iv]) Consume(e repr.Entry[Iv, struct{}]) { k.out.Consume(e.Key) }

func (s *Set[B, Iv]) DeleteOverlap(search Iv, out sink.Sink[Iv]) {
	s.m.DeleteOverlap(search, keySink[B, Iv]{out})
}

func (s *Set[B, Iv]) FilterOverlap(search Iv, filter drivers.ItemFilter[Iv], out sink.Sink[Iv]) {
	s.m.FilterOverlap(search, filter, keySink[B, Iv]{out})
}

func (s *Set[B, Iv]) QueryOverlap(search Iv, out sink.Sink[Iv]) {
	s.m.QueryOverlap(search, keySink[B, Iv]{out})
}

func (s *Set[B, Iv]) Clear() { s.m.Clear() }

func (s *Set[B, Iv]) Refill(master *Set[B, Iv]) { s.m.Refill(master.m) }

func (s *Set[B, Iv]) TryRefill(master *Set[B, Iv]) error { return s.m.TryRefill(master.m) }
