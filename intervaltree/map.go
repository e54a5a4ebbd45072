package intervaltree

import (
	"cmp"
	"slices"

	"teardowntree/internal/drivers"
	"teardowntree/internal/guard"
	"teardowntree/internal/repr"
	"teardowntree/internal/sink"
)

// Map is an interval-keyed store backed by a fixed-capacity implicit
// tree augmented with maxb (spec §4.4). The zero value is not usable;
// construct with New or NewSorted.
type Map[B cmp.Ordered, Iv Interval[B], V any] struct {
	r *repr.Repr[Node[B, Iv, V]]
	g guard.RWGuard
}

// New builds a Map from an unsorted slice of entries, sorting by
// (Lo, Hi) first.
func New[B cmp.Ordered, Iv Interval[B], V any](items []repr.Entry[Iv, V]) *Map[B, Iv, V] {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b repr.Entry[Iv, V]) int {
		return cmpIv[B](a.Key, b.Key)
	})
	nodes := make([]Node[B, Iv, V], len(sorted))
	for i, e := range sorted {
		nodes[i] = Node[B, Iv, V]{Entry: e}
	}
	return &Map[B, Iv, V]{r: buildWithMaxb(nodes)}
}

// NewSorted builds a Map in O(n) from entries already sorted by
// (Lo, Hi). The caller must guarantee the ordering; this is not checked.
func NewSorted[B cmp.Ordered, Iv Interval[B], V any](sorted []repr.Entry[Iv, V]) *Map[B, Iv, V] {
	nodes := make([]Node[B, Iv, V], len(sorted))
	for i, e := range sorted {
		nodes[i] = Node[B, Iv, V]{Entry: e}
	}
	return &Map[B, Iv, V]{r: buildWithMaxb(nodes)}
}

func (m *Map[B, Iv, V]) Size() int {
	var n int
	m.g.Read(func() { n = m.r.Size() })
	return n
}

func (m *Map[B, Iv, V]) IsEmpty() bool { return m.Size() == 0 }

func (m *Map[B, Iv, V]) Cap() int { return m.r.Cap() }

func indexOf[B cmp.Ordered, Iv Interval[B], V any](r *repr.Repr[Node[B, Iv, V]], query Iv) (int, bool) {
	return r.IndexOf(func(n Node[B, Iv, V]) int { return cmpIv[B](query, n.Key()) })
}

// Contains reports whether an entry keyed exactly by q is present.
func (m *Map[B, Iv, V]) Contains(q Iv) bool {
	var found bool
	m.g.Read(func() { _, found = indexOf(m.r, q) })
	return found
}

// Find returns the value stored under the exact key q, if present.
func (m *Map[B, Iv, V]) Find(q Iv) (V, bool) {
	var (
		val   V
		found bool
	)
	m.g.Read(func() {
		idx, ok := indexOf(m.r, q)
		if ok {
			val = m.r.NodeCopy(idx).Entry.Val
			found = true
		}
	})
	return val, found
}

// Delete removes the entry keyed exactly by q and returns its value, if
// present, repairing maxb along the path to the root (spec §4.4).
func (m *Map[B, Iv, V]) Delete(q Iv) (V, bool) {
	var (
		val   V
		found bool
	)
	m.g.Write(func() {
		idx, ok := indexOf(m.r, q)
		if ok {
			val = deleteIdx(m.r, idx).Val
			found = true
		}
	})
	return val, found
}

// DeleteOverlap removes every entry overlapping search and appends it to
// out (spec §4.4's delete_overlap).
func (m *Map[B, Iv, V]) DeleteOverlap(search Iv, out sink.Sink[repr.Entry[Iv, V]]) {
	m.g.Write(func() {
		deleteOverlap(m.r, search, out.Consume)
		m.r.AssertSlotsClean()
	})
}

// FilterOverlap removes every entry overlapping search for which
// filter.Accept returns true, appending removed entries to out. Entries
// that overlap but are rejected by the filter remain in the map.
func (m *Map[B, Iv, V]) FilterOverlap(search Iv, filter drivers.ItemFilter[Iv], out sink.Sink[repr.Entry[Iv, V]]) {
	m.g.Write(func() {
		if filter.IsNoop() {
			deleteOverlap(m.r, search, out.Consume)
		} else {
			filteredDeleteOverlap(m.r, search, filter, out.Consume)
		}
		m.r.AssertSlotsClean()
	})
}

// QueryOverlap performs a non-destructive walk, feeding every entry that
// overlaps search to s (spec §4.5).
func (m *Map[B, Iv, V]) QueryOverlap(search Iv, s sink.Sink[repr.Entry[Iv, V]]) {
	m.g.Read(func() { queryOverlapRec(m.r, search, 0, s.Consume) })
}

// Clear drops every entry.
func (m *Map[B, Iv, V]) Clear() {
	m.g.Write(func() { m.r.Clear() })
}

// Refill restores a cleared map from a master built with the same
// capacity, in O(n) via a flat array copy.
func (m *Map[B, Iv, V]) Refill(master *Map[B, Iv, V]) {
	m.g.Write(func() {
		master.g.Read(func() {
			m.r.MustRefill(master.r)
		})
	})
}

// TryRefill is Refill but returns a TreeError instead of panicking.
func (m *Map[B, Iv, V]) TryRefill(master *Map[B, Iv, V]) error {
	var err error
	m.g.Write(func() {
		master.g.Read(func() {
			err = m.r.Refill(master.r)
		})
	})
	return err
}
