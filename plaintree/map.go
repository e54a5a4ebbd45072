// Package plaintree implements the total-order variant of the teardown
// tree: point lookup/delete, range delete, and filtered range delete
// over an implicit array-backed BST (spec §4.1, §4.3).
package plaintree

import (
	"cmp"
	"slices"

	"teardowntree/internal/drivers"
	"teardowntree/internal/guard"
	"teardowntree/internal/repr"
	"teardowntree/internal/sink"
)

// Map is an ordered key/value store backed by a fixed-capacity implicit
// tree. The zero value is not usable; construct with New or NewSorted.
type Map[K cmp.Ordered, V any] struct {
	r *repr.Repr[repr.Entry[K, V]]
	g guard.RWGuard
}

// New builds a Map from an unsorted slice of entries, sorting by key
// first (spec §6: new(items) sorts then calls with_sorted).
func New[K cmp.Ordered, V any](items []repr.Entry[K, V]) *Map[K, V] {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b repr.Entry[K, V]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return NewSorted(sorted)
}

// NewSorted builds a Map in O(n) from an already key-sorted slice.
// The caller must guarantee the slice is sorted; this is not checked.
func NewSorted[K cmp.Ordered, V any](sorted []repr.Entry[K, V]) *Map[K, V] {
	return &Map[K, V]{r: repr.BuildSorted(sorted)}
}

// Size returns the number of entries currently present.
func (m *Map[K, V]) Size() int {
	var n int
	m.g.Read(func() { n = m.r.Size() })
	return n
}

// IsEmpty reports whether the map holds no entries.
func (m *Map[K, V]) IsEmpty() bool { return m.Size() == 0 }

// Cap returns the fixed capacity set at construction.
func (m *Map[K, V]) Cap() int { return m.r.Cap() }

func indexOf[K cmp.Ordered, V any](r *repr.Repr[repr.Entry[K, V]], query K) (int, bool) {
	return r.IndexOf(func(node repr.Entry[K, V]) int { return cmp.Compare(query, node.Key) })
}

// Contains reports whether q is present.
func (m *Map[K, V]) Contains(q K) bool {
	var found bool
	m.g.Read(func() { _, found = indexOf(m.r, q) })
	return found
}

// Find returns the value stored under q, if present.
func (m *Map[K, V]) Find(q K) (V, bool) {
	var (
		val   V
		found bool
	)
	m.g.Read(func() {
		idx, ok := indexOf(m.r, q)
		if ok {
			val = m.r.NodeCopy(idx).Val
			found = true
		}
	})
	return val, found
}

// Delete removes q and returns its value, if present.
func (m *Map[K, V]) Delete(q K) (V, bool) {
	var (
		val   V
		found bool
	)
	m.g.Write(func() {
		idx, ok := indexOf(m.r, q)
		if ok {
			val = deletePoint(m.r, idx)
			found = true
		}
	})
	return val, found
}

// DeleteRange removes every entry in the half-open range [lo, hi) and
// appends it, in key order, to out. The tie-break from spec §7 applies:
// a key equal to lo is always consumed even when lo == hi.
func (m *Map[K, V]) DeleteRange(lo, hi K, out sink.Sink[repr.Entry[K, V]]) {
	m.g.Write(func() {
		decide := drivers.RangeDriver[K]{Lo: lo, Hi: hi}.Decide
		deleteRange(m.r, decide, 0, out.Consume)
		m.r.AssertSlotsClean()
	})
}

// DeleteRangeBy is the reference-keyed counterpart to DeleteRange
// (SUPPLEMENT, grounded on original_source's RangeRefDriver): callers
// supply comparators instead of materializing bound values of type K.
func (m *Map[K, V]) DeleteRangeBy(cmpLo, cmpHi func(K) int, out sink.Sink[repr.Entry[K, V]]) {
	m.g.Write(func() {
		decide := drivers.CmpRangeDriver[K]{CmpLo: cmpLo, CmpHi: cmpHi}.Decide
		deleteRange(m.r, decide, 0, out.Consume)
		m.r.AssertSlotsClean()
	})
}

// FilterRange removes every entry in [lo, hi) for which filter.Accept
// returns true, appending removed entries in key order to out. Rejected
// entries within the range remain in the map.
func (m *Map[K, V]) FilterRange(lo, hi K, filter drivers.ItemFilter[K], out sink.Sink[repr.Entry[K, V]]) {
	m.g.Write(func() {
		decide := drivers.RangeDriver[K]{Lo: lo, Hi: hi}.Decide
		if filter.IsNoop() {
			deleteRange(m.r, decide, 0, out.Consume)
		} else {
			filteredDeleteRange(m.r, decide, filter, 0, out.Consume)
		}
		m.r.AssertSlotsClean()
	})
}

// QueryRange performs a non-destructive in-order walk of [lo, hi),
// feeding matching entries to s.
func (m *Map[K, V]) QueryRange(lo, hi K, s sink.Sink[repr.Entry[K, V]]) {
	m.g.Read(func() {
		from, found := indexOf(m.r, lo)
		if !found {
			from = m.r.Succ(from)
			if from >= m.r.Cap() {
				return
			}
		}
		m.r.InOrderFrom(from, 0, func(idx int) bool {
			e := m.r.NodeCopy(idx)
			if hi <= e.Key && lo != e.Key {
				return true
			}
			s.Consume(e)
			return false
		})
	})
}

// Clear drops every entry.
func (m *Map[K, V]) Clear() {
	m.g.Write(func() { m.r.Clear() })
}

// Refill restores a cleared map from a master built with the same
// capacity, in O(n) via a flat array copy (spec §4.1). Panics on a
// precondition violation, matching the teacher's utils.Assert
// convention for programming errors at a hot path.
func (m *Map[K, V]) Refill(master *Map[K, V]) {
	m.g.Write(func() {
		master.g.Read(func() {
			m.r.MustRefill(master.r)
		})
	})
}

// TryRefill is Refill but returns a TreeError instead of panicking, for
// callers at an API boundary that prefer an error return over a panic
// (AMBIENT addition; spec §7 allows either).
func (m *Map[K, V]) TryRefill(master *Map[K, V]) error {
	var err error
	m.g.Write(func() {
		master.g.Read(func() {
			err = m.r.Refill(master.r)
		})
	})
	return err
}
