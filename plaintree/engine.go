package plaintree

import (
	"teardowntree/internal/drivers"
	"teardowntree/internal/heapidx"
	"teardowntree/internal/repr"
)

// deletePoint removes the entry at idx (which must be present) using the
// classic successor/predecessor splice, ported from the source's
// delete_max/delete_min (applied/plain_tree.rs) — no maxb bookkeeping,
// unlike the interval variant's point delete.
func deletePoint[K any, V any](r *repr.Repr[repr.Entry[K, V]], idx int) V {
	node := r.Take(idx)
	if r.HasLeft(idx) {
		deleteMax(r, idx, heapidx.Left(idx))
	} else if r.HasRight(idx) {
		deleteMin(r, idx, heapidx.Right(idx))
	}
	return node.Val
}

func deleteMax[K any, V any](r *repr.Repr[repr.Entry[K, V]], hole, idx int) {
	for {
		idx = r.FindMax(idx)
		r.MoveFromTo(idx, hole)
		hole = idx
		idx = heapidx.Left(idx)
		if r.IsNil(idx) {
			return
		}
	}
}

func deleteMin[K any, V any](r *repr.Repr[repr.Entry[K, V]], hole, idx int) {
	for {
		idx = r.FindMin(idx)
		r.MoveFromTo(idx, hole)
		hole = idx
		idx = heapidx.Right(idx)
		if r.IsNil(idx) {
			return
		}
	}
}

// decideFunc is the comparator-agnostic decision hook used throughout the
// bulk-delete engine below: given a stored key, report which subtrees
// might still hold matching entries (spec §4.2).
type decideFunc[K any] func(key K) drivers.Decision

// deleteRange is the unfiltered single-pass bulk-delete descent, ported
// line for line from the source's delete_range.rs. It is the hot path
// the whole representation is designed around (spec §1, §9).
func deleteRange[K any, V any](r *repr.Repr[repr.Entry[K, V]], decide decideFunc[K], idx int, emit func(repr.Entry[K, V])) {
	for {
		if r.IsNil(idx) {
			return
		}
		key := r.NodeCopy(idx).Key
		d := decide(key)

		switch {
		case d.Left && d.Right:
			item := r.Take(idx)
			removed := descendDeleteLeft(r, decide, idx, true, emit)
			emit(item)
			descendDeleteRight(r, decide, idx, removed, emit)
			return
		case d.Left:
			idx = heapidx.Left(idx)
		default:
			idx = heapidx.Right(idx)
		}
	}
}

func deleteRangeMin[K any, V any](r *repr.Repr[repr.Entry[K, V]], decide decideFunc[K], idx int, emit func(repr.Entry[K, V])) {
	key := r.NodeCopy(idx).Key
	d := decide(key)

	if d.Right {
		// the root and the whole left subtree are inside the range
		item := r.Take(idx)
		r.ConsumeSubtree(heapidx.Left(idx), emit)
		emit(item)
		descendDeleteRight(r, decide, idx, true, emit)
	} else {
		// the root and the right subtree are outside the range
		r.DescendLeft(idx, func(child int) { deleteRangeMin(r, decide, child, emit) })

		if r.SlotMinHasOpen() {
			r.FillSlotMin(idx)
			r.DescendFillRight(idx)
		}
	}
}

func deleteRangeMax[K any, V any](r *repr.Repr[repr.Entry[K, V]], decide decideFunc[K], idx int, emit func(repr.Entry[K, V])) {
	key := r.NodeCopy(idx).Key
	d := decide(key)

	if d.Left {
		// the root and the whole right subtree are inside the range
		item := r.Take(idx)
		descendDeleteLeft(r, decide, idx, true, emit)
		emit(item)
		r.ConsumeSubtree(heapidx.Right(idx), emit)
	} else {
		// the root and the left subtree are outside the range
		r.DescendRight(idx, func(child int) { deleteRangeMax(r, decide, child, emit) })

		if r.SlotMaxHasOpen() {
			r.FillSlotMax(idx)
			r.DescendFillLeft(idx)
		}
	}
}

// descendDeleteLeft returns whether idx ended up nil after the recursive
// call, mirroring the source's bool-returning descend_delete_left.
func descendDeleteLeft[K any, V any](r *repr.Repr[repr.Entry[K, V]], decide decideFunc[K], idx int, withSlot bool, emit func(repr.Entry[K, V])) bool {
	if withSlot {
		return r.DescendLeftWithSlot(idx, func(child int) { deleteRangeMax(r, decide, child, emit) })
	}
	r.DescendLeft(idx, func(child int) { deleteRangeMax(r, decide, child, emit) })
	return false
}

func descendDeleteRight[K any, V any](r *repr.Repr[repr.Entry[K, V]], decide decideFunc[K], idx int, withSlot bool, emit func(repr.Entry[K, V])) bool {
	if withSlot {
		return r.DescendRightWithSlot(idx, func(child int) { deleteRangeMin(r, decide, child, emit) })
	}
	r.DescendRight(idx, func(child int) { deleteRangeMin(r, decide, child, emit) })
	return false
}

// alwaysInRange is the degenerate decision used once a subtree is already
// known (structurally, by the caller) to lie entirely inside the
// deletion range: only the filter still gates which entries are actually
// removed, so both sides are unconditionally reported in range.
func alwaysInRange[K any](K) drivers.Decision { return drivers.Decision{Left: true, Right: true} }

// filteredDeleteRange is the filter-aware counterpart of deleteRange,
// ported from the same descent shape as original_source's
// delete_intersecting_ivl_rec (applied/interval_tree.rs) — the one fully
// present bulk-delete descent in the pack that has to solve exactly this
// problem: recurse into both subtrees of a node whose removal is
// conditional on a predicate, instead of unconditionally consuming them.
// plain_tree.rs gestures at an equivalent (descend_left_fresh_slots,
// pin_stack) for the range case, but never defines either; this applies
// the interval tree's proven pattern to range semantics instead: a node
// the filter rejects stays in place and both of its children are walked
// further rather than folded into a wholesale consume.
func filteredDeleteRange[K any, V any](r *repr.Repr[repr.Entry[K, V]], decide decideFunc[K], filter drivers.ItemFilter[K], idx int, emit func(repr.Entry[K, V])) {
	for {
		if r.IsNil(idx) {
			return
		}
		key := r.NodeCopy(idx).Key
		d := decide(key)

		switch {
		case d.Left && d.Right:
			if !filter.Accept(key) {
				// In range but kept: no vacancy opens here, so both
				// children get a fresh, slot-free scan of their own.
				filteredDeleteRange(r, decide, filter, heapidx.Left(idx), emit)
				filteredDeleteRange(r, decide, filter, heapidx.Right(idx), emit)
				return
			}
			item := r.Take(idx)
			removed := descendDeleteLeftFiltered(r, decide, filter, idx, true, emit)
			emit(item)
			descendDeleteRightFiltered(r, decide, filter, idx, removed, emit)
			return
		case d.Left:
			idx = heapidx.Left(idx)
		default:
			idx = heapidx.Right(idx)
		}
	}
}

func filteredDeleteRangeMin[K any, V any](r *repr.Repr[repr.Entry[K, V]], decide decideFunc[K], filter drivers.ItemFilter[K], idx int, emit func(repr.Entry[K, V])) {
	key := r.NodeCopy(idx).Key
	d := decide(key)

	if d.Right {
		if !filter.Accept(key) {
			filteredConsumeInRange(r, filter, heapidx.Left(idx), emit)
			r.DescendRight(idx, func(child int) { filteredDeleteRangeMin(r, decide, filter, child, emit) })
			return
		}
		// the root and the whole left subtree are inside the range
		item := r.Take(idx)
		filteredConsumeInRange(r, filter, heapidx.Left(idx), emit)
		emit(item)
		descendDeleteRightFiltered(r, decide, filter, idx, true, emit)
	} else {
		// the root and the right subtree are outside the range
		r.DescendLeft(idx, func(child int) { filteredDeleteRangeMin(r, decide, filter, child, emit) })

		if r.SlotMinHasOpen() {
			r.FillSlotMin(idx)
			r.DescendFillRight(idx)
		}
	}
}

func filteredDeleteRangeMax[K any, V any](r *repr.Repr[repr.Entry[K, V]], decide decideFunc[K], filter drivers.ItemFilter[K], idx int, emit func(repr.Entry[K, V])) {
	key := r.NodeCopy(idx).Key
	d := decide(key)

	if d.Left {
		if !filter.Accept(key) {
			r.DescendLeft(idx, func(child int) { filteredDeleteRangeMax(r, decide, filter, child, emit) })
			filteredConsumeInRange(r, filter, heapidx.Right(idx), emit)
			return
		}
		// the root and the whole right subtree are inside the range
		item := r.Take(idx)
		descendDeleteLeftFiltered(r, decide, filter, idx, true, emit)
		emit(item)
		filteredConsumeInRange(r, filter, heapidx.Right(idx), emit)
	} else {
		// the root and the left subtree are outside the range
		r.DescendRight(idx, func(child int) { filteredDeleteRangeMax(r, decide, filter, child, emit) })

		if r.SlotMaxHasOpen() {
			r.FillSlotMax(idx)
			r.DescendFillLeft(idx)
		}
	}
}

func descendDeleteLeftFiltered[K any, V any](r *repr.Repr[repr.Entry[K, V]], decide decideFunc[K], filter drivers.ItemFilter[K], idx int, withSlot bool, emit func(repr.Entry[K, V])) bool {
	if withSlot {
		return r.DescendLeftWithSlot(idx, func(child int) { filteredDeleteRangeMax(r, decide, filter, child, emit) })
	}
	r.DescendLeft(idx, func(child int) { filteredDeleteRangeMax(r, decide, filter, child, emit) })
	return false
}

func descendDeleteRightFiltered[K any, V any](r *repr.Repr[repr.Entry[K, V]], decide decideFunc[K], filter drivers.ItemFilter[K], idx int, withSlot bool, emit func(repr.Entry[K, V])) bool {
	if withSlot {
		return r.DescendRightWithSlot(idx, func(child int) { filteredDeleteRangeMin(r, decide, filter, child, emit) })
	}
	r.DescendRight(idx, func(child int) { filteredDeleteRangeMin(r, decide, filter, child, emit) })
	return false
}

// filteredConsumeInRange removes every filter-accepted entry from a
// subtree the caller already knows lies entirely inside the deletion
// range, compacting around whatever the filter rejects with the same
// slot-stack machinery the bounded search itself uses (FillSlotMax/
// DescendFillLeft), instead of collecting survivors into a side buffer.
// It is deleteRangeMax with the boundary test replaced by alwaysInRange,
// since a wholesale in-range subtree is exactly the degenerate case of a
// max-bounded search that never meets its upper edge.
func filteredConsumeInRange[K any, V any](r *repr.Repr[repr.Entry[K, V]], filter drivers.ItemFilter[K], idx int, emit func(repr.Entry[K, V])) {
	if r.IsNil(idx) {
		return
	}
	filteredDeleteRangeMax(r, alwaysInRange[K], filter, idx, emit)
}
