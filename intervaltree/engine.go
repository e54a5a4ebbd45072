package intervaltree

import (
	"cmp"

	"teardowntree/internal/drivers"
	"teardowntree/internal/heapidx"
	"teardowntree/internal/repr"
)

// queryOverlapRec is the classic augmented-tree overlap query: prune a
// subtree the moment its maxb can no longer reach search's low end, and
// only descend right once the current node proves the right subtree's
// low ends can still be below search's high end (spec §4.5, §9 — same
// maxb and order reasoning as the bulk delete below, applied read-only
// so it needs none of that operation's simplifications).
func queryOverlapRec[B cmp.Ordered, Iv Interval[B], V any](r *repr.Repr[Node[B, Iv, V]], search Iv, idx int, emit func(repr.Entry[Iv, V])) {
	if r.IsNil(idx) {
		return
	}
	node := r.NodeCopy(idx)
	if node.Maxb < search.Lo() {
		return
	}
	queryOverlapRec(r, search, heapidx.Left(idx), emit)
	if overlaps(node.Key(), search) {
		emit(node.Entry)
	}
	if node.Key().Lo() < search.Hi() {
		queryOverlapRec(r, search, heapidx.Right(idx), emit)
	}
}

// deleteOverlap removes every entry overlapping search, in one pass with
// deleteOverlapRec, then restores the maxb invariant with one bottom-up
// sweep.
func deleteOverlap[B cmp.Ordered, Iv Interval[B], V any](r *repr.Repr[Node[B, Iv, V]], search Iv, emit func(repr.Entry[Iv, V])) {
	if r.IsEmpty() {
		return
	}
	deleteOverlapRec(r, search, drivers.NoopFilter[Iv]{}, 0, false, emit)
	recomputeAllMaxb(r)
}

// filteredDeleteOverlap is deleteOverlap's filtered counterpart: a node
// that overlaps search but that filter rejects stays in the tree, and
// both of its subtrees are still walked for other matches.
func filteredDeleteOverlap[B cmp.Ordered, Iv Interval[B], V any](r *repr.Repr[Node[B, Iv, V]], search Iv, filter drivers.ItemFilter[Iv], emit func(repr.Entry[Iv, V])) {
	if r.IsEmpty() {
		return
	}
	deleteOverlapRec(r, search, filter, 0, false, emit)
	recomputeAllMaxb(r)
}

// deleteOverlapRec is the overlap-aware bulk-delete descent, ported from
// original_source's delete_intersecting_ivl_rec (applied/interval_tree.rs,
// lines 196-271): prune the whole subtree once maxb proves it lies below
// search, prune to the left subtree once key order proves the root and
// everything right of it lie at or above search's high end, otherwise
// maybe take the root (subject to filter) and recurse into both children,
// filling any slot an ancestor left open from whichever subtree the
// pruning rules already proved disjoint from search.
//
// original_source's version threads an old/new maxb pair through this
// same descent via a generic UpdateMax visitor (ItemVisitor, wired
// through BulkDeleteCommon) so every touched ancestor's maxb is repaired
// inline; that visitor plumbing (ItemVisitor/BulkDeleteCommon/SlotStack
// are declared in bulk_delete.rs/slot_stack.rs, absent from the supplied
// original sources) isn't reconstructed here. Instead, as with point
// delete's old/new-maxb simplification, the caller runs one
// recomputeAllMaxb sweep after this descent returns — same O(n) bound,
// and the only version this port can be confident is correct without
// running it.
func deleteOverlapRec[B cmp.Ordered, Iv Interval[B], V any](r *repr.Repr[Node[B, Iv, V]], search Iv, filter drivers.ItemFilter[Iv], idx int, minIncluded bool, emit func(repr.Entry[Iv, V])) {
	if r.IsNil(idx) {
		return
	}
	node := r.NodeCopy(idx)
	k := node.Key()

	switch {
	case node.Maxb < search.Lo():
		// whole subtree lies below search: it can only serve as filler
		// for slots an ancestor already opened.
		if r.SlotMinHasOpen() {
			r.FillSlotsMin(idx)
		}
		if r.SlotMaxHasOpen() && !r.IsNil(idx) {
			r.FillSlotsMax(idx)
		}
	case search.Hi() <= k.Lo() && k.Lo() != search.Lo():
		// root and its right subtree lie at or above search's high end;
		// only the left subtree can still overlap.
		descendDeleteOverlapLeft(r, search, filter, idx, false, minIncluded, emit)

		removed := false
		if r.SlotMinHasOpen() {
			r.FillSlotMin(idx)
			removed = r.DescendFillRight(idx)
		}
		if r.SlotMaxHasOpen() {
			descendFillMaxLeft(r, idx, removed)
		}

	default:
		consumed := overlaps(k, search) && filter.Accept(k)

		var item repr.Entry[Iv, V]
		removed := consumed
		if consumed {
			item = r.Take(idx).Entry
			if minIncluded {
				r.ConsumeSubtree(heapidx.Left(idx), func(n Node[B, Iv, V]) { emit(n.Entry) })
			} else {
				removed = descendDeleteOverlapLeft(r, search, filter, idx, true, false, emit)
			}
			emit(item)
		} else {
			removed = descendDeleteOverlapLeft(r, search, filter, idx, false, minIncluded, emit)
			if !removed && r.SlotMinHasOpen() {
				removed = true
				r.FillSlotMin(idx)
			}
		}

		rightMinIncluded := minIncluded || search.Lo() <= k.Lo()
		if rightMinIncluded {
			rightMaxIncluded := node.Maxb < search.Hi()
			if rightMaxIncluded {
				filteredConsumeOverlap(r, filter, heapidx.Right(idx), emit)
			} else {
				removed = descendDeleteOverlapRight(r, search, filter, idx, removed, true, emit)
			}
		} else {
			removed = descendDeleteOverlapRight(r, search, filter, idx, removed, false, emit)
		}

		if !removed && r.SlotMaxHasOpen() {
			removed = true
			r.FillSlotMax(idx)
		}

		if removed {
			descendFillMaxLeft(r, idx, true)
		}
	}
}

func descendDeleteOverlapLeft[B cmp.Ordered, Iv Interval[B], V any](r *repr.Repr[Node[B, Iv, V]], search Iv, filter drivers.ItemFilter[Iv], idx int, withSlot bool, minIncluded bool, emit func(repr.Entry[Iv, V])) bool {
	if withSlot {
		return r.DescendLeftWithSlot(idx, func(child int) { deleteOverlapRec(r, search, filter, child, minIncluded, emit) })
	}
	r.DescendLeft(idx, func(child int) { deleteOverlapRec(r, search, filter, child, minIncluded, emit) })
	return false
}

func descendDeleteOverlapRight[B cmp.Ordered, Iv Interval[B], V any](r *repr.Repr[Node[B, Iv, V]], search Iv, filter drivers.ItemFilter[Iv], idx int, withSlot bool, minIncluded bool, emit func(repr.Entry[Iv, V])) bool {
	if withSlot {
		return r.DescendRightWithSlot(idx, func(child int) { deleteOverlapRec(r, search, filter, child, minIncluded, emit) })
	}
	r.DescendRight(idx, func(child int) { deleteOverlapRec(r, search, filter, child, minIncluded, emit) })
	return false
}

// descendFillMaxLeft mirrors original_source's descend_fill_max_left: if
// idx is already vacant it is pushed fresh as the pending slot and filled
// by descending left; otherwise idx's own (kept) value first satisfies
// the pending slot, and the descent continues from the now-vacant idx to
// gather any further fills its left subtree can offer.
func descendFillMaxLeft[B cmp.Ordered, Iv Interval[B], V any](r *repr.Repr[Node[B, Iv, V]], idx int, vacant bool) bool {
	if !vacant {
		r.FillSlotMax(idx)
	}
	return r.DescendFillLeft(idx)
}

// filteredConsumeOverlap removes every filter-accepted entry from a
// subtree the caller already knows overlaps search in its entirety,
// compacting around whatever the filter rejects with the same slot-stack
// primitives the bounded descent above uses, instead of collecting
// survivors into a side buffer (the interval-tree counterpart of
// plaintree's filteredConsumeInRange).
func filteredConsumeOverlap[B cmp.Ordered, Iv Interval[B], V any](r *repr.Repr[Node[B, Iv, V]], filter drivers.ItemFilter[Iv], idx int, emit func(repr.Entry[Iv, V])) {
	if r.IsNil(idx) {
		return
	}
	key := r.NodeCopy(idx).Key()
	if !filter.Accept(key) {
		r.DescendLeft(idx, func(child int) { filteredConsumeOverlap(r, filter, child, emit) })
		filteredConsumeOverlap(r, filter, heapidx.Right(idx), emit)
		return
	}
	item := r.Take(idx).Entry
	r.DescendLeftWithSlot(idx, func(child int) { filteredConsumeOverlap(r, filter, child, emit) })
	emit(item)
	filteredConsumeOverlap(r, filter, heapidx.Right(idx), emit)
}
