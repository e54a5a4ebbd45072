package intervaltree

import (
	"cmp"

	"teardowntree/internal/repr"
)

// Node is one stored interval entry plus its maxb augmentation
// (spec §3: "IntervalNode ... plus an augmentation maxb: B").
type Node[B cmp.Ordered, Iv Interval[B], V any] struct {
	Entry repr.Entry[Iv, V]
	Maxb  B
}

func (n Node[B, Iv, V]) Key() Iv { return n.Entry.Key }

// updateMaxb recomputes node idx's maxb from its own key and its
// children's current maxb (spec §4.4: "maxb(i) = max(key(i).b, maxb(left)
// if present, maxb(right) if present)").
func updateMaxb[B cmp.Ordered, Iv Interval[B], V any](r *repr.Repr[Node[B, Iv, V]], idx int) {
	node := r.Node(idx)
	m := node.Key().Hi()
	if r.HasLeft(idx) {
		if lm := r.NodeCopy(2*idx + 1).Maxb; lm > m {
			m = lm
		}
	}
	if r.HasRight(idx) {
		if rm := r.NodeCopy(2*idx + 2).Maxb; rm > m {
			m = rm
		}
	}
	node.Maxb = m
}

// recomputeAllMaxb restores invariant 4 (spec §3) across the whole tree
// in one bottom-up, leaves-first pass, the same technique spec §4.4
// prescribes for post-build initialization. The bulk overlap delete in
// engine.go runs the real delete_intersecting_ivl_rec descent but, unlike
// original_source's version, does not thread an old/new maxb pair through
// it via a generic visitor (ItemVisitor/BulkDeleteCommon/SlotStack, from
// bulk_delete.rs/slot_stack.rs, are not present among the supplied
// original sources); it calls this sweep once afterward instead. Point
// delete (pointdelete.go) recomputes maxb only along one path up to the
// root, without an early exit.
func recomputeAllMaxb[B cmp.Ordered, Iv Interval[B], V any](r *repr.Repr[Node[B, Iv, V]]) {
	for i := r.Cap() - 1; i >= 0; i-- {
		if !r.IsNil(i) {
			updateMaxb(r, i)
		}
	}
}

// buildWithMaxb wraps repr.BuildSorted, then performs the initial
// leaves-first maxb sweep spec §4.4 calls for.
func buildWithMaxb[B cmp.Ordered, Iv Interval[B], V any](sorted []Node[B, Iv, V]) *repr.Repr[Node[B, Iv, V]] {
	r := repr.BuildSorted(sorted)
	recomputeAllMaxb(r)
	return r
}
