package intervaltree

import (
	"cmp"

	"teardowntree/internal/heapidx"
	"teardowntree/internal/repr"
)

// deleteIdx removes the node at idx (which must be present) using the
// classic successor/predecessor splice and returns its entry. maxb is
// repaired afterward by recomputing it bottom-up at every ancestor of the
// position the splice finally vacates, up to the root; that path holds
// every node whose subtree changed: the splice chain, the nodes the
// find-max/find-min walks passed through, and every ancestor of idx
// (spec §4.4's "local update" strategy — always
// recompute rather than the source's early-exit-when-unchanged
// micro-optimization; see DESIGN.md).
func deleteIdx[B cmp.Ordered, Iv Interval[B], V any](r *repr.Repr[Node[B, Iv, V]], idx int) repr.Entry[Iv, V] {
	entry := r.Take(idx).Entry

	chain := []int{idx}
	switch {
	case r.HasLeft(idx) && r.HasRight(idx), r.HasLeft(idx):
		chain = spliceMax(r, idx, heapidx.Left(idx))
	case r.HasRight(idx):
		chain = spliceMin(r, idx, heapidx.Right(idx))
	}

	for p := chain[len(chain)-1]; p != 0; {
		p = heapidx.Parent(p)
		updateMaxb(r, p)
	}

	return entry
}

// spliceMax pulls the predecessor chain (repeated find-max on the left
// subtree) up into hole, returning the filled positions in shallow-to-
// deep order; the final position in the returned chain corresponds to
// the one loop iteration that leaves its source empty.
func spliceMax[B cmp.Ordered, Iv Interval[B], V any](r *repr.Repr[Node[B, Iv, V]], hole, idx int) []int {
	chain := []int{hole}
	for {
		idx = r.FindMax(idx)
		r.MoveFromTo(idx, hole)
		chain = append(chain, idx)
		hole = idx
		idx = heapidx.Left(idx)
		if r.IsNil(idx) {
			return chain
		}
	}
}

// spliceMin is the mirror of spliceMax using the successor chain.
func spliceMin[B cmp.Ordered, Iv Interval[B], V any](r *repr.Repr[Node[B, Iv, V]], hole, idx int) []int {
	chain := []int{hole}
	for {
		idx = r.FindMin(idx)
		r.MoveFromTo(idx, hole)
		chain = append(chain, idx)
		hole = idx
		idx = heapidx.Right(idx)
		if r.IsNil(idx) {
			return chain
		}
	}
}
