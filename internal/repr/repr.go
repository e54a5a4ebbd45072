// Package repr implements the implicit-heap tree representation the
// teardown tree is built on: a fixed-capacity array of nodes plus a
// parallel presence mask, constructed balanced from sorted input and
// never rebalanced afterward. It also hosts the slot-stack scaffolding
// shared by the plain and interval bulk-delete engines (spec §4.1, §4.3).
//
// Repr is deliberately comparator-agnostic: it knows nothing about how to
// order or compare the node type N. Callers (the plaintree and
// intervaltree packages) supply comparators as closures per call, the
// same way sort.Search takes a comparator rather than requiring an
// ordering method on the element type.
package repr

import (
	"fmt"
	"slices"
	"strings"

	"teardowntree/internal/heapidx"
	"teardowntree/pkg/errors"
	"teardowntree/pkg/utils"
)

// Repr is the fixed-capacity implicit tree: data[i] holds the node at
// heap index i, present iff mask[i]. slotsMin/slotsMax are preallocated
// scratch stacks used only during a bulk-delete traversal; they are empty
// outside of one (spec §3, invariant 5).
type Repr[N any] struct {
	data []N
	mask []bool
	size int

	slotsMin []int
	slotsMax []int
}

// NewEmpty returns a zero-size tree with no capacity.
func NewEmpty[N any]() *Repr[N] {
	return &Repr[N]{}
}

// BuildSorted constructs a tree from an already-sorted slice of nodes,
// in O(n), per spec §4.1. The slice is consumed (its elements are moved
// into the tree's backing array); callers must not reuse it.
func BuildSorted[N any](sorted []N) *Repr[N] {
	n := len(sorted)
	data := make([]N, n)
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = true
	}
	height := buildRec(sorted, 0, data)

	return &Repr[N]{
		data:     data,
		mask:     mask,
		size:     n,
		slotsMin: make([]int, 0, height),
		slotsMax: make([]int, 0, height),
	}
}

func buildRec[N any](sorted []N, idx int, data []N) int {
	m := len(sorted)
	if m == 0 {
		return 0
	}
	mid := heapidx.BuildSelectRoot(m)
	lh := buildRec(sorted[:mid], heapidx.Left(idx), data)
	rh := buildRec(sorted[mid+1:], heapidx.Right(idx), data)
	data[idx] = sorted[mid]

	utils.Assert(rh <= lh, "build: right subtree deeper than left")
	if lh > rh {
		return 1 + lh
	}
	return 1 + rh
}

// FromShape builds a tree directly from a sparse slice of already-placed
// nodes: nodes[i] == nil means heap index i is absent, otherwise *nodes[i]
// occupies it. Unlike BuildSorted this allows an arbitrary (not
// necessarily nearly-complete) shape, including deliberately unbalanced
// ones.
func FromShape[N any](nodes []*N) *Repr[N] {
	capacity := len(nodes)
	data := make([]N, capacity)
	mask := make([]bool, capacity)
	size := 0
	for i, np := range nodes {
		if np != nil {
			data[i] = *np
			mask[i] = true
			size++
		}
	}
	height := calcHeight(mask, 0)

	return &Repr[N]{
		data:     data,
		mask:     mask,
		size:     size,
		slotsMin: make([]int, 0, height),
		slotsMax: make([]int, 0, height),
	}
}

func calcHeight(mask []bool, idx int) int {
	if idx >= len(mask) || !mask[idx] {
		return 0
	}
	lh := calcHeight(mask, heapidx.Left(idx))
	rh := calcHeight(mask, heapidx.Right(idx))
	if lh > rh {
		return 1 + lh
	}
	return 1 + rh
}

// Size returns the number of present nodes.
func (r *Repr[N]) Size() int { return r.size }

// IsEmpty reports whether the tree holds no entries.
func (r *Repr[N]) IsEmpty() bool { return r.size == 0 }

// Cap returns the fixed backing capacity, set once at construction.
func (r *Repr[N]) Cap() int { return len(r.data) }

// Height returns the scratch-stack capacity, which is sized to the
// tree's height at construction (spec §3, invariant 5).
func (r *Repr[N]) Height() int { return cap(r.slotsMin) }

// Clear drops every present node, resetting size to zero. The backing
// arrays are not deallocated so the tree can be refilled later.
func (r *Repr[N]) Clear() {
	var zero N
	for i := range r.data {
		if r.mask[i] {
			r.data[i] = zero
			r.mask[i] = false
		}
	}
	r.size = 0
}

// Refill restores a cleared tree from a master by copying data and mask
// wholesale. Precondition: r.Size() == 0 and r.Cap() == master.Cap().
func (r *Repr[N]) Refill(master *Repr[N]) error {
	if len(r.data) != len(master.data) {
		return errors.NewCapacityMismatchError(len(master.data), len(r.data))
	}
	if r.size != 0 {
		return errors.NewNotEmptyError(r.size)
	}
	copy(r.data, master.data)
	copy(r.mask, master.mask)
	r.size = master.size
	return nil
}

// MustRefill is Refill but panics on a precondition violation, matching
// the teacher's utils.Assert convention for programming errors at hot
// paths (spec §7: the refill precondition is "undefined or panicking,
// implementer's choice").
func (r *Repr[N]) MustRefill(master *Repr[N]) {
	if err := r.Refill(master); err != nil {
		panic(err)
	}
}

// --- structural navigation -------------------------------------------------

// IsNil reports whether heap index idx is out of range or absent.
func (r *Repr[N]) IsNil(idx int) bool {
	return idx < 0 || idx >= len(r.data) || !r.mask[idx]
}

// HasLeft reports whether idx's left child is present.
func (r *Repr[N]) HasLeft(idx int) bool { return !r.IsNil(heapidx.Left(idx)) }

// HasRight reports whether idx's right child is present.
func (r *Repr[N]) HasRight(idx int) bool { return !r.IsNil(heapidx.Right(idx)) }

// FindMin walks to the minimum of the subtree rooted at idx.
func (r *Repr[N]) FindMin(idx int) int {
	for r.HasLeft(idx) {
		idx = heapidx.Left(idx)
	}
	return idx
}

// FindMax walks to the maximum of the subtree rooted at idx.
func (r *Repr[N]) FindMax(idx int) int {
	for r.HasRight(idx) {
		idx = heapidx.Right(idx)
	}
	return idx
}

// Succ returns the in-order successor index of idx, or Cap() if idx holds
// the maximum entry.
func (r *Repr[N]) Succ(idx int) int {
	if r.HasRight(idx) {
		return r.FindMin(heapidx.Right(idx))
	}
	left := heapidx.LeftEnclosing(idx + 1)
	if left == 0 {
		return len(r.data)
	}
	return heapidx.Parent(left - 1)
}

// IndexOf performs a standard BST descent driven by cmp (see Cmp's
// doc comment), returning the index of the first matching key and true,
// or the first nil index where a key equal to the query would live and
// false.
func (r *Repr[N]) IndexOf(cmp Cmp[N]) (int, bool) {
	if len(r.data) == 0 {
		return 0, false
	}
	idx := 0
	if !r.mask[idx] {
		return idx, false
	}
	for {
		c := cmp(r.data[idx])
		if c == 0 {
			return idx, true
		}
		var next int
		if c < 0 {
			next = heapidx.Left(idx)
		} else {
			next = heapidx.Right(idx)
		}
		if r.IsNil(next) {
			return next, false
		}
		idx = next
	}
}

// --- node access -------------------------------------------------------

// Node returns a pointer to the node stored at idx for in-place mutation
// (e.g. updating an interval node's maxb). Caller must ensure idx is
// present.
func (r *Repr[N]) Node(idx int) *N { return &r.data[idx] }

// NodeCopy returns a copy of the node at idx.
func (r *Repr[N]) NodeCopy(idx int) N { return r.data[idx] }

// Take removes and returns the node at idx, which must be present.
func (r *Repr[N]) Take(idx int) N {
	utils.Assert(!r.IsNil(idx), "take: nil slot")
	node := r.data[idx]
	var zero N
	r.data[idx] = zero
	r.mask[idx] = false
	r.size--
	return node
}

// Place writes node into idx, marking it present and incrementing size if
// it wasn't already present.
func (r *Repr[N]) Place(idx int, node N) {
	if !r.mask[idx] {
		r.mask[idx] = true
		r.size++
	}
	r.data[idx] = node
}

// MoveFromTo moves the node at src (which must be present) into dst
// (which must be nil), clearing src. This is the primitive bulk delete
// uses to lift a replacement node up through a vacated slot.
func (r *Repr[N]) MoveFromTo(src, dst int) {
	utils.Assert(!r.IsNil(src) && r.IsNil(dst), "moveFromTo: invalid src/dst")
	r.data[dst] = r.data[src]
	r.mask[dst] = true
	var zero N
	r.data[src] = zero
	r.mask[src] = false
}

// --- traversal primitives -----------------------------------------------
//
// These step between nodes using only O(1) bit arithmetic on the heap
// index (heapidx.LeftEnclosing / RightEnclosing), never a parent pointer
// or an auxiliary stack (spec §4.1).

// InOrder visits every present node in root's subtree in key order.
// visit returning true stops the traversal early.
func (r *Repr[N]) InOrder(root int, visit func(idx int) bool) {
	if r.IsNil(root) {
		return
	}
	r.InOrderFrom(r.FindMin(root), root, visit)
}

// InOrderFrom is InOrder starting at an arbitrary in-subtree index
// (used by range queries to skip directly to the first matching key).
func (r *Repr[N]) InOrderFrom(from, root int, visit func(idx int) bool) {
	if r.IsNil(root) {
		return
	}
	next := from
	for {
		if visit(next) {
			return
		}
		if r.HasRight(next) {
			next = r.FindMin(heapidx.Right(next))
		} else {
			lEnc := heapidx.LeftEnclosing(next + 1)
			if lEnc <= root+1 {
				return
			}
			next = heapidx.Parent(lEnc - 1)
		}
	}
}

// ReverseInOrder visits every present node in root's subtree from the
// maximum key down to the minimum.
func (r *Repr[N]) ReverseInOrder(root int, visit func(idx int)) {
	if r.IsNil(root) {
		return
	}
	next := r.FindMax(root)
	for {
		visit(next)
		if r.HasLeft(next) {
			next = r.FindMax(heapidx.Left(next))
		} else {
			rEnc := heapidx.RightEnclosing(next + 1)
			if rEnc <= root+1 {
				return
			}
			next = heapidx.Parent(rEnc - 1)
		}
	}
}

// PreOrder visits every present node in root's subtree, root first.
func (r *Repr[N]) PreOrder(root int, visit func(idx int)) {
	if r.IsNil(root) {
		return
	}
	next := root
	for {
		visit(next)
		switch {
		case r.HasLeft(next):
			next = heapidx.Left(next)
		case r.HasRight(next):
			next = heapidx.Right(next)
		default:
			// Climb until we reach an ancestor (still inside root's
			// subtree) whose right child we haven't descended into yet.
			climbed := false
			for next != root {
				parent := heapidx.Parent(next)
				if next == heapidx.Left(parent) && r.HasRight(parent) {
					next = heapidx.Right(parent)
					climbed = true
					break
				}
				next = parent
			}
			if !climbed {
				return
			}
		}
	}
}

// --- slot-stack scaffolding (shared by plain and interval bulk delete) --
//
// slotsMin/slotsMax record heap indices whose mask has been cleared but
// which are reserved to receive a replacement node later in the descent
// (spec §4.3, "Slot stacks"). Both stacks are kept: the source project
// notes one alone would suffice but measured a 3% regression from
// dropping it (spec §9), so this port keeps both.

// PushSlotMin reserves idx on the min-side scratch stack.
func (r *Repr[N]) PushSlotMin(idx int) { r.slotsMin = append(r.slotsMin, idx) }

// PopSlotMin discards the top of the min-side scratch stack.
func (r *Repr[N]) PopSlotMin() { r.slotsMin = r.slotsMin[:len(r.slotsMin)-1] }

// SlotMinHasOpen reports whether a min-side slot is awaiting a fill.
func (r *Repr[N]) SlotMinHasOpen() bool {
	return len(r.slotsMin) > 0 && r.slotsMin[len(r.slotsMin)-1] >= 0
}

// PushSlotMax reserves idx on the max-side scratch stack.
func (r *Repr[N]) PushSlotMax(idx int) { r.slotsMax = append(r.slotsMax, idx) }

// PopSlotMax discards the top of the max-side scratch stack.
func (r *Repr[N]) PopSlotMax() { r.slotsMax = r.slotsMax[:len(r.slotsMax)-1] }

// SlotMaxHasOpen reports whether a max-side slot is awaiting a fill.
func (r *Repr[N]) SlotMaxHasOpen() bool {
	return len(r.slotsMax) > 0 && r.slotsMax[len(r.slotsMax)-1] >= 0
}

// slotsClean reports whether both scratch stacks are empty, which must
// hold at every public-operation boundary (spec §3, invariant 5).
func (r *Repr[N]) slotsClean() bool { return len(r.slotsMin) == 0 && len(r.slotsMax) == 0 }

// AssertSlotsClean panics if either scratch stack is non-empty. Callers
// invoke this after a bulk operation completes.
func (r *Repr[N]) AssertSlotsClean() {
	utils.Assert(r.slotsClean(), "bulk delete left scratch slots open")
}

// FillSlotMin moves the node at idx into the oldest still-open slot on the
// min-side stack and marks that entry filled (-1). Filled entries always
// form the bottom of the stack; an entry stays on the stack until the
// DescendRightWithSlot call that pushed it pops it.
func (r *Repr[N]) FillSlotMin(idx int) {
	n := slices.IndexFunc(r.slotsMin, func(slot int) bool { return slot >= 0 })
	dst := r.slotsMin[n]
	r.slotsMin[n] = -1
	r.MoveFromTo(idx, dst)
}

// FillSlotMax is the mirror of FillSlotMin using slotsMax.
func (r *Repr[N]) FillSlotMax(idx int) {
	n := slices.IndexFunc(r.slotsMax, func(slot int) bool { return slot >= 0 })
	dst := r.slotsMax[n]
	r.slotsMax[n] = -1
	r.MoveFromTo(idx, dst)
}

// DescendLeft calls f with idx's left child if present, otherwise
// does nothing.
func (r *Repr[N]) DescendLeft(idx int, f func(childIdx int)) {
	child := heapidx.Left(idx)
	if !r.IsNil(child) {
		f(child)
	}
}

// DescendRight calls f with idx's right child if present, otherwise
// does nothing.
func (r *Repr[N]) DescendRight(idx int, f func(childIdx int)) {
	child := heapidx.Right(idx)
	if !r.IsNil(child) {
		f(child)
	}
}

// DescendLeftWithSlot pushes idx onto slotsMax, recurses into idx's left
// child via f, then pops. It reports whether idx ended up nil (i.e. the
// slot was not filled by the recursive call and must be filled by the
// caller). If the left child is itself nil, idx is immediately reported
// unfillable (true) without pushing a slot.
func (r *Repr[N]) DescendLeftWithSlot(idx int, f func(childIdx int)) bool {
	child := heapidx.Left(idx)
	if r.IsNil(child) {
		return true
	}
	r.PushSlotMax(idx)
	f(child)
	r.PopSlotMax()
	return r.IsNil(idx)
}

// DescendRightWithSlot is the mirror of DescendLeftWithSlot using
// slotsMin.
func (r *Repr[N]) DescendRightWithSlot(idx int, f func(childIdx int)) bool {
	child := heapidx.Right(idx)
	if r.IsNil(child) {
		return true
	}
	r.PushSlotMin(idx)
	f(child)
	r.PopSlotMin()
	return r.IsNil(idx)
}

// DescendFillRight descends right from idx reserving a min-slot, filling
// it (and any slots below) from that subtree. Reports whether idx ended
// up nil.
func (r *Repr[N]) DescendFillRight(idx int) bool {
	return r.DescendRightWithSlot(idx, func(child int) {
		r.FillSlotsMin(child)
	})
}

// DescendFillLeft is the mirror of DescendFillRight using slotsMax.
func (r *Repr[N]) DescendFillLeft(idx int) bool {
	return r.DescendLeftWithSlot(idx, func(child int) {
		r.FillSlotsMax(child)
	})
}

// FillSlotsMin walks the left spine of idx's subtree filling the
// outstanding min-side slots from its minimum elements, descending right
// to keep filling once the spine is consumed. Reports whether every open
// min-slot has now been filled.
func (r *Repr[N]) FillSlotsMin(idx int) bool {
	utils.Assert(!r.IsNil(idx), "fillSlotsMin: nil idx")
	if r.HasLeft(idx) {
		if r.FillSlotsMin(heapidx.Left(idx)) {
			return true
		}
	}
	utils.Assert(r.SlotMinHasOpen(), "fillSlotsMin: no open slot")
	r.FillSlotMin(idx)
	done := !r.DescendFillRight(idx)
	return done || !r.SlotMinHasOpen()
}

// FillSlotsMax is the mirror of FillSlotsMin using slotsMax.
func (r *Repr[N]) FillSlotsMax(idx int) bool {
	utils.Assert(!r.IsNil(idx), "fillSlotsMax: nil idx")
	if r.HasRight(idx) {
		if r.FillSlotsMax(heapidx.Right(idx)) {
			return true
		}
	}
	utils.Assert(r.SlotMaxHasOpen(), "fillSlotsMax: no open slot")
	r.FillSlotMax(idx)
	done := !r.DescendFillLeft(idx)
	return done || !r.SlotMaxHasOpen()
}

// ConsumeSubtree removes every node in root's subtree, emitting each one
// via emit in key order.
func (r *Repr[N]) ConsumeSubtree(root int, emit func(N)) {
	if r.IsNil(root) {
		return
	}
	r.InOrderFrom(r.FindMin(root), root, func(idx int) bool {
		emit(r.Take(idx))
		return false
	})
}

// RebuildFromSorted places sorted (a key-ordered slice of nodes) back
// into an emptied tree using the same nearly-complete construction as
// BuildSorted. No operation in this module calls it: the filtered
// bulk-delete paths in plaintree and intervaltree work in place on the
// slot stacks instead.
// Precondition: r.Size() == 0 and len(sorted) <= r.Cap().
func (r *Repr[N]) RebuildFromSorted(sorted []N) {
	utils.Assert(r.size == 0, "rebuildFromSorted: tree not empty")
	utils.Assert(len(sorted) <= len(r.data), "rebuildFromSorted: too many survivors for capacity")
	if len(sorted) == 0 {
		return
	}
	buildRecInto(sorted, 0, r.data, r.mask)
	r.size = len(sorted)
}

func buildRecInto[N any](sorted []N, idx int, data []N, mask []bool) {
	m := len(sorted)
	if m == 0 {
		return
	}
	mid := heapidx.BuildSelectRoot(m)
	buildRecInto(sorted[:mid], heapidx.Left(idx), data, mask)
	buildRecInto(sorted[mid+1:], heapidx.Right(idx), data, mask)
	data[idx] = sorted[mid]
	mask[idx] = true
}

// --- diagnostics ---------------------------------------------------------

// DebugArray renders the backing array slot by slot, "X" for absent
// slots, for use in test failure messages.
func (r *Repr[N]) DebugArray() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[size=%d: ", r.size)
	for i := range r.data {
		if i > 0 {
			b.WriteString(", ")
		}
		if r.mask[i] {
			fmt.Fprintf(&b, "%v", r.data[i])
		} else {
			b.WriteString("X")
		}
	}
	b.WriteString("]")
	return b.String()
}

// String renders the tree shape as an indented outline, root first, each
// deeper level indented two more spaces, absent children omitted
// (grounded on the ASCII-tree String() methods common to the pack's BST
// examples, e.g. gods' avltree and yonieas/dsa's binary_search_tree).
func (r *Repr[N]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Repr(size=%d, cap=%d)\n", r.size, len(r.data))
	r.fmtSubtree(&b, 0, 0)
	return b.String()
}

func (r *Repr[N]) fmtSubtree(b *strings.Builder, idx, depth int) {
	if r.IsNil(idx) {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, "%v\n", r.data[idx])
	r.fmtSubtree(b, heapidx.Left(idx), depth+1)
	r.fmtSubtree(b, heapidx.Right(idx), depth+1)
}
