// Package intervaltree implements the interval-tree variant of the
// teardown tree: closed intervals ordered by (lo, hi), augmented with a
// per-node maxb (the maximum hi across the node and its descendants),
// supporting point deletion, overlap query, overlap deletion, and
// filtered overlap deletion (spec §4.4).
package intervaltree

import "cmp"

// Interval is a closed interval [Lo(), Hi()] with Lo() <= Hi(). Intervals
// are totally ordered by Lo() then Hi() (spec §3).
type Interval[B cmp.Ordered] interface {
	Lo() B
	Hi() B
}

// KeyInterval is a ready-made Interval over any ordered type, so callers
// with a plain numeric-range use case don't have to write their own
// Interval implementation (SUPPLEMENT, grounded on original_source's
// applied/interval.rs convenience interval type).
type KeyInterval[K cmp.Ordered] struct {
	LoVal, HiVal K
}

func (k KeyInterval[K]) Lo() K { return k.LoVal }
func (k KeyInterval[K]) Hi() K { return k.HiVal }

// NewKeyInterval builds a KeyInterval, panicking if lo > hi (an interval
// is required to be non-decreasing, spec §3: "a <= b").
func NewKeyInterval[K cmp.Ordered](lo, hi K) KeyInterval[K] {
	if hi < lo {
		panic("intervaltree: interval hi < lo")
	}
	return KeyInterval[K]{LoVal: lo, HiVal: hi}
}

// cmpIv orders intervals by Lo then Hi, matching spec §3's "total order
// by a then b".
func cmpIv[B cmp.Ordered, Iv Interval[B]](a, b Iv) int {
	if c := cmp.Compare(a.Lo(), b.Lo()); c != 0 {
		return c
	}
	return cmp.Compare(a.Hi(), b.Hi())
}

// overlaps implements the predicate picked for the open question in
// spec §9: x and y intersect iff x.Lo() < y.Hi() && y.Lo() < x.Hi(),
// applied consistently to both the maxb pruning test and this leaf
// check (see DESIGN.md).
func overlaps[B cmp.Ordered, Iv Interval[B]](x, y Iv) bool {
	return x.Lo() < y.Hi() && y.Lo() < x.Hi()
}
