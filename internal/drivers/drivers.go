// Package drivers implements the traversal decision and item-filter
// abstractions the bulk-delete engines in plaintree and intervaltree are
// built on (spec §4.2). A driver tells the descent whether the left
// and/or right subtree of the current node can still contain a match;
// a filter additionally vets an individual key once the driver has
// already decided it falls inside the deletion range.
package drivers

import "cmp"

// Decision reports, for one node during a bulk-delete descent, whether
// its left and/or right subtree may still hold matching entries.
// Consume (both true) means the node itself is inside the range.
type Decision struct {
	Left  bool
	Right bool
}

// Consume reports whether both sides hold, meaning the node at which
// this Decision was produced falls inside the deletion range.
func (d Decision) Consume() bool { return d.Left && d.Right }

// RangeDriver decides membership in the half-open range [Lo, Hi), with
// the tie-break from spec §7: a key equal to Lo is always consumed, even
// when Lo == Hi (so DeleteRange(k, k) acts as a point delete of k).
type RangeDriver[K cmp.Ordered] struct {
	Lo, Hi K
}

// Decide implements the range membership test described in spec §4.2:
// left = Lo <= key, right = key < Hi, with the tie-break from spec §7
// applied on the right side so a key equal to Lo is always consumed,
// even when Hi <= Lo.
func (d RangeDriver[K]) Decide(key K) Decision {
	return Decision{
		Left:  d.Lo <= key,
		Right: key < d.Hi || key == d.Lo,
	}
}

// CmpRangeDriver is the reference-keyed counterpart to RangeDriver
// (original_source's RangeRefDriver): callers supply three-way
// comparators against a query they never have to materialize as a
// concrete K (spec SUPPLEMENT: reference-keyed range deletion).
type CmpRangeDriver[K any] struct {
	// CmpLo(key) should return lo.Compare(key) in spirit: <=0 means
	// lo <= key.
	CmpLo func(key K) int
	// CmpHi(key) should return hi.Compare(key) in spirit: >0 means
	// key < hi.
	CmpHi func(key K) int
}

// Decide applies the same tie-break as RangeDriver: CmpLo(key) == 0
// means key == lo, which always consumes regardless of CmpHi.
func (d CmpRangeDriver[K]) Decide(key K) Decision {
	return Decision{
		Left:  d.CmpLo(key) <= 0,
		Right: d.CmpHi(key) > 0 || d.CmpLo(key) == 0,
	}
}

// ItemFilter is a per-entry predicate applied on top of a driver's range
// decision. IsNoop lets the bulk engine recognize the common case (no
// filtering at all) and skip the slower filtered code path.
type ItemFilter[K any] interface {
	Accept(key K) bool
	IsNoop() bool
}

// NoopFilter accepts every key; used by the unfiltered Delete* operations
// so they can share the filtered engine's entry point without incurring
// its cost (spec §4.2: "the bulk engine compiles to a faster path").
type NoopFilter[K any] struct{}

func (NoopFilter[K]) Accept(K) bool { return true }
func (NoopFilter[K]) IsNoop() bool  { return true }

// FuncFilter adapts a plain predicate function to ItemFilter.
type FuncFilter[K any] func(K) bool

func (f FuncFilter[K]) Accept(key K) bool { return f(key) }
func (FuncFilter[K]) IsNoop() bool        { return false }
