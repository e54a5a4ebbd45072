// Package heapidx implements the implicit-heap index arithmetic the
// teardown tree is built on: for a node at index i, its children live at
// 2i+1 and 2i+2, its parent at (i-1)/2. No pointers, no allocation.
package heapidx

import "math/bits"

// Left returns the index of i's left child.
func Left(i int) int { return 2*i + 1 }

// Right returns the index of i's right child.
func Right(i int) int { return 2*i + 2 }

// Parent returns the index of i's parent. Undefined for i == 0.
func Parent(i int) int { return (i - 1) / 2 }

// BuildSelectRoot picks the root offset for a nearly-complete tree built
// from m sorted items, guaranteeing the right subtree is never deeper
// than the left (see spec §4.1). m must be > 0.
func BuildSelectRoot(m int) int {
	x := highestPowerOfTwoLE(m)
	if x/2 <= (m-x)+1 {
		return x - 1
	}
	return m - x/2
}

func highestPowerOfTwoLE(n int) int {
	x := 1
	for x*2 <= n {
		x *= 2
	}
	return x
}

// Height returns the height of a nearly-complete tree holding n items:
// ceil(log2(n+1)).
func Height(n int) int {
	if n <= 0 {
		return 0
	}
	h := 0
	for (1 << h) <= n {
		h++
	}
	return h
}

// LeftEnclosing returns the closest ancestor subtree A enclosing the
// 1-based index j such that A is the left child of its parent (or 0 if no
// such ancestor exists). j is considered to enclose itself: if j itself
// is a left child, LeftEnclosing(j) == j.
//
// This lets traversal advance between subtrees using O(1) bit arithmetic
// instead of parent pointers or a recursion stack (spec §4.1).
func LeftEnclosing(j int) int {
	if j&1 == 0 {
		return j
	}
	if j&2 == 0 {
		return j >> 1
	}
	shift := trailingZeros(j + 1)
	return j >> shift
}

// RightEnclosing is the mirror of LeftEnclosing: the closest ancestor
// subtree enclosing 1-based index j such that the ancestor is a right
// child. When no such ancestor exists (j lies on the root's leftmost
// path) it returns 1, the root itself, since the root's 1-based index is
// odd like every right child's.
func RightEnclosing(j int) int {
	if j&1 == 1 {
		return j
	}
	if j&2 == 1 {
		return j >> 1
	}
	shift := trailingZeros(j)
	return j >> shift
}

func trailingZeros(x int) int {
	return bits.TrailingZeros(uint(x))
}
