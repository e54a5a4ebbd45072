package plaintree

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/require"

	"teardowntree/internal/drivers"
	"teardowntree/internal/repr"
	"teardowntree/internal/sink"
)

func entries(keys ...int) []repr.Entry[int, string] {
	out := make([]repr.Entry[int, string], len(keys))
	for i, k := range keys {
		out[i] = repr.Entry[int, string]{Key: k, Val: string(rune('a' + k%26))}
	}
	return out
}

func keysOf(es []repr.Entry[int, string]) []int {
	out := make([]int, len(es))
	for i, e := range es {
		out[i] = e.Key
	}
	return out
}

// checkBST verifies invariant 1 of spec §8 (BST order, equal keys routed
// right): for every present node, its left subtree's max key is < its
// own key and its right subtree's min key is >= its own key.
func checkBST[K cmp.Ordered, V any](t *testing.T, r *repr.Repr[repr.Entry[K, V]]) {
	t.Helper()
	var walk func(idx int) (present bool, lo, hi K)
	walk = func(idx int) (bool, K, K) {
		if r.IsNil(idx) {
			var zero K
			return false, zero, zero
		}
		key := r.NodeCopy(idx).Key
		lo, hi := key, key
		if hasLeft, llo, lhi := walk(2*idx + 1); hasLeft {
			require.Less(t, lhi, key, "left subtree max must be < node key")
			lo = llo
		}
		if hasRight, rlo, rhi := walk(2*idx + 2); hasRight {
			require.True(t, key <= rlo, "node key must be <= right subtree min")
			hi = rhi
		}
		return true, lo, hi
	}
	walk(0)
}

// checkIntegrity verifies invariant 2 of spec §8: every present node's
// parent is present.
func checkIntegrity[K any, V any](t *testing.T, r *repr.Repr[repr.Entry[K, V]]) {
	t.Helper()
	for i := 0; i < r.Cap(); i++ {
		if !r.IsNil(i) && i > 0 {
			parent := (i - 1) / 2
			require.False(t, r.IsNil(parent), "index %d present but parent %d absent", i, parent)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	m := New(entries(5, 3, 1, 4, 2))
	var got []int
	out := sink.NewSlice[repr.Entry[int, string]](m.Size())
	m.QueryRange(-1000, 1000, out)
	for _, e := range out.Items {
		got = append(got, e.Key)
	}
	require.Equal(t, []int{1, 2, 3, 4, 5}, got)
	checkBST(t, m.r)
	checkIntegrity(t, m.r)
}

func TestBoundaryScenario1(t *testing.T) {
	m := New(entries(1, 2, 3, 4, 5))
	out := sink.NewSlice[repr.Entry[int, string]](m.Size())
	m.DeleteRange(2, 5, out)
	require.Equal(t, []int{2, 3, 4}, keysOf(out.Items))
	require.Equal(t, 2, m.Size())
	require.True(t, m.Contains(1))
	require.True(t, m.Contains(5))
	checkBST(t, m.r)
	checkIntegrity(t, m.r)
}

func TestBoundaryScenario2(t *testing.T) {
	m := New(entries(1, 2, 3, 4, 5))
	out := sink.NewSlice[repr.Entry[int, string]](m.Size())
	m.DeleteRange(0, 10, out)
	require.Equal(t, []int{1, 2, 3, 4, 5}, keysOf(out.Items))
	require.Equal(t, 0, m.Size())
	require.True(t, m.IsEmpty())
}

func TestBoundaryScenario3TieBreak(t *testing.T) {
	m := New(entries(1, 2, 3, 4, 5))
	out := sink.NewSlice[repr.Entry[int, string]](m.Size())
	m.DeleteRange(3, 3, out)
	require.Equal(t, []int{3}, keysOf(out.Items))
	require.Equal(t, 4, m.Size())
	require.False(t, m.Contains(3))
}

func TestBoundaryScenario5(t *testing.T) {
	keys := make([]int, 100)
	for i := range keys {
		keys[i] = i + 1
	}
	m := New(entries(keys...))
	out := sink.NewSlice[repr.Entry[int, string]](m.Size())
	m.DeleteRange(25, 75, out)
	require.Len(t, out.Items, 50)
	require.Equal(t, 25, out.Items[0].Key)
	require.Equal(t, 74, out.Items[len(out.Items)-1].Key)
	require.Equal(t, 50, m.Size())
	checkBST(t, m.r)
	checkIntegrity(t, m.r)
}

func TestRefillCycle(t *testing.T) {
	n := 50
	keys := make([]int, n)
	for i := range keys {
		keys[i] = i + 1
	}
	master := New(entries(keys...))
	clone := New(entries(keys...))
	clone.Clear()
	clone.Refill(master)

	for cycle := 0; cycle < 5; cycle++ {
		out := sink.NewSlice[repr.Entry[int, string]](clone.Size())
		clone.DeleteRange(0, n+1, out)
		require.Len(t, out.Items, n)
		require.Equal(t, 0, clone.Size())
		clone.Refill(master)
		require.Equal(t, n, clone.Size())
		checkBST(t, clone.r)
		checkIntegrity(t, clone.r)
	}
}

func TestRefillPreconditionPanics(t *testing.T) {
	master := New(entries(1, 2, 3))
	clone := New(entries(1, 2, 3))
	require.Panics(t, func() { clone.Refill(master) })
}

func TestTryRefillCapacityMismatch(t *testing.T) {
	master := New(entries(1, 2, 3))
	small := New(entries(1, 2))
	small.Clear()
	err := small.TryRefill(master)
	require.Error(t, err)
}

func TestDeletePoint(t *testing.T) {
	m := New(entries(5, 3, 1, 4, 2))
	v, ok := m.Delete(3)
	require.True(t, ok)
	require.Equal(t, string(rune('a'+3)), v)
	require.False(t, m.Contains(3))
	require.Equal(t, 4, m.Size())
	checkBST(t, m.r)
	checkIntegrity(t, m.r)

	_, ok = m.Delete(99)
	require.False(t, ok)
}

func TestFilterRangeKeepsRejected(t *testing.T) {
	m := New(entries(1, 2, 3, 4, 5, 6))
	onlyEven := drivers.FuncFilter[int](func(k int) bool { return k%2 == 0 })
	out := sink.NewSlice[repr.Entry[int, string]](m.Size())
	m.FilterRange(1, 7, onlyEven, out)
	require.Equal(t, []int{2, 4, 6}, keysOf(out.Items))
	require.True(t, m.Contains(1))
	require.True(t, m.Contains(3))
	require.True(t, m.Contains(5))
	require.False(t, m.Contains(2))
	checkBST(t, m.r)
	checkIntegrity(t, m.r)
}

func TestSizeConservation(t *testing.T) {
	keys := []int{10, 20, 30, 40, 50, 60, 70}
	m := New(entries(keys...))
	before := m.Size()
	out := sink.NewSlice[repr.Entry[int, string]](before)
	m.DeleteRange(25, 65, out)
	require.Equal(t, before, len(out.Items)+m.Size())
}

func TestSetBasics(t *testing.T) {
	s := NewSet([]int{3, 1, 2})
	require.True(t, s.Contains(2))
	require.Equal(t, 3, s.Size())
	out := sink.NewSlice[int](s.Size())
	s.DeleteRange(0, 10, out)
	require.Equal(t, []int{1, 2, 3}, out.Items)
	require.True(t, s.IsEmpty())
}

func TestDeleteRangeByMirrorsDeleteRange(t *testing.T) {
	m := New(entries(1, 2, 3, 4, 5))
	out := sink.NewSlice[repr.Entry[int, string]](m.Size())
	m.DeleteRangeBy(
		func(k int) int { return 2 - k },
		func(k int) int { return 5 - k },
		out,
	)
	require.Equal(t, []int{2, 3, 4}, keysOf(out.Items))
}
