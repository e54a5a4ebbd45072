package intervaltree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"teardowntree/internal/drivers"
	"teardowntree/internal/repr"
	"teardowntree/internal/sink"
)

func iv(lo, hi int) KeyInterval[int] { return NewKeyInterval(lo, hi) }

func entries(ivs ...KeyInterval[int]) []repr.Entry[KeyInterval[int], string] {
	out := make([]repr.Entry[KeyInterval[int], string], len(ivs))
	for i, v := range ivs {
		out[i] = repr.Entry[KeyInterval[int], string]{Key: v, Val: "v"}
	}
	return out
}

func keysOf(es []repr.Entry[KeyInterval[int], string]) []KeyInterval[int] {
	out := make([]KeyInterval[int], len(es))
	for i, e := range es {
		out[i] = e.Key
	}
	return out
}

// checkMaxb verifies invariant 4 of spec §3: every present node's maxb
// equals the max Hi() across itself and its present children.
func checkMaxb(t *testing.T, r *repr.Repr[Node[int, KeyInterval[int], string]]) {
	t.Helper()
	for i := 0; i < r.Cap(); i++ {
		if r.IsNil(i) {
			continue
		}
		n := r.NodeCopy(i)
		want := n.Key().Hi()
		if r.HasLeft(i) {
			if lm := r.NodeCopy(2*i + 1).Maxb; lm > want {
				want = lm
			}
		}
		if r.HasRight(i) {
			if rm := r.NodeCopy(2*i + 2).Maxb; rm > want {
				want = rm
			}
		}
		require.Equal(t, want, n.Maxb, "maxb mismatch at index %d", i)
	}
}

func checkIntegrity(t *testing.T, r *repr.Repr[Node[int, KeyInterval[int], string]]) {
	t.Helper()
	for i := 0; i < r.Cap(); i++ {
		if !r.IsNil(i) && i > 0 {
			parent := (i - 1) / 2
			require.False(t, r.IsNil(parent), "index %d present but parent %d absent", i, parent)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	m := New[int](entries(iv(0, 2), iv(1, 3), iv(4, 5)))
	require.Equal(t, 3, m.Size())
	checkMaxb(t, m.r)
	checkIntegrity(t, m.r)
}

// TestBoundaryScenario4 is spec §8 scenario 4: {[0,2],[1,3],[4,5]},
// delete_overlap([2,4]) -> only [1,3] overlaps.
func TestBoundaryScenario4(t *testing.T) {
	m := New[int](entries(iv(0, 2), iv(1, 3), iv(4, 5)))
	out := sink.NewSlice[repr.Entry[KeyInterval[int], string]](m.Size())
	m.DeleteOverlap(iv(2, 4), out)
	require.Equal(t, []KeyInterval[int]{iv(1, 3)}, keysOf(out.Items))
	require.Equal(t, 2, m.Size())
	require.True(t, m.Contains(iv(0, 2)))
	require.True(t, m.Contains(iv(4, 5)))
	checkMaxb(t, m.r)
	checkIntegrity(t, m.r)
}

func TestQueryOverlapNonDestructive(t *testing.T) {
	m := New[int](entries(iv(0, 2), iv(1, 3), iv(4, 5), iv(10, 20)))
	out := sink.NewSlice[repr.Entry[KeyInterval[int], string]](m.Size())
	m.QueryOverlap(iv(2, 4), out)
	require.Equal(t, []KeyInterval[int]{iv(1, 3)}, keysOf(out.Items))
	require.Equal(t, 4, m.Size())
}

func TestDeletePointRepairsMaxb(t *testing.T) {
	m := New[int](entries(iv(0, 2), iv(1, 3), iv(4, 5), iv(10, 20), iv(11, 12)))
	v, ok := m.Delete(iv(10, 20))
	require.True(t, ok)
	require.Equal(t, "v", v)
	require.Equal(t, 4, m.Size())
	require.False(t, m.Contains(iv(10, 20)))
	checkMaxb(t, m.r)
	checkIntegrity(t, m.r)

	_, ok = m.Delete(iv(99, 100))
	require.False(t, ok)
}

func TestDeleteOverlapFullWipe(t *testing.T) {
	m := New[int](entries(iv(0, 2), iv(1, 3), iv(4, 5)))
	out := sink.NewSlice[repr.Entry[KeyInterval[int], string]](m.Size())
	m.DeleteOverlap(iv(-100, 100), out)
	require.Len(t, out.Items, 3)
	require.Equal(t, 0, m.Size())
	require.True(t, m.IsEmpty())
}

func TestFilterOverlapKeepsRejected(t *testing.T) {
	m := New[int](entries(iv(0, 2), iv(1, 3), iv(2, 6), iv(4, 5)))
	onlyShort := drivers.FuncFilter[KeyInterval[int]](func(k KeyInterval[int]) bool { return k.Hi()-k.Lo() <= 2 })
	out := sink.NewSlice[repr.Entry[KeyInterval[int], string]](m.Size())
	m.FilterOverlap(iv(1, 5), onlyShort, out)
	require.Equal(t, []KeyInterval[int]{iv(0, 2), iv(1, 3), iv(4, 5)}, keysOf(out.Items))
	require.True(t, m.Contains(iv(2, 6)))
	checkMaxb(t, m.r)
	checkIntegrity(t, m.r)
}

func TestSizeConservation(t *testing.T) {
	m := New[int](entries(iv(0, 2), iv(1, 3), iv(2, 6), iv(4, 5), iv(8, 9)))
	before := m.Size()
	out := sink.NewSlice[repr.Entry[KeyInterval[int], string]](before)
	m.DeleteOverlap(iv(1, 5), out)
	require.Equal(t, before, len(out.Items)+m.Size())
}

func TestRefillCycle(t *testing.T) {
	ivs := []KeyInterval[int]{iv(0, 2), iv(1, 3), iv(2, 6), iv(4, 5), iv(8, 9)}
	master := New[int](entries(ivs...))
	clone := New[int](entries(ivs...))
	clone.Clear()
	clone.Refill(master)

	for cycle := 0; cycle < 5; cycle++ {
		out := sink.NewSlice[repr.Entry[KeyInterval[int], string]](clone.Size())
		clone.DeleteOverlap(iv(-1000, 1000), out)
		require.Len(t, out.Items, len(ivs))
		require.Equal(t, 0, clone.Size())
		clone.Refill(master)
		require.Equal(t, len(ivs), clone.Size())
		checkMaxb(t, clone.r)
		checkIntegrity(t, clone.r)
	}
}

func TestSetBasics(t *testing.T) {
	s := NewSet[int]([]KeyInterval[int]{iv(0, 2), iv(1, 3), iv(4, 5)})
	require.True(t, s.Contains(iv(1, 3)))
	require.Equal(t, 3, s.Size())
	out := sink.NewSlice[KeyInterval[int]](s.Size())
	s.DeleteOverlap(iv(2, 4), out)
	require.Equal(t, []KeyInterval[int]{iv(1, 3)}, out.Items)
	require.Equal(t, 2, s.Size())
}

func TestNewKeyIntervalPanicsOnInverted(t *testing.T) {
	require.Panics(t, func() { NewKeyInterval(5, 1) })
}
