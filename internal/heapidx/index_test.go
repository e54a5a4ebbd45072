package heapidx

import "testing"

func TestLeftRightParent(t *testing.T) {
	cases := []struct{ i, left, right, parent int }{
		{0, 1, 2, 0},
		{1, 3, 4, 0},
		{2, 5, 6, 0},
		{3, 7, 8, 1},
	}
	for _, c := range cases {
		if got := Left(c.i); got != c.left {
			t.Errorf("Left(%d) = %d, want %d", c.i, got, c.left)
		}
		if got := Right(c.i); got != c.right {
			t.Errorf("Right(%d) = %d, want %d", c.i, got, c.right)
		}
		if c.i != 0 {
			if got := Parent(c.i); got != c.parent {
				t.Errorf("Parent(%d) = %d, want %d", c.i, got, c.parent)
			}
		}
	}
}

func TestBuildSelectRootNearlyComplete(t *testing.T) {
	// For every m, verify the produced split keeps the right subtree no
	// deeper than the left, which is the invariant the bulk-delete engine
	// relies on (spec §4.1).
	var height func(n int) int
	height = func(n int) int {
		if n == 0 {
			return 0
		}
		mid := BuildSelectRoot(n)
		lh := height(mid)
		rh := height(n - mid - 1)
		if rh > lh {
			t.Fatalf("right subtree deeper than left for n=%d: lh=%d rh=%d", n, lh, rh)
		}
		if lh > rh {
			return 1 + lh
		}
		return 1 + rh
	}
	for m := 1; m <= 2000; m++ {
		height(m)
	}
}

func TestHeight(t *testing.T) {
	cases := []struct{ n, h int }{
		{0, 0}, {1, 1}, {2, 2}, {3, 2}, {4, 3}, {7, 3}, {8, 4},
	}
	for _, c := range cases {
		if got := Height(c.n); got != c.h {
			t.Errorf("Height(%d) = %d, want %d", c.n, got, c.h)
		}
	}
}

func TestEnclosingRoundTrip(t *testing.T) {
	// left_enclosing/right_enclosing should agree with the brute-force
	// ancestor walk for a broad range of 1-based indices.
	bruteLeft := func(j int) int {
		for j > 0 {
			if j&1 == 0 {
				return j
			}
			j >>= 1
		}
		return 0
	}
	bruteRight := func(j int) int {
		for j > 0 {
			if j&1 == 1 {
				return j
			}
			j >>= 1
		}
		return 0
	}
	for j := 1; j < 5000; j++ {
		if got, want := LeftEnclosing(j), bruteLeft(j); got != want {
			t.Errorf("LeftEnclosing(%d) = %d, want %d", j, got, want)
		}
		if got, want := RightEnclosing(j), bruteRight(j); got != want {
			t.Errorf("RightEnclosing(%d) = %d, want %d", j, got, want)
		}
	}
}
