package drivers

import "testing"

func TestRangeDriverDecide(t *testing.T) {
	cases := []struct {
		name       string
		lo, hi, key int
		wantLeft   bool
		wantRight  bool
	}{
		{"below range", 2, 5, 1, false, true},
		{"at lo", 2, 5, 2, true, true},
		{"inside range", 2, 5, 3, true, true},
		{"at hi", 2, 5, 5, true, false},
		{"above range", 2, 5, 6, true, false},
		{"empty range at lo tie-break", 3, 3, 3, true, true},
		{"empty range below lo", 3, 3, 2, false, true},
		{"empty range above lo", 3, 3, 4, true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := RangeDriver[int]{Lo: c.lo, Hi: c.hi}.Decide(c.key)
			if d.Left != c.wantLeft || d.Right != c.wantRight {
				t.Fatalf("Decide(%d) with [%d,%d) = %+v, want Left=%v Right=%v",
					c.key, c.lo, c.hi, d, c.wantLeft, c.wantRight)
			}
		})
	}
}

func TestRangeDriverTieBreakConsumes(t *testing.T) {
	d := RangeDriver[int]{Lo: 3, Hi: 3}.Decide(3)
	if !d.Consume() {
		t.Fatalf("Decide(3) with [3,3) should consume (tie-break), got %+v", d)
	}
}

func TestCmpRangeDriverDecide(t *testing.T) {
	// Mirrors TestRangeDriverDecide using comparator closures against a
	// fixed lo=2, hi=5 window.
	cmpLo := func(key int) int { return 2 - key }
	cmpHi := func(key int) int { return 5 - key }
	cases := []struct {
		key       int
		wantLeft  bool
		wantRight bool
	}{
		{1, false, true},
		{2, true, true},
		{3, true, true},
		{5, true, false},
		{6, true, false},
	}
	for _, c := range cases {
		d := CmpRangeDriver[int]{CmpLo: cmpLo, CmpHi: cmpHi}.Decide(c.key)
		if d.Left != c.wantLeft || d.Right != c.wantRight {
			t.Fatalf("Decide(%d) = %+v, want Left=%v Right=%v", c.key, d, c.wantLeft, c.wantRight)
		}
	}
}

func TestCmpRangeDriverTieBreakConsumes(t *testing.T) {
	cmpLo := func(key int) int { return 3 - key }
	cmpHi := func(key int) int { return 3 - key }
	d := CmpRangeDriver[int]{CmpLo: cmpLo, CmpHi: cmpHi}.Decide(3)
	if !d.Consume() {
		t.Fatalf("Decide(3) with lo=hi=3 should consume (tie-break), got %+v", d)
	}
}

func TestNoopFilter(t *testing.T) {
	var f NoopFilter[int]
	if !f.Accept(42) || !f.IsNoop() {
		t.Fatalf("NoopFilter should accept everything and report IsNoop")
	}
}

func TestFuncFilter(t *testing.T) {
	even := FuncFilter[int](func(k int) bool { return k%2 == 0 })
	if even.IsNoop() {
		t.Fatalf("FuncFilter must never report IsNoop")
	}
	if !even.Accept(4) || even.Accept(5) {
		t.Fatalf("FuncFilter did not apply the predicate correctly")
	}
}
