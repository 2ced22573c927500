package interval

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool { return math.Abs(a-b) < eps }

func TestNewValidation(t *testing.T) {
	iv, err := New(1.0, 2.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if low, _ := iv.Low(); low != 1.0 {
		t.Fatalf("low = %v", low)
	}
	if _, err := New(2.0, 1.0); err == nil {
		t.Fatalf("expected error for inverted bounds")
	}
	if _, err := New(math.NaN(), math.NaN()); err == nil {
		t.Fatalf("expected error for NaN bounds")
	}
	if _, err := New(1.0, math.NaN()); err == nil {
		t.Fatalf("expected error for a NaN high bound")
	}
}

func TestContains(t *testing.T) {
	two, _ := New(0.0, 10.0)
	for _, x := range []float64{0, 5, 10} {
		if !two.Contains(x) {
			t.Fatalf("[0,10] should contain %v", x)
		}
	}
	if two.Contains(-0.1) || two.Contains(10.1) {
		t.Fatalf("[0,10] contains out-of-range value")
	}
	up := NewUpper(3.0)
	if !up.Contains(-1e9) || !up.Contains(3.0) || up.Contains(3.1) {
		t.Fatalf("(<-,3] membership wrong")
	}
	lo := NewLower(3.0)
	if !lo.Contains(1e9) || !lo.Contains(3.0) || lo.Contains(2.9) {
		t.Fatalf("[3,->) membership wrong")
	}
}

func TestDegenerate(t *testing.T) {
	point, _ := New(4, 4)
	if !point.IsDegenerate() {
		t.Fatalf("[4,4] should be degenerate")
	}
	if iv, _ := New(4, 5); iv.IsDegenerate() {
		t.Fatalf("[4,5] should not be degenerate")
	}
	if NewLower(4).IsDegenerate() {
		t.Fatalf("one-sided intervals are never degenerate")
	}
}

func TestOrderedTypes(t *testing.T) {
	iv, err := New("E", "L")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !iv.Contains("G") || iv.Contains("M") {
		t.Fatalf("string interval membership wrong")
	}
}

func TestString(t *testing.T) {
	two, _ := New(1.5, 2.5)
	cases := []struct {
		iv   Interval[float64]
		want string
	}{
		{two, "[1.5, 2.5]"},
		{NewUpper(2.5), "(<-, 2.5]"},
		{NewLower(1.5), "[1.5, ->)"},
	}
	for _, c := range cases {
		if got := c.iv.String(); got != c.want {
			t.Fatalf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestIntersectsIncludes(t *testing.T) {
	a, _ := New(0.0, 5.0)
	b, _ := New(4.0, 9.0)
	c, _ := New(6.0, 9.0)
	if !a.Intersects(b) || a.Intersects(c) {
		t.Fatalf("two-sided intersection wrong")
	}
	if !NewUpper(1.0).Intersects(NewLower(0.0)) {
		t.Fatalf("(<-,1] and [0,->) overlap")
	}
	if NewUpper(0.0).Intersects(NewLower(1.0)) {
		t.Fatalf("(<-,0] and [1,->) are disjoint")
	}
	inner, _ := New(1.0, 4.0)
	if !a.Includes(inner) || inner.Includes(a) {
		t.Fatalf("inclusion wrong")
	}
	if !NewLower(0.0).Includes(a) {
		t.Fatalf("[0,->) should include [0,5]")
	}
}

func TestArithmetic(t *testing.T) {
	a, _ := New(1.0, 2.0)
	b, _ := New(10.0, 20.0)
	sum, err := Add(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if LowOrInf(sum) != 11 || HighOrInf(sum) != 22 {
		t.Fatalf("sum = %v", sum)
	}
	diff, err := Sub(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if LowOrInf(diff) != 8 || HighOrInf(diff) != 19 {
		t.Fatalf("diff = %v", diff)
	}
	neg := Neg(a)
	if LowOrInf(neg) != -2 || HighOrInf(neg) != -1 {
		t.Fatalf("neg = %v", neg)
	}

	// one-sided propagation
	up, err := Add(NewUpper(5.0), a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !up.IsUpperBounded() || HighOrInf(up) != 7 {
		t.Fatalf("one-sided sum = %v", up)
	}
	if !Neg(NewUpper(5.0)).IsLowerBounded() {
		t.Fatalf("negating (<-,5] should flip the bounded side")
	}
	if _, err := Add(NewUpper(0.0), NewLower(0.0)); err == nil {
		t.Fatalf("expected error for an unbounded result")
	}
}

func TestWidth(t *testing.T) {
	a, _ := New(1.0, 4.0)
	if w := Width(a); !almostEqual(w, 3, 1e-12) {
		t.Fatalf("width = %v", w)
	}
	if !math.IsInf(Width(NewLower(1.0)), 1) {
		t.Fatalf("one-sided width should be +Inf")
	}
}

func TestRelativeTo(t *testing.T) {
	ref, _ := New(100.0, 110.0)
	obs, _ := New(121.0, 132.0)
	rel, err := RelativeTo(obs, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	low, _ := rel.Low()
	high, _ := rel.High()
	if !almostEqual(low, 0.1, 1e-12) || !almostEqual(high, 0.32, 1e-12) {
		t.Fatalf("relative = %v", rel)
	}

	zeroRef, _ := New(0.0, 1.0)
	if _, err := RelativeTo(obs, zeroRef); err == nil {
		t.Fatalf("expected error for zero reference bound")
	}
	if _, err := RelativeTo(NewUpper(1.0), NewUpper(1.0)); err == nil {
		t.Fatalf("expected error for same-direction one-sided pair")
	}
}
