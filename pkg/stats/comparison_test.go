package stats

import (
	"errors"
	"testing"
)

// zinc concentration in bottom and surface water of the same river spots
var zincBottom = []float64{0.430, 0.266, 0.567, 0.531, 0.707, 0.716, 0.651, 0.589, 0.469, 0.723}
var zincSurface = []float64{0.415, 0.238, 0.390, 0.410, 0.605, 0.609, 0.632, 0.523, 0.411, 0.612}

// weight gain of rats on high and low protein diets
var highProtein = []float64{134, 146, 104, 119, 124, 161, 107, 83, 113, 129, 97, 123}
var lowProtein = []float64{70, 118, 101, 85, 107, 132, 94}

func TestPairedCI(t *testing.T) {
	two, _ := TwoSided(0.95)
	ci, err := PairedCI(two, zincBottom, zincSurface)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	low, _ := ci.Low()
	high, _ := ci.High()
	if !almostEqual(low, 0.043006, 5e-5) || !almostEqual(high, 0.117794, 5e-5) {
		t.Fatalf("ci = %v", ci)
	}
}

func TestPairedMismatchedLengths(t *testing.T) {
	two, _ := TwoSided(0.95)
	if _, err := PairedCI(two, []float64{1, 2, 3}, []float64{1, 2}); !errors.Is(err, ErrMismatchedLengths) {
		t.Fatalf("expected ErrMismatchedLengths, got %v", err)
	}
}

func TestPairedAccumulator(t *testing.T) {
	p := NewPaired()
	if err := p.Append(zincBottom, zincSurface); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Count() != 10 {
		t.Fatalf("count = %d", p.Count())
	}
	if !almostEqual(p.Mean(), 0.0804, 1e-9) {
		t.Fatalf("mean difference = %v", p.Mean())
	}

	// pairwise appends and a merge reach the same interval
	q1, q2 := NewPaired(), NewPaired()
	for i := range zincBottom {
		if i < 5 {
			q1.AppendPair(zincBottom[i], zincSurface[i])
		} else {
			q2.AppendPair(zincBottom[i], zincSurface[i])
		}
	}
	q1.Merge(q2)
	two, _ := TwoSided(0.95)
	ciWhole, _ := p.ConfidenceInterval(two)
	ciMerged, _ := q1.ConfidenceInterval(two)
	if !almostEqual(intervalLow(ciWhole), intervalLow(ciMerged), 1e-9) {
		t.Fatalf("merged ci %v != sequential ci %v", ciMerged, ciWhole)
	}
}

func TestUnpairedCI(t *testing.T) {
	two, _ := TwoSided(0.95)
	ci, err := UnpairedCI(two, highProtein, lowProtein)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	low, _ := ci.Low()
	high, _ := ci.High()
	// Welch interval around the observed difference of 19
	if !almostEqual(low, -2.188, 2e-2) || !almostEqual(high, 40.188, 2e-2) {
		t.Fatalf("ci = %v", ci)
	}
	if !almostEqual(low+high, 38, 1e-9) {
		t.Fatalf("ci %v is not centered on the mean difference", ci)
	}
}

func TestUnpairedAccumulator(t *testing.T) {
	u := NewUnpaired()
	u.AppendA(highProtein...)
	u.AppendB(lowProtein...)
	if u.CountA() != 12 || u.CountB() != 7 {
		t.Fatalf("counts = %d, %d", u.CountA(), u.CountB())
	}
	if !almostEqual(u.MeanDifference(), 19, 1e-9) {
		t.Fatalf("mean difference = %v", u.MeanDifference())
	}

	v1, v2 := NewUnpaired(), NewUnpaired()
	v1.AppendA(highProtein[:6]...)
	v1.AppendB(lowProtein[:3]...)
	v2.AppendA(highProtein[6:]...)
	v2.AppendB(lowProtein[3:]...)
	v1.Merge(v2)
	two, _ := TwoSided(0.95)
	ciWhole, _ := u.ConfidenceInterval(two)
	ciMerged, _ := v1.ConfidenceInterval(two)
	if !almostEqual(intervalLow(ciWhole), intervalLow(ciMerged), 1e-9) {
		t.Fatalf("merged ci %v != sequential ci %v", ciMerged, ciWhole)
	}
}

func TestUnpairedNotEnoughData(t *testing.T) {
	two, _ := TwoSided(0.95)
	if _, err := UnpairedCI(two, []float64{1}, []float64{2, 3}); !errors.Is(err, ErrNotEnoughData) {
		t.Fatalf("expected ErrNotEnoughData, got %v", err)
	}
}

func TestUnpairedZeroVariance(t *testing.T) {
	// two constant samples carry no spread to estimate a difference from
	two, _ := TwoSided(0.95)
	if _, err := UnpairedCI(two, []float64{5, 5, 5}, []float64{3, 3, 3}); !errors.Is(err, ErrDegenerateCase) {
		t.Fatalf("expected ErrDegenerateCase, got %v", err)
	}
}

func TestComparisonOneSided(t *testing.T) {
	up, _ := UpperOneSided(0.95)
	ci, err := UnpairedCI(up, highProtein, lowProtein)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ci.IsUpperBounded() {
		t.Fatalf("expected upper-bounded interval, got %v", ci)
	}
	lo, _ := LowerOneSided(0.95)
	ci, err = PairedCI(lo, zincBottom, zincSurface)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ci.IsLowerBounded() {
		t.Fatalf("expected lower-bounded interval, got %v", ci)
	}
}
