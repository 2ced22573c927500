package stats

import (
	"errors"
	"testing"
)

func mustTwoSided(t *testing.T, level float64) Confidence {
	t.Helper()
	c, err := TwoSided(level)
	if err != nil {
		t.Fatalf("TwoSided(%v): %v", level, err)
	}
	return c
}

func TestMedianCI(t *testing.T) {
	data := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	ci, err := MedianCI(mustTwoSided(t, 0.95), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	low, _ := ci.Low()
	high, _ := ci.High()
	if low != 5 || high != 12 {
		t.Fatalf("95%% median ci = %v, want [5, 12]", ci)
	}

	ci, _ = MedianCI(mustTwoSided(t, 0.8), data)
	low, _ = ci.Low()
	high, _ = ci.High()
	if low != 6 || high != 11 {
		t.Fatalf("80%% median ci = %v, want [6, 11]", ci)
	}
}

func TestQuantileCI(t *testing.T) {
	data := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	ci, err := QuantileCI(mustTwoSided(t, 0.5), data, 0.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	low, _ := ci.Low()
	high, _ := ci.High()
	if low != 5 || high != 8 {
		t.Fatalf("40th percentile ci = %v, want [5, 8]", ci)
	}
}

func TestQuantileCISorted(t *testing.T) {
	data := []float64{8, 11, 12, 13, 15, 17, 19, 20, 21, 21, 22, 23, 25, 26, 28}
	ci, err := QuantileCISorted(mustTwoSided(t, 0.95), data, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	low, _ := ci.Low()
	high, _ := ci.High()
	if low != 15 || high != 23 {
		t.Fatalf("median ci = %v, want [15, 23]", ci)
	}

	ci, _ = QuantileCISorted(mustTwoSided(t, 0.95), data, 0.4)
	low, _ = ci.Low()
	high, _ = ci.High()
	if low != 12 || high != 21 {
		t.Fatalf("40th percentile ci = %v, want [12, 21]", ci)
	}

	ci, _ = QuantileCISorted(mustTwoSided(t, 0.999), data, 0.867)
	low, _ = ci.Low()
	high, _ = ci.High()
	if low != 19 || high != 28 {
		t.Fatalf("86.7th percentile ci = %v, want [19, 28]", ci)
	}
}

func TestQuantileCIStrings(t *testing.T) {
	sorted := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O"}
	ci, err := QuantileCISorted(mustTwoSided(t, 0.95), sorted, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	low, _ := ci.Low()
	high, _ := ci.High()
	if low != "E" || high != "L" {
		t.Fatalf(`median ci = %v, want ["E", "L"]`, ci)
	}

	// same data shuffled, through the sorting entry point
	shuffled := []string{"J", "E", "M", "G", "K", "H", "N", "A", "C", "L", "F", "O", "D", "B", "I"}
	ci2, err := QuantileCI(mustTwoSided(t, 0.95), shuffled, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ci2 != ci {
		t.Fatalf("shuffled input gave %v, want %v", ci2, ci)
	}
}

func TestQuantileOneSided(t *testing.T) {
	data := []float64{8, 11, 12, 13, 15, 17, 19, 20, 21, 21, 22, 23, 25, 26, 28}

	lo, _ := LowerOneSided(0.975)
	ci, err := QuantileCISorted(lo, data, 0.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ci.IsLowerBounded() {
		t.Fatalf("expected lower-bounded interval, got %v", ci)
	}
	if low, _ := ci.Low(); low != 12 {
		t.Fatalf("lower one-sided ci = %v, want [12, ->)", ci)
	}

	up, _ := UpperOneSided(0.975)
	ci, err = QuantileCISorted(up, data, 0.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ci.IsUpperBounded() {
		t.Fatalf("expected upper-bounded interval, got %v", ci)
	}
	if high, _ := ci.High(); high != 21 {
		t.Fatalf("upper one-sided ci = %v, want (<-, 21]", ci)
	}
}

func TestRankInterval(t *testing.T) {
	q := NewQuantile(15)
	ranks, err := q.RankInterval(mustTwoSided(t, 0.95), 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	low, _ := ranks.Low()
	high, _ := ranks.High()
	if low != 4 || high != 11 {
		t.Fatalf("rank interval = %v, want [4, 11]", ranks)
	}

	ranks, _ = q.RankInterval(mustTwoSided(t, 0.8), 0.5)
	low, _ = ranks.Low()
	high, _ = ranks.High()
	if low != 5 || high != 10 {
		t.Fatalf("rank interval = %v, want [5, 10]", ranks)
	}
}

func TestQuantileIndex(t *testing.T) {
	q := NewQuantile(5)
	cases := []struct {
		quantile float64
		want     int
	}{
		{0, 0}, {0.25, 1}, {0.5, 2}, {0.75, 3}, {1, 4},
	}
	for _, c := range cases {
		got, err := q.Index(c.quantile)
		if err != nil {
			t.Fatalf("Index(%v): %v", c.quantile, err)
		}
		if got != c.want {
			t.Fatalf("Index(%v) = %d, want %d", c.quantile, got, c.want)
		}
	}
	if _, err := q.Index(1.5); !errors.Is(err, ErrInvalidQuantile) {
		t.Fatalf("expected ErrInvalidQuantile, got %v", err)
	}
}

func TestQuantileMerge(t *testing.T) {
	m := NewQuantile(6).Merge(NewQuantile(9))
	if m.Population() != 15 {
		t.Fatalf("merged population = %d", m.Population())
	}
	ranks, err := m.RankInterval(Default(), 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	low, _ := ranks.Low()
	high, _ := ranks.High()
	if low != 4 || high != 11 {
		t.Fatalf("rank interval after merge = %v", ranks)
	}
}

func TestQuantileErrors(t *testing.T) {
	data := []int{1, 2, 3, 4, 5}
	for _, q := range []float64{0, 1, -0.2, 1.2} {
		if _, err := QuantileCI(Default(), data, q); !errors.Is(err, ErrInvalidQuantile) {
			t.Fatalf("quantile %v: expected ErrInvalidQuantile, got %v", q, err)
		}
	}
	if _, err := QuantileCI(Default(), []int{1, 2, 3}, 0.5); !errors.Is(err, ErrNotEnoughData) {
		t.Fatalf("expected ErrNotEnoughData for 3 samples, got %v", err)
	}
}

func TestQuantileBoundsAreElements(t *testing.T) {
	data := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9, 3, 2, 3, 8, 4}
	members := map[float64]bool{}
	for _, x := range data {
		members[x] = true
	}
	for _, q := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		ci, err := QuantileCI(Default(), data, q)
		if err != nil {
			t.Fatalf("quantile %v: %v", q, err)
		}
		low, _ := ci.Low()
		high, _ := ci.High()
		if !members[low] || !members[high] {
			t.Fatalf("quantile %v: bounds %v are not sample elements", q, ci)
		}
		if low > high {
			t.Fatalf("quantile %v: inverted bounds %v", q, ci)
		}
	}
}
