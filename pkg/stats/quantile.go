package stats

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/yasi-python/cistats/pkg/interval"
)

// Quantile is a count-only accumulator for quantile interval estimation:
// the rank bounds depend only on the population size.
type Quantile struct {
	population int
}

func NewQuantile(population int) Quantile { return Quantile{population: population} }

func (q Quantile) Population() int { return q.population }

// Merge combines two populations.
func (q Quantile) Merge(other Quantile) Quantile {
	return Quantile{population: q.population + other.population}
}

// Index returns the 0-based rank of the given quantile in a sorted sample
// of this population, floor(quantile*N) clamped to the last index.
// Unlike RankInterval, the endpoints 0 and 1 are allowed here.
func (q Quantile) Index(quantile float64) (int, error) {
	if quantile < 0 || quantile > 1 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidQuantile, quantile)
	}
	if q.population == 0 {
		return 0, fmt.Errorf("%w: empty population", ErrNotEnoughData)
	}
	return q.index(quantile), nil
}

func (q Quantile) index(p float64) int {
	i := int(math.Floor(p * float64(q.population)))
	if i >= q.population {
		i = q.population - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// RankInterval returns the confidence interval for the quantile as
// 0-based ranks into the sorted sample. The quantile is treated as a
// proportion of successes and the rank bounds come from its Wilson
// score interval. Needs at least 4 samples.
func (q Quantile) RankInterval(c Confidence, quantile float64) (interval.Interval[int], error) {
	if !(quantile > 0 && quantile < 1) {
		return interval.Interval[int]{}, fmt.Errorf("%w: got %v", ErrInvalidQuantile, quantile)
	}
	if q.population < 4 {
		return interval.Interval[int]{}, fmt.Errorf("%w: quantile interval needs at least 4 samples, got %d", ErrNotEnoughData, q.population)
	}
	successes := int(math.Round(quantile * float64(q.population)))
	low, high := wilsonBounds(ZValue(c), q.population, successes)
	switch c.side {
	case SideUpper:
		return interval.NewUpper(q.index(high)), nil
	case SideLower:
		return interval.NewLower(q.index(low)), nil
	default:
		return interval.New(q.index(low), q.index(high))
	}
}

// QuantileCI computes the confidence interval for the given quantile of
// samples, over any ordered type. The returned bounds are elements of
// samples. The samples are copied and sorted; use QuantileCISorted when
// the data is already in order.
func QuantileCI[T cmp.Ordered](c Confidence, samples []T, quantile float64) (interval.Interval[T], error) {
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	return QuantileCISorted(c, sorted, quantile)
}

// QuantileCISorted is QuantileCI over already sorted samples.
func QuantileCISorted[T cmp.Ordered](c Confidence, sorted []T, quantile float64) (interval.Interval[T], error) {
	ranks, err := NewQuantile(len(sorted)).RankInterval(c, quantile)
	if err != nil {
		return interval.Interval[T]{}, err
	}
	switch {
	case ranks.IsUpperBounded():
		high, _ := ranks.High()
		return interval.NewUpper(sorted[high]), nil
	case ranks.IsLowerBounded():
		low, _ := ranks.Low()
		return interval.NewLower(sorted[low]), nil
	default:
		low, _ := ranks.Low()
		high, _ := ranks.High()
		return interval.New(sorted[low], sorted[high])
	}
}

// MedianCI is QuantileCI at the 0.5 quantile.
func MedianCI[T cmp.Ordered](c Confidence, samples []T) (interval.Interval[T], error) {
	return QuantileCI(c, samples, 0.5)
}
