package stats

import (
	"fmt"
	"math"

	"github.com/yasi-python/cistats/pkg/interval"
)

// MeanKind selects which mean an accumulator estimates.
type MeanKind string

const (
	ArithmeticMean MeanKind = "arithmetic"
	GeometricMean  MeanKind = "geometric"
	HarmonicMean   MeanKind = "harmonic"
)

// ParseMeanKind maps a config/API string onto a MeanKind.
func ParseMeanKind(s string) (MeanKind, error) {
	switch MeanKind(s) {
	case ArithmeticMean, GeometricMean, HarmonicMean:
		return MeanKind(s), nil
	}
	return "", fmt.Errorf("unknown mean kind %q", s)
}

// MeanStats is an incremental mean estimator. Appending a sample that
// violates the estimator's domain returns an error and skips that sample;
// previously accepted samples stay accumulated.
type MeanStats interface {
	Append(samples ...float64) error
	Count() int
	Mean() float64
	Variance() float64
	StdDev() float64
	StdErr() float64
	ConfidenceInterval(c Confidence) (interval.Interval[float64], error)
	Snapshot() MeanSnapshot
}

// NewMean returns an empty accumulator of the given kind.
func NewMean(kind MeanKind) (MeanStats, error) {
	switch kind {
	case ArithmeticMean:
		return NewArithmetic(), nil
	case GeometricMean:
		return NewGeometric(), nil
	case HarmonicMean:
		return NewHarmonic(), nil
	}
	return nil, fmt.Errorf("unknown mean kind %q", kind)
}

// MeanCI computes the confidence interval for the mean of samples in one
// call. Needs at least two samples.
func MeanCI(kind MeanKind, c Confidence, samples []float64) (interval.Interval[float64], error) {
	acc, err := NewMean(kind)
	if err != nil {
		return interval.Interval[float64]{}, err
	}
	if err := acc.Append(samples...); err != nil {
		return interval.Interval[float64]{}, err
	}
	return acc.ConfidenceInterval(c)
}

// Arithmetic accumulates count, compensated sum, and the compensated sum
// of squared deviations (Welford's running update).
type Arithmetic struct {
	count int
	sum   KahanSum
	m2    KahanSum
}

func NewArithmetic() *Arithmetic { return &Arithmetic{} }

func (a *Arithmetic) Append(samples ...float64) error {
	for _, x := range samples {
		a.add(x)
	}
	return nil
}

func (a *Arithmetic) add(x float64) {
	var meanBefore float64
	if a.count > 0 {
		meanBefore = a.sum.Value() / float64(a.count)
	}
	a.sum.Add(x)
	a.count++
	if a.count > 1 {
		meanAfter := a.sum.Value() / float64(a.count)
		a.m2.Add((x - meanBefore) * (x - meanAfter))
	}
}

// Merge folds another accumulator into a, as if its samples had been
// appended here. Uses the Chan et al. pairwise combination for the
// squared deviations.
func (a *Arithmetic) Merge(b *Arithmetic) {
	if b.count == 0 {
		return
	}
	if a.count == 0 {
		*a = *b
		return
	}
	na, nb := float64(a.count), float64(b.count)
	delta := b.Mean() - a.Mean()
	a.m2.Merge(b.m2)
	a.m2.Add(delta * delta * na * nb / (na + nb))
	a.sum.Merge(b.sum)
	a.count += b.count
}

func (a *Arithmetic) Count() int { return a.count }

func (a *Arithmetic) Mean() float64 {
	if a.count == 0 {
		return math.NaN()
	}
	return a.sum.Value() / float64(a.count)
}

// Variance is the sample variance (n-1 denominator); NaN below two samples.
func (a *Arithmetic) Variance() float64 {
	if a.count < 2 {
		return math.NaN()
	}
	return a.m2.Value() / float64(a.count-1)
}

func (a *Arithmetic) StdDev() float64 { return math.Sqrt(a.Variance()) }

func (a *Arithmetic) StdErr() float64 {
	if a.count == 0 {
		return math.NaN()
	}
	return a.StdDev() / math.Sqrt(float64(a.count))
}

func (a *Arithmetic) ConfidenceInterval(c Confidence) (interval.Interval[float64], error) {
	if a.count < 2 {
		return interval.Interval[float64]{}, fmt.Errorf("%w: mean interval needs at least 2 samples, got %d", ErrNotEnoughData, a.count)
	}
	low, high := intervalBounds(c, a.Mean(), a.StdErr(), float64(a.count-1))
	return sidedInterval(c, low, high)
}

func (a *Arithmetic) Snapshot() MeanSnapshot {
	return MeanSnapshot{
		Kind:    ArithmeticMean,
		Count:   a.count,
		Sum:     a.sum.Value(),
		SumComp: a.sum.Compensation(),
		M2:      a.m2.Value(),
		M2Comp:  a.m2.Compensation(),
	}
}

// Geometric estimates the geometric mean by accumulating log-space
// arithmetic statistics. Samples must be strictly positive.
type Geometric struct {
	logs Arithmetic
}

func NewGeometric() *Geometric { return &Geometric{} }

func (g *Geometric) Append(samples ...float64) error {
	for _, x := range samples {
		if x <= 0 {
			return fmt.Errorf("%w: got %v", ErrNonPositiveValue, x)
		}
		g.logs.add(math.Log(x))
	}
	return nil
}

func (g *Geometric) Merge(other *Geometric) { g.logs.Merge(&other.logs) }

func (g *Geometric) Count() int { return g.logs.Count() }

func (g *Geometric) Mean() float64 { return math.Exp(g.logs.Mean()) }

// Variance approximates the variance of the geometric mean estimator by
// the delta method: Var[G] ~ G^2 * Var[log X].
func (g *Geometric) Variance() float64 {
	gm := g.Mean()
	return gm * gm * g.logs.Variance()
}

func (g *Geometric) StdDev() float64 { return math.Sqrt(g.Variance()) }

// StdErr is the Norris (1940) standard error of the geometric mean,
// G * sd(log X) / sqrt(n).
func (g *Geometric) StdErr() float64 {
	if g.logs.count == 0 {
		return math.NaN()
	}
	return g.Mean() * g.logs.StdDev() / math.Sqrt(float64(g.logs.count))
}

func (g *Geometric) ConfidenceInterval(c Confidence) (interval.Interval[float64], error) {
	ci, err := g.logs.ConfidenceInterval(c)
	if err != nil {
		return interval.Interval[float64]{}, err
	}
	// exp is increasing, so sidedness carries over unchanged
	switch {
	case ci.IsUpperBounded():
		high, _ := ci.High()
		return interval.NewUpper(math.Exp(high)), nil
	case ci.IsLowerBounded():
		low, _ := ci.Low()
		return interval.NewLower(math.Exp(low)), nil
	default:
		low, _ := ci.Low()
		high, _ := ci.High()
		return interval.New(math.Exp(low), math.Exp(high))
	}
}

func (g *Geometric) Snapshot() MeanSnapshot {
	s := g.logs.Snapshot()
	s.Kind = GeometricMean
	return s
}

// Harmonic estimates the harmonic mean by accumulating reciprocal-space
// arithmetic statistics. Samples must be nonzero.
type Harmonic struct {
	recips Arithmetic
}

func NewHarmonic() *Harmonic { return &Harmonic{} }

func (h *Harmonic) Append(samples ...float64) error {
	for _, x := range samples {
		if x == 0 {
			return fmt.Errorf("%w: harmonic mean undefined at 0", ErrZeroValue)
		}
		h.recips.add(1 / x)
	}
	return nil
}

func (h *Harmonic) Merge(other *Harmonic) { h.recips.Merge(&other.recips) }

func (h *Harmonic) Count() int { return h.recips.Count() }

func (h *Harmonic) Mean() float64 { return 1 / h.recips.Mean() }

// Variance approximates the variance of the harmonic mean estimator by
// the delta method: Var[H] ~ H^4 * Var[1/X].
func (h *Harmonic) Variance() float64 {
	hm := h.Mean()
	return hm * hm * hm * hm * h.recips.Variance()
}

func (h *Harmonic) StdDev() float64 { return math.Sqrt(h.Variance()) }

// StdErr is H^2 * sd(1/X) / sqrt(n).
func (h *Harmonic) StdErr() float64 {
	if h.recips.count == 0 {
		return math.NaN()
	}
	hm := h.Mean()
	return hm * hm * h.recips.StdDev() / math.Sqrt(float64(h.recips.count))
}

func (h *Harmonic) ConfidenceInterval(c Confidence) (interval.Interval[float64], error) {
	// the reciprocal transform reverses order, so the bounded side flips
	// in reciprocal space and the bounds swap on the way back
	ci, err := h.recips.ConfidenceInterval(c.Flipped())
	if err != nil {
		return interval.Interval[float64]{}, err
	}
	switch {
	case ci.IsLowerBounded():
		low, _ := ci.Low()
		return interval.NewUpper(1 / low), nil
	case ci.IsUpperBounded():
		high, _ := ci.High()
		return interval.NewLower(1 / high), nil
	default:
		low, _ := ci.Low()
		high, _ := ci.High()
		a, b := 1/high, 1/low
		if a > b {
			a, b = b, a
		}
		return interval.New(a, b)
	}
}

func (h *Harmonic) Snapshot() MeanSnapshot {
	s := h.recips.Snapshot()
	s.Kind = HarmonicMean
	return s
}
