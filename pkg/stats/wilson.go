package stats

import (
	"fmt"
	"math"

	"github.com/yasi-python/cistats/pkg/interval"
)

// wilsonBounds returns the Wilson score interval for a proportion of
// successes over population at critical value z, clamped to [0, 1].
// Exact at the extremes: zero successes or zero failures still yield a
// valid interval.
func wilsonBounds(z float64, population, successes int) (low, high float64) {
	n := float64(population)
	ns := float64(successes)
	nf := n - ns
	z2 := z * z
	center := (ns + z2/2) / (n + z2)
	span := z / (n + z2) * math.Sqrt(ns*nf/n+z2/4)
	return math.Max(0, center-span), math.Min(1, center+span)
}

// ProportionCI computes the Wilson score confidence interval for the
// success rate successes/population. One-sided confidences return a
// two-sided interval with 0 or 1 supplying the free bound, keeping all
// bounds inside [0, 1].
func ProportionCI(c Confidence, population, successes int) (interval.Interval[float64], error) {
	if population == 0 {
		return interval.Interval[float64]{}, fmt.Errorf("%w: zero population", ErrDegenerateCase)
	}
	if successes < 0 || successes > population {
		return interval.Interval[float64]{}, fmt.Errorf("%w: %d successes out of %d", ErrDegenerateCase, successes, population)
	}
	low, high := wilsonBounds(ZValue(c), population, successes)
	switch c.side {
	case SideUpper:
		return interval.New(0, high)
	case SideLower:
		return interval.New(low, 1)
	default:
		return interval.New(low, high)
	}
}

// ProportionCIIf counts samples satisfying isSuccess and returns the
// Wilson interval of that rate.
func ProportionCIIf[T any](c Confidence, samples []T, isSuccess func(T) bool) (interval.Interval[float64], error) {
	successes := 0
	for _, s := range samples {
		if isSuccess(s) {
			successes++
		}
	}
	return ProportionCI(c, len(samples), successes)
}

// ProportionCIWald is the textbook normal-approximation (Wald) interval,
// kept for comparison against Wilson. It needs at least 10 expected
// successes and failures to be trustworthy and errors below that.
func ProportionCIWald(c Confidence, population, successes int) (interval.Interval[float64], error) {
	if population == 0 {
		return interval.Interval[float64]{}, fmt.Errorf("%w: zero population", ErrDegenerateCase)
	}
	if successes < 0 || successes > population {
		return interval.Interval[float64]{}, fmt.Errorf("%w: %d successes out of %d", ErrDegenerateCase, successes, population)
	}
	n := float64(population)
	p := float64(successes) / n
	if n*p < 10 || n*(1-p) < 10 {
		return interval.Interval[float64]{}, fmt.Errorf("%w: normal approximation needs at least 10 expected successes and failures", ErrNotEnoughData)
	}
	span := ZValue(c) * math.Sqrt(p*(1-p)/n)
	low := math.Max(0, p-span)
	high := math.Min(1, p+span)
	switch c.side {
	case SideUpper:
		return interval.New(0, high)
	case SideLower:
		return interval.New(low, 1)
	default:
		return interval.New(low, high)
	}
}

// Proportion counts successes over a population incrementally.
type Proportion struct {
	population int
	successes  int
}

// NewProportion starts from prior counts.
func NewProportion(population, successes int) Proportion {
	return Proportion{population: population, successes: successes}
}

func (p *Proportion) AddSuccess() { p.population++; p.successes++ }
func (p *Proportion) AddFailure() { p.population++ }

func (p *Proportion) Observe(success bool) {
	if success {
		p.AddSuccess()
	} else {
		p.AddFailure()
	}
}

func (p *Proportion) Merge(other Proportion) {
	p.population += other.population
	p.successes += other.successes
}

func (p Proportion) Population() int { return p.population }
func (p Proportion) Successes() int  { return p.successes }
func (p Proportion) Failures() int   { return p.population - p.successes }

func (p Proportion) Rate() float64 {
	if p.population == 0 {
		return math.NaN()
	}
	return float64(p.successes) / float64(p.population)
}

// IsSignificant reports the NIST rule of thumb for when the Wilson
// interval is meaningful: more than 30 observations with more than 5
// successes and more than 5 failures.
func (p Proportion) IsSignificant() bool {
	return p.population > 30 && p.successes > 5 && p.population-p.successes > 5
}

func (p Proportion) ConfidenceInterval(c Confidence) (interval.Interval[float64], error) {
	return ProportionCI(c, p.population, p.successes)
}
