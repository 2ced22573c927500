package stats

import (
	"fmt"
	"math"

	"github.com/yasi-python/cistats/pkg/interval"
)

// Paired estimates the mean difference between two dependent samples by
// accumulating pairwise differences a-b.
type Paired struct {
	diffs Arithmetic
}

func NewPaired() *Paired { return &Paired{} }

func (p *Paired) AppendPair(a, b float64) { p.diffs.add(a - b) }

func (p *Paired) Append(a, b []float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d vs %d", ErrMismatchedLengths, len(a), len(b))
	}
	for i := range a {
		p.AppendPair(a[i], b[i])
	}
	return nil
}

func (p *Paired) Merge(other *Paired) { p.diffs.Merge(&other.diffs) }

func (p *Paired) Count() int      { return p.diffs.Count() }
func (p *Paired) Mean() float64   { return p.diffs.Mean() }
func (p *Paired) StdErr() float64 { return p.diffs.StdErr() }

func (p *Paired) ConfidenceInterval(c Confidence) (interval.Interval[float64], error) {
	return p.diffs.ConfidenceInterval(c)
}

// PairedCI computes the confidence interval of the mean difference a-b
// for paired observations.
func PairedCI(c Confidence, a, b []float64) (interval.Interval[float64], error) {
	p := NewPaired()
	if err := p.Append(a, b); err != nil {
		return interval.Interval[float64]{}, err
	}
	return p.ConfidenceInterval(c)
}

// Unpaired estimates the mean difference between two independent samples
// with Welch's unequal-variance construction.
type Unpaired struct {
	a, b Arithmetic
}

func NewUnpaired() *Unpaired { return &Unpaired{} }

func (u *Unpaired) AppendA(samples ...float64) {
	for _, x := range samples {
		u.a.add(x)
	}
}

func (u *Unpaired) AppendB(samples ...float64) {
	for _, x := range samples {
		u.b.add(x)
	}
}

func (u *Unpaired) Merge(other *Unpaired) {
	u.a.Merge(&other.a)
	u.b.Merge(&other.b)
}

func (u *Unpaired) CountA() int { return u.a.Count() }
func (u *Unpaired) CountB() int { return u.b.Count() }

// MeanDifference is mean(a) - mean(b).
func (u *Unpaired) MeanDifference() float64 { return u.a.Mean() - u.b.Mean() }

func (u *Unpaired) ConfidenceInterval(c Confidence) (interval.Interval[float64], error) {
	if u.a.count < 2 || u.b.count < 2 {
		return interval.Interval[float64]{}, fmt.Errorf("%w: unpaired comparison needs at least 2 samples per side, got %d and %d", ErrNotEnoughData, u.a.count, u.b.count)
	}
	na, nb := float64(u.a.count), float64(u.b.count)
	va, vb := u.a.Variance()/na, u.b.Variance()/nb
	stdErr := math.Sqrt(va + vb)
	// two constant samples leave the degrees of freedom 0/0
	if stdErr == 0 {
		return interval.Interval[float64]{}, fmt.Errorf("%w: both samples have zero variance", ErrDegenerateCase)
	}
	// Welch-Satterthwaite degrees of freedom, Jain's formulation
	dof := (va+vb)*(va+vb)/(va*va/(na+1)+vb*vb/(nb+1)) - 2
	low, high := intervalBounds(c, u.MeanDifference(), stdErr, dof)
	return sidedInterval(c, low, high)
}

// UnpairedCI computes the Welch confidence interval of mean(a) - mean(b)
// for independent samples.
func UnpairedCI(c Confidence, a, b []float64) (interval.Interval[float64], error) {
	u := NewUnpaired()
	u.AppendA(a...)
	u.AppendB(b...)
	return u.ConfidenceInterval(c)
}
