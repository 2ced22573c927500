package stats

import (
	"github.com/yasi-python/cistats/pkg/interval"
	"gonum.org/v1/gonum/stat/distuv"
)

// Above this many degrees of freedom the Student-t distribution is
// indistinguishable from the normal at float64 precision, and its
// quantile function becomes numerically fragile. Switch to z.
const largeDOF = 100_000

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// ZValue returns the standard normal critical value for c.
func ZValue(c Confidence) float64 {
	return stdNormal.Quantile(c.quantile())
}

// TValue returns the Student-t critical value for c at the given degrees
// of freedom.
func TValue(c Confidence, degreesOfFreedom float64) float64 {
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: degreesOfFreedom}
	return t.Quantile(c.quantile())
}

// intervalBounds returns mean +/- crit*stdErr, where crit is a t value
// for small degrees of freedom and a z value past largeDOF.
func intervalBounds(c Confidence, mean, stdErr, degreesOfFreedom float64) (float64, float64) {
	var crit float64
	if degreesOfFreedom < largeDOF {
		crit = TValue(c, degreesOfFreedom)
	} else {
		crit = ZValue(c)
	}
	span := crit * stdErr
	return mean - span, mean + span
}

// sidedInterval shapes symmetric (low, high) bounds into the interval
// variant c asks for.
func sidedInterval(c Confidence, low, high float64) (interval.Interval[float64], error) {
	switch c.side {
	case SideUpper:
		return interval.NewUpper(high), nil
	case SideLower:
		return interval.NewLower(low), nil
	default:
		return interval.New(low, high)
	}
}
