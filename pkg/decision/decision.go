// Package decision interprets a mean-difference confidence interval
// against zero.
package decision

import (
	"github.com/yasi-python/cistats/pkg/interval"
)

type Verdict string

const (
	// the whole interval lies above zero: the first mean is credibly larger
	VerdictGreater Verdict = "greater"
	// the whole interval lies below zero
	VerdictLess Verdict = "less"
	// the interval straddles zero
	VerdictIndistinguishable Verdict = "indistinguishable"
)

// FromDifference classifies a confidence interval of mean(a)-mean(b).
func FromDifference(ci interval.Interval[float64]) Verdict {
	low := interval.LowOrInf(ci)
	high := interval.HighOrInf(ci)
	switch {
	case low > 0:
		return VerdictGreater
	case high < 0:
		return VerdictLess
	default:
		return VerdictIndistinguishable
	}
}

// Significant reports whether the interval excludes zero.
func Significant(ci interval.Interval[float64]) bool {
	return FromDifference(ci) != VerdictIndistinguishable
}
