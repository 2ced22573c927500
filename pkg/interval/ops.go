package interval

import (
	"fmt"
	"math"
)

// LowOrInf returns the lower bound, or -Inf for upper-bounded intervals.
func LowOrInf(iv Interval[float64]) float64 {
	if low, ok := iv.Low(); ok {
		return low
	}
	return math.Inf(-1)
}

// HighOrInf returns the upper bound, or +Inf for lower-bounded intervals.
func HighOrInf(iv Interval[float64]) float64 {
	if high, ok := iv.High(); ok {
		return high
	}
	return math.Inf(1)
}

func fromBounds(low, high float64) (Interval[float64], error) {
	switch {
	case math.IsInf(low, -1) && math.IsInf(high, 1):
		return Interval[float64]{}, fmt.Errorf("%w: unbounded on both sides", ErrInvalidInterval)
	case math.IsInf(low, -1):
		return NewUpper(high), nil
	case math.IsInf(high, 1):
		return NewLower(low), nil
	default:
		return New(low, high)
	}
}

// Add returns the interval of x+y for x in a, y in b.
func Add(a, b Interval[float64]) (Interval[float64], error) {
	return fromBounds(LowOrInf(a)+LowOrInf(b), HighOrInf(a)+HighOrInf(b))
}

// Neg returns the interval of -x for x in a.
func Neg(a Interval[float64]) Interval[float64] {
	out, _ := fromBounds(-HighOrInf(a), -LowOrInf(a))
	return out
}

// Sub returns the interval of x-y for x in a, y in b.
func Sub(a, b Interval[float64]) (Interval[float64], error) {
	return Add(a, Neg(b))
}

// Width returns high-low, or +Inf for one-sided intervals.
func Width(a Interval[float64]) float64 {
	return HighOrInf(a) - LowOrInf(a)
}

// RelativeTo expresses a as a relative offset from the reference interval:
// a two-sided a=[x, y] against ref=[lo, hi] becomes [(x-hi)/hi, (y-lo)/lo].
// The reference bounds involved must be nonzero, and the two intervals must
// not be one-sided in the same direction.
func RelativeTo(a, ref Interval[float64]) (Interval[float64], error) {
	refLow, refHasLow := ref.Low()
	refHigh, refHasHigh := ref.High()
	aLow, aHasLow := a.Low()
	aHigh, aHasHigh := a.High()

	var low, high float64 = math.Inf(-1), math.Inf(1)
	if aHasHigh && refHasLow {
		if refLow == 0 {
			return Interval[float64]{}, fmt.Errorf("%w: zero reference bound", ErrInvalidInterval)
		}
		high = (aHigh - refLow) / refLow
	}
	if aHasLow && refHasHigh {
		if refHigh == 0 {
			return Interval[float64]{}, fmt.Errorf("%w: zero reference bound", ErrInvalidInterval)
		}
		low = (aLow - refHigh) / refHigh
	}
	return fromBounds(low, high)
}
