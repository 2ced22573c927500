// Package interval models confidence intervals over any ordered type.
// An interval is two-sided, upper-bounded (-inf, high], or lower-bounded
// [low, +inf); float64 arithmetic lives in ops.go.
package interval

import (
	"cmp"
	"errors"
	"fmt"
)

var ErrInvalidInterval = errors.New("invalid interval")

type side int

const (
	twoSided side = iota
	upperBounded
	lowerBounded
)

type Interval[T cmp.Ordered] struct {
	low, high T
	side      side
}

// New returns the two-sided interval [low, high].
func New[T cmp.Ordered](low, high T) (Interval[T], error) {
	// only NaN compares unequal to itself; a NaN bound would otherwise
	// slip past the ordering check below
	if low != low || high != high {
		return Interval[T]{}, fmt.Errorf("%w: bound is NaN", ErrInvalidInterval)
	}
	if low > high {
		return Interval[T]{}, fmt.Errorf("%w: low %v > high %v", ErrInvalidInterval, low, high)
	}
	return Interval[T]{low: low, high: high}, nil
}

// NewUpper returns (-inf, high].
func NewUpper[T cmp.Ordered](high T) Interval[T] {
	return Interval[T]{high: high, side: upperBounded}
}

// NewLower returns [low, +inf).
func NewLower[T cmp.Ordered](low T) Interval[T] {
	return Interval[T]{low: low, side: lowerBounded}
}

func (iv Interval[T]) IsTwoSided() bool     { return iv.side == twoSided }
func (iv Interval[T]) IsUpperBounded() bool { return iv.side == upperBounded }
func (iv Interval[T]) IsLowerBounded() bool { return iv.side == lowerBounded }

// Low returns the lower bound; ok is false for upper-bounded intervals.
func (iv Interval[T]) Low() (T, bool) {
	if iv.side == upperBounded {
		var zero T
		return zero, false
	}
	return iv.low, true
}

// High returns the upper bound; ok is false for lower-bounded intervals.
func (iv Interval[T]) High() (T, bool) {
	if iv.side == lowerBounded {
		var zero T
		return zero, false
	}
	return iv.high, true
}

// IsDegenerate reports whether the interval is the single point low == high.
func (iv Interval[T]) IsDegenerate() bool {
	return iv.side == twoSided && iv.low == iv.high
}

func (iv Interval[T]) Contains(x T) bool {
	switch iv.side {
	case upperBounded:
		return x <= iv.high
	case lowerBounded:
		return x >= iv.low
	default:
		return iv.low <= x && x <= iv.high
	}
}

// Intersects reports whether the two intervals share at least one point.
func (iv Interval[T]) Intersects(other Interval[T]) bool {
	switch {
	case iv.side == upperBounded && other.side == upperBounded,
		iv.side == lowerBounded && other.side == lowerBounded:
		return true
	}
	aLow, aHasLow := iv.Low()
	aHigh, aHasHigh := iv.High()
	bLow, bHasLow := other.Low()
	bHigh, bHasHigh := other.High()
	if aHasLow && bHasHigh && aLow > bHigh {
		return false
	}
	if bHasLow && aHasHigh && bLow > aHigh {
		return false
	}
	return true
}

// Includes reports whether other lies entirely inside iv.
func (iv Interval[T]) Includes(other Interval[T]) bool {
	if low, ok := iv.Low(); ok {
		oLow, oOk := other.Low()
		if !oOk || oLow < low {
			return false
		}
	}
	if high, ok := iv.High(); ok {
		oHigh, oOk := other.High()
		if !oOk || oHigh > high {
			return false
		}
	}
	return true
}

func (iv Interval[T]) String() string {
	switch iv.side {
	case upperBounded:
		return fmt.Sprintf("(<-, %v]", iv.high)
	case lowerBounded:
		return fmt.Sprintf("[%v, ->)", iv.low)
	default:
		return fmt.Sprintf("[%v, %v]", iv.low, iv.high)
	}
}
