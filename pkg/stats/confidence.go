package stats

import "fmt"

// Side says which bounds a confidence interval carries.
type Side int

const (
	SideTwo   Side = iota // bounded on both ends
	SideUpper             // upper bound only: (-inf, high]
	SideLower             // lower bound only: [low, +inf)
)

func (s Side) String() string {
	switch s {
	case SideUpper:
		return "upper one-sided"
	case SideLower:
		return "lower one-sided"
	default:
		return "two-sided"
	}
}

// Confidence is a confidence level in (0, 1) plus a sidedness.
type Confidence struct {
	level float64
	side  Side
}

func newConfidence(level float64, side Side) (Confidence, error) {
	if !(level > 0 && level < 1) {
		return Confidence{}, fmt.Errorf("%w: got %v", ErrInvalidConfidenceLevel, level)
	}
	return Confidence{level: level, side: side}, nil
}

// TwoSided returns a two-sided confidence at the given level.
func TwoSided(level float64) (Confidence, error) { return newConfidence(level, SideTwo) }

// UpperOneSided returns a confidence whose interval is bounded above only.
func UpperOneSided(level float64) (Confidence, error) { return newConfidence(level, SideUpper) }

// LowerOneSided returns a confidence whose interval is bounded below only.
func LowerOneSided(level float64) (Confidence, error) { return newConfidence(level, SideLower) }

// Default is the conventional two-sided 95% confidence.
func Default() Confidence { return Confidence{level: 0.95, side: SideTwo} }

func (c Confidence) Level() float64   { return c.level }
func (c Confidence) Percent() float64 { return c.level * 100 }
func (c Confidence) Side() Side       { return c.side }
func (c Confidence) IsTwoSided() bool { return c.side == SideTwo }
func (c Confidence) IsOneSided() bool { return c.side != SideTwo }

// Flipped swaps the bounded side, keeping the level. Used when a
// monotonically decreasing transform reverses the interval's direction.
func (c Confidence) Flipped() Confidence {
	switch c.side {
	case SideUpper:
		c.side = SideLower
	case SideLower:
		c.side = SideUpper
	}
	return c
}

// quantile is the cumulative probability at which the critical value is
// taken: 1-(1-level)/2 for two-sided, level for one-sided.
func (c Confidence) quantile() float64 {
	if c.side == SideTwo {
		return 1 - (1-c.level)/2
	}
	return c.level
}

func (c Confidence) String() string {
	return fmt.Sprintf("%v%% (%s)", c.Percent(), c.side)
}
