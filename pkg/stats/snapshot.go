package stats

import "fmt"

// MeanSnapshot is the plain-record form of a mean accumulator, suitable
// for JSON persistence. For geometric and harmonic kinds the numeric
// fields describe the transformed (log / reciprocal) space.
type MeanSnapshot struct {
	Kind    MeanKind `json:"kind"`
	Count   int      `json:"count"`
	Sum     float64  `json:"sum"`
	SumComp float64  `json:"sum_comp"`
	M2      float64  `json:"m2"`
	M2Comp  float64  `json:"m2_comp"`
}

// RestoreMean rebuilds an accumulator from its snapshot.
func RestoreMean(s MeanSnapshot) (MeanStats, error) {
	inner := Arithmetic{
		count: s.Count,
		sum:   RestoreKahanSum(s.Sum, s.SumComp),
		m2:    RestoreKahanSum(s.M2, s.M2Comp),
	}
	switch s.Kind {
	case ArithmeticMean:
		return &inner, nil
	case GeometricMean:
		return &Geometric{logs: inner}, nil
	case HarmonicMean:
		return &Harmonic{recips: inner}, nil
	}
	return nil, fmt.Errorf("unknown mean kind %q", s.Kind)
}
