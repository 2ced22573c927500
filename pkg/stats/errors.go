package stats

import "errors"

// Sentinel errors for invalid inputs; callers match them with errors.Is.
var (
	ErrInvalidConfidenceLevel = errors.New("confidence level must be in (0, 1)")
	ErrInvalidQuantile        = errors.New("quantile must be in (0, 1)")
	ErrNotEnoughData          = errors.New("not enough samples")
	ErrNonPositiveValue       = errors.New("sample must be strictly positive")
	ErrZeroValue              = errors.New("sample must be nonzero")
	ErrDegenerateCase         = errors.New("degenerate input")
	ErrMismatchedLengths      = errors.New("paired samples must have equal lengths")
)
