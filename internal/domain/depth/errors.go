package depth

import "errors"

// Sentinel errors for aggregation.
var (
	ErrEmptyGroup        = errors.New("group has fewer players than the requested rank")
	ErrInvalidRank       = errors.New("rank must be at least 1")
	ErrUnsupportedMetric = errors.New("metric not defined for role")
	ErrInvalidPolicy     = errors.New("unknown short group policy")
)
