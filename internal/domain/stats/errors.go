package stats

import "errors"

// Sentinel errors for stats builders.
var (
	ErrDegenerateFit = errors.New("degenerate fit")
	ErrShape         = errors.New("mismatched series lengths")
)
