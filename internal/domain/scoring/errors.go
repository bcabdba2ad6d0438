package scoring

import "errors"

// ErrDivisionUndefined is returned when a per-game metric is asked of a
// record with no games played.
var ErrDivisionUndefined = errors.New("per-game metric undefined for zero games")
