package schema

import "errors"

// Sentinel errors returned by Map and Decode.
var (
	ErrSchema       = errors.New("schema mismatch")
	ErrInvalidValue = errors.New("invalid cell value")
)
