package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrUnknownRole   = errors.New("unknown role")
	ErrLimitExceeded = errors.New("limit exceeded")
)

// wrap prefixes err with the handler operation name.
func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
