package tableio

import "errors"

// Sentinel errors for table I/O.
var (
	ErrUnsupportedFormat = errors.New("unsupported table format")
	ErrEmptyTable        = errors.New("table has no header row")
)
