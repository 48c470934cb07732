package simulate

import "errors"

// Sentinel kinds for simulation failures.
var (
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrMismatch         = errors.New("served ranking differs from local ranking")
	ErrInvalidConfig    = errors.New("invalid simulation config")
)
