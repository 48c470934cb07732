package model

import "errors"

// ErrInvalidSubmission marks a score that fails domain validation.
var ErrInvalidSubmission = errors.New("invalid submission")
