package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidRoster = errors.New("invalid roster")
	ErrInvalidLive   = errors.New("invalid live state")
	ErrNoLive        = errors.New("no athlete is live")
	ErrCorruptFile   = errors.New("corrupt event file")
	ErrPersist       = errors.New("persist event file failed")
)
