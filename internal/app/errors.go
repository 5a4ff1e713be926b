package service

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidSchedule = errors.New("invalid refresh schedule")
	ErrNoSource        = errors.New("service has no score source")
)
