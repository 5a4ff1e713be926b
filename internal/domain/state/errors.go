package state

import "errors"

// Sentinel error kinds for this package.
var (
	ErrRefreshInFlight = errors.New("refresh already in flight")
	ErrNoFetcher       = errors.New("store has no fetcher")
)
