package state

import "time"

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithMessageFunc sets how fetch errors are turned into user-facing messages.
func WithMessageFunc(fn func(error) string) Option {
	return func(s *Store) {
		if fn != nil {
			s.message = fn
		}
	}
}

// WithClock overrides the time source used for UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}
