// Package state holds the current score list together with its loading
// status and exposes a single refresh action guarded against overlap.
package state

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/okian/memedash/internal/domain/model"
)

// Status is the refresh state machine: Idle -> Loading -> Succeeded | Failed.
type Status int

// Store statuses.
const (
	Idle Status = iota
	Loading
	Succeeded
	Failed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText lets the status render as its name in JSON.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Fetcher loads the full score list.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]model.ScoredEntity, error)
}

// Snapshot is an immutable copy of the store.
type Snapshot struct {
	Data      []model.ScoredEntity
	Status    Status
	Err       error
	Message   string
	Version   uint64
	UpdatedAt time.Time
}

// IsLoading reports whether a refresh is in flight.
func (s Snapshot) IsLoading() bool { return s.Status == Loading }

// Store owns the score list and its refresh lifecycle.
type Store struct {
	mu        sync.RWMutex
	fetcher   Fetcher
	data      []model.ScoredEntity
	status    Status
	err       error
	msg       string
	version   uint64
	updatedAt time.Time

	message func(error) string
	now     func() time.Time
}

// New creates a Store reading through f.
func New(f Fetcher, opts ...Option) *Store {
	s := &Store{
		fetcher: f,
		message: func(err error) string { return err.Error() },
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh fetches the list and replaces the held one. It is accepted only
// when no other refresh is in flight; otherwise it returns ErrRefreshInFlight
// without touching the store. A failed fetch clears the list.
func (s *Store) Refresh(ctx context.Context) error {
	if s.fetcher == nil {
		return ErrNoFetcher
	}

	s.mu.Lock()
	if s.status == Loading {
		s.mu.Unlock()
		return ErrRefreshInFlight
	}
	s.status = Loading
	s.err = nil
	s.msg = ""
	s.mu.Unlock()

	data, err := s.fetcher.FetchAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = s.now()
	if err != nil {
		s.data = nil
		s.status = Failed
		s.err = err
		s.msg = s.message(err)
		s.version++
		return err
	}
	s.data = data
	s.status = Succeeded
	s.version++
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Data:      slices.Clone(s.data),
		Status:    s.status,
		Err:       s.err,
		Message:   s.msg,
		Version:   s.version,
		UpdatedAt: s.updatedAt,
	}
}

// Status returns the current status.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Version returns the list version, bumped on every completed refresh.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
