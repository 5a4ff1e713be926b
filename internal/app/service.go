// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/okian/memedash/internal/adapters/upstream"
	"github.com/okian/memedash/internal/domain/aggregate"
	"github.com/okian/memedash/internal/domain/model"
	"github.com/okian/memedash/internal/domain/present"
	"github.com/okian/memedash/internal/domain/state"
	"github.com/okian/memedash/internal/domain/types"
	"github.com/okian/memedash/pkg/logger"
	"github.com/okian/memedash/pkg/metrics"
)

// Source is the upstream score API.
type Source interface {
	FetchAll(ctx context.Context) ([]model.ScoredEntity, error)
	Lookup(ctx context.Context, identifier string) (model.ScoredEntity, error)
}

// memo holds the views computed for one list version.
type memo struct {
	valid   bool
	version uint64
	view    aggregate.View
	charts  present.Charts
}

// Service implements the API dependencies for the dashboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	source Source
	store  *state.Store
	cache  *gocache.Cache
	group  singleflight.Group
	cron   *cron.Cron

	// Configuration
	topN           int
	cacheTTL       time.Duration
	schedule       string
	refreshOnStart bool

	// State
	started bool
	viewMu  sync.Mutex
	memo    memo

	logger logger.Logger
}

// New constructs a new Service reading scores from src.
func New(src Source, opts ...Option) *Service {
	s := &Service{
		source:         src,
		topN:           defaultTopN(),
		cacheTTL:       time.Minute,
		refreshOnStart: true,
		logger:         logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	var fetcher state.Fetcher
	if src != nil {
		fetcher = src
	}
	s.store = state.New(fetcher, state.WithMessageFunc(upstream.Message))
	if s.cacheTTL > 0 {
		s.cache = gocache.New(s.cacheTTL, 2*s.cacheTTL)
	}
	return s
}

// Start loads the list once and starts the refresh schedule, if any. A
// failed initial load is logged and leaves the store Failed. The initial
// load runs without holding the service lock.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.source == nil {
		s.mu.Unlock()
		return ErrNoSource
	}

	var c *cron.Cron
	if s.schedule != "" {
		c = cron.New()
		if _, err := c.AddFunc(s.schedule, s.scheduledRefresh); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("%w: %q: %w", ErrInvalidSchedule, s.schedule, err)
		}
	}
	s.cron = c
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting dashboard service...")

	if s.refreshOnStart {
		if err := s.Refresh(ctx); err != nil && !errors.Is(err, state.ErrRefreshInFlight) {
			s.logger.Warn(ctx, "initial refresh failed", logger.Error(err))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Stop may have run during the initial load.
	if !s.started || s.cron != c {
		return nil
	}
	if c != nil {
		c.Start()
	}

	s.logger.Info(ctx, "dashboard service started",
		logger.String("schedule", s.schedule),
		logger.Int("topN", s.topN),
		logger.Duration("detailCacheTTL", s.cacheTTL),
	)
	return nil
}

// Stop halts the refresh schedule and waits for a running scheduled refresh.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping dashboard service...")
	if s.cron != nil {
		<-s.cron.Stop().Done()
		s.cron = nil
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

func (s *Service) scheduledRefresh() {
	ctx := context.Background()
	if err := s.Refresh(ctx); err != nil && !errors.Is(err, state.ErrRefreshInFlight) {
		s.logger.Warn(ctx, "scheduled refresh failed", logger.Error(err))
	}
}

// Refresh reloads the list from upstream. A call made while another refresh
// is in flight returns state.ErrRefreshInFlight and changes nothing.
func (s *Service) Refresh(ctx context.Context) error {
	err := s.store.Refresh(ctx)
	if errors.Is(err, state.ErrRefreshInFlight) {
		metrics.RecordRefreshSkipped()
		s.logger.Debug(ctx, "refresh skipped, another one is in flight")
		return err
	}

	snap := s.store.Snapshot()
	metrics.RecordRefresh(upstream.Outcome(err), snap.UpdatedAt.Unix())
	metrics.UpdateEntitiesLoaded(len(snap.Data))
	metrics.UpdateSnapshotVersion(snap.Version)

	if err != nil {
		s.logger.Warn(ctx, "refresh failed",
			logger.String("message", snap.Message),
			logger.Error(err),
		)
		return err
	}
	if s.cache != nil {
		s.cache.Flush()
	}
	s.logger.Info(ctx, "score list refreshed",
		logger.Int("entities", len(snap.Data)),
		logger.Uint64("version", snap.Version),
	)
	return nil
}

// Dashboard returns the aggregate view of the current list.
func (s *Service) Dashboard(_ context.Context) types.Dashboard {
	snap := s.store.Snapshot()
	m := s.views(snap)
	return types.Dashboard{Meta: meta(snap), View: m.view}
}

// Charts returns every chart series of the current list.
func (s *Service) Charts(_ context.Context) present.Charts {
	return s.views(s.store.Snapshot()).charts
}

// Coins returns the rendered coin table.
func (s *Service) Coins(_ context.Context) types.Coins {
	snap := s.store.Snapshot()
	return types.Coins{
		Meta:  meta(snap),
		Count: len(snap.Data),
		Rows:  present.Rows(snap.Data),
	}
}

// Coin looks up one entity upstream and renders its detail view. On error
// the placeholder view is returned alongside the error.
func (s *Service) Coin(ctx context.Context, identifier string) (present.DetailView, error) {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return present.Detail(nil), &upstream.Error{Op: upstream.OpLookup, Kind: upstream.ErrNotFound}
	}
	if s.source == nil {
		return present.Detail(nil), ErrNoSource
	}

	if s.cache != nil {
		if v, ok := s.cache.Get(id); ok {
			metrics.RecordDetailCacheHit()
			e := v.(model.ScoredEntity) //nolint:forcetypeassert // only entities are stored
			return present.Detail(&e), nil
		}
		metrics.RecordDetailCacheMiss()
	}

	// The shared call is detached from any one caller's cancellation and is
	// bounded by the client timeout instead.
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(id, func() (interface{}, error) {
		e, err := s.source.Lookup(shared, id)
		if err == nil && s.cache != nil {
			s.cache.SetDefault(id, e)
		}
		return e, err
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return present.Detail(nil), &upstream.Error{Op: upstream.OpLookup, Kind: upstream.ErrNetwork, Err: ctx.Err()}
	}
	if res.Err != nil {
		s.logger.Debug(ctx, "coin lookup failed",
			logger.String("identifier", id),
			logger.Bool("shared", res.Shared),
			logger.Error(res.Err),
		)
		return present.Detail(nil), res.Err
	}

	e := res.Val.(model.ScoredEntity) //nolint:forcetypeassert // Lookup returns an entity
	return present.Detail(&e), nil
}

// views returns the memoized views for snap, recomputing them when the list
// version moved. A snapshot older than the memo never replaces it.
func (s *Service) views(snap state.Snapshot) memo {
	s.viewMu.Lock()
	defer s.viewMu.Unlock()

	if s.memo.valid && s.memo.version == snap.Version {
		return s.memo
	}
	view := aggregate.Compute(snap.Data, aggregate.WithTopN(s.topN))
	m := memo{
		valid:   true,
		version: snap.Version,
		view:    view,
		charts:  present.Build(view),
	}
	metrics.RecordViewRecompute()
	if !s.memo.valid || snap.Version > s.memo.version {
		s.memo = m
	}
	return m
}

func meta(snap state.Snapshot) types.Meta {
	m := types.Meta{
		Status:  snap.Status.String(),
		Loading: snap.IsLoading(),
		Message: snap.Message,
		Version: snap.Version,
	}
	if !snap.UpdatedAt.IsZero() {
		t := snap.UpdatedAt
		m.UpdatedAt = &t
	}
	return m
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.store.Snapshot()
	stats := map[string]interface{}{
		"started":  s.started,
		"status":   snap.Status.String(),
		"version":  snap.Version,
		"entities": len(snap.Data),
		"topN":     s.topN,
		"schedule": s.schedule,
	}
	if snap.Message != "" {
		stats["message"] = snap.Message
	}
	if !snap.UpdatedAt.IsZero() {
		stats["updatedAt"] = snap.UpdatedAt.UTC().Format(time.RFC3339)
	}
	if s.cache != nil {
		stats["detailCacheItems"] = s.cache.ItemCount()
	}
	if s.cron != nil {
		if entries := s.cron.Entries(); len(entries) > 0 {
			stats["nextRefresh"] = entries[0].Next.UTC().Format(time.RFC3339)
		}
	}
	return stats
}
