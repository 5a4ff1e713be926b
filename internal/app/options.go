package service

import (
	"strings"
	"time"

	"github.com/okian/memedash/internal/domain/aggregate"
	"github.com/okian/memedash/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTopN sets the length of the ranking views.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithDetailCacheTTL sets how long a successful lookup is served from cache.
// Zero or negative disables caching.
func WithDetailCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cacheTTL = ttl
	}
}

// WithRefreshSchedule sets the cron spec used for periodic refreshes, for
// example "@every 5m". An empty spec disables scheduling.
func WithRefreshSchedule(spec string) Option {
	return func(s *Service) {
		s.schedule = strings.TrimSpace(spec)
	}
}

// WithRefreshOnStart controls whether Start loads the list once before
// returning.
func WithRefreshOnStart(enabled bool) Option {
	return func(s *Service) {
		s.refreshOnStart = enabled
	}
}

func defaultTopN() int { return aggregate.DefaultTopN }
