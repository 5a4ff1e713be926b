// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New(); Load layers a YAML file and env vars on top.
// - Durations are configured in milliseconds and exposed through helpers.
package config

import (
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// UpstreamBaseURL is the root of the score API, e.g. "http://127.0.0.1:5000/api/v1".
	UpstreamBaseURL string `koanf:"upstream_base_url"`

	// UpstreamTimeoutMS bounds every upstream call.
	UpstreamTimeoutMS int `koanf:"upstream_timeout_ms"`

	// UpstreamRatePerSecond and UpstreamBurst throttle outbound calls.
	UpstreamRatePerSecond float64 `koanf:"upstream_rate_per_second"`
	UpstreamBurst         int     `koanf:"upstream_burst"`

	// RefreshSchedule is a cron spec for background refreshes. Empty disables it.
	RefreshSchedule string `koanf:"refresh_schedule"`

	// DetailCacheTTLMS controls how long successful detail lookups are reused.
	DetailCacheTTLMS int `koanf:"detail_cache_ttl_ms"`

	// TopN caps the ranking lists.
	TopN int `koanf:"top_n"`

	// CORSAllowedOrigins is a comma separated list of origins allowed on /api/*.
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":9080",
		UpstreamBaseURL:       "http://127.0.0.1:5000/api/v1",
		UpstreamTimeoutMS:     10_000,
		UpstreamRatePerSecond: 5,
		UpstreamBurst:         5,
		RefreshSchedule:       "@every 5m",
		DetailCacheTTLMS:      60_000,
		TopN:                  5,
		CORSAllowedOrigins:    "http://localhost:5173",
	}
}

// UpstreamTimeout returns the upstream timeout as a duration.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutMS) * time.Millisecond
}

// DetailCacheTTL returns the detail cache TTL as a duration.
func (c *Config) DetailCacheTTL() time.Duration {
	return time.Duration(c.DetailCacheTTLMS) * time.Millisecond
}

// AllowedOrigins splits CORSAllowedOrigins, dropping blanks.
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
