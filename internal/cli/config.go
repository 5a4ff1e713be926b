package cli

import (
	"time"

	"github.com/okian/memedash/internal/domain/aggregate"
)

// Defaults for the command line client.
const (
	DefaultBaseURL = "http://127.0.0.1:5000/api/v1"
	DefaultTimeout = 10 * time.Second
	DefaultTopN    = aggregate.DefaultTopN
)

// Config holds configuration for one CLI run.
type Config struct {
	BaseURL string        // Base URL of the score API
	Timeout time.Duration // HTTP request timeout
	TopN    int           // Length of the ranking tables
	Verbose bool          // Enable debug logging
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.TopN <= 0 {
		out.TopN = DefaultTopN
	}
	return out
}
