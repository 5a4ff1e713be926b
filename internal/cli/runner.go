package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/okian/memedash/internal/adapters/upstream"
	"github.com/okian/memedash/internal/domain/aggregate"
	"github.com/okian/memedash/internal/domain/present"
	"github.com/okian/memedash/pkg/logger"
)

func newClient(cfg Config) *upstream.Client {
	return upstream.NewClient(cfg.BaseURL,
		upstream.WithTimeout(cfg.Timeout),
		upstream.WithLogger(logger.Named("upstream")),
	)
}

// Scores fetches the full list and prints its aggregate view to w.
func Scores(ctx context.Context, config *Config, w io.Writer) error {
	cfg := config.withDefaults()
	logger.Get().Debug(ctx, "fetching scores", logger.String("url", cfg.BaseURL))

	entities, err := newClient(cfg).FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("fetch scores: %s: %w", upstream.Message(err), err)
	}

	NewPrinter(w).Scores(aggregate.Compute(entities, aggregate.WithTopN(cfg.TopN)))
	return nil
}

// Coin looks up one coin and prints its detail view to w. A missing coin
// prints the placeholder view and returns the not-found error.
func Coin(ctx context.Context, config *Config, identifier string, w io.Writer) error {
	cfg := config.withDefaults()
	logger.Get().Debug(ctx, "looking up coin", logger.String("identifier", identifier))

	p := NewPrinter(w)
	e, err := newClient(cfg).Lookup(ctx, identifier)
	switch {
	case err == nil:
		p.Detail(present.Detail(&e))
		return nil
	case errors.Is(err, upstream.ErrNotFound):
		p.Detail(present.Detail(nil))
		p.Message(upstream.Message(err))
		return err
	default:
		return fmt.Errorf("lookup %q: %s: %w", identifier, upstream.Message(err), err)
	}
}
