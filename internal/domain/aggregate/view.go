package aggregate

import "github.com/okian/memedash/internal/domain/model"

// DefaultTopN is the ranking length used by Compute.
const DefaultTopN = 5

// View bundles every derived view of one entity list.
type View struct {
	Summary   Summary              `json:"summary"`
	Histogram []Bin                `json:"histogram"`
	Averages  Averages             `json:"averages"`
	Top       []model.ScoredEntity `json:"top"`
	Bottom    []model.ScoredEntity `json:"bottom"`
	Promising []model.ScoredEntity `json:"promising"`
	Alerts    []model.ScoredEntity `json:"alerts"`
}

// Option applies a configuration option to Compute.
type Option func(*options)

type options struct {
	topN int
}

// WithTopN sets the length of the ranking lists.
func WithTopN(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.topN = n
		}
	}
}

// Compute derives the full view from entities.
func Compute(entities []model.ScoredEntity, opts ...Option) View {
	o := options{topN: DefaultTopN}
	for _, opt := range opts {
		opt(&o)
	}
	return View{
		Summary:   Summarize(entities),
		Histogram: Histogram(entities),
		Averages:  ComputeAverages(entities),
		Top:       TopN(entities, o.topN, Overall, Descending),
		Bottom:    TopN(entities, o.topN, Overall, Ascending),
		Promising: TopPromising(entities, o.topN),
		Alerts:    HighRiskAlerts(entities, o.topN),
	}
}
