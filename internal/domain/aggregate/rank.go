package aggregate

import (
	"fmt"
	"sort"

	"github.com/okian/memedash/internal/domain/model"
)

// Metric selects a score field of an entity.
type Metric int

// Supported metrics.
const (
	Overall Metric = iota
	Sentiment
	Engagement
	Stability
)

// String implements fmt.Stringer.
func (m Metric) String() string {
	switch m {
	case Overall:
		return "overall"
	case Sentiment:
		return "sentiment"
	case Engagement:
		return "engagement"
	case Stability:
		return "stability"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// Value returns the metric of e and whether it is present.
func (m Metric) Value(e model.ScoredEntity) (float64, bool) {
	var p *float64
	switch m {
	case Overall:
		p = e.OverallScore
	case Sentiment:
		p = e.SentimentScore
	case Engagement:
		p = e.EngagementScore
	case Stability:
		p = e.StabilityScore
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Direction orders a ranking.
type Direction int

// Ranking directions.
const (
	Descending Direction = iota
	Ascending
)

// TopN ranks entities by metric, dropping those where it is absent.
// Ties keep input order. n <= 0 yields an empty ranking.
func TopN(entities []model.ScoredEntity, n int, by Metric, dir Direction) []model.ScoredEntity {
	return rank(entities, n, by, dir, nil)
}

// TopPromising returns the best n promising entities that carry a screen name.
func TopPromising(entities []model.ScoredEntity, n int) []model.ScoredEntity {
	return rank(entities, n, Overall, Descending, func(e model.ScoredEntity, v float64) bool {
		return v >= PromisingThreshold && e.HasScreenName()
	})
}

// HighRiskAlerts returns the n lowest scoring high-risk entities.
func HighRiskAlerts(entities []model.ScoredEntity, n int) []model.ScoredEntity {
	return rank(entities, n, Overall, Ascending, func(_ model.ScoredEntity, v float64) bool {
		return v <= HighRiskThreshold
	})
}

type scored struct {
	entity model.ScoredEntity
	value  float64
}

func rank(entities []model.ScoredEntity, n int, by Metric, dir Direction, keep func(model.ScoredEntity, float64) bool) []model.ScoredEntity {
	if n <= 0 {
		return []model.ScoredEntity{}
	}
	candidates := make([]scored, 0, len(entities))
	for _, e := range entities {
		v, ok := by.Value(e)
		if !ok || (keep != nil && !keep(e, v)) {
			continue
		}
		candidates = append(candidates, scored{entity: e, value: v})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if dir == Ascending {
			return candidates[i].value < candidates[j].value
		}
		return candidates[i].value > candidates[j].value
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]model.ScoredEntity, len(candidates))
	for i, c := range candidates {
		out[i] = c.entity
	}
	return out
}
