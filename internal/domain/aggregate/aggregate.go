// Package aggregate derives dashboard views from a list of scored entities.
//
// Every function is pure and total: an empty list yields the zero-valued
// result, never an error.
package aggregate

import (
	"strconv"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/memedash/internal/domain/model"
)

// Classification thresholds on the overall score.
const (
	PromisingThreshold = 8.0
	HighRiskThreshold  = 3.0
)

// Summary counts entities per classification.
type Summary struct {
	Total     int `json:"total"`
	Promising int `json:"promising"`
	HighRisk  int `json:"high_risk"`
}

// Summarize counts promising (>= 8) and high-risk (<= 3) entities.
// Entities without an overall score only count toward Total.
func Summarize(entities []model.ScoredEntity) Summary {
	s := Summary{Total: len(entities)}
	for _, e := range entities {
		v, ok := e.Overall()
		if !ok {
			continue
		}
		if v >= PromisingThreshold {
			s.Promising++
		}
		if v <= HighRiskThreshold {
			s.HighRisk++
		}
	}
	return s
}

// Bin is one histogram bucket.
type Bin struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// binLabels are the fixed buckets [0,2], (2,4], (4,6], (6,8], (8,10].
var binLabels = [...]string{"0-2", "2-4", "4-6", "6-8", "8-10"} //nolint:gochecknoglobals // fixed bucket labels

const binWidth = 2.0

// Histogram buckets overall scores into five fixed-width bins.
// The first bin is closed at 0; every other bin is open on its lower edge.
func Histogram(entities []model.ScoredEntity) []Bin {
	bins := make([]Bin, len(binLabels))
	for i, l := range binLabels {
		bins[i].Label = l
	}
	for _, e := range entities {
		v, ok := e.Overall()
		if !ok {
			continue
		}
		bins[binIndex(v)].Count++
	}
	return bins
}

func binIndex(v float64) int {
	if v <= binWidth {
		return 0
	}
	i := int(v / binWidth)
	if float64(i)*binWidth == v {
		i-- // upper edge belongs to the lower bin
	}
	if i >= len(binLabels) {
		i = len(binLabels) - 1
	}
	return i
}

// Averages holds per-metric means rounded to two decimals.
type Averages struct {
	Sentiment  float64 `json:"sentiment"`
	Engagement float64 `json:"engagement"`
	Stability  float64 `json:"stability"`
}

// ComputeAverages returns the mean of each sub-score over all entities.
// Absent values contribute 0 while still counting in the denominator.
func ComputeAverages(entities []model.ScoredEntity) Averages {
	if len(entities) == 0 {
		return Averages{}
	}
	return Averages{
		Sentiment:  meanOf(entities, Sentiment),
		Engagement: meanOf(entities, Engagement),
		Stability:  meanOf(entities, Stability),
	}
}

func meanOf(entities []model.ScoredEntity, m Metric) float64 {
	values := make([]float64, len(entities))
	for i, e := range entities {
		if v, ok := m.Value(e); ok {
			values[i] = v
		}
	}
	return round2(stat.Mean(values, nil))
}

// exactDigits covers the full binary expansion of any mean in [0,10].
const exactDigits = 64

// round2 rounds the exact binary value of v half away from zero, so 1.005
// (stored as 1.00499...) gives 1.00 while 0.125 gives 0.13.
func round2(v float64) float64 {
	d, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', exactDigits, 64))
	if err != nil {
		d = decimal.NewFromFloat(v)
	}
	f, _ := d.Round(2).Float64()
	return f
}
