// Package present maps aggregate views into chart-ready records and
// detail views with placeholders for missing values.
package present

import (
	"github.com/okian/memedash/internal/domain/aggregate"
	"github.com/okian/memedash/internal/domain/model"
)

// Record is one chart datum.
type Record struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Max   float64 `json:"max,omitempty"`
	Color string  `json:"color"`
}

// Palette is cycled by record index.
var Palette = []string{"#8884d8", "#82ca9d", "#ffc658", "#ff8042", "#0088fe", "#00c49f"} //nolint:gochecknoglobals // fixed chart palette

// ColorAt returns the palette color for index i.
func ColorAt(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// HistogramRecords maps bins to records in bin order.
func HistogramRecords(bins []aggregate.Bin) []Record {
	out := make([]Record, 0, len(bins))
	for i, b := range bins {
		out = append(out, Record{Label: b.Label, Value: float64(b.Count), Color: ColorAt(i)})
	}
	return out
}

// AverageRecords maps averages to radar records on a 0-10 scale.
func AverageRecords(avg aggregate.Averages) []Record {
	values := []struct {
		label string
		value float64
	}{
		{"Sentiment", avg.Sentiment},
		{"Engagement", avg.Engagement},
		{"Stability", avg.Stability},
	}
	out := make([]Record, 0, len(values))
	for i, v := range values {
		out = append(out, Record{Label: v.label, Value: v.value, Max: model.MaxScore, Color: ColorAt(i)})
	}
	return out
}

// RankingRecords maps a ranking to records labeled by identifier, keeping its order.
func RankingRecords(ranked []model.ScoredEntity) []Record {
	out := make([]Record, 0, len(ranked))
	for i, e := range ranked {
		v, _ := e.Overall()
		out = append(out, Record{Label: e.Identifier(), Value: v, Max: model.MaxScore, Color: ColorAt(i)})
	}
	return out
}

// Charts holds every chart series of the dashboard.
type Charts struct {
	Histogram []Record `json:"histogram"`
	Averages  []Record `json:"averages"`
	Top       []Record `json:"top"`
	Bottom    []Record `json:"bottom"`
	Promising []Record `json:"promising"`
	Alerts    []Record `json:"alerts"`
}

// Series returns a chart by name and whether the name is known.
func (c Charts) Series(name string) ([]Record, bool) {
	switch name {
	case "histogram":
		return c.Histogram, true
	case "averages":
		return c.Averages, true
	case "top":
		return c.Top, true
	case "bottom":
		return c.Bottom, true
	case "promising":
		return c.Promising, true
	case "alerts":
		return c.Alerts, true
	default:
		return nil, false
	}
}

// Build maps a view into chart series. A view over no entities yields
// empty series, which callers render as "no data".
func Build(v aggregate.View) Charts {
	if v.Summary.Total == 0 {
		return Charts{
			Histogram: []Record{},
			Averages:  []Record{},
			Top:       []Record{},
			Bottom:    []Record{},
			Promising: []Record{},
			Alerts:    []Record{},
		}
	}
	return Charts{
		Histogram: HistogramRecords(v.Histogram),
		Averages:  AverageRecords(v.Averages),
		Top:       RankingRecords(v.Top),
		Bottom:    RankingRecords(v.Bottom),
		Promising: RankingRecords(v.Promising),
		Alerts:    RankingRecords(v.Alerts),
	}
}
