// Package charts renders chart records as PNG bar charts.
package charts

import (
	"errors"
	"fmt"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/memedash/internal/domain/present"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no data to render")

const (
	defaultWidth    = 800
	defaultHeight   = 400
	defaultBarWidth = 60
)

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the image size in pixels.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 && height > 0 {
			r.width = width
			r.height = height
		}
	}
}

// Renderer draws bar charts.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{width: defaultWidth, height: defaultHeight}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Bar writes records as a PNG bar chart. Empty records yield ErrNoData.
func (r *Renderer) Bar(w io.Writer, title string, records []present.Record) error {
	if len(records) == 0 {
		return ErrNoData
	}

	top := 1.0
	bars := make([]chart.Value, 0, len(records))
	for _, rec := range records {
		top = max(top, rec.Value, rec.Max)
		color := drawing.ColorFromHex(strings.TrimPrefix(rec.Color, "#"))
		bars = append(bars, chart.Value{
			Label: rec.Label,
			Value: rec.Value,
			Style: chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
		})
	}

	barWidth := defaultBarWidth
	if fit := r.width / (2 * len(bars)); fit < barWidth {
		barWidth = max(fit, 4)
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      r.width,
		Height:     r.height,
		BarWidth:   barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %q: %w", title, err)
	}
	return nil
}
