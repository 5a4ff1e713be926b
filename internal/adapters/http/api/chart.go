package api

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/memedash/internal/adapters/http/charts"
	"github.com/okian/memedash/pkg/metrics"
)

// chartTitles names the charts served as images.
var chartTitles = map[string]string{ //nolint:gochecknoglobals // fixed chart catalogue
	"histogram": "Overall Potential Score Distribution",
	"averages":  "Average Score Components",
	"top":       "Top Coins by Overall Score",
	"bottom":    "Bottom Coins by Overall Score",
	"promising": "Top Promising Coins",
	"alerts":    "High-Risk Alerts",
}

// ChartHandler renders chart series as PNG images.
type ChartHandler struct {
	deps     Dependencies
	renderer *charts.Renderer
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps Dependencies, renderer *charts.Renderer) *ChartHandler {
	return &ChartHandler{deps: deps, renderer: renderer}
}

// HandleChart handles GET /charts/{name}.png requests. No data answers 204.
func (h *ChartHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart"
	name, ok := strings.CutSuffix(r.PathValue("file"), ".png")
	title, known := chartTitles[name]
	if !ok || !known {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrUnknownItem))
		return
	}

	records, _ := h.deps.Charts(r.Context()).Series(name)
	var buf bytes.Buffer
	if err := h.renderer.Bar(&buf, title, records); err != nil {
		if errors.Is(err, charts.ErrNoData) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		metrics.RecordChartRenderError(name)
		writeError(w, http.StatusInternalServerError, "render_failed", WrapKind(op, ErrRender, err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
