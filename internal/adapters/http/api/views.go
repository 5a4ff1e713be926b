package api

import (
	"net/http"
)

// ViewHandler serves the aggregate JSON views.
type ViewHandler struct {
	deps Dependencies
}

// NewViewHandler creates a new view handler.
func NewViewHandler(deps Dependencies) *ViewHandler {
	return &ViewHandler{deps: deps}
}

// HandleDashboard handles GET /api/dashboard requests.
func (h *ViewHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Dashboard(r.Context()))
}

// HandleCharts handles GET /api/charts requests.
func (h *ViewHandler) HandleCharts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Charts(r.Context()))
}
