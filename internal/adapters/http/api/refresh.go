package api

import (
	"errors"
	"net/http"

	"github.com/okian/memedash/internal/domain/state"
)

// RefreshHandler triggers a reload of the score list.
type RefreshHandler struct {
	deps Dependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps Dependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

// HandleRefresh handles POST /api/refresh requests. The body reports the
// resulting status, which may be failed when upstream was unavailable.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.refresh"
	err := h.deps.Refresh(r.Context())
	if errors.Is(err, state.ErrRefreshInFlight) {
		writeError(w, http.StatusConflict, "refresh_in_flight", WrapKind(op, state.ErrRefreshInFlight, nil))
		return
	}
	meta := h.deps.Dashboard(r.Context()).Meta
	writeJSON(w, http.StatusAccepted, refreshResponse{
		Status:  meta.Status,
		Message: meta.Message,
		Version: meta.Version,
	})
}
