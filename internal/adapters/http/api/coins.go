package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/okian/memedash/internal/adapters/upstream"
	"github.com/okian/memedash/internal/domain/present"
)

// CoinsHandler serves the coin table and detail lookups.
type CoinsHandler struct {
	deps Dependencies
}

// NewCoinsHandler creates a new coins handler.
func NewCoinsHandler(deps Dependencies) *CoinsHandler {
	return &CoinsHandler{deps: deps}
}

// HandleList handles GET /api/coins requests.
func (h *CoinsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Coins(r.Context()))
}

// HandleDetail handles GET /api/coins/{identifier} requests. A missing coin
// answers 404 with the placeholder view; upstream failures answer 502.
func (h *CoinsHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_coin"
	id := strings.TrimSpace(r.PathValue("identifier"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	view, err := h.deps.Coin(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, view)
	case errors.Is(err, upstream.ErrNotFound):
		placeholder := present.Detail(nil)
		writeJSON(w, http.StatusNotFound, errorResponse{
			Code:    "not_found",
			Message: upstream.Message(err),
			Detail:  &placeholder,
		})
	case errors.Is(err, upstream.ErrNetwork),
		errors.Is(err, upstream.ErrServer),
		errors.Is(err, upstream.ErrParse),
		errors.Is(err, upstream.ErrMalformedResponse):
		writeJSON(w, http.StatusBadGateway, errorResponse{Code: "upstream_error", Message: upstream.Message(err)})
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
