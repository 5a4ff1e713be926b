// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/cors"

	"github.com/okian/memedash/internal/adapters/http/charts"
	"github.com/okian/memedash/internal/domain/present"
	"github.com/okian/memedash/internal/domain/types"
	"github.com/okian/memedash/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Dashboard returns the aggregate view of the current list.
	Dashboard(ctx context.Context) types.Dashboard
	// Charts returns every chart series of the current list.
	Charts(ctx context.Context) present.Charts
	// Coins returns the rendered coin table.
	Coins(ctx context.Context) types.Coins
	// Coin looks up one entity and renders its detail view.
	Coin(ctx context.Context, identifier string) (present.DetailView, error)
	// Refresh reloads the list from upstream.
	Refresh(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	dashboardHandler *dashboardHandler
	viewHandler      *ViewHandler
	coinsHandler     *CoinsHandler
	refreshHandler   *RefreshHandler
	chartHandler     *ChartHandler

	allowedOrigins []string
	log            logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithAllowedOrigins sets the CORS origins allowed to call /api routes.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		dashboardHandler: newDashboardHandler(),
		viewHandler:      NewViewHandler(deps),
		coinsHandler:     NewCoinsHandler(deps),
		refreshHandler:   NewRefreshHandler(deps),
		chartHandler:     NewChartHandler(deps, charts.NewRenderer()),
		allowedOrigins:   []string{"*"},
		log:              logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /api/dashboard", MetricsMiddleware(s.viewHandler.HandleDashboard, "api_dashboard"))
	mux.HandleFunc("GET /api/charts", MetricsMiddleware(s.viewHandler.HandleCharts, "api_charts"))
	mux.HandleFunc("GET /api/coins", MetricsMiddleware(s.coinsHandler.HandleList, "api_coins"))
	mux.HandleFunc("GET /api/coins/{identifier}", MetricsMiddleware(s.coinsHandler.HandleDetail, "api_coin"))
	mux.HandleFunc("POST /api/refresh", MetricsMiddleware(s.refreshHandler.HandleRefresh, "api_refresh"))
	mux.HandleFunc("GET /charts/{file}", MetricsMiddleware(s.chartHandler.HandleChart, "chart_png"))
}

// Handler wraps next with request ids, request logging and CORS.
func (s *Server) Handler(next http.Handler) http.Handler {
	withCORS := cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	})(next)
	return RequestID(LoggingMiddleware(s.log, withCORS))
}

type errorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Detail  *present.DetailView `json:"detail,omitempty"`
}

type refreshResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Version uint64 `json:"version"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
