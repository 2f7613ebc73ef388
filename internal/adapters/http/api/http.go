// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/ignite/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// TopRisks returns the n riskiest employees, riskiest first.
	TopRisks(ctx context.Context, n int) ([]types.RiskEntry, error)
	// Risk returns one employee's rank and risk.
	Risk(ctx context.Context, employeeID string) (types.RiskEntry, error)
	// Factors explains one employee's risk.
	Factors(ctx context.Context, employeeID string) (types.Factors, error)
	// Importance returns the ranked model feature importances.
	Importance(ctx context.Context) ([]types.Importance, error)
	// DepartmentSummary returns per-department totals.
	DepartmentSummary(ctx context.Context) ([]types.DepartmentRisk, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	risksHandler    *RisksHandler
	insightsHandler *InsightsHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps
// GET /risks?limit.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		risksHandler:    NewRisksHandler(deps, maxLimit),
		insightsHandler: NewInsightsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /risks", MetricsMiddleware(s.risksHandler.HandleGetRisks, "risks"))
	mux.HandleFunc("GET /risks/{employee_id}", MetricsMiddleware(s.risksHandler.HandleGetRisk, "risk"))
	mux.HandleFunc("GET /factors/{employee_id}", MetricsMiddleware(s.insightsHandler.HandleGetFactors, "factors"))
	mux.HandleFunc("GET /importance", MetricsMiddleware(s.insightsHandler.HandleGetImportance, "importance"))
	mux.HandleFunc("GET /departments", MetricsMiddleware(s.insightsHandler.HandleGetDepartments, "departments"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
