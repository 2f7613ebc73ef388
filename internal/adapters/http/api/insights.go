package api

import (
	"context"
	"net/http"

	"github.com/okian/ignite/internal/domain/types"
)

// InsightsDependencies defines the interface for explanation reads.
type InsightsDependencies interface {
	Factors(ctx context.Context, employeeID string) (types.Factors, error)
	Importance(ctx context.Context) ([]types.Importance, error)
	DepartmentSummary(ctx context.Context) ([]types.DepartmentRisk, error)
}

// InsightsHandler serves risk factors, feature importance and department totals.
type InsightsHandler struct {
	deps InsightsDependencies
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(deps InsightsDependencies) *InsightsHandler {
	return &InsightsHandler{deps: deps}
}

// HandleGetFactors handles GET /factors/{employee_id}.
func (h *InsightsHandler) HandleGetFactors(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r, "api.get_factors")
	if !ok {
		return
	}
	f, err := h.deps.Factors(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// HandleGetImportance handles GET /importance.
func (h *InsightsHandler) HandleGetImportance(w http.ResponseWriter, r *http.Request) {
	imps, err := h.deps.Importance(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, imps)
}

// HandleGetDepartments handles GET /departments.
func (h *InsightsHandler) HandleGetDepartments(w http.ResponseWriter, r *http.Request) {
	deps, err := h.deps.DepartmentSummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deps)
}
