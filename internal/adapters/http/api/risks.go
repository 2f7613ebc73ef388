package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/ignite/internal/domain/types"
)

const defaultRiskLimit = 10

// RisksDependencies defines the interface for ranked risk reads.
type RisksDependencies interface {
	TopRisks(ctx context.Context, n int) ([]types.RiskEntry, error)
	Risk(ctx context.Context, employeeID string) (types.RiskEntry, error)
}

// RisksHandler serves the ranked risk list and single-employee lookups.
type RisksHandler struct {
	deps     RisksDependencies
	maxLimit int
}

// NewRisksHandler creates a new risks handler.
func NewRisksHandler(deps RisksDependencies, maxLimit int) *RisksHandler {
	return &RisksHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetRisks handles GET /risks?limit=N. limit defaults to 10.
func (h *RisksHandler) HandleGetRisks(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_risks"
	n := defaultRiskLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeError(w, badRequest(op, "limit must be a positive integer, got %q", raw))
			return
		}
		n = v
	}
	if h.maxLimit > 0 && n > h.maxLimit {
		writeError(w, badRequest(op, "limit must not exceed %d", h.maxLimit))
		return
	}
	entries, err := h.deps.TopRisks(r.Context(), n)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleGetRisk handles GET /risks/{employee_id}.
func (h *RisksHandler) HandleGetRisk(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r, "api.get_risk")
	if !ok {
		return
	}
	entry, err := h.deps.Risk(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// employeeID reads the path parameter and writes a 400 when it is blank.
func employeeID(w http.ResponseWriter, r *http.Request, op string) (string, bool) {
	id := strings.TrimSpace(r.PathValue("employee_id"))
	if id == "" {
		writeError(w, badRequest(op, "missing employee_id"))
		return "", false
	}
	return id, true
}
