package api

import (
	"context"
	"net/http"

	"github.com/benchwise/teamforge/internal/auth"
	"github.com/benchwise/teamforge/internal/domain/analytics"
)

// DashboardDependencies defines the interface for analytics queries.
type DashboardDependencies interface {
	Dashboard(ctx context.Context) (analytics.Snapshot, error)
}

// DashboardHandler handles analytics dashboard requests.
type DashboardHandler struct {
	deps DashboardDependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps DashboardDependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// HandleDashboard handles GET /dashboard requests.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	session := auth.FromContext(r.Context())
	if !session.Role.CanViewAnalytics() {
		writeError(w, http.StatusForbidden, "forbidden", ErrForbidden)
		return
	}

	snapshot, err := h.deps.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
