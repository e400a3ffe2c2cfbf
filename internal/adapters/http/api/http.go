// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/benchwise/teamforge/internal/adapters/repository"
	service "github.com/benchwise/teamforge/internal/app"
	"github.com/benchwise/teamforge/internal/auth"
	"github.com/benchwise/teamforge/internal/domain/team"
)

// validate checks request payloads against their struct tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Dependencies bundles everything the handler layer needs from the
// application service. The per-handler interfaces below are subsets of it.
type Dependencies interface {
	ResourceDependencies
	ProposalDependencies
	OpportunityDependencies
	DashboardDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	authService *auth.Service

	loginHandler       *LoginHandler
	resourceHandler    *ResourceHandler
	proposalHandler    *ProposalHandler
	opportunityHandler *OpportunityHandler
	dashboardHandler   *DashboardHandler
	statsHandler       *StatsHandler
	healthHandler      *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, authService *auth.Service) *Server {
	return &Server{
		authService:        authService,
		loginHandler:       NewLoginHandler(authService),
		resourceHandler:    NewResourceHandler(deps),
		proposalHandler:    NewProposalHandler(deps),
		opportunityHandler: NewOpportunityHandler(deps),
		dashboardHandler:   NewDashboardHandler(deps),
		statsHandler:       NewStatsHandler(deps),
		healthHandler:      NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux. Every route carries the metrics
// middleware; session resolution happens in the outer auth middleware.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /login", MetricsMiddleware(s.loginHandler.HandleLogin, "login"))

	mux.HandleFunc("GET /resources", MetricsMiddleware(s.resourceHandler.HandleList, "resources"))
	mux.HandleFunc("POST /resources", MetricsMiddleware(s.resourceHandler.HandleCreate, "resources"))
	mux.HandleFunc("GET /resources/{id}", MetricsMiddleware(s.resourceHandler.HandleGet, "resource"))

	mux.HandleFunc("POST /proposals", MetricsMiddleware(s.proposalHandler.HandleCreate, "proposals"))
	mux.HandleFunc("GET /proposals", MetricsMiddleware(s.proposalHandler.HandleList, "proposals"))
	mux.HandleFunc("GET /proposals/{id}", MetricsMiddleware(s.proposalHandler.HandleGet, "proposal"))
	mux.HandleFunc("POST /proposals/{id}/submit", MetricsMiddleware(s.proposalHandler.HandleSubmit, "proposal_submit"))
	mux.HandleFunc("POST /proposals/{id}/upload", MetricsMiddleware(s.proposalHandler.HandleUpload, "proposal_upload"))
	mux.HandleFunc("POST /proposals/{id}/build", MetricsMiddleware(s.proposalHandler.HandleBuild, "proposal_build"))
	mux.HandleFunc("GET /proposals/{id}/suggestions", MetricsMiddleware(s.proposalHandler.HandleSuggestions, "proposal_suggestions"))
	mux.HandleFunc("GET /proposals/{id}/summary", MetricsMiddleware(s.proposalHandler.HandleSummary, "proposal_summary"))

	mux.HandleFunc("POST /proposals/{id}/requirements", MetricsMiddleware(s.proposalHandler.HandleAddRequirement, "requirements"))
	mux.HandleFunc("PATCH /proposals/{id}/requirements/{reqID}", MetricsMiddleware(s.proposalHandler.HandleUpdateRequirement, "requirements"))
	mux.HandleFunc("DELETE /proposals/{id}/requirements/{reqID}", MetricsMiddleware(s.proposalHandler.HandleRemoveRequirement, "requirements"))
	mux.HandleFunc("POST /proposals/{id}/requirements/from-opportunity", MetricsMiddleware(s.proposalHandler.HandleRequirementFromOpportunity, "requirements"))

	mux.HandleFunc("POST /proposals/{id}/slots", MetricsMiddleware(s.proposalHandler.HandleAddSlot, "slots"))
	mux.HandleFunc("DELETE /proposals/{id}/slots/{slotID}", MetricsMiddleware(s.proposalHandler.HandleRemoveSlot, "slots"))

	mux.HandleFunc("PUT /proposals/{id}/selection/{key}", MetricsMiddleware(s.proposalHandler.HandleSelect, "selection"))
	mux.HandleFunc("DELETE /proposals/{id}/selection/{key}", MetricsMiddleware(s.proposalHandler.HandleDeselect, "selection"))

	mux.HandleFunc("GET /opportunities", MetricsMiddleware(s.opportunityHandler.HandleList, "opportunities"))
	mux.HandleFunc("POST /opportunities", MetricsMiddleware(s.opportunityHandler.HandleCreate, "opportunities"))
	mux.HandleFunc("GET /opportunities/{id}", MetricsMiddleware(s.opportunityHandler.HandleGet, "opportunity"))
	mux.HandleFunc("POST /opportunities/{id}/apply", MetricsMiddleware(s.opportunityHandler.HandleApply, "opportunity_apply"))
	mux.HandleFunc("PATCH /opportunities/{id}/applicants/{resourceID}", MetricsMiddleware(s.opportunityHandler.HandleApplicantStatus, "opportunity_applicants"))

	mux.HandleFunc("GET /dashboard", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.healthHandler.HandleMetrics)
}

// Handler returns the fully assembled handler chain: routes, then session
// resolution.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return auth.Middleware(s.authService)(mux)
}

type ackResponse struct {
	Status string `json:"status"`
	JobID  string `json:"job_id,omitempty"`
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

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeValid decodes the JSON body into v and checks its validation tags.
func decodeValid(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(ErrBadRequest, err)
	}
	if err := validate.Struct(v); err != nil {
		return errors.Join(ErrBadRequest, err)
	}
	return nil
}

// writeServiceError translates application errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, team.ErrUnknownKey):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrBuildInFlight), errors.Is(err, repository.ErrAlreadyExists), errors.Is(err, repository.ErrDuplicateApplicant):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, service.ErrQueueFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", err)
	case errors.Is(err, service.ErrValidation), errors.Is(err, team.ErrNotSuggested), errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
