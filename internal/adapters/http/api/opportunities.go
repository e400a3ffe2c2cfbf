package api

import (
	"context"
	"net/http"

	"github.com/benchwise/teamforge/internal/auth"
	"github.com/benchwise/teamforge/internal/domain/model"
)

// OpportunityDependencies defines the interface for the opportunity board.
type OpportunityDependencies interface {
	ListOpportunities(ctx context.Context, includeNetwork bool) ([]model.Opportunity, error)
	GetOpportunity(ctx context.Context, id string) (model.Opportunity, error)
	CreateOpportunity(ctx context.Context, opp model.Opportunity) (model.Opportunity, error)
	ApplyToOpportunity(ctx context.Context, oppID, resourceID string) error
	SetApplicantStatus(ctx context.Context, oppID, resourceID string, status model.ApplicantStatus) error
}

type opportunityRequest struct {
	Title           string   `json:"title" validate:"required"`
	Client          string   `json:"client"`
	Description     string   `json:"description"`
	RequiredSkills  []string `json:"required_skills" validate:"required,min=1,dive,required"`
	ExperienceLevel string   `json:"experience_level" validate:"omitempty,oneof=junior mid senior expert"`
	Location        string   `json:"location"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	EffortDays      int      `json:"effort_days" validate:"omitempty,gt=0"`
	DailyRate       int      `json:"daily_rate" validate:"omitempty,gt=0"`
	Visibility      string   `json:"visibility" validate:"omitempty,oneof=public network"`
}

type applicantStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=interested shortlisted selected rejected"`
}

// OpportunityHandler handles opportunity board requests.
type OpportunityHandler struct {
	deps OpportunityDependencies
}

// NewOpportunityHandler creates a new opportunity handler.
func NewOpportunityHandler(deps OpportunityDependencies) *OpportunityHandler {
	return &OpportunityHandler{deps: deps}
}

// HandleList handles GET /opportunities requests. Guests only see public
// postings.
func (h *OpportunityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	session := auth.FromContext(r.Context())
	includeNetwork := session.Role != auth.RoleGuest

	opportunities, err := h.deps.ListOpportunities(r.Context(), includeNetwork)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, opportunities)
}

// HandleGet handles GET /opportunities/{id} requests.
func (h *OpportunityHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	opp, err := h.deps.GetOpportunity(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, opp)
}

// HandleCreate handles POST /opportunities requests. Admin only.
func (h *OpportunityHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	session := auth.FromContext(r.Context())
	if !session.Role.CanCreateOpportunities() {
		writeError(w, http.StatusForbidden, "forbidden", ErrForbidden)
		return
	}

	var req opportunityRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	created, err := h.deps.CreateOpportunity(r.Context(), model.Opportunity{
		Title:           req.Title,
		Client:          req.Client,
		Description:     req.Description,
		RequiredSkills:  req.RequiredSkills,
		ExperienceLevel: model.ExperienceLevel(req.ExperienceLevel),
		Location:        req.Location,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		EffortDays:      req.EffortDays,
		DailyRate:       req.DailyRate,
		Visibility:      req.Visibility,
		CreatedBy:       session.UserID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleApply handles POST /opportunities/{id}/apply requests. Only
// professionals apply, and they apply as themselves.
func (h *OpportunityHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	session := auth.FromContext(r.Context())
	if !session.Role.CanApply() {
		writeError(w, http.StatusForbidden, "forbidden", ErrForbidden)
		return
	}

	if err := h.deps.ApplyToOpportunity(r.Context(), r.PathValue("id"), session.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ackResponse{Status: "applied"})
}

// HandleApplicantStatus handles PATCH /opportunities/{id}/applicants/{resourceID}.
// Admin only.
func (h *OpportunityHandler) HandleApplicantStatus(w http.ResponseWriter, r *http.Request) {
	session := auth.FromContext(r.Context())
	if !session.Role.CanCreateOpportunities() {
		writeError(w, http.StatusForbidden, "forbidden", ErrForbidden)
		return
	}

	var req applicantStatusRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	err := h.deps.SetApplicantStatus(r.Context(), r.PathValue("id"), r.PathValue("resourceID"), model.ApplicantStatus(req.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "updated"})
}
