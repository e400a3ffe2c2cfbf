package api

import (
	"context"
	"net/http"

	"github.com/benchwise/teamforge/internal/auth"
	"github.com/benchwise/teamforge/internal/domain/model"

	service "github.com/benchwise/teamforge/internal/app"
)

// ProposalDependencies defines the interface for the team-building flow.
type ProposalDependencies interface {
	CreateProposal(ctx context.Context, title, client, description, createdBy string) (model.Proposal, error)
	GetProposal(ctx context.Context, id string) (model.Proposal, error)
	ListProposals(ctx context.Context) ([]model.Proposal, error)
	SubmitProposal(ctx context.Context, id string) (model.Proposal, error)

	AddRequirement(ctx context.Context, proposalID string, req model.RoleRequirement) (model.RoleRequirement, error)
	UpdateRequirement(ctx context.Context, proposalID string, req model.RoleRequirement) (model.RoleRequirement, error)
	RemoveRequirement(ctx context.Context, proposalID, requirementID string) error
	RequirementFromOpportunity(ctx context.Context, proposalID, oppID string) (model.RoleRequirement, error)
	AddSlot(ctx context.Context, proposalID string, slot model.SkillSlot) (model.SkillSlot, error)
	RemoveSlot(ctx context.Context, proposalID, slotID string) error

	StartBuild(ctx context.Context, proposalID string) (string, error)
	StartUpload(ctx context.Context, proposalID string) (string, error)
	Suggestions(ctx context.Context, proposalID string) ([]service.KeySuggestions, error)
	SelectCandidate(ctx context.Context, proposalID, key, resourceID string) error
	DeselectKey(ctx context.Context, proposalID, key string) error
	Summary(ctx context.Context, proposalID string) (model.TeamSummary, error)
}

type createProposalRequest struct {
	Title       string `json:"title" validate:"required"`
	Client      string `json:"client"`
	Description string `json:"description"`
}

type requirementRequest struct {
	RoleName        string   `json:"role_name" validate:"required"`
	RequiredSkills  []string `json:"required_skills" validate:"required,min=1,dive,required"`
	ExperienceLevel string   `json:"experience_level" validate:"omitempty,oneof=junior mid senior expert"`
	EffortDays      int      `json:"effort_days" validate:"required,gt=0"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
}

func (r requirementRequest) model() model.RoleRequirement {
	return model.RoleRequirement{
		RoleName:        r.RoleName,
		RequiredSkills:  r.RequiredSkills,
		ExperienceLevel: model.ExperienceLevel(r.ExperienceLevel),
		EffortDays:      r.EffortDays,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
	}
}

type slotRequest struct {
	SkillName string `json:"skill_name" validate:"required"`
	Level     int    `json:"level" validate:"required,min=1,max=5"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1"`
}

type selectRequest struct {
	ResourceID string `json:"resource_id" validate:"required"`
}

type fromOpportunityRequest struct {
	OpportunityID string `json:"opportunity_id" validate:"required"`
}

// ProposalHandler handles proposal and team-building requests.
type ProposalHandler struct {
	deps ProposalDependencies
}

// NewProposalHandler creates a new proposal handler.
func NewProposalHandler(deps ProposalDependencies) *ProposalHandler {
	return &ProposalHandler{deps: deps}
}

// requireBuilder rejects callers whose role cannot run the team builder.
func requireBuilder(w http.ResponseWriter, r *http.Request) bool {
	session := auth.FromContext(r.Context())
	if !session.Role.CanBuildProposals() {
		writeError(w, http.StatusForbidden, "forbidden", ErrForbidden)
		return false
	}
	return true
}

// HandleCreate handles POST /proposals requests.
func (h *ProposalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !requireBuilder(w, r) {
		return
	}
	var req createProposalRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	session := auth.FromContext(r.Context())
	p, err := h.deps.CreateProposal(r.Context(), req.Title, req.Client, req.Description, session.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// HandleList handles GET /proposals requests.
func (h *ProposalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !requireBuilder(w, r) {
		return
	}
	proposals, err := h.deps.ListProposals(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proposals)
}

// HandleGet handles GET /proposals/{id} requests.
func (h *ProposalHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if !requireBuilder(w, r) {
		return
	}
	p, err := h.deps.GetProposal(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleSubmit handles POST /proposals/{id}/submit requests.
func (h *ProposalHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if !requireBuilder(w, r) {
		return
	}
	p, err := h.deps.SubmitProposal(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleUpload handles POST /proposals/{id}/upload requests. The parse runs
// asynchronously; the response only acknowledges the job.
func (h *ProposalHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if !requireBuilder(w, r) {
		return
	}
	jobID, err := h.deps.StartUpload(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", JobID: jobID})
}

// HandleBuild handles POST /proposals/{id}/build requests. A build already
// in flight answers 409.
func (h *ProposalHandler) HandleBuild(w http.ResponseWriter, r *http.Request) {
	if !requireBuilder(w, r) {
		return
	}
	jobID, err := h.deps.StartBuild(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", JobID: jobID})
}

// HandleSuggestions handles GET /proposals/{id}/suggestions requests.
func (h *ProposalHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	if !requireBuilder(w, r) {
		return
	}
	lists, err := h.deps.Suggestions(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

// HandleSummary handles GET /proposals/{id}/summary requests.
func (h *ProposalHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if !requireBuilder(w, r) {
		return
	}
	summary, err := h.deps.Summary(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleAddRequirement handles POST /proposals/{id}/requirements requests.
func (h *ProposalHandler) HandleAddRequirement(w http.ResponseWriter, r *http.Request) {
	if !requireBuilder(w, r) {
		return
	}
	var req requirementRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	created, err := h.deps.AddRequirement(r.Context(), r.PathValue("id"), req.model())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleUpdateRequirement handles PATCH /proposals/{id}/requirements/{reqID}.
func (h *ProposalHandler) HandleUpdateRequirement(w http.ResponseWriter, r *http.Request) {
	if !requireBuilder(w, r) {
		return
	}
	var req requirementRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	updated := req.model()
	updated.ID = r.PathValue("reqID")
	result, err := h.deps.UpdateRequirement(r.Context(), r.PathValue("id"), updated)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleRemoveRequirement handles DELETE /proposals/{id}/requirements/{reqID}.
func (h *ProposalHandler) HandleRemoveRequirement(w http.ResponseWriter, r *http.Request) {
	if !requireBuilder(w, r) {
		return
	}
	if err := h.deps.RemoveRequirement(r.Context(), r.PathValue("id"), r.PathValue("reqID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRequirementFromOpportunity handles
// POST /proposals/{id}/requirements/from-opportunity.
func (h *ProposalHandler) HandleRequirementFromOpportunity(w http.ResponseWriter, r *http.Request) {
	if !requireBuilder(w, r) {
		return
	}
	var req fromOpportunityRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	created, err := h.deps.RequirementFromOpportunity(r.Context(), r.PathValue("id"), req.OpportunityID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleAddSlot handles POST /proposals/{id}/slots requests.
func (h *ProposalHandler) HandleAddSlot(w http.ResponseWriter, r *http.Request) {
	if !requireBuilder(w, r) {
		return
	}
	var req slotRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	created, err := h.deps.AddSlot(r.Context(), r.PathValue("id"), model.SkillSlot{
		SkillName: req.SkillName,
		Level:     req.Level,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleRemoveSlot handles DELETE /proposals/{id}/slots/{slotID} requests.
func (h *ProposalHandler) HandleRemoveSlot(w http.ResponseWriter, r *http.Request) {
	if !requireBuilder(w, r) {
		return
	}
	if err := h.deps.RemoveSlot(r.Context(), r.PathValue("id"), r.PathValue("slotID")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSelect handles PUT /proposals/{id}/selection/{key} requests.
func (h *ProposalHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	if !requireBuilder(w, r) {
		return
	}
	var req selectRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	if err := h.deps.SelectCandidate(r.Context(), r.PathValue("id"), r.PathValue("key"), req.ResourceID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "selected"})
}

// HandleDeselect handles DELETE /proposals/{id}/selection/{key} requests.
func (h *ProposalHandler) HandleDeselect(w http.ResponseWriter, r *http.Request) {
	if !requireBuilder(w, r) {
		return
	}
	if err := h.deps.DeselectKey(r.Context(), r.PathValue("id"), r.PathValue("key")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
