package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/benchwise/teamforge/internal/adapters/repository"
	"github.com/benchwise/teamforge/internal/auth"
	"github.com/benchwise/teamforge/internal/domain/model"
)

// ResourceDependencies defines the interface for pool access.
type ResourceDependencies interface {
	ListResources(ctx context.Context, filter repository.ResourceFilter) ([]model.Resource, error)
	GetResource(ctx context.Context, id string) (model.Resource, error)
	AddResource(ctx context.Context, res model.Resource) (model.Resource, error)
}

// ResourceHandler handles resource pool requests.
type ResourceHandler struct {
	deps ResourceDependencies
}

// NewResourceHandler creates a new resource handler.
func NewResourceHandler(deps ResourceDependencies) *ResourceHandler {
	return &ResourceHandler{deps: deps}
}

// HandleList handles GET /resources requests. Pricing detail in the
// response depends on the caller's role.
func (h *ResourceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	resources, err := h.deps.ListResources(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	session := auth.FromContext(r.Context())
	for i := range resources {
		resources[i].Pricing = session.Role.FilterPricing(resources[i].Pricing)
	}
	writeJSON(w, http.StatusOK, resources)
}

// HandleGet handles GET /resources/{id} requests.
func (h *ResourceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	res, err := h.deps.GetResource(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	session := auth.FromContext(r.Context())
	res.Pricing = session.Role.FilterPricing(res.Pricing)
	writeJSON(w, http.StatusOK, res)
}

// HandleCreate handles POST /resources requests. Admin only.
func (h *ResourceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	session := auth.FromContext(r.Context())
	if !session.Role.CanManageResources() {
		writeError(w, http.StatusForbidden, "forbidden", ErrForbidden)
		return
	}

	var res model.Resource
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	created, err := h.deps.AddResource(r.Context(), res)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func filterFromQuery(r *http.Request) (repository.ResourceFilter, error) {
	q := r.URL.Query()
	filter := repository.ResourceFilter{
		Search: q.Get("search"),
		Skill:  q.Get("skill"),
	}
	if raw := q.Get("tier"); raw != "" {
		tier, err := strconv.Atoi(raw)
		if err != nil || tier < int(model.TierCore) || tier > int(model.TierEmerging) {
			return repository.ResourceFilter{}, ErrBadRequest
		}
		filter.Tier = model.Tier(tier)
	}
	if raw := q.Get("min_availability"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours < 0 {
			return repository.ResourceFilter{}, ErrBadRequest
		}
		filter.MinAvailability = hours
	}
	return filter, nil
}
