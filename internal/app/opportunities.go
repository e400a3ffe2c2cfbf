package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/benchwise/teamforge/internal/adapters/repository"
	"github.com/benchwise/teamforge/internal/domain/analytics"
	"github.com/benchwise/teamforge/internal/domain/model"
	"github.com/benchwise/teamforge/pkg/logger"
	"github.com/benchwise/teamforge/pkg/metrics"
)

// Opportunity visibility values.
const (
	VisibilityPublic  = "public"
	VisibilityNetwork = "network"
)

// ListResources returns the pool filtered by the given criteria.
func (s *Service) ListResources(ctx context.Context, filter repository.ResourceFilter) ([]model.Resource, error) {
	return s.pool.List(ctx, filter)
}

// GetResource returns one resource by ID.
func (s *Service) GetResource(ctx context.Context, id string) (model.Resource, error) {
	return s.pool.Get(ctx, id)
}

// AddResource inserts or replaces a resource in the pool.
func (s *Service) AddResource(ctx context.Context, res model.Resource) (model.Resource, error) {
	if res.FullName == "" {
		return model.Resource{}, fmt.Errorf("%w: resource full name is required", ErrValidation)
	}
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now()
	}

	if err := s.pool.Put(ctx, res); err != nil {
		return model.Resource{}, err
	}
	metrics.UpdatePoolSize(s.pool.Count(ctx))
	return res, nil
}

// ListOpportunities returns the opportunity book. Network-only postings are
// omitted unless includeNetwork is set; guests only see public ones.
func (s *Service) ListOpportunities(ctx context.Context, includeNetwork bool) ([]model.Opportunity, error) {
	all, err := s.opportunities.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Opportunity, 0, len(all))
	for _, opp := range all {
		if opp.Visibility == VisibilityNetwork && !includeNetwork {
			continue
		}
		out = append(out, opp)
	}
	return out, nil
}

// GetOpportunity returns one opportunity by ID.
func (s *Service) GetOpportunity(ctx context.Context, id string) (model.Opportunity, error) {
	return s.opportunities.Get(ctx, id)
}

// CreateOpportunity posts a new opportunity. It opens immediately unless a
// status is supplied.
func (s *Service) CreateOpportunity(ctx context.Context, opp model.Opportunity) (model.Opportunity, error) {
	if opp.Title == "" {
		return model.Opportunity{}, fmt.Errorf("%w: opportunity title is required", ErrValidation)
	}
	if len(opp.RequiredSkills) == 0 {
		return model.Opportunity{}, fmt.Errorf("%w: at least one required skill", ErrValidation)
	}

	opp.ID = uuid.NewString()
	if opp.Status == "" {
		opp.Status = model.OpportunityOpen
	}
	if opp.Visibility == "" {
		opp.Visibility = VisibilityNetwork
	}
	opp.Applicants = nil
	opp.CreatedAt = time.Now()

	if err := s.opportunities.Create(ctx, opp); err != nil {
		return model.Opportunity{}, err
	}

	s.logger.Info(ctx, "opportunity posted",
		logger.String("opportunity", opp.ID),
		logger.String("title", opp.Title),
	)
	return opp, nil
}

// ApplyToOpportunity records an application. Only open opportunities accept
// applicants, and a resource can apply once.
func (s *Service) ApplyToOpportunity(ctx context.Context, oppID, resourceID string) error {
	opp, err := s.opportunities.Get(ctx, oppID)
	if err != nil {
		return err
	}
	if opp.Status != model.OpportunityOpen {
		return fmt.Errorf("%w: opportunity %s is not open", ErrValidation, oppID)
	}
	return s.opportunities.Apply(ctx, oppID, resourceID, time.Now())
}

// SetApplicantStatus moves one applicant through the review pipeline.
func (s *Service) SetApplicantStatus(ctx context.Context, oppID, resourceID string, status model.ApplicantStatus) error {
	switch status {
	case model.ApplicantInterested, model.ApplicantShortlisted, model.ApplicantSelected, model.ApplicantRejected:
	default:
		return fmt.Errorf("%w: unknown applicant status %q", ErrValidation, status)
	}
	return s.opportunities.SetApplicantStatus(ctx, oppID, resourceID, status)
}

// RequirementFromOpportunity derives a role requirement from an opportunity
// and appends it to the proposal, bridging the opportunity board into the
// team builder.
func (s *Service) RequirementFromOpportunity(ctx context.Context, proposalID, oppID string) (model.RoleRequirement, error) {
	opp, err := s.opportunities.Get(ctx, oppID)
	if err != nil {
		return model.RoleRequirement{}, err
	}

	req := model.RoleRequirement{
		RoleName:        opp.Title,
		RequiredSkills:  append([]string(nil), opp.RequiredSkills...),
		ExperienceLevel: opp.ExperienceLevel,
		EffortDays:      opp.EffortDays,
		StartDate:       opp.StartDate,
		EndDate:         opp.EndDate,
	}
	if req.EffortDays <= 0 {
		req.EffortDays = s.slotEffortDays
	}
	return s.AddRequirement(ctx, proposalID, req)
}

// Dashboard builds the analytics snapshot over the current pool and
// opportunity book.
func (s *Service) Dashboard(ctx context.Context) (analytics.Snapshot, error) {
	pool, err := s.pool.List(ctx, repository.ResourceFilter{})
	if err != nil {
		return analytics.Snapshot{}, err
	}
	opportunities, err := s.opportunities.List(ctx)
	if err != nil {
		return analytics.Snapshot{}, err
	}
	return analytics.Build(pool, opportunities), nil
}
