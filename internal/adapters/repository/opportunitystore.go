package repository

import (
	"context"
	"sync"
	"time"

	"github.com/benchwise/teamforge/internal/domain/model"
)

// OpportunityStore provides read/write access to the opportunity book.
type OpportunityStore interface {
	// Create stores a new opportunity.
	// Returns ErrAlreadyExists if the ID is taken.
	Create(ctx context.Context, opp model.Opportunity) error

	// Get returns the opportunity with the given ID.
	// Returns ErrNotFound if the ID is unknown.
	Get(ctx context.Context, id string) (model.Opportunity, error)

	// Update replaces a stored opportunity.
	// Returns ErrNotFound if the ID is unknown.
	Update(ctx context.Context, opp model.Opportunity) error

	// List returns all opportunities in creation order.
	List(ctx context.Context) ([]model.Opportunity, error)

	// Apply records a resource's application. Each resource applies at most
	// once per opportunity; repeats return ErrDuplicateApplicant.
	Apply(ctx context.Context, oppID, resourceID string, at time.Time) error

	// SetApplicantStatus moves one applicant to a new status.
	// Returns ErrNotFound if the opportunity or applicant is unknown.
	SetApplicantStatus(ctx context.Context, oppID, resourceID string, status model.ApplicantStatus) error
}

type inMemoryOpportunities struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]model.Opportunity
}

// NewOpportunityStore creates an empty in-memory opportunity store.
func NewOpportunityStore() OpportunityStore {
	return &inMemoryOpportunities{byID: make(map[string]model.Opportunity)}
}

func (s *inMemoryOpportunities) Create(_ context.Context, opp model.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byID[opp.ID]; taken {
		return ErrAlreadyExists
	}
	s.order = append(s.order, opp.ID)
	s.byID[opp.ID] = opp
	return nil
}

func (s *inMemoryOpportunities) Get(_ context.Context, id string) (model.Opportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	opp, ok := s.byID[id]
	if !ok {
		return model.Opportunity{}, ErrNotFound
	}
	return opp, nil
}

func (s *inMemoryOpportunities) Update(_ context.Context, opp model.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[opp.ID]; !ok {
		return ErrNotFound
	}
	s.byID[opp.ID] = opp
	return nil
}

func (s *inMemoryOpportunities) List(_ context.Context) ([]model.Opportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Opportunity, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

func (s *inMemoryOpportunities) Apply(_ context.Context, oppID, resourceID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	opp, ok := s.byID[oppID]
	if !ok {
		return ErrNotFound
	}
	for _, a := range opp.Applicants {
		if a.ResourceID == resourceID {
			return ErrDuplicateApplicant
		}
	}
	opp.Applicants = append(opp.Applicants, model.Applicant{
		ResourceID: resourceID,
		AppliedAt:  at,
		Status:     model.ApplicantInterested,
	})
	s.byID[oppID] = opp
	return nil
}

func (s *inMemoryOpportunities) SetApplicantStatus(_ context.Context, oppID, resourceID string, status model.ApplicantStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	opp, ok := s.byID[oppID]
	if !ok {
		return ErrNotFound
	}
	for i, a := range opp.Applicants {
		if a.ResourceID == resourceID {
			opp.Applicants[i].Status = status
			s.byID[oppID] = opp
			return nil
		}
	}
	return ErrNotFound
}
