package repository

import (
	"context"
	"sync"

	"github.com/benchwise/teamforge/internal/domain/model"
)

// ProposalStore provides read/write access to proposals.
type ProposalStore interface {
	// Create stores a new proposal.
	// Returns ErrAlreadyExists if the ID is taken.
	Create(ctx context.Context, p model.Proposal) error

	// Get returns the proposal with the given ID.
	// Returns ErrNotFound if the ID is unknown.
	Get(ctx context.Context, id string) (model.Proposal, error)

	// Update replaces a stored proposal.
	// Returns ErrNotFound if the ID is unknown.
	Update(ctx context.Context, p model.Proposal) error

	// List returns all proposals in creation order.
	List(ctx context.Context) ([]model.Proposal, error)
}

type inMemoryProposals struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]model.Proposal
}

// NewProposalStore creates an empty in-memory proposal store.
func NewProposalStore() ProposalStore {
	return &inMemoryProposals{byID: make(map[string]model.Proposal)}
}

func (s *inMemoryProposals) Create(_ context.Context, p model.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byID[p.ID]; taken {
		return ErrAlreadyExists
	}
	s.order = append(s.order, p.ID)
	s.byID[p.ID] = p
	return nil
}

func (s *inMemoryProposals) Get(_ context.Context, id string) (model.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return model.Proposal{}, ErrNotFound
	}
	return p, nil
}

func (s *inMemoryProposals) Update(_ context.Context, p model.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[p.ID]; !ok {
		return ErrNotFound
	}
	s.byID[p.ID] = p
	return nil
}

func (s *inMemoryProposals) List(_ context.Context) ([]model.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Proposal, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}
