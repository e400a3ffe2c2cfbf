package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/benchwise/teamforge/internal/adapters/repository"
	"github.com/benchwise/teamforge/internal/domain/model"
	"github.com/benchwise/teamforge/pkg/logger"
	"github.com/benchwise/teamforge/pkg/metrics"
)

// KeySuggestions pairs a requirement or slot ID with its ranked candidates,
// in the order the build pass produced them.
type KeySuggestions struct {
	Key     string             `json:"key"`
	Members []model.TeamMember `json:"members"`
}

// CreateProposal opens a new draft proposal.
func (s *Service) CreateProposal(ctx context.Context, title, client, description, createdBy string) (model.Proposal, error) {
	if title == "" {
		return model.Proposal{}, fmt.Errorf("%w: proposal title is required", ErrValidation)
	}

	p := model.Proposal{
		ID:          uuid.NewString(),
		Title:       title,
		Client:      client,
		Description: description,
		Status:      model.ProposalDraft,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}
	if err := s.proposals.Create(ctx, p); err != nil {
		return model.Proposal{}, err
	}

	metrics.UpdateProposalCount(s.proposalCount(ctx))
	s.logger.Info(ctx, "proposal created",
		logger.String("proposal", p.ID),
		logger.String("title", p.Title),
	)
	return p, nil
}

// GetProposal returns one proposal by ID.
func (s *Service) GetProposal(ctx context.Context, id string) (model.Proposal, error) {
	return s.proposals.Get(ctx, id)
}

// ListProposals returns all proposals in creation order.
func (s *Service) ListProposals(ctx context.Context) ([]model.Proposal, error) {
	return s.proposals.List(ctx)
}

// SubmitProposal marks the proposal as submitted. The board is kept so the
// summary stays readable afterwards.
func (s *Service) SubmitProposal(ctx context.Context, id string) (model.Proposal, error) {
	p, err := s.proposals.Get(ctx, id)
	if err != nil {
		return model.Proposal{}, err
	}

	p.Status = model.ProposalSubmitted
	if err := s.proposals.Update(ctx, p); err != nil {
		return model.Proposal{}, err
	}
	return p, nil
}

// AddRequirement appends a role requirement to the proposal and returns it
// with its assigned ID. Ranked lists are not refreshed until the next build.
func (s *Service) AddRequirement(ctx context.Context, proposalID string, req model.RoleRequirement) (model.RoleRequirement, error) {
	if err := validateRequirement(&req); err != nil {
		return model.RoleRequirement{}, err
	}

	p, err := s.proposals.Get(ctx, proposalID)
	if err != nil {
		return model.RoleRequirement{}, err
	}

	req.ID = uuid.NewString()
	p.Requirements = append(p.Requirements, req)
	if err := s.proposals.Update(ctx, p); err != nil {
		return model.RoleRequirement{}, err
	}
	return req, nil
}

// UpdateRequirement replaces an existing requirement in place. Any ranked
// list for it goes stale until the next build pass.
func (s *Service) UpdateRequirement(ctx context.Context, proposalID string, req model.RoleRequirement) (model.RoleRequirement, error) {
	if err := validateRequirement(&req); err != nil {
		return model.RoleRequirement{}, err
	}

	p, err := s.proposals.Get(ctx, proposalID)
	if err != nil {
		return model.RoleRequirement{}, err
	}

	for i := range p.Requirements {
		if p.Requirements[i].ID == req.ID {
			p.Requirements[i] = req
			if err := s.proposals.Update(ctx, p); err != nil {
				return model.RoleRequirement{}, err
			}
			return req, nil
		}
	}
	return model.RoleRequirement{}, fmt.Errorf("requirement %s: %w", req.ID, repository.ErrNotFound)
}

// RemoveRequirement deletes a requirement and prunes its ranked list and
// selection from the board.
func (s *Service) RemoveRequirement(ctx context.Context, proposalID, requirementID string) error {
	p, err := s.proposals.Get(ctx, proposalID)
	if err != nil {
		return err
	}

	kept := p.Requirements[:0]
	found := false
	for _, req := range p.Requirements {
		if req.ID == requirementID {
			found = true
			continue
		}
		kept = append(kept, req)
	}
	if !found {
		return fmt.Errorf("requirement %s: %w", requirementID, repository.ErrNotFound)
	}

	p.Requirements = kept
	if err := s.proposals.Update(ctx, p); err != nil {
		return err
	}

	s.mu.Lock()
	if board, ok := s.boards[proposalID]; ok {
		board.Remove(requirementID)
	}
	s.mu.Unlock()
	return nil
}

// AddSlot appends a manual skill slot to the proposal.
func (s *Service) AddSlot(ctx context.Context, proposalID string, slot model.SkillSlot) (model.SkillSlot, error) {
	if slot.SkillName == "" {
		return model.SkillSlot{}, fmt.Errorf("%w: slot skill name is required", ErrValidation)
	}
	if slot.Level < 1 || slot.Level > 5 {
		return model.SkillSlot{}, fmt.Errorf("%w: slot level must be between 1 and 5", ErrValidation)
	}
	if slot.Quantity <= 0 {
		slot.Quantity = 1
	}

	p, err := s.proposals.Get(ctx, proposalID)
	if err != nil {
		return model.SkillSlot{}, err
	}

	slot.ID = uuid.NewString()
	p.Slots = append(p.Slots, slot)
	if err := s.proposals.Update(ctx, p); err != nil {
		return model.SkillSlot{}, err
	}
	return slot, nil
}

// RemoveSlot deletes a slot and prunes it from the board.
func (s *Service) RemoveSlot(ctx context.Context, proposalID, slotID string) error {
	p, err := s.proposals.Get(ctx, proposalID)
	if err != nil {
		return err
	}

	kept := p.Slots[:0]
	found := false
	for _, slot := range p.Slots {
		if slot.ID == slotID {
			found = true
			continue
		}
		kept = append(kept, slot)
	}
	if !found {
		return fmt.Errorf("slot %s: %w", slotID, repository.ErrNotFound)
	}

	p.Slots = kept
	if err := s.proposals.Update(ctx, p); err != nil {
		return err
	}

	s.mu.Lock()
	if board, ok := s.boards[proposalID]; ok {
		board.Remove(slotID)
	}
	s.mu.Unlock()
	return nil
}

// Suggestions returns the ranked lists from the last completed build pass,
// one entry per requirement or slot. An empty result means no pass has run.
func (s *Service) Suggestions(ctx context.Context, proposalID string) ([]KeySuggestions, error) {
	if _, err := s.proposals.Get(ctx, proposalID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	board, ok := s.boards[proposalID]
	if !ok {
		return []KeySuggestions{}, nil
	}

	keys := board.Keys()
	out := make([]KeySuggestions, 0, len(keys))
	for _, key := range keys {
		members, _ := board.Suggestions(key)
		out = append(out, KeySuggestions{Key: key, Members: members})
	}
	return out, nil
}

// SelectCandidate overrides the selection for a key with one of its ranked
// candidates.
func (s *Service) SelectCandidate(ctx context.Context, proposalID, key, resourceID string) error {
	if _, err := s.proposals.Get(ctx, proposalID); err != nil {
		return err
	}

	s.mu.Lock()
	board := s.boardLocked(proposalID)
	err := board.Select(key, resourceID)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	metrics.RecordSelectionOverride()
	s.logger.Info(ctx, "selection overridden",
		logger.String("proposal", proposalID),
		logger.String("key", key),
		logger.String("resource", resourceID),
	)
	return nil
}

// DeselectKey clears the selection for a key, leaving it unfilled.
func (s *Service) DeselectKey(ctx context.Context, proposalID, key string) error {
	if _, err := s.proposals.Get(ctx, proposalID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if board, ok := s.boards[proposalID]; ok {
		board.Deselect(key)
	}
	return nil
}

// Summary aggregates the current selection into cost, average score, fill
// ratio and a confidence band.
func (s *Service) Summary(ctx context.Context, proposalID string) (model.TeamSummary, error) {
	p, err := s.proposals.Get(ctx, proposalID)
	if err != nil {
		return model.TeamSummary{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	required := len(p.Requirements) + len(p.Slots)
	board, ok := s.boards[proposalID]
	if !ok {
		return model.TeamSummary{RequiredCount: required, Confidence: model.ConfidenceLow}, nil
	}
	return board.Summarize(required), nil
}

func (s *Service) proposalCount(ctx context.Context) int {
	all, err := s.proposals.List(ctx)
	if err != nil {
		return 0
	}
	return len(all)
}

func validateRequirement(req *model.RoleRequirement) error {
	if req.RoleName == "" {
		return fmt.Errorf("%w: role name is required", ErrValidation)
	}
	if len(req.RequiredSkills) == 0 {
		return fmt.Errorf("%w: at least one required skill", ErrValidation)
	}
	if req.EffortDays <= 0 {
		return fmt.Errorf("%w: effort days must be positive", ErrValidation)
	}
	if req.ExperienceLevel == "" {
		req.ExperienceLevel = model.LevelMid
	}
	switch req.ExperienceLevel {
	case model.LevelJunior, model.LevelMid, model.LevelSenior, model.LevelExpert:
	default:
		return fmt.Errorf("%w: unknown experience level %q", ErrValidation, req.ExperienceLevel)
	}
	return nil
}
