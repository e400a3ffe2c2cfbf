// Package team holds the selection state for a proposal build session and
// derives roll-up metrics from it.
//
// Selection is binary per requirement or slot: a key is either unfilled or
// holds exactly one chosen candidate from that key's latest ranked list.
// There is no pending or rejected sub-state.
package team

import (
	"errors"
	"math"

	"github.com/benchwise/teamforge/internal/domain/model"
)

// Selection errors.
var (
	// ErrUnknownKey is returned when a requirement or slot has no ranked
	// list on the board.
	ErrUnknownKey = errors.New("no ranked list for key")
	// ErrNotSuggested is returned when a selected resource is not part of
	// the key's ranked list.
	ErrNotSuggested = errors.New("resource is not among the ranked candidates")
)

// Default confidence thresholds on the average match score.
const (
	defaultHighThreshold   = 70
	defaultMediumThreshold = 50
)

// Option applies a configuration option to the Board.
type Option func(*Board)

// WithConfidenceThresholds overrides the score cut-offs for the high and
// medium confidence bands.
func WithConfidenceThresholds(high, medium int) Option {
	return func(b *Board) {
		if high >= medium && medium >= 0 {
			b.highThreshold = high
			b.mediumThreshold = medium
		}
	}
}

// Board tracks ranked candidates and the current selection per requirement
// or slot key. It is not safe for concurrent use; callers serialize access.
type Board struct {
	order       []string
	suggestions map[string][]model.TeamMember
	selected    map[string]model.TeamMember

	highThreshold   int
	mediumThreshold int
}

// NewBoard creates an empty selection board.
func NewBoard(opts ...Option) *Board {
	b := &Board{
		suggestions:     make(map[string][]model.TeamMember),
		selected:        make(map[string]model.TeamMember),
		highThreshold:   defaultHighThreshold,
		mediumThreshold: defaultMediumThreshold,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Reset discards every ranked list and selection. A full ranking pass calls
// this first so prior manual overrides never leak into the new pass.
func (b *Board) Reset() {
	b.order = b.order[:0]
	clear(b.suggestions)
	clear(b.selected)
}

// SetSuggestions installs the ranked list for a key and auto-selects its top
// candidate. An empty list leaves the key unfilled.
func (b *Board) SetSuggestions(key string, members []model.TeamMember) {
	if _, seen := b.suggestions[key]; !seen {
		b.order = append(b.order, key)
	}
	b.suggestions[key] = members

	if len(members) == 0 {
		delete(b.selected, key)
		return
	}
	top := members[0]
	top.Selected = true
	b.selected[key] = top
}

// Suggestions returns the ranked list for a key.
func (b *Board) Suggestions(key string) ([]model.TeamMember, bool) {
	members, ok := b.suggestions[key]
	return members, ok
}

// Select overwrites the key's selection with the given candidate, which must
// come from the key's ranked list.
func (b *Board) Select(key, resourceID string) error {
	members, ok := b.suggestions[key]
	if !ok {
		return ErrUnknownKey
	}
	for _, m := range members {
		if m.ResourceID == resourceID {
			m.Selected = true
			b.selected[key] = m
			return nil
		}
	}
	return ErrNotSuggested
}

// Deselect clears the key's selection, leaving its ranked list intact.
func (b *Board) Deselect(key string) {
	delete(b.selected, key)
}

// Remove drops a key entirely, both its ranked list and any selection.
// Called when the underlying requirement or slot is deleted.
func (b *Board) Remove(key string) {
	if _, ok := b.suggestions[key]; !ok {
		return
	}
	delete(b.suggestions, key)
	delete(b.selected, key)
	for i, k := range b.order {
		if k == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// SelectedFor returns the current selection for a key, if any.
func (b *Board) SelectedFor(key string) (model.TeamMember, bool) {
	m, ok := b.selected[key]
	return m, ok
}

// Selected returns every chosen candidate in key insertion order.
func (b *Board) Selected() []model.TeamMember {
	members := make([]model.TeamMember, 0, len(b.selected))
	for _, key := range b.order {
		if m, ok := b.selected[key]; ok {
			members = append(members, m)
		}
	}
	return members
}

// Keys returns the known requirement and slot keys in insertion order.
func (b *Board) Keys() []string {
	keys := make([]string, len(b.order))
	copy(keys, b.order)
	return keys
}

// Summarize derives the team roll-up from the current selection. It is a
// pure function of board state; calling it twice without a mutation in
// between yields identical output.
func (b *Board) Summarize(requiredCount int) model.TeamSummary {
	selected := b.Selected()

	summary := model.TeamSummary{
		SelectedCount: len(selected),
		RequiredCount: requiredCount,
	}

	var scoreSum int
	for _, m := range selected {
		summary.TotalCost += m.TotalCost
		scoreSum += m.MatchScore
	}
	if len(selected) > 0 {
		summary.AvgMatchScore = int(math.Round(float64(scoreSum) / float64(len(selected))))
	}
	if requiredCount > 0 {
		summary.FillRatio = float64(len(selected)) / float64(requiredCount)
	}

	switch {
	case summary.AvgMatchScore >= b.highThreshold:
		summary.Confidence = model.ConfidenceHigh
	case summary.AvgMatchScore >= b.mediumThreshold:
		summary.Confidence = model.ConfidenceMedium
	default:
		summary.Confidence = model.ConfidenceLow
	}

	return summary
}
