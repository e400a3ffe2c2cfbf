// Package repository defines the in-memory stores backing the service: the
// resource pool, proposals, and opportunities.
//
// The pool store preserves insertion order on listing. Ranking relies on
// that order to break score ties, so it is part of the store's contract,
// not a cosmetic detail.
package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/benchwise/teamforge/internal/domain/model"
)

// ResourceFilter narrows a pool listing. Zero values mean "no constraint".
type ResourceFilter struct {
	// Search matches case-insensitively against name, title and organization.
	Search string
	// Tier keeps only resources of that tier when non-zero.
	Tier model.Tier
	// Skill keeps only resources holding the named skill, case-insensitively.
	Skill string
	// MinAvailability keeps only resources with at least that many weekly hours.
	MinAvailability int
}

// PoolStore provides read/write access to the resource pool.
type PoolStore interface {
	// Put inserts a resource, or replaces it in place when the ID is known.
	// New resources append to the listing order.
	Put(ctx context.Context, res model.Resource) error

	// Get returns the resource with the given ID.
	// Returns ErrNotFound if the ID is unknown.
	Get(ctx context.Context, id string) (model.Resource, error)

	// List returns resources matching the filter, in insertion order.
	List(ctx context.Context, filter ResourceFilter) ([]model.Resource, error)

	// Count returns the number of resources in the pool.
	Count(ctx context.Context) int
}

type inMemoryPool struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]model.Resource
}

// NewPoolStore creates an empty in-memory pool store.
func NewPoolStore(opts ...PoolOption) PoolStore {
	p := &inMemoryPool{byID: make(map[string]model.Resource)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *inMemoryPool) Put(_ context.Context, res model.Resource) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, seen := p.byID[res.ID]; !seen {
		p.order = append(p.order, res.ID)
	}
	p.byID[res.ID] = res
	return nil
}

func (p *inMemoryPool) Get(_ context.Context, id string) (model.Resource, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	res, ok := p.byID[id]
	if !ok {
		return model.Resource{}, ErrNotFound
	}
	return res, nil
}

func (p *inMemoryPool) List(_ context.Context, filter ResourceFilter) ([]model.Resource, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]model.Resource, 0, len(p.order))
	for _, id := range p.order {
		res := p.byID[id]
		if matchesFilter(res, filter) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (p *inMemoryPool) Count(_ context.Context) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.order)
}

func matchesFilter(res model.Resource, filter ResourceFilter) bool {
	if filter.Tier != 0 && res.Tier != filter.Tier {
		return false
	}
	if res.WeeklyAvailability < filter.MinAvailability {
		return false
	}
	if filter.Skill != "" && !holdsSkill(res, filter.Skill) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		haystack := strings.ToLower(res.FullName + " " + res.Title + " " + res.Organization)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func holdsSkill(res model.Resource, name string) bool {
	for _, skill := range res.Skills {
		if strings.EqualFold(skill.Name, name) {
			return true
		}
	}
	return false
}
