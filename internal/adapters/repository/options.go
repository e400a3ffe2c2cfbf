package repository

import "github.com/benchwise/teamforge/internal/domain/model"

// PoolOption applies a configuration option to the in-memory pool store.
type PoolOption func(*inMemoryPool)

// WithPoolCapacity pre-sizes the pool for an expected number of resources.
func WithPoolCapacity(n int) PoolOption {
	return func(p *inMemoryPool) {
		if n > 0 {
			p.order = make([]string, 0, n)
			p.byID = make(map[string]model.Resource, n)
		}
	}
}
