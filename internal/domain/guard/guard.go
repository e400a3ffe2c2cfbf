// Package guard defines the interface for build-pass admission control.
package guard

import (
	"context"
	"sync"
	"sync/atomic"
)

// Guard admits at most one in-flight build pass per proposal. Acquire and
// Release bracket a pass; a second Acquire for the same proposal while the
// first is still running is refused.
type Guard interface {
	// Acquire atomically checks whether a pass is in flight for id and
	// claims it if not. Returns true if the claim succeeded, false if a
	// pass was already running.
	Acquire(ctx context.Context, id string) bool

	// Release frees the claim for id so a later pass can run. Safe to call
	// for an id that was never acquired.
	Release(ctx context.Context, id string)

	// InFlight returns how many passes are currently claimed.
	InFlight() int64
}

type inMemoryGuard struct {
	mu      sync.Mutex
	claimed map[string]struct{}
	size    atomic.Int64
}

// NewInMemoryGuard creates a Guard backed by a process-local set.
func NewInMemoryGuard() Guard {
	return &inMemoryGuard{claimed: make(map[string]struct{})}
}

func (g *inMemoryGuard) Acquire(_ context.Context, id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, inFlight := g.claimed[id]; inFlight {
		return false
	}
	g.claimed[id] = struct{}{}
	g.size.Add(1)
	return true
}

func (g *inMemoryGuard) Release(_ context.Context, id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, inFlight := g.claimed[id]; inFlight {
		delete(g.claimed, id)
		g.size.Add(-1)
	}
}

func (g *inMemoryGuard) InFlight() int64 {
	return g.size.Load()
}
