// Package ranking turns a resource pool and a requirement or slot into a
// ranked, truncated suggestion list.
//
// Ordering is deterministic: candidates sort by score descending and ties
// keep pool order, so for two equal scores the resource appearing earlier
// in the pool ranks higher. This is an observable contract, not an
// implementation accident.
package ranking

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/benchwise/teamforge/internal/domain/model"
	"github.com/benchwise/teamforge/internal/domain/scoring"
)

// Default engine configuration constants.
const (
	defaultTopN           = 5
	defaultSlotMinScore   = 20
	defaultSlotEffortDays = 30
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTopN sets how many suggestions survive truncation.
func WithTopN(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.topN = n
		}
	}
}

// WithSlotMinScore sets the slot-mode minimum score. Candidates scoring at
// or below it are filtered out before truncation.
func WithSlotMinScore(minScore int) Option {
	return func(e *Engine) {
		if minScore >= 0 {
			e.slotMinScore = minScore
		}
	}
}

// WithSlotEffortDays sets the placeholder engagement length used to cost
// slot-mode matches, which carry no effort estimate of their own.
func WithSlotEffortDays(days int) Option {
	return func(e *Engine) {
		if days > 0 {
			e.slotEffortDays = days
		}
	}
}

// Engine ranks a pool against requirements and slots.
type Engine struct {
	matcher        *scoring.Matcher
	topN           int
	slotMinScore   int
	slotEffortDays int
}

// NewEngine creates an Engine around the given matcher.
func NewEngine(matcher *scoring.Matcher, opts ...Option) *Engine {
	e := &Engine{
		matcher:        matcher,
		topN:           defaultTopN,
		slotMinScore:   defaultSlotMinScore,
		slotEffortDays: defaultSlotEffortDays,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// TopN returns the configured truncation length.
func (e *Engine) TopN() int { return e.topN }

// RankForRequirement scores every pool resource against req and returns the
// top suggestions. Role mode applies no minimum-score filter: a weak pool
// still yields candidates.
func (e *Engine) RankForRequirement(ctx context.Context, pool []model.Resource, req model.RoleRequirement) ([]model.TeamMember, error) {
	members, err := e.scorePool(ctx, pool, func(res model.Resource) (scoring.Result, string, int) {
		return e.matcher.ScoreRole(res, req), req.RoleName, req.EffortDays
	})
	if err != nil {
		return nil, err
	}
	return e.truncate(members), nil
}

// RankForSlot scores every pool resource against slot and returns the top
// suggestions, dropping any candidate at or below the minimum score.
func (e *Engine) RankForSlot(ctx context.Context, pool []model.Resource, slot model.SkillSlot) ([]model.TeamMember, error) {
	members, err := e.scorePool(ctx, pool, func(res model.Resource) (scoring.Result, string, int) {
		return e.matcher.ScoreSlot(res, slot), slot.SkillName, e.slotEffortDays
	})
	if err != nil {
		return nil, err
	}

	kept := members[:0]
	for _, m := range members {
		if m.MatchScore > e.slotMinScore {
			kept = append(kept, m)
		}
	}
	return e.truncate(kept), nil
}

// scorePool fans candidate scoring out across CPUs. Results land in a slice
// indexed by pool position before sorting, so concurrency cannot disturb
// the tie-break order.
func (e *Engine) scorePool(ctx context.Context, pool []model.Resource, score func(model.Resource) (scoring.Result, string, int)) ([]model.TeamMember, error) {
	members := make([]model.TeamMember, len(pool))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, res := range pool {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("scoring cancelled: %w", err)
			}
			result, label, effortDays := score(res)
			members[i] = model.TeamMember{
				ResourceID:   res.ID,
				FullName:     res.FullName,
				Organization: res.Organization,
				Tier:         res.Tier,
				RoleName:     label,
				MatchScore:   result.Score,
				MatchReasons: result.Reasons,
				DailyRate:    res.Pricing.TotalBillableRate,
				TotalCost:    res.Pricing.TotalBillableRate * effortDays,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].MatchScore > members[j].MatchScore
	})
	return members, nil
}

// truncate caps a ranked list at topN.
func (e *Engine) truncate(members []model.TeamMember) []model.TeamMember {
	if len(members) > e.topN {
		return members[:e.topN]
	}
	return members
}
