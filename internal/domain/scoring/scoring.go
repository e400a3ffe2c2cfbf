// Package scoring computes explainable match scores between pool resources
// and role requirements or skill slots.
//
// Scores are additive across weighted components. Each component is clamped
// to its own cap before summing; the total is the rounded sum and carries an
// ordered list of human-readable reasons for the presentation layer.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/benchwise/teamforge/internal/domain/model"
)

// Component caps and reason thresholds.
const (
	maxSkillScore        = 40.0
	maxExperienceScore   = 20.0
	maxTierScore         = 15.0
	maxPerformanceScore  = 15.0
	maxAvailabilityScore = 10.0

	fullWeekHours           = 40.0
	ratingScale             = 5.0
	strongRatingThreshold   = 4.0
	availabilityReasonHours = 30
	trustedTierCeiling      = model.TierTrusted
	reasonSkillLimit        = 3
)

// Result is a computed match with its justification, ordered by component.
type Result struct {
	Score   int
	Reasons []string
}

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithLevelYears overrides the years-of-experience thresholds keyed by
// required experience level.
func WithLevelYears(years map[model.ExperienceLevel]float64) Option {
	return func(m *Matcher) {
		if len(years) > 0 {
			m.levelYears = years
		}
	}
}

// WithTierWeights overrides the per-tier trust weights.
func WithTierWeights(weights map[model.Tier]float64) Option {
	return func(m *Matcher) {
		if len(weights) > 0 {
			m.tierWeights = weights
		}
	}
}

// Matcher scores resources against requirements and slots. It is pure and
// safe for concurrent use once constructed.
type Matcher struct {
	levelYears  map[model.ExperienceLevel]float64
	tierWeights map[model.Tier]float64
}

// NewMatcher creates a Matcher with the default weights.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		levelYears: map[model.ExperienceLevel]float64{
			model.LevelJunior: 2,
			model.LevelMid:    5,
			model.LevelSenior: 8,
			model.LevelExpert: 12,
		},
		tierWeights: map[model.Tier]float64{
			model.TierCore:     15,
			model.TierTrusted:  12,
			model.TierProven:   8,
			model.TierEmerging: 4,
		},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// ScoreRole scores a resource against a role requirement.
//
// Components: skill overlap (0-40), experience depth (0-20), tier weight
// (0-15), performance history (0-15), availability (0-10). Missing inputs
// (no skills, no feedback, no required skills) contribute 0 rather than
// producing NaN.
func (m *Matcher) ScoreRole(res model.Resource, req model.RoleRequirement) Result {
	var score float64
	var reasons []string

	// Skill overlap: case-insensitive substring match in either direction.
	matching := matchingSkills(res.Skills, req.RequiredSkills)
	if len(req.RequiredSkills) > 0 {
		score += math.Min(maxSkillScore, float64(len(matching))/float64(len(req.RequiredSkills))*maxSkillScore)
	}
	if len(matching) > 0 {
		names := matching
		if len(names) > reasonSkillLimit {
			names = names[:reasonSkillLimit]
		}
		reasons = append(reasons, fmt.Sprintf("%d matching skills: %s", len(matching), strings.Join(names, ", ")))
	}

	// Experience depth: average years across all skills against the
	// threshold for the requested level.
	avgYears := averageYears(res.Skills)
	if required := m.levelYears[req.ExperienceLevel]; required > 0 {
		score += math.Min(maxExperienceScore, avgYears/required*maxExperienceScore)
		if avgYears >= required {
			reasons = append(reasons, fmt.Sprintf("%d years average experience", int(math.Round(avgYears))))
		}
	}

	// Tier weight.
	score += m.tierWeights[res.Tier]
	if res.Tier >= model.TierCore && res.Tier <= trustedTierCeiling {
		reasons = append(reasons, fmt.Sprintf("Tier %d - %s", res.Tier, res.Tier.Label()))
	}

	// Performance history: manager and client feedback pooled.
	avgRating := pooledRating(res.ManagerFeedback, res.ClientFeedback)
	score += avgRating / ratingScale * maxPerformanceScore
	if avgRating >= strongRatingThreshold {
		reasons = append(reasons, fmt.Sprintf("%.1f★ average rating", avgRating))
	}

	// Availability.
	score += math.Min(maxAvailabilityScore, float64(res.WeeklyAvailability)/fullWeekHours*maxAvailabilityScore)
	if res.WeeklyAvailability >= availabilityReasonHours {
		reasons = append(reasons, fmt.Sprintf("%dh/week available", res.WeeklyAvailability))
	}

	return Result{Score: int(math.Round(score)), Reasons: reasons}
}

// matchingSkills returns the names of resource skills that overlap any
// required skill by case-insensitive substring in either direction.
func matchingSkills(skills []model.Skill, required []string) []string {
	var names []string
	for _, s := range skills {
		lower := strings.ToLower(s.Name)
		for _, rs := range required {
			rl := strings.ToLower(rs)
			if strings.Contains(lower, rl) || strings.Contains(rl, lower) {
				names = append(names, s.Name)
				break
			}
		}
	}
	return names
}

// averageYears returns the mean years of experience across all skills,
// or 0 for an empty skill list.
func averageYears(skills []model.Skill) float64 {
	if len(skills) == 0 {
		return 0
	}
	var total int
	for _, s := range skills {
		total += s.YearsExperience
	}
	return float64(total) / float64(len(skills))
}

// pooledRating averages manager and client feedback as one list. The
// divisor is floored at 1 so an empty history yields 0, not NaN.
func pooledRating(manager, client []model.Feedback) float64 {
	var sum int
	count := len(manager) + len(client)
	for _, f := range manager {
		sum += f.Rating
	}
	for _, f := range client {
		sum += f.Rating
	}
	if count < 1 {
		count = 1
	}
	return float64(sum) / float64(count)
}
