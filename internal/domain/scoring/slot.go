package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/benchwise/teamforge/internal/domain/model"
)

// Slot-mode component values. Slot levels run 1 (expert) to 5 (junior),
// the inverse of skill proficiency.
const (
	slotBaseScore        = 40.0
	maxProximityScore    = 20.0
	proximityPenalty     = 5.0
	experienceBonusScore = 15.0
	proficiencyCeiling   = 6 // target proficiency = proficiencyCeiling - level
)

// slotLevelYears holds the years required for the experience bonus, indexed
// by slot level 1..5.
var slotLevelYears = [...]int{12, 8, 5, 3, 1}

// ScoreSlot scores a resource against a single skill slot.
//
// A resource without the named skill (case-insensitive, exact) earns no
// base or proximity points and is judged on tier and availability alone.
func (m *Matcher) ScoreSlot(res model.Resource, slot model.SkillSlot) Result {
	var score float64
	var reasons []string

	if skill, ok := findSkill(res.Skills, slot.SkillName); ok {
		score += slotBaseScore
		reasons = append(reasons, fmt.Sprintf("Has %s (%s)", skill.Name, model.ProficiencyLabel(skill.Proficiency)))

		// Proximity to the target proficiency, 5 points lost per level
		// of mismatch in either direction.
		target := proficiencyCeiling - slot.Level
		distance := math.Abs(float64(skill.Proficiency - target))
		score += math.Max(0, maxProximityScore-proximityPenalty*distance)

		// All-or-nothing experience bonus.
		if required, ok := slotYears(slot.Level); ok && skill.YearsExperience >= required {
			score += experienceBonusScore
			reasons = append(reasons, fmt.Sprintf("%d years with %s", skill.YearsExperience, skill.Name))
		}
	}

	score += m.tierWeights[res.Tier]
	if res.Tier >= model.TierCore && res.Tier <= trustedTierCeiling {
		reasons = append(reasons, fmt.Sprintf("Tier %d - %s", res.Tier, res.Tier.Label()))
	}

	score += math.Min(maxAvailabilityScore, float64(res.WeeklyAvailability)/fullWeekHours*maxAvailabilityScore)
	if res.WeeklyAvailability >= availabilityReasonHours {
		reasons = append(reasons, fmt.Sprintf("%dh/week available", res.WeeklyAvailability))
	}

	return Result{Score: int(math.Round(score)), Reasons: reasons}
}

// findSkill returns the resource skill whose name equals name
// case-insensitively.
func findSkill(skills []model.Skill, name string) (model.Skill, bool) {
	for _, s := range skills {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return model.Skill{}, false
}

// slotYears returns the experience-bonus threshold for a slot level.
func slotYears(level int) (int, bool) {
	if level < 1 || level > len(slotLevelYears) {
		return 0, false
	}
	return slotLevelYears[level-1], true
}
