// Package analytics derives the dashboard snapshot from the resource pool
// and the opportunity book. Everything here is a pure function of its
// inputs; nothing is cached between calls.
package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/benchwise/teamforge/internal/domain/model"
)

// Hours above which a resource counts as available for new work.
const availabilityFloorHours = 20

// How many skills the top-skills list carries.
const topSkillLimit = 10

// Assumed full working week, in hours.
const fullWeekHours = 40.0

// TierCount is one row of the tier distribution.
type TierCount struct {
	Tier  model.Tier `json:"tier"`
	Label string     `json:"label"`
	Count int        `json:"count"`
}

// SkillCount is one row of the top-skills list.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// SkillGap contrasts demand for a skill from open opportunities with the
// supply available in the pool.
type SkillGap struct {
	Skill  string `json:"skill"`
	Demand int    `json:"demand"`
	Supply int    `json:"supply"`
	Gap    int    `json:"gap"`
}

// Snapshot is the derived dashboard view.
type Snapshot struct {
	TotalResources     int          `json:"total_resources"`
	AvailableResources int          `json:"available_resources"`
	OpenOpportunities  int          `json:"open_opportunities"`
	TierDistribution   []TierCount  `json:"tier_distribution"`
	TopSkills          []SkillCount `json:"top_skills"`
	SkillsGap          []SkillGap   `json:"skills_gap"`
	AvgUtilization     int          `json:"avg_utilization"` // percent
}

// Build derives a Snapshot from the pool and opportunity book.
func Build(pool []model.Resource, opportunities []model.Opportunity) Snapshot {
	snap := Snapshot{
		TotalResources:   len(pool),
		TierDistribution: tierDistribution(pool),
		TopSkills:        topSkills(pool),
	}

	var allocated float64
	for _, res := range pool {
		if res.WeeklyAvailability > availabilityFloorHours {
			snap.AvailableResources++
		}
		allocated += fullWeekHours - float64(res.WeeklyAvailability)
	}
	if len(pool) > 0 {
		snap.AvgUtilization = int(math.Round(allocated / (fullWeekHours * float64(len(pool))) * 100))
	}

	var open []model.Opportunity
	for _, opp := range opportunities {
		if opp.Status == model.OpportunityOpen {
			open = append(open, opp)
		}
	}
	snap.OpenOpportunities = len(open)
	snap.SkillsGap = skillsGap(pool, open)

	return snap
}

func tierDistribution(pool []model.Resource) []TierCount {
	rows := make([]TierCount, 0, 4)
	for tier := model.TierCore; tier <= model.TierEmerging; tier++ {
		rows = append(rows, TierCount{Tier: tier, Label: tier.Label()})
	}
	for _, res := range pool {
		idx := int(res.Tier) - 1
		if idx >= 0 && idx < len(rows) {
			rows[idx].Count++
		}
	}
	return rows
}

// topSkills counts how many resources hold each skill. Ties break on skill
// name so the list is stable across calls.
func topSkills(pool []model.Resource) []SkillCount {
	counts := make(map[string]int)
	for _, res := range pool {
		for _, skill := range res.Skills {
			counts[skill.Name]++
		}
	}

	rows := make([]SkillCount, 0, len(counts))
	for name, count := range counts {
		rows = append(rows, SkillCount{Skill: name, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Skill < rows[j].Skill
	})

	if len(rows) > topSkillLimit {
		rows = rows[:topSkillLimit]
	}
	return rows
}

// skillsGap tallies, per skill demanded by open opportunities, how many
// opportunities want it against how many pool resources hold it. Matching
// is case-insensitive; the demanded spelling wins for display.
func skillsGap(pool []model.Resource, open []model.Opportunity) []SkillGap {
	demand := make(map[string]*SkillGap)
	var order []string
	for _, opp := range open {
		for _, name := range opp.RequiredSkills {
			key := strings.ToLower(name)
			if _, seen := demand[key]; !seen {
				demand[key] = &SkillGap{Skill: name}
				order = append(order, key)
			}
			demand[key].Demand++
		}
	}
	if len(demand) == 0 {
		return nil
	}

	for _, res := range pool {
		for _, skill := range res.Skills {
			if gap, wanted := demand[strings.ToLower(skill.Name)]; wanted {
				gap.Supply++
			}
		}
	}

	rows := make([]SkillGap, 0, len(order))
	for _, key := range order {
		gap := demand[key]
		gap.Gap = gap.Demand - gap.Supply
		rows = append(rows, *gap)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Gap > rows[j].Gap
	})
	return rows
}
