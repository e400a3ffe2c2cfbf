// Package fixture generates the deterministic demo data set the service
// boots with: a resource pool, an opportunity book, and a starter proposal.
//
// Generation is seeded math/rand, so the same seed always yields the same
// pool. Tests and demos rely on that.
package fixture

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/benchwise/teamforge/internal/domain/model"
)

// Generation defaults.
const (
	defaultSeed     = 20260901
	defaultPoolSize = 55

	minSkillsPerResource = 2
	maxSkillsPerResource = 5

	releaseFeePercent = 15
	marginPercent     = 35
)

// Daily base rates by tier, in whole currency units.
var tierBaseRate = map[model.Tier]int{
	model.TierCore:     520,
	model.TierTrusted:  430,
	model.TierProven:   340,
	model.TierEmerging: 250,
}

var firstNames = []string{
	"Ada", "Mei", "Ivan", "Noor", "Tomas", "Grace", "Kofi", "Lena",
	"Diego", "Priya", "Emeka", "Sofia", "Jonas", "Amara", "Yusuf", "Hana",
}

var lastNames = []string{
	"Okafor", "Tanaka", "Petrov", "Haddad", "Lindqvist", "Mensah",
	"Alvarez", "Sharma", "Eze", "Keller", "Diallo", "Novak",
}

var organizations = []string{
	"Northbeam Consulting", "Southline Digital", "Brightforge Labs",
	"Atlas Delivery Group", "Cobalt Works", "Harbourview Tech",
}

var titles = []string{
	"Backend Engineer", "Frontend Engineer", "Full-Stack Developer",
	"Data Engineer", "DevOps Engineer", "Product Designer",
	"QA Engineer", "Solutions Architect", "Mobile Developer",
	"Business Analyst",
}

var skillNames = []string{
	"Go", "Python", "TypeScript", "React", "Node.js", "PostgreSQL",
	"Kubernetes", "AWS", "Terraform", "Data Analysis", "Machine Learning",
	"Figma", "Product Management", "Swift", "Kotlin", "GraphQL",
}

var locations = []model.Location{
	{City: "Lagos", Country: "Nigeria"},
	{City: "Nairobi", Country: "Kenya"},
	{City: "Lisbon", Country: "Portugal"},
	{City: "Warsaw", Country: "Poland"},
	{City: "Toronto", Country: "Canada"},
	{City: "Singapore", Country: "Singapore"},
}

var clients = []string{
	"Meridian Retail", "Vantage Energy", "Clearwater Bank",
	"Summit Logistics", "Helios Health",
}

var feedbackSnippets = []string{
	"Delivered ahead of schedule with clean handover notes.",
	"Strong communicator, kept stakeholders aligned throughout.",
	"Solid technical depth, needed little supervision.",
	"Reliable under pressure during the go-live window.",
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed fixes the random seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed = seed }
}

// WithPoolSize sets how many resources to generate.
func WithPoolSize(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.poolSize = n
		}
	}
}

// Generator produces the demo data set.
type Generator struct {
	seed     int64
	poolSize int
	rng      *rand.Rand
}

// NewGenerator creates a Generator with the default seed and pool size.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: defaultSeed, poolSize: defaultPoolSize}
	for _, opt := range opts {
		opt(g)
	}
	g.rng = rand.New(rand.NewSource(g.seed))
	return g
}

// Resources generates the demo pool. Call order matters: the generator
// consumes one random stream, so Resources then Opportunities with the same
// seed is the reproducible sequence.
func (g *Generator) Resources() []model.Resource {
	pool := make([]model.Resource, 0, g.poolSize)
	for i := 0; i < g.poolSize; i++ {
		pool = append(pool, g.resource(i))
	}
	return pool
}

func (g *Generator) resource(i int) model.Resource {
	first := firstNames[g.rng.Intn(len(firstNames))]
	last := lastNames[g.rng.Intn(len(lastNames))]
	org := organizations[g.rng.Intn(len(organizations))]
	tier := g.tier()
	base := tierBaseRate[tier]
	fee := base * releaseFeePercent / 100
	margin := base * marginPercent / 100

	res := model.Resource{
		ID:                  fmt.Sprintf("res-%03d", i+1),
		FullName:            first + " " + last,
		Email:               fmt.Sprintf("%s.%s%d@benchwise.example", strings.ToLower(first), strings.ToLower(last), i+1),
		Title:               titles[g.rng.Intn(len(titles))],
		Organization:        org,
		Division:            "Delivery",
		Location:            locations[g.rng.Intn(len(locations))],
		ContractualStatus:   "active",
		FTE:                 1.0,
		Tier:                tier,
		Skills:              g.skills(),
		BidSummary:          "Hands-on delivery profile with recent client-facing engagements.",
		ReliabilityScore:    70 + g.rng.Intn(31),
		QualityScore:        70 + g.rng.Intn(31),
		WeeklyAvailability:  []int{0, 10, 20, 30, 40}[g.rng.Intn(5)],
		ProfileCompleteness: 60 + g.rng.Intn(41),
		Pricing: model.Pricing{
			IndividualDailyRate:    base,
			OrganizationReleaseFee: fee,
			PartnerMargin:          margin,
			TotalBillableRate:      base + fee + margin,
			Currency:               "USD",
		},
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
	}

	// Roughly two thirds of the pool carries some feedback.
	if g.rng.Intn(3) > 0 {
		res.ManagerFeedback = []model.Feedback{{
			ID:         uuid.NewString(),
			Date:       "2026-06-15",
			Rating:     3 + g.rng.Intn(3),
			Comments:   feedbackSnippets[g.rng.Intn(len(feedbackSnippets))],
			AuthorName: "Engagement Manager",
		}}
	}
	if g.rng.Intn(3) > 0 {
		res.ClientFeedback = []model.Feedback{{
			ID:         uuid.NewString(),
			Date:       "2026-07-20",
			Rating:     3 + g.rng.Intn(3),
			Comments:   feedbackSnippets[g.rng.Intn(len(feedbackSnippets))],
			AuthorName: clients[g.rng.Intn(len(clients))],
		}}
	}
	return res
}

// tier draws from a distribution skewed toward the middle tiers.
func (g *Generator) tier() model.Tier {
	switch roll := g.rng.Intn(10); {
	case roll < 2:
		return model.TierCore
	case roll < 5:
		return model.TierTrusted
	case roll < 8:
		return model.TierProven
	default:
		return model.TierEmerging
	}
}

func (g *Generator) skills() []model.Skill {
	count := minSkillsPerResource + g.rng.Intn(maxSkillsPerResource-minSkillsPerResource+1)
	picked := g.rng.Perm(len(skillNames))[:count]
	skills := make([]model.Skill, 0, count)
	for _, idx := range picked {
		skills = append(skills, model.Skill{
			Name:              skillNames[idx],
			Proficiency:       1 + g.rng.Intn(5),
			YearsExperience: 1 + g.rng.Intn(14),
		})
	}
	return skills
}

// Opportunities generates a small open book plus one closed entry.
func (g *Generator) Opportunities() []model.Opportunity {
	specs := []struct {
		title  string
		skills []string
		level  model.ExperienceLevel
		status model.OpportunityStatus
	}{
		{"Payments platform revamp", []string{"Go", "PostgreSQL", "Kubernetes"}, model.LevelSenior, model.OpportunityOpen},
		{"Customer portal rebuild", []string{"TypeScript", "React", "GraphQL"}, model.LevelMid, model.OpportunityOpen},
		{"Forecasting model rollout", []string{"Python", "Machine Learning"}, model.LevelExpert, model.OpportunityOpen},
		{"Legacy warehouse migration", []string{"AWS", "Terraform"}, model.LevelSenior, model.OpportunityClosed},
	}

	opps := make([]model.Opportunity, 0, len(specs))
	for i, spec := range specs {
		opps = append(opps, model.Opportunity{
			ID:              fmt.Sprintf("opp-%03d", i+1),
			Title:           spec.title,
			Client:          clients[g.rng.Intn(len(clients))],
			Description:     "Multi-month delivery engagement sourced through the partner network.",
			RequiredSkills:  spec.skills,
			ExperienceLevel: spec.level,
			Location:        "Remote",
			StartDate:       "2026-10-01",
			EndDate:         "2027-03-31",
			EffortDays:      60 + g.rng.Intn(60),
			DailyRate:       600 + g.rng.Intn(300),
			Status:          spec.status,
			Visibility:      "network",
			CreatedBy:       "usr-admin",
			CreatedAt:       time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		})
	}
	return opps
}

// StarterProposal generates a draft proposal with three requirements, the
// same shape the simulated upload parse produces.
func (g *Generator) StarterProposal() model.Proposal {
	return model.Proposal{
		ID:          uuid.NewString(),
		Title:       "Meridian Retail replatform",
		Client:      "Meridian Retail",
		Description: "Replace the legacy storefront with a cloud-native stack.",
		Status:      model.ProposalDraft,
		Requirements: []model.RoleRequirement{
			{
				ID:              uuid.NewString(),
				RoleName:        "Backend Engineer",
				RequiredSkills:  []string{"Go", "PostgreSQL"},
				ExperienceLevel: model.LevelSenior,
				EffortDays:      60,
				StartDate:       "2026-10-01",
				EndDate:         "2026-12-31",
			},
			{
				ID:              uuid.NewString(),
				RoleName:        "Frontend Engineer",
				RequiredSkills:  []string{"TypeScript", "React"},
				ExperienceLevel: model.LevelMid,
				EffortDays:      45,
				StartDate:       "2026-10-01",
				EndDate:         "2026-12-15",
			},
			{
				ID:              uuid.NewString(),
				RoleName:        "DevOps Engineer",
				RequiredSkills:  []string{"Kubernetes", "Terraform", "AWS"},
				ExperienceLevel: model.LevelSenior,
				EffortDays:      30,
				StartDate:       "2026-10-15",
				EndDate:         "2026-11-30",
			},
		},
		CreatedBy: "usr-admin",
		CreatedAt: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
	}
}
