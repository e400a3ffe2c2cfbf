// Package model contains domain models passed between layers.
package model

import "time"

// Tier classifies how well a resource is known and vetted.
// Tier 1 is the most trusted; tier 4 is emerging talent.
type Tier int

// Tier values.
const (
	TierCore     Tier = 1
	TierTrusted  Tier = 2
	TierProven   Tier = 3
	TierEmerging Tier = 4
)

// Label returns the short display name for a tier.
func (t Tier) Label() string {
	switch t {
	case TierCore:
		return "Core"
	case TierTrusted:
		return "Trusted"
	case TierProven:
		return "Proven"
	case TierEmerging:
		return "Emerging"
	default:
		return "Unknown"
	}
}

// ExperienceLevel is the ordinal seniority asked of a role.
type ExperienceLevel string

// Experience levels, junior through expert.
const (
	LevelJunior ExperienceLevel = "junior"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
	LevelExpert ExperienceLevel = "expert"
)

// Valid reports whether the level is one of the four known values.
func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelJunior, LevelMid, LevelSenior, LevelExpert:
		return true
	}
	return false
}

// ProficiencyLabel maps a 1-5 skill proficiency to its display name.
func ProficiencyLabel(proficiency int) string {
	switch proficiency {
	case 1:
		return "Basic"
	case 2:
		return "Intermediate"
	case 3:
		return "Proficient"
	case 4:
		return "Advanced"
	case 5:
		return "Expert"
	default:
		return "Unknown"
	}
}

// Skill is one entry in a resource's skill profile.
type Skill struct {
	Name            string `json:"name"`
	Proficiency     int    `json:"proficiency"` // 1..5, 5 = expert
	YearsExperience int    `json:"years_experience"`
	Validated       bool   `json:"validated"`
}

// Feedback is a single performance rating left by a manager or client.
type Feedback struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Rating     int    `json:"rating"` // 1..5
	Comments   string `json:"comments"`
	AuthorName string `json:"author_name"`
}

// Pricing holds the rate components for a resource. Visibility of the
// individual fields is role-gated at the presentation layer; scoring and
// costing always use TotalBillableRate.
type Pricing struct {
	IndividualDailyRate    int    `json:"individual_daily_rate,omitempty"`
	OrganizationReleaseFee int    `json:"organization_release_fee,omitempty"`
	PartnerMargin          int    `json:"partner_margin,omitempty"`
	TotalBillableRate      int    `json:"total_billable_rate,omitempty"`
	Currency               string `json:"currency"`
}

// Location places a resource geographically.
type Location struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Remote  bool   `json:"remote"`
}

// Certification is a named credential held by a resource.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   int    `json:"year"`
}

// DeliveryExample is a past engagement a resource can be sold on.
type DeliveryExample struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Client      string `json:"client"`
	Outcome     string `json:"outcome"`
}

// Resource is a candidate professional in the talent pool. Resources are
// generated once at startup and immutable for the life of the process.
type Resource struct {
	ID                  string            `json:"id"`
	FullName            string            `json:"full_name"`
	Email               string            `json:"email"`
	Title               string            `json:"title"`
	Organization        string            `json:"organization"`
	Division            string            `json:"division"`
	Location            Location          `json:"location"`
	ContractualStatus   string            `json:"contractual_status"`
	FTE                 float64           `json:"fte"`
	Tier                Tier              `json:"tier"`
	Skills              []Skill           `json:"skills"`
	Certifications      []Certification   `json:"certifications,omitempty"`
	DeliveryExamples    []DeliveryExample `json:"delivery_examples,omitempty"`
	BidSummary          string            `json:"bid_summary"`
	ManagerFeedback     []Feedback        `json:"manager_feedback,omitempty"`
	ClientFeedback      []Feedback        `json:"client_feedback,omitempty"`
	ReliabilityScore    int               `json:"reliability_score"`
	QualityScore        int               `json:"quality_score"`
	WeeklyAvailability  int               `json:"weekly_availability"` // hours, 0..40
	Pricing             Pricing           `json:"pricing"`
	ProfileCompleteness int               `json:"profile_completeness"`
	CreatedAt           time.Time         `json:"created_at"`
}

// RoleRequirement describes one role to be filled on a proposal.
type RoleRequirement struct {
	ID              string          `json:"id"`
	RoleName        string          `json:"role_name"`
	RequiredSkills  []string        `json:"required_skills"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	EffortDays      int             `json:"effort_days"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
}

// SkillSlot is a manual-mode unit of demand: one skill at a target level.
// Level uses the inverse scale of Skill.Proficiency: 1 = expert, 5 = junior.
// Quantity is tracked for display but one ranked list is produced per slot
// regardless of it.
type SkillSlot struct {
	ID        string `json:"id"`
	SkillName string `json:"skill_name"`
	Level     int    `json:"level"` // 1..5, 1 = expert
	Quantity  int    `json:"quantity"`
}

// TeamMember is a scored match of a resource against a requirement or slot.
// Rows are created fresh on every ranking pass and never mutated; the copy
// placed into the selection map is the only one with Selected set.
type TeamMember struct {
	ResourceID   string   `json:"resource_id"`
	FullName     string   `json:"full_name"`
	Organization string   `json:"organization"`
	Tier         Tier     `json:"tier"`
	RoleName     string   `json:"role_name"`
	MatchScore   int      `json:"match_score"`
	MatchReasons []string `json:"match_reasons"`
	DailyRate    int      `json:"daily_rate"`
	TotalCost    int      `json:"total_cost"`
	Selected     bool     `json:"selected"`
}

// ProposalStatus tracks where a proposal sits in its lifecycle.
type ProposalStatus string

// Proposal statuses.
const (
	ProposalDraft      ProposalStatus = "draft"
	ProposalInProgress ProposalStatus = "in_progress"
	ProposalSubmitted  ProposalStatus = "submitted"
)

// Proposal is a team-building session: requirements (AI mode), slots
// (manual mode), the ranked suggestions per key, and the current selection.
type Proposal struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Client       string            `json:"client"`
	Description  string            `json:"description"`
	Status       ProposalStatus    `json:"status"`
	Requirements []RoleRequirement `json:"requirements"`
	Slots        []SkillSlot       `json:"slots"`
	CreatedBy    string            `json:"created_by"`
	CreatedAt    time.Time         `json:"created_at"`
}

// TeamSummary is the aggregate view over the current selection.
type TeamSummary struct {
	TotalCost     int     `json:"total_cost"`
	AvgMatchScore int     `json:"avg_match_score"`
	SelectedCount int     `json:"selected_count"`
	RequiredCount int     `json:"required_count"`
	FillRatio     float64 `json:"fill_ratio"`
	Confidence    string  `json:"confidence"` // high, medium, low
}

// Confidence bands for TeamSummary.Confidence.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// OpportunityStatus tracks an opportunity's lifecycle.
type OpportunityStatus string

// Opportunity statuses.
const (
	OpportunityDraft  OpportunityStatus = "draft"
	OpportunityOpen   OpportunityStatus = "open"
	OpportunityFilled OpportunityStatus = "filled"
	OpportunityClosed OpportunityStatus = "closed"
)

// ApplicantStatus tracks one applicant on an opportunity.
type ApplicantStatus string

// Applicant statuses.
const (
	ApplicantInterested  ApplicantStatus = "interested"
	ApplicantShortlisted ApplicantStatus = "shortlisted"
	ApplicantSelected    ApplicantStatus = "selected"
	ApplicantRejected    ApplicantStatus = "rejected"
)

// Applicant is a resource's application to an opportunity.
type Applicant struct {
	ResourceID string          `json:"resource_id"`
	AppliedAt  time.Time       `json:"applied_at"`
	Status     ApplicantStatus `json:"status"`
}

// Opportunity is a posted piece of work resources can apply to.
type Opportunity struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Client          string            `json:"client"`
	Description     string            `json:"description"`
	RequiredSkills  []string          `json:"required_skills"`
	ExperienceLevel ExperienceLevel   `json:"experience_level"`
	Location        string            `json:"location"`
	StartDate       string            `json:"start_date"`
	EndDate         string            `json:"end_date"`
	EffortDays      int               `json:"effort_days"`
	DailyRate       int               `json:"daily_rate"`
	Status          OpportunityStatus `json:"status"`
	Visibility      string            `json:"visibility"`
	CreatedBy       string            `json:"created_by"`
	Applicants      []Applicant       `json:"applicants"`
	CreatedAt       time.Time         `json:"created_at"`
}

// User is a platform account. Roles are defined in the auth package.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
}
