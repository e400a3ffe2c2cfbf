// Package auth issues and verifies demo sessions and defines the role
// capability table that gates pricing visibility and management actions.
package auth

import "github.com/benchwise/teamforge/internal/domain/model"

// Role is a closed enumeration of platform roles.
type Role string

// Platform roles.
const (
	RoleAdmin          Role = "admin"
	RolePartnerManager Role = "partner_manager"
	RoleProfessional   Role = "professional"
	RoleGuest          Role = "guest"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePartnerManager, RoleProfessional, RoleGuest:
		return true
	}
	return false
}

// CanManageResources reports whether the role may create or edit resources
// and move opportunity applicants.
func (r Role) CanManageResources() bool { return r == RoleAdmin }

// CanCreateOpportunities reports whether the role may post opportunities.
func (r Role) CanCreateOpportunities() bool { return r == RoleAdmin }

// CanBuildProposals reports whether the role may create proposals and run
// team builds.
func (r Role) CanBuildProposals() bool {
	return r == RoleAdmin || r == RolePartnerManager
}

// CanApply reports whether the role may apply to opportunities.
func (r Role) CanApply() bool { return r == RoleProfessional }

// CanViewAnalytics reports whether the role may read the dashboard.
func (r Role) CanViewAnalytics() bool {
	return r == RoleAdmin || r == RolePartnerManager
}

// FilterPricing returns a copy of p with the fields the role may not see
// zeroed out. Admin sees every component, a partner manager sees the
// individual rate and release fee, a professional sees only the individual
// rate, and a guest sees nothing. Scoring and costing never go through this
// filter; it is presentation-side only.
func (r Role) FilterPricing(p model.Pricing) model.Pricing {
	out := model.Pricing{Currency: p.Currency}
	switch r {
	case RoleAdmin:
		out = p
	case RolePartnerManager:
		out.IndividualDailyRate = p.IndividualDailyRate
		out.OrganizationReleaseFee = p.OrganizationReleaseFee
	case RoleProfessional:
		out.IndividualDailyRate = p.IndividualDailyRate
	}
	return out
}
