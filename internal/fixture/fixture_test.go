package fixture_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/benchwise/teamforge/internal/domain/model"
	"github.com/benchwise/teamforge/internal/fixture"
)

func TestGenerator(t *testing.T) {
	Convey("Given the default generator", t, func() {
		gen := fixture.NewGenerator()
		pool := gen.Resources()

		Convey("Then the pool has the default size with well-formed entries", func() {
			So(pool, ShouldHaveLength, 55)
			for _, res := range pool {
				So(res.ID, ShouldNotBeEmpty)
				So(res.FullName, ShouldNotBeEmpty)
				So(res.Tier, ShouldBeBetweenOrEqual, model.TierCore, model.TierEmerging)
				So(len(res.Skills), ShouldBeBetweenOrEqual, 2, 5)
				So(res.WeeklyAvailability, ShouldBeBetweenOrEqual, 0, 40)
				for _, skill := range res.Skills {
					So(skill.Proficiency, ShouldBeBetweenOrEqual, 1, 5)
					So(skill.YearsExperience, ShouldBeGreaterThanOrEqualTo, 1)
				}
			}
		})

		Convey("Then pricing components sum to the billable rate", func() {
			for _, res := range pool {
				p := res.Pricing
				So(p.TotalBillableRate, ShouldEqual, p.IndividualDailyRate+p.OrganizationReleaseFee+p.PartnerMargin)
				So(p.OrganizationReleaseFee, ShouldEqual, p.IndividualDailyRate*15/100)
				So(p.PartnerMargin, ShouldEqual, p.IndividualDailyRate*35/100)
			}
		})

		Convey("Then resource IDs are unique", func() {
			seen := make(map[string]bool, len(pool))
			for _, res := range pool {
				So(seen[res.ID], ShouldBeFalse)
				seen[res.ID] = true
			}
		})
	})

	Convey("Given two generators with the same seed", t, func() {
		a := fixture.NewGenerator(fixture.WithSeed(7)).Resources()
		b := fixture.NewGenerator(fixture.WithSeed(7)).Resources()

		Convey("Then they generate identical pools", func() {
			So(a, ShouldResemble, b)
		})
	})

	Convey("Given a custom pool size", t, func() {
		pool := fixture.NewGenerator(fixture.WithPoolSize(10)).Resources()
		So(pool, ShouldHaveLength, 10)
	})

	Convey("Given the opportunity book", t, func() {
		opps := fixture.NewGenerator().Opportunities()

		Convey("Then it holds three open entries and one closed", func() {
			So(opps, ShouldHaveLength, 4)
			open := 0
			for _, opp := range opps {
				if opp.Status == model.OpportunityOpen {
					open++
				}
				So(opp.RequiredSkills, ShouldNotBeEmpty)
			}
			So(open, ShouldEqual, 3)
		})
	})

	Convey("Given the starter proposal", t, func() {
		p := fixture.NewGenerator().StarterProposal()

		Convey("Then it is a draft with three requirements", func() {
			So(p.Status, ShouldEqual, model.ProposalDraft)
			So(p.Requirements, ShouldHaveLength, 3)
			for _, req := range p.Requirements {
				So(req.ID, ShouldNotBeEmpty)
				So(req.RequiredSkills, ShouldNotBeEmpty)
				So(req.ExperienceLevel.Valid(), ShouldBeTrue)
			}
		})
	})
}
