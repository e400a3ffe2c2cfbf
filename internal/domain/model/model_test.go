package model_test

import (
	"testing"

	model "github.com/benchwise/teamforge/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestTierLabel(t *testing.T) {
	convey.Convey("Given the four tiers", t, func() {
		convey.Convey("Then each maps to its display label", func() {
			convey.So(model.TierCore.Label(), convey.ShouldEqual, "Core")
			convey.So(model.TierTrusted.Label(), convey.ShouldEqual, "Trusted")
			convey.So(model.TierProven.Label(), convey.ShouldEqual, "Proven")
			convey.So(model.TierEmerging.Label(), convey.ShouldEqual, "Emerging")
		})

		convey.Convey("Then an out-of-range tier maps to Unknown", func() {
			convey.So(model.Tier(0).Label(), convey.ShouldEqual, "Unknown")
			convey.So(model.Tier(5).Label(), convey.ShouldEqual, "Unknown")
		})
	})
}

func TestExperienceLevelValid(t *testing.T) {
	convey.Convey("Given experience levels", t, func() {
		convey.Convey("Then the four known levels are valid", func() {
			convey.So(model.LevelJunior.Valid(), convey.ShouldBeTrue)
			convey.So(model.LevelMid.Valid(), convey.ShouldBeTrue)
			convey.So(model.LevelSenior.Valid(), convey.ShouldBeTrue)
			convey.So(model.LevelExpert.Valid(), convey.ShouldBeTrue)
		})

		convey.Convey("Then anything else is invalid", func() {
			convey.So(model.ExperienceLevel("principal").Valid(), convey.ShouldBeFalse)
			convey.So(model.ExperienceLevel("").Valid(), convey.ShouldBeFalse)
		})
	})
}

func TestProficiencyLabel(t *testing.T) {
	convey.Convey("Given proficiency values", t, func() {
		convey.Convey("Then 1 through 5 map to the ladder labels", func() {
			convey.So(model.ProficiencyLabel(1), convey.ShouldEqual, "Basic")
			convey.So(model.ProficiencyLabel(2), convey.ShouldEqual, "Intermediate")
			convey.So(model.ProficiencyLabel(3), convey.ShouldEqual, "Proficient")
			convey.So(model.ProficiencyLabel(4), convey.ShouldEqual, "Advanced")
			convey.So(model.ProficiencyLabel(5), convey.ShouldEqual, "Expert")
		})

		convey.Convey("Then out-of-range values map to Unknown", func() {
			convey.So(model.ProficiencyLabel(0), convey.ShouldEqual, "Unknown")
			convey.So(model.ProficiencyLabel(6), convey.ShouldEqual, "Unknown")
		})
	})
}
