package repository_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/benchwise/teamforge/internal/adapters/repository"
	"github.com/benchwise/teamforge/internal/domain/model"
)

func resource(id, name, org string, tier model.Tier, weeklyHours int, skills ...string) model.Resource {
	res := model.Resource{
		ID:                 id,
		FullName:           name,
		Organization:       org,
		Tier:               tier,
		WeeklyAvailability: weeklyHours,
	}
	for _, s := range skills {
		res.Skills = append(res.Skills, model.Skill{Name: s, Proficiency: 3, YearsExperience: 3})
	}
	return res
}

func TestPoolStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a pool with several resources", t, func() {
		store := repository.NewPoolStore(repository.WithPoolCapacity(8))
		So(store.Put(ctx, resource("r1", "Ada Okafor", "Northbeam", model.TierCore, 40, "Go", "Kubernetes")), ShouldBeNil)
		So(store.Put(ctx, resource("r2", "Mei Tanaka", "Southline", model.TierProven, 10, "React")), ShouldBeNil)
		So(store.Put(ctx, resource("r3", "Ivan Petrov", "Northbeam", model.TierEmerging, 30, "Go")), ShouldBeNil)

		Convey("Then listing without a filter keeps insertion order", func() {
			all, err := store.List(ctx, repository.ResourceFilter{})
			So(err, ShouldBeNil)
			So(all, ShouldHaveLength, 3)
			So(all[0].ID, ShouldEqual, "r1")
			So(all[1].ID, ShouldEqual, "r2")
			So(all[2].ID, ShouldEqual, "r3")
			So(store.Count(ctx), ShouldEqual, 3)
		})

		Convey("Then Get finds known IDs and rejects unknown ones", func() {
			res, err := store.Get(ctx, "r2")
			So(err, ShouldBeNil)
			So(res.FullName, ShouldEqual, "Mei Tanaka")

			_, err = store.Get(ctx, "r404")
			So(err, ShouldEqual, repository.ErrNotFound)
		})

		Convey("When filtering by skill", func() {
			goers, err := store.List(ctx, repository.ResourceFilter{Skill: "go"})

			Convey("Then the match is case-insensitive and order-preserving", func() {
				So(err, ShouldBeNil)
				So(goers, ShouldHaveLength, 2)
				So(goers[0].ID, ShouldEqual, "r1")
				So(goers[1].ID, ShouldEqual, "r3")
			})
		})

		Convey("When filtering by tier and availability", func() {
			out, err := store.List(ctx, repository.ResourceFilter{Tier: model.TierCore, MinAvailability: 20})

			Convey("Then only matching resources remain", func() {
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 1)
				So(out[0].ID, ShouldEqual, "r1")
			})
		})

		Convey("When searching by text", func() {
			out, err := store.List(ctx, repository.ResourceFilter{Search: "northbeam"})

			Convey("Then name, title and organization are all searched", func() {
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 2)
			})
		})

		Convey("When re-putting an existing resource", func() {
			updated := resource("r2", "Mei Tanaka", "Southline", model.TierProven, 35, "React")
			So(store.Put(ctx, updated), ShouldBeNil)

			Convey("Then it is replaced in place, not re-appended", func() {
				So(store.Count(ctx), ShouldEqual, 3)
				all, _ := store.List(ctx, repository.ResourceFilter{})
				So(all[1].WeeklyAvailability, ShouldEqual, 35)
			})
		})
	})
}

func TestProposalStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a proposal store", t, func() {
		store := repository.NewProposalStore()
		p := model.Proposal{ID: "p1", Title: "Retail replatform", Status: model.ProposalDraft}

		Convey("When creating and fetching a proposal", func() {
			So(store.Create(ctx, p), ShouldBeNil)
			got, err := store.Get(ctx, "p1")

			Convey("Then the stored proposal round-trips", func() {
				So(err, ShouldBeNil)
				So(got.Title, ShouldEqual, "Retail replatform")
			})

			Convey("And creating the same ID again fails", func() {
				So(store.Create(ctx, p), ShouldEqual, repository.ErrAlreadyExists)
			})
		})

		Convey("When updating", func() {
			So(store.Create(ctx, p), ShouldBeNil)
			p.Status = model.ProposalInProgress
			So(store.Update(ctx, p), ShouldBeNil)

			got, _ := store.Get(ctx, "p1")
			So(got.Status, ShouldEqual, model.ProposalInProgress)

			Convey("And updating an unknown proposal fails", func() {
				So(store.Update(ctx, model.Proposal{ID: "p404"}), ShouldEqual, repository.ErrNotFound)
			})
		})
	})
}

func TestOpportunityStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	Convey("Given an opportunity with applicants", t, func() {
		store := repository.NewOpportunityStore()
		So(store.Create(ctx, model.Opportunity{ID: "o1", Title: "Payments revamp", Status: model.OpportunityOpen}), ShouldBeNil)

		Convey("When a resource applies", func() {
			So(store.Apply(ctx, "o1", "r1", now), ShouldBeNil)

			Convey("Then the application is recorded as interested", func() {
				opp, _ := store.Get(ctx, "o1")
				So(opp.Applicants, ShouldHaveLength, 1)
				So(opp.Applicants[0].Status, ShouldEqual, model.ApplicantInterested)
				So(opp.Applicants[0].AppliedAt, ShouldEqual, now)
			})

			Convey("And applying twice is rejected", func() {
				So(store.Apply(ctx, "o1", "r1", now), ShouldEqual, repository.ErrDuplicateApplicant)
			})

			Convey("And the applicant status can be moved", func() {
				So(store.SetApplicantStatus(ctx, "o1", "r1", model.ApplicantShortlisted), ShouldBeNil)
				opp, _ := store.Get(ctx, "o1")
				So(opp.Applicants[0].Status, ShouldEqual, model.ApplicantShortlisted)
			})

			Convey("And moving an unknown applicant fails", func() {
				So(store.SetApplicantStatus(ctx, "o1", "r404", model.ApplicantRejected), ShouldEqual, repository.ErrNotFound)
			})
		})

		Convey("When applying to an unknown opportunity", func() {
			So(store.Apply(ctx, "o404", "r1", now), ShouldEqual, repository.ErrNotFound)
		})
	})
}
