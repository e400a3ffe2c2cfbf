package team

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/benchwise/teamforge/internal/domain/model"
)

func member(resourceID string, score, cost int) model.TeamMember {
	return model.TeamMember{
		ResourceID: resourceID,
		FullName:   "Member " + resourceID,
		MatchScore: score,
		TotalCost:  cost,
	}
}

func TestBoardSelection(t *testing.T) {
	Convey("Given a board with ranked lists installed", t, func() {
		board := NewBoard()
		board.SetSuggestions("req-1", []model.TeamMember{
			member("r1", 90, 5000),
			member("r2", 70, 4000),
		})
		board.SetSuggestions("req-2", []model.TeamMember{
			member("r3", 60, 3000),
		})

		Convey("Then each key auto-selects its top candidate", func() {
			chosen, ok := board.SelectedFor("req-1")
			So(ok, ShouldBeTrue)
			So(chosen.ResourceID, ShouldEqual, "r1")
			So(chosen.Selected, ShouldBeTrue)

			chosen, ok = board.SelectedFor("req-2")
			So(ok, ShouldBeTrue)
			So(chosen.ResourceID, ShouldEqual, "r3")
		})

		Convey("When the user overrides a selection", func() {
			err := board.Select("req-1", "r2")

			Convey("Then the override replaces the auto-pick", func() {
				So(err, ShouldBeNil)
				chosen, _ := board.SelectedFor("req-1")
				So(chosen.ResourceID, ShouldEqual, "r2")
				So(chosen.Selected, ShouldBeTrue)
			})
		})

		Convey("When selecting a resource outside the ranked list", func() {
			err := board.Select("req-1", "stranger")

			Convey("Then the selection is rejected and unchanged", func() {
				So(err, ShouldEqual, ErrNotSuggested)
				chosen, _ := board.SelectedFor("req-1")
				So(chosen.ResourceID, ShouldEqual, "r1")
			})
		})

		Convey("When selecting against an unknown key", func() {
			err := board.Select("req-404", "r1")

			Convey("Then the board reports the missing key", func() {
				So(err, ShouldEqual, ErrUnknownKey)
			})
		})

		Convey("When a key is deselected", func() {
			board.Deselect("req-2")

			Convey("Then the key is unfilled but keeps its ranked list", func() {
				_, ok := board.SelectedFor("req-2")
				So(ok, ShouldBeFalse)
				members, ok := board.Suggestions("req-2")
				So(ok, ShouldBeTrue)
				So(members, ShouldHaveLength, 1)
			})
		})

		Convey("When a requirement is removed", func() {
			board.Remove("req-1")

			Convey("Then both its ranked list and selection are pruned", func() {
				_, ok := board.Suggestions("req-1")
				So(ok, ShouldBeFalse)
				_, ok = board.SelectedFor("req-1")
				So(ok, ShouldBeFalse)
				So(board.Keys(), ShouldResemble, []string{"req-2"})
			})
		})

		Convey("When a new ranking pass starts", func() {
			So(board.Select("req-1", "r2"), ShouldBeNil)
			board.Reset()
			board.SetSuggestions("req-1", []model.TeamMember{
				member("r1", 90, 5000),
			})

			Convey("Then prior overrides are discarded for the new top pick", func() {
				chosen, ok := board.SelectedFor("req-1")
				So(ok, ShouldBeTrue)
				So(chosen.ResourceID, ShouldEqual, "r1")
				So(board.Keys(), ShouldResemble, []string{"req-1"})
			})
		})
	})

	Convey("Given a key whose ranked list is empty", t, func() {
		board := NewBoard()
		board.SetSuggestions("slot-1", nil)

		Convey("Then the key stays unfilled", func() {
			_, ok := board.SelectedFor("slot-1")
			So(ok, ShouldBeFalse)
			So(board.Selected(), ShouldBeEmpty)
		})
	})
}

func TestBoardSummarize(t *testing.T) {
	Convey("Given a board with two selected candidates", t, func() {
		board := NewBoard()
		board.SetSuggestions("req-1", []model.TeamMember{member("r1", 80, 5000)})
		board.SetSuggestions("req-2", []model.TeamMember{member("r2", 65, 3000)})
		board.SetSuggestions("req-3", nil)

		Convey("When summarizing", func() {
			summary := board.Summarize(3)

			Convey("Then costs, scores and fill ratio roll up", func() {
				So(summary.TotalCost, ShouldEqual, 8000)
				So(summary.AvgMatchScore, ShouldEqual, 73) // round(72.5)
				So(summary.SelectedCount, ShouldEqual, 2)
				So(summary.RequiredCount, ShouldEqual, 3)
				So(summary.FillRatio, ShouldAlmostEqual, 2.0/3.0)
				So(summary.Confidence, ShouldEqual, model.ConfidenceHigh)
			})

			Convey("Then summarizing again yields identical output", func() {
				So(board.Summarize(3), ShouldResemble, summary)
			})
		})
	})

	Convey("Given an empty selection", t, func() {
		board := NewBoard()

		Convey("When summarizing", func() {
			summary := board.Summarize(2)

			Convey("Then everything is zero and confidence is low", func() {
				So(summary.TotalCost, ShouldEqual, 0)
				So(summary.AvgMatchScore, ShouldEqual, 0)
				So(summary.FillRatio, ShouldEqual, 0)
				So(summary.Confidence, ShouldEqual, model.ConfidenceLow)
			})
		})
	})

	Convey("Given scores straddling the confidence bands", t, func() {
		cases := []struct {
			score int
			band  string
		}{
			{70, model.ConfidenceHigh},
			{69, model.ConfidenceMedium},
			{50, model.ConfidenceMedium},
			{49, model.ConfidenceLow},
		}

		for _, tc := range cases {
			board := NewBoard()
			board.SetSuggestions("req-1", []model.TeamMember{member("r1", tc.score, 1000)})

			Convey(fmt.Sprintf("Then an average of %d maps to %s", tc.score, tc.band), func() {
				So(board.Summarize(1).Confidence, ShouldEqual, tc.band)
			})
		}
	})

	Convey("Given custom confidence thresholds", t, func() {
		board := NewBoard(WithConfidenceThresholds(90, 60))
		board.SetSuggestions("req-1", []model.TeamMember{member("r1", 80, 1000)})

		Convey("Then the bands shift accordingly", func() {
			So(board.Summarize(1).Confidence, ShouldEqual, model.ConfidenceMedium)
		})
	})
}
