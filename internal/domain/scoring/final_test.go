package scoring_test

import (
	"testing"

	"github.com/okian/judgeboard/internal/domain/model"
	scoring "github.com/okian/judgeboard/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEngine_FinalScore(t *testing.T) {
	Convey("Given an engine and a single category", t, func() {
		engine := scoring.NewEngine()
		slalom := model.Category{ID: "slalom", Name: "Slalom"}
		athlete := model.Athlete{Bib: "7", Name: "Mika"}
		categories := []model.Category{slalom}

		Convey("When both runs are complete", func() {
			subs := panel("7", 1, 1, 70, 70, 70)
			subs = append(subs, panel("7", 2, 1, 90, 90, 90)...)
			fs := engine.FinalScore(subs, categories, athlete)

			Convey("Then the higher run should be selected", func() {
				So(fs.Categories, ShouldHaveLength, 1)
				So(fs.Categories[0].BestRun, ShouldEqual, 2)
				So(*fs.Categories[0].Average, ShouldEqual, 90.0)
				So(*fs.Total, ShouldEqual, 90.0)
				So(fs.Complete, ShouldBeTrue)
				So(fs.Bib, ShouldEqual, "7")
				So(fs.Name, ShouldEqual, "Mika")
			})
		})

		Convey("When only run 1 has been scored", func() {
			fs := engine.FinalScore(panel("7", 1, 1, 81, 82, 83), categories, athlete)

			Convey("Then the total should equal run 1 and run 2 should be absent", func() {
				So(*fs.Total, ShouldEqual, 82.0)
				So(fs.Categories[0].BestRun, ShouldEqual, 1)
				So(fs.Categories[0].Run1, ShouldNotBeNil)
				So(fs.Categories[0].Run2, ShouldBeNil)
			})
		})

		Convey("When only run 2 has been scored", func() {
			fs := engine.FinalScore(panel("7", 2, 1, 50, 50, 50), categories, athlete)

			So(fs.Categories[0].BestRun, ShouldEqual, 2)
			So(fs.Categories[0].Run1, ShouldBeNil)
			So(*fs.Total, ShouldEqual, 50.0)
		})

		Convey("When the runs tie on average", func() {
			subs := panel("7", 1, 1, 80, 80, 80)
			subs = append(subs, panel("7", 2, 1, 79, 80, 81)...)
			fs := engine.FinalScore(subs, categories, athlete)

			Convey("Then run 1 should be kept", func() {
				So(fs.Categories[0].BestRun, ShouldEqual, 1)
			})
		})

		Convey("When run 2 is higher but incomplete", func() {
			subs := panel("7", 1, 1, 60, 60, 60)
			subs = append(subs, sub("J1", "7", 2, 1, 99))
			fs := engine.FinalScore(subs, categories, athlete)

			Convey("Then the complete run 1 should be selected", func() {
				So(fs.Categories[0].BestRun, ShouldEqual, 1)
				So(*fs.Total, ShouldEqual, 60.0)
				So(fs.Complete, ShouldBeTrue)
			})
		})

		Convey("When both runs are incomplete", func() {
			subs := []model.Submission{sub("J1", "7", 1, 1, 40), sub("J2", "7", 2, 1, 45)}
			fs := engine.FinalScore(subs, categories, athlete)

			Convey("Then the higher run should count but the athlete stays incomplete", func() {
				So(fs.Categories[0].BestRun, ShouldEqual, 2)
				So(*fs.Total, ShouldEqual, 45.0)
				So(fs.Complete, ShouldBeFalse)
			})
		})

		Convey("When the best run comes from a re-run attempt", func() {
			subs := panel("7", 1, 1, 50, 50, 50)
			subs = append(subs, panel("7", 1, 2, 70, 70, 70)...)
			fs := engine.FinalScore(subs, categories, athlete)

			So(fs.Categories[0].Attempt, ShouldEqual, 2)
		})

		Convey("When the athlete has no submissions", func() {
			fs := engine.FinalScore(panel("9", 1, 1, 80, 80, 80), categories, athlete)

			Convey("Then the total should be absent and the result incomplete", func() {
				So(fs.Total, ShouldBeNil)
				So(fs.Complete, ShouldBeFalse)
				So(fs.Categories[0].BestRun, ShouldEqual, 0)
				So(fs.Categories[0].Average, ShouldBeNil)
			})
		})
	})

	Convey("Given two categories", t, func() {
		engine := scoring.NewEngine()
		categories := []model.Category{{ID: "slalom", Name: "Slalom"}, {ID: "moguls", Name: "Moguls"}}
		athlete := model.Athlete{Bib: "7"}

		moguls := func(run, value int) []model.Submission {
			out := make([]model.Submission, 0, 3)
			for _, j := range model.DefaultJudges {
				out = append(out, model.Submission{Judge: j, CategoryID: "moguls", Bib: "7", Run: run, Attempt: 1, Value: value})
			}
			return out
		}

		Convey("When the athlete averages 80 and 60", func() {
			subs := panel("7", 1, 1, 80, 80, 80)
			subs = append(subs, moguls(1, 60)...)
			fs := engine.FinalScore(subs, categories, athlete)

			Convey("Then the total should be their unweighted sum", func() {
				So(*fs.Total, ShouldEqual, 140.0)
				So(fs.Complete, ShouldBeTrue)
				So(fs.Categories[0].CategoryID, ShouldEqual, "slalom")
				So(fs.Categories[1].CategoryID, ShouldEqual, "moguls")
			})
		})

		Convey("When only one category has been scored", func() {
			fs := engine.FinalScore(panel("7", 1, 1, 80, 80, 80), categories, athlete)

			Convey("Then the partial total should count but the result is incomplete", func() {
				So(*fs.Total, ShouldEqual, 80.0)
				So(fs.Complete, ShouldBeFalse)
				So(fs.Categories[1].Average, ShouldBeNil)
			})
		})

		Convey("When averages carry fractions", func() {
			subs := panel("7", 1, 1, 80, 80, 81)
			subs = append(subs, moguls(1, 60)...)
			subs[len(subs)-1].Value = 61
			fs := engine.FinalScore(subs, categories, athlete)

			Convey("Then the total should be the rounded sum of rounded averages", func() {
				So(*fs.Categories[0].Average, ShouldEqual, 80.33)
				So(*fs.Categories[1].Average, ShouldEqual, 60.33)
				So(*fs.Total, ShouldEqual, 140.66)
			})
		})
	})

	Convey("Given no categories at all", t, func() {
		fs := scoring.NewEngine().FinalScore(nil, nil, model.Athlete{Bib: "1"})

		Convey("Then the result is never complete", func() {
			So(fs.Complete, ShouldBeFalse)
			So(fs.Total, ShouldBeNil)
			So(fs.Categories, ShouldBeEmpty)
		})
	})
}
