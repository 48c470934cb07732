package scoring_test

import (
	"testing"

	"github.com/okian/judgeboard/internal/domain/model"
	scoring "github.com/okian/judgeboard/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

// sub builds a submission for the "slalom" category.
func sub(judge model.JudgeRole, bib string, run, attempt, value int) model.Submission {
	return model.Submission{Judge: judge, CategoryID: "slalom", Bib: bib, Run: run, Attempt: attempt, Value: value}
}

// panel builds a complete attempt from three judge values.
func panel(bib string, run, attempt int, v1, v2, v3 int) []model.Submission {
	return []model.Submission{
		sub("J1", bib, run, attempt, v1),
		sub("J2", bib, run, attempt, v2),
		sub("J3", bib, run, attempt, v3),
	}
}

func TestEngine_RunScore(t *testing.T) {
	Convey("Given an engine with the default panel", t, func() {
		engine := scoring.NewEngine()

		Convey("When nobody has scored the run", func() {
			subs := panel("7", 2, 1, 80, 80, 80)
			_, ok := engine.RunScore(subs, "slalom", "7", 1)

			Convey("Then there should be no result", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When submissions exist only for another category or athlete", func() {
			subs := panel("8", 1, 1, 80, 80, 80)
			subs = append(subs, model.Submission{Judge: "J1", CategoryID: "moguls", Bib: "7", Run: 1, Attempt: 1, Value: 50})
			_, ok := engine.RunScore(subs, "slalom", "7", 1)

			So(ok, ShouldBeFalse)
		})

		Convey("When all judges scored a single attempt", func() {
			rs, ok := engine.RunScore(panel("7", 1, 1, 77, 78, 79), "slalom", "7", 1)

			Convey("Then the average should be the exact mean", func() {
				So(ok, ShouldBeTrue)
				So(rs.Complete, ShouldBeTrue)
				So(*rs.Average, ShouldEqual, 78.0)
				So(rs.Attempt, ShouldEqual, 1)
				So(*rs.Judges["J1"], ShouldEqual, 77)
				So(*rs.Judges["J3"], ShouldEqual, 79)
			})
		})

		Convey("When only one judge has scored", func() {
			rs, ok := engine.RunScore([]model.Submission{sub("J2", "7", 1, 1, 64)}, "slalom", "7", 1)

			Convey("Then the result should be incomplete with that judge's value", func() {
				So(ok, ShouldBeTrue)
				So(rs.Complete, ShouldBeFalse)
				So(*rs.Average, ShouldEqual, 64.0)
				So(rs.Judges, ShouldContainKey, model.JudgeRole("J1"))
				So(rs.Judges["J1"], ShouldBeNil)
				So(rs.Judges["J3"], ShouldBeNil)
			})
		})

		Convey("When two judges scored with a repeating mean", func() {
			subs := []model.Submission{sub("J1", "7", 1, 1, 70), sub("J3", "7", 1, 1, 71)}
			rs, _ := engine.RunScore(subs, "slalom", "7", 1)

			So(*rs.Average, ShouldEqual, 70.5)
			So(rs.Complete, ShouldBeFalse)
		})

		Convey("When a complete attempt competes with an incomplete re-run", func() {
			subs := panel("7", 1, 1, 60, 60, 60)
			subs = append(subs, sub("J1", "7", 1, 2, 95))
			rs, _ := engine.RunScore(subs, "slalom", "7", 1)

			Convey("Then the complete attempt should win despite the lower average", func() {
				So(rs.Attempt, ShouldEqual, 1)
				So(rs.Complete, ShouldBeTrue)
				So(*rs.Average, ShouldEqual, 60.0)
			})
		})

		Convey("When a re-run is fully judged with a higher average", func() {
			subs := panel("7", 1, 1, 60, 60, 60)
			subs = append(subs, panel("7", 1, 2, 90, 91, 92)...)
			rs, _ := engine.RunScore(subs, "slalom", "7", 1)

			So(rs.Attempt, ShouldEqual, 2)
			So(*rs.Average, ShouldEqual, 91.0)
		})

		Convey("When a fully judged re-run scores lower", func() {
			subs := panel("7", 1, 1, 80, 80, 80)
			subs = append(subs, panel("7", 1, 2, 50, 50, 50)...)
			rs, _ := engine.RunScore(subs, "slalom", "7", 1)

			So(rs.Attempt, ShouldEqual, 1)
			So(*rs.Average, ShouldEqual, 80.0)
		})

		Convey("When two complete attempts tie", func() {
			subs := panel("7", 1, 2, 75, 75, 75)
			subs = append(subs, panel("7", 1, 1, 74, 75, 76)...)
			rs, _ := engine.RunScore(subs, "slalom", "7", 1)

			Convey("Then the lower attempt number should be kept", func() {
				So(rs.Attempt, ShouldEqual, 1)
			})
		})

		Convey("When two incomplete attempts compete", func() {
			subs := []model.Submission{sub("J1", "7", 1, 1, 40), sub("J1", "7", 1, 2, 55)}
			rs, _ := engine.RunScore(subs, "slalom", "7", 1)

			So(rs.Attempt, ShouldEqual, 2)
			So(rs.Complete, ShouldBeFalse)
		})

		Convey("When the same judge appears twice for one tuple", func() {
			subs := panel("7", 1, 1, 70, 70, 70)
			subs = append(subs, sub("J1", "7", 1, 1, 100))
			rs, _ := engine.RunScore(subs, "slalom", "7", 1)

			Convey("Then the later submission should be authoritative", func() {
				So(*rs.Judges["J1"], ShouldEqual, 100)
				So(*rs.Average, ShouldEqual, 80.0)
			})
		})

		Convey("When a submission comes from a judge outside the panel", func() {
			subs := []model.Submission{sub("J9", "7", 1, 1, 99)}
			_, ok := engine.RunScore(subs, "slalom", "7", 1)

			So(ok, ShouldBeFalse)
		})

		Convey("When the input slice is reused afterwards", func() {
			subs := panel("7", 1, 1, 70, 80, 90)
			before := append([]model.Submission(nil), subs...)
			_, _ = engine.RunScore(subs, "slalom", "7", 1)

			Convey("Then it should be left untouched", func() {
				So(subs, ShouldResemble, before)
			})
		})
	})

	Convey("Given an engine with a two-judge panel", t, func() {
		engine := scoring.NewEngine(scoring.WithJudges([]model.JudgeRole{"head", "side", "head"}))

		So(engine.Judges(), ShouldResemble, []model.JudgeRole{"head", "side"})

		subs := []model.Submission{
			{Judge: "head", CategoryID: "slalom", Bib: "1", Run: 1, Attempt: 1, Value: 80},
			{Judge: "side", CategoryID: "slalom", Bib: "1", Run: 1, Attempt: 1, Value: 81},
		}
		rs, ok := engine.RunScore(subs, "slalom", "1", 1)

		So(ok, ShouldBeTrue)
		So(rs.Complete, ShouldBeTrue)
		So(*rs.Average, ShouldEqual, 80.5)
	})

	Convey("Given an empty judge option", t, func() {
		engine := scoring.NewEngine(scoring.WithJudges(nil))

		So(engine.Judges(), ShouldResemble, model.DefaultJudges)
	})
}
