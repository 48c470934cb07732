package ranking_test

import (
	"fmt"
	"testing"

	"github.com/okian/judgeboard/internal/domain/model"
	"github.com/okian/judgeboard/internal/domain/ranking"
	"github.com/okian/judgeboard/internal/domain/scoring"
	"github.com/okian/judgeboard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

var slalom = model.Category{ID: "slalom", Name: "Slalom"}

// complete returns a fully judged first run in category for bib.
func complete(category, bib string, value int) []model.Submission {
	out := make([]model.Submission, 0, len(model.DefaultJudges))
	for _, j := range model.DefaultJudges {
		out = append(out, model.Submission{Judge: j, CategoryID: category, Bib: bib, Run: 1, Attempt: 1, Value: value})
	}
	return out
}

func athletes(bibs ...string) []model.Athlete {
	out := make([]model.Athlete, 0, len(bibs))
	for _, b := range bibs {
		out = append(out, model.Athlete{Bib: b, Name: "athlete " + b})
	}
	return out
}

func ranks(entries []types.RankedEntry) map[string]int {
	out := make(map[string]int, len(entries))
	for _, e := range entries {
		out[e.Bib] = e.Rank
	}
	return out
}

func bibs(entries []types.RankedEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Bib)
	}
	return out
}

func TestRanker_Rank(t *testing.T) {
	Convey("Given a ranker over the default engine", t, func() {
		r := ranking.New(scoring.NewEngine())
		categories := []model.Category{slalom}

		Convey("When there are no athletes", func() {
			entries := r.Rank(nil, categories, nil)

			Convey("Then the result should be empty", func() {
				So(entries, ShouldNotBeNil)
				So(entries, ShouldBeEmpty)
			})
		})

		Convey("When three athletes score 90, 80 and 70", func() {
			var subs []model.Submission
			subs = append(subs, complete("slalom", "3", 70)...)
			subs = append(subs, complete("slalom", "1", 90)...)
			subs = append(subs, complete("slalom", "2", 80)...)
			entries := r.Rank(subs, categories, athletes("3", "2", "1"))

			Convey("Then they should rank 1, 2, 3", func() {
				So(ranks(entries), ShouldResemble, map[string]int{"1": 1, "2": 2, "3": 3})
				So(bibs(entries), ShouldResemble, []string{"1", "2", "3"})
			})
		})

		Convey("When two athletes tie at 80 ahead of a 70", func() {
			var subs []model.Submission
			subs = append(subs, complete("slalom", "5", 80)...)
			subs = append(subs, complete("slalom", "4", 80)...)
			subs = append(subs, complete("slalom", "6", 70)...)
			entries := r.Rank(subs, categories, athletes("5", "6", "4"))

			Convey("Then standard competition ranking should leave a gap", func() {
				So(ranks(entries), ShouldResemble, map[string]int{"4": 1, "5": 1, "6": 3})
			})

			Convey("And tied athletes should be ordered by bib", func() {
				So(bibs(entries), ShouldResemble, []string{"4", "5", "6"})
			})

			Convey("And re-running should give the same order", func() {
				again := r.Rank(subs, categories, athletes("6", "4", "5"))
				So(bibs(again), ShouldResemble, bibs(entries))
			})
		})

		Convey("When one athlete is scored and two are not", func() {
			entries := r.Rank(complete("slalom", "2", 75), categories, athletes("3", "2", "1"))

			Convey("Then the unscored athletes share the next rank", func() {
				So(ranks(entries), ShouldResemble, map[string]int{"2": 1, "1": 2, "3": 2})
				So(bibs(entries), ShouldResemble, []string{"2", "1", "3"})
				So(entries[1].Total, ShouldBeNil)
			})
		})

		Convey("When nobody has been scored", func() {
			entries := r.Rank(nil, categories, athletes("2", "1"))

			Convey("Then everybody shares rank 1", func() {
				So(ranks(entries), ShouldResemble, map[string]int{"1": 1, "2": 1})
			})
		})

		Convey("When a single athlete has any score", func() {
			entries := r.Rank([]model.Submission{{Judge: "J1", CategoryID: "slalom", Bib: "1", Run: 2, Attempt: 1, Value: 12}}, categories, athletes("1"))

			So(entries, ShouldHaveLength, 1)
			So(entries[0].Rank, ShouldEqual, 1)
		})

		Convey("When bibs are numeric", func() {
			entries := r.Rank(nil, categories, athletes("10", "9", "100"))

			Convey("Then ties should be ordered numerically", func() {
				So(bibs(entries), ShouldResemble, []string{"9", "10", "100"})
			})
		})

		Convey("When a roster has many athletes with mixed scores", func() {
			var subs []model.Submission
			roster := make([]model.Athlete, 0, 12)
			values := []int{50, 90, 90, 0, 70, 90, 0, 30, 70, 0, 10, 50}
			for i, v := range values {
				bib := fmt.Sprintf("%d", i+1)
				roster = append(roster, model.Athlete{Bib: bib})
				if v > 0 {
					subs = append(subs, complete("slalom", bib, v)...)
				}
			}
			entries := r.Rank(subs, categories, roster)

			Convey("Then every athlete appears once and rank groups add up", func() {
				So(entries, ShouldHaveLength, len(roster))
				groups := map[int]int{}
				seen := map[string]bool{}
				for _, e := range entries {
					So(seen[e.Bib], ShouldBeFalse)
					seen[e.Bib] = true
					So(e.Rank, ShouldBeLessThanOrEqualTo, len(roster))
					groups[e.Rank]++
				}
				total := 0
				for _, n := range groups {
					total += n
				}
				So(total, ShouldEqual, len(roster))
				So(groups, ShouldResemble, map[int]int{1: 3, 4: 2, 6: 2, 8: 1, 9: 1, 10: 3})
			})

			Convey("And ranks should never decrease down the list", func() {
				for i := 1; i < len(entries); i++ {
					So(entries[i].Rank, ShouldBeGreaterThanOrEqualTo, entries[i-1].Rank)
				}
			})
		})
	})
}

func TestRanker_MultiCategory(t *testing.T) {
	Convey("Given two categories", t, func() {
		r := ranking.New(scoring.NewEngine())
		moguls := model.Category{ID: "moguls", Name: "Moguls"}
		categories := []model.Category{slalom, moguls}

		var subs []model.Submission
		subs = append(subs, complete("slalom", "1", 80)...)
		subs = append(subs, complete("moguls", "1", 60)...)
		subs = append(subs, complete("slalom", "2", 95)...)

		entries := r.Rank(subs, categories, athletes("1", "2"))

		Convey("Then totals should sum categories", func() {
			So(entries[0].Bib, ShouldEqual, "1")
			So(*entries[0].Total, ShouldEqual, 140.0)
			So(entries[0].Complete, ShouldBeTrue)
			So(entries[1].Bib, ShouldEqual, "2")
			So(*entries[1].Total, ShouldEqual, 95.0)
			So(entries[1].Complete, ShouldBeFalse)
		})
	})
}

func TestRanker_RankCategory(t *testing.T) {
	Convey("Given a category with its own start list", t, func() {
		r := ranking.New(scoring.NewEngine())
		moguls := model.Category{ID: "moguls", Athletes: athletes("1", "2")}

		var subs []model.Submission
		subs = append(subs, complete("slalom", "1", 99)...)
		subs = append(subs, complete("moguls", "1", 40)...)
		subs = append(subs, complete("moguls", "2", 60)...)

		entries := r.RankCategory(subs, moguls)

		Convey("Then only that category should count", func() {
			So(bibs(entries), ShouldResemble, []string{"2", "1"})
			So(*entries[1].Total, ShouldEqual, 40.0)
		})
	})
}

func TestAthletes(t *testing.T) {
	Convey("Given athletes entered in several categories", t, func() {
		categories := []model.Category{
			{ID: "a", Athletes: []model.Athlete{{Bib: "1", Name: "Ana"}, {Bib: "2", Name: "Ben"}}},
			{ID: "b", Athletes: []model.Athlete{{Bib: "2", Name: "Benjamin"}, {Bib: "3", Name: "Cy"}}},
		}

		out := ranking.Athletes(categories)

		Convey("Then each bib should appear once with its first name", func() {
			So(out, ShouldResemble, []model.Athlete{{Bib: "1", Name: "Ana"}, {Bib: "2", Name: "Ben"}, {Bib: "3", Name: "Cy"}})
		})
	})
}

func TestCompareBibs(t *testing.T) {
	Convey("Given bib pairs", t, func() {
		So(ranking.CompareBibs("9", "10"), ShouldEqual, -1)
		So(ranking.CompareBibs("10", "9"), ShouldEqual, 1)
		So(ranking.CompareBibs("A2", "A10"), ShouldEqual, 1)
		So(ranking.CompareBibs("7", "7"), ShouldEqual, 0)
		So(ranking.CompareBibs("7", "X"), ShouldEqual, -1)
		So(ranking.CompareBibs("1a", "9"), ShouldEqual, 1)
		So(ranking.CompareBibs("07", "7"), ShouldEqual, -1)
	})

	Convey("Given integer and non-integer bibs", t, func() {
		all := []string{"9", "10", "1a", "07", "7", "B", "A10"}

		Convey("The order is transitive across every triple", func() {
			for _, a := range all {
				for _, b := range all {
					for _, c := range all {
						if ranking.CompareBibs(a, b) < 0 && ranking.CompareBibs(b, c) < 0 {
							So(ranking.CompareBibs(a, c), ShouldEqual, -1)
						}
					}
				}
			}
		})
	})
}

func TestRanker_MixedBibTies(t *testing.T) {
	Convey("Given tied athletes with integer and non-integer bibs", t, func() {
		r := ranking.New(scoring.NewEngine())
		categories := []model.Category{slalom}
		orders := [][]string{
			{"9", "10", "1a"}, {"9", "1a", "10"}, {"10", "9", "1a"},
			{"10", "1a", "9"}, {"1a", "9", "10"}, {"1a", "10", "9"},
		}

		Convey("Every input order yields the same output when unscored", func() {
			for _, order := range orders {
				So(bibs(r.Rank(nil, categories, athletes(order...))), ShouldResemble, []string{"9", "10", "1a"})
			}
		})

		Convey("Every input order yields the same output when tied on a total", func() {
			var subs []model.Submission
			for _, bib := range []string{"9", "10", "1a"} {
				subs = append(subs, complete("slalom", bib, 80)...)
			}
			for _, order := range orders {
				entries := r.Rank(subs, categories, athletes(order...))
				So(bibs(entries), ShouldResemble, []string{"9", "10", "1a"})
				So(ranks(entries), ShouldResemble, map[string]int{"9": 1, "10": 1, "1a": 1})
			}
		})
	})
}
