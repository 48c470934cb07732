package scoring

import (
	"github.com/okian/judgeboard/internal/domain/model"
	"github.com/okian/judgeboard/internal/domain/numeric"
	"github.com/okian/judgeboard/internal/domain/types"
)

// CategoryScore scores bib within category by picking the better of its two runs.
// When both runs exist and completeness differs the complete run is chosen,
// otherwise the higher average, with run 1 kept on a tie.
func (e *Engine) CategoryScore(subs []model.Submission, category model.Category, bib string) types.CategoryScore {
	cs := types.CategoryScore{
		CategoryID:   category.ID,
		CategoryName: category.Name,
	}

	run1, ok1 := e.RunScore(subs, category.ID, bib, model.FirstRun)
	run2, ok2 := e.RunScore(subs, category.ID, bib, model.SecondRun)
	if ok1 {
		cs.Run1 = &run1
	}
	if ok2 {
		cs.Run2 = &run2
	}

	var best *types.RunScore
	switch {
	case ok1 && ok2:
		if run1.Complete != run2.Complete {
			if run1.Complete {
				best, cs.BestRun = &run1, model.FirstRun
			} else {
				best, cs.BestRun = &run2, model.SecondRun
			}
		} else if atLeast(run1.Average, run2.Average) {
			best, cs.BestRun = &run1, model.FirstRun
		} else {
			best, cs.BestRun = &run2, model.SecondRun
		}
	case ok1:
		best, cs.BestRun = &run1, model.FirstRun
	case ok2:
		best, cs.BestRun = &run2, model.SecondRun
	default:
		return cs
	}

	cs.Average = best.Average
	cs.Attempt = best.Attempt
	cs.Complete = best.Complete
	return cs
}

// FinalScore sums athlete's best-run averages over categories, in the order given.
// Every category carries the same weight. The total is nil until at least one
// category has a score, and the result is complete only when categories is
// non-empty and every category's best run is complete.
func (e *Engine) FinalScore(subs []model.Submission, categories []model.Category, athlete model.Athlete) types.FinalScore {
	fs := types.FinalScore{
		Bib:        athlete.Bib,
		Name:       athlete.Name,
		Categories: make([]types.CategoryScore, 0, len(categories)),
	}

	complete := len(categories) > 0
	contributions := make([]float64, 0, len(categories))
	for _, c := range categories {
		cs := e.CategoryScore(subs, c, athlete.Bib)
		fs.Categories = append(fs.Categories, cs)
		if cs.Average != nil {
			contributions = append(contributions, *cs.Average)
		}
		if !cs.Complete {
			complete = false
		}
	}

	fs.Complete = complete
	if len(contributions) > 0 {
		fs.Total = types.Float(numeric.Sum(contributions))
	}
	return fs
}
