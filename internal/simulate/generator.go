package simulate

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/okian/judgeboard/internal/domain/model"
)

// Score generation bounds. Each athlete has a base level; judges scatter
// around it.
const (
	baseMin     = 40
	baseRange   = 50
	judgeSpread = 7
	rerunBonus  = 10
)

var names = []string{"Ada", "Ben", "Cy", "Dee", "Eli", "Fay", "Gus", "Hal", "Ivy", "Jo", "Kai", "Lu", "Max", "Nia", "Oz", "Pia"}

// Attempt is the set of scores one attempt of one run receives.
type Attempt struct {
	Number int
	Scores map[model.JudgeRole]int // missing judges are absent
}

// Performance is everything judged for one athlete in one category and run.
type Performance struct {
	CategoryID string
	Bib        string
	Run        int
	Attempts   []Attempt // the last attempt follows a re-run
}

// Plan is a generated event: a roster and the performances in running order.
type Plan struct {
	Categories   []model.Category
	Performances []Performance
}

// Submissions flattens the plan into the submissions the server should hold.
func (p Plan) Submissions() []model.Submission {
	var out []model.Submission
	for _, perf := range p.Performances {
		for _, a := range perf.Attempts {
			for judge, v := range a.Scores {
				out = append(out, model.Submission{
					Judge:      judge,
					CategoryID: perf.CategoryID,
					Bib:        perf.Bib,
					Run:        perf.Run,
					Attempt:    a.Number,
					Value:      v,
				})
			}
		}
	}
	return out
}

// Generate builds a deterministic plan from cfg.Seed.
func Generate(cfg *Config) Plan {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	var plan Plan
	for c := 1; c <= cfg.Categories; c++ {
		cat := model.Category{ID: fmt.Sprintf("cat-%d", c), Name: fmt.Sprintf("Category %d", c)}
		for a := 1; a <= cfg.Athletes; a++ {
			bib := strconv.Itoa(c*100 + a)
			cat.Athletes = append(cat.Athletes, model.Athlete{
				Bib:  bib,
				Name: fmt.Sprintf("%s %d", names[rng.IntN(len(names))], a),
			})
		}
		plan.Categories = append(plan.Categories, cat)
	}

	for _, cat := range plan.Categories {
		for _, run := range []int{model.FirstRun, model.SecondRun} {
			for _, athlete := range cat.Athletes {
				base := baseMin + rng.IntN(baseRange)
				perf := Performance{CategoryID: cat.ID, Bib: athlete.Bib, Run: run}
				perf.Attempts = append(perf.Attempts, genAttempt(rng, cfg, 1, base))
				if rng.Float64() < cfg.RerunRate {
					perf.Attempts = append(perf.Attempts, genAttempt(rng, cfg, 2, base+rerunBonus))
				}
				plan.Performances = append(plan.Performances, perf)
			}
		}
	}
	return plan
}

func genAttempt(rng *rand.Rand, cfg *Config, number, base int) Attempt {
	a := Attempt{Number: number, Scores: make(map[model.JudgeRole]int, len(cfg.Judges))}
	for _, j := range cfg.Judges {
		if rng.Float64() < cfg.MissingRate {
			continue
		}
		v := base + rng.IntN(2*judgeSpread+1) - judgeSpread
		a.Scores[j] = min(max(v, model.MinValue), model.MaxValue)
	}
	return a
}
