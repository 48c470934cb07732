// Package ranking orders athletes into a competition ranking.
//
// Ranks follow standard competition ranking ("1224"): tied totals share a rank
// and the next distinct total takes its 1-based position, so totals of
// 80, 80, 70 rank 1, 1, 3. Athletes without a total share one rank after
// every scored athlete. Output is ordered by rank, then by bib.
package ranking

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/okian/judgeboard/internal/domain/model"
	"github.com/okian/judgeboard/internal/domain/numeric"
	"github.com/okian/judgeboard/internal/domain/types"
)

// Scorer computes an athlete's final score.
type Scorer interface {
	FinalScore(subs []model.Submission, categories []model.Category, athlete model.Athlete) types.FinalScore
}

// Ranker ranks athletes using a Scorer. It holds no mutable state.
type Ranker struct {
	scorer Scorer
}

// New creates a Ranker backed by scorer.
func New(scorer Scorer) *Ranker {
	return &Ranker{scorer: scorer}
}

// Rank scores every athlete across categories and returns one entry per athlete.
func (r *Ranker) Rank(subs []model.Submission, categories []model.Category, athletes []model.Athlete) []types.RankedEntry {
	entries := make([]types.RankedEntry, 0, len(athletes))
	if len(athletes) == 0 {
		return entries
	}

	scored := make([]types.FinalScore, 0, len(athletes))
	unscored := make([]types.FinalScore, 0)
	for _, a := range athletes {
		fs := r.scorer.FinalScore(subs, categories, a)
		if fs.HasTotal() {
			scored = append(scored, fs)
		} else {
			unscored = append(unscored, fs)
		}
	}

	slices.SortStableFunc(scored, func(a, b types.FinalScore) int {
		return numeric.Compare(*b.Total, *a.Total)
	})

	for i, fs := range scored {
		rank := i + 1
		if i > 0 && numeric.Equal(*fs.Total, *scored[i-1].Total) {
			rank = entries[i-1].Rank
		}
		entries = append(entries, types.RankedEntry{Rank: rank, FinalScore: fs})
	}

	terminal := len(scored) + 1
	for _, fs := range unscored {
		entries = append(entries, types.RankedEntry{Rank: terminal, FinalScore: fs})
	}

	slices.SortStableFunc(entries, func(a, b types.RankedEntry) int {
		if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
			return c
		}
		return CompareBibs(a.Bib, b.Bib)
	})
	return entries
}

// RankCategory ranks the athletes of a single category on that category alone.
func (r *Ranker) RankCategory(subs []model.Submission, category model.Category) []types.RankedEntry {
	return r.Rank(subs, []model.Category{category}, category.Athletes)
}

// Athletes returns every athlete across categories once, keyed by bib.
// The first occurrence of a bib determines the athlete's name.
func Athletes(categories []model.Category) []model.Athlete {
	seen := make(map[string]struct{})
	var out []model.Athlete
	for _, c := range categories {
		for _, a := range c.Athletes {
			if _, ok := seen[a.Bib]; ok {
				continue
			}
			seen[a.Bib] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}

// CompareBibs orders integer bibs numerically ("9" before "10") ahead of
// every other bib, which compare lexically. Integer bibs of equal value
// ("7", "07") fall back to the lexical order so the result is total.
func CompareBibs(a, b string) int {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		if c := cmp.Compare(ai, bi); c != 0 {
			return c
		}
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return cmp.Compare(a, b)
}
