// Package scoring turns judge submissions into run, category and final scores.
//
// The Engine is a pure function of its inputs: it keeps no state besides the
// judge panel it was built with and never mutates the slices it is given, so
// a single Engine may be shared by any number of goroutines.
//
// Preconditions enforced by callers, not here: run is 1 or 2 and values lie
// in [1, 100]. The submission set is expected to hold one entry per
// (judge, category, bib, run, attempt); if it does not, the last entry for a
// tuple wins.
package scoring

import (
	"slices"

	"github.com/okian/judgeboard/internal/domain/model"
	"github.com/okian/judgeboard/internal/domain/numeric"
	"github.com/okian/judgeboard/internal/domain/types"
)

// Engine computes run, category and final scores for a fixed judge panel.
type Engine struct {
	judges []model.JudgeRole
}

// NewEngine creates an engine for the default judge panel unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{judges: slices.Clone(model.DefaultJudges)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Judges returns a copy of the judge panel.
func (e *Engine) Judges() []model.JudgeRole {
	return slices.Clone(e.judges)
}

// IsJudge reports whether role sits on the panel.
func (e *Engine) IsJudge(role model.JudgeRole) bool {
	return slices.Contains(e.judges, role)
}

// RunScore returns the best attempt for (categoryID, bib, run).
// ok is false when no panel judge has scored that run.
//
// Attempts are visited in ascending attempt order. A complete attempt beats
// an incomplete one, then the higher average wins, and on a tie the earlier
// attempt is kept.
func (e *Engine) RunScore(subs []model.Submission, categoryID, bib string, run int) (types.RunScore, bool) {
	attempts := make(map[int]map[model.JudgeRole]int)
	for _, s := range subs {
		if s.CategoryID != categoryID || s.Bib != bib || s.Run != run || !e.IsJudge(s.Judge) {
			continue
		}
		group, ok := attempts[s.Attempt]
		if !ok {
			group = make(map[model.JudgeRole]int, len(e.judges))
			attempts[s.Attempt] = group
		}
		group[s.Judge] = s.Value
	}
	if len(attempts) == 0 {
		return types.RunScore{}, false
	}

	order := make([]int, 0, len(attempts))
	for attempt := range attempts {
		order = append(order, attempt)
	}
	slices.Sort(order)

	var best types.RunScore
	for i, attempt := range order {
		candidate := e.scoreAttempt(attempt, attempts[attempt])
		if i == 0 || outranks(candidate, best) {
			best = candidate
		}
	}
	return best, true
}

func (e *Engine) scoreAttempt(attempt int, values map[model.JudgeRole]int) types.RunScore {
	rs := types.RunScore{
		Attempt: attempt,
		Judges:  make(map[model.JudgeRole]*int, len(e.judges)),
	}
	present := make([]int, 0, len(e.judges))
	for _, j := range e.judges {
		v, ok := values[j]
		if !ok {
			rs.Judges[j] = nil
			continue
		}
		rs.Judges[j] = types.Int(v)
		present = append(present, v)
	}
	rs.Complete = len(present) == len(e.judges)
	if mean, ok := numeric.Mean(present); ok {
		rs.Average = types.Float(mean)
	}
	return rs
}

// outranks reports whether a strictly beats b.
func outranks(a, b types.RunScore) bool {
	if a.Complete != b.Complete {
		return a.Complete
	}
	switch {
	case a.Average == nil:
		return false
	case b.Average == nil:
		return true
	default:
		return numeric.Compare(*a.Average, *b.Average) > 0
	}
}

// atLeast reports whether average a is greater than or equal to b.
// A missing average loses to a present one; two missing averages are equal.
func atLeast(a, b *float64) bool {
	switch {
	case b == nil:
		return true
	case a == nil:
		return false
	default:
		return numeric.Compare(*a, *b) >= 0
	}
}
