// Package dedupe collapses submission sets to one entry per upsert tuple.
package dedupe

import "github.com/okian/judgeboard/internal/domain/model"

// KeepLast returns subs with at most one submission per
// (judge, category, bib, run, attempt). The last occurrence of a tuple wins
// and takes the position of the first one, so relative order is otherwise
// preserved. The second return value counts the dropped entries.
func KeepLast(subs []model.Submission) ([]model.Submission, int) {
	index := make(map[model.SubmissionKey]int, len(subs))
	out := make([]model.Submission, 0, len(subs))
	for _, s := range subs {
		k := s.Key()
		if i, ok := index[k]; ok {
			out[i] = s
			continue
		}
		index[k] = len(out)
		out = append(out, s)
	}
	return out, len(subs) - len(out)
}

// Upsert replaces the submission sharing s's tuple or appends s.
// It reports whether an existing submission was replaced.
func Upsert(subs []model.Submission, s model.Submission) ([]model.Submission, bool) {
	k := s.Key()
	for i := range subs {
		if subs[i].Key() == k {
			subs[i] = s
			return subs, true
		}
	}
	return append(subs, s), false
}
