// Package types contains the derived result types shared by the engine,
// the ranker and the output adapters. Absent values are nil pointers so that
// "not scored yet" stays distinguishable from zero.
package types

import "github.com/okian/judgeboard/internal/domain/model"

// RunScore is the representative score for one athlete, category and run.
type RunScore struct {
	Complete bool                     `json:"complete"`
	Average  *float64                 `json:"average"`
	Attempt  int                      `json:"attempt"`
	Judges   map[model.JudgeRole]*int `json:"judges"`
}

// CategoryScore is one athlete's result within one category.
type CategoryScore struct {
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	BestRun      int       `json:"best_run"` // 0 when neither run has been scored
	Average      *float64  `json:"average"`
	Attempt      int       `json:"attempt"`
	Complete     bool      `json:"complete"`
	Run1         *RunScore `json:"run1"`
	Run2         *RunScore `json:"run2"`
}

// FinalScore aggregates an athlete's categories.
type FinalScore struct {
	Bib        string          `json:"bib"`
	Name       string          `json:"name"`
	Total      *float64        `json:"total"`
	Complete   bool            `json:"complete"`
	Categories []CategoryScore `json:"categories"`
}

// HasTotal reports whether at least one category contributed a score.
func (f FinalScore) HasTotal() bool { return f.Total != nil }

// RankedEntry is a final score with its competition rank.
type RankedEntry struct {
	Rank int `json:"rank"`
	FinalScore
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
