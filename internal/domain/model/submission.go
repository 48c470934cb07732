// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"time"
)

// Run numbers and value bounds accepted at the boundary.
const (
	FirstRun  = 1
	SecondRun = 2
	MinValue  = 1
	MaxValue  = 100
)

// JudgeRole identifies one of the fixed judge seats of an event.
type JudgeRole string

// DefaultJudges is the judge panel used when none is configured.
var DefaultJudges = []JudgeRole{"J1", "J2", "J3"}

// Submission is a single judge's rating for one athlete, category, run and attempt.
// Fields mirror the OpenAPI schema for POST /api/scores.
type Submission struct {
	Judge       JudgeRole `json:"judge"`
	CategoryID  string    `json:"category_id"`
	Bib         string    `json:"bib"`
	Run         int       `json:"run"`     // 1 or 2
	Attempt     int       `json:"attempt"` // starts at 1, bumped on re-run
	Value       int       `json:"value"`   // 1..100
	SubmittedAt time.Time `json:"submitted_at"`
}

// SubmissionKey is the upsert tuple: at most one stored submission exists per key.
type SubmissionKey struct {
	Judge      JudgeRole
	CategoryID string
	Bib        string
	Run        int
	Attempt    int
}

// Key returns the upsert tuple of s.
func (s Submission) Key() SubmissionKey {
	return SubmissionKey{
		Judge:      s.Judge,
		CategoryID: s.CategoryID,
		Bib:        s.Bib,
		Run:        s.Run,
		Attempt:    s.Attempt,
	}
}

func (k SubmissionKey) String() string {
	return fmt.Sprintf("%s/%s/%s/run%d/attempt%d", k.Judge, k.CategoryID, k.Bib, k.Run, k.Attempt)
}

// ValidRun reports whether run is one of the two judged runs.
func ValidRun(run int) bool {
	return run == FirstRun || run == SecondRun
}
