// Package repository defines the event store interface and errors.
package repository

import (
	"context"

	"github.com/okian/judgeboard/internal/domain/model"
)

// Event is the whole persisted state of one competition.
type Event struct {
	Categories  []model.Category   `json:"categories"`
	Submissions []model.Submission `json:"submissions"`
	Live        model.LiveState    `json:"live"`
}

// Store provides read/write access to the event state.
// Reads return copies; callers may keep or modify them freely.
type Store interface {
	// Snapshot returns a consistent copy of the event.
	Snapshot(ctx context.Context) (Event, error)

	// UpsertSubmission stores s, replacing any submission with the same
	// (judge, category, bib, run, attempt). Returns true when it replaced one.
	// Returns ErrNotFound if the category or athlete is not on the roster.
	UpsertSubmission(ctx context.Context, s model.Submission) (bool, error)

	// Live returns the athlete/run currently being judged.
	Live(ctx context.Context) (model.LiveState, error)

	// SetLive marks an athlete/run as live. A zero attempt resumes the latest
	// attempt already scored for that run, or 1.
	SetLive(ctx context.Context, live model.LiveState) (model.LiveState, error)

	// Rerun grants the live athlete a new attempt of the live run.
	// Returns ErrNoLive when nothing is live.
	Rerun(ctx context.Context) (model.LiveState, error)

	// ReplaceRoster swaps the category list. Submissions are kept.
	ReplaceRoster(ctx context.Context, categories []model.Category) error

	// Reset clears every submission and the live state, keeping the roster.
	Reset(ctx context.Context) error

	// Count returns the number of stored submissions.
	Count(ctx context.Context) int
}
