package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/okian/judgeboard/internal/domain/dedupe"
	"github.com/okian/judgeboard/internal/domain/model"
	"github.com/okian/judgeboard/pkg/logger"
	"github.com/okian/judgeboard/pkg/metrics"
)

// FileStore keeps the event in memory and rewrites one JSON file after every
// mutation. Writes go to a temporary file that is renamed over the target, so
// a crash never leaves a half-written document behind.
type FileStore struct {
	path string
	now  func() time.Time
	log  logger.Logger

	mu    sync.RWMutex
	event Event
}

var _ Store = (*FileStore)(nil)

// Open loads path, or starts an empty event if the file does not exist yet.
// Duplicate submission tuples found in the file are collapsed, last one wins.
func Open(ctx context.Context, path string, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.event); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCorruptFile, path, err)
		}
	}
	var dropped int
	s.event.Submissions, dropped = dedupe.KeepLast(s.event.Submissions)
	if dropped > 0 {
		if s.log == nil {
			s.log = logger.Named("repository")
		}
		s.log.Warn(ctx, "duplicate submissions collapsed on load; last value kept",
			logger.String("path", path),
			logger.Int("dropped", dropped),
		)
	}
	metrics.UpdateSubmissionsStored(len(s.event.Submissions))
	return s, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Snapshot returns a deep copy of the event.
func (s *FileStore) Snapshot(_ context.Context) (Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEvent(s.event), nil
}

// UpsertSubmission stores sub keyed by its tuple.
func (s *FileStore) UpsertSubmission(ctx context.Context, sub model.Submission) (bool, error) {
	var replaced bool
	err := s.mutate(ctx, "upsert_submission", func(ev *Event) error {
		c, ok := findCategory(ev.Categories, sub.CategoryID)
		if !ok {
			return fmt.Errorf("category %q: %w", sub.CategoryID, ErrNotFound)
		}
		if !c.HasAthlete(sub.Bib) {
			return fmt.Errorf("athlete %q in category %q: %w", sub.Bib, sub.CategoryID, ErrNotFound)
		}
		if sub.SubmittedAt.IsZero() {
			sub.SubmittedAt = s.now().UTC()
		}
		ev.Submissions, replaced = dedupe.Upsert(ev.Submissions, sub)
		return nil
	})
	if err != nil {
		return false, err
	}
	metrics.UpdateSubmissionsStored(s.Count(ctx))
	return replaced, nil
}

// Live returns the current live state.
func (s *FileStore) Live(_ context.Context) (model.LiveState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.event.Live, nil
}

// SetLive validates live against the roster and stores it.
func (s *FileStore) SetLive(ctx context.Context, live model.LiveState) (model.LiveState, error) {
	err := s.mutate(ctx, "set_live", func(ev *Event) error {
		if !model.ValidRun(live.Run) {
			return fmt.Errorf("%w: run must be 1 or 2, got %d", ErrInvalidLive, live.Run)
		}
		if live.Attempt < 0 {
			return fmt.Errorf("%w: attempt must be positive, got %d", ErrInvalidLive, live.Attempt)
		}
		c, ok := findCategory(ev.Categories, live.CategoryID)
		if !ok {
			return fmt.Errorf("category %q: %w", live.CategoryID, ErrNotFound)
		}
		if !c.HasAthlete(live.Bib) {
			return fmt.Errorf("athlete %q in category %q: %w", live.Bib, live.CategoryID, ErrNotFound)
		}
		if live.Attempt == 0 {
			live.Attempt = latestAttempt(ev.Submissions, live)
		}
		ev.Live = live
		return nil
	})
	if err != nil {
		return model.LiveState{}, err
	}
	return live, nil
}

// Rerun bumps the live attempt.
func (s *FileStore) Rerun(ctx context.Context) (model.LiveState, error) {
	var live model.LiveState
	err := s.mutate(ctx, "rerun", func(ev *Event) error {
		if !ev.Live.Active() {
			return ErrNoLive
		}
		ev.Live.Attempt++
		live = ev.Live
		return nil
	})
	return live, err
}

// ReplaceRoster validates and stores categories. A live athlete that is no
// longer on the roster is cleared.
func (s *FileStore) ReplaceRoster(ctx context.Context, categories []model.Category) error {
	if err := ValidateRoster(categories); err != nil {
		return err
	}
	return s.mutate(ctx, "replace_roster", func(ev *Event) error {
		ev.Categories = cloneCategories(categories)
		if ev.Live.Active() {
			c, ok := findCategory(ev.Categories, ev.Live.CategoryID)
			if !ok || !c.HasAthlete(ev.Live.Bib) {
				ev.Live = model.LiveState{}
			}
		}
		return nil
	})
}

// Reset clears submissions and live state.
func (s *FileStore) Reset(ctx context.Context) error {
	err := s.mutate(ctx, "reset", func(ev *Event) error {
		ev.Submissions = nil
		ev.Live = model.LiveState{}
		return nil
	})
	if err == nil {
		metrics.UpdateSubmissionsStored(0)
	}
	return err
}

// Count returns the number of stored submissions.
func (s *FileStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.event.Submissions)
}

// mutate applies fn to a copy of the event and, if both fn and the file
// write succeed, makes the copy current.
func (s *FileStore) mutate(ctx context.Context, op string, fn func(*Event) error) error {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneEvent(s.event)
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.persist(next); err != nil {
		metrics.RecordStoreError(op)
		return err
	}
	s.event = next
	return nil
}

func (s *FileStore) persist(ev Event) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreWrite(float64(time.Since(start).Microseconds()) / 1000)
	}()

	data, err := json.MarshalIndent(ev, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrPersist, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: write: %w", ErrPersist, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: sync: %w", ErrPersist, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w: close: %w", ErrPersist, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("%w: rename: %w", ErrPersist, err)
	}
	return nil
}

// ValidateRoster checks that category ids are present and unique and that
// bibs are present and unique within each category.
func ValidateRoster(categories []model.Category) error {
	ids := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if c.ID == "" {
			return fmt.Errorf("%w: category id must not be empty", ErrInvalidRoster)
		}
		if _, dup := ids[c.ID]; dup {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidRoster, c.ID)
		}
		ids[c.ID] = struct{}{}

		bibs := make(map[string]struct{}, len(c.Athletes))
		for _, a := range c.Athletes {
			if a.Bib == "" {
				return fmt.Errorf("%w: empty bib in category %q", ErrInvalidRoster, c.ID)
			}
			if _, dup := bibs[a.Bib]; dup {
				return fmt.Errorf("%w: duplicate bib %q in category %q", ErrInvalidRoster, a.Bib, c.ID)
			}
			bibs[a.Bib] = struct{}{}
		}
	}
	return nil
}

func findCategory(categories []model.Category, id string) (model.Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// latestAttempt returns the highest attempt scored for live's athlete/run, or 1.
func latestAttempt(subs []model.Submission, live model.LiveState) int {
	attempt := 1
	for _, sub := range subs {
		if sub.CategoryID == live.CategoryID && sub.Bib == live.Bib && sub.Run == live.Run && sub.Attempt > attempt {
			attempt = sub.Attempt
		}
	}
	return attempt
}

func cloneEvent(ev Event) Event {
	return Event{
		Categories:  cloneCategories(ev.Categories),
		Submissions: slices.Clone(ev.Submissions),
		Live:        ev.Live,
	}
}

func cloneCategories(categories []model.Category) []model.Category {
	if categories == nil {
		return nil
	}
	out := make([]model.Category, len(categories))
	for i, c := range categories {
		out[i] = c
		out[i].Athletes = slices.Clone(c.Athletes)
	}
	return out
}
