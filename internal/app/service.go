// Package service composes the event store with the scoring engine and
// ranker, and implements the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/judgeboard/internal/adapters/repository"
	"github.com/okian/judgeboard/internal/domain/model"
	"github.com/okian/judgeboard/internal/domain/ranking"
	"github.com/okian/judgeboard/internal/domain/scoring"
	"github.com/okian/judgeboard/internal/domain/types"
	"github.com/okian/judgeboard/pkg/logger"
	"github.com/okian/judgeboard/pkg/metrics"
)

// Service implements the API dependencies for the scoring system.
type Service struct {
	mu sync.RWMutex

	store  repository.Store
	engine *scoring.Engine
	ranker *ranking.Ranker

	dataFile string
	judges   []model.JudgeRole
	now      func() time.Time

	started   bool
	startedAt time.Time

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataFile: "judgeboard.json",
		judges:   model.DefaultJudges,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = scoring.NewEngine(scoring.WithJudges(s.judges))
	s.ranker = ranking.New(s.engine)
	return s
}

// Start opens the data file (unless a store was injected).
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}

	if s.store == nil {
		store, err := repository.Open(ctx, s.dataFile, repository.WithClock(s.now), repository.WithLogger(s.logger))
		if err != nil {
			return fmt.Errorf("open data file: %w", err)
		}
		s.store = store
	}

	s.started = true
	s.startedAt = s.now()
	s.logger.Info(ctx, "scoring service started",
		logger.String("dataFile", s.dataFile),
		logger.Any("judges", s.engine.Judges()),
		logger.Int("submissions", s.store.Count(ctx)),
	)
	return nil
}

// Stop marks the service stopped. Every mutation is already on disk.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "scoring service stopped")
}

// Judges returns the configured judge panel.
func (s *Service) Judges() []model.JudgeRole { return s.engine.Judges() }

func (s *Service) storeOrErr() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// SubmitScore validates and stores one judge's score. A zero attempt is
// filled from the live state when it points at the same athlete and run,
// otherwise attempt 1 is assumed. Returns the stored submission and whether
// it replaced an earlier one for the same tuple.
func (s *Service) SubmitScore(ctx context.Context, sub model.Submission) (model.Submission, bool, error) {
	store, err := s.storeOrErr()
	if err != nil {
		return model.Submission{}, false, err
	}

	if err := s.validateSubmission(sub); err != nil {
		metrics.RecordSubmissionRejected("invalid")
		return model.Submission{}, false, err
	}

	if sub.Attempt == 0 {
		sub.Attempt = 1
		live, err := store.Live(ctx)
		if err != nil {
			return model.Submission{}, false, err
		}
		if live.CategoryID == sub.CategoryID && live.Bib == sub.Bib && live.Run == sub.Run {
			sub.Attempt = live.Attempt
		}
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = s.now().UTC()
	}

	replaced, err := store.UpsertSubmission(ctx, sub)
	if err != nil {
		metrics.RecordSubmissionRejected("store")
		return model.Submission{}, false, err
	}
	metrics.RecordSubmission(string(sub.Judge), replaced)
	s.logger.Debug(ctx, "score stored",
		logger.String("key", sub.Key().String()),
		logger.Int("value", sub.Value),
		logger.Bool("replaced", replaced),
	)
	return sub, replaced, nil
}

func (s *Service) validateSubmission(sub model.Submission) error {
	switch {
	case !s.engine.IsJudge(sub.Judge):
		return fmt.Errorf("%w: unknown judge %q", model.ErrInvalidSubmission, sub.Judge)
	case sub.CategoryID == "":
		return fmt.Errorf("%w: category_id is required", model.ErrInvalidSubmission)
	case sub.Bib == "":
		return fmt.Errorf("%w: bib is required", model.ErrInvalidSubmission)
	case !model.ValidRun(sub.Run):
		return fmt.Errorf("%w: run must be 1 or 2, got %d", model.ErrInvalidSubmission, sub.Run)
	case sub.Attempt < 0:
		return fmt.Errorf("%w: attempt must be positive, got %d", model.ErrInvalidSubmission, sub.Attempt)
	case sub.Value < model.MinValue || sub.Value > model.MaxValue:
		return fmt.Errorf("%w: value must be within %d..%d, got %d",
			model.ErrInvalidSubmission, model.MinValue, model.MaxValue, sub.Value)
	}
	return nil
}

// Live returns the athlete/run currently being judged.
func (s *Service) Live(ctx context.Context) (model.LiveState, error) {
	store, err := s.storeOrErr()
	if err != nil {
		return model.LiveState{}, err
	}
	return store.Live(ctx)
}

// SetLive switches the live athlete/run.
func (s *Service) SetLive(ctx context.Context, live model.LiveState) (model.LiveState, error) {
	store, err := s.storeOrErr()
	if err != nil {
		return model.LiveState{}, err
	}
	live, err = store.SetLive(ctx, live)
	if err != nil {
		return model.LiveState{}, err
	}
	metrics.RecordLiveChange()
	s.logger.Info(ctx, "live athlete changed",
		logger.String("category", live.CategoryID),
		logger.String("bib", live.Bib),
		logger.Int("run", live.Run),
		logger.Int("attempt", live.Attempt),
	)
	return live, nil
}

// Rerun grants the live athlete another attempt at the live run.
func (s *Service) Rerun(ctx context.Context) (model.LiveState, error) {
	store, err := s.storeOrErr()
	if err != nil {
		return model.LiveState{}, err
	}
	live, err := store.Rerun(ctx)
	if err != nil {
		return model.LiveState{}, err
	}
	metrics.RecordRerun()
	s.logger.Info(ctx, "re-run granted",
		logger.String("category", live.CategoryID),
		logger.String("bib", live.Bib),
		logger.Int("run", live.Run),
		logger.Int("attempt", live.Attempt),
	)
	return live, nil
}

// Roster returns the categories with their athletes.
func (s *Service) Roster(ctx context.Context) ([]model.Category, error) {
	store, err := s.storeOrErr()
	if err != nil {
		return nil, err
	}
	ev, err := store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if ev.Categories == nil {
		return []model.Category{}, nil
	}
	return ev.Categories, nil
}

// ReplaceRoster swaps the roster. Existing submissions are kept.
func (s *Service) ReplaceRoster(ctx context.Context, categories []model.Category) error {
	store, err := s.storeOrErr()
	if err != nil {
		return err
	}
	if err := store.ReplaceRoster(ctx, categories); err != nil {
		return err
	}
	s.logger.Info(ctx, "roster replaced",
		logger.Int("categories", len(categories)),
		logger.Int("athletes", len(ranking.Athletes(categories))),
	)
	return nil
}

// Reset clears every submission and the live state.
func (s *Service) Reset(ctx context.Context) error {
	store, err := s.storeOrErr()
	if err != nil {
		return err
	}
	if err := store.Reset(ctx); err != nil {
		return err
	}
	s.logger.Warn(ctx, "event reset; all submissions cleared")
	return nil
}

// Results ranks every athlete on the roster across all categories. The
// categories are returned alongside so callers can lay out columns.
func (s *Service) Results(ctx context.Context) ([]model.Category, []types.RankedEntry, error) {
	store, err := s.storeOrErr()
	if err != nil {
		return nil, nil, err
	}
	ev, err := store.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	entries := s.ranker.Rank(ev.Submissions, ev.Categories, ranking.Athletes(ev.Categories))
	metrics.RecordRanking(float64(time.Since(start).Microseconds())/1000, len(entries))

	if ev.Categories == nil {
		ev.Categories = []model.Category{}
	}
	return ev.Categories, entries, nil
}

// CategoryResults ranks one category's athletes on that category alone.
func (s *Service) CategoryResults(ctx context.Context, categoryID string) ([]types.RankedEntry, error) {
	store, err := s.storeOrErr()
	if err != nil {
		return nil, err
	}
	ev, err := store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := findCategory(ev.Categories, categoryID)
	if !ok {
		return nil, fmt.Errorf("category %q: %w", categoryID, repository.ErrNotFound)
	}

	start := time.Now()
	entries := s.ranker.RankCategory(ev.Submissions, c)
	metrics.RecordRanking(float64(time.Since(start).Microseconds())/1000, len(entries))
	return entries, nil
}

// AthleteDetail returns one athlete's score in one category, including both
// runs and every judge's value for the representative attempts.
func (s *Service) AthleteDetail(ctx context.Context, categoryID, bib string) (types.FinalScore, error) {
	store, err := s.storeOrErr()
	if err != nil {
		return types.FinalScore{}, err
	}
	ev, err := store.Snapshot(ctx)
	if err != nil {
		return types.FinalScore{}, err
	}
	c, ok := findCategory(ev.Categories, categoryID)
	if !ok {
		return types.FinalScore{}, fmt.Errorf("category %q: %w", categoryID, repository.ErrNotFound)
	}
	for _, a := range c.Athletes {
		if a.Bib == bib {
			return s.engine.FinalScore(ev.Submissions, []model.Category{c}, a), nil
		}
	}
	return types.FinalScore{}, fmt.Errorf("athlete %q in category %q: %w", bib, categoryID, repository.ErrNotFound)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":  s.started,
		"dataFile": s.dataFile,
		"judges":   s.engine.Judges(),
	}

	if s.started {
		ev, err := s.store.Snapshot(ctx)
		if err == nil {
			stats["submissions"] = len(ev.Submissions)
			stats["categories"] = len(ev.Categories)
			stats["athletes"] = len(ranking.Athletes(ev.Categories))
			stats["live"] = ev.Live
			metrics.UpdateSubmissionsStored(len(ev.Submissions))
		}
		stats["uptimeSeconds"] = int64(s.now().Sub(s.startedAt).Seconds())
		stats["goroutines"] = runtime.NumGoroutine()
	}

	return stats
}

func findCategory(categories []model.Category, id string) (model.Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}
