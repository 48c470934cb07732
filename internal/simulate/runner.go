package simulate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/judgeboard/internal/domain/model"
	"github.com/okian/judgeboard/internal/domain/ranking"
	"github.com/okian/judgeboard/internal/domain/scoring"
	"github.com/okian/judgeboard/internal/domain/types"
	"github.com/okian/judgeboard/pkg/logger"
)

type rosterBody struct {
	Categories []model.Category `json:"categories"`
}

type liveBody struct {
	CategoryID string `json:"category_id"`
	Bib        string `json:"bib"`
	Run        int    `json:"run"`
}

type scoreBody struct {
	Judge      model.JudgeRole `json:"judge"`
	CategoryID string          `json:"category_id"`
	Bib        string          `json:"bib"`
	Run        int             `json:"run"`
	Value      int             `json:"value"`
}

type resultsBody struct {
	Categories []model.Category    `json:"categories"`
	Entries    []types.RankedEntry `json:"entries"`
}

// Run resets the server, uploads a generated roster, judges every run the
// way a live event would (set live, judges score concurrently, occasional
// re-run) and finally compares the served ranking with a local one.
func Run(ctx context.Context, cfg *Config) (*Report, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	log := logger.Named("simulate")
	report := &Report{StartTime: time.Now()}
	client := newHTTPClient(cfg.BaseURL, cfg.Timeout, cfg.RateLimit)

	log.Info(ctx, "starting simulated event",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("categories", cfg.Categories),
		logger.Int("athletes", cfg.Athletes),
		logger.Any("judges", cfg.Judges),
		logger.Int("seed", int(cfg.Seed)),
	)

	if err := client.do(ctx, http.MethodGet, "/healthz", nil, nil); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	plan := Generate(cfg)
	if err := client.do(ctx, http.MethodPost, "/api/reset", nil, nil); err != nil {
		return nil, fmt.Errorf("reset failed: %w", err)
	}
	if err := client.do(ctx, http.MethodPut, "/api/roster", rosterBody{Categories: plan.Categories}, nil); err != nil {
		return nil, fmt.Errorf("roster upload failed: %w", err)
	}

	for _, perf := range plan.Performances {
		var live model.LiveState
		if err := client.do(ctx, http.MethodPut, "/api/live", liveBody{CategoryID: perf.CategoryID, Bib: perf.Bib, Run: perf.Run}, &live); err != nil {
			return nil, fmt.Errorf("set live failed: %w", err)
		}
		for i, attempt := range perf.Attempts {
			if i > 0 {
				if err := client.do(ctx, http.MethodPost, "/api/live/rerun", nil, &live); err != nil {
					return nil, fmt.Errorf("rerun failed: %w", err)
				}
				report.Reruns++
			}
			if live.Attempt != attempt.Number {
				return nil, fmt.Errorf("%w: live attempt %d, expected %d for bib %s", ErrMismatch, live.Attempt, attempt.Number, perf.Bib)
			}
			if err := submitAttempt(ctx, client, cfg.Workers, perf, attempt); err != nil {
				return nil, err
			}
			report.Submissions += len(attempt.Scores)
		}
	}

	var served resultsBody
	if err := client.do(ctx, http.MethodGet, "/api/results", nil, &served); err != nil {
		return nil, fmt.Errorf("results retrieval failed: %w", err)
	}

	athletes := ranking.Athletes(plan.Categories)
	ranker := ranking.New(scoring.NewEngine(scoring.WithJudges(cfg.Judges)))
	local := ranker.Rank(plan.Submissions(), plan.Categories, athletes)
	if err := Verify(served.Entries, local); err != nil {
		return nil, err
	}

	report.Athletes = len(athletes)
	for _, e := range served.Entries {
		if e.HasTotal() {
			report.Scored++
		}
	}
	if len(served.Entries) > 0 {
		report.Leader = served.Entries[0].Bib
	}
	report.Duration = time.Since(report.StartTime)

	log.Info(ctx, "simulated event verified",
		logger.Int("athletes", report.Athletes),
		logger.Int("scored", report.Scored),
		logger.Int("submissions", report.Submissions),
		logger.Int("reruns", report.Reruns),
		logger.String("leader", report.Leader),
		logger.String("duration", report.Duration.String()),
	)
	return report, nil
}

// submitAttempt posts every judge's score for the live attempt concurrently.
func submitAttempt(ctx context.Context, client *httpClient, workers int, perf Performance, attempt Attempt) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for judge, value := range attempt.Scores {
		body := scoreBody{Judge: judge, CategoryID: perf.CategoryID, Bib: perf.Bib, Run: perf.Run, Value: value}
		g.Go(func() error {
			if err := client.do(gctx, http.MethodPost, "/api/scores", body, nil); err != nil {
				return fmt.Errorf("score submission failed: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}

func validate(cfg *Config) error {
	switch {
	case cfg == nil:
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	case cfg.BaseURL == "":
		return fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	case cfg.Categories < 1 || cfg.Athletes < 1:
		return fmt.Errorf("%w: need at least one category and one athlete", ErrInvalidConfig)
	case len(cfg.Judges) == 0:
		return fmt.Errorf("%w: judges must not be empty", ErrInvalidConfig)
	case cfg.Workers < 1:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	case cfg.RateLimit < 0:
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidConfig)
	}
	return nil
}
