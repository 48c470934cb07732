package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/judgeboard/internal/adapters/export"
	"github.com/okian/judgeboard/internal/adapters/repository"
	"github.com/okian/judgeboard/internal/domain/model"
	"github.com/okian/judgeboard/internal/domain/types"
	"github.com/okian/judgeboard/pkg/logger"
)

// ResultsDependencies defines the interface for leaderboard reads.
type ResultsDependencies interface {
	Live(ctx context.Context) (model.LiveState, error)
	Roster(ctx context.Context) ([]model.Category, error)
	Results(ctx context.Context) ([]model.Category, []types.RankedEntry, error)
	CategoryResults(ctx context.Context, categoryID string) ([]types.RankedEntry, error)
	AthleteDetail(ctx context.Context, categoryID, bib string) (types.FinalScore, error)
}

// ResultsHandler handles leaderboard requests.
type ResultsHandler struct {
	deps ResultsDependencies
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps ResultsDependencies) *ResultsHandler {
	return &ResultsHandler{deps: deps}
}

// HandleGetResults handles GET /api/results.
func (h *ResultsHandler) HandleGetResults(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_results"
	categories, entries, err := h.deps.Results(r.Context())
	if err != nil {
		respondError(r.Context(), w, op, err)
		return
	}
	resp := resultsResponse{Categories: categories, Entries: entries}
	live, err := h.deps.Live(r.Context())
	if err != nil {
		respondError(r.Context(), w, op, err)
		return
	}
	if live.Active() {
		resp.Live = &live
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGetCategoryResults handles GET /api/results/{category}.
func (h *ResultsHandler) HandleGetCategoryResults(w http.ResponseWriter, r *http.Request) {
	entries, err := h.deps.CategoryResults(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		respondError(r.Context(), w, "api.get_category_results", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleGetResultsCSV handles GET /api/results.csv[?category=ID].
func (h *ResultsHandler) HandleGetResultsCSV(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_results_csv"
	ctx := r.Context()

	var (
		categories []model.Category
		entries    []types.RankedEntry
		err        error
		filename   = "results.csv"
	)
	if id := r.URL.Query().Get("category"); id != "" {
		categories, entries, err = h.categoryExport(ctx, id)
		filename = "results-" + id + ".csv"
	} else {
		categories, entries, err = h.deps.Results(ctx)
	}
	if err != nil {
		respondError(ctx, w, op, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	// The status is already sent; a failed write can only be logged.
	if err := export.WriteCSV(w, categories, entries); err != nil {
		logger.Named("api").Error(ctx, "csv export truncated",
			logger.String("op", op),
			logger.String("file", filename),
			logger.Error(err),
		)
	}
}

func (h *ResultsHandler) categoryExport(ctx context.Context, id string) ([]model.Category, []types.RankedEntry, error) {
	roster, err := h.deps.Roster(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, c := range roster {
		if c.ID != id {
			continue
		}
		entries, err := h.deps.CategoryResults(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		return []model.Category{c}, entries, nil
	}
	return nil, nil, fmt.Errorf("category %q: %w", id, repository.ErrNotFound)
}

// HandleGetAthlete handles GET /api/athletes/{category}/{bib}.
func (h *ResultsHandler) HandleGetAthlete(w http.ResponseWriter, r *http.Request) {
	detail, err := h.deps.AthleteDetail(r.Context(), chi.URLParam(r, "category"), chi.URLParam(r, "bib"))
	if err != nil {
		respondError(r.Context(), w, "api.get_athlete", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
