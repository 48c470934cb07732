// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/okian/judgeboard/internal/domain/model"
	"github.com/okian/judgeboard/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ScoreDependencies
	LiveDependencies
	RosterDependencies
	ResultsDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	opts options

	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	scoresHandler  *ScoresHandler
	liveHandler    *LiveHandler
	rosterHandler  *RosterHandler
	resultsHandler *ResultsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := options{allowedOrigins: []string{"*"}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		opts:           o,
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		scoresHandler:  NewScoresHandler(deps),
		liveHandler:    NewLiveHandler(deps),
		rosterHandler:  NewRosterHandler(deps),
		resultsHandler: NewResultsHandler(deps),
	}
}

// Router builds the chi router with middleware and every route attached.
func (s *Server) Router(_ context.Context) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	if s.opts.requestLogger != nil {
		r.Use(s.opts.requestLogger)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(Metrics)

	r.Get("/healthz", s.healthHandler.HandleHealth)
	r.Get("/stats", s.statsHandler.HandleStats)

	r.Route("/api", func(r chi.Router) {
		r.Post("/scores", s.scoresHandler.HandlePostScore)

		r.Get("/live", s.liveHandler.HandleGetLive)
		r.Put("/live", s.liveHandler.HandlePutLive)
		r.Post("/live/rerun", s.liveHandler.HandleRerun)

		r.Get("/roster", s.rosterHandler.HandleGetRoster)
		r.Put("/roster", s.rosterHandler.HandlePutRoster)
		r.Post("/reset", s.rosterHandler.HandleReset)

		r.Get("/results", s.resultsHandler.HandleGetResults)
		r.Get("/results.csv", s.resultsHandler.HandleGetResultsCSV)
		r.Get("/results/{category}", s.resultsHandler.HandleGetCategoryResults)
		r.Get("/athletes/{category}/{bib}", s.resultsHandler.HandleGetAthlete)
	})

	return r
}

// ackResponse acknowledges a stored score.
type ackResponse struct {
	Status     string           `json:"status"`
	Replaced   bool             `json:"replaced"`
	Submission model.Submission `json:"submission"`
}

// resultsResponse is the overall leaderboard.
type resultsResponse struct {
	Categories []model.Category    `json:"categories"`
	Entries    []types.RankedEntry `json:"entries"`
	Live       *model.LiveState    `json:"live,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
