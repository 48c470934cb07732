package api

import (
	"context"
	"net/http"

	"github.com/okian/judgeboard/internal/domain/model"
)

// RosterDependencies defines the interface for roster administration.
type RosterDependencies interface {
	Roster(ctx context.Context) ([]model.Category, error)
	ReplaceRoster(ctx context.Context, categories []model.Category) error
	Reset(ctx context.Context) error
}

type rosterRequest struct {
	Categories []categoryRequest `json:"categories" validate:"dive"`
}

type categoryRequest struct {
	ID       string           `json:"id" validate:"required"`
	Name     string           `json:"name"`
	Athletes []athleteRequest `json:"athletes" validate:"dive"`
}

type athleteRequest struct {
	Bib  string `json:"bib" validate:"required"`
	Name string `json:"name"`
}

func (req rosterRequest) categories() []model.Category {
	out := make([]model.Category, 0, len(req.Categories))
	for _, c := range req.Categories {
		athletes := make([]model.Athlete, 0, len(c.Athletes))
		for _, a := range c.Athletes {
			athletes = append(athletes, model.Athlete{Bib: a.Bib, Name: a.Name})
		}
		out = append(out, model.Category{ID: c.ID, Name: c.Name, Athletes: athletes})
	}
	return out
}

// RosterHandler handles roster and event reset requests.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandleGetRoster handles GET /api/roster.
func (h *RosterHandler) HandleGetRoster(w http.ResponseWriter, r *http.Request) {
	categories, err := h.deps.Roster(r.Context())
	if err != nil {
		respondError(r.Context(), w, "api.get_roster", err)
		return
	}
	writeJSON(w, http.StatusOK, rosterResponse{Categories: categories})
}

// HandlePutRoster handles PUT /api/roster.
func (h *RosterHandler) HandlePutRoster(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_roster"
	var req rosterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(r.Context(), w, op, err)
		return
	}
	categories := req.categories()
	if err := h.deps.ReplaceRoster(r.Context(), categories); err != nil {
		respondError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rosterResponse{Categories: categories})
}

// HandleReset handles POST /api/reset.
func (h *RosterHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Reset(r.Context()); err != nil {
		respondError(r.Context(), w, "api.reset", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

type rosterResponse struct {
	Categories []model.Category `json:"categories"`
}
