package api

import (
	"context"
	"net/http"

	"github.com/okian/judgeboard/internal/domain/model"
)

// LiveDependencies defines the interface for live-state control.
type LiveDependencies interface {
	Live(ctx context.Context) (model.LiveState, error)
	SetLive(ctx context.Context, live model.LiveState) (model.LiveState, error)
	Rerun(ctx context.Context) (model.LiveState, error)
}

type liveRequest struct {
	CategoryID string `json:"category_id" validate:"required"`
	Bib        string `json:"bib" validate:"required"`
	Run        int    `json:"run" validate:"required,oneof=1 2"`
	Attempt    int    `json:"attempt" validate:"omitempty,min=1"`
}

// LiveHandler handles the live athlete/run.
type LiveHandler struct {
	deps LiveDependencies
}

// NewLiveHandler creates a new live handler.
func NewLiveHandler(deps LiveDependencies) *LiveHandler {
	return &LiveHandler{deps: deps}
}

// HandleGetLive handles GET /api/live.
func (h *LiveHandler) HandleGetLive(w http.ResponseWriter, r *http.Request) {
	live, err := h.deps.Live(r.Context())
	if err != nil {
		respondError(r.Context(), w, "api.get_live", err)
		return
	}
	writeJSON(w, http.StatusOK, live)
}

// HandlePutLive handles PUT /api/live.
func (h *LiveHandler) HandlePutLive(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_live"
	var req liveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(r.Context(), w, op, err)
		return
	}
	live, err := h.deps.SetLive(r.Context(), model.LiveState{
		CategoryID: req.CategoryID,
		Bib:        req.Bib,
		Run:        req.Run,
		Attempt:    req.Attempt,
	})
	if err != nil {
		respondError(r.Context(), w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, live)
}

// HandleRerun handles POST /api/live/rerun.
func (h *LiveHandler) HandleRerun(w http.ResponseWriter, r *http.Request) {
	live, err := h.deps.Rerun(r.Context())
	if err != nil {
		respondError(r.Context(), w, "api.rerun", err)
		return
	}
	writeJSON(w, http.StatusOK, live)
}
