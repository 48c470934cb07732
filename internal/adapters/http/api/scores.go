package api

import (
	"context"
	"net/http"

	"github.com/okian/judgeboard/internal/domain/model"
)

// ScoreDependencies defines the interface for storing judge scores.
type ScoreDependencies interface {
	SubmitScore(ctx context.Context, sub model.Submission) (model.Submission, bool, error)
}

// scoreRequest mirrors the OpenAPI schema for POST /api/scores.
type scoreRequest struct {
	Judge      string `json:"judge" validate:"required"`
	CategoryID string `json:"category_id" validate:"required"`
	Bib        string `json:"bib" validate:"required"`
	Run        int    `json:"run" validate:"required,oneof=1 2"`
	Attempt    int    `json:"attempt" validate:"omitempty,min=1"`
	Value      int    `json:"value" validate:"required,min=1,max=100"`
}

// ScoresHandler handles score submissions.
type ScoresHandler struct {
	deps ScoreDependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps ScoreDependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

// HandlePostScore handles POST /api/scores. Omitting attempt scores the
// live attempt of that athlete/run.
func (h *ScoresHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(r.Context(), w, op, err)
		return
	}

	stored, replaced, err := h.deps.SubmitScore(r.Context(), model.Submission{
		Judge:      model.JudgeRole(req.Judge),
		CategoryID: req.CategoryID,
		Bib:        req.Bib,
		Run:        req.Run,
		Attempt:    req.Attempt,
		Value:      req.Value,
	})
	if err != nil {
		respondError(r.Context(), w, op, err)
		return
	}

	status, code := http.StatusCreated, "stored"
	if replaced {
		status, code = http.StatusOK, "replaced"
	}
	writeJSON(w, status, ackResponse{Status: code, Replaced: replaced, Submission: stored})
}
