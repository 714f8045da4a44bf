package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/abhisek/fluently/internal/evaluate"
)

// GetPictureChoices assembles a four-option image set for a concept.
func (h *Handler) GetPictureChoices(w http.ResponseWriter, r *http.Request) {
	concept := strings.TrimSpace(r.URL.Query().Get("concept"))
	if concept == "" {
		Error(w, http.StatusBadRequest, "concept is required")
		return
	}
	topic := strings.TrimSpace(r.URL.Query().Get("topic"))

	choices := h.assembler.GetPictureChoices(r.Context(), concept, topic)
	JSON(w, http.StatusOK, map[string]any{"choices": choices})
}

type evaluateRequest struct {
	SessionID string `json:"session_id"`
	BlockType string `json:"block_type"`
	Prompt    string `json:"prompt"`
	Submitted string `json:"submitted"`
	Expected  string `json:"expected"`
}

type evaluateResponse struct {
	Correct  bool   `json:"correct"`
	Tier     string `json:"tier"`
	Expected string `json:"expected"`
}

// Evaluate judges a submitted answer against the expected one.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Expected == "" {
		Error(w, http.StatusBadRequest, "expected is required")
		return
	}

	result, err := h.evaluator.Evaluate(r.Context(), req.SessionID, req.BlockType, req.Prompt, req.Submitted, req.Expected)
	if err != nil {
		if errors.Is(err, evaluate.ErrEvaluationInFlight) {
			Error(w, http.StatusConflict, "an evaluation is already in progress")
			return
		}
		Error(w, http.StatusInternalServerError, "evaluation failed")
		return
	}

	JSON(w, http.StatusOK, evaluateResponse{
		Correct:  result.Correct,
		Tier:     result.Tier,
		Expected: result.Expected,
	})
}
