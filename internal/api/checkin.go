package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/fluently/internal/checkin"
	"github.com/abhisek/fluently/internal/session"
)

// StartSession opens a new check-in conversation.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	res := h.orchestrator.StartSession(r.Context())
	JSON(w, http.StatusCreated, res)
}

type postMessageRequest struct {
	Text string `json:"text"`
}

// PostMessage processes one patient message in a session.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req postMessageRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		Error(w, http.StatusBadRequest, "text is required")
		return
	}

	reply, err := h.orchestrator.ProcessMessage(r.Context(), chi.URLParam(r, "id"), req.Text)
	if err != nil {
		if errors.Is(err, checkin.ErrSessionNotFound) {
			Error(w, http.StatusNotFound, "session not found")
			return
		}
		Error(w, http.StatusBadGateway, "the assistant is unavailable right now")
		return
	}

	JSON(w, http.StatusOK, reply)
}

// GetPlan is the poll endpoint for a session's plan: 200 with the plan
// when complete, 202 with a pending marker while the conversation or
// generation is still running, 500 with the detail when generation
// failed.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	ps, err := h.orchestrator.GetPlan(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusNotFound, "session not found")
		return
	}

	switch ps.Status {
	case session.StatusComplete:
		JSON(w, http.StatusOK, ps)
	case session.StatusError:
		JSON(w, http.StatusInternalServerError, ps)
	default:
		JSON(w, http.StatusAccepted, ps)
	}
}
