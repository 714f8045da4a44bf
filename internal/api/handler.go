// Package api provides the HTTP surface over the check-in, plan, and
// practice-support services.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/fluently/internal/checkin"
	"github.com/abhisek/fluently/internal/evaluate"
	"github.com/abhisek/fluently/internal/picture"
)

// Handler holds the services behind the HTTP endpoints.
type Handler struct {
	orchestrator *checkin.Orchestrator
	assembler    *picture.Assembler
	evaluator    *evaluate.Evaluator
}

// NewHandler creates a Handler with its service dependencies.
func NewHandler(o *checkin.Orchestrator, a *picture.Assembler, e *evaluate.Evaluator) *Handler {
	return &Handler{orchestrator: o, assembler: a, evaluator: e}
}

// RegisterRoutes mounts all endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", h.StartSession)
		r.Post("/sessions/{id}/messages", h.PostMessage)
		r.Get("/sessions/{id}/plan", h.GetPlan)
		r.Get("/picture-choices", h.GetPictureChoices)
		r.Post("/evaluate", h.Evaluate)
	})
	r.Get("/healthz", h.Health)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// decode reads a JSON request body into v, reporting a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
