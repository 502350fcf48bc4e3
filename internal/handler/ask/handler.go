// Package ask answers chat questions: the model turns the question into a
// single-line expression which is evaluated against the dataset, and the
// result (or the error text) becomes the answer. Evaluation failures are
// part of the answer, not HTTP errors.
package ask

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tabwise/workbench/internal/analysis/query"
	"github.com/tabwise/workbench/internal/model/dataset"
	"github.com/tabwise/workbench/internal/service/ai"
	"github.com/tabwise/workbench/pkg/utils"
)

// Handler serves the chat question endpoints.
type Handler struct {
	store     dataset.Store
	completer ai.Completer
}

// New creates the ask handler; completer is nil when AI is disabled.
func New(store dataset.Store, completer ai.Completer) *Handler {
	return &Handler{store: store, completer: completer}
}

// RegisterRoutes wires the JSON ask route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/ask/{id}", h.handleAsk)
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	if h.completer == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "ai features are disabled")
		return
	}

	var payload struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Question == "" {
		utils.RespondError(w, http.StatusBadRequest, "question is required")
		return
	}

	id := chi.URLParam(r, "id")
	ds, ok := h.store.Get(id)
	if !ok {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"answer": "Session not found."})
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"answer": h.answer(r.Context(), ds, payload.Question),
	})
}

// answer runs the completion and evaluation pipeline. Every failure mode
// maps to an answer string; the transport always succeeds.
func (h *Handler) answer(ctx context.Context, ds *dataset.Dataset, question string) string {
	raw, err := h.completer.Complete(ctx, ai.ChatPrompt(ds, question))
	if err != nil {
		log.Printf("[ask] completion failed for dataset=%s: %v", ds.ID, err)
		return "Error: " + err.Error()
	}

	code := ai.StripFences(raw)
	out, err := query.Evaluate(code, query.ChatEnv(ds.Frame))
	if err != nil {
		return "Error: " + err.Error()
	}

	text := query.FormatValue(out)
	if text == "" {
		return "Action performed."
	}
	return text
}
