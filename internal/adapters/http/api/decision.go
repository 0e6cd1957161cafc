package api

import (
	"net/http"

	service "github.com/okian/goalkeep/internal/app"
	"github.com/okian/goalkeep/pkg/logger"
)

// DecisionHandler serves the in-game and pre-game assessments.
type DecisionHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewDecisionHandler creates a new decision handler.
func NewDecisionHandler(deps Dependencies, log logger.Logger) *DecisionHandler {
	return &DecisionHandler{deps: deps, log: log}
}

// HandleTimeout handles POST /v1/timeout requests.
func (h *DecisionHandler) HandleTimeout(w http.ResponseWriter, r *http.Request) {
	const op = "api.timeout"
	if !requireMethod(w, r, op, http.MethodPost) {
		return
	}
	var req service.TimeoutRequest
	if err := decode(r, op, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rep, err := h.deps.Timeout(r.Context(), req)
	if err != nil {
		writeServiceError(r.Context(), w, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandlePreGame handles POST /v1/pregame requests.
func (h *DecisionHandler) HandlePreGame(w http.ResponseWriter, r *http.Request) {
	const op = "api.pregame"
	if !requireMethod(w, r, op, http.MethodPost) {
		return
	}
	var req service.PreGameRequest
	if err := decode(r, op, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rep, err := h.deps.PreGame(r.Context(), req)
	if err != nil {
		writeServiceError(r.Context(), w, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
