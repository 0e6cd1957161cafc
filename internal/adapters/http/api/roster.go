package api

import (
	"net/http"

	"github.com/okian/goalkeep/pkg/logger"
)

// RosterHandler lists goalkeepers and opponents.
type RosterHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps Dependencies, log logger.Logger) *RosterHandler {
	return &RosterHandler{deps: deps, log: log}
}

// HandleGoalkeepers handles GET /v1/goalkeepers requests.
func (h *RosterHandler) HandleGoalkeepers(w http.ResponseWriter, r *http.Request) {
	const op = "api.goalkeepers"
	if !requireMethod(w, r, op, http.MethodGet) {
		return
	}
	gks, err := h.deps.Goalkeepers(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, gks)
}

// HandleOpponents handles GET /v1/opponents requests.
func (h *RosterHandler) HandleOpponents(w http.ResponseWriter, r *http.Request) {
	const op = "api.opponents"
	if !requireMethod(w, r, op, http.MethodGet) {
		return
	}
	ops, err := h.deps.Opponents(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ops)
}
