package api

import (
	"net/http"

	service "github.com/okian/goalkeep/internal/app"
	"github.com/okian/goalkeep/pkg/logger"
)

// TrainingHandler serves training plans.
type TrainingHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewTrainingHandler creates a new training handler.
func NewTrainingHandler(deps Dependencies, log logger.Logger) *TrainingHandler {
	return &TrainingHandler{deps: deps, log: log}
}

// HandleTraining handles POST /v1/training requests.
func (h *TrainingHandler) HandleTraining(w http.ResponseWriter, r *http.Request) {
	const op = "api.training"
	if !requireMethod(w, r, op, http.MethodPost) {
		return
	}
	var req service.TrainingRequest
	if err := decode(r, op, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rep, err := h.deps.Training(r.Context(), req)
	if err != nil {
		writeServiceError(r.Context(), w, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
