// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	service "github.com/okian/goalkeep/internal/app"
	"github.com/okian/goalkeep/internal/adapters/repository"
	"github.com/okian/goalkeep/internal/domain/model"
	"github.com/okian/goalkeep/internal/domain/ranking"
	"github.com/okian/goalkeep/internal/domain/training"
	"github.com/okian/goalkeep/pkg/logger"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	Timeout(ctx context.Context, req service.TimeoutRequest) (service.TimeoutReport, error)
	PreGame(ctx context.Context, req service.PreGameRequest) (service.PreGameReport, error)
	Training(ctx context.Context, req service.TrainingRequest) (service.TrainingReport, error)

	Goalkeepers(ctx context.Context) ([]model.Goalkeeper, error)
	Opponents(ctx context.Context) ([]model.Opponent, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	decisionHandler *DecisionHandler
	trainingHandler *TrainingHandler
	rosterHandler   *RosterHandler
}

// ServerOption configures a Server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	log logger.Logger
}

// WithLogger sets the logger used for server-side failures.
func WithLogger(l logger.Logger) ServerOption {
	return func(o *serverOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	o := serverOptions{log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		decisionHandler: NewDecisionHandler(deps, o.log),
		trainingHandler: NewTrainingHandler(deps, o.log),
		rosterHandler:   NewRosterHandler(deps, o.log),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/v1/timeout", MetricsMiddleware(s.decisionHandler.HandleTimeout, "timeout"))
	mux.HandleFunc("/v1/pregame", MetricsMiddleware(s.decisionHandler.HandlePreGame, "pregame"))
	mux.HandleFunc("/v1/training", MetricsMiddleware(s.trainingHandler.HandleTraining, "training"))
	mux.HandleFunc("/v1/goalkeepers", MetricsMiddleware(s.rosterHandler.HandleGoalkeepers, "goalkeepers"))
	mux.HandleFunc("/v1/opponents", MetricsMiddleware(s.rosterHandler.HandleOpponents, "opponents"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: errorCode(status), Message: msg})
}

// decode reads a JSON body into v and validates it. Failures are
// ErrBadRequest.
func decode(r *http.Request, op string, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	if err := model.Validator().Struct(v); err != nil {
		return WrapKind(op, ErrBadRequest, errors.New(model.Describe(err)))
	}
	return nil
}

// requireMethod writes 405 and reports false when r does not use method.
func requireMethod(w http.ResponseWriter, r *http.Request, op, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, NewKind(op, ErrMethodNotAllowed))
	return false
}

// writeServiceError maps service errors to status codes: caller mistakes to
// 400, unknown records to 404 and anything else to 500.
func writeServiceError(ctx context.Context, w http.ResponseWriter, log logger.Logger, op string, err error) {
	switch {
	case isBadRequest(err):
		writeError(w, http.StatusBadRequest, Wrap(op, err))
	case isNotFound(err):
		writeError(w, http.StatusNotFound, Wrap(op, err))
	default:
		log.Error(ctx, "request failed", logger.String("op", op), logger.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Errorf("%s: internal error", op))
	}
}

func isBadRequest(err error) bool {
	for _, kind := range []error{
		ErrBadRequest,
		service.ErrInvalidRequest,
		model.ErrInvalidShotContext,
		ranking.ErrUnknownCurrent,
		training.ErrUnknownMode,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound) || errors.Is(err, service.ErrEmptyRoster)
}
