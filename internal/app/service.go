// Package service orchestrates goalkeeper assessments: it loads records from
// the repository, builds save-probability grids through the oracle and runs
// the scoring, ranking, tactics and training rules over them.
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/goalkeep/internal/adapters/repository"
	"github.com/okian/goalkeep/internal/domain/grid"
	"github.com/okian/goalkeep/internal/domain/model"
	"github.com/okian/goalkeep/internal/domain/ranking"
	"github.com/okian/goalkeep/internal/domain/scoring"
	"github.com/okian/goalkeep/internal/domain/tactics"
	"github.com/okian/goalkeep/internal/domain/zone"
	"github.com/okian/goalkeep/pkg/logger"
	"github.com/okian/goalkeep/pkg/metrics"
)

// Shot defaults for assessments that do not pin the full context.
const (
	DefaultDistanceM        = 9.0
	DefaultMinute           = 30
	DefaultPenaltyDistanceM = 7.0
)

// Assessment kinds, used for stats and metrics.
const (
	KindTimeout  = "timeout"
	KindPreGame  = "pregame"
	KindTraining = "training"
)

// Service implements the API dependencies for goalkeeper decisions.
type Service struct {
	repo    repository.Repository
	builder *grid.Builder
	scorer  *scoring.Scorer
	engine  *tactics.Engine

	// Configuration
	zoneConcurrency   int
	rosterConcurrency int
	queryTimeout      time.Duration
	penaltyDistanceM  float64
	engineOpts        []tactics.Option

	// State
	startedAt   time.Time
	mu          sync.Mutex
	assessments map[string]int64
	degraded    atomic.Int64
	failed      atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithZoneConcurrency bounds in-flight oracle queries per grid.
func WithZoneConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.zoneConcurrency = n
		}
	}
}

// WithRosterConcurrency bounds goalkeepers evaluated at once.
func WithRosterConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.rosterConcurrency = n
		}
	}
}

// WithQueryTimeout bounds a single oracle query.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.queryTimeout = d
		}
	}
}

// WithPenaltyDistance sets the shot distance used for penalty rankings.
func WithPenaltyDistance(m float64) Option {
	return func(s *Service) {
		if m > 0 {
			s.penaltyDistanceM = m
		}
	}
}

// WithTacticsOptions passes rule thresholds through to the tactics engine.
func WithTacticsOptions(opts ...tactics.Option) Option {
	return func(s *Service) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// New constructs a Service around a repository and a save-probability oracle.
func New(repo repository.Repository, predictor grid.Predictor, opts ...Option) *Service {
	s := &Service{
		repo:              repo,
		zoneConcurrency:   zone.Count,
		rosterConcurrency: 4,
		penaltyDistanceM:  DefaultPenaltyDistanceM,
		assessments:       make(map[string]int64, 3),
		startedAt:         time.Now(),
		logger:            logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	gridOpts := []grid.Option{
		grid.WithLogger(s.logger.Named("grid")),
		grid.WithMaxConcurrency(s.zoneConcurrency),
	}
	if s.queryTimeout > 0 {
		gridOpts = append(gridOpts, grid.WithQueryTimeout(s.queryTimeout))
	}
	s.builder = grid.NewBuilder(predictor, gridOpts...)
	s.scorer = scoring.NewScorer(scoring.WithLogger(s.logger.Named("scoring")))
	s.engine = tactics.NewEngine(s.engineOpts...)
	return s
}

// Goalkeepers returns the roster.
func (s *Service) Goalkeepers(ctx context.Context) ([]model.Goalkeeper, error) {
	gks, err := s.repo.Goalkeepers(ctx)
	if err != nil {
		return nil, err
	}
	metrics.UpdateRosterSize(len(gks))
	return gks, nil
}

// Opponents returns the opponents ordered by league ranking.
func (s *Service) Opponents(ctx context.Context) ([]model.Opponent, error) {
	return s.repo.Opponents(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.Lock()
	byKind := make(map[string]int64, len(s.assessments))
	var total int64
	for k, v := range s.assessments {
		byKind[k] = v
		total += v
	}
	s.mu.Unlock()

	return map[string]any{
		"uptimeSeconds":       int64(time.Since(s.startedAt).Seconds()),
		"assessments":         total,
		"assessmentsByKind":   byKind,
		"degradedAssessments": s.degraded.Load(),
		"failedAssessments":   s.failed.Load(),
		"zoneConcurrency":     s.zoneConcurrency,
		"rosterConcurrency":   s.rosterConcurrency,
	}
}

// track records the outcome of one assessment. It is deferred by every
// assessment entry point.
func (s *Service) track(ctx context.Context, kind string, start time.Time, degraded *bool, err *error) {
	elapsed := time.Since(start)
	if *err != nil {
		s.failed.Add(1)
		metrics.RecordErrorByComponent("service", kind)
		s.logger.Debug(ctx, "assessment failed", logger.String("kind", kind), logger.Error(*err))
		return
	}
	s.mu.Lock()
	s.assessments[kind]++
	s.mu.Unlock()
	if *degraded {
		s.degraded.Add(1)
	}
	metrics.RecordAssessment(kind, float64(elapsed.Microseconds())/1000.0)
	s.logger.Info(ctx, "assessment completed",
		logger.String("kind", kind),
		logger.Duration("elapsed", elapsed),
		logger.Bool("degraded", *degraded),
	)
}

// evaluation is one goalkeeper's grid and score for a fixed opponent and shot.
type evaluation struct {
	result grid.Result
	score  scoring.Result
}

// evaluate builds and scores the grid of every goalkeeper. The returned
// candidates keep roster order. Zone failures degrade a candidate but never
// fail the call; only an invalid shot context does.
func (s *Service) evaluate(ctx context.Context, gks []model.Goalkeeper, attack zone.Grid, shot model.ShotContext) ([]ranking.Candidate, bool, error) {
	if err := shot.Validate(); err != nil {
		return nil, false, err
	}

	evals := make([]evaluation, len(gks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.rosterConcurrency)
	for i, gk := range gks {
		g.Go(func() error {
			res, err := s.builder.Build(gctx, gk, shot)
			if err != nil {
				return err
			}
			evals[i] = evaluation{result: res, score: s.scorer.Score(gctx, gk.ID, res.Grid, attack)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	degraded := false
	cands := make([]ranking.Candidate, len(gks))
	for i, gk := range gks {
		e := evals[i]
		d := e.result.IsDegraded() || e.score.Fallback
		degraded = degraded || d
		cands[i] = ranking.Candidate{
			Goalkeeper: gk,
			Score:      e.score.Score,
			Grid:       e.result.Grid,
			Degraded:   d,
		}
	}
	return cands, degraded, nil
}

func (s *Service) roster(ctx context.Context) ([]model.Goalkeeper, error) {
	gks, err := s.repo.Goalkeepers(ctx)
	if err != nil {
		return nil, err
	}
	if len(gks) == 0 {
		return nil, ErrEmptyRoster
	}
	metrics.UpdateRosterSize(len(gks))
	return gks, nil
}

func newAssessmentID() string { return uuid.NewString() }

// clampSpeed keeps a scouted mean shot speed inside the accepted range so
// it can seed a default shot context.
func clampSpeed(kmh float64) float64 {
	return min(max(kmh, 70), 120)
}
