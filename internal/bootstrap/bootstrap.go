// Package bootstrap builds the service dependencies named by a Config. It is
// shared by the HTTP server and the operator CLI.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/goalkeep/internal/adapters/oracle"
	"github.com/okian/goalkeep/internal/adapters/repository"
	service "github.com/okian/goalkeep/internal/app"
	"github.com/okian/goalkeep/internal/config"
	"github.com/okian/goalkeep/internal/domain/grid"
	"github.com/okian/goalkeep/pkg/logger"
)

// breakerOpenFor is how long a tripped oracle breaker stays open.
const breakerOpenFor = 10 * time.Second

// Repository opens the configured store. An empty db_path serves the demo
// roster from memory. The returned close func is never nil.
func Repository(ctx context.Context, cfg *config.Config) (repository.Repository, func() error, error) {
	if cfg.DBPath == "" {
		store, err := repository.NewMemoryStore(repository.DemoGoalkeepers(), repository.DemoOpponents())
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	}

	store, err := repository.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return store, store.Close, nil
}

// Predictor builds the configured save-probability oracle.
func Predictor(cfg *config.Config, log logger.Logger) (grid.Predictor, error) {
	switch cfg.OracleMode {
	case config.OracleSimulated:
		return oracle.NewSimulated(oracle.WithLatencyRange(
			time.Duration(cfg.OracleLatencyMinMS)*time.Millisecond,
			time.Duration(cfg.OracleLatencyMaxMS)*time.Millisecond,
		)), nil
	case config.OracleHTTP:
		return oracle.NewHTTP(cfg.OracleURL,
			oracle.WithTimeout(cfg.OracleTimeout()),
			oracle.WithRateLimit(cfg.OracleRatePerSec, int(max(cfg.OracleRatePerSec, 1))),
			oracle.WithBreaker(uint32(cfg.OracleBreakerFailures), breakerOpenFor),
			oracle.WithHTTPLogger(log.Named("oracle")),
		), nil
	default:
		return nil, fmt.Errorf("%w: oracle_mode %q", config.ErrInvalidConfig, cfg.OracleMode)
	}
}

// Service wires a Service from the config. The returned close func releases
// the repository.
func Service(ctx context.Context, cfg *config.Config, log logger.Logger) (*service.Service, func() error, error) {
	repo, closeRepo, err := Repository(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("repository: %w", err)
	}
	predictor, err := Predictor(cfg, log)
	if err != nil {
		_ = closeRepo()
		return nil, nil, err
	}
	svc := service.New(repo, predictor,
		service.WithLogger(log.Named("service")),
		service.WithZoneConcurrency(cfg.ZoneConcurrency),
		service.WithRosterConcurrency(cfg.RosterConcurrency),
		service.WithQueryTimeout(cfg.OracleTimeout()),
		service.WithPenaltyDistance(cfg.PenaltyDistanceM),
	)
	return svc, closeRepo, nil
}
