// Package scoring reduces a save-probability grid and an opponent attack grid
// to a single compatibility score.
package scoring

import (
	"context"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/goalkeep/internal/domain/zone"
	"github.com/okian/goalkeep/pkg/logger"
	"github.com/okian/goalkeep/pkg/metrics"
)

// Result is a compatibility score. Fallback is set when the attack grid had
// no mass and the score is the unweighted mean of the probabilities.
type Result struct {
	Score    float64 `json:"score"`
	Fallback bool    `json:"fallback"`
}

// Compatibility returns the attack-weighted mean save probability.
// Weights are attack[i]/sum(attack); a zero sum falls back to the plain mean.
func Compatibility(probs, attack zone.Grid) Result {
	total := floats.Sum(attack[:])
	if total <= 0 {
		return Result{Score: stat.Mean(probs[:], nil), Fallback: true}
	}
	// stat.Mean normalises by the weight sum.
	return Result{Score: stat.Mean(probs[:], attack[:])}
}

// Scorer wraps Compatibility and reports fallback computations.
type Scorer struct {
	log logger.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithLogger sets the logger used to report fallback scores.
func WithLogger(l logger.Logger) Option {
	return func(s *Scorer) {
		if l != nil {
			s.log = l
		}
	}
}

// NewScorer creates a Scorer.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the compatibility of one goalkeeper grid against an attack grid.
func (s *Scorer) Score(ctx context.Context, goalkeeperID string, probs, attack zone.Grid) Result {
	res := Compatibility(probs, attack)
	if res.Fallback {
		metrics.RecordAttackGridFallback()
		s.log.Warn(ctx, "attack grid is empty, using unweighted mean",
			logger.String("goalkeeper", goalkeeperID),
			logger.Float64("score", res.Score),
		)
	}
	return res
}
