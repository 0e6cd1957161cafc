// Package grid builds per-zone save-probability grids by querying an oracle
// once for every zone of the goal.
package grid

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/goalkeep/internal/domain/model"
	"github.com/okian/goalkeep/internal/domain/zone"
	"github.com/okian/goalkeep/pkg/logger"
	"github.com/okian/goalkeep/pkg/metrics"
)

// Neutral is the probability substituted for a zone whose query failed.
const Neutral = 50.0

const (
	minProbability = 0.0
	maxProbability = 100.0
)

// Predictor returns the save probability, in percent, for one query.
// Implementations must be safe for concurrent use.
type Predictor interface {
	PredictSave(ctx context.Context, q model.SaveQuery) (float64, error)
}

// PredictorFunc adapts a function to the Predictor interface.
type PredictorFunc func(ctx context.Context, q model.SaveQuery) (float64, error)

// PredictSave calls f.
func (f PredictorFunc) PredictSave(ctx context.Context, q model.SaveQuery) (float64, error) {
	return f(ctx, q)
}

// Result is a save-probability grid plus the zones that were defaulted.
type Result struct {
	Grid     zone.Grid        `json:"grid"`
	Degraded [zone.Count]bool `json:"degraded"`
}

// Probabilities returns the flat, row-major probability list.
func (r Result) Probabilities() []float64 { return r.Grid.Slice() }

// Failures returns how many zones fell back to Neutral.
func (r Result) Failures() int {
	n := 0
	for _, d := range r.Degraded {
		if d {
			n++
		}
	}
	return n
}

// IsDegraded reports whether any zone fell back to Neutral.
func (r Result) IsDegraded() bool { return r.Failures() > 0 }

// Builder issues the nine per-zone oracle queries for a goalkeeper.
type Builder struct {
	predictor      Predictor
	log            logger.Logger
	maxConcurrency int
	queryTimeout   time.Duration
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used to report degraded zones.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// WithMaxConcurrency bounds in-flight oracle queries per grid.
func WithMaxConcurrency(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.maxConcurrency = n
		}
	}
}

// WithQueryTimeout bounds each oracle query. Zero leaves queries bounded only
// by the caller's context.
func WithQueryTimeout(d time.Duration) Option {
	return func(b *Builder) {
		if d > 0 {
			b.queryTimeout = d
		}
	}
}

// NewBuilder creates a Builder around the given oracle.
func NewBuilder(p Predictor, opts ...Option) *Builder {
	b := &Builder{
		predictor:      p,
		log:            logger.Nop(),
		maxConcurrency: zone.Count,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the save-probability grid of gk under shot. An invalid shot
// context is returned as an error; a failed zone query never is. Failed zones
// read Neutral and are flagged in Result.Degraded.
func (b *Builder) Build(ctx context.Context, gk model.Goalkeeper, shot model.ShotContext) (Result, error) {
	if err := shot.Validate(); err != nil {
		return Result{}, err
	}

	var res Result
	// A plain group: one zone failing must not cancel its siblings.
	var g errgroup.Group
	g.SetLimit(b.maxConcurrency)
	for _, z := range zone.All() {
		g.Go(func() error {
			p, err := b.query(ctx, z, gk, shot)
			if err != nil {
				res.Grid[z] = Neutral
				res.Degraded[z] = true
				metrics.RecordZoneFallback(strconv.Itoa(int(z)))
				b.log.Warn(ctx, "zone query failed, using neutral probability",
					logger.String("goalkeeper", gk.ID),
					logger.Int("zone", int(z)),
					logger.Error(err),
				)
				return nil
			}
			res.Grid[z] = p
			return nil
		})
	}
	_ = g.Wait()

	return res, nil
}

func (b *Builder) query(ctx context.Context, z zone.Index, gk model.Goalkeeper, shot model.ShotContext) (p float64, err error) {
	if b.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.queryTimeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrOraclePanic, r)
		}
		metrics.RecordOracleLatency(float64(time.Since(start).Microseconds()) / 1000.0)
		switch {
		case err == nil:
			metrics.RecordOracleQuery("ok")
		case isMalformed(err):
			metrics.RecordOracleQuery("malformed")
		default:
			metrics.RecordOracleQuery("error")
		}
	}()

	p, err = b.predictor.PredictSave(ctx, model.NewSaveQuery(z.OracleID(), gk, shot))
	if err != nil {
		return 0, err
	}
	if math.IsNaN(p) || p < minProbability || p > maxProbability {
		return 0, fmt.Errorf("%w: %v for zone %d", ErrMalformedProbability, p, z.OracleID())
	}
	return p, nil
}
