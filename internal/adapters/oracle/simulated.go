// Package oracle provides save-probability oracles: an in-process simulated
// model and a client for a remote model server.
package oracle

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/okian/goalkeep/internal/domain/model"
	"github.com/okian/goalkeep/internal/domain/zone"
)

// Game phases derived from the match minute.
const (
	PhaseStart = "start"
	PhaseMid1  = "mid_1"
	PhaseMid2  = "mid_2"
	PhaseFinal = "final"
)

// Phase maps a match minute to its game phase.
func Phase(minute int) string {
	switch {
	case minute <= 15:
		return PhaseStart
	case minute <= 30:
		return PhaseMid1
	case minute <= 45:
		return PhaseMid2
	default:
		return PhaseFinal
	}
}

// Reference physique the simulated model is centred on.
const (
	refDistanceM     = 9.0
	refSpeedKMH      = 95.0
	refHeightCM      = 188.0
	refLateralSpeedM = 3.8
	minSimulated     = 1.0
	maxSimulated     = 99.0
)

// baseline save probability per zone at the reference context.
var baseline = zone.Grid{
	42, 58, 42,
	55, 72, 55,
	38, 52, 38,
}

var phaseAdjust = map[string]float64{
	PhaseStart: 1.5,
	PhaseMid1:  1.0,
	PhaseMid2:  0,
	PhaseFinal: -2.0,
}

// Simulated is a deterministic save model for demos and tests. It is safe
// for concurrent use.
type Simulated struct {
	minLatency time.Duration
	maxLatency time.Duration
}

// SimOption configures a Simulated oracle.
type SimOption func(*Simulated)

// WithLatencyRange makes each query sleep a random duration in [min, max).
func WithLatencyRange(minLatency, maxLatency time.Duration) SimOption {
	return func(s *Simulated) {
		if minLatency >= 0 && maxLatency > minLatency {
			s.minLatency = minLatency
			s.maxLatency = maxLatency
		}
	}
}

// NewSimulated creates a simulated oracle without latency.
func NewSimulated(opts ...SimOption) *Simulated {
	s := &Simulated{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PredictSave returns a save probability rounded to one decimal.
func (s *Simulated) PredictSave(ctx context.Context, q model.SaveQuery) (float64, error) {
	if s.maxLatency > 0 {
		latency := s.minLatency + rand.N(s.maxLatency-s.minLatency)
		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(latency):
		}
	}

	z, err := zone.FromOracleID(q.Zone)
	if err != nil {
		return 0, fmt.Errorf("%w: %d", ErrInvalidZone, q.Zone)
	}

	p := baseline[z]
	p += (q.DistanceM - refDistanceM) * 3.0
	p -= (q.SpeedKMH - refSpeedKMH) * 0.6

	height := float64(q.HeightCM) - refHeightCM
	reach := float64(q.SpanCM - q.HeightCM)
	lateral := q.LateralSpeedM - refLateralSpeedM
	switch z.Row() {
	case zone.Top:
		p += height*0.6 + reach*0.3
	case zone.Bottom:
		p -= height * 0.2
	}
	if z.Column() != zone.Center {
		p += lateral*9.0 + reach*0.2
	}

	p += phaseAdjust[Phase(q.Minute)]
	// pressure of a close game late on
	if q.Minute > 45 && q.ScoreDiff >= -2 && q.ScoreDiff <= 2 {
		p -= 1.0
	}

	p = math.Max(minSimulated, math.Min(maxSimulated, p))
	return math.Round(p*10) / 10, nil
}
