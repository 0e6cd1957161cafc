// Package profile turns opponent scouting statistics into an attack grid.
package profile

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/okian/goalkeep/internal/domain/model"
	"github.com/okian/goalkeep/internal/domain/zone"
)

// Horizontal split of each band across (left, center, right). The ratios are
// empirical and kept as tunable package values.
var (
	HighSplit = [3]float64{0.28, 0.44, 0.28}
	MidSplit  = [3]float64{0.35, 0.30, 0.35}
	LowSplit  = [3]float64{0.30, 0.40, 0.30}
)

// Alert thresholds for the scouting summary.
const (
	FastShotKMH       = 100.0
	FastBreaksPerGame = 20.0
	FirstLineEfficacy = 65.0
	normalizedTotal   = 100.0
)

// Severity of a scouting alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Alert flags a notable trait of the opponent.
type Alert struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// AttackGrid distributes the opponent's band percentages over the nine zones.
// The result is not renormalised; all-zero bands yield an all-zero grid.
func AttackGrid(op model.Opponent) zone.Grid {
	var g zone.Grid
	bands := [3]struct {
		pct   float64
		split [3]float64
	}{
		{op.HighPct, HighSplit},
		{op.MidPct, MidSplit},
		{op.LowPct, LowSplit},
	}
	for row, b := range bands {
		for col, r := range b.split {
			g[row*3+col] = b.pct * r
		}
	}
	return g
}

// Build validates the opponent and returns its attack grid.
func Build(op model.Opponent) (zone.Grid, error) {
	if err := op.Validate(); err != nil {
		return zone.Grid{}, fmt.Errorf("opponent %q: %w", op.ID, err)
	}
	return AttackGrid(op), nil
}

// StrongestZone returns the zone the opponent shoots at most, first on ties.
func StrongestZone(g zone.Grid) zone.Index { return g.ArgMax() }

// Normalized rescales the grid to sum to 100 for display. A zero grid is
// returned unchanged.
func Normalized(g zone.Grid) zone.Grid {
	sum := g.Sum()
	if sum <= 0 {
		return g
	}
	out := g
	floats.Scale(normalizedTotal/sum, out[:])
	return out
}

// Alerts returns scouting alerts for the opponent in a fixed order.
func Alerts(op model.Opponent) []Alert {
	var out []Alert
	if op.ShotSpeedKMH > FastShotKMH {
		out = append(out, Alert{
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("very fast shots (%.0f km/h): favour reaction drills in warm-up", op.ShotSpeedKMH),
		})
	}
	if op.FastBreaksPerGame > FastBreaksPerGame {
		out = append(out, Alert{
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("many fast breaks (%.0f per game): keep the goalkeeper alert on transitions", op.FastBreaksPerGame),
		})
	}
	if op.FirstLineEfficacy > FirstLineEfficacy {
		out = append(out, Alert{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("efficient first line (%.0f%%): watch shots from 6 m", op.FirstLineEfficacy),
		})
	}
	return out
}
