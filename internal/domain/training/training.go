// Package training ranks goal zones by weakness and turns the ranking into
// drills and a weekly plan.
package training

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/okian/goalkeep/internal/domain/zone"
)

// Mode selects the ranking metric.
type Mode string

const (
	// MatchPrep weighs weakness by how often the opponent shoots there.
	MatchPrep Mode = "match_prep"
	// Development ranks by raw weakness, ignoring the opponent.
	Development Mode = "development"
)

// FocusCount is the number of zones a plan works on.
const FocusCount = 3

// Urgency labels a zone by its save probability.
type Urgency string

const (
	UrgencyCritical  Urgency = "critical"
	UrgencyImportant Urgency = "important"
	UrgencyAttention Urgency = "attention"
)

// Probability thresholds shared by Urgency and SessionMinutes.
const (
	criticalBelow  = 35.0
	importantBelow = 45.0
)

// improvementRate converts the summed deficit of the focus zones into an
// expected gain in percentage points.
const improvementRate = 0.1

// PriorityZone is one zone with its ranking metric.
type PriorityZone struct {
	Zone        zone.Index `json:"zone"`
	Probability float64    `json:"probability"`
	Attack      float64    `json:"attack"`
	Risk        float64    `json:"risk"`
}

// ParseMode validates a mode name; empty means MatchPrep.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", MatchPrep:
		return MatchPrep, nil
	case Development:
		return Development, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Prioritize returns all nine zones sorted by descending risk. Equal risks
// keep zone order. An unknown mode ranks as MatchPrep.
func Prioritize(probs, attack zone.Grid, mode Mode) []PriorityZone {
	out := make([]PriorityZone, zone.Count)
	for _, z := range zone.All() {
		p := probs[z]
		risk := 100 - p
		if mode != Development {
			risk = (100 - p) * attack[z] / 100
		}
		out[z] = PriorityZone{Zone: z, Probability: p, Attack: attack[z], Risk: risk}
	}
	slices.SortStableFunc(out, func(a, b PriorityZone) int {
		return cmp.Compare(b.Risk, a.Risk)
	})
	return out
}

// Top returns the first n entries, or all when fewer.
func Top(list []PriorityZone, n int) []PriorityZone {
	if n > len(list) {
		n = len(list)
	}
	return slices.Clone(list[:n])
}

// SessionMinutes is the drill time assigned to a zone.
func SessionMinutes(p float64) int {
	switch {
	case p < criticalBelow:
		return 30
	case p < importantBelow:
		return 25
	default:
		return 20
	}
}

// UrgencyOf labels a zone probability.
func UrgencyOf(p float64) Urgency {
	switch {
	case p < criticalBelow:
		return UrgencyCritical
	case p < importantBelow:
		return UrgencyImportant
	default:
		return UrgencyAttention
	}
}

// ExpectedImprovement estimates the gain from working on the given zones.
func ExpectedImprovement(focus []PriorityZone) float64 {
	var deficit float64
	for _, f := range focus {
		deficit += 100 - f.Probability
	}
	return deficit * improvementRate
}
