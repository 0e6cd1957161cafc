// Package tactics turns zone probabilities and match context into an ordered
// list of positioning recommendations.
//
// Five rule groups are evaluated independently and concatenated in a fixed
// order: critical alert, lateral positioning, vertical positioning, weak-zone
// compensation and game context. Output is fully determined by the input.
package tactics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/goalkeep/internal/domain/zone"
)

// Priority of a recommendation.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Category groups recommendations by the rule that produced them.
type Category string

const (
	CategoryAlert        Category = "alert"
	CategoryLateral      Category = "lateral"
	CategoryVertical     Category = "vertical"
	CategoryCompensation Category = "compensation"
	CategoryContext      Category = "context"
)

// Default rule thresholds. Empirical values; an Engine may override the
// first two at construction.
const (
	DefaultSpeedThreshold = 95.0 // km/h, hard-shot escalation
	DefaultWeakThreshold  = 45.0 // %, weak-zone compensation
	LeadMargin            = 3    // goals, "heavily" losing or clearly winning
	LateMinute            = 50
	EarlyMinute           = 15
)

// Input is everything the rules look at.
type Input struct {
	OpponentStrongZone zone.Index
	KeeperWeakZone     zone.Index
	Minute             int
	ScoreDiff          int
	Probabilities      zone.Grid
	OpponentShotSpeed  float64
}

// Recommendation is one tactical directive.
type Recommendation struct {
	ID        DirectiveID `json:"id"`
	Category  Category    `json:"category"`
	Priority  Priority    `json:"priority"`
	Title     string      `json:"title"`
	Rationale string      `json:"rationale"`
}

// Engine evaluates the rule groups.
type Engine struct {
	speedThreshold float64
	weakThreshold  float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithSpeedThreshold overrides the hard-shot threshold in km/h.
func WithSpeedThreshold(kmh float64) Option {
	return func(e *Engine) {
		if kmh > 0 {
			e.speedThreshold = kmh
		}
	}
}

// WithWeakThreshold overrides the weak-zone probability threshold.
func WithWeakThreshold(pct float64) Option {
	return func(e *Engine) {
		if pct > 0 {
			e.weakThreshold = pct
		}
	}
}

// NewEngine creates an Engine with the default thresholds.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		speedThreshold: DefaultSpeedThreshold,
		weakThreshold:  DefaultWeakThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend evaluates all rule groups. Zone indices outside the grid are
// rejected.
func (e *Engine) Recommend(in Input) ([]Recommendation, error) {
	if !in.OpponentStrongZone.Valid() || !in.KeeperWeakZone.Valid() {
		return nil, fmt.Errorf("%w: strong=%d weak=%d", zone.ErrInvalidZone, in.OpponentStrongZone, in.KeeperWeakZone)
	}

	minProb := in.Probabilities.Min()
	fill := strings.NewReplacer(
		"{zone}", in.OpponentStrongZone.Name(),
		"{speed}", strconv.FormatFloat(in.OpponentShotSpeed, 'f', 0, 64),
		"{prob}", strconv.FormatFloat(minProb, 'f', 0, 64),
		"{height}", capitalize(in.KeeperWeakZone.Row().String()),
		"{side}", in.KeeperWeakZone.Column().String(),
	)

	var ids []DirectiveID
	if in.OpponentStrongZone == in.KeeperWeakZone {
		ids = append(ids, CriticalZone)
	}
	ids = append(ids, lateral(in.OpponentStrongZone))
	ids = append(ids, e.vertical(in.OpponentStrongZone, in.OpponentShotSpeed)...)
	if minProb < e.weakThreshold {
		ids = append(ids, CompensateWeak)
	}
	if id, ok := gameContext(in.ScoreDiff, in.Minute); ok {
		ids = append(ids, id)
	}

	out := make([]Recommendation, len(ids))
	for i, id := range ids {
		d := directives[id]
		out[i] = Recommendation{
			ID:        id,
			Category:  d.category,
			Priority:  d.priority,
			Title:     fill.Replace(d.title),
			Rationale: fill.Replace(d.rationale),
		}
	}
	return out, nil
}

func lateral(strong zone.Index) DirectiveID {
	switch strong.Column() {
	case zone.Left:
		return ShadeLeft
	case zone.Right:
		return ShadeRight
	default:
		return HoldCenter
	}
}

func (e *Engine) vertical(strong zone.Index, speed float64) []DirectiveID {
	hard := speed >= e.speedThreshold
	switch strong.Row() {
	case zone.Top:
		if hard {
			return []DirectiveID{RetreatHigh}
		}
		return []DirectiveID{NeutralHigh}
	case zone.Bottom:
		return []DirectiveID{AdvanceLow, ActiveLegs}
	default:
		if hard {
			return []DirectiveID{RetreatMid}
		}
		return []DirectiveID{NeutralMid}
	}
}

// gameContext picks at most one directive from mutually exclusive
// score-differential and minute bands.
func gameContext(diff, minute int) (DirectiveID, bool) {
	late := minute >= LateMinute
	switch {
	case diff <= -LeadMargin:
		return LosingHeavily, true
	case diff < 0 && late:
		return LosingLate, true
	case diff < 0:
		return Losing, true
	case diff > 0 && late: // any lead, however large
		return WinningLate, true
	case diff >= LeadMargin:
		return WinningClear, true
	case diff > 0:
		return Winning, true
	case late:
		return TiedLate, true
	case minute <= EarlyMinute:
		return TiedEarly, true
	default:
		return "", false
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
