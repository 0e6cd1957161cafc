// Package ranking orders goalkeepers by compatibility score and classifies
// the gap between the best candidate and the goalkeeper on court.
package ranking

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/okian/goalkeep/internal/domain/model"
	"github.com/okian/goalkeep/internal/domain/zone"
)

// Tier is a substitution decision.
type Tier string

const (
	TierKeep     Tier = "keep"
	TierConsider Tier = "consider"
	TierSwap     Tier = "swap"
)

// Decision thresholds in percentage points. Empirical; kept as constants
// rather than per-call parameters.
const (
	SwapThreshold     = 5.0
	ConsiderThreshold = 2.0
)

// Candidate is one goalkeeper evaluated against an opponent and shot context.
type Candidate struct {
	Goalkeeper model.Goalkeeper
	Score      float64
	Grid       zone.Grid
	Degraded   bool
}

// Entry is a ranked candidate. Rank starts at 1.
type Entry struct {
	Rank       int              `json:"rank"`
	Goalkeeper model.Goalkeeper `json:"goalkeeper"`
	Score      float64          `json:"score"`
	Band       Band             `json:"band"`
	Grid       zone.Grid        `json:"grid"`
	Degraded   bool             `json:"degraded,omitempty"`
}

// Decision compares the best candidate with the goalkeeper on court.
type Decision struct {
	Tier      Tier    `json:"tier"`
	CurrentID string  `json:"current_id"`
	BestID    string  `json:"best_id"`
	Diff      float64 `json:"diff"`
	Reason    string  `json:"reason"`
}

// Ranking is the ordered roster plus an optional decision.
type Ranking struct {
	Entries  []Entry   `json:"entries"`
	Decision *Decision `json:"decision,omitempty"`
}

// Best returns the top entry, if any.
func (r Ranking) Best() (Entry, bool) {
	if len(r.Entries) == 0 {
		return Entry{}, false
	}
	return r.Entries[0], true
}

// Find returns the entry for a goalkeeper id.
func (r Ranking) Find(id string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Goalkeeper.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Rank orders candidates by descending score; equal scores keep roster
// order. When currentID is empty no decision is made.
func Rank(cands []Candidate, currentID string) (Ranking, error) {
	sorted := slices.Clone(cands)
	slices.SortStableFunc(sorted, func(a, b Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})

	r := Ranking{Entries: make([]Entry, len(sorted))}
	for i, c := range sorted {
		r.Entries[i] = Entry{
			Rank:       i + 1,
			Goalkeeper: c.Goalkeeper,
			Score:      c.Score,
			Band:       BandOf(c.Score),
			Grid:       c.Grid,
			Degraded:   c.Degraded,
		}
	}

	if currentID == "" || len(r.Entries) == 0 {
		return r, nil
	}
	current, ok := r.Find(currentID)
	if !ok {
		return Ranking{}, fmt.Errorf("%w: %q", ErrUnknownCurrent, currentID)
	}
	best := r.Entries[0]
	d := &Decision{CurrentID: currentID, BestID: best.Goalkeeper.ID}
	if best.Goalkeeper.ID == currentID {
		d.Tier = TierKeep
		d.Reason = "current goalkeeper is the best option"
	} else {
		d.Diff = best.Score - current.Score
		d.Tier = Classify(d.Diff)
		d.Reason = reason(d.Tier, best.Goalkeeper, d.Diff)
	}
	r.Decision = d
	return r, nil
}

// Classify maps the score gap between the best candidate and the current
// goalkeeper to a tier. Each boundary belongs to the lower tier.
func Classify(diff float64) Tier {
	switch {
	case diff > SwapThreshold:
		return TierSwap
	case diff > ConsiderThreshold:
		return TierConsider
	default:
		return TierKeep
	}
}

func reason(t Tier, best model.Goalkeeper, diff float64) string {
	switch t {
	case TierSwap:
		return fmt.Sprintf("substitute: %s is %.1f points better", best.Name, diff)
	case TierConsider:
		return fmt.Sprintf("consider %s: %.1f points better, use judgement", best.Name, diff)
	default:
		return fmt.Sprintf("difference negligible (%.1f points)", diff)
	}
}
