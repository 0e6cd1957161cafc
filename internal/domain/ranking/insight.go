package ranking

import "github.com/okian/goalkeep/internal/domain/zone"

// Band is a traffic-light reading of a compatibility score.
type Band string

const (
	BandStrong Band = "strong"
	BandFair   Band = "fair"
	BandWeak   Band = "weak"
)

// Band thresholds.
const (
	StrongScore = 55.0
	FairScore   = 45.0
)

// BandOf classifies a score.
func BandOf(score float64) Band {
	switch {
	case score >= StrongScore:
		return BandStrong
	case score >= FairScore:
		return BandFair
	default:
		return BandWeak
	}
}

// MarginLevel qualifies the lead of the top-ranked goalkeeper.
type MarginLevel string

const (
	MarginClear      MarginLevel = "clear"
	MarginSlight     MarginLevel = "slight"
	MarginNegligible MarginLevel = "negligible"
)

// Margin is the gap between the first and second ranked goalkeepers.
type Margin struct {
	LeaderID   string      `json:"leader_id"`
	RunnerUpID string      `json:"runner_up_id"`
	Diff       float64     `json:"diff"`
	Level      MarginLevel `json:"level"`
}

// LeaderMargin describes the lead of rank 1 over rank 2. It returns nil for
// rosters with fewer than two entries. Uses the same thresholds as Classify.
func LeaderMargin(r Ranking) *Margin {
	if len(r.Entries) < 2 {
		return nil
	}
	first, second := r.Entries[0], r.Entries[1]
	m := &Margin{
		LeaderID:   first.Goalkeeper.ID,
		RunnerUpID: second.Goalkeeper.ID,
		Diff:       first.Score - second.Score,
	}
	switch {
	case m.Diff > SwapThreshold:
		m.Level = MarginClear
	case m.Diff > ConsiderThreshold:
		m.Level = MarginSlight
	default:
		m.Level = MarginNegligible
	}
	return m
}

// Scenario compares the leader of a base ranking with an alternative one,
// e.g. the same roster under a different shot context.
type Scenario struct {
	BaseLeaderID string  `json:"base_leader_id"`
	AltLeaderID  string  `json:"alt_leader_id"`
	Changed      bool    `json:"changed"`
	ScoreDelta   float64 `json:"score_delta"`
}

// CompareLeaders reports whether the top goalkeeper changes between rankings.
func CompareLeaders(base, alt Ranking) Scenario {
	b, okB := base.Best()
	a, okA := alt.Best()
	s := Scenario{}
	if okB {
		s.BaseLeaderID = b.Goalkeeper.ID
	}
	if okA {
		s.AltLeaderID = a.Goalkeeper.ID
	}
	s.Changed = s.BaseLeaderID != s.AltLeaderID
	if okA && okB {
		s.ScoreDelta = a.Score - b.Score
	}
	return s
}

// ZoneLeader names the best and worst goalkeeper for one zone.
type ZoneLeader struct {
	Zone      zone.Index `json:"zone"`
	BestID    string     `json:"best_id"`
	BestProb  float64    `json:"best_prob"`
	WorstID   string     `json:"worst_id"`
	WorstProb float64    `json:"worst_prob"`
	Spread    float64    `json:"spread"`
}

// ZoneLeaders returns, per zone, the strongest and weakest goalkeeper of the
// ranking. Ties go to the higher-ranked entry. Empty input yields nil.
func ZoneLeaders(entries []Entry) []ZoneLeader {
	if len(entries) == 0 {
		return nil
	}
	out := make([]ZoneLeader, zone.Count)
	for _, z := range zone.All() {
		zl := ZoneLeader{
			Zone:      z,
			BestID:    entries[0].Goalkeeper.ID,
			BestProb:  entries[0].Grid[z],
			WorstID:   entries[0].Goalkeeper.ID,
			WorstProb: entries[0].Grid[z],
		}
		for _, e := range entries[1:] {
			p := e.Grid[z]
			if p > zl.BestProb {
				zl.BestID, zl.BestProb = e.Goalkeeper.ID, p
			}
			if p < zl.WorstProb {
				zl.WorstID, zl.WorstProb = e.Goalkeeper.ID, p
			}
		}
		zl.Spread = zl.BestProb - zl.WorstProb
		out[z] = zl
	}
	return out
}
