package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/goalkeep/internal/domain/model"
	"github.com/okian/goalkeep/internal/domain/profile"
	"github.com/okian/goalkeep/internal/domain/ranking"
	"github.com/okian/goalkeep/internal/domain/tactics"
	"github.com/okian/goalkeep/internal/domain/zone"
	"github.com/okian/goalkeep/pkg/metrics"
)

// TimeoutRequest asks for an in-game decision. CurrentID may be empty when no
// goalkeeper is on court yet; PenaltySpeedKMH > 0 adds a penalty ranking.
type TimeoutRequest struct {
	OpponentID      string            `json:"opponent_id" validate:"required"`
	CurrentID       string            `json:"current_id"`
	Shot            model.ShotContext `json:"shot"`
	PenaltySpeedKMH float64           `json:"penalty_speed_kmh,omitempty" validate:"omitempty,gte=70,lte=120"`
}

// KeeperFocus is the goalkeeper the tactical advice is written for.
type KeeperFocus struct {
	GoalkeeperID string     `json:"goalkeeper_id"`
	StrongZone   zone.Index `json:"strong_zone"`
	WeakZone     zone.Index `json:"weak_zone"`
	Grid         zone.Grid  `json:"grid"`
}

// TimeoutReport is the full in-game decision.
type TimeoutReport struct {
	AssessmentID       string                   `json:"assessment_id"`
	GeneratedAt        time.Time                `json:"generated_at"`
	Opponent           model.Opponent           `json:"opponent"`
	AttackGrid         zone.Grid                `json:"attack_grid"`
	OpponentStrongZone zone.Index               `json:"opponent_strong_zone"`
	Shot               model.ShotContext        `json:"shot"`
	Ranking            ranking.Ranking          `json:"ranking"`
	Keeper             KeeperFocus              `json:"keeper"`
	Recommendations    []tactics.Recommendation `json:"recommendations"`
	Penalty            *ranking.Ranking         `json:"penalty,omitempty"`
	Degraded           bool                     `json:"degraded"`
}

// Timeout ranks the roster for the current shot context, classifies the
// substitution decision against the goalkeeper on court and derives tactical
// recommendations for that goalkeeper, or for the leader when none is on
// court.
func (s *Service) Timeout(ctx context.Context, req TimeoutRequest) (rep TimeoutReport, err error) {
	start := time.Now()
	degraded := false
	defer s.track(ctx, KindTimeout, start, &degraded, &err)

	if req.OpponentID == "" {
		return TimeoutReport{}, fmt.Errorf("%w: opponent_id is required", ErrInvalidRequest)
	}
	if err := req.Shot.Validate(); err != nil {
		return TimeoutReport{}, err
	}

	op, err := s.repo.Opponent(ctx, req.OpponentID)
	if err != nil {
		return TimeoutReport{}, err
	}
	attack, err := profile.Build(op)
	if err != nil {
		return TimeoutReport{}, err
	}
	gks, err := s.roster(ctx)
	if err != nil {
		return TimeoutReport{}, err
	}

	cands, deg, err := s.evaluate(ctx, gks, attack, req.Shot)
	if err != nil {
		return TimeoutReport{}, err
	}
	rk, err := ranking.Rank(cands, req.CurrentID)
	if err != nil {
		return TimeoutReport{}, err
	}
	degraded = deg

	focus, _ := rk.Best()
	if req.CurrentID != "" {
		focus, _ = rk.Find(req.CurrentID)
	}
	keeper := KeeperFocus{
		GoalkeeperID: focus.Goalkeeper.ID,
		StrongZone:   focus.Grid.ArgMax(),
		WeakZone:     focus.Grid.ArgMin(),
		Grid:         focus.Grid,
	}
	strong := profile.StrongestZone(attack)

	recs, err := s.engine.Recommend(tactics.Input{
		OpponentStrongZone: strong,
		KeeperWeakZone:     keeper.WeakZone,
		Minute:             req.Shot.Minute,
		ScoreDiff:          req.Shot.ScoreDiff,
		Probabilities:      focus.Grid,
		OpponentShotSpeed:  op.ShotSpeedKMH,
	})
	if err != nil {
		return TimeoutReport{}, err
	}
	for _, r := range recs {
		metrics.RecordRecommendation(string(r.Priority))
	}
	if rk.Decision != nil {
		metrics.RecordDecisionTier(string(rk.Decision.Tier))
	}

	rep = TimeoutReport{
		AssessmentID:       newAssessmentID(),
		GeneratedAt:        time.Now().UTC(),
		Opponent:           op,
		AttackGrid:         attack,
		OpponentStrongZone: strong,
		Shot:               req.Shot,
		Ranking:            rk,
		Keeper:             keeper,
		Recommendations:    recs,
	}

	if req.PenaltySpeedKMH > 0 {
		pen, penDegraded, err := s.penalty(ctx, gks, attack, req)
		if err != nil {
			return TimeoutReport{}, err
		}
		rep.Penalty = &pen
		degraded = degraded || penDegraded
	}
	rep.Degraded = degraded
	return rep, nil
}

// penalty ranks the roster for a shot from the penalty mark at the given
// speed. Minute and score keep the in-game values.
func (s *Service) penalty(ctx context.Context, gks []model.Goalkeeper, attack zone.Grid, req TimeoutRequest) (ranking.Ranking, bool, error) {
	shot := req.Shot
	shot.DistanceM = s.penaltyDistanceM
	shot.SpeedKMH = req.PenaltySpeedKMH
	cands, degraded, err := s.evaluate(ctx, gks, attack, shot)
	if err != nil {
		return ranking.Ranking{}, false, fmt.Errorf("penalty: %w", err)
	}
	rk, err := ranking.Rank(cands, req.CurrentID)
	if err != nil {
		return ranking.Ranking{}, false, err
	}
	return rk, degraded, nil
}
