package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/goalkeep/internal/domain/model"
	"github.com/okian/goalkeep/internal/domain/profile"
	"github.com/okian/goalkeep/internal/domain/ranking"
	"github.com/okian/goalkeep/internal/domain/zone"
)

// PreGameRequest asks for the pre-game view of an opponent. A nil Shot
// defaults to DefaultDistanceM at the opponent's mean shot speed, minute
// DefaultMinute and a level score. WhatIf, when set, ranks the roster a
// second time for comparison.
type PreGameRequest struct {
	OpponentID string             `json:"opponent_id" validate:"required"`
	Shot       *model.ShotContext `json:"shot,omitempty"`
	WhatIf     *model.ShotContext `json:"what_if,omitempty"`
}

// OpponentProfile is the scouting half of the pre-game view.
type OpponentProfile struct {
	Opponent      model.Opponent  `json:"opponent"`
	AttackGrid    zone.Grid       `json:"attack_grid"`
	Normalized    zone.Grid       `json:"normalized"`
	PreferredZone zone.Index      `json:"preferred_zone"`
	Alerts        []profile.Alert `json:"alerts"`
}

// WhatIfReport is the roster ranked under an alternative shot context.
type WhatIfReport struct {
	Shot       model.ShotContext `json:"shot"`
	Ranking    ranking.Ranking   `json:"ranking"`
	Comparison ranking.Scenario  `json:"comparison"`
}

// PreGameReport ranks the whole roster with no goalkeeper on court.
type PreGameReport struct {
	AssessmentID string               `json:"assessment_id"`
	GeneratedAt  time.Time            `json:"generated_at"`
	Profile      OpponentProfile      `json:"profile"`
	Shot         model.ShotContext    `json:"shot"`
	Ranking      ranking.Ranking      `json:"ranking"`
	Margin       *ranking.Margin      `json:"margin,omitempty"`
	ZoneLeaders  []ranking.ZoneLeader `json:"zone_leaders"`
	WhatIf       *WhatIfReport        `json:"what_if,omitempty"`
	Degraded     bool                 `json:"degraded"`
}

// DefaultShot is the shot context used when a caller gives none.
func DefaultShot(op model.Opponent) model.ShotContext {
	return model.ShotContext{
		DistanceM: DefaultDistanceM,
		SpeedKMH:  clampSpeed(op.ShotSpeedKMH),
		Minute:    DefaultMinute,
	}
}

// PreGame profiles the opponent and ranks the roster against it.
func (s *Service) PreGame(ctx context.Context, req PreGameRequest) (rep PreGameReport, err error) {
	start := time.Now()
	degraded := false
	defer s.track(ctx, KindPreGame, start, &degraded, &err)

	if req.OpponentID == "" {
		return PreGameReport{}, fmt.Errorf("%w: opponent_id is required", ErrInvalidRequest)
	}
	op, err := s.repo.Opponent(ctx, req.OpponentID)
	if err != nil {
		return PreGameReport{}, err
	}
	attack, err := profile.Build(op)
	if err != nil {
		return PreGameReport{}, err
	}

	shot := DefaultShot(op)
	if req.Shot != nil {
		shot = *req.Shot
	}
	if err := shot.Validate(); err != nil {
		return PreGameReport{}, err
	}
	if req.WhatIf != nil {
		if err := req.WhatIf.Validate(); err != nil {
			return PreGameReport{}, fmt.Errorf("what_if: %w", err)
		}
	}

	gks, err := s.roster(ctx)
	if err != nil {
		return PreGameReport{}, err
	}
	cands, deg, err := s.evaluate(ctx, gks, attack, shot)
	if err != nil {
		return PreGameReport{}, err
	}
	rk, err := ranking.Rank(cands, "")
	if err != nil {
		return PreGameReport{}, err
	}
	degraded = deg

	rep = PreGameReport{
		AssessmentID: newAssessmentID(),
		GeneratedAt:  time.Now().UTC(),
		Profile: OpponentProfile{
			Opponent:      op,
			AttackGrid:    attack,
			Normalized:    profile.Normalized(attack),
			PreferredZone: profile.StrongestZone(attack),
			Alerts:        profile.Alerts(op),
		},
		Shot:        shot,
		Ranking:     rk,
		Margin:      ranking.LeaderMargin(rk),
		ZoneLeaders: ranking.ZoneLeaders(rk.Entries),
	}

	if req.WhatIf != nil {
		alt, altDegraded, err := s.evaluate(ctx, gks, attack, *req.WhatIf)
		if err != nil {
			return PreGameReport{}, err
		}
		altRank, err := ranking.Rank(alt, "")
		if err != nil {
			return PreGameReport{}, err
		}
		rep.WhatIf = &WhatIfReport{
			Shot:       *req.WhatIf,
			Ranking:    altRank,
			Comparison: ranking.CompareLeaders(rk, altRank),
		}
		degraded = degraded || altDegraded
	}
	rep.Degraded = degraded
	return rep, nil
}
