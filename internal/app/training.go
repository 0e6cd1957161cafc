package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/goalkeep/internal/domain/model"
	"github.com/okian/goalkeep/internal/domain/profile"
	"github.com/okian/goalkeep/internal/domain/ranking"
	"github.com/okian/goalkeep/internal/domain/training"
	"github.com/okian/goalkeep/internal/domain/zone"
)

// TrainingRequest asks for a training plan for one goalkeeper ahead of an
// opponent. Zero DistanceM and SpeedKMH fall back to DefaultDistanceM and the
// opponent's mean shot speed.
type TrainingRequest struct {
	GoalkeeperID string  `json:"goalkeeper_id" validate:"required"`
	OpponentID   string  `json:"opponent_id" validate:"required"`
	Mode         string  `json:"mode,omitempty" validate:"omitempty,oneof=match_prep development"`
	DistanceM    float64 `json:"distance_m,omitempty" validate:"omitempty,gte=6,lte=12"`
	SpeedKMH     float64 `json:"speed_kmh,omitempty" validate:"omitempty,gte=70,lte=120"`
}

// FocusZone is a priority zone with its session and drills.
type FocusZone struct {
	training.PriorityZone
	Urgency  training.Urgency  `json:"urgency"`
	Minutes  int               `json:"minutes"`
	Exercise training.Exercise `json:"exercise"`
}

// TrainingReport is the training view for one goalkeeper.
type TrainingReport struct {
	AssessmentID string                  `json:"assessment_id"`
	GeneratedAt  time.Time               `json:"generated_at"`
	Goalkeeper   model.Goalkeeper        `json:"goalkeeper"`
	Opponent     model.Opponent          `json:"opponent"`
	Mode         training.Mode           `json:"mode"`
	Shot         model.ShotContext       `json:"shot"`
	Grid         zone.Grid               `json:"grid"`
	Priorities   []training.PriorityZone `json:"priorities"`
	Focus        []FocusZone             `json:"focus"`
	Plan         training.Plan           `json:"plan"`
	ZoneLeaders  []ranking.ZoneLeader    `json:"zone_leaders"`
	Degraded     bool                    `json:"degraded"`
}

// Training ranks one goalkeeper's zones by weakness, attaches drills to the
// top zones and lays out a weekly plan. The roster is evaluated too so the
// report can show which teammate covers each zone best.
func (s *Service) Training(ctx context.Context, req TrainingRequest) (rep TrainingReport, err error) {
	start := time.Now()
	degraded := false
	defer s.track(ctx, KindTraining, start, &degraded, &err)

	if req.GoalkeeperID == "" || req.OpponentID == "" {
		return TrainingReport{}, fmt.Errorf("%w: goalkeeper_id and opponent_id are required", ErrInvalidRequest)
	}
	mode, err := training.ParseMode(req.Mode)
	if err != nil {
		return TrainingReport{}, err
	}

	gk, err := s.repo.Goalkeeper(ctx, req.GoalkeeperID)
	if err != nil {
		return TrainingReport{}, err
	}
	op, err := s.repo.Opponent(ctx, req.OpponentID)
	if err != nil {
		return TrainingReport{}, err
	}
	attack, err := profile.Build(op)
	if err != nil {
		return TrainingReport{}, err
	}

	shot := DefaultShot(op)
	if req.DistanceM > 0 {
		shot.DistanceM = req.DistanceM
	}
	if req.SpeedKMH > 0 {
		shot.SpeedKMH = req.SpeedKMH
	}

	gks, err := s.roster(ctx)
	if err != nil {
		return TrainingReport{}, err
	}
	cands, deg, err := s.evaluate(ctx, gks, attack, shot)
	if err != nil {
		return TrainingReport{}, err
	}
	rk, err := ranking.Rank(cands, req.GoalkeeperID)
	if err != nil {
		return TrainingReport{}, err
	}
	self, _ := rk.Find(req.GoalkeeperID)
	degraded = deg

	priorities := training.Prioritize(self.Grid, attack, mode)
	top := training.Top(priorities, training.FocusCount)
	focus := make([]FocusZone, len(top))
	for i, pz := range top {
		focus[i] = FocusZone{
			PriorityZone: pz,
			Urgency:      training.UrgencyOf(pz.Probability),
			Minutes:      training.SessionMinutes(pz.Probability),
			Exercise:     training.ExerciseFor(pz.Zone),
		}
	}

	return TrainingReport{
		AssessmentID: newAssessmentID(),
		GeneratedAt:  time.Now().UTC(),
		Goalkeeper:   gk,
		Opponent:     op,
		Mode:         mode,
		Shot:         shot,
		Grid:         self.Grid,
		Priorities:   priorities,
		Focus:        focus,
		Plan:         training.WeeklyPlan(top, op, profile.StrongestZone(attack)),
		ZoneLeaders:  ranking.ZoneLeaders(rk.Entries),
		Degraded:     degraded,
	}, nil
}
