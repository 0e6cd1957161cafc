package service_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/goalkeep/internal/app"
	"github.com/okian/goalkeep/internal/adapters/repository"
	"github.com/okian/goalkeep/internal/domain/grid"
	"github.com/okian/goalkeep/internal/domain/model"
	"github.com/okian/goalkeep/internal/domain/ranking"
	"github.com/okian/goalkeep/internal/domain/tactics"
	"github.com/okian/goalkeep/internal/domain/training"
	"github.com/okian/goalkeep/internal/domain/zone"
)

var (
	keeperA = model.Goalkeeper{ID: "a", Name: "Keeper A", HeightCM: 195, SpanCM: 200, LateralSpeedM: 4.0}
	keeperB = model.Goalkeeper{ID: "b", Name: "Keeper B", HeightCM: 185, SpanCM: 190, LateralSpeedM: 4.2}
	keeperC = model.Goalkeeper{ID: "c", Name: "Keeper C", HeightCM: 180, SpanCM: 185, LateralSpeedM: 4.5}

	balanced = model.Opponent{ID: "bal", Name: "Balanced", Ranking: 1, ShotSpeedKMH: 90, HighPct: 30, MidPct: 40, LowPct: 30}
	lowShots = model.Opponent{ID: "low", Name: "Low Shooters", Ranking: 2, ShotSpeedKMH: 130, HighPct: 10, MidPct: 10, LowPct: 80}
	unknown  = model.Opponent{ID: "zero", Name: "No Data", Ranking: 3, ShotSpeedKMH: 85}
)

var midShot = model.ShotContext{DistanceM: 9, SpeedKMH: 90, Minute: 30}

// constant returns the same probability for every zone, keyed by goalkeeper
// height.
func constant(byHeight map[int]float64) grid.Predictor {
	return grid.PredictorFunc(func(_ context.Context, q model.SaveQuery) (float64, error) {
		return byHeight[q.HeightCM], nil
	})
}

func newStore(gks ...model.Goalkeeper) *repository.MemoryStore {
	s, err := repository.NewMemoryStore(gks, []model.Opponent{balanced, lowShots, unknown})
	if err != nil {
		panic(err)
	}
	return s
}

func TestService_Timeout(t *testing.T) {
	ctx := context.Background()

	Convey("Given a roster where the bench keeper is seven points better", t, func() {
		svc := service.New(newStore(keeperA, keeperB, keeperC), constant(map[int]float64{195: 62, 185: 55, 180: 40}))

		Convey("When the current keeper is B", func() {
			rep, err := svc.Timeout(ctx, service.TimeoutRequest{OpponentID: "bal", CurrentID: "b", Shot: midShot})
			So(err, ShouldBeNil)

			Convey("Then the decision is to swap", func() {
				So(rep.Ranking.Decision, ShouldNotBeNil)
				So(rep.Ranking.Decision.Tier, ShouldEqual, ranking.TierSwap)
				So(rep.Ranking.Decision.BestID, ShouldEqual, "a")
				So(rep.Ranking.Decision.Diff, ShouldAlmostEqual, 7.0, 1e-9)
			})

			Convey("And the ranking is ordered by score", func() {
				ids := []string{}
				for _, e := range rep.Ranking.Entries {
					ids = append(ids, e.Goalkeeper.ID)
				}
				So(ids, ShouldResemble, []string{"a", "b", "c"})
			})

			Convey("And advice is written for the keeper on court", func() {
				So(rep.Keeper.GoalkeeperID, ShouldEqual, "b")
				So(rep.Recommendations, ShouldNotBeEmpty)
				So(rep.AssessmentID, ShouldNotBeEmpty)
				So(rep.Degraded, ShouldBeFalse)
			})
		})

		Convey("When the best keeper is already on court", func() {
			rep, err := svc.Timeout(ctx, service.TimeoutRequest{OpponentID: "bal", CurrentID: "a", Shot: midShot})
			So(err, ShouldBeNil)
			So(rep.Ranking.Decision.Tier, ShouldEqual, ranking.TierKeep)
		})

		Convey("When no keeper is on court", func() {
			rep, err := svc.Timeout(ctx, service.TimeoutRequest{OpponentID: "bal", Shot: midShot})
			So(err, ShouldBeNil)
			So(rep.Ranking.Decision, ShouldBeNil)
			So(rep.Keeper.GoalkeeperID, ShouldEqual, "a")
		})
	})

	Convey("Given a low-shooting hard-hitting opponent and a keeper weak low in the center", t, func() {
		weakLow := grid.PredictorFunc(func(_ context.Context, q model.SaveQuery) (float64, error) {
			if q.Zone == zone.Index(7).OracleID() {
				return 20, nil
			}
			return 60, nil
		})
		svc := service.New(newStore(keeperA, keeperB), weakLow)
		shot := model.ShotContext{DistanceM: 9, SpeedKMH: 100, Minute: 55, ScoreDiff: 0}

		rep, err := svc.Timeout(ctx, service.TimeoutRequest{OpponentID: "low", CurrentID: "a", Shot: shot})
		So(err, ShouldBeNil)

		Convey("Then the opponent attacks zone 7 where the keeper is weakest", func() {
			So(rep.OpponentStrongZone, ShouldEqual, zone.Index(7))
			So(rep.Keeper.WeakZone, ShouldEqual, zone.Index(7))
		})

		Convey("Then the first recommendation is the critical alert", func() {
			So(rep.Recommendations[0].Priority, ShouldEqual, tactics.PriorityCritical)
			So(rep.Recommendations[0].ID, ShouldEqual, tactics.CriticalZone)
		})

		Convey("And the bottom row yields two high directives", func() {
			So(hasDirective(rep.Recommendations, tactics.AdvanceLow, tactics.PriorityHigh), ShouldBeTrue)
			So(hasDirective(rep.Recommendations, tactics.ActiveLegs, tactics.PriorityHigh), ShouldBeTrue)
		})

		Convey("And a late tie asks for maximum focus", func() {
			So(hasDirective(rep.Recommendations, tactics.TiedLate, tactics.PriorityHigh), ShouldBeTrue)
		})
	})

	Convey("Given a late lead of four goals", t, func() {
		svc := service.New(newStore(keeperA), constant(map[int]float64{195: 60}))
		shot := model.ShotContext{DistanceM: 9, SpeedKMH: 90, Minute: 55, ScoreDiff: 4}

		rep, err := svc.Timeout(ctx, service.TimeoutRequest{OpponentID: "bal", CurrentID: "a", Shot: shot})
		So(err, ShouldBeNil)
		So(hasDirective(rep.Recommendations, tactics.WinningLate, tactics.PriorityHigh), ShouldBeTrue)
		So(hasDirective(rep.Recommendations, tactics.TiedLate, tactics.PriorityHigh), ShouldBeFalse)
	})

	Convey("Given a penalty speed", t, func() {
		// B is better from the penalty mark, A from open play.
		p := grid.PredictorFunc(func(_ context.Context, q model.SaveQuery) (float64, error) {
			if q.DistanceM == service.DefaultPenaltyDistanceM {
				return map[int]float64{195: 30, 185: 45}[q.HeightCM], nil
			}
			return map[int]float64{195: 60, 185: 50}[q.HeightCM], nil
		})
		svc := service.New(newStore(keeperA, keeperB), p)

		rep, err := svc.Timeout(ctx, service.TimeoutRequest{
			OpponentID: "bal", CurrentID: "a", Shot: midShot, PenaltySpeedKMH: 100,
		})
		So(err, ShouldBeNil)
		So(rep.Penalty, ShouldNotBeNil)
		best, _ := rep.Penalty.Best()
		So(best.Goalkeeper.ID, ShouldEqual, "b")
		So(rep.Penalty.Decision.Tier, ShouldEqual, ranking.TierSwap)

		leader, _ := rep.Ranking.Best()
		So(leader.Goalkeeper.ID, ShouldEqual, "a")
	})

	Convey("Given an oracle that fails for one zone", t, func() {
		flaky := grid.PredictorFunc(func(_ context.Context, q model.SaveQuery) (float64, error) {
			if q.Zone == 5 {
				return 0, errors.New("model unavailable")
			}
			return 70, nil
		})
		svc := service.New(newStore(keeperA), flaky)

		rep, err := svc.Timeout(ctx, service.TimeoutRequest{OpponentID: "bal", CurrentID: "a", Shot: midShot})

		Convey("Then the zone reads neutral and the report is degraded", func() {
			So(err, ShouldBeNil)
			So(rep.Degraded, ShouldBeTrue)
			So(rep.Keeper.Grid[4], ShouldEqual, grid.Neutral)
			So(rep.Ranking.Entries[0].Degraded, ShouldBeTrue)
			So(svc.GetStats()["degradedAssessments"], ShouldEqual, int64(1))
		})
	})

	Convey("Given an opponent with no placement data", t, func() {
		p := grid.PredictorFunc(func(_ context.Context, q model.SaveQuery) (float64, error) {
			return []float64{70, 65, 60, 55, 50, 45, 40, 35, 30}[q.Zone-1], nil
		})
		svc := service.New(newStore(keeperA), p)

		rep, err := svc.Timeout(ctx, service.TimeoutRequest{OpponentID: "zero", CurrentID: "a", Shot: midShot})

		Convey("Then the score is the unweighted mean and flagged", func() {
			So(err, ShouldBeNil)
			So(rep.Ranking.Entries[0].Score, ShouldAlmostEqual, 50.0, 1e-9)
			So(rep.Degraded, ShouldBeTrue)
		})
	})

	Convey("Given caller errors", t, func() {
		svc := service.New(newStore(keeperA, keeperB), constant(map[int]float64{195: 60, 185: 50}))

		Convey("An unknown opponent is not found", func() {
			_, err := svc.Timeout(ctx, service.TimeoutRequest{OpponentID: "nope", Shot: midShot})
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("A missing opponent id is invalid", func() {
			_, err := svc.Timeout(ctx, service.TimeoutRequest{Shot: midShot})
			So(errors.Is(err, service.ErrInvalidRequest), ShouldBeTrue)
		})

		Convey("An unknown current keeper is rejected", func() {
			_, err := svc.Timeout(ctx, service.TimeoutRequest{OpponentID: "bal", CurrentID: "z", Shot: midShot})
			So(errors.Is(err, ranking.ErrUnknownCurrent), ShouldBeTrue)
		})

		Convey("An out-of-range shot is rejected, not clamped", func() {
			shot := midShot
			shot.DistanceM = 15
			_, err := svc.Timeout(ctx, service.TimeoutRequest{OpponentID: "bal", Shot: shot})
			So(errors.Is(err, model.ErrInvalidShotContext), ShouldBeTrue)
			So(svc.GetStats()["failedAssessments"], ShouldEqual, int64(1))
		})

		Convey("An empty roster is reported", func() {
			empty := service.New(newStore(), constant(nil))
			_, err := empty.Timeout(ctx, service.TimeoutRequest{OpponentID: "bal", Shot: midShot})
			So(errors.Is(err, service.ErrEmptyRoster), ShouldBeTrue)
		})
	})
}

func TestService_PreGame(t *testing.T) {
	ctx := context.Background()

	Convey("Given a roster whose leader depends on shot speed", t, func() {
		p := grid.PredictorFunc(func(_ context.Context, q model.SaveQuery) (float64, error) {
			if q.SpeedKMH >= 110 {
				return map[int]float64{195: 40, 185: 55}[q.HeightCM], nil
			}
			return map[int]float64{195: 60, 185: 50}[q.HeightCM], nil
		})
		svc := service.New(newStore(keeperA, keeperB), p)

		Convey("When no shot is given", func() {
			rep, err := svc.PreGame(ctx, service.PreGameRequest{OpponentID: "low"})
			So(err, ShouldBeNil)

			Convey("Then the default shot uses the clamped opponent speed", func() {
				So(rep.Shot.DistanceM, ShouldEqual, service.DefaultDistanceM)
				So(rep.Shot.SpeedKMH, ShouldEqual, 120)
				So(rep.Shot.Minute, ShouldEqual, service.DefaultMinute)
			})

			Convey("And the profile flags the hard shooters", func() {
				So(rep.Profile.PreferredZone, ShouldEqual, zone.Index(7))
				So(rep.Profile.Normalized.Sum(), ShouldAlmostEqual, 100.0, 1e-9)
				So(rep.Profile.Alerts, ShouldNotBeEmpty)
			})

			Convey("And no decision is made", func() {
				So(rep.Ranking.Decision, ShouldBeNil)
				So(rep.Margin, ShouldNotBeNil)
				So(len(rep.ZoneLeaders), ShouldEqual, zone.Count)
			})
		})

		Convey("When a what-if context changes the leader", func() {
			fast := model.ShotContext{DistanceM: 9, SpeedKMH: 115, Minute: 40}
			rep, err := svc.PreGame(ctx, service.PreGameRequest{OpponentID: "bal", Shot: &midShot, WhatIf: &fast})
			So(err, ShouldBeNil)

			best, _ := rep.Ranking.Best()
			So(best.Goalkeeper.ID, ShouldEqual, "a")
			So(rep.Margin.Level, ShouldEqual, ranking.MarginClear)
			So(rep.WhatIf, ShouldNotBeNil)
			So(rep.WhatIf.Comparison.Changed, ShouldBeTrue)
			So(rep.WhatIf.Comparison.AltLeaderID, ShouldEqual, "b")
		})

		Convey("When the what-if context is invalid", func() {
			bad := model.ShotContext{DistanceM: 9, SpeedKMH: 200}
			_, err := svc.PreGame(ctx, service.PreGameRequest{OpponentID: "bal", WhatIf: &bad})
			So(errors.Is(err, model.ErrInvalidShotContext), ShouldBeTrue)
		})
	})
}

func TestService_Training(t *testing.T) {
	ctx := context.Background()

	Convey("Given a keeper with a descending grid", t, func() {
		p := grid.PredictorFunc(func(_ context.Context, q model.SaveQuery) (float64, error) {
			if q.HeightCM == keeperB.HeightCM {
				return 50, nil
			}
			return []float64{70, 65, 60, 55, 50, 45, 40, 35, 30}[q.Zone-1], nil
		})
		svc := service.New(newStore(keeperA, keeperB), p)

		Convey("When planning for development", func() {
			rep, err := svc.Training(ctx, service.TrainingRequest{GoalkeeperID: "a", OpponentID: "bal", Mode: "development"})
			So(err, ShouldBeNil)

			Convey("Then the weakest zones come first", func() {
				So(rep.Mode, ShouldEqual, training.Development)
				So(len(rep.Priorities), ShouldEqual, zone.Count)
				So(len(rep.Focus), ShouldEqual, training.FocusCount)
				So(rep.Focus[0].Zone, ShouldEqual, zone.Index(8))
				So(rep.Focus[0].Minutes, ShouldEqual, 30)
				So(rep.Focus[0].Urgency, ShouldEqual, training.UrgencyCritical)
				So(rep.Focus[0].Exercise.Zone, ShouldEqual, zone.Index(8))
			})

			Convey("And the week has five sessions", func() {
				So(len(rep.Plan.Sessions), ShouldEqual, 5)
				So(rep.Plan.TotalMinutes, ShouldBeGreaterThan, 0)
			})

			Convey("And zone leaders cover the roster", func() {
				So(rep.ZoneLeaders[0].BestID, ShouldEqual, "a")
				So(rep.ZoneLeaders[8].BestID, ShouldEqual, "b")
			})
		})

		Convey("When the mode is unknown", func() {
			_, err := svc.Training(ctx, service.TrainingRequest{GoalkeeperID: "a", OpponentID: "bal", Mode: "fun"})
			So(errors.Is(err, training.ErrUnknownMode), ShouldBeTrue)
		})

		Convey("When the goalkeeper is unknown", func() {
			_, err := svc.Training(ctx, service.TrainingRequest{GoalkeeperID: "z", OpponentID: "bal"})
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestService_Listings(t *testing.T) {
	Convey("Given the demo store", t, func() {
		store, err := repository.NewMemoryStore(repository.DemoGoalkeepers(), repository.DemoOpponents())
		So(err, ShouldBeNil)
		svc := service.New(store, constant(nil))

		gks, err := svc.Goalkeepers(context.Background())
		So(err, ShouldBeNil)
		So(len(gks), ShouldEqual, 3)

		ops, err := svc.Opponents(context.Background())
		So(err, ShouldBeNil)
		So(ops[0].Ranking, ShouldEqual, 1)

		stats := svc.GetStats()
		So(stats["assessments"], ShouldEqual, int64(0))
	})
}

func hasDirective(recs []tactics.Recommendation, id tactics.DirectiveID, p tactics.Priority) bool {
	for _, r := range recs {
		if r.ID == id && r.Priority == p {
			return true
		}
	}
	return false
}
