package repository

import "github.com/okian/goalkeep/internal/domain/model"

// DemoGoalkeepers is a small fictional roster for demos and local runs.
func DemoGoalkeepers() []model.Goalkeeper {
	return []model.Goalkeeper{
		{ID: "gk-1", Name: "Tomas Reis", HeightCM: 194, SpanCM: 201, Position: "right", LateralSpeedM: 3.9},
		{ID: "gk-2", Name: "Nuno Faria", HeightCM: 186, SpanCM: 190, Position: "left", LateralSpeedM: 4.4},
		{ID: "gk-3", Name: "Andre Lobo", HeightCM: 190, SpanCM: 194, Position: "center", LateralSpeedM: 4.0},
	}
}

// DemoOpponents is a fictional league table.
func DemoOpponents() []model.Opponent {
	return []model.Opponent{
		{
			ID: "op-1", Name: "Atlantico HC", Ranking: 1, GoalsPerGame: 33.1, ShotSpeedKMH: 104,
			HighPct: 38, MidPct: 27, LowPct: 35,
			FirstLineEfficacy: 68, SecondLineEfficacy: 52, FastBreaksPerGame: 22, OffensiveStyle: "fast",
		},
		{
			ID: "op-2", Name: "Serra Andebol", Ranking: 2, GoalsPerGame: 30.4, ShotSpeedKMH: 97,
			HighPct: 25, MidPct: 30, LowPct: 45,
			FirstLineEfficacy: 61, SecondLineEfficacy: 49, FastBreaksPerGame: 15, OffensiveStyle: "positional",
		},
		{
			ID: "op-3", Name: "Ribeira SC", Ranking: 5, GoalsPerGame: 27.8, ShotSpeedKMH: 91,
			HighPct: 30, MidPct: 40, LowPct: 30,
			FirstLineEfficacy: 57, SecondLineEfficacy: 44, FastBreaksPerGame: 11, OffensiveStyle: "balanced",
		},
	}
}
