// Package model contains domain models passed between layers.
package model

// Goalkeeper holds the immutable physical attributes used as oracle inputs.
type Goalkeeper struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	HeightCM      int     `json:"height_cm"`
	SpanCM        int     `json:"span_cm"`
	Position      string  `json:"position,omitempty"` // preferred side, informational only
	LateralSpeedM float64 `json:"lateral_speed_ms"`
}

// Opponent holds scouting statistics for an opposing team.
// The three band percentages are independent bucket weights and must sum to
// at most 100.
type Opponent struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Ranking            int     `json:"ranking"`
	GoalsPerGame       float64 `json:"goals_per_game"`
	ShotSpeedKMH       float64 `json:"shot_speed_kmh"`
	HighPct            float64 `json:"high_pct"`
	MidPct             float64 `json:"mid_pct"`
	LowPct             float64 `json:"low_pct"`
	FirstLineEfficacy  float64 `json:"first_line_efficacy_pct"`
	SecondLineEfficacy float64 `json:"second_line_efficacy_pct"`
	FastBreaksPerGame  float64 `json:"fast_breaks_per_game"`
	OffensiveStyle     string  `json:"offensive_style,omitempty"`
}

// ShotContext describes the situation a shot is taken in.
type ShotContext struct {
	DistanceM float64 `json:"distance_m" validate:"gte=6,lte=12"`
	SpeedKMH  float64 `json:"speed_kmh" validate:"gte=70,lte=120"`
	Minute    int     `json:"minute" validate:"gte=0,lte=60"`
	ScoreDiff int     `json:"score_diff" validate:"gte=-50,lte=50"`
}

// SaveQuery is a single per-zone request to a save-probability oracle.
// Zone is the oracle's 1-based zone id.
type SaveQuery struct {
	Zone          int     `json:"zone"`
	DistanceM     float64 `json:"distance_m"`
	SpeedKMH      float64 `json:"speed_kmh"`
	HeightCM      int     `json:"goalkeeper_height_cm"`
	SpanCM        int     `json:"goalkeeper_span_cm"`
	LateralSpeedM float64 `json:"goalkeeper_lateral_speed_ms"`
	Minute        int     `json:"minute"`
	ScoreDiff     int     `json:"score_diff"`
}

// NewSaveQuery assembles the oracle query for one zone.
func NewSaveQuery(oracleZone int, gk Goalkeeper, shot ShotContext) SaveQuery {
	return SaveQuery{
		Zone:          oracleZone,
		DistanceM:     shot.DistanceM,
		SpeedKMH:      shot.SpeedKMH,
		HeightCM:      gk.HeightCM,
		SpanCM:        gk.SpanCM,
		LateralSpeedM: gk.LateralSpeedM,
		Minute:        shot.Minute,
		ScoreDiff:     shot.ScoreDiff,
	}
}
