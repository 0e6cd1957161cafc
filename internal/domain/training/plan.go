package training

import (
	"fmt"

	"github.com/okian/goalkeep/internal/domain/model"
	"github.com/okian/goalkeep/internal/domain/zone"
)

// Day of the training week.
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
)

// Session is one day of the weekly plan. Zone is set only for zone-focused
// sessions.
type Session struct {
	Day     Day         `json:"day"`
	Focus   string      `json:"focus"`
	Kind    string      `json:"kind"`
	Minutes int         `json:"minutes"`
	Zone    *zone.Index `json:"zone,omitempty"`
	Notes   []string    `json:"notes,omitempty"`
}

// Plan is a five-day week built around the focus zones.
type Plan struct {
	Sessions            []Session `json:"sessions"`
	TotalMinutes        int       `json:"total_minutes"`
	ExpectedImprovement float64   `json:"expected_improvement"`
}

type slot struct {
	day     Day
	focus   int // index into the focus list, -1 for fixed sessions
	kind    string
	minutes int
}

var week = []slot{
	{Monday, 0, "intensive technique", 45},
	{Tuesday, 1, "technique and reaction", 40},
	{Wednesday, -1, "active recovery", 30},
	{Thursday, 2, "technique and speed", 40},
	{Friday, -1, "game simulation", 35},
}

// WeeklyPlan lays the focus zones (most urgent first) over the week. Focus
// slots without a matching zone are skipped.
func WeeklyPlan(focus []PriorityZone, op model.Opponent, preferred zone.Index) Plan {
	var p Plan
	for _, s := range week {
		sess := Session{Day: s.day, Kind: s.kind, Minutes: s.minutes}
		switch {
		case s.focus >= 0:
			if s.focus >= len(focus) {
				continue
			}
			z := focus[s.focus].Zone
			sess.Zone = &z
			sess.Focus = z.Name()
			ex := ExerciseFor(z)
			for _, d := range ex.Drills {
				sess.Notes = append(sess.Notes, fmt.Sprintf("%s (%s, %d min)", d.Name, d.Reps, d.Minutes))
			}
			sess.Notes = append(sess.Notes, ex.Tips[:2]...)
		case s.day == Wednesday:
			sess.Focus = "recovery"
			sess.Notes = []string{"dynamic stretching (10 min)", "joint mobility (10 min)", "proprioception (10 min)"}
		default:
			sess.Focus = "match simulation vs " + op.Name
			sess.Notes = []string{
				"specific warm-up (10 min)",
				"varied shots (15 min)",
				"game situations (10 min)",
				fmt.Sprintf("simulate %.0f km/h shots aimed at %s", op.ShotSpeedKMH, preferred.Name()),
			}
		}
		p.Sessions = append(p.Sessions, sess)
		p.TotalMinutes += sess.Minutes
	}
	p.ExpectedImprovement = ExpectedImprovement(focus)
	return p
}
