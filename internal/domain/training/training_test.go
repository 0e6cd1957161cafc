package training_test

import (
	"testing"

	"github.com/okian/goalkeep/internal/domain/model"
	"github.com/okian/goalkeep/internal/domain/profile"
	"github.com/okian/goalkeep/internal/domain/training"
	"github.com/okian/goalkeep/internal/domain/zone"
	. "github.com/smartystreets/goconvey/convey"
)

func zones(list []training.PriorityZone) []zone.Index {
	out := make([]zone.Index, len(list))
	for i, p := range list {
		out[i] = p.Zone
	}
	return out
}

func TestPrioritize(t *testing.T) {
	probs := zone.Grid{70, 65, 60, 55, 50, 45, 40, 35, 30}

	Convey("Given development mode", t, func() {
		list := training.Prioritize(probs, zone.Grid{}, training.Development)

		Convey("Then all nine zones are ranked by lacuna", func() {
			So(list, ShouldHaveLength, zone.Count)
			So(zones(training.Top(list, 3)), ShouldResemble, []zone.Index{8, 7, 6})
			So(list[0].Risk, ShouldAlmostEqual, 70.0)
		})
	})

	Convey("Given ties in development mode", t, func() {
		tied := zone.Grid{40, 60, 40, 60, 30, 60, 40, 60, 60}
		top := training.Top(training.Prioritize(tied, zone.Grid{}, training.Development), 3)

		Convey("Then the three lowest win and ties keep zone order", func() {
			So(zones(top), ShouldResemble, []zone.Index{4, 0, 2})
		})
	})

	Convey("Given match-prep mode against a low-shooting opponent", t, func() {
		attack := profile.AttackGrid(model.Opponent{HighPct: 10, MidPct: 20, LowPct: 70})
		list := training.Prioritize(probs, attack, training.MatchPrep)

		Convey("Then risk weighs weakness by attack share", func() {
			So(list[0].Zone, ShouldEqual, zone.Index(7))
			So(list[0].Risk, ShouldAlmostEqual, (100-35)*28.0/100)
			So(zones(training.Top(list, 3)), ShouldResemble, []zone.Index{7, 8, 6})
		})
	})

	Convey("Given match-prep mode with an empty attack grid", t, func() {
		list := training.Prioritize(probs, zone.Grid{}, training.MatchPrep)

		Convey("Then every risk is zero and zone order is kept", func() {
			So(zones(training.Top(list, 3)), ShouldResemble, []zone.Index{0, 1, 2})
		})
	})

	Convey("Given Top with more than available", t, func() {
		So(training.Top(nil, 3), ShouldBeEmpty)
	})
}

func TestParseMode(t *testing.T) {
	Convey("Given mode names", t, func() {
		m, err := training.ParseMode("")
		So(err, ShouldBeNil)
		So(m, ShouldEqual, training.MatchPrep)
		m, err = training.ParseMode("development")
		So(err, ShouldBeNil)
		So(m, ShouldEqual, training.Development)
		_, err = training.ParseMode("weekly")
		So(err, ShouldWrap, training.ErrUnknownMode)
	})
}

func TestSessionRules(t *testing.T) {
	Convey("Given session durations", t, func() {
		So(training.SessionMinutes(20), ShouldEqual, 30)
		So(training.SessionMinutes(34.9), ShouldEqual, 30)
		So(training.SessionMinutes(35), ShouldEqual, 25)
		So(training.SessionMinutes(44.9), ShouldEqual, 25)
		So(training.SessionMinutes(45), ShouldEqual, 20)
	})

	Convey("Given urgency labels", t, func() {
		So(training.UrgencyOf(30), ShouldEqual, training.UrgencyCritical)
		So(training.UrgencyOf(40), ShouldEqual, training.UrgencyImportant)
		So(training.UrgencyOf(45), ShouldEqual, training.UrgencyAttention)
	})
}

func TestExerciseBank(t *testing.T) {
	Convey("Given the exercise bank", t, func() {
		Convey("Then every zone has a complete entry", func() {
			for _, z := range zone.All() {
				ex := training.ExerciseFor(z)
				So(ex.Zone, ShouldEqual, z)
				So(ex.Problem, ShouldNotBeBlank)
				So(ex.Drills, ShouldHaveLength, 3)
				So(len(ex.Tips), ShouldBeGreaterThanOrEqualTo, 2)
				So(ex.Minutes(), ShouldBeGreaterThan, 0)
			}
		})

		Convey("Then an invalid zone yields an empty entry", func() {
			So(training.ExerciseFor(zone.Index(-1)).Drills, ShouldBeEmpty)
		})
	})
}

func TestWeeklyPlan(t *testing.T) {
	Convey("Given three focus zones", t, func() {
		probs := zone.Grid{70, 65, 60, 55, 50, 45, 40, 35, 30}
		focus := training.Top(training.Prioritize(probs, zone.Grid{}, training.Development), 3)
		op := model.Opponent{Name: "Porto", ShotSpeedKMH: 98}
		plan := training.WeeklyPlan(focus, op, 7)

		Convey("Then the week has five sessions in order", func() {
			So(plan.Sessions, ShouldHaveLength, 5)
			So(plan.Sessions[0].Day, ShouldEqual, training.Monday)
			So(*plan.Sessions[0].Zone, ShouldEqual, zone.Index(8))
			So(*plan.Sessions[1].Zone, ShouldEqual, zone.Index(7))
			So(plan.Sessions[2].Zone, ShouldBeNil)
			So(plan.Sessions[2].Minutes, ShouldEqual, 30)
			So(*plan.Sessions[3].Zone, ShouldEqual, zone.Index(6))
			So(plan.Sessions[4].Focus, ShouldContainSubstring, "Porto")
			So(plan.Sessions[4].Minutes, ShouldEqual, 35)
			So(plan.Sessions[4].Notes[3], ShouldContainSubstring, "98 km/h")
			So(plan.Sessions[4].Notes[3], ShouldContainSubstring, "Lower Center")
		})

		Convey("Then totals are summed", func() {
			So(plan.TotalMinutes, ShouldEqual, 190)
			So(plan.ExpectedImprovement, ShouldAlmostEqual, (70+65+60)*0.1)
		})
	})

	Convey("Given a single focus zone", t, func() {
		focus := []training.PriorityZone{{Zone: 2, Probability: 40}}
		plan := training.WeeklyPlan(focus, model.Opponent{Name: "X"}, 2)

		Convey("Then missing focus slots are skipped", func() {
			So(plan.Sessions, ShouldHaveLength, 3)
			So(plan.TotalMinutes, ShouldEqual, 45+30+35)
		})
	})
}
