package training

import "github.com/okian/goalkeep/internal/domain/zone"

// Drill is a single exercise.
type Drill struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Reps        string `json:"reps"`
	Minutes     int    `json:"minutes"`
}

// Exercise is the bank entry for one zone.
type Exercise struct {
	Zone    zone.Index `json:"zone"`
	Problem string     `json:"problem"`
	Drills  []Drill    `json:"drills"`
	Tips    []string   `json:"tips"`
}

// Minutes is the total drill time of the entry.
func (e Exercise) Minutes() int {
	total := 0
	for _, d := range e.Drills {
		total += d.Minutes
	}
	return total
}

// ExerciseFor returns the bank entry for a zone. Every valid zone has one;
// an invalid zone yields the zero Exercise.
func ExerciseFor(z zone.Index) Exercise {
	if !z.Valid() {
		return Exercise{}
	}
	return bank[z]
}

var bank = [zone.Count]Exercise{
	{
		Zone:    0,
		Problem: "Struggles to reach the upper left corner",
		Drills: []Drill{
			{"Explosive lateral jump", "Jump from the center to the upper left corner", "3x10", 10},
			{"Band reach", "Stretch the left arm against band resistance", "3x15", 8},
			{"High ball reaction", "Coach throws high balls, goalkeeper saves", "3x12", 12},
		},
		Tips: []string{"Keep the left arm higher in the base stance", "Work on right-leg take-off", "Anticipate shots to the angle"},
	},
	{
		Zone:    1,
		Problem: "High central shots go over the top",
		Drills: []Drill{
			{"Vertical jump", "Jump vertically with arms extended", "3x12", 10},
			{"X save", "X stance with arms and legs open", "3x10", 8},
			{"High ball sequence", "Save consecutive high balls", "4x8", 15},
		},
		Tips: []string{"Stand deeper against long-range shooters", "Hands always above the shoulders", "Never drop the guard"},
	},
	{
		Zone:    2,
		Problem: "Struggles to reach the upper right corner",
		Drills: []Drill{
			{"Explosive lateral jump", "Jump from the center to the upper right corner", "3x10", 10},
			{"Band reach", "Stretch the right arm against band resistance", "3x15", 8},
			{"Cross reaction", "Ball from the left side into the high right corner", "3x10", 12},
		},
		Tips: []string{"Keep the right arm higher", "Work on left-leg take-off", "Watch for cross shots"},
	},
	{
		Zone:    3,
		Problem: "Slow reaction to the left side",
		Drills: []Drill{
			{"Lateral shuffle", "Fast shuffles to the left", "4x10", 10},
			{"Step save", "Lateral step followed by an arm save", "3x12", 12},
			{"Light and sound reaction", "React to a cue and save to the left", "3x15", 10},
		},
		Tips: []string{"More weight on the right foot to push off", "Left arm always active", "Read the shooting side early"},
	},
	{
		Zone:    4,
		Problem: "Shots at the body are not stopped",
		Drills: []Drill{
			{"Body block", "Use the body to block central balls", "3x15", 10},
			{"Closed stance", "Train a compact stance", "3x10", 8},
			{"Fast central reaction", "Fast balls at the body", "4x12", 12},
		},
		Tips: []string{"Close the body more in the base stance", "Use the legs for low central balls", "Do not open too early"},
	},
	{
		Zone:    5,
		Problem: "Slow reaction to the right side",
		Drills: []Drill{
			{"Lateral shuffle", "Fast shuffles to the right", "4x10", 10},
			{"Step save", "Lateral step followed by an arm save", "3x12", 12},
			{"Mirror", "Follow the coach's movements", "3x2min", 8},
		},
		Tips: []string{"More weight on the left foot to push off", "Right arm always active", "Train lateral speed"},
	},
	{
		Zone:    6,
		Problem: "Struggles to dive to the lower left",
		Drills: []Drill{
			{"Lateral dive", "Dive to the lower left corner", "3x8", 12},
			{"Hip mobility", "Dynamic hip stretches", "3x30s", 5},
			{"Lateral split", "Work on lateral opening", "3x20s", 5},
		},
		Tips: []string{"Lower the center of gravity", "Bend the left leg more", "Attack the ball, do not wait for it"},
	},
	{
		Zone:    7,
		Problem: "Ground shots go between the legs",
		Drills: []Drill{
			{"Leg close", "Close the legs quickly", "4x12", 10},
			{"Low stance", "Hold a low stance for longer", "3x30s", 5},
			{"Ground balls", "Save balls along the floor", "3x15", 12},
		},
		Tips: []string{"Bend the knees more", "Never cross the legs", "Weight on the balls of the feet"},
	},
	{
		Zone:    8,
		Problem: "Struggles to dive to the lower right",
		Drills: []Drill{
			{"Lateral dive", "Dive to the lower right corner", "3x8", 12},
			{"Hip mobility", "Dynamic hip stretches", "3x30s", 5},
			{"Controlled fall", "Train falling technique to the right", "3x10", 8},
		},
		Tips: []string{"Lower the center of gravity", "Bend the right leg more", "Attack the ball with the hand"},
	},
}
