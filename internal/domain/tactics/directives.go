package tactics

// DirectiveID keys the directive table.
type DirectiveID string

const (
	CriticalZone DirectiveID = "critical_zone"

	ShadeLeft  DirectiveID = "shade_left"
	ShadeRight DirectiveID = "shade_right"
	HoldCenter DirectiveID = "hold_center"

	RetreatHigh DirectiveID = "retreat_high"
	NeutralHigh DirectiveID = "neutral_high"
	AdvanceLow  DirectiveID = "advance_low"
	ActiveLegs  DirectiveID = "active_legs"
	RetreatMid  DirectiveID = "retreat_mid"
	NeutralMid  DirectiveID = "neutral_mid"

	CompensateWeak DirectiveID = "compensate_weak"

	LosingHeavily DirectiveID = "losing_heavily"
	LosingLate    DirectiveID = "losing_late"
	Losing        DirectiveID = "losing"
	WinningClear  DirectiveID = "winning_clear"
	WinningLate   DirectiveID = "winning_late"
	Winning       DirectiveID = "winning"
	TiedLate      DirectiveID = "tied_late"
	TiedEarly     DirectiveID = "tied_early"
)

// directive is a static recommendation template. Placeholders {zone},
// {speed}, {prob}, {height} and {side} are filled at emission.
type directive struct {
	category  Category
	priority  Priority
	title     string
	rationale string
}

var directives = map[DirectiveID]directive{
	CriticalZone: {
		CategoryAlert, PriorityCritical,
		"Critical risk: {zone}",
		"The goalkeeper's weakest zone is the opponent's preferred zone. Reinforce this side.",
	},

	ShadeLeft: {
		CategoryLateral, PriorityHigh,
		"Shade left",
		"The opponent attacks mostly on the left: move closer to the left post.",
	},
	ShadeRight: {
		CategoryLateral, PriorityHigh,
		"Shade right",
		"The opponent attacks mostly on the right: move closer to the right post.",
	},
	HoldCenter: {
		CategoryLateral, PriorityMedium,
		"Hold the center",
		"The opponent attacks through the middle: keep a balanced central position.",
	},

	RetreatHigh: {
		CategoryVertical, PriorityHigh,
		"Deep and high stance",
		"High, hard shots ({speed} km/h): retreat 30 cm and raise the arms.",
	},
	NeutralHigh: {
		CategoryVertical, PriorityMedium,
		"Neutral and high stance",
		"High but slower shots ({speed} km/h): hold position with the arms high.",
	},
	AdvanceLow: {
		CategoryVertical, PriorityHigh,
		"Advanced and low stance",
		"Low shots: advance 30-40 cm and lower the center of gravity.",
	},
	ActiveLegs: {
		CategoryVertical, PriorityHigh,
		"Active legs",
		"Knees flexed, weight on the balls of the feet, ready to dive.",
	},
	RetreatMid: {
		CategoryVertical, PriorityHigh,
		"Slightly deeper stance",
		"Hard shots ({speed} km/h): retreat 15-20 cm to gain reaction time.",
	},
	NeutralMid: {
		CategoryVertical, PriorityMedium,
		"Neutral stance",
		"Hold the base position with the arms ready.",
	},

	CompensateWeak: {
		CategoryCompensation, PriorityMedium,
		"Compensate weak zone ({prob}%)",
		"{height} {side} corner: anticipate and pre-position towards that side.",
	},

	LosingHeavily: {
		CategoryContext, PriorityHigh,
		"Losing heavily: take risks",
		"Nothing to lose: play advanced, provoke errors, come off the line.",
	},
	LosingLate: {
		CategoryContext, PriorityHigh,
		"Losing late: take risks",
		"Little time left: be aggressive and advance in goal.",
	},
	Losing: {
		CategoryContext, PriorityMedium,
		"Losing: be proactive",
		"Saves are needed: take a more advanced position.",
	},
	WinningClear: {
		CategoryContext, PriorityMedium,
		"Comfortable lead: manage",
		"Do not take risks, cover the goal well.",
	},
	WinningLate: {
		CategoryContext, PriorityHigh,
		"Conservative: protect the lead",
		"Late in the game: safe position, do not leave the goal.",
	},
	Winning: {
		CategoryContext, PriorityLow,
		"Winning: maintain",
		"Keep doing what is working.",
	},
	TiedLate: {
		CategoryContext, PriorityHigh,
		"Maximum focus: late tie",
		"Avoid mistakes and wait for the opportunity.",
	},
	TiedEarly: {
		CategoryContext, PriorityMedium,
		"Early tie: set the tempo",
		"Be assertive and take calculated risks.",
	},
}
