package domain

// ProgressionRow is the baseline loading prescription for a training goal.
type ProgressionRow struct {
	Goal            TrainingGoal
	IntensityPct    float64 // fraction of 1RM
	Repetitions     string
	SetsRecommended int
	RestInterval    string
	RIRTarget       int
}

// ProgressionFor returns the prescription for goal. Goals without a dedicated
// row share the general one.
func ProgressionFor(goal TrainingGoal) ProgressionRow {
	switch goal {
	case GoalStrength:
		return ProgressionRow{Goal: goal, IntensityPct: 0.85, Repetitions: "3-5", SetsRecommended: 4, RestInterval: "2-3 min", RIRTarget: 1}
	case GoalHypertrophy:
		return ProgressionRow{Goal: goal, IntensityPct: 0.70, Repetitions: "8-12", SetsRecommended: 4, RestInterval: "60-90s", RIRTarget: 2}
	default:
		return ProgressionRow{Goal: goal, IntensityPct: 0.75, Repetitions: "6-10", SetsRecommended: 3, RestInterval: "90s", RIRTarget: 2}
	}
}
