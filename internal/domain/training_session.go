package domain

import (
	"time"

	"github.com/google/uuid"
)

// SetPerformed is one executed set of an exercise.
type SetPerformed struct {
	Weight float64 `bson:"weight" json:"weight"`
	Reps   int     `bson:"reps" json:"reps"`
	RPE    float64 `bson:"rpe,omitempty" json:"rpe,omitempty"` // 1-10, zero when not rated
	RIR    *int    `bson:"rir,omitempty" json:"rir,omitempty"`
	Notes  string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

func (s SetPerformed) Validate() error {
	if s.Weight < 0 {
		return newValidationError("weight", "weight cannot be negative")
	}
	if s.Reps < 0 {
		return newValidationError("reps", "reps cannot be negative")
	}
	if s.RPE != 0 && (s.RPE < 1 || s.RPE > 10) {
		return newValidationError("rpe", "RPE must be between 1 and 10")
	}
	if s.RIR != nil && *s.RIR < 0 {
		return newValidationError("rir", "RIR cannot be negative")
	}
	return nil
}

// Volume is weight times reps.
func (s SetPerformed) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

// EstimatedOneRepMax uses the Epley formula. A single rep is its own max.
func (s SetPerformed) EstimatedOneRepMax() float64 {
	switch {
	case s.Reps <= 0:
		return 0
	case s.Reps == 1:
		return s.Weight
	}
	return s.Weight * (1 + float64(s.Reps)/30)
}

// ExercisePerformed groups the sets of one exercise within a session.
type ExercisePerformed struct {
	ExerciseID    int            `bson:"exercise_id" json:"exerciseId"`
	PlannedSets   int            `bson:"planned_sets,omitempty" json:"plannedSets,omitempty"`
	PerformedSets []SetPerformed `bson:"performed_sets" json:"performedSets"`
	Notes         string         `bson:"notes,omitempty" json:"notes,omitempty"`
}

func (e ExercisePerformed) TotalVolume() float64 {
	var total float64
	for _, s := range e.PerformedSets {
		total += s.Volume()
	}
	return total
}

// AverageRPE averages the rated sets, zero when none is rated.
func (e ExercisePerformed) AverageRPE() float64 {
	var sum float64
	n := 0
	for _, s := range e.PerformedSets {
		if s.RPE > 0 {
			sum += s.RPE
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// TrainingSession is a logged workout with what was actually lifted.
type TrainingSession struct {
	ID               string              `bson:"_id" json:"id"`
	UserID           string              `bson:"user_id" json:"userId"`
	MesocycleID      string              `bson:"mesocycle_id,omitempty" json:"mesocycleId,omitempty"`
	MicrocycleNumber *int                `bson:"microcycle_id,omitempty" json:"microcycleId,omitempty"`
	WeekNumber       *int                `bson:"week_number,omitempty" json:"weekNumber,omitempty"`
	Date             time.Time           `bson:"date" json:"date"`
	Exercises        []ExercisePerformed `bson:"exercises" json:"exercises"`
	Notes            string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt        time.Time           `bson:"created_at" json:"createdAt"`
}

// NewTrainingSession validates every performed set. A zero date means today.
func NewTrainingSession(userID, mesocycleID string, date time.Time, exercises []ExercisePerformed, notes string) (*TrainingSession, error) {
	if len(exercises) == 0 {
		return nil, newValidationError("exercises", "at least one exercise is required")
	}
	for _, ex := range exercises {
		if ex.ExerciseID <= 0 {
			return nil, newValidationError("exercise_id", "exercise id must be positive")
		}
		if ex.PlannedSets < 0 {
			return nil, newValidationError("planned_sets", "planned sets cannot be negative")
		}
		for _, s := range ex.PerformedSets {
			if err := s.Validate(); err != nil {
				return nil, err
			}
		}
	}
	now := nowFunc()
	if date.IsZero() {
		date = now
	}
	return &TrainingSession{
		ID:          uuid.NewString(),
		UserID:      userID,
		MesocycleID: mesocycleID,
		Date:        date.UTC(),
		Exercises:   exercises,
		Notes:       notes,
		CreatedAt:   now,
	}, nil
}

func (t *TrainingSession) TotalVolume() float64 {
	var total float64
	for _, e := range t.Exercises {
		total += e.TotalVolume()
	}
	return total
}

// AverageRPE averages every rated set of the session.
func (t *TrainingSession) AverageRPE() float64 {
	var sum float64
	n := 0
	for _, e := range t.Exercises {
		for _, s := range e.PerformedSets {
			if s.RPE > 0 {
				sum += s.RPE
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// BestEstimatedOneRepMax returns the highest Epley estimate for exerciseID in
// the session, zero when the exercise was not trained.
func (t *TrainingSession) BestEstimatedOneRepMax(exerciseID int) float64 {
	var best float64
	for _, e := range t.Exercises {
		if e.ExerciseID != exerciseID {
			continue
		}
		for _, s := range e.PerformedSets {
			best = max(best, s.EstimatedOneRepMax())
		}
	}
	return best
}

// Includes reports whether exerciseID was trained in the session.
func (t *TrainingSession) Includes(exerciseID int) bool {
	for _, e := range t.Exercises {
		if e.ExerciseID == exerciseID {
			return true
		}
	}
	return false
}
