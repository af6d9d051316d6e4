package domain

import (
	"time"

	"github.com/google/uuid"
)

// TrainingSplit is the body-part emphasis of a workout.
type TrainingSplit string

const (
	SplitPush     TrainingSplit = "push"
	SplitPull     TrainingSplit = "pull"
	SplitLegs     TrainingSplit = "legs"
	SplitFullBody TrainingSplit = "fullbody"
	SplitUpper    TrainingSplit = "upper"
	SplitLower    TrainingSplit = "lower"
)

func (s TrainingSplit) IsValid() bool {
	switch s {
	case SplitPush, SplitPull, SplitLegs, SplitFullBody, SplitUpper, SplitLower:
		return true
	}
	return false
}

// Workout is a scheduled training session within a mesocycle.
type Workout struct {
	ID               string        `bson:"_id" json:"id"`
	MesocycleID      string        `bson:"mesocycle_id" json:"mesocycleId"`
	UserID           string        `bson:"user_id" json:"userId"` // Denormalized from the mesocycle for ownership checks
	MicrocycleNumber *int          `bson:"microcycle_id,omitempty" json:"microcycleId,omitempty"`
	Name             string        `bson:"name" json:"name"`
	Description      string        `bson:"description,omitempty" json:"description,omitempty"`
	ScheduledDate    time.Time     `bson:"scheduled_date" json:"scheduledDate"`
	Completed        bool          `bson:"completed" json:"completed"`
	CompletedAt      *time.Time    `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	DurationMinutes  *int          `bson:"duration_minutes,omitempty" json:"durationMinutes,omitempty"`
	Notes            string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Split            TrainingSplit `bson:"split,omitempty" json:"split,omitempty"`
	CreatedAt        time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updated_at" json:"updatedAt"`
}

// WorkoutParams carries the caller-supplied attributes of a workout.
type WorkoutParams struct {
	MesocycleID      string
	UserID           string
	MicrocycleNumber *int
	Name             string
	Description      string
	ScheduledDate    time.Time
	Split            TrainingSplit
	Notes            string
}

func (p WorkoutParams) validate() error {
	if p.MesocycleID == "" {
		return newValidationError("mesocycle_id", "mesocycle is required")
	}
	if p.Name == "" {
		return newValidationError("name", "name is required")
	}
	if p.ScheduledDate.IsZero() {
		return newValidationError("scheduled_date", "scheduled date is required")
	}
	if p.Split != "" && !p.Split.IsValid() {
		return newValidationError("split", "unknown split %q", p.Split)
	}
	if p.MicrocycleNumber != nil && *p.MicrocycleNumber < 1 {
		return newValidationError("microcycle_id", "microcycle number must be positive")
	}
	return nil
}

// NewWorkout validates p and returns an uncompleted workout.
func NewWorkout(p WorkoutParams) (*Workout, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	now := nowFunc()
	return &Workout{
		ID:               uuid.NewString(),
		MesocycleID:      p.MesocycleID,
		UserID:           p.UserID,
		MicrocycleNumber: p.MicrocycleNumber,
		Name:             p.Name,
		Description:      p.Description,
		ScheduledDate:    p.ScheduledDate.UTC(),
		Notes:            p.Notes,
		Split:            p.Split,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Reschedule replaces the editable attributes. Ownership and the mesocycle
// link do not change.
func (w *Workout) Reschedule(p WorkoutParams) error {
	p.MesocycleID = w.MesocycleID
	if err := p.validate(); err != nil {
		return err
	}
	w.MicrocycleNumber = p.MicrocycleNumber
	w.Name = p.Name
	w.Description = p.Description
	w.ScheduledDate = p.ScheduledDate.UTC()
	w.Split = p.Split
	w.Notes = p.Notes
	w.UpdatedAt = nowFunc()
	return nil
}

// MarkCompleted records completion. A workout completes once.
func (w *Workout) MarkCompleted(durationMinutes *int, notes *string) error {
	if w.Completed {
		return &StateConflictError{Entity: "workout", Action: "complete", Status: "completed"}
	}
	if durationMinutes != nil && *durationMinutes < 0 {
		return newValidationError("duration_minutes", "duration cannot be negative")
	}
	now := nowFunc()
	w.Completed = true
	w.CompletedAt = &now
	if durationMinutes != nil {
		w.DurationMinutes = durationMinutes
	}
	if notes != nil {
		w.Notes = *notes
	}
	w.UpdatedAt = now
	return nil
}

// IsOverdue reports whether the workout is past due and not done.
func (w *Workout) IsOverdue(now time.Time) bool {
	return !w.Completed && now.After(w.ScheduledDate)
}
