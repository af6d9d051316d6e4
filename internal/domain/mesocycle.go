// internal/domain/mesocycle.go
package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// MesocycleStatus is the lifecycle state of a training block.
type MesocycleStatus string

const (
	StatusPlanned   MesocycleStatus = "planned"
	StatusActive    MesocycleStatus = "active"
	StatusPaused    MesocycleStatus = "paused"
	StatusCompleted MesocycleStatus = "completed" // Terminal
)

// IsValid reports whether s is one of the four known statuses.
func (s MesocycleStatus) IsValid() bool {
	switch s {
	case StatusPlanned, StatusActive, StatusPaused, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s MesocycleStatus) IsTerminal() bool {
	return s == StatusCompleted
}

// PeriodizationModel governs how intensity and volume change across a block.
type PeriodizationModel string

const (
	PeriodizationLinear          PeriodizationModel = "linear"
	PeriodizationDailyUndulating PeriodizationModel = "daily_undulating"
	PeriodizationBlock           PeriodizationModel = "block"
	PeriodizationPolarized       PeriodizationModel = "polarized"
)

// IsValid reports whether p is a known periodization model.
func (p PeriodizationModel) IsValid() bool {
	switch p {
	case PeriodizationLinear, PeriodizationDailyUndulating, PeriodizationBlock, PeriodizationPolarized:
		return true
	}
	return false
}

// TrainingGoal is the primary adaptation a mesocycle targets.
type TrainingGoal string

const (
	GoalStrength    TrainingGoal = "strength"
	GoalHypertrophy TrainingGoal = "hypertrophy"
	GoalPower       TrainingGoal = "power"
	GoalEndurance   TrainingGoal = "endurance"
	GoalDefinition  TrainingGoal = "definition"
)

// IsValid reports whether g is a known training goal.
func (g TrainingGoal) IsValid() bool {
	switch g {
	case GoalStrength, GoalHypertrophy, GoalPower, GoalEndurance, GoalDefinition:
		return true
	}
	return false
}

// Structural bounds of a training block, inclusive.
const (
	MinDurationWeeks   = 4
	MaxDurationWeeks   = 16
	MinWeeklyFrequency = 3
	MaxWeeklyFrequency = 6
)

// MesocycleAction names a lifecycle transition.
type MesocycleAction string

const (
	ActionStart    MesocycleAction = "start"
	ActionPause    MesocycleAction = "pause"
	ActionResume   MesocycleAction = "resume"
	ActionComplete MesocycleAction = "complete"
)

type mesocycleTransition struct {
	from MesocycleStatus
	to   MesocycleStatus
}

// mesocycleTransitions is the complete transition table. Anything not listed
// is a state conflict.
var mesocycleTransitions = map[MesocycleAction]mesocycleTransition{
	ActionStart:    {from: StatusPlanned, to: StatusActive},
	ActionPause:    {from: StatusActive, to: StatusPaused},
	ActionResume:   {from: StatusPaused, to: StatusActive},
	ActionComplete: {from: StatusActive, to: StatusCompleted},
}

// IsValid reports whether a is a known transition.
func (a MesocycleAction) IsValid() bool {
	_, ok := mesocycleTransitions[a]
	return ok
}

// nowFunc is swapped in tests.
var nowFunc = func() time.Time { return time.Now().UTC() }

// MesocycleParams carries the caller-supplied attributes of a new mesocycle.
type MesocycleParams struct {
	UserID             string
	Name               string
	Description        string
	PeriodizationModel PeriodizationModel
	Goal               TrainingGoal
	DurationWeeks      int
	StartDate          time.Time
	EndDate            time.Time
	TrainingLevel      string
	WeeklyFrequency    int
	DeloadWeeks        []int
}

// Mesocycle is a planned block of training owned by one user. Its status is
// only reachable through the transition methods.
type Mesocycle struct {
	ID                 string
	UserID             string
	Name               string
	Description        string
	PeriodizationModel PeriodizationModel
	Goal               TrainingGoal
	DurationWeeks      int
	StartDate          time.Time
	EndDate            time.Time
	TrainingLevel      string
	WeeklyFrequency    int
	DeloadWeeks        []int
	CreatedAt          time.Time
	UpdatedAt          time.Time

	status MesocycleStatus
}

// NewMesocycle validates p and returns a planned mesocycle with a fresh
// identity. No value is returned when validation fails.
func NewMesocycle(p MesocycleParams) (*Mesocycle, error) {
	now := nowFunc()
	m := &Mesocycle{
		ID:                 uuid.NewString(),
		UserID:             p.UserID,
		Name:               p.Name,
		Description:        p.Description,
		PeriodizationModel: p.PeriodizationModel,
		Goal:               p.Goal,
		DurationWeeks:      p.DurationWeeks,
		StartDate:          DateOnly(p.StartDate),
		EndDate:            DateOnly(p.EndDate),
		TrainingLevel:      p.TrainingLevel,
		WeeklyFrequency:    p.WeeklyFrequency,
		DeloadWeeks:        slices.Clone(p.DeloadWeeks),
		CreatedAt:          now,
		UpdatedAt:          now,
		status:             StatusPlanned,
	}
	if m.DeloadWeeks == nil {
		m.DeloadWeeks = []int{}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// RestoreMesocycle rehydrates a stored mesocycle. The record is re-validated so
// a corrupted document never becomes a live value.
func RestoreMesocycle(m Mesocycle, status MesocycleStatus) (*Mesocycle, error) {
	if !status.IsValid() {
		return nil, newValidationError("status", "unknown status %q", status)
	}
	m.status = status
	if m.DeloadWeeks == nil {
		m.DeloadWeeks = []int{}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the structural invariants of the block.
func (m *Mesocycle) Validate() error {
	if m.DurationWeeks < MinDurationWeeks || m.DurationWeeks > MaxDurationWeeks {
		return newValidationError("duration_weeks", "duration must be between %d and %d weeks, got %d",
			MinDurationWeeks, MaxDurationWeeks, m.DurationWeeks)
	}
	if m.WeeklyFrequency < MinWeeklyFrequency || m.WeeklyFrequency > MaxWeeklyFrequency {
		return newValidationError("weekly_frequency", "weekly frequency must be between %d and %d, got %d",
			MinWeeklyFrequency, MaxWeeklyFrequency, m.WeeklyFrequency)
	}
	if !m.EndDate.After(m.StartDate) {
		return newValidationError("end_date", "end date must be after start date")
	}
	if !m.PeriodizationModel.IsValid() {
		return newValidationError("periodization_model", "unknown periodization model %q", m.PeriodizationModel)
	}
	if !m.Goal.IsValid() {
		return newValidationError("goal", "unknown training goal %q", m.Goal)
	}
	return nil
}

// Status returns the current lifecycle state.
func (m *Mesocycle) Status() MesocycleStatus {
	return m.status
}

// Start moves a planned mesocycle to active.
func (m *Mesocycle) Start() error { return m.Apply(ActionStart) }

// Pause moves an active mesocycle to paused.
func (m *Mesocycle) Pause() error { return m.Apply(ActionPause) }

// Resume moves a paused mesocycle back to active.
func (m *Mesocycle) Resume() error { return m.Apply(ActionResume) }

// Complete moves an active mesocycle to completed.
func (m *Mesocycle) Complete() error { return m.Apply(ActionComplete) }

// Apply performs the named transition. On failure the status is untouched.
func (m *Mesocycle) Apply(action MesocycleAction) error {
	t, ok := mesocycleTransitions[action]
	if !ok || m.status != t.from {
		return &StateConflictError{Entity: "mesocycle", Action: string(action), Status: string(m.status)}
	}
	m.status = t.to
	m.UpdatedAt = nowFunc()
	return nil
}

// CanApply reports whether action is allowed from the current status.
func (m *Mesocycle) CanApply(action MesocycleAction) bool {
	t, ok := mesocycleTransitions[action]
	return ok && m.status == t.from
}

// IsDeloadWeek reports whether week is flagged as a deload week.
func (m *Mesocycle) IsDeloadWeek(week int) bool {
	return slices.Contains(m.DeloadWeeks, week)
}

// NextDeloadWeek returns the first deload week at or after week.
func (m *Mesocycle) NextDeloadWeek(week int) (int, bool) {
	next, found := 0, false
	for _, w := range m.DeloadWeeks {
		if w >= week && (!found || w < next) {
			next, found = w, true
		}
	}
	return next, found
}

// CurrentWeek returns the 1-based training week containing t, 0 before the
// block starts, and DurationWeeks once the block has run its course.
func (m *Mesocycle) CurrentWeek(t time.Time) int {
	day := DateOnly(t)
	if day.Before(m.StartDate) {
		return 0
	}
	week := int(day.Sub(m.StartDate).Hours()/24)/7 + 1
	return min(week, m.DurationWeeks)
}

// Revise replaces the descriptive attributes. Structural parameters are fixed
// once the block exists.
func (m *Mesocycle) Revise(name, description string, deloadWeeks []int) {
	m.Name = name
	m.Description = description
	if deloadWeeks != nil {
		m.DeloadWeeks = slices.Clone(deloadWeeks)
	}
	m.UpdatedAt = nowFunc()
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, mo, d := t.UTC().Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
