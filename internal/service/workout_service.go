package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/repository"

	"go.uber.org/zap"
)

var ErrWorkoutNotFound = errors.New("workout not found")

// WorkoutInput carries the attributes of a scheduled workout. MesocycleID is
// ignored on update.
type WorkoutInput struct {
	MesocycleID      string
	MicrocycleNumber *int
	Name             string
	Description      string
	ScheduledDate    time.Time
	Split            domain.TrainingSplit
	Notes            string
}

type WorkoutService interface {
	Create(ctx context.Context, userID string, in WorkoutInput) (*domain.Workout, error)
	Get(ctx context.Context, userID, id string) (*domain.Workout, error)
	List(ctx context.Context, filter repository.WorkoutFilter, page repository.Page) ([]domain.Workout, int64, error)
	Update(ctx context.Context, userID, id string, in WorkoutInput) (*domain.Workout, error)
	Delete(ctx context.Context, userID, id string) error
	// Complete marks the workout done. Completing twice is a state conflict.
	Complete(ctx context.Context, userID, id string, durationMinutes *int, notes *string) (*domain.Workout, error)
}

type workoutService struct {
	workoutRepo   repository.WorkoutRepository
	mesocycleRepo repository.MesocycleRepository
	log           *zap.Logger
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository, mesocycleRepo repository.MesocycleRepository, log *zap.Logger) WorkoutService {
	return &workoutService{
		workoutRepo:   workoutRepo,
		mesocycleRepo: mesocycleRepo,
		log:           log,
	}
}

func (s *workoutService) Create(ctx context.Context, userID string, in WorkoutInput) (*domain.Workout, error) {
	if in.MesocycleID == "" {
		return nil, &domain.ValidationError{Field: "mesocycle_id", Message: "mesocycle is required"}
	}
	m, err := s.mesocycleRepo.GetByID(ctx, in.MesocycleID, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrMesocycleNotFound)
	}
	if err := checkSchedulable(m, in.MicrocycleNumber); err != nil {
		return nil, err
	}

	w, err := domain.NewWorkout(in.params(userID))
	if err != nil {
		return nil, err
	}
	if err := s.workoutRepo.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}
	s.log.Debug("workout scheduled", zap.String("workout_id", w.ID), zap.String("mesocycle_id", m.ID))
	return w, nil
}

func (s *workoutService) Get(ctx context.Context, userID, id string) (*domain.Workout, error) {
	w, err := s.workoutRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrWorkoutNotFound)
	}
	return w, nil
}

// List expects filter.UserID to be set by the caller.
func (s *workoutService) List(ctx context.Context, filter repository.WorkoutFilter, page repository.Page) ([]domain.Workout, int64, error) {
	return s.workoutRepo.List(ctx, filter, page.Normalize())
}

func (s *workoutService) Update(ctx context.Context, userID, id string, in WorkoutInput) (*domain.Workout, error) {
	w, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	m, err := s.mesocycleRepo.GetByID(ctx, w.MesocycleID, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrMesocycleNotFound)
	}
	if err := checkSchedulable(m, in.MicrocycleNumber); err != nil {
		return nil, err
	}
	if err := w.Reschedule(in.params(userID)); err != nil {
		return nil, err
	}
	if err := s.workoutRepo.Update(ctx, w); err != nil {
		return nil, mapNotFound(err, ErrWorkoutNotFound)
	}
	return w, nil
}

func (s *workoutService) Delete(ctx context.Context, userID, id string) error {
	return mapNotFound(s.workoutRepo.Delete(ctx, id, userID), ErrWorkoutNotFound)
}

func (s *workoutService) Complete(ctx context.Context, userID, id string, durationMinutes *int, notes *string) (*domain.Workout, error) {
	w, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := w.MarkCompleted(durationMinutes, notes); err != nil {
		return nil, err
	}
	if err := s.workoutRepo.MarkCompleted(ctx, w); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, &domain.StateConflictError{Entity: "workout", Action: "complete", Status: "completed"}
		}
		return nil, mapNotFound(err, ErrWorkoutNotFound)
	}
	return w, nil
}

func (in WorkoutInput) params(userID string) domain.WorkoutParams {
	return domain.WorkoutParams{
		MesocycleID:      in.MesocycleID,
		UserID:           userID,
		MicrocycleNumber: in.MicrocycleNumber,
		Name:             in.Name,
		Description:      in.Description,
		ScheduledDate:    in.ScheduledDate,
		Split:            in.Split,
		Notes:            in.Notes,
	}
}

// checkSchedulable rejects workouts in finished blocks and microcycle numbers
// beyond the block's length.
func checkSchedulable(m *domain.Mesocycle, microcycle *int) error {
	if m.Status() == domain.StatusCompleted {
		return &domain.StateConflictError{Entity: "mesocycle", Action: "schedule workout in", Status: string(m.Status())}
	}
	if microcycle != nil && *microcycle > m.DurationWeeks {
		return &domain.ValidationError{Field: "microcycle_id",
			Message: fmt.Sprintf("microcycle %d is beyond the %d-week block", *microcycle, m.DurationWeeks)}
	}
	return nil
}
