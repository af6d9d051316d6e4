package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/events"
	"wscmeso/mesocycle-planner/internal/metrics"
	"wscmeso/mesocycle-planner/internal/repository"

	"go.uber.org/zap"
)

var ErrMesocycleNotFound = errors.New("mesocycle not found")

// CreateMesocycleInput carries the attributes of a new block. An empty
// TrainingLevel is taken from the owner's profile.
type CreateMesocycleInput struct {
	Name               string
	Description        string
	PeriodizationModel domain.PeriodizationModel
	Goal               domain.TrainingGoal
	DurationWeeks      int
	StartDate          time.Time
	EndDate            time.Time
	TrainingLevel      string
	WeeklyFrequency    int
	DeloadWeeks        []int
}

// UpdateMesocycleInput carries the editable attributes. Nil DeloadWeeks keeps
// the current list.
type UpdateMesocycleInput struct {
	Name        string
	Description string
	DeloadWeeks []int
}

// Dashboard summarizes where a block stands today.
type Dashboard struct {
	Mesocycle *domain.Mesocycle
	// CurrentWeek is 0 before the block starts.
	CurrentWeek       int
	CurrentMicrocycle *domain.Microcycle
	Workouts          repository.WorkoutStats
	CompletionRate    float64
	NextDeloadWeek    *int
}

// WeekProgression is the goal's baseline load next to one week's plan.
type WeekProgression struct {
	Week        int
	Progression domain.ProgressionRow
	Microcycle  domain.Microcycle
}

type MesocycleService interface {
	Create(ctx context.Context, userID string, in CreateMesocycleInput) (*domain.Mesocycle, error)
	Get(ctx context.Context, userID, id string) (*domain.Mesocycle, error)
	List(ctx context.Context, userID string, status domain.MesocycleStatus, page repository.Page) ([]domain.Mesocycle, int64, error)
	Update(ctx context.Context, userID, id string, in UpdateMesocycleInput) (*domain.Mesocycle, error)
	// Delete removes the block and every workout scheduled in it.
	Delete(ctx context.Context, userID, id string) error
	Transition(ctx context.Context, userID, id string, action domain.MesocycleAction) (*domain.Mesocycle, error)
	Microcycle(ctx context.Context, userID, id string, week int) (domain.Microcycle, error)
	// Progression plans week, or the current week when week is 0.
	Progression(ctx context.Context, userID, id string, week int) (*WeekProgression, error)
	Dashboard(ctx context.Context, userID, id string) (*Dashboard, error)
}

type mesocycleService struct {
	mesocycleRepo repository.MesocycleRepository
	workoutRepo   repository.WorkoutRepository
	userRepo      repository.UserRepository
	publisher     events.Publisher
	log           *zap.Logger
	now           func() time.Time
}

func NewMesocycleService(
	mesocycleRepo repository.MesocycleRepository,
	workoutRepo repository.WorkoutRepository,
	userRepo repository.UserRepository,
	publisher events.Publisher,
	log *zap.Logger,
) MesocycleService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &mesocycleService{
		mesocycleRepo: mesocycleRepo,
		workoutRepo:   workoutRepo,
		userRepo:      userRepo,
		publisher:     publisher,
		log:           log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// checkDeloadWeeks keeps scheduled deloads inside the block.
func checkDeloadWeeks(weeks []int, durationWeeks int) error {
	for _, w := range weeks {
		if w < 1 || w > durationWeeks {
			return &domain.ValidationError{Field: "deload_weeks",
				Message: fmt.Sprintf("deload week %d is outside 1..%d", w, durationWeeks)}
		}
	}
	return nil
}

func (s *mesocycleService) Create(ctx context.Context, userID string, in CreateMesocycleInput) (*domain.Mesocycle, error) {
	level := in.TrainingLevel
	if level == "" {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, mapNotFound(err, ErrUserNotFound)
		}
		level = string(user.TrainingLevel)
	}

	m, err := domain.NewMesocycle(domain.MesocycleParams{
		UserID:             userID,
		Name:               in.Name,
		Description:        in.Description,
		PeriodizationModel: in.PeriodizationModel,
		Goal:               in.Goal,
		DurationWeeks:      in.DurationWeeks,
		StartDate:          in.StartDate,
		EndDate:            in.EndDate,
		TrainingLevel:      level,
		WeeklyFrequency:    in.WeeklyFrequency,
		DeloadWeeks:        in.DeloadWeeks,
	})
	if err != nil {
		return nil, err
	}
	if err := checkDeloadWeeks(m.DeloadWeeks, m.DurationWeeks); err != nil {
		return nil, err
	}
	if err := s.mesocycleRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create mesocycle: %w", err)
	}
	s.log.Info("mesocycle created",
		zap.String("mesocycle_id", m.ID),
		zap.String("user_id", userID),
		zap.String("goal", string(m.Goal)),
		zap.Int("weeks", m.DurationWeeks),
	)
	return m, nil
}

func (s *mesocycleService) Get(ctx context.Context, userID, id string) (*domain.Mesocycle, error) {
	m, err := s.mesocycleRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrMesocycleNotFound)
	}
	return m, nil
}

func (s *mesocycleService) List(ctx context.Context, userID string, status domain.MesocycleStatus, page repository.Page) ([]domain.Mesocycle, int64, error) {
	if status != "" && !status.IsValid() {
		return nil, 0, &domain.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}
	return s.mesocycleRepo.ListByUser(ctx, userID, status, page.Normalize())
}

func (s *mesocycleService) Update(ctx context.Context, userID, id string, in UpdateMesocycleInput) (*domain.Mesocycle, error) {
	m, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Message: "name is required"}
	}
	if err := checkDeloadWeeks(in.DeloadWeeks, m.DurationWeeks); err != nil {
		return nil, err
	}
	m.Revise(in.Name, in.Description, in.DeloadWeeks)
	if err := s.mesocycleRepo.Update(ctx, m); err != nil {
		return nil, mapNotFound(err, ErrMesocycleNotFound)
	}
	return m, nil
}

func (s *mesocycleService) Delete(ctx context.Context, userID, id string) error {
	if err := s.mesocycleRepo.Delete(ctx, id, userID); err != nil {
		return mapNotFound(err, ErrMesocycleNotFound)
	}
	n, err := s.workoutRepo.DeleteByMesocycle(ctx, id, userID)
	if err != nil {
		// The block is gone; orphaned workouts are unreachable through it.
		s.log.Error("delete mesocycle workouts", zap.String("mesocycle_id", id), zap.Error(err))
		return nil
	}
	s.log.Info("mesocycle deleted", zap.String("mesocycle_id", id), zap.Int64("workouts_deleted", n))
	return nil
}

// Transition applies action and persists it with a compare-and-set on the
// previous status. Losing a race against another writer is reported as a
// state conflict against the status that won.
func (s *mesocycleService) Transition(ctx context.Context, userID, id string, action domain.MesocycleAction) (*domain.Mesocycle, error) {
	m, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	from := m.Status()
	if err := m.Apply(action); err != nil {
		metrics.MesocycleTransitions.WithLabelValues(string(action), "conflict").Inc()
		return nil, err
	}

	if err := s.mesocycleRepo.UpdateStatus(ctx, m, from); err != nil {
		if !errors.Is(err, repository.ErrConflict) {
			metrics.MesocycleTransitions.WithLabelValues(string(action), "error").Inc()
			return nil, fmt.Errorf("update mesocycle status: %w", err)
		}
		metrics.MesocycleTransitions.WithLabelValues(string(action), "conflict").Inc()
		current, gerr := s.Get(ctx, userID, id)
		if gerr != nil {
			return nil, gerr
		}
		return nil, &domain.StateConflictError{Entity: "mesocycle", Action: string(action), Status: string(current.Status())}
	}
	metrics.MesocycleTransitions.WithLabelValues(string(action), "ok").Inc()

	event := events.MesocycleEvent{
		MesocycleID: m.ID,
		UserID:      userID,
		Action:      string(action),
		From:        string(from),
		To:          string(m.Status()),
		OccurredAt:  m.UpdatedAt,
	}
	if err := s.publisher.PublishMesocycleEvent(ctx, event); err != nil {
		s.log.Warn("publish mesocycle event",
			zap.String("mesocycle_id", m.ID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
	return m, nil
}

func (s *mesocycleService) Microcycle(ctx context.Context, userID, id string, week int) (domain.Microcycle, error) {
	m, err := s.Get(ctx, userID, id)
	if err != nil {
		return domain.Microcycle{}, err
	}
	return m.PlanMicrocycle(week)
}

func (s *mesocycleService) Progression(ctx context.Context, userID, id string, week int) (*WeekProgression, error) {
	m, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if week == 0 {
		week = max(m.CurrentWeek(s.now()), 1)
	}
	mc, err := m.PlanMicrocycle(week)
	if err != nil {
		return nil, err
	}
	return &WeekProgression{
		Week:        week,
		Progression: domain.ProgressionFor(m.Goal),
		Microcycle:  mc,
	}, nil
}

func (s *mesocycleService) Dashboard(ctx context.Context, userID, id string) (*Dashboard, error) {
	m, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	stats, err := s.workoutRepo.StatsByMesocycle(ctx, m.ID, userID, now)
	if err != nil {
		return nil, fmt.Errorf("workout stats: %w", err)
	}

	d := &Dashboard{
		Mesocycle:   m,
		CurrentWeek: m.CurrentWeek(now),
		Workouts:    stats,
	}
	if stats.Total > 0 {
		d.CompletionRate = float64(stats.Completed) / float64(stats.Total)
	}
	if d.CurrentWeek > 0 {
		mc, err := m.PlanMicrocycle(d.CurrentWeek)
		if err != nil {
			return nil, err
		}
		d.CurrentMicrocycle = &mc
	}
	if next, ok := m.NextDeloadWeek(max(d.CurrentWeek, 1)); ok {
		d.NextDeloadWeek = &next
	}
	return d, nil
}
