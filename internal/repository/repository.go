package repository

import (
	"context"
	"time"

	"wscmeso/mesocycle-planner/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
	// ErrConflict means a guarded update matched nothing because the stored
	// document changed underneath the caller.
	ErrConflict = RepositoryError("concurrent modification")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Paging defaults.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page selects a 1-based window of a listing.
type Page struct {
	Number int
	Size   int
}

// Normalize fills in defaults and clamps the page size.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p Page) Offset() int64 {
	p = p.Normalize()
	return int64((p.Number - 1) * p.Size)
}

// TotalPages is the number of pages needed for total items.
func (p Page) TotalPages(total int64) int {
	p = p.Normalize()
	if total <= 0 {
		return 0
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// ExerciseFilter narrows exercise listings. Zero values match everything.
type ExerciseFilter struct {
	MuscleGroup domain.MuscleGroup
	Type        domain.ExerciseType
	Difficulty  string
}

// ExerciseRepository is read-only; the library is seeded out of band.
type ExerciseRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Exercise, error)
	List(ctx context.Context, filter ExerciseFilter, page Page) ([]domain.Exercise, int64, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Exercise, error)
}

// MesocycleRepository stores mesocycles. Every lookup is scoped to the owner.
type MesocycleRepository interface {
	Create(ctx context.Context, m *domain.Mesocycle) error
	GetByID(ctx context.Context, id, userID string) (*domain.Mesocycle, error)
	ListByUser(ctx context.Context, userID string, status domain.MesocycleStatus, page Page) ([]domain.Mesocycle, int64, error)
	Update(ctx context.Context, m *domain.Mesocycle) error
	// UpdateStatus persists a transition only if the stored status still
	// equals from. Returns ErrConflict otherwise.
	UpdateStatus(ctx context.Context, m *domain.Mesocycle, from domain.MesocycleStatus) error
	Delete(ctx context.Context, id, userID string) error
}

// WorkoutFilter narrows workout listings.
type WorkoutFilter struct {
	UserID      string
	MesocycleID string
	Completed   *bool
}

// WorkoutStats counts the workouts of one mesocycle.
type WorkoutStats struct {
	Total     int64
	Completed int64
	Overdue   int64
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	Create(ctx context.Context, w *domain.Workout) error
	GetByID(ctx context.Context, id, userID string) (*domain.Workout, error)
	List(ctx context.Context, filter WorkoutFilter, page Page) ([]domain.Workout, int64, error)
	Update(ctx context.Context, w *domain.Workout) error
	// MarkCompleted sets the completion fields only if the workout is not
	// completed yet. Returns ErrConflict otherwise.
	MarkCompleted(ctx context.Context, w *domain.Workout) error
	Delete(ctx context.Context, id, userID string) error
	DeleteByMesocycle(ctx context.Context, mesocycleID, userID string) (int64, error)
	StatsByMesocycle(ctx context.Context, mesocycleID, userID string, now time.Time) (WorkoutStats, error)
}

// ProgressFilter narrows progress listings. Zero times are open bounds.
type ProgressFilter struct {
	UserID     string
	MetricType domain.MetricType
	From       time.Time
	To         time.Time
}

// ProgressRepository defines the interface for interacting with progress data.
type ProgressRepository interface {
	Create(ctx context.Context, p *domain.Progress) error
	GetByID(ctx context.Context, id, userID string) (*domain.Progress, error)
	List(ctx context.Context, filter ProgressFilter, page Page) ([]domain.Progress, int64, error)
	// ListAll returns every matching entry, oldest first.
	ListAll(ctx context.Context, filter ProgressFilter) ([]domain.Progress, error)
	Update(ctx context.Context, p *domain.Progress) error
	SetPhotoKey(ctx context.Context, id, userID, key string) error
	Delete(ctx context.Context, id, userID string) error
}

// TrainingSessionRepository defines the interface for logged sessions.
type TrainingSessionRepository interface {
	Create(ctx context.Context, s *domain.TrainingSession) error
	// ListSince returns the user's sessions on or after since, oldest first.
	// A non-zero exerciseID keeps only sessions that trained it.
	ListSince(ctx context.Context, userID string, since time.Time, exerciseID int) ([]domain.TrainingSession, error)
}
