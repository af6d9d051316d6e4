package api

import (
	"context"
	"time"

	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/repository"
	"wscmeso/mesocycle-planner/internal/service"

	"github.com/stretchr/testify/mock"
)

type AuthServiceMock struct{ mock.Mock }

func (m *AuthServiceMock) Register(ctx context.Context, in service.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}
func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(1).(*domain.User)
	return args.String(0), u, args.Error(2)
}
func (m *AuthServiceMock) ParseToken(tokenString string) (string, error) {
	args := m.Called(tokenString)
	return args.String(0), args.Error(1)
}
func (m *AuthServiceMock) TokenTTL() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

type UserServiceMock struct{ mock.Mock }

func (m *UserServiceMock) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}
func (m *UserServiceMock) UpdateProfile(ctx context.Context, userID string, in service.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, userID, in)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

type ExerciseServiceMock struct{ mock.Mock }

func (m *ExerciseServiceMock) GetExercise(ctx context.Context, id int) (*domain.Exercise, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*domain.Exercise)
	return e, args.Error(1)
}
func (m *ExerciseServiceMock) ListExercises(ctx context.Context, filter repository.ExerciseFilter, page repository.Page) (*service.ExercisePage, error) {
	args := m.Called(ctx, filter, page)
	p, _ := args.Get(0).(*service.ExercisePage)
	return p, args.Error(1)
}
func (m *ExerciseServiceMock) Search(ctx context.Context, query string, limit int) ([]domain.Exercise, error) {
	args := m.Called(ctx, query, limit)
	e, _ := args.Get(0).([]domain.Exercise)
	return e, args.Error(1)
}
func (m *ExerciseServiceMock) Recommended(ctx context.Context, group domain.MuscleGroup, level string) ([]domain.Exercise, error) {
	args := m.Called(ctx, group, level)
	e, _ := args.Get(0).([]domain.Exercise)
	return e, args.Error(1)
}

type MesocycleServiceMock struct{ mock.Mock }

func (m *MesocycleServiceMock) Create(ctx context.Context, userID string, in service.CreateMesocycleInput) (*domain.Mesocycle, error) {
	args := m.Called(ctx, userID, in)
	meso, _ := args.Get(0).(*domain.Mesocycle)
	return meso, args.Error(1)
}
func (m *MesocycleServiceMock) Get(ctx context.Context, userID, id string) (*domain.Mesocycle, error) {
	args := m.Called(ctx, userID, id)
	meso, _ := args.Get(0).(*domain.Mesocycle)
	return meso, args.Error(1)
}
func (m *MesocycleServiceMock) List(ctx context.Context, userID string, status domain.MesocycleStatus, page repository.Page) ([]domain.Mesocycle, int64, error) {
	args := m.Called(ctx, userID, status, page)
	list, _ := args.Get(0).([]domain.Mesocycle)
	return list, args.Get(1).(int64), args.Error(2)
}
func (m *MesocycleServiceMock) Update(ctx context.Context, userID, id string, in service.UpdateMesocycleInput) (*domain.Mesocycle, error) {
	args := m.Called(ctx, userID, id, in)
	meso, _ := args.Get(0).(*domain.Mesocycle)
	return meso, args.Error(1)
}
func (m *MesocycleServiceMock) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}
func (m *MesocycleServiceMock) Transition(ctx context.Context, userID, id string, action domain.MesocycleAction) (*domain.Mesocycle, error) {
	args := m.Called(ctx, userID, id, action)
	meso, _ := args.Get(0).(*domain.Mesocycle)
	return meso, args.Error(1)
}
func (m *MesocycleServiceMock) Microcycle(ctx context.Context, userID, id string, week int) (domain.Microcycle, error) {
	args := m.Called(ctx, userID, id, week)
	mc, _ := args.Get(0).(domain.Microcycle)
	return mc, args.Error(1)
}
func (m *MesocycleServiceMock) Progression(ctx context.Context, userID, id string, week int) (*service.WeekProgression, error) {
	args := m.Called(ctx, userID, id, week)
	p, _ := args.Get(0).(*service.WeekProgression)
	return p, args.Error(1)
}
func (m *MesocycleServiceMock) Dashboard(ctx context.Context, userID, id string) (*service.Dashboard, error) {
	args := m.Called(ctx, userID, id)
	d, _ := args.Get(0).(*service.Dashboard)
	return d, args.Error(1)
}

type WorkoutServiceMock struct{ mock.Mock }

func (m *WorkoutServiceMock) Create(ctx context.Context, userID string, in service.WorkoutInput) (*domain.Workout, error) {
	args := m.Called(ctx, userID, in)
	w, _ := args.Get(0).(*domain.Workout)
	return w, args.Error(1)
}
func (m *WorkoutServiceMock) Get(ctx context.Context, userID, id string) (*domain.Workout, error) {
	args := m.Called(ctx, userID, id)
	w, _ := args.Get(0).(*domain.Workout)
	return w, args.Error(1)
}
func (m *WorkoutServiceMock) List(ctx context.Context, filter repository.WorkoutFilter, page repository.Page) ([]domain.Workout, int64, error) {
	args := m.Called(ctx, filter, page)
	w, _ := args.Get(0).([]domain.Workout)
	return w, args.Get(1).(int64), args.Error(2)
}
func (m *WorkoutServiceMock) Update(ctx context.Context, userID, id string, in service.WorkoutInput) (*domain.Workout, error) {
	args := m.Called(ctx, userID, id, in)
	w, _ := args.Get(0).(*domain.Workout)
	return w, args.Error(1)
}
func (m *WorkoutServiceMock) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}
func (m *WorkoutServiceMock) Complete(ctx context.Context, userID, id string, durationMinutes *int, notes *string) (*domain.Workout, error) {
	args := m.Called(ctx, userID, id, durationMinutes, notes)
	w, _ := args.Get(0).(*domain.Workout)
	return w, args.Error(1)
}

type ProgressServiceMock struct{ mock.Mock }

func (m *ProgressServiceMock) Create(ctx context.Context, userID string, in service.ProgressInput) (*domain.Progress, error) {
	args := m.Called(ctx, userID, in)
	p, _ := args.Get(0).(*domain.Progress)
	return p, args.Error(1)
}
func (m *ProgressServiceMock) Get(ctx context.Context, userID, id string) (*domain.Progress, error) {
	args := m.Called(ctx, userID, id)
	p, _ := args.Get(0).(*domain.Progress)
	return p, args.Error(1)
}
func (m *ProgressServiceMock) List(ctx context.Context, filter repository.ProgressFilter, page repository.Page) ([]domain.Progress, int64, error) {
	args := m.Called(ctx, filter, page)
	p, _ := args.Get(0).([]domain.Progress)
	return p, args.Get(1).(int64), args.Error(2)
}
func (m *ProgressServiceMock) Update(ctx context.Context, userID, id string, in service.ProgressInput) (*domain.Progress, error) {
	args := m.Called(ctx, userID, id, in)
	p, _ := args.Get(0).(*domain.Progress)
	return p, args.Error(1)
}
func (m *ProgressServiceMock) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}
func (m *ProgressServiceMock) Analytics(ctx context.Context, userID string, metric domain.MetricType, from, to time.Time) (domain.ProgressSummary, error) {
	args := m.Called(ctx, userID, metric, from, to)
	s, _ := args.Get(0).(domain.ProgressSummary)
	return s, args.Error(1)
}
func (m *ProgressServiceMock) PhotoUploadURL(ctx context.Context, userID, id, contentType string) (*service.PhotoURL, error) {
	args := m.Called(ctx, userID, id, contentType)
	u, _ := args.Get(0).(*service.PhotoURL)
	return u, args.Error(1)
}
func (m *ProgressServiceMock) PhotoDownloadURL(ctx context.Context, userID, id string) (*service.PhotoURL, error) {
	args := m.Called(ctx, userID, id)
	u, _ := args.Get(0).(*service.PhotoURL)
	return u, args.Error(1)
}

type TrackingServiceMock struct{ mock.Mock }

func (m *TrackingServiceMock) LogSession(ctx context.Context, userID string, in service.SessionInput) (*domain.TrainingSession, error) {
	args := m.Called(ctx, userID, in)
	s, _ := args.Get(0).(*domain.TrainingSession)
	return s, args.Error(1)
}
func (m *TrackingServiceMock) Stats(ctx context.Context, userID string, exerciseID, weeksBack int) (*service.TrainingStats, error) {
	args := m.Called(ctx, userID, exerciseID, weeksBack)
	s, _ := args.Get(0).(*service.TrainingStats)
	return s, args.Error(1)
}
