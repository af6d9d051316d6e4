package service

import (
	"context"
	"time"

	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/events"
	"wscmeso/mesocycle-planner/internal/repository"

	"github.com/stretchr/testify/mock"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *UserRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}
func (m *UserRepoMock) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}
func (m *UserRepoMock) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type ExerciseRepoMock struct{ mock.Mock }

func (m *ExerciseRepoMock) GetByID(ctx context.Context, id int) (*domain.Exercise, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*domain.Exercise)
	return e, args.Error(1)
}
func (m *ExerciseRepoMock) List(ctx context.Context, filter repository.ExerciseFilter, page repository.Page) ([]domain.Exercise, int64, error) {
	args := m.Called(ctx, filter, page)
	list, _ := args.Get(0).([]domain.Exercise)
	return list, args.Get(1).(int64), args.Error(2)
}
func (m *ExerciseRepoMock) Search(ctx context.Context, query string, limit int) ([]domain.Exercise, error) {
	args := m.Called(ctx, query, limit)
	list, _ := args.Get(0).([]domain.Exercise)
	return list, args.Error(1)
}

type MesocycleRepoMock struct{ mock.Mock }

func (m *MesocycleRepoMock) Create(ctx context.Context, meso *domain.Mesocycle) error {
	return m.Called(ctx, meso).Error(0)
}
func (m *MesocycleRepoMock) GetByID(ctx context.Context, id, userID string) (*domain.Mesocycle, error) {
	args := m.Called(ctx, id, userID)
	meso, _ := args.Get(0).(*domain.Mesocycle)
	return meso, args.Error(1)
}
func (m *MesocycleRepoMock) ListByUser(ctx context.Context, userID string, status domain.MesocycleStatus, page repository.Page) ([]domain.Mesocycle, int64, error) {
	args := m.Called(ctx, userID, status, page)
	list, _ := args.Get(0).([]domain.Mesocycle)
	return list, args.Get(1).(int64), args.Error(2)
}
func (m *MesocycleRepoMock) Update(ctx context.Context, meso *domain.Mesocycle) error {
	return m.Called(ctx, meso).Error(0)
}
func (m *MesocycleRepoMock) UpdateStatus(ctx context.Context, meso *domain.Mesocycle, from domain.MesocycleStatus) error {
	return m.Called(ctx, meso, from).Error(0)
}
func (m *MesocycleRepoMock) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

type WorkoutRepoMock struct{ mock.Mock }

func (m *WorkoutRepoMock) Create(ctx context.Context, w *domain.Workout) error {
	return m.Called(ctx, w).Error(0)
}
func (m *WorkoutRepoMock) GetByID(ctx context.Context, id, userID string) (*domain.Workout, error) {
	args := m.Called(ctx, id, userID)
	w, _ := args.Get(0).(*domain.Workout)
	return w, args.Error(1)
}
func (m *WorkoutRepoMock) List(ctx context.Context, filter repository.WorkoutFilter, page repository.Page) ([]domain.Workout, int64, error) {
	args := m.Called(ctx, filter, page)
	list, _ := args.Get(0).([]domain.Workout)
	return list, args.Get(1).(int64), args.Error(2)
}
func (m *WorkoutRepoMock) Update(ctx context.Context, w *domain.Workout) error {
	return m.Called(ctx, w).Error(0)
}
func (m *WorkoutRepoMock) MarkCompleted(ctx context.Context, w *domain.Workout) error {
	return m.Called(ctx, w).Error(0)
}
func (m *WorkoutRepoMock) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}
func (m *WorkoutRepoMock) DeleteByMesocycle(ctx context.Context, mesocycleID, userID string) (int64, error) {
	args := m.Called(ctx, mesocycleID, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *WorkoutRepoMock) StatsByMesocycle(ctx context.Context, mesocycleID, userID string, now time.Time) (repository.WorkoutStats, error) {
	args := m.Called(ctx, mesocycleID, userID, now)
	return args.Get(0).(repository.WorkoutStats), args.Error(1)
}

type ProgressRepoMock struct{ mock.Mock }

func (m *ProgressRepoMock) Create(ctx context.Context, p *domain.Progress) error {
	return m.Called(ctx, p).Error(0)
}
func (m *ProgressRepoMock) GetByID(ctx context.Context, id, userID string) (*domain.Progress, error) {
	args := m.Called(ctx, id, userID)
	p, _ := args.Get(0).(*domain.Progress)
	return p, args.Error(1)
}
func (m *ProgressRepoMock) List(ctx context.Context, filter repository.ProgressFilter, page repository.Page) ([]domain.Progress, int64, error) {
	args := m.Called(ctx, filter, page)
	list, _ := args.Get(0).([]domain.Progress)
	return list, args.Get(1).(int64), args.Error(2)
}
func (m *ProgressRepoMock) ListAll(ctx context.Context, filter repository.ProgressFilter) ([]domain.Progress, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.Progress)
	return list, args.Error(1)
}
func (m *ProgressRepoMock) Update(ctx context.Context, p *domain.Progress) error {
	return m.Called(ctx, p).Error(0)
}
func (m *ProgressRepoMock) SetPhotoKey(ctx context.Context, id, userID, key string) error {
	return m.Called(ctx, id, userID, key).Error(0)
}
func (m *ProgressRepoMock) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

type SessionRepoMock struct{ mock.Mock }

func (m *SessionRepoMock) Create(ctx context.Context, s *domain.TrainingSession) error {
	return m.Called(ctx, s).Error(0)
}
func (m *SessionRepoMock) ListSince(ctx context.Context, userID string, since time.Time, exerciseID int) ([]domain.TrainingSession, error) {
	args := m.Called(ctx, userID, since, exerciseID)
	list, _ := args.Get(0).([]domain.TrainingSession)
	return list, args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) PublishMesocycleEvent(ctx context.Context, e events.MesocycleEvent) error {
	return m.Called(ctx, e).Error(0)
}
func (m *PublisherMock) Close() error { return m.Called().Error(0) }

type StorageMock struct{ mock.Mock }

func (m *StorageMock) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, contentType, expires)
	return args.String(0), args.Error(1)
}
func (m *StorageMock) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expires)
	return args.String(0), args.Error(1)
}
func (m *StorageMock) DeleteObject(ctx context.Context, objectKey string) error {
	return m.Called(ctx, objectKey).Error(0)
}
