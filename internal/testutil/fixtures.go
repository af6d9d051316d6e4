package testutil

import (
	"context"
	"testing"
	"time"

	"wscmeso/mesocycle-planner/internal/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with a unique email and username.
func (f *Fixtures) CreateUser(ctx context.Context, level domain.TrainingLevel) domain.User {
	f.t.Helper()

	suffix := uuid.NewString()[:8]
	now := time.Now().UTC().Truncate(time.Millisecond)
	user := domain.User{
		ID:            uuid.NewString(),
		Email:         "lifter-" + suffix + "@test.com",
		Username:      "lifter-" + suffix,
		PasswordHash:  "$2a$10$notarealhashnotarealhashnotarealhashnotarealhashnot",
		FullName:      "Test Lifter",
		TrainingLevel: level,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateExercises seeds the exercise library.
func (f *Fixtures) CreateExercises(ctx context.Context, exercises ...domain.Exercise) {
	f.t.Helper()

	docs := make([]any, len(exercises))
	for i, e := range exercises {
		docs[i] = e
	}
	if _, err := f.db.Collection("exercises").InsertMany(ctx, docs); err != nil {
		f.t.Fatalf("failed to seed exercises: %v", err)
	}
}

// SampleExercises is a small library covering two muscle groups.
func SampleExercises() []domain.Exercise {
	return []domain.Exercise{
		{ID: 1, Name: "Barbell Bench Press", Number: "1.1", MuscleGroup: domain.MusclePectorals, Type: domain.TypeFreeWeight,
			PrimaryMuscles: []string{"pectoralis major"}, SecondaryMuscles: []string{"triceps", "anterior deltoid"},
			Execution: "Lower the bar to the chest and press", Difficulty: "intermediate"},
		{ID: 2, Name: "Cable Fly", Number: "1.2", MuscleGroup: domain.MusclePectorals, Type: domain.TypeCable,
			PrimaryMuscles: []string{"pectoralis major"}, Execution: "Bring the handles together", Difficulty: "beginner"},
		{ID: 3, Name: "Back Squat", Number: "7.1", MuscleGroup: domain.MuscleLegs, Type: domain.TypeFreeWeight,
			PrimaryMuscles: []string{"quadriceps", "gluteus maximus"}, Comments: "Keep the chest up", Difficulty: "advanced"},
		{ID: 4, Name: "Leg Press", Number: "7.2", MuscleGroup: domain.MuscleLegs, Type: domain.TypeMachine,
			PrimaryMuscles: []string{"quadriceps"}, Difficulty: "beginner"},
	}
}

// NewMesocycle builds a valid planned twelve-week mesocycle for userID.
func NewMesocycle(t *testing.T, userID string) *domain.Mesocycle {
	t.Helper()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m, err := domain.NewMesocycle(domain.MesocycleParams{
		UserID:             userID,
		Name:               "Test block",
		PeriodizationModel: domain.PeriodizationLinear,
		Goal:               domain.GoalHypertrophy,
		DurationWeeks:      12,
		StartDate:          start,
		EndDate:            start.AddDate(0, 0, 82),
		TrainingLevel:      "intermediate",
		WeeklyFrequency:    4,
		DeloadWeeks:        []int{4, 8, 12},
	})
	if err != nil {
		t.Fatalf("failed to build test mesocycle: %v", err)
	}
	return m
}
