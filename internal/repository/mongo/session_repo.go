package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoTrainingSessionRepository implements repository.TrainingSessionRepository
type mongoTrainingSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingSessionRepository creates a new logged-session repository.
func NewMongoTrainingSessionRepository(db *mongo.Database) repository.TrainingSessionRepository {
	return &mongoTrainingSessionRepository{
		collection: db.Collection(trainingSessionCollectionName),
	}
}

func (r *mongoTrainingSessionRepository) Create(ctx context.Context, s *domain.TrainingSession) error {
	if s.ID == "" || s.UserID == "" {
		return errors.New("training session requires id and user id")
	}
	if _, err := r.collection.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("insert training session: %w", err)
	}
	return nil
}

func (r *mongoTrainingSessionRepository) ListSince(ctx context.Context, userID string, since time.Time, exerciseID int) ([]domain.TrainingSession, error) {
	filter := bson.M{"user_id": userID, "date": bson.M{"$gte": since}}
	if exerciseID > 0 {
		filter["exercises.exercise_id"] = exerciseID
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sessions := []domain.TrainingSession{}
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// EnsureTrainingSessionIndexes creates necessary indexes. Call during startup.
func EnsureTrainingSessionIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "exercises.exercise_id", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create indexes for %s: %w", collection.Name(), err)
	}
	return nil
}
