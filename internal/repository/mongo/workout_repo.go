// internal/repository/mongo/workout_repo.go
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

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == "" || workout.MesocycleID == "" || workout.UserID == "" {
		return errors.New("workout requires id, mesocycle id and user id")
	}
	if _, err := r.collection.InsertOne(ctx, workout); err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}
	return nil
}

// GetByID retrieves a single workout owned by userID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id, userID string) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// List returns one page of workouts ordered by scheduled date.
func (r *mongoWorkoutRepository) List(ctx context.Context, f repository.WorkoutFilter, page repository.Page) ([]domain.Workout, int64, error) {
	page = page.Normalize()
	filter := bson.M{"user_id": f.UserID}
	if f.MesocycleID != "" {
		filter["mesocycle_id"] = f.MesocycleID
	}
	if f.Completed != nil {
		filter["completed"] = *f.Completed
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count workouts: %w", err)
	}

	findOptions := findPage(page.Offset(), page.Size).
		SetSort(bson.D{{Key: "scheduled_date", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, 0, err
	}
	return workouts, total, nil
}

// Update writes the schedule fields. Mesocycle and owner never change.
func (r *mongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	filter := bson.M{"_id": workout.ID, "user_id": workout.UserID}
	updateDoc := bson.M{
		"$set": bson.M{
			"microcycle_id":  workout.MicrocycleNumber,
			"name":           workout.Name,
			"description":    workout.Description,
			"scheduled_date": workout.ScheduledDate,
			"split":          workout.Split,
			"notes":          workout.Notes,
			"updated_at":     workout.UpdatedAt,
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// MarkCompleted stores the completion only if the stored workout is still
// open.
func (r *mongoWorkoutRepository) MarkCompleted(ctx context.Context, workout *domain.Workout) error {
	filter := bson.M{"_id": workout.ID, "user_id": workout.UserID, "completed": false}
	updateDoc := bson.M{
		"$set": bson.M{
			"completed":        true,
			"completed_at":     workout.CompletedAt,
			"duration_minutes": workout.DurationMinutes,
			"notes":            workout.Notes,
			"updated_at":       workout.UpdatedAt,
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrConflict
	}
	return nil
}

// Delete removes a workout owned by userID.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByMesocycle removes every workout of a mesocycle and reports how many
// were removed.
func (r *mongoWorkoutRepository) DeleteByMesocycle(ctx context.Context, mesocycleID, userID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"mesocycle_id": mesocycleID, "user_id": userID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// StatsByMesocycle counts total, completed and overdue workouts in one
// aggregation.
func (r *mongoWorkoutRepository) StatsByMesocycle(ctx context.Context, mesocycleID, userID string, now time.Time) (repository.WorkoutStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"mesocycle_id": mesocycleID, "user_id": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": 1},
			"completed": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$completed", 1, 0},
			}},
			"overdue": bson.M{"$sum": bson.M{
				"$cond": bson.A{
					bson.M{"$and": bson.A{
						bson.M{"$eq": bson.A{"$completed", false}},
						bson.M{"$lt": bson.A{"$scheduled_date", now}},
					}},
					1, 0,
				},
			}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return repository.WorkoutStats{}, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total     int64 `bson:"total"`
		Completed int64 `bson:"completed"`
		Overdue   int64 `bson:"overdue"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return repository.WorkoutStats{}, err
	}
	if len(rows) == 0 {
		return repository.WorkoutStats{}, nil
	}
	return repository.WorkoutStats{Total: rows[0].Total, Completed: rows[0].Completed, Overdue: rows[0].Overdue}, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "mesocycle_id", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "mesocycle_id", Value: 1}, {Key: "completed", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "scheduled_date", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "scheduled_date", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create indexes for %s: %w", collection.Name(), err)
	}
	return nil
}
