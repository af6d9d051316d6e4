package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// Collection names.
const (
	userCollectionName            = "users"
	exerciseCollectionName        = "exercises"
	mesocycleCollectionName       = "mesocycles"
	workoutCollectionName         = "workouts"
	progressCollectionName        = "progress"
	trainingSessionCollectionName = "training_sessions"
)

// ConnectDB establishes a connection to MongoDB using the provided URI and
// verifies it with a ping. The caller owns the client and must call
// DisconnectDB at shutdown.
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping the primary node; the connect call alone does not reach the server.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}
	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// Ping checks that the primary is reachable. Used by the health endpoint.
func Ping(ctx context.Context, db *mongo.Database) error {
	return db.Client().Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the indexes of every collection. Failures are joined
// so one bad collection does not hide the others.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return errors.Join(
		EnsureUserIndexes(ctx, db.Collection(userCollectionName)),
		EnsureExerciseIndexes(ctx, db.Collection(exerciseCollectionName)),
		EnsureMesocycleIndexes(ctx, db.Collection(mesocycleCollectionName)),
		EnsureWorkoutIndexes(ctx, db.Collection(workoutCollectionName)),
		EnsureProgressIndexes(ctx, db.Collection(progressCollectionName)),
		EnsureTrainingSessionIndexes(ctx, db.Collection(trainingSessionCollectionName)),
	)
}

func findPage(skip int64, size int) *options.FindOptions {
	return options.Find().SetSkip(skip).SetLimit(int64(size))
}
