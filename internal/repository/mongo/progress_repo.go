package mongo

import (
	"context"
	"errors"
	"fmt"

	"wscmeso/mesocycle-planner/internal/domain"
	"wscmeso/mesocycle-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates a new Progress repository.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

func (r *mongoProgressRepository) Create(ctx context.Context, p *domain.Progress) error {
	if p.ID == "" || p.UserID == "" {
		return errors.New("progress requires id and user id")
	}
	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert progress: %w", err)
	}
	return nil
}

func (r *mongoProgressRepository) GetByID(ctx context.Context, id, userID string) (*domain.Progress, error) {
	var p domain.Progress
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func progressFilter(f repository.ProgressFilter) bson.M {
	filter := bson.M{"user_id": f.UserID}
	if f.MetricType != "" {
		filter["metric_type"] = f.MetricType
	}
	date := bson.M{}
	if !f.From.IsZero() {
		date["$gte"] = f.From
	}
	if !f.To.IsZero() {
		date["$lte"] = f.To
	}
	if len(date) > 0 {
		filter["date"] = date
	}
	return filter
}

// List returns one page of entries, newest first.
func (r *mongoProgressRepository) List(ctx context.Context, f repository.ProgressFilter, page repository.Page) ([]domain.Progress, int64, error) {
	page = page.Normalize()
	filter := progressFilter(f)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count progress: %w", err)
	}

	findOptions := findPage(page.Offset(), page.Size).
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	entries := []domain.Progress{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *mongoProgressRepository) ListAll(ctx context.Context, f repository.ProgressFilter) ([]domain.Progress, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, progressFilter(f), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []domain.Progress{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mongoProgressRepository) Update(ctx context.Context, p *domain.Progress) error {
	update := bson.M{
		"$set": bson.M{
			"date":        p.Date,
			"metric_type": p.MetricType,
			"value":       p.Value,
			"unit":        p.Unit,
			"notes":       p.Notes,
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": p.ID, "user_id": p.UserID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetPhotoKey records the object storage key of the entry's photo.
func (r *mongoProgressRepository) SetPhotoKey(ctx context.Context, id, userID, key string) error {
	update := bson.M{"$set": bson.M{"photo_key": key}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "user_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoProgressRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProgressIndexes creates necessary indexes. Call during startup.
func EnsureProgressIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "metric_type", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create indexes for %s: %w", collection.Name(), err)
	}
	return nil
}
