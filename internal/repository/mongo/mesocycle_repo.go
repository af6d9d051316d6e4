// internal/repository/mongo/mesocycle_repo.go
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

// mesocycleDocument is the stored shape of a domain.Mesocycle.
type mesocycleDocument struct {
	ID                 string    `bson:"_id"`
	UserID             string    `bson:"user_id"`
	Name               string    `bson:"name"`
	Description        string    `bson:"description,omitempty"`
	PeriodizationModel string    `bson:"periodization_model"`
	Goal               string    `bson:"goal"`
	DurationWeeks      int       `bson:"duration_weeks"`
	StartDate          time.Time `bson:"start_date"`
	EndDate            time.Time `bson:"end_date"`
	Status             string    `bson:"status"`
	TrainingLevel      string    `bson:"training_level"`
	WeeklyFrequency    int       `bson:"weekly_frequency"`
	DeloadWeeks        []int     `bson:"deload_weeks"`
	CreatedAt          time.Time `bson:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at"`
}

func toMesocycleDocument(m *domain.Mesocycle) mesocycleDocument {
	return mesocycleDocument{
		ID:                 m.ID,
		UserID:             m.UserID,
		Name:               m.Name,
		Description:        m.Description,
		PeriodizationModel: string(m.PeriodizationModel),
		Goal:               string(m.Goal),
		DurationWeeks:      m.DurationWeeks,
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		Status:             string(m.Status()),
		TrainingLevel:      m.TrainingLevel,
		WeeklyFrequency:    m.WeeklyFrequency,
		DeloadWeeks:        m.DeloadWeeks,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func (d mesocycleDocument) toDomain() (*domain.Mesocycle, error) {
	m, err := domain.RestoreMesocycle(domain.Mesocycle{
		ID:                 d.ID,
		UserID:             d.UserID,
		Name:               d.Name,
		Description:        d.Description,
		PeriodizationModel: domain.PeriodizationModel(d.PeriodizationModel),
		Goal:               domain.TrainingGoal(d.Goal),
		DurationWeeks:      d.DurationWeeks,
		StartDate:          d.StartDate.UTC(),
		EndDate:            d.EndDate.UTC(),
		TrainingLevel:      d.TrainingLevel,
		WeeklyFrequency:    d.WeeklyFrequency,
		DeloadWeeks:        d.DeloadWeeks,
		CreatedAt:          d.CreatedAt.UTC(),
		UpdatedAt:          d.UpdatedAt.UTC(),
	}, domain.MesocycleStatus(d.Status))
	if err != nil {
		return nil, fmt.Errorf("stored mesocycle %s: %w", d.ID, err)
	}
	return m, nil
}

// mongoMesocycleRepository implements repository.MesocycleRepository
type mongoMesocycleRepository struct {
	collection *mongo.Collection
}

// NewMongoMesocycleRepository creates a new Mesocycle repository.
func NewMongoMesocycleRepository(db *mongo.Database) repository.MesocycleRepository {
	return &mongoMesocycleRepository{
		collection: db.Collection(mesocycleCollectionName),
	}
}

// Create inserts a new mesocycle.
func (r *mongoMesocycleRepository) Create(ctx context.Context, m *domain.Mesocycle) error {
	if m.ID == "" || m.UserID == "" {
		return errors.New("mesocycle requires id and user id")
	}
	if _, err := r.collection.InsertOne(ctx, toMesocycleDocument(m)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert mesocycle: %w", err)
	}
	return nil
}

// GetByID retrieves a mesocycle owned by userID.
func (r *mongoMesocycleRepository) GetByID(ctx context.Context, id, userID string) (*domain.Mesocycle, error) {
	var doc mesocycleDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

// ListByUser returns one page of the user's mesocycles, newest start first.
// An empty status lists every status.
func (r *mongoMesocycleRepository) ListByUser(ctx context.Context, userID string, status domain.MesocycleStatus, page repository.Page) ([]domain.Mesocycle, int64, error) {
	page = page.Normalize()
	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count mesocycles: %w", err)
	}

	findOptions := findPage(page.Offset(), page.Size).
		SetSort(bson.D{{Key: "start_date", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []mesocycleDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	mesocycles := make([]domain.Mesocycle, 0, len(docs))
	for _, d := range docs {
		m, err := d.toDomain()
		if err != nil {
			return nil, 0, err
		}
		mesocycles = append(mesocycles, *m)
	}
	return mesocycles, total, nil
}

// Update writes the descriptive fields. Status changes go through
// UpdateStatus.
func (r *mongoMesocycleRepository) Update(ctx context.Context, m *domain.Mesocycle) error {
	filter := bson.M{"_id": m.ID, "user_id": m.UserID}
	update := bson.M{
		"$set": bson.M{
			"name":         m.Name,
			"description":  m.Description,
			"deload_weeks": m.DeloadWeeks,
			"updated_at":   m.UpdatedAt,
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateStatus stores the transition made in memory, guarded on the status the
// transition started from.
func (r *mongoMesocycleRepository) UpdateStatus(ctx context.Context, m *domain.Mesocycle, from domain.MesocycleStatus) error {
	filter := bson.M{"_id": m.ID, "user_id": m.UserID, "status": from}
	update := bson.M{
		"$set": bson.M{
			"status":     m.Status(),
			"updated_at": m.UpdatedAt,
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrConflict
	}
	return nil
}

// Delete removes a mesocycle owned by userID.
func (r *mongoMesocycleRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMesocycleIndexes creates necessary indexes. Call during startup.
func EnsureMesocycleIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index(),
		},
		{
			// Listing by owner filtered on status
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create indexes for %s: %w", collection.Name(), err)
	}
	return nil
}
