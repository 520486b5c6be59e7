package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskcrate/task-tracker/internal/core/domain"
)

const collectionTracking = "tracking"

// TrackingRepository implements ports.TrackingRepository using MongoDB.
// The collection is append-only except for whole-task cleanup.
type TrackingRepository struct {
	col *mongo.Collection
}

func NewTrackingRepository(db *mongo.Database) *TrackingRepository {
	return &TrackingRepository{col: db.Collection(collectionTracking)}
}

func (r *TrackingRepository) Record(ctx context.Context, entry *domain.TrackingEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, entry)
	return err
}

func (r *TrackingRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.TrackingEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"task_id": taskID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []*domain.TrackingEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *TrackingRepository) DeleteByTask(ctx context.Context, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"task_id": taskID})
	return err
}

// EnsureIndexes creates necessary indexes on the tracking collection.
func (r *TrackingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "task_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}
