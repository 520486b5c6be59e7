package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskcrate/task-tracker/internal/core/domain"
	"github.com/taskcrate/task-tracker/internal/core/ports"
)

const collectionTasks = "tasks"

// TaskRepository implements ports.TaskRepository using MongoDB. Every
// query filters by _id AND owner, so a task under a different owner is
// indistinguishable from a missing one.
type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

func ownerFilter(id, owner string) bson.M {
	return bson.M{"_id": id, "owner": owner}
}

func (r *TaskRepository) List(ctx context.Context, owner string) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*domain.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, task)
	return err
}

func (r *TaskRepository) Get(ctx context.Context, id, owner string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var task domain.Task
	if err := r.col.FindOne(ctx, ownerFilter(id, owner)).Decode(&task); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Update(ctx context.Context, id, owner string, upd ports.TaskUpdate) (*domain.Task, error) {
	update := bson.M{"$set": bson.M{
		"title":       upd.Title,
		"description": upd.Description,
		"status":      string(upd.Status),
	}}
	return r.findOneAndUpdate(ctx, id, owner, update)
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id, owner string, status domain.TaskStatus) (*domain.Task, error) {
	update := bson.M{"$set": bson.M{"status": string(status)}}
	return r.findOneAndUpdate(ctx, id, owner, update)
}

func (r *TaskRepository) findOneAndUpdate(ctx context.Context, id, owner string, update bson.M) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task domain.Task
	err := r.col.FindOneAndUpdate(ctx, ownerFilter(id, owner), update, opts).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// Delete removes the task matching id AND owner. A miss — nonexistent
// id or a task owned by someone else — is reported as ErrTaskNotFound,
// consistent with Get and Update.
func (r *TaskRepository) Delete(ctx context.Context, id, owner string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, ownerFilter(id, owner))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the tasks collection.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}
