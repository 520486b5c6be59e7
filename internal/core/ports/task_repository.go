package ports

import (
	"context"

	"github.com/taskcrate/task-tracker/internal/core/domain"
)

// TaskUpdate carries the mutable fields of a full task update.
type TaskUpdate struct {
	Title       string
	Description string
	Status      domain.TaskStatus
}

// TaskRepository defines persistence operations for tasks. Every
// operation takes the authenticated owner and applies it as a query
// filter; a task belonging to someone else is indistinguishable from a
// missing one (domain.ErrTaskNotFound either way).
type TaskRepository interface {
	List(ctx context.Context, owner string) ([]*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	Get(ctx context.Context, id, owner string) (*domain.Task, error)
	Update(ctx context.Context, id, owner string, upd TaskUpdate) (*domain.Task, error)
	UpdateStatus(ctx context.Context, id, owner string, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, id, owner string) error
}
