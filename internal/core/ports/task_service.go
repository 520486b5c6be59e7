package ports

import (
	"context"
	"time"
)

// CreateTaskInput carries the client-supplied fields of a new task.
// The owner never comes from the client; it is injected server-side
// from the authenticated subject.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
}

// UpdateTaskInput carries a full task update.
type UpdateTaskInput struct {
	Title       string
	Description string
	Status      string
}

// TaskDetail is the full task view returned by every task operation.
type TaskDetail struct {
	ID          string
	Title       string
	Description string
	Status      string
	Owner       string
	CreatedAt   time.Time
}

// TrackingDetail is a single audit entry in a task's history.
type TrackingDetail struct {
	ID        string
	TaskID    string
	Status    string
	CreatedAt time.Time
}

// TaskWithTracking is returned by GetTask. Tracking is nil when the
// task has no audit history yet.
type TaskWithTracking struct {
	Task     TaskDetail
	Tracking []TrackingDetail
}

// TaskService defines the owner-scoped use-case operations for tasks.
// The owner argument is always the authenticated subject extracted from
// the verified token, never client input.
type TaskService interface {
	ListTasks(ctx context.Context, owner string) ([]TaskDetail, error)
	CreateTask(ctx context.Context, input CreateTaskInput, owner string) (*TaskDetail, error)
	GetTask(ctx context.Context, id, owner string) (*TaskWithTracking, error)
	UpdateTask(ctx context.Context, id string, input UpdateTaskInput, owner string) (*TaskDetail, error)
	UpdateTaskStatus(ctx context.Context, id, status, owner string) (*TaskDetail, error)
	DeleteTask(ctx context.Context, id, owner string) error
}
