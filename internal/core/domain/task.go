package domain

import (
	"fmt"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// ParseTaskStatus converts a wire string into a TaskStatus. Any value
// outside the three canonical states is rejected with ErrInvalidStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case StatusTodo, StatusInProgress, StatusDone:
		return TaskStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

func (s TaskStatus) String() string { return string(s) }

// Task is the core aggregate root. Owner is set server-side at creation
// and never changes afterwards.
type Task struct {
	ID          string     `json:"id" bson:"_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Status      TaskStatus `json:"status" bson:"status"`
	Owner       string     `json:"owner" bson:"owner"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
}

// TrackingEntry is an append-only audit record describing a task change.
// Entries are only ever created as a side effect of a task mutation and
// only deleted together with their task.
type TrackingEntry struct {
	ID        string    `json:"id" bson:"_id"`
	TaskID    string    `json:"task_id" bson:"task_id"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
