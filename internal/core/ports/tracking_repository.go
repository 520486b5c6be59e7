package ports

import (
	"context"

	"github.com/taskcrate/task-tracker/internal/core/domain"
)

// TrackingRepository handles the append-only audit log. There is no
// owner filter here: tracking is only reachable through a task lookup
// that has already been authorized.
type TrackingRepository interface {
	Record(ctx context.Context, entry *domain.TrackingEntry) error
	// ListByTask returns entries in creation order. A task with no
	// entries yields an empty slice, not an error.
	ListByTask(ctx context.Context, taskID string) ([]*domain.TrackingEntry, error)
	DeleteByTask(ctx context.Context, taskID string) error
}
