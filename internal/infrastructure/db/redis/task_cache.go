package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskcrate/task-tracker/internal/core/ports"
)

const cacheTTL = 5 * time.Minute

// TaskCache provides a best-effort cache for task details backed by
// Redis. Key format: task:<task_id>. Entries carry the owner, so the
// service can reject a cached hit that does not belong to the caller.
type TaskCache struct {
	client *redis.Client
}

// NewTaskCache creates a TaskCache wrapping the given Redis client.
func NewTaskCache(client *redis.Client) *TaskCache {
	return &TaskCache{client: client}
}

// Get returns the cached detail for a task, or (nil, nil) on a miss.
// A corrupt entry is treated as a miss.
func (c *TaskCache) Get(ctx context.Context, id string) (*ports.TaskWithTracking, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("task cache get: %w", err)
	}

	var detail ports.TaskWithTracking
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, nil
	}
	return &detail, nil
}

// Set stores the detail for a task (expires after cacheTTL).
func (c *TaskCache) Set(ctx context.Context, id string, detail *ports.TaskWithTracking) error {
	raw, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("task cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(id), raw, cacheTTL).Err()
}

// Invalidate drops the cached detail after a mutation.
func (c *TaskCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *TaskCache) key(id string) string {
	return "task:" + id
}
