package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskcrate/task-tracker/internal/api/metrics"
	"github.com/taskcrate/task-tracker/internal/core/domain"
	"github.com/taskcrate/task-tracker/internal/core/ports"
)

// TaskCache abstracts the best-effort task detail cache (Redis).
// A miss is reported as (nil, nil); errors are logged and ignored.
type TaskCache interface {
	Get(ctx context.Context, id string) (*ports.TaskWithTracking, error)
	Set(ctx context.Context, id string, detail *ports.TaskWithTracking) error
	Invalidate(ctx context.Context, id string) error
}

// TaskService implements the owner-scoped task mutation pipeline:
// perform the repository mutation first, then record a tracking entry
// describing the change. The tracking write is best-effort — its
// failure is logged but never fails the request.
type TaskService struct {
	tasks    ports.TaskRepository
	tracking ports.TrackingRepository
	cache    TaskCache
	logger   zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, tracking ports.TrackingRepository, cache TaskCache, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, tracking: tracking, cache: cache, logger: logger}
}

func (s *TaskService) ListTasks(ctx context.Context, owner string) ([]ports.TaskDetail, error) {
	tasks, err := s.tasks.List(ctx, owner)
	if err != nil {
		return nil, err
	}

	details := make([]ports.TaskDetail, len(tasks))
	for i, t := range tasks {
		details[i] = toTaskDetail(t)
	}
	return details, nil
}

func (s *TaskService) CreateTask(ctx context.Context, input ports.CreateTaskInput, owner string) (*ports.TaskDetail, error) {
	status, err := domain.ParseTaskStatus(input.Status)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Owner:       owner,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("owner", owner).Msg("failed to create task")
		return nil, err
	}

	metrics.TasksCreatedTotal.Inc()
	s.logger.Info().Str("task_id", task.ID).Str("owner", owner).Msg("task created")

	s.recordTracking(ctx, task.ID, fmt.Sprintf("task created with status %s", status))

	detail := toTaskDetail(task)
	return &detail, nil
}

func (s *TaskService) GetTask(ctx context.Context, id, owner string) (*ports.TaskWithTracking, error) {
	if err := validateTaskID(id); err != nil {
		return nil, err
	}

	if cached := s.cacheLookup(ctx, id, owner); cached != nil {
		return cached, nil
	}

	task, err := s.tasks.Get(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	entries, err := s.tracking.ListByTask(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &ports.TaskWithTracking{Task: toTaskDetail(task)}
	if len(entries) > 0 {
		result.Tracking = make([]ports.TrackingDetail, len(entries))
		for i, e := range entries {
			result.Tracking[i] = ports.TrackingDetail{
				ID:        e.ID,
				TaskID:    e.TaskID,
				Status:    e.Status,
				CreatedAt: e.CreatedAt,
			}
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, id, result); err != nil {
			s.logger.Warn().Err(err).Str("task_id", id).Msg("task cache set failed")
		}
	}

	return result, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, input ports.UpdateTaskInput, owner string) (*ports.TaskDetail, error) {
	if err := validateTaskID(id); err != nil {
		return nil, err
	}
	status, err := domain.ParseTaskStatus(input.Status)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.Update(ctx, id, owner, ports.TaskUpdate{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
	})
	if err != nil {
		return nil, err
	}

	metrics.TaskMutationsTotal.WithLabelValues("update").Inc()
	s.invalidateCache(ctx, id)
	s.recordTracking(ctx, id, fmt.Sprintf("task updated with title: %s, description: %s", task.Title, task.Description))

	detail := toTaskDetail(task)
	return &detail, nil
}

func (s *TaskService) UpdateTaskStatus(ctx context.Context, id, status, owner string) (*ports.TaskDetail, error) {
	if err := validateTaskID(id); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseTaskStatus(status)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.UpdateStatus(ctx, id, owner, parsed)
	if err != nil {
		return nil, err
	}

	metrics.TaskMutationsTotal.WithLabelValues("update_status").Inc()
	s.invalidateCache(ctx, id)
	s.recordTracking(ctx, id, fmt.Sprintf("task status changed to %s", parsed))

	detail := toTaskDetail(task)
	return &detail, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id, owner string) error {
	if err := validateTaskID(id); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id, owner); err != nil {
		return err
	}

	metrics.TaskMutationsTotal.WithLabelValues("delete").Inc()
	s.invalidateCache(ctx, id)

	// The task is gone either way; orphaned tracking entries are only a
	// storage leak, so this cleanup does not fail the request.
	if err := s.tracking.DeleteByTask(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("task_id", id).Msg("failed to delete tracking entries")
	}

	s.logger.Info().Str("task_id", id).Str("owner", owner).Msg("task deleted")
	return nil
}

// recordTracking appends an audit entry for a completed mutation. The
// mutation has already succeeded, so a failure here is logged and
// counted but never propagated.
func (s *TaskService) recordTracking(ctx context.Context, taskID, status string) {
	entry := &domain.TrackingEntry{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.tracking.Record(ctx, entry); err != nil {
		metrics.TrackingWriteFailuresTotal.Inc()
		s.logger.Warn().Err(err).Str("task_id", taskID).Msg("failed to record tracking entry")
	}
}

// cacheLookup returns a cached detail only when it belongs to the
// requesting owner; anything else is treated as a miss so the
// repository keeps sole authority over ownership checks.
func (s *TaskService) cacheLookup(ctx context.Context, id, owner string) *ports.TaskWithTracking {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("task_id", id).Msg("task cache get failed")
		return nil
	}
	if cached == nil || cached.Task.Owner != owner {
		return nil
	}
	return cached
}

func (s *TaskService) invalidateCache(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("task_id", id).Msg("task cache invalidate failed")
	}
}

func validateTaskID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTaskID, id)
	}
	return nil
}

func toTaskDetail(t *domain.Task) ports.TaskDetail {
	return ports.TaskDetail{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		Owner:       t.Owner,
		CreatedAt:   t.CreatedAt,
	}
}
