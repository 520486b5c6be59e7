package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskcrate/task-tracker/internal/core/domain"
	"github.com/taskcrate/task-tracker/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	tasks map[string]*domain.Task
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) List(_ context.Context, owner string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.Owner == owner {
			clone := *t
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

// find mirrors the real Mongo filter: id AND owner, or not found.
func (r *stubTaskRepo) find(id, owner string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.Owner != owner {
		return nil, domain.ErrTaskNotFound
	}
	return t, nil
}

func (r *stubTaskRepo) Get(_ context.Context, id, owner string) (*domain.Task, error) {
	t, err := r.find(id, owner)
	if err != nil {
		return nil, err
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Update(_ context.Context, id, owner string, upd ports.TaskUpdate) (*domain.Task, error) {
	t, err := r.find(id, owner)
	if err != nil {
		return nil, err
	}
	t.Title = upd.Title
	t.Description = upd.Description
	t.Status = upd.Status
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) UpdateStatus(_ context.Context, id, owner string, status domain.TaskStatus) (*domain.Task, error) {
	t, err := r.find(id, owner)
	if err != nil {
		return nil, err
	}
	t.Status = status
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id, owner string) error {
	if _, err := r.find(id, owner); err != nil {
		return err
	}
	delete(r.tasks, id)
	return nil
}

type stubTrackingRepo struct {
	recordErr error
	deleteErr error
	entries   []*domain.TrackingEntry
}

func (r *stubTrackingRepo) Record(_ context.Context, e *domain.TrackingEntry) error {
	if r.recordErr != nil {
		return r.recordErr
	}
	clone := *e
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubTrackingRepo) ListByTask(_ context.Context, taskID string) ([]*domain.TrackingEntry, error) {
	out := []*domain.TrackingEntry{}
	for _, e := range r.entries {
		if e.TaskID == taskID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTrackingRepo) DeleteByTask(_ context.Context, taskID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.TaskID != taskID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

type stubCache struct {
	store       map[string]*ports.TaskWithTracking
	invalidated []string
}

func newStubCache() *stubCache {
	return &stubCache{store: make(map[string]*ports.TaskWithTracking)}
}

func (c *stubCache) Get(_ context.Context, id string) (*ports.TaskWithTracking, error) {
	return c.store[id], nil
}

func (c *stubCache) Set(_ context.Context, id string, d *ports.TaskWithTracking) error {
	c.store[id] = d
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, id string) error {
	delete(c.store, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

func newTaskSvc(tasks *stubTaskRepo, tracking *stubTrackingRepo, cache TaskCache) *TaskService {
	return NewTaskService(tasks, tracking, cache, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestTaskService_CreateTask(t *testing.T) {
	repo := newStubTaskRepo()
	tracking := &stubTrackingRepo{}
	svc := newTaskSvc(repo, tracking, nil)

	detail, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{
		Title:       "t1",
		Description: "first task",
		Status:      "todo",
	}, "alice")
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}

	if detail.Owner != "alice" {
		t.Fatalf("expected owner alice, got %q", detail.Owner)
	}
	if _, err := uuid.Parse(detail.ID); err != nil {
		t.Fatalf("generated id is not a uuid: %q", detail.ID)
	}
	if detail.Status != "todo" {
		t.Fatalf("unexpected status: %q", detail.Status)
	}
	if detail.CreatedAt.IsZero() {
		t.Fatalf("created_at not set")
	}

	if len(tracking.entries) != 1 {
		t.Fatalf("expected one tracking entry, got %d", len(tracking.entries))
	}
	if !strings.Contains(tracking.entries[0].Status, "created with status todo") {
		t.Fatalf("unexpected tracking text: %q", tracking.entries[0].Status)
	}
}

func TestTaskService_CreateTask_InvalidStatus(t *testing.T) {
	svc := newTaskSvc(newStubTaskRepo(), &stubTrackingRepo{}, nil)

	_, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{
		Title:  "t1",
		Status: "archived",
	}, "alice")
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

// A failed tracking write must not fail the mutation that preceded it.
func TestTaskService_CreateTask_TrackingFailureIgnored(t *testing.T) {
	repo := newStubTaskRepo()
	tracking := &stubTrackingRepo{recordErr: errors.New("tracking store down")}
	svc := newTaskSvc(repo, tracking, nil)

	detail, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{
		Title:  "t1",
		Status: "todo",
	}, "alice")
	if err != nil {
		t.Fatalf("expected create to succeed despite tracking failure, got %v", err)
	}
	if _, ok := repo.tasks[detail.ID]; !ok {
		t.Fatalf("task not persisted")
	}
}

func TestTaskService_GetTask_WithTracking(t *testing.T) {
	repo := newStubTaskRepo()
	tracking := &stubTrackingRepo{}
	svc := newTaskSvc(repo, tracking, nil)

	created, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{
		Title:  "t1",
		Status: "todo",
	}, "alice")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.UpdateTaskStatus(context.Background(), created.ID, "in_progress", "alice"); err != nil {
		t.Fatalf("status update failed: %v", err)
	}

	got, err := svc.GetTask(context.Background(), created.ID, "alice")
	if err != nil {
		t.Fatalf("GetTask returned error: %v", err)
	}
	if got.Task.Status != "in_progress" {
		t.Fatalf("expected status in_progress, got %q", got.Task.Status)
	}
	if len(got.Tracking) != 2 {
		t.Fatalf("expected two tracking entries, got %d", len(got.Tracking))
	}
	if !strings.Contains(got.Tracking[1].Status, "status changed to in_progress") {
		t.Fatalf("unexpected second tracking entry: %q", got.Tracking[1].Status)
	}
}

func TestTaskService_GetTask_NoTracking(t *testing.T) {
	repo := newStubTaskRepo()
	tracking := &stubTrackingRepo{recordErr: errors.New("down")}
	svc := newTaskSvc(repo, tracking, nil)

	created, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{
		Title:  "t1",
		Status: "todo",
	}, "alice")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.GetTask(context.Background(), created.ID, "alice")
	if err != nil {
		t.Fatalf("GetTask returned error: %v", err)
	}
	if got.Tracking != nil {
		t.Fatalf("expected nil tracking for task without history, got %v", got.Tracking)
	}
}

func TestTaskService_GetTask_InvalidID(t *testing.T) {
	svc := newTaskSvc(newStubTaskRepo(), &stubTrackingRepo{}, nil)

	_, err := svc.GetTask(context.Background(), "not-a-uuid", "alice")
	if !errors.Is(err, domain.ErrInvalidTaskID) {
		t.Fatalf("expected ErrInvalidTaskID, got %v", err)
	}
}

// Another user's task must look exactly like a missing one.
func TestTaskService_OwnershipIsolation(t *testing.T) {
	repo := newStubTaskRepo()
	tracking := &stubTrackingRepo{}
	svc := newTaskSvc(repo, tracking, nil)

	created, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{
		Title:  "alice's task",
		Status: "todo",
	}, "alice")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.GetTask(context.Background(), created.ID, "bob"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("get: expected ErrTaskNotFound for foreign owner, got %v", err)
	}
	if _, err := svc.UpdateTask(context.Background(), created.ID, ports.UpdateTaskInput{
		Title:  "stolen",
		Status: "done",
	}, "bob"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("update: expected ErrTaskNotFound for foreign owner, got %v", err)
	}
	if _, err := svc.UpdateTaskStatus(context.Background(), created.ID, "done", "bob"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("update status: expected ErrTaskNotFound for foreign owner, got %v", err)
	}
	if err := svc.DeleteTask(context.Background(), created.ID, "bob"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("delete: expected ErrTaskNotFound for foreign owner, got %v", err)
	}

	// Alice's task is untouched by all of the above.
	got, err := svc.GetTask(context.Background(), created.ID, "alice")
	if err != nil {
		t.Fatalf("owner lost access to own task: %v", err)
	}
	if got.Task.Title != "alice's task" {
		t.Fatalf("task was modified: %+v", got.Task)
	}
}

func TestTaskService_ListTasks_ScopedToOwner(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskSvc(repo, &stubTrackingRepo{}, nil)

	for _, owner := range []string{"alice", "alice", "bob"} {
		if _, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{
			Title:  "task",
			Status: "todo",
		}, owner); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	list, err := svc.ListTasks(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListTasks returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 tasks for alice, got %d", len(list))
	}
	for _, d := range list {
		if d.Owner != "alice" {
			t.Fatalf("foreign task leaked into list: %+v", d)
		}
	}
}

func TestTaskService_DeleteTask_RemovesTracking(t *testing.T) {
	repo := newStubTaskRepo()
	tracking := &stubTrackingRepo{}
	svc := newTaskSvc(repo, tracking, nil)

	created, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{
		Title:  "t1",
		Status: "todo",
	}, "alice")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.DeleteTask(context.Background(), created.ID, "alice"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(repo.tasks) != 0 {
		t.Fatalf("task still present after delete")
	}
	if len(tracking.entries) != 0 {
		t.Fatalf("tracking entries not removed: %d left", len(tracking.entries))
	}
}

func TestTaskService_DeleteTask_NotFound(t *testing.T) {
	svc := newTaskSvc(newStubTaskRepo(), &stubTrackingRepo{}, nil)

	err := svc.DeleteTask(context.Background(), uuid.NewString(), "alice")
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_DeleteTask_TrackingCleanupFailureIgnored(t *testing.T) {
	repo := newStubTaskRepo()
	tracking := &stubTrackingRepo{deleteErr: errors.New("down")}
	svc := newTaskSvc(repo, tracking, nil)

	created, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{
		Title:  "t1",
		Status: "todo",
	}, "alice")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.DeleteTask(context.Background(), created.ID, "alice"); err != nil {
		t.Fatalf("expected delete to succeed despite tracking cleanup failure, got %v", err)
	}
}

func TestTaskService_Cache(t *testing.T) {
	repo := newStubTaskRepo()
	tracking := &stubTrackingRepo{}
	cache := newStubCache()
	svc := newTaskSvc(repo, tracking, cache)

	created, err := svc.CreateTask(context.Background(), ports.CreateTaskInput{
		Title:  "t1",
		Status: "todo",
	}, "alice")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.GetTask(context.Background(), created.ID, "alice"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if cache.store[created.ID] == nil {
		t.Fatalf("detail not cached after get")
	}

	// A cached entry must never leak to a different owner.
	if _, err := svc.GetTask(context.Background(), created.ID, "bob"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("cache leaked a foreign task: %v", err)
	}

	if _, err := svc.UpdateTaskStatus(context.Background(), created.ID, "done", "alice"); err != nil {
		t.Fatalf("status update failed: %v", err)
	}
	if cache.store[created.ID] != nil {
		t.Fatalf("cache not invalidated on mutation")
	}
}
