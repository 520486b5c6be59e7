package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskcrate/task-tracker/internal/core/domain"
	"github.com/taskcrate/task-tracker/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations. The owner is
// always the authenticated subject from context; any owner-looking
// field in a payload is ignored.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /v1/tasks.
//
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listTasksResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	owner, err := ctxSubject(c)
	if err != nil {
		return err
	}

	details, err := h.service.ListTasks(c.Request().Context(), owner)
	if err != nil {
		return taskError(c, err)
	}

	return c.JSON(http.StatusOK, toListResponse(details))
}

// Create handles POST /v1/tasks.
//
// @Summary      Create a new task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	owner, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	detail, err := h.service.CreateTask(c.Request().Context(), ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}, owner)
	if err != nil {
		return taskError(c, err)
	}

	return c.JSON(http.StatusCreated, toTaskResponse(detail))
}

// Get handles GET /v1/tasks/:id.
//
// @Summary      Get a task with its tracking history
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id (uuid)"
// @Success      200  {object}  taskDetailResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	owner, err := ctxSubject(c)
	if err != nil {
		return err
	}

	detail, err := h.service.GetTask(c.Request().Context(), c.Param("id"), owner)
	if err != nil {
		return taskError(c, err)
	}

	return c.JSON(http.StatusOK, toTaskDetailResponse(detail))
}

// Update handles PUT /v1/tasks/:id.
//
// @Summary      Update a task's title, description and status
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id (uuid)"
// @Param        body  body      updateTaskRequest  true  "New task contents"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	owner, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	detail, err := h.service.UpdateTask(c.Request().Context(), c.Param("id"), ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}, owner)
	if err != nil {
		return taskError(c, err)
	}

	return c.JSON(http.StatusOK, toTaskResponse(detail))
}

// UpdateStatus handles PATCH /v1/tasks/:id/status.
//
// @Summary      Change a task's status
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Task id (uuid)"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	owner, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	detail, err := h.service.UpdateTaskStatus(c.Request().Context(), c.Param("id"), req.Status, owner)
	if err != nil {
		return taskError(c, err)
	}

	return c.JSON(http.StatusOK, toTaskResponse(detail))
}

// Delete handles DELETE /v1/tasks/:id.
//
// @Summary      Delete a task and its tracking history
// @Tags         tasks
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id (uuid)"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	owner, err := ctxSubject(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteTask(c.Request().Context(), c.Param("id"), owner); err != nil {
		return taskError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// taskError maps service errors onto the JSON error envelope. Storage
// failures stay a generic 500; their detail is logged by the central
// error handler path, never shown to the client.
func taskError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTaskID), errors.Is(err, domain.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrTaskNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "task not found"})
	}
	return err
}
