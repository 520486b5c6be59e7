package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email"    validate:"omitempty,email"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"      validate:"required,oneof=todo in_progress done"`
}

type updateTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"      validate:"required,oneof=todo in_progress done"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=todo in_progress done"`
}

// --- Response types ---
// These are intentionally separate from ports/domain types so the JSON
// contract is not coupled to internal service changes.

type tokenResponse struct {
	Token string `json:"token"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
}

type trackingEntryResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// taskDetailResponse is returned by the get endpoint. The tracking key
// is present only when the task has at least one audit entry.
type taskDetailResponse struct {
	Task     taskResponse            `json:"task"`
	Tracking []trackingEntryResponse `json:"tracking,omitempty"`
}

type listTasksResponse struct {
	Data []taskResponse `json:"data"`
}
