package handler

import (
	"github.com/taskcrate/task-tracker/internal/core/ports"
)

func toTaskResponse(d *ports.TaskDetail) taskResponse {
	return taskResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		Owner:       d.Owner,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

func toTaskDetailResponse(d *ports.TaskWithTracking) taskDetailResponse {
	resp := taskDetailResponse{Task: toTaskResponse(&d.Task)}
	if len(d.Tracking) > 0 {
		resp.Tracking = make([]trackingEntryResponse, len(d.Tracking))
		for i, e := range d.Tracking {
			resp.Tracking[i] = trackingEntryResponse{
				ID:        e.ID,
				TaskID:    e.TaskID,
				Status:    e.Status,
				CreatedAt: e.CreatedAt.UTC(),
			}
		}
	}
	return resp
}

func toListResponse(details []ports.TaskDetail) listTasksResponse {
	items := make([]taskResponse, len(details))
	for i := range details {
		items[i] = toTaskResponse(&details[i])
	}
	return listTasksResponse{Data: items}
}
