package repository

import (
	"time"

	"productivity-hub/internal/model"
)

// CreateTaskOptions holds the parameters for inserting a new task.
type CreateTaskOptions struct {
	UserID      string
	Title       string
	Description string
	Priority    model.Priority
	DueDate     *time.Time
	ProjectID   string
}

// GetTaskOptions fetches a single task. A non-empty UserID restricts the match to that owner.
type GetTaskOptions struct {
	ID     string
	UserID string
}

// ListTasksOptions holds filter and pagination parameters for listing tasks.
type ListTasksOptions struct {
	UserID    string
	Completed *bool // nil lists both open and completed tasks
	ProjectID string
	Limit     int // 0 means no limit
	Offset    int
}

// UpdateTaskOptions replaces every mutable field of the task with ID.
type UpdateTaskOptions struct {
	ID              string
	Title           string
	Description     string
	Completed       bool
	Priority        model.Priority
	DueDate         *time.Time
	ProjectID       string
	CalendarEventID string
	CalendarLink    string
}
