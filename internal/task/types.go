package task

import (
	"time"

	"productivity-hub/internal/model"
)

// ParseInput is the input for a quick-add preview.
type ParseInput struct {
	RawText string
}

// ParseOutput is what the directive parser extracted from the raw text.
type ParseOutput struct {
	Title     string
	Priority  model.Priority // Empty when the text has no P1/P2/P3 token
	DueDate   *time.Time
	Reference time.Time // The "now" the text was resolved against
}

// CreateInput is the input for creating a task from quick-add text.
// Explicit fields win over directives found in RawText.
type CreateInput struct {
	RawText     string
	Description string
	Priority    model.Priority
	DueDate     *time.Time
	ProjectID   string
}

// CreateOutput is the result of task creation.
type CreateOutput struct {
	Task   model.Task
	Parsed ParseOutput
}

// ListInput filters and paginates the caller's tasks.
type ListInput struct {
	Completed *bool
	ProjectID string
	Limit     int
	Offset    int
}

// ListOutput is a page of tasks, newest first.
type ListOutput struct {
	Tasks  []model.Task
	Total  int
	Limit  int
	Offset int
}

// DetailOutput wraps a single task.
type DetailOutput struct {
	Task model.Task
}

// UpdateInput is a partial update; zero values leave the stored field unchanged.
type UpdateInput struct {
	ID           string
	Title        string
	Description  string
	Priority     model.Priority
	DueDate      *time.Time
	ClearDueDate bool
	Completed    *bool
	ProjectID    string
}

// UpdateOutput wraps the updated task.
type UpdateOutput struct {
	Task model.Task
}
