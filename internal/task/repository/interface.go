package repository

import (
	"context"

	"productivity-hub/internal/model"
)

// Repository is the task document store.
type Repository interface {
	CreateTask(ctx context.Context, opt CreateTaskOptions) (model.Task, error)

	// GetTask returns a zero-value Task (ID == "") when nothing matches; not-found is not an error.
	GetTask(ctx context.Context, opt GetTaskOptions) (model.Task, error)

	// ListTasks returns one page, newest first, and the total number of matches.
	ListTasks(ctx context.Context, opt ListTasksOptions) ([]model.Task, int, error)

	UpdateTask(ctx context.Context, opt UpdateTaskOptions) (model.Task, error)
	DeleteTask(ctx context.Context, id string) error
}
