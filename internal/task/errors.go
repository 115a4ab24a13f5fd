package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrEmptyInput      = errors.New("input text is empty")
	ErrEmptyTitle      = errors.New("task title is empty after removing directives")
	ErrInvalidPriority = errors.New("priority must be one of low, medium, high")
	ErrTaskNotFound    = errors.New("task not found")
	ErrMissingUser     = errors.New("user is required")
)
