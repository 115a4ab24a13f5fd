package telegram

import (
	"errors"

	"productivity-hub/internal/task"
)

// errorMessage returns a user-facing reply for the given use case error.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, task.ErrEmptyInput), errors.Is(err, task.ErrEmptyTitle):
		return "That message has nothing left for a title once P1/P2/P3 and dates are removed."
	case errors.Is(err, task.ErrTaskNotFound):
		return "No task with that ID. Use /list to see your open tasks."
	default:
		return "Something went wrong while handling your message. Please try again."
	}
}
