package http

import (
	"errors"
	"net/http"

	"productivity-hub/internal/task"
	pkgErrors "productivity-hub/pkg/errors"
)

var (
	errMissingScope   = pkgErrors.NewHTTPError(http.StatusUnauthorized, "missing user")
	errInvalidDueDate = pkgErrors.NewHTTPError(http.StatusBadRequest, "due_date must be YYYY-MM-DD")
	errMissingID      = pkgErrors.NewHTTPError(http.StatusBadRequest, "id is required")
)

// mapError translates use case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, task.ErrEmptyInput):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "text is empty")
	case errors.Is(err, task.ErrEmptyTitle):
		return pkgErrors.NewHTTPError(http.StatusUnprocessableEntity, "title is empty after removing directives")
	case errors.Is(err, task.ErrInvalidPriority):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "priority must be one of low, medium, high")
	case errors.Is(err, task.ErrTaskNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "task not found")
	case errors.Is(err, task.ErrMissingUser):
		return errMissingScope
	default:
		return pkgErrors.ErrInternalServerError
	}
}
