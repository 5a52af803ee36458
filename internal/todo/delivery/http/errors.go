package http

import (
	"errors"
	"net/http"

	"todo-assistant/internal/todo"
	pkgErrors "todo-assistant/pkg/errors"
)

var (
	errInvalidID      = pkgErrors.NewHTTPError(120001, "invalid id")
	errInvalidDueDate = pkgErrors.NewHTTPError(120002, "invalid duedate")
)

// mapError translates domain errors into HTTP errors from pkg/errors.
// Anything unrecognised is answered as a 500 without details.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, todo.ErrTaskNotFound):
		return pkgErrors.NewHTTPErrorWithStatus(http.StatusNotFound, 120101, "task not found")
	case errors.Is(err, todo.ErrTaskListNotFound):
		return pkgErrors.NewHTTPErrorWithStatus(http.StatusNotFound, 120102, "task list not found")
	case errors.Is(err, todo.ErrSubtaskNotFound):
		return pkgErrors.NewHTTPErrorWithStatus(http.StatusNotFound, 120103, "subtask not found")
	case errors.Is(err, todo.ErrDuplicateName):
		return pkgErrors.NewHTTPErrorWithStatus(http.StatusConflict, 120104, "name already exists")
	case errors.Is(err, todo.ErrEmptyName):
		return pkgErrors.NewHTTPError(120105, "name is required")
	default:
		return pkgErrors.ErrInternalServerError
	}
}
