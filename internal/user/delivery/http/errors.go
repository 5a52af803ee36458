package http

import (
	"errors"
	"net/http"

	"todo-assistant/internal/user"
	pkgErrors "todo-assistant/pkg/errors"
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, user.ErrUsernameTaken):
		return pkgErrors.NewHTTPErrorWithStatus(http.StatusConflict, 110101, "username already taken")
	case errors.Is(err, user.ErrInvalidUsername):
		return pkgErrors.NewHTTPError(110102, user.ErrInvalidUsername.Error())
	case errors.Is(err, user.ErrWeakPassword):
		return pkgErrors.NewHTTPError(110103, user.ErrWeakPassword.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		return pkgErrors.NewHTTPErrorWithStatus(http.StatusUnauthorized, 110104, "invalid username or password")
	case errors.Is(err, user.ErrUserNotFound):
		return pkgErrors.ErrNotFound
	case errors.Is(err, user.ErrInvalidColor):
		return pkgErrors.NewHTTPError(110105, user.ErrInvalidColor.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
