package http

import (
	"errors"
	"net/http"

	"todo-assistant/internal/assistant"
	pkgErrors "todo-assistant/pkg/errors"
)

var (
	errMissingFile  = pkgErrors.NewHTTPError(130001, "multipart field \"file\" is required")
	errFileTooLarge = pkgErrors.NewHTTPErrorWithStatus(http.StatusRequestEntityTooLarge, 130002, "uploaded file is too large")
)

// mapError translates assistant errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, assistant.ErrEmptyQuestion):
		return pkgErrors.NewHTTPError(130101, "question is required")
	case errors.Is(err, assistant.ErrQuestionTooLong):
		return pkgErrors.NewHTTPError(130102, "question is too long")
	case errors.Is(err, assistant.ErrTranscriptionDisabled):
		return pkgErrors.NewHTTPErrorWithStatus(http.StatusServiceUnavailable, 130103, "speech input is not enabled")
	case errors.Is(err, assistant.ErrEmptyTranscript):
		return pkgErrors.NewHTTPErrorWithStatus(http.StatusBadGateway, 130104, "no speech recognized")
	case errors.Is(err, assistant.ErrGatewayTimeout):
		return pkgErrors.NewHTTPErrorWithStatus(http.StatusGatewayTimeout, 130105, "assistant service timed out, try again")
	case errors.Is(err, assistant.ErrGatewayUnavailable):
		return pkgErrors.NewHTTPErrorWithStatus(http.StatusBadGateway, 130106, "assistant service unavailable, try again")
	case errors.Is(err, assistant.ErrMalformedModelOutput):
		return pkgErrors.NewHTTPErrorWithStatus(http.StatusUnprocessableEntity, 130107, "assistant reply could not be understood")
	case errors.Is(err, assistant.ErrUnresolvedReference):
		return pkgErrors.NewHTTPErrorWithStatus(http.StatusConflict, 130108, "assistant referenced a task or list that does not exist")
	case errors.Is(err, assistant.ErrConflict):
		return pkgErrors.NewHTTPErrorWithStatus(http.StatusConflict, 130109, "conflicting change, try again")
	default:
		return pkgErrors.ErrInternalServerError
	}
}
