package http

import (
	"errors"
	"net/http"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/generated/servers"
	"commerce/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// StatusFor maps an application error to the HTTP status returned to the client.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidUnlocker):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrOrderNotPersisted),
		errors.Is(err, errs.ErrIllegalReturnState),
		errors.Is(err, errs.ErrDuplicateOrder),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, commands.ErrOrderLockNotObtained):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrShipmentHasNoLines),
		errors.Is(err, commands.ErrReturnHasNoLines):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrService):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(ctx echo.Context, err error) error {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err)
		message = http.StatusText(status)
	}

	return ctx.JSON(status, servers.Error{Code: status, Message: message})
}

func invalidBody(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}

func unauthorized(ctx echo.Context) error {
	return ctx.JSON(http.StatusUnauthorized, servers.Error{
		Code:    http.StatusUnauthorized,
		Message: "Authenticated user is required",
	})
}
