package http

import (
	"errors"
	"net/http"

	"warehouse/internal/adapters/in/http/api"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// statusOf maps an application error to the HTTP status reported for it.
func statusOf(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrVersionIsInvalid), errors.Is(err, order.ErrOrderIsReadOnly):
		return http.StatusConflict
	case errors.Is(err, errs.ErrExtractionFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrRemoteOperation):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorHandler renders every error as an api.Error. Internal errors are logged and
// reported without detail.
func NewErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		code := statusOf(err)
		message := err.Error()

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			if m, ok := httpErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		}

		if code >= http.StatusInternalServerError {
			log.Error(ctx.Request().Context(), "request failed", err,
				"method", ctx.Request().Method, "path", ctx.Path())
			if code == http.StatusInternalServerError {
				message = "Internal server error"
			}
		}

		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(code)
		} else {
			err = ctx.JSON(code, api.Error{Code: code, Message: message})
		}
		if err != nil {
			log.Warn(ctx.Request().Context(), "writing error response failed", "error", err)
		}
	}
}
