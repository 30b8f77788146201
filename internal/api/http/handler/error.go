package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/learnhub-auth/internal/apierror"
	"github.com/dtroode/learnhub-auth/internal/logger"
)

const msgInternal = "internal server error"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorHandler returns an echo.HTTPErrorHandler that renders APIErrors
// with their own status and hides everything else behind a generic 500.
func NewErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.Error("HTTP error handler: internal error",
				"path", c.Request().URL.Path,
				"error", err.Error())
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, ErrorResponse{Error: message})
		}
		if writeErr != nil {
			logger.Error("HTTP error handler: failed to write response",
				"error", writeErr.Error())
		}
	}
}

func errorResponse(err error) (int, string) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status >= http.StatusInternalServerError {
			return apiErr.Status, msgInternal
		}
		return apiErr.Status, apiErr.Message
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code >= http.StatusInternalServerError {
			return httpErr.Code, msgInternal
		}
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	}

	return http.StatusInternalServerError, msgInternal
}
