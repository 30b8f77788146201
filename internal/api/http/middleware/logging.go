package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/learnhub-auth/internal/logger"
)

// Logging logs HTTP requests and results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, route, duration and status for each request. Handler
// errors are written through the echo error handler here so the logged status
// is the one the client receives.
func (l *Logging) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)

		l.logger.Debug("HTTP request started",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", requestID)

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		status := c.Response().Status
		duration := time.Since(start)

		l.logger.Info("HTTP request completed",
			"method", req.Method,
			"route", c.Path(),
			"duration_ms", duration.Milliseconds(),
			"status", status,
			"request_id", requestID)

		if err != nil {
			logFn := l.logger.Warn
			if status >= http.StatusInternalServerError {
				logFn = l.logger.Error
			}
			logFn("HTTP request failed",
				"method", req.Method,
				"route", c.Path(),
				"error", err.Error(),
				"status", status,
				"request_id", requestID)
		}

		return nil
	}
}
