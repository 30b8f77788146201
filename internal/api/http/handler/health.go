package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/learnhub-auth/internal/logger"
)

const healthTimeout = 2 * time.Second

// Pinger checks a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports service readiness.
type Health struct {
	db     Pinger
	logger *logger.Logger
}

func NewHealth(db Pinger, logger *logger.Logger) *Health {
	return &Health{db: db, logger: logger}
}

func (h *Health) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("Health handler: database unreachable",
			"error", err.Error())
		return c.JSON(http.StatusInternalServerError, HealthResponse{Status: "unavailable"})
	}

	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
