package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dtroode/learnhub-auth/internal/apierror"
	"github.com/dtroode/learnhub-auth/internal/logger"
	"github.com/dtroode/learnhub-auth/internal/model"
)

// UserService resolves accounts by id.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
}

// User handles HTTP endpoints for the caller's account.
type User struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{userService: userService, contextManager: contextManager, logger: logger}
}

// Me returns the caller's profile.
func (h *User) Me(c echo.Context) error {
	principal, ok := h.contextManager.GetPrincipalFromContext(c.Request().Context())
	if !ok || !principal.Role.Can(model.CapReadOwnProfile) {
		return apierror.NewErrMissingAuthorizationToken()
	}

	user, err := h.userService.GetUser(c.Request().Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			h.logger.Info("User handler: principal has no account",
				"user_id", principal.UserID)
			return apierror.NewErrInvalidAuthorizationToken()
		}
		return err
	}

	return c.JSON(http.StatusOK, newProfile(user))
}
