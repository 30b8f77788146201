package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dtroode/learnhub-auth/internal/apierror"
	"github.com/dtroode/learnhub-auth/internal/logger"
	"github.com/dtroode/learnhub-auth/internal/model"
)

// AuthService defines account and session operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.Session, error)
	Authenticate(ctx context.Context, email, password string) (model.Session, error)
	FederatedLogin(ctx context.Context, assertionToken string) (model.Session, error)
	Logout(ctx context.Context) context.Context
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	RevokeSessions(ctx context.Context, actor model.Principal, target uuid.UUID) (int64, error)
}

// AuthRecorder records authentication outcomes.
type AuthRecorder interface {
	RecordAuth(flow string, err error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	recorder       AuthRecorder
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, recorder AuthRecorder, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		recorder:       recorder,
		logger:         logger,
	}
}

// Register creates an account and returns its first session.
func (h *Auth) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apierror.NewErrValidation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	h.logger.Debug("Auth handler: processing registration request",
		"login", req.LoginID)

	session, err := h.authService.Register(c.Request().Context(), model.RegisterParams{
		Email:     req.LoginID,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	h.recorder.RecordAuth("register", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SessionResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		Profile:      newProfile(session.User),
	})
}

// Login authenticates local credentials. Every failure, malformed input
// included, is the same 401.
func (h *Auth) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		h.recorder.RecordAuth("login", err)
		return apierror.NewErrAuthentication(err)
	}
	if err := c.Validate(&req); err != nil {
		h.recorder.RecordAuth("login", err)
		return apierror.NewErrAuthentication(err)
	}

	session, err := h.authService.Authenticate(c.Request().Context(), req.LoginID, req.Password)
	h.recorder.RecordAuth("login", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SessionResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		Profile:      newProfile(session.User),
	})
}

// FederatedLogin exchanges an identity provider assertion for an access token.
func (h *Auth) FederatedLogin(c echo.Context) error {
	var req FederatedLoginRequest
	if err := c.Bind(&req); err != nil {
		return apierror.NewErrValidation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := h.authService.FederatedLogin(c.Request().Context(), req.AssertionToken)
	h.recorder.RecordAuth("federated", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, FederatedSessionResponse{
		AccessToken: session.AccessToken,
		Profile:     newProfile(session.User),
	})
}

// Logout clears the request principal. It always succeeds.
func (h *Auth) Logout(c echo.Context) error {
	ctx := h.authService.Logout(c.Request().Context())
	c.SetRequest(c.Request().WithContext(ctx))
	return c.NoContent(http.StatusOK)
}

// Revoke revokes every session of the caller, or of userId when the caller
// is allowed to.
func (h *Auth) Revoke(c echo.Context) error {
	principal, ok := h.contextManager.GetPrincipalFromContext(c.Request().Context())
	if !ok {
		return apierror.NewErrMissingAuthorizationToken()
	}

	var req RevokeRequest
	if err := c.Bind(&req); err != nil {
		return apierror.NewErrValidation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	target := principal.UserID
	if req.UserID != "" {
		parsed, err := uuid.Parse(req.UserID)
		if err != nil {
			return apierror.NewErrValidation("userId must be a valid UUID")
		}
		target = parsed
	}

	revoked, err := h.authService.RevokeSessions(c.Request().Context(), principal, target)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, RevokeResponse{Revoked: revoked})
}
