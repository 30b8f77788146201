package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/learnhub-auth/internal/apierror"
	"github.com/dtroode/learnhub-auth/internal/logger"
	"github.com/dtroode/learnhub-auth/internal/model"
)

// TokenAuthenticator resolves claims from bearer access tokens.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, accessToken string) (model.Claims, error)
}

// Authenticate validates bearer tokens and injects the principal into the
// request context.
type Authenticate struct {
	tokens         TokenAuthenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens TokenAuthenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

// Required rejects requests without a valid bearer token.
func (m *Authenticate) Required() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if tokenString == "" {
				return apierror.NewErrMissingAuthorizationToken()
			}

			principal, err := m.authenticate(c.Request().Context(), tokenString)
			if err != nil {
				if isTokenRejection(err) {
					return apierror.NewErrInvalidAuthorizationToken()
				}
				return apierror.NewErrInternalServerError(err)
			}

			m.attach(c, principal)
			return next(c)
		}
	}
}

// Optional attaches the principal when a valid bearer token is present and
// otherwise lets the request through unauthenticated.
func (m *Authenticate) Optional() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if tokenString != "" {
				if principal, err := m.authenticate(c.Request().Context(), tokenString); err == nil {
					m.attach(c, principal)
				}
			}
			return next(c)
		}
	}
}

func (m *Authenticate) authenticate(ctx context.Context, tokenString string) (model.Principal, error) {
	claims, err := m.tokens.Authenticate(ctx, tokenString)
	if err != nil {
		m.logger.Debug("Authenticate middleware: token rejected",
			"error", err.Error())
		return model.Principal{}, err
	}

	return model.Principal{
		UserID: claims.UserID,
		Email:  claims.Subject,
		Role:   claims.Role,
	}, nil
}

func (m *Authenticate) attach(c echo.Context, principal model.Principal) {
	ctx := m.contextManager.SetPrincipalToContext(c.Request().Context(), principal)
	c.SetRequest(c.Request().WithContext(ctx))
}

// isTokenRejection reports whether err says the token itself is unusable, as
// opposed to a failure looking it up.
func isTokenRejection(err error) bool {
	return errors.Is(err, model.ErrInvalidSignature) ||
		errors.Is(err, model.ErrTokenExpired) ||
		errors.Is(err, model.ErrTokenRevoked)
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
