package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/dtroode/learnhub-auth/internal/api/http/handler"
	"github.com/dtroode/learnhub-auth/internal/api/http/middleware"
	"github.com/dtroode/learnhub-auth/internal/logger"
	"github.com/dtroode/learnhub-auth/internal/metrics"
	"github.com/dtroode/learnhub-auth/internal/model"
	"github.com/dtroode/learnhub-auth/internal/validator"
)

// Router wires HTTP handlers and middleware for the auth API.
type Router struct {
	authService    handler.AuthService
	tokens         middleware.TokenAuthenticator
	pinger         handler.Pinger
	contextManager model.ContextManager
	metrics        *metrics.Metrics
	logger         *logger.Logger
}

// New creates new Router instance.
func New(
	authService handler.AuthService,
	tokens middleware.TokenAuthenticator,
	pinger handler.Pinger,
	contextManager model.ContextManager,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		tokens:         tokens,
		pinger:         pinger,
		contextManager: contextManager,
		metrics:        metrics,
		logger:         logger,
	}
}

// Register builds the echo instance with all routes.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = handler.NewErrorHandler(r.logger)

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokens, r.contextManager, r.logger)

	e.Use(
		echomw.Recover(),
		echomw.RequestID(),
		logging.Handle,
		r.metrics.Middleware(),
		echomw.BodyLimit("64K"),
	)

	r.registerAuthRoutes(e, authenticate)
	r.registerUserRoutes(e, authenticate)
	r.registerServiceRoutes(e)

	return e
}

func (r *Router) registerAuthRoutes(e *echo.Echo, authenticate *middleware.Authenticate) {
	authHandler := handler.NewAuth(r.authService, r.contextManager, r.metrics, r.logger)

	g := e.Group("/auth")
	g.POST("/register", authHandler.Register)
	g.POST("/login", authHandler.Login)
	g.POST("/federated-login", authHandler.FederatedLogin)
	g.POST("/logout", authHandler.Logout, authenticate.Optional())
	g.POST("/revoke", authHandler.Revoke, authenticate.Required())
}

func (r *Router) registerUserRoutes(e *echo.Echo, authenticate *middleware.Authenticate) {
	userHandler := handler.NewUser(r.authService, r.contextManager, r.logger)

	g := e.Group("/users", authenticate.Required())
	g.GET("/me", userHandler.Me)
}

func (r *Router) registerServiceRoutes(e *echo.Echo) {
	healthHandler := handler.NewHealth(r.pinger, r.logger)

	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))
}
