package api

import (
	"slices"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/taskhub/users-api/internal/api/handler"
	"github.com/taskhub/users-api/internal/api/middleware"
	"github.com/taskhub/users-api/internal/api/session"
	"github.com/taskhub/users-api/internal/core/ports"

	_ "github.com/taskhub/users-api/docs"
)

// Services groups the use cases exposed over HTTP.
type Services struct {
	Auth  ports.AuthService
	Users ports.UserService
	Tasks ports.TaskService
}

// Options configures the transport around the services.
type Options struct {
	Cookies       *session.Cookies
	CORSOrigins   []string
	AllowedHosts  []string
	HTTPSRedirect bool
	Readiness     map[string]handler.Pinger
	Logger        zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	if len(opts.AllowedHosts) > 0 {
		e.Pre(middleware.TrustedHosts(opts.AllowedHosts))
	}
	if opts.HTTPSRedirect {
		e.Pre(echomiddleware.HTTPSRedirect())
	}
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(opts.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     opts.CORSOrigins,
		AllowCredentials: true,
		// "*" echoes the caller's origin back instead of a literal wildcard.
		UnsafeWildcardOriginWithAllowCredentials: slices.Contains(opts.CORSOrigins, "*"),
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: opts.Registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth, opts.Cookies)
	userHandler := handler.NewUserHandler(svc.Users)
	taskHandler := handler.NewTaskHandler(svc.Tasks)
	healthHandler := handler.NewHealthHandler(opts.Readiness)
	requireSession := middleware.Auth(opts.Cookies, svc.Auth, opts.Logger)

	// --- Public API ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/login", authHandler.Login)
	apiGroup.POST("/logout", authHandler.Logout)
	apiGroup.POST("/user", userHandler.Create)
	apiGroup.GET("/users", userHandler.List)

	// --- Session-protected API ---
	apiGroup.GET("/user", userHandler.Get, requireSession)
	apiGroup.PUT("/user", userHandler.Update, requireSession)
	apiGroup.DELETE("/user", userHandler.Delete, requireSession)

	apiGroup.POST("/task", taskHandler.Create, requireSession)
	apiGroup.GET("/task", taskHandler.Get, requireSession)
	apiGroup.PUT("/task", taskHandler.Update, requireSession)
	apiGroup.DELETE("/task", taskHandler.Delete, requireSession)
	apiGroup.GET("/tasks", taskHandler.List, requireSession)

	// --- Ops ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
