package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/99minutos/account-service/internal/api/handler"
	"github.com/99minutos/account-service/internal/api/metrics"
	"github.com/99minutos/account-service/internal/api/middleware"
	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
	"github.com/99minutos/account-service/internal/infrastructure/http/handlers"

	_ "github.com/99minutos/account-service/docs"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Logger     zerolog.Logger
	Auth       ports.AuthService
	Accounts   ports.AccountService
	Users      ports.UserService
	Authorizer ports.Authorizer
	SuperAdmin ports.SecretVerifier

	// Registry receives the HTTP and service metrics and backs /metrics.
	// A fresh registry is used when nil.
	Registry *prometheus.Registry
	// Readiness lists the dependency probes behind /health/ready.
	Readiness []handlers.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := metrics.New(reg)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "accounts",
		Registerer: reg,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, m)
	accountHandler := handler.NewAccountHandler(deps.Accounts, m)
	userHandler := handler.NewUserHandler(deps.Users, m)

	authMiddleware := middleware.Auth(deps.Auth)
	adminOnly := middleware.RequireRole(deps.Authorizer, domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout, authMiddleware)
	e.GET("/profile", authHandler.Profile, authMiddleware)

	// --- Account routes ---
	accounts := e.Group("/accounts", authMiddleware)
	accounts.POST("", accountHandler.Create, adminOnly)
	accounts.GET("", accountHandler.List)
	accounts.GET("/:id", accountHandler.Get)
	accounts.PUT("/:id", accountHandler.Update, adminOnly)
	// Admin is checked by the service once the account is known to exist.
	accounts.DELETE("/:id", accountHandler.Delete)

	// --- Super-admin routes ---
	e.PATCH("/user/:id", userHandler.UpdateRole, middleware.SuperAdmin(deps.SuperAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Logger, deps.Readiness...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
