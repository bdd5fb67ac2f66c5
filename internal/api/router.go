package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sourav-hati/bookstore/docs"
	"github.com/sourav-hati/bookstore/internal/api/handler"
	"github.com/sourav-hati/bookstore/internal/api/middleware"
	"github.com/sourav-hati/bookstore/internal/core/domain"
	"github.com/sourav-hati/bookstore/internal/core/ports"
	"github.com/sourav-hati/bookstore/web"
)

// MetricsRegistry is where HTTP metrics are registered and read back from.
type MetricsRegistry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth     ports.AuthService
	Books    ports.BookService
	Audit    ports.AuditService
	Verifier ports.TokenVerifier
	Pingers  map[string]handler.Pinger
	Logger   zerolog.Logger

	CORSAllowOrigins []string
	AuthRateLimit    float64
	// Metrics defaults to the global Prometheus registry.
	Metrics MetricsRegistry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Metrics != nil {
		registerer, gatherer = deps.Metrics, deps.Metrics
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(deps.CORSAllowOrigins),
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 "bookstore",
		Registerer:                registerer,
		DoNotUseRequestPathFor404: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	bookHandler := handler.NewBookHandler(deps.Books, deps.Audit)
	healthHandler := handler.NewHealthHandler(deps.Pingers)
	requireAuth := middleware.Auth(deps.Verifier)
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)
	throttle := middleware.RateLimit(deps.AuthRateLimit)

	// --- Public routes ---
	e.GET("/", healthHandler.Root)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/api-docs/*", echoSwagger.WrapHandler)
	e.StaticFS("/app", web.Static())

	api := e.Group("/api")
	api.POST("/register", authHandler.Register, throttle)
	api.POST("/login", authHandler.Login, throttle)

	// --- Authenticated routes ---
	api.POST("/logout", authHandler.Logout, requireAuth)
	api.GET("/books", bookHandler.List, requireAuth)

	// --- Admin routes ---
	api.POST("/books", bookHandler.Create, requireAuth, requireAdmin)
	api.PUT("/books/:id", bookHandler.Update, requireAuth, requireAdmin)
	api.DELETE("/books/:id", bookHandler.Delete, requireAuth, requireAdmin)
	api.GET("/books/:id/history", bookHandler.History, requireAuth, requireAdmin)

	return e
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
