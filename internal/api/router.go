package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/angelrl48/ex-peliculas-mongo/docs"
	"github.com/angelrl48/ex-peliculas-mongo/internal/api/handler"
	"github.com/angelrl48/ex-peliculas-mongo/internal/api/metrics"
	"github.com/angelrl48/ex-peliculas-mongo/internal/api/middleware"
	"github.com/angelrl48/ex-peliculas-mongo/internal/core/ports"
	"github.com/angelrl48/ex-peliculas-mongo/internal/infrastructure/http/handlers"
)

// Dependencies groups everything NewRouter needs to mount the API.
type Dependencies struct {
	AuthService  ports.AuthService
	MovieService ports.MovieService
	HealthChecks []handlers.DependencyCheck
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(metrics.Middleware())
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORS())

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	movieHandler := handler.NewMovieHandler(deps.MovieService)
	authMiddleware := middleware.Auth(deps.AuthService, deps.Logger)

	// --- Auth routes ---
	e.POST("/registro", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Movie routes (token required) ---
	movies := e.Group("/peliculas", authMiddleware)
	movies.GET("", movieHandler.List)
	movies.POST("", movieHandler.Create)
	movies.GET("/:id", movieHandler.Get)
	movies.PUT("/:id", movieHandler.Update)
	movies.DELETE("/:id", movieHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Logger, deps.HealthChecks...)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one access log line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= 500:
				ev = log.Error()
			case v.Status >= 400:
				ev = log.Warn()
			}
			if v.Error != nil {
				ev = ev.Err(v.Error)
			}
			if u, ok := handler.CurrentUser(c); ok {
				ev = ev.Str("user", u.Username)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
