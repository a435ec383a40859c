package http

import (
	"log/slog"
	"net/http"

	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/logging"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RouterConfig collects what NewRouter mounts besides the API routes.
// Metrics and Swagger may be nil.
type RouterConfig struct {
	Server  servers.ServerInterface
	Logger  *slog.Logger
	Metrics interface {
		Middleware() echo.MiddlewareFunc
		Handler() http.Handler
	}
	Swagger *openapi3.T
}

// NewRouter builds the echo instance serving the order API together with
// /health, /metrics and /openapi.json.
func NewRouter(cfg RouterConfig) *echo.Echo {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	if cfg.Metrics != nil {
		e.Use(cfg.Metrics.Middleware())
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	}
	if cfg.Swagger != nil {
		e.GET("/openapi.json", func(c echo.Context) error {
			return c.JSON(http.StatusOK, cfg.Swagger)
		})
	}

	servers.RegisterHandlers(e, cfg.Server)
	return e
}

// requestLogger attaches a request-scoped logger to the request context and
// writes one access line per request.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	access := middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("path", v.URIPath),
				slog.String("route", v.RoutePath),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logging.FromContext(c.Request().Context(), logger).
				LogAttrs(c.Request().Context(), level, "HTTP request", attrs...)
			return nil
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		scoped := func(c echo.Context) error {
			reqLogger := logger.With("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
			req := c.Request()
			c.SetRequest(req.WithContext(logging.WithContext(req.Context(), reqLogger)))
			return next(c)
		}
		return access(scoped)
	}
}
