package http

import (
	"net/http"
	"strings"
	"time"

	"warehouse/internal/adapters/in/http/api"
	"warehouse/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// BaseURL prefixes every API route.
const BaseURL = "/api/v1"

// RouterOptions configures NewRouter. Every field is optional.
type RouterOptions struct {
	Logger *logger.Logger
	// Gatherer backs /metrics; the default registry when nil.
	Gatherer prometheus.Gatherer
	// LogLevel sets echo's own logger (debug, info, warn, error, off).
	LogLevel string
}

// NewRouter builds the echo instance with health, metrics, swagger and API routes.
func NewRouter(server *Server, opts RouterOptions) *echo.Echo {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("http")

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echoLogLevel(opts.LogLevel))
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(log)

	e.Use(middleware.Recover())
	e.Use(operatorContext(log))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			log.Debug(ctx.Request().Context(), "request",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency.Round(time.Microsecond))
			return nil
		},
	}))

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api.RegisterHandlersWithBaseURL(e, server, BaseURL)
	return e
}

// operatorContext attaches the acting operator to the request context for logging.
func operatorContext(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if operator := strings.TrimSpace(ctx.Request().Header.Get("X-Operator")); operator != "" {
				req := ctx.Request()
				ctx.SetRequest(req.WithContext(log.WithOperator(req.Context(), operator)))
			}
			return next(ctx)
		}
	}
}

func echoLogLevel(level string) gommonlog.Lvl {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return gommonlog.DEBUG
	case "warn", "warning":
		return gommonlog.WARN
	case "error":
		return gommonlog.ERROR
	case "off", "disabled":
		return gommonlog.OFF
	default:
		return gommonlog.INFO
	}
}
