// Package middleware holds echo middleware shared across services.
package middleware

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type LoggerOpts func(*middleware.RequestLoggerConfig)

// Logger emits one structured slog line per request: uri and status,
// plus the error on failed requests.
func Logger(opts ...LoggerOpts) echo.MiddlewareFunc {
	cfg := defaultLoggerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return middleware.RequestLoggerWithConfig(cfg)
}

func defaultLoggerConfig() middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogLatency:  true,
		LogURI:      true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				slog.LogAttrs(context.Background(), slog.LevelError, "REQUEST_ERROR",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.String("err", v.Error.Error()),
				)
				return nil
			}
			slog.LogAttrs(context.Background(), slog.LevelInfo, "REQUEST",
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
			)
			return nil
		},
	}
}
