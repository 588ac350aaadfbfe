package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/movitour/internal/logger"
)

// RequestID assigns every request an id (kept from X-Request-Id when the
// client sends one), echoes it in the response and stores a child of log
// carrying request_id in the request context.
func RequestID(log *logger.Logger) echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: newRequestID,
		RequestIDHandler: func(c echo.Context, id string) {
			req := c.Request()
			l := log.WithField("request_id", id)
			c.SetRequest(req.WithContext(l.WithContext(req.Context())))
		},
	})
}

func newRequestID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}

// RequestLogger writes one entry per request through the request-scoped
// logger. Failed requests are logged at error level with the cause.
func RequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			l := logger.FromContext(c.Request().Context())
			ev := l.Info()
			if v.Error != nil {
				ev = l.Error().Err(v.Error)
			}
			ev.Str("uri", v.URI).
				Str("method", v.Method).
				Int("status", v.Status).
				Dur("duration", v.Latency).
				Send()
			return nil
		},
	})
}
