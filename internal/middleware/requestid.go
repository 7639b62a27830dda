package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"stockroom/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns each request an identifier (reusing the client-supplied
// header when present), echoes it back in the response, and binds a
// request-scoped logger carrying the id into the request context.
func RequestID(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}

			l := log.With().Logger()
			l.UpdateContext(func(zc zerolog.Context) zerolog.Context {
				return zc.Str("request_id", id)
			})
			wrapped := &logger.Logger{Logger: l}

			req := c.Request()
			c.SetRequest(req.WithContext(wrapped.WithContext(req.Context())))
			c.Response().Header().Set(requestIDHeader, id)
			return next(c)
		}
	}
}
