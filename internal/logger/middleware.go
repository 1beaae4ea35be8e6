package logger

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Middleware assigns each request an id, stashes a request-scoped logger in
// both the echo context and the request context, and logs the request once
// it completes.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			requestID := c.Request().Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set("X-Request-ID", requestID)

			ctxLogger := Get().With(zap.String("request_id", requestID))
			c.Set("logger", ctxLogger)

			req := c.Request()
			c.SetRequest(req.WithContext(WithContext(req.Context(), ctxLogger)))

			err := next(c)

			ctxLogger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", c.RealIP()),
			)

			return err
		}
	}
}
