package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type contextKey struct{}

// FromContext retrieves the request-scoped logger from the context.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(contextKey{}).(*zap.Logger); ok {
		return l
	}
	return Get()
}

// WithContext adds the logger to the context.
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromEcho retrieves the request-scoped logger from the echo context.
func FromEcho(c echo.Context) *zap.Logger {
	if l, ok := c.Get("logger").(*zap.Logger); ok {
		return l
	}
	return Get()
}
