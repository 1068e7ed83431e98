package httplog

import (
	"context"
	"net/http"

	"github.com/driftlock/logging"
)

// contextKey keeps middleware values from colliding with other packages'
// context entries.
type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "requestId"
)

// WithLogger returns a context carrying l for FromContext to retrieve.
func WithLogger(ctx context.Context, l logging.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the per-request logger bound by the middleware.
// Contexts without one fall back to logging.Default(), so call sites never
// need a nil check.
func FromContext(ctx context.Context) logging.Logger {
	if l, ok := ctx.Value(loggerKey).(logging.Logger); ok && l != nil {
		return l
	}
	return logging.Default()
}

// FromRequest is FromContext over the request's context.
func FromRequest(r *http.Request) logging.Logger {
	return FromContext(r.Context())
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the id the middleware assigned to the
// request, or an empty string outside a request scope.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
