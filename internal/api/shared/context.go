package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the type used for context values set by this package.
type ContextKey string

// Context keys for request-scoped values
const (
	// ClaimsContextKey is the context key for the verified token claims.
	ClaimsContextKey ContextKey = "authClaims"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds a freshly generated trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
