package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
)

// ContextKey is the key type for request-scoped values.
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// PrincipalKey is the key for the authenticated user in the request context
	PrincipalKey ContextKey = "principal"
)

// SetTraceID adds a fresh trace ID to the context.
// The ID is a 32-character hex string.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, newTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithPrincipal stores the authenticated user in the context.
func WithPrincipal(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, PrincipalKey, user)
}

// PrincipalFromContext returns the authenticated user, or nil for anonymous requests.
func PrincipalFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(PrincipalKey).(*domain.User)
	return user
}

func newTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
