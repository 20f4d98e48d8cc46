// Package requestcontext provides context accessors for iteration-scoped values.
//
// The workflow driver sets these at the top of every patient iteration; the
// services and the log handler read them.
//
// Usage in services (read values):
//
//	iterationID := requestcontext.IterationID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "covrecord/pkg/domain"
)

// Context key types (unexported for encapsulation).
type (
	iterationIDKey struct{}
	operatorKey    struct{}
	requestTimeKey struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyIterationID = iterationIDKey{}
	ContextKeyOperator    = operatorKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// IterationID retrieves the current patient iteration ID.
// Returns the zero value (nil UUID) if not set.
func IterationID(ctx context.Context) id.IterationID {
	if iterationID, ok := ctx.Value(ContextKeyIterationID).(id.IterationID); ok {
		return iterationID
	}
	return id.IterationID{}
}

// WithIterationID injects an iteration ID into the context.
func WithIterationID(ctx context.Context, iterationID id.IterationID) context.Context {
	return context.WithValue(ctx, ContextKeyIterationID, iterationID)
}

// Operator retrieves the name of the workstation operator, or "".
func Operator(ctx context.Context) string {
	if operator, ok := ctx.Value(ContextKeyOperator).(string); ok {
		return operator
	}
	return ""
}

func WithOperator(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, ContextKeyOperator, operator)
}

// Now retrieves the iteration-scoped time from context.
// Falls back to time.Now() if not set.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a fixed time into the context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
