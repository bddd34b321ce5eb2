package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextUserKey ctxKey = "authUser"

// AuthenticatedUser is the minimal view of the principal stored in the
// request context. The auth package's user type satisfies it.
type AuthenticatedUser interface {
	GetID() string
}

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if user, ok := ctx.Value(ContextUserKey).(AuthenticatedUser); ok {
		return user.GetID()
	}
	return ""
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
