package entities

import (
	"context"
	"time"
)

type commandTimeoutKey struct{}

// WithCommandTimeout bounds every git command started with the returned context.
// Zero or a negative value means no limit, which is also the default.
func WithCommandTimeout(ctx context.Context, timeout time.Duration) context.Context {
	return context.WithValue(ctx, commandTimeoutKey{}, timeout)
}

// CommandTimeout returns the per-command limit carried by ctx, or 0 when there is none.
func CommandTimeout(ctx context.Context) time.Duration {
	timeout, ok := ctx.Value(commandTimeoutKey{}).(time.Duration)
	if !ok || timeout < 0 {
		return 0
	}
	return timeout
}
