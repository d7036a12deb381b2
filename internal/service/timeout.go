package service

import (
	"context"
	"time"
)

// withTimeout bounds one store or provider round trip. A non-positive
// timeout leaves the parent deadline in charge.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
