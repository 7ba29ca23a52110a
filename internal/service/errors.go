package service

import (
	"context"
	"coursegpt_backend/internal/util"
	"errors"
	"time"
)

// storeError classifies a repository failure for the HTTP layer.
func storeError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &util.TimeoutError{Op: op, Err: err}
	}
	return &util.PersistenceError{Op: op, Err: err}
}

// withTimeout bounds ctx by d when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
