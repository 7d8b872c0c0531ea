package database

import (
	"context"
	"fmt"
	"time"
)

// RetryContext calls fn up to attempts times, sleeping between failures.
// It stops early when ctx is done and returns the last error from fn.
func RetryContext(ctx context.Context, attempts int, sleep time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}
