package refine

import (
	"context"
	"time"
)

// RetryPolicy retries an operation a bounded number of times with a
// per-attempt backoff. Only errors the classifier accepts are retried;
// anything else is returned immediately.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// LinearBackoff waits base × attempt number, so delays strictly increase.
func LinearBackoff(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt)
	}
}

// Do runs fn until it succeeds, a non-retryable error occurs, attempts run
// out, or the context is cancelled.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error, retryable func(error) bool) error {
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}
		if attempt == p.MaxAttempts {
			break
		}

		delay := time.Duration(0)
		if p.Backoff != nil {
			delay = p.Backoff(attempt)
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
