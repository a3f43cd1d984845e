// Package retry provides a bounded retry policy with an injectable
// sleep function so retry behavior is testable against a fake clock.
package retry

import (
	"context"
	"time"
)

// Policy defines retry behavior. Backoff holds the wait before each
// re-attempt: attempt n (1-based retry) waits Backoff[n-1], and the last
// entry repeats if there are more retries than entries.
type Policy struct {
	MaxAttempts int
	Backoff     []time.Duration

	// Sleep is called to wait between attempts. Defaults to a
	// context-aware time.After wait; tests inject a recorder.
	Sleep func(ctx context.Context, d time.Duration) error
}

// None performs a single attempt with no retries. Generation calls use
// this: one well-provisioned attempt beats several short ones.
func None() *Policy {
	return &Policy{MaxAttempts: 1}
}

// VisionDefault is the policy for vision-tier calls, where transient
// service errors are common and the payload is cheap to resend:
// three attempts with linear 10s/20s backoff.
func VisionDefault() *Policy {
	return &Policy{
		MaxAttempts: 3,
		Backoff:     []time.Duration{10 * time.Second, 20 * time.Second},
	}
}

func (p *Policy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Policy) backoffFor(retry int) time.Duration {
	if len(p.Backoff) == 0 {
		return 0
	}
	if retry >= len(p.Backoff) {
		return p.Backoff[len(p.Backoff)-1]
	}
	return p.Backoff[retry]
}

// RetryableError is implemented by errors that declare their own
// retryability, such as the completion gateway's classified errors.
type RetryableError interface {
	error
	IsRetryable() bool
}

// IsRetryable reports whether an error is worth retrying. Errors that
// implement RetryableError decide for themselves; anything else is
// treated as permanent.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if r, ok := err.(RetryableError); ok {
		return r.IsRetryable()
	}
	return false
}

// DoWithResult executes fn under the policy and returns its result.
// Non-retryable errors are returned immediately. Waits respect context
// cancellation.
func DoWithResult[T any](ctx context.Context, p *Policy, fn func() (T, error)) (T, error) {
	if p == nil {
		p = None()
	}

	var result T
	var lastErr error

	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := p.sleep(ctx, p.backoffFor(attempt-1)); err != nil {
				return result, err
			}
		}

		r, err := fn()
		if err == nil {
			return r, nil
		}
		lastErr = err
		result = r

		if !IsRetryable(err) {
			return result, err
		}
	}

	return result, lastErr
}

// Do executes fn under the policy.
func Do(ctx context.Context, p *Policy, fn func() error) error {
	_, err := DoWithResult(ctx, p, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
