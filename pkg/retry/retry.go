// Package retry wraps fallible storage operations with bounded retry for
// transient failures. Non-transient failures are surfaced immediately.
package retry

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Config bounds a retry loop.
type Config struct {
	Attempts int
	Delay    time.Duration
}

// DefaultConfig matches the storage layer's expected transient-failure window.
func DefaultConfig() Config {
	return Config{Attempts: 3, Delay: 100 * time.Millisecond}
}

// transientError marks an error as retryable.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient wraps an error so the retry loop will retry it.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether an error should be retried. Explicitly marked
// errors always qualify; otherwise connectivity-shaped driver errors do.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var te *transientError
	if errors.As(err, &te) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "i/o timeout")
}

// Do runs fn up to cfg.Attempts times, sleeping cfg.Delay between attempts.
// It stops early on success, on a non-transient error, or when ctx is done.
// When attempts are exhausted the last error is returned to the caller.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsTransient(lastErr) {
			return lastErr
		}
		if attempt == cfg.Attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.Delay):
		}
	}
	return lastErr
}

// DoValue is Do for operations that return a value.
func DoValue[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var result T
	err := Do(ctx, cfg, func() error {
		var innerErr error
		result, innerErr = fn()
		return innerErr
	})
	return result, err
}
