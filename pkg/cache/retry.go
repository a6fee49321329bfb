package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a remote cache backend cannot be reached.
var ErrUnavailable = errors.New("cache backend unavailable")

// transientError marks a failure that may succeed when tried again.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as worth retrying. A nil err stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err, or anything it wraps, was marked with [Transient].
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// Backoff retries transient failures, doubling the pause after each attempt.
type Backoff struct {
	Attempts int
	Initial  time.Duration
}

// DefaultBackoff is used when a config leaves its Backoff zero.
var DefaultBackoff = Backoff{Attempts: 3, Initial: 200 * time.Millisecond}

func (b Backoff) orDefault() Backoff {
	if b.Attempts <= 0 {
		return DefaultBackoff
	}
	return b
}

// Retry calls fn until it succeeds, returns an error not marked transient,
// or runs out of attempts. Cancelling ctx ends the wait between attempts.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	b = b.orDefault()
	delay := b.Initial

	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsTransient(err) || attempt >= b.Attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}
