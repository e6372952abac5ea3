// Package retry wraps a single asynchronous call with bounded exponential
// backoff. Only failures classified as transient rate limiting are retried;
// every other failure propagates on first occurrence.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	contractx "github.com/charla-ai/charla/bot/contract"
)

const (
	DefaultMaxAttempts  = 5
	DefaultInitialDelay = time.Second
)

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Classifier reports whether an error is worth another attempt.
type Classifier func(error) bool

type Policy struct {
	maxAttempts  int
	initialDelay time.Duration
	sleep        Sleeper
	retryable    Classifier
}

type Option func(*Policy)

func WithMaxAttempts(n int) Option {
	return func(p *Policy) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

func WithInitialDelay(d time.Duration) Option {
	return func(p *Policy) {
		if d > 0 {
			p.initialDelay = d
		}
	}
}

func WithSleeper(s Sleeper) Option {
	return func(p *Policy) {
		if s != nil {
			p.sleep = s
		}
	}
}

func WithClassifier(c Classifier) Option {
	return func(p *Policy) {
		if c != nil {
			p.retryable = c
		}
	}
}

func NewPolicy(opts ...Option) Policy {
	p := Policy{
		maxAttempts:  DefaultMaxAttempts,
		initialDelay: DefaultInitialDelay,
		sleep:        sleepContext,
		retryable: func(err error) bool {
			return errors.Is(err, contractx.ErrRateLimited)
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}
	return p
}

// Do runs call until it succeeds, fails with a non-retryable error, or the
// attempt budget is spent. The delay doubles after each retryable failure.
// Exhaustion returns an error matching both contract.ErrRetriesExhausted and
// the last underlying cause.
func Do[T any](ctx context.Context, p Policy, call func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if p.maxAttempts <= 0 {
		p = NewPolicy()
	}

	delay := p.initialDelay
	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		out, err := call(ctx)
		if err == nil {
			return out, nil
		}
		if !p.retryable(err) {
			return zero, err
		}
		lastErr = err
		if err := p.sleep(ctx, delay); err != nil {
			return zero, err
		}
		delay *= 2
	}

	return zero, fmt.Errorf("%w after %d attempts: %w", contractx.ErrRetriesExhausted, p.maxAttempts, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
