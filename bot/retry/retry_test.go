package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	contractx "github.com/charla-ai/charla/bot/contract"
)

func recordingSleeper(delays *[]time.Duration) Sleeper {
	return func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var delays []time.Duration
	policy := NewPolicy(WithSleeper(recordingSleeper(&delays)))

	calls := 0
	out, err := Do(context.Background(), policy, func(ctx context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", fmt.Errorf("%w: 429 too many requests", contractx.ErrRateLimited)
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if out != "ok" {
		t.Fatalf("Do() = %q, want ok", out)
	}
	if calls != 3 {
		t.Fatalf("call count = %d, want 3", calls)
	}
	if len(delays) != 2 || delays[0] != time.Second || delays[1] != 2*time.Second {
		t.Fatalf("unexpected backoff delays: %v", delays)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	t.Parallel()

	var delays []time.Duration
	policy := NewPolicy(WithSleeper(recordingSleeper(&delays)))

	calls := 0
	_, err := Do(context.Background(), policy, func(ctx context.Context) (string, error) {
		calls++
		return "", fmt.Errorf("%w: 429 too many requests", contractx.ErrRateLimited)
	})
	if !errors.Is(err, contractx.ErrRetriesExhausted) {
		t.Fatalf("Do() error = %v, want ErrRetriesExhausted", err)
	}
	if !errors.Is(err, contractx.ErrRateLimited) {
		t.Fatalf("exhaustion error must keep the underlying cause, got %v", err)
	}
	if calls != DefaultMaxAttempts {
		t.Fatalf("call count = %d, want %d", calls, DefaultMaxAttempts)
	}
}

func TestDoPropagatesOtherErrorsImmediately(t *testing.T) {
	t.Parallel()

	var delays []time.Duration
	policy := NewPolicy(WithSleeper(recordingSleeper(&delays)))

	boom := errors.New("upstream auth failed")
	calls := 0
	_, err := Do(context.Background(), policy, func(ctx context.Context) (int, error) {
		calls++
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Do() error = %v, want the original error", err)
	}
	if calls != 1 {
		t.Fatalf("call count = %d, want 1", calls)
	}
	if len(delays) != 0 {
		t.Fatalf("no backoff expected, got delays %v", delays)
	}
}

func TestDoHonorsContextDuringBackoff(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	policy := NewPolicy(WithSleeper(func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}))

	_, err := Do(ctx, policy, func(ctx context.Context) (string, error) {
		return "", fmt.Errorf("%w: 429", contractx.ErrRateLimited)
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do() error = %v, want context.Canceled", err)
	}
}

func TestDoCustomAttemptBudget(t *testing.T) {
	t.Parallel()

	var delays []time.Duration
	policy := NewPolicy(
		WithMaxAttempts(2),
		WithInitialDelay(10*time.Millisecond),
		WithSleeper(recordingSleeper(&delays)),
	)

	calls := 0
	_, err := Do(context.Background(), policy, func(ctx context.Context) (string, error) {
		calls++
		return "", fmt.Errorf("%w: 429", contractx.ErrRateLimited)
	})
	if !errors.Is(err, contractx.ErrRetriesExhausted) {
		t.Fatalf("Do() error = %v, want ErrRetriesExhausted", err)
	}
	if calls != 2 {
		t.Fatalf("call count = %d, want 2", calls)
	}
	if len(delays) != 2 || delays[0] != 10*time.Millisecond || delays[1] != 20*time.Millisecond {
		t.Fatalf("unexpected delays: %v", delays)
	}
}
