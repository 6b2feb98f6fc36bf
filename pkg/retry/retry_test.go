package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig() *Config {
	return &Config{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      2.0,
		JitterFactor:    0,
	}
}

func TestDo(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := Do(ctx, fastConfig(), func(ctx context.Context) error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("Do failed: %v", err)
		}
		if calls != 1 {
			t.Errorf("expected 1 call, got %d", calls)
		}
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		err := Do(ctx, fastConfig(), func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Do failed: %v", err)
		}
		if calls != 3 {
			t.Errorf("expected 3 calls, got %d", calls)
		}
	})

	t.Run("exhaustion reports the attempts", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := Do(ctx, fastConfig(), func(ctx context.Context) error {
			calls++
			return boom
		})
		if err == nil {
			t.Fatal("expected error after exhaustion")
		}
		if !errors.Is(err, ErrMaxAttemptsExceeded) {
			t.Errorf("expected ErrMaxAttemptsExceeded, got %v", err)
		}
		if !errors.Is(err, boom) {
			t.Error("last cause must remain reachable")
		}
		if calls != 4 { // initial attempt + 3 retries
			t.Errorf("expected 4 calls, got %d", calls)
		}
	})

	t.Run("permanent error stops immediately", func(t *testing.T) {
		calls := 0
		err := Do(ctx, fastConfig(), func(ctx context.Context) error {
			calls++
			return Permanent(errors.New("bad credentials"))
		})
		if err == nil {
			t.Fatal("expected error")
		}
		if calls != 1 {
			t.Errorf("expected 1 call, got %d", calls)
		}
	})

	t.Run("cancelled context stops between attempts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := Do(ctx, fastConfig(), func(ctx context.Context) error {
			calls++
			cancel()
			return errors.New("transient")
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected 1 call, got %d", calls)
		}
	})
}
