// Package retry provides bounded retry with exponential backoff and
// jitter. It is used for startup connections only; request-path
// operations surface failures immediately.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// ErrMaxAttemptsExceeded is returned when every attempt failed.
var ErrMaxAttemptsExceeded = errors.New("max retry attempts exceeded")

// Config contains retry configuration
type Config struct {
	// MaxRetries is the number of retries after the initial attempt
	MaxRetries int
	// InitialInterval is the first backoff interval
	InitialInterval time.Duration
	// MaxInterval caps the backoff interval
	MaxInterval time.Duration
	// Multiplier grows the interval after each attempt
	Multiplier float64
	// JitterFactor adds ±factor random jitter to each interval
	JitterFactor float64
}

// DefaultConfig returns the default backoff schedule: 1s, 2s, 4s (±10%).
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:      3,
		InitialInterval: time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
		JitterFactor:    0.1,
	}
}

// Operation is the function to be retried
type Operation func(ctx context.Context) error

// PermanentError marks an error that must not be retried.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so Do stops retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// Do executes op until it succeeds, returns a permanent error, the
// context is canceled, or the attempts are exhausted. The last attempt's
// error is wrapped under ErrMaxAttemptsExceeded.
func Do(ctx context.Context, cfg *Config, op Operation) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		var perm *PermanentError
		if errors.As(lastErr, &perm) {
			return perm.Err
		}

		if attempt == cfg.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval(cfg, attempt)):
		}
	}
	return errors.Join(ErrMaxAttemptsExceeded, lastErr)
}

func interval(cfg *Config, attempt int) time.Duration {
	d := float64(cfg.InitialInterval) * math.Pow(cfg.Multiplier, float64(attempt))
	if cfg.JitterFactor > 0 {
		d += d * cfg.JitterFactor * (rand.Float64()*2 - 1)
	}
	if max := float64(cfg.MaxInterval); d > max {
		d = max
	}
	if d < 0 {
		d = float64(cfg.InitialInterval)
	}
	return time.Duration(d)
}
