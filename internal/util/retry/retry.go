package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// Policy controls how Do retries an operation.
type Policy struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64

	// Jitter randomises each delay by up to this fraction in either
	// direction. Zero disables it.
	Jitter float64

	// RetryIf reports whether an error is worth another attempt. A nil
	// RetryIf retries every error not marked Fatal.
	RetryIf func(error) bool

	// OnRetry is called before each wait with the failed attempt number
	// (starting at 1), its error and the delay before the next attempt.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Option is a functional option for the retry policy.
type Option func(*Policy)

func defaultPolicy() *Policy {
	return &Policy{
		MaxRetries:   5,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.2,
	}
}

// Do runs operation until it succeeds, returns an error that is Fatal or
// rejected by RetryIf, runs out of retries, or ctx is done.
//
// A Fatal error is returned unwrapped, so callers see the cause itself.
// Exhausted retries return the last error wrapped with the attempt count.
func Do(ctx context.Context, operation func(ctx context.Context) error, opts ...Option) error {
	p := defaultPolicy()
	for _, opt := range opts {
		opt(p)
	}

	delay := p.InitialDelay
	for attempt := 1; ; attempt++ {
		err := operation(ctx)
		if err == nil {
			return nil
		}

		var fatal *FatalError
		if errors.As(err, &fatal) {
			return fatal.Err
		}
		if p.RetryIf != nil && !p.RetryIf(err) {
			return err
		}
		if attempt > p.MaxRetries {
			return fmt.Errorf("giving up after %d attempts: %w", attempt, err)
		}

		wait := p.jittered(delay)
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry cancelled after %d attempts (last error: %v): %w", attempt, err, ctx.Err())
		case <-timer.C:
		}

		delay = min(time.Duration(float64(delay)*p.Multiplier), p.MaxDelay)
	}
}

func (p *Policy) jittered(d time.Duration) time.Duration {
	if p.Jitter <= 0 || d <= 0 {
		return d
	}
	spread := (rand.Float64()*2 - 1) * p.Jitter
	return time.Duration(float64(d) * (1 + spread))
}

// WithMaxRetries sets the maximum number of retries after the first attempt.
func WithMaxRetries(n int) Option {
	return func(p *Policy) {
		p.MaxRetries = n
	}
}

// WithInitialDelay sets the delay before the first retry.
func WithInitialDelay(d time.Duration) Option {
	return func(p *Policy) {
		p.InitialDelay = d
	}
}

// WithMaxDelay caps the delay between retries.
func WithMaxDelay(d time.Duration) Option {
	return func(p *Policy) {
		p.MaxDelay = d
	}
}

// WithMultiplier sets the backoff multiplier.
func WithMultiplier(m float64) Option {
	return func(p *Policy) {
		p.Multiplier = m
	}
}

// WithJitter sets the jitter fraction.
func WithJitter(f float64) Option {
	return func(p *Policy) {
		p.Jitter = f
	}
}

// WithRetryIf restricts retries to errors accepted by fn.
func WithRetryIf(fn func(error) bool) Option {
	return func(p *Policy) {
		p.RetryIf = fn
	}
}

// WithOnRetry registers a hook called before every retry wait.
func WithOnRetry(fn func(attempt int, err error, delay time.Duration)) Option {
	return func(p *Policy) {
		p.OnRetry = fn
	}
}

// FatalError wraps an error to mark it as fatal (non-retryable).
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal marks an error as fatal (non-retryable).
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal checks if an error is fatal (non-retryable).
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}
