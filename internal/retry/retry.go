// Package retry wraps remote operations with a per-attempt timeout and an
// exponential-backoff retry policy.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"vtask/internal/apierr"
)

// Policy controls timeout and retry behavior for a single call site.
// It is constructed per call, consumed once and discarded.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// InitialDelay is the backoff before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the backoff.
	MaxDelay time.Duration

	// Multiplier grows the backoff each retry.
	Multiplier float64

	// Timeout bounds each individual attempt.
	Timeout time.Duration

	// Retryable classifies an error as transient. Defaults to
	// apierr.Retryable when nil.
	Retryable func(error) bool
}

// DefaultPolicy returns the standard policy: 2 retries, 500ms initial delay
// doubling up to 5s, 10s per-attempt timeout.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   2,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2,
		Timeout:      10 * time.Second,
	}
}

// Delay returns the backoff before retrying after the given zero-based
// attempt, capped at MaxDelay.
func (p Policy) Delay(attempt int) time.Duration {
	d := float64(p.InitialDelay)
	for i := 0; i < attempt; i++ {
		d *= p.Multiplier
	}
	if lim := float64(p.MaxDelay); d > lim {
		d = lim
	}
	return time.Duration(d)
}

func (p Policy) retryable(err error) bool {
	if p.Retryable != nil {
		return p.Retryable(err)
	}
	return apierr.Retryable(err)
}

// Do runs op under the policy. Each attempt gets its own deadline; a timed-out
// attempt is abandoned and, if retries remain and the error is retryable,
// superseded by a new attempt. The last observed error is returned once
// retries are exhausted or the error is classified non-retryable.
func Do[T any](ctx context.Context, p Policy, label string, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		v, err := runAttempt(ctx, p, label, op)
		if err == nil {
			return v, nil
		}
		if attempt >= p.MaxRetries || !p.retryable(err) {
			return zero, err
		}
		delay := p.Delay(attempt)
		log.Debug().Str("op", label).Int("attempt", attempt+1).
			Dur("delay", delay).Err(err).Msg("retrying")
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, classifyCtx(label, ctx.Err())
		}
	}
}

// runAttempt races op against the per-attempt timeout. The op receives a context
// carrying the deadline so it can stop early, but the race does not wait for
// it once the timer fires.
func runAttempt[T any](ctx context.Context, p Policy, label string, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultPolicy().Timeout
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := op(attemptCtx)
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		if r.err != nil && attemptCtx.Err() == context.DeadlineExceeded && apierr.KindOf(r.err) == apierr.KindUnknown {
			return zero, apierr.New(apierr.KindTimeout, label, r.err)
		}
		return r.v, r.err
	case <-attemptCtx.Done():
		if ctx.Err() != nil {
			return zero, classifyCtx(label, ctx.Err())
		}
		return zero, apierr.New(apierr.KindTimeout, label, context.DeadlineExceeded)
	}
}

// classifyCtx tags a context failure. Deadline expiry is a timeout; an
// explicit cancellation, such as the user interrupting the session, is not
// and must not be spoken as one.
func classifyCtx(label string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apierr.New(apierr.KindTimeout, label, err)
	}
	return apierr.New(apierr.KindUnknown, label, err)
}
