// Package retrylimit paces outbound requests with an adaptive rate limit and
// retries the ones that fail with a transient HTTP status.
//
// Example usage:
//
//	lim := retrylimit.NewAdaptiveLimiter(5, 1, 20, 1, 0.5)
//	err := retrylimit.Do(ctx, lim, retrylimit.Policy{MaxAttempts: 3}, func() error {
//	    return send()
//	})
package retrylimit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// AdaptiveLimiter halves its rate when the remote side pushes back and creeps
// back up after a quiet period. Safe for concurrent use.
type AdaptiveLimiter struct {
	mu        sync.Mutex
	limiter   *rate.Limiter
	min, max  rate.Limit
	stepUp    rate.Limit
	stepDown  float64
	lastError time.Time
	quiet     time.Duration
}

// NewAdaptiveLimiter starts at initial requests per second and stays within
// [min, max]. stepUp is added after a success, stepDown multiplies the rate
// after a rate-limit response.
func NewAdaptiveLimiter(initial, min, max, stepUp rate.Limit, stepDown float64) *AdaptiveLimiter {
	if min < 1 {
		min = 1
	}
	if initial < min {
		initial = min
	}
	if max < initial {
		max = initial
	}
	return &AdaptiveLimiter{
		limiter:  rate.NewLimiter(initial, burstFor(initial)),
		min:      min,
		max:      max,
		stepUp:   stepUp,
		stepDown: stepDown,
		quiet:    10 * time.Second,
	}
}

// Wait blocks until a request may proceed or ctx ends.
func (a *AdaptiveLimiter) Wait(ctx context.Context) error {
	return a.limiter.Wait(ctx)
}

// Success raises the rate unless a rate-limit response was seen recently.
func (a *AdaptiveLimiter) Success() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if time.Since(a.lastError) > a.quiet {
		a.setLimit(a.limiter.Limit() + a.stepUp)
	}
}

// RateLimited lowers the rate after the remote side signalled overload.
func (a *AdaptiveLimiter) RateLimited() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastError = time.Now()
	a.setLimit(rate.Limit(float64(a.limiter.Limit()) * a.stepDown))
}

// Limit returns the current requests per second.
func (a *AdaptiveLimiter) Limit() rate.Limit {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.limiter.Limit()
}

func (a *AdaptiveLimiter) setLimit(l rate.Limit) {
	switch {
	case l > a.max:
		l = a.max
	case l < a.min:
		l = a.min
	}
	if l != a.limiter.Limit() {
		a.limiter.SetLimit(l)
		a.limiter.SetBurst(burstFor(l))
	}
}

func burstFor(l rate.Limit) int {
	if int(l) < 1 {
		return 1
	}
	return int(l)
}

// StatusCoder is implemented by errors that carry an HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// StatusError attaches an HTTP status to an error.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string { return fmt.Sprintf("http %d: %v", e.Code, e.Err) }
func (e *StatusError) Unwrap() error { return e.Err }
func (e *StatusError) StatusCode() int { return e.Code }

// Policy bounds the retry loop.
type Policy struct {
	MaxAttempts  int           // total attempts including the first; <1 means 1
	InitialDelay time.Duration // backoff before the second attempt
	MaxDelay     time.Duration
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = 250 * time.Millisecond
	}
	if p.MaxDelay < p.InitialDelay {
		p.MaxDelay = 5 * time.Second
	}
	return p
}

// Do runs fn, waiting on lim before every attempt. Only 429 and 5xx errors are
// retried; any other error is returned as is.
func Do(ctx context.Context, lim *AdaptiveLimiter, p Policy, fn func() error) error {
	p = p.withDefaults()
	delay := p.InitialDelay

	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if lim != nil {
			if werr := lim.Wait(ctx); werr != nil {
				return werr
			}
		}

		err = fn()
		if err == nil {
			if lim != nil {
				lim.Success()
			}
			return nil
		}

		code, ok := statusCode(err)
		if !ok || !retryable(code) {
			return err
		}
		if code == http.StatusTooManyRequests && lim != nil {
			lim.RateLimited()
		}
		if attempt == p.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
	return fmt.Errorf("gave up after %d attempts: %w", p.MaxAttempts, err)
}

func statusCode(err error) (int, bool) {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode(), true
	}
	return 0, false
}

func retryable(code int) bool {
	return code == http.StatusTooManyRequests || (code >= 500 && code < 600)
}
