// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across clients: the
// transient-error retry policy, the generic request executor, and the
// request/response logging transport.
package httputil

import (
	"context"
	"errors"
	"math"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/patent-gateway/pkg/types"
)

// Default retry parameters, matching the shared configuration defaults.
const (
	defaultMaxAttempts = 3
	defaultMultiplier  = 1.0
	defaultMinWait     = 2 * time.Second
	defaultMaxWait     = 10 * time.Second
)

// RetryPolicy retries an outbound call on transient network and timeout
// errors with exponential backoff clamped to [MinWait, MaxWait]. HTTP status
// errors are not its concern: a response of any status is returned as-is.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, the initial call included.
	MaxAttempts int

	// Multiplier scales the exponential curve, in seconds: the wait before
	// retry n is clamp(Multiplier * 2^n, MinWait, MaxWait).
	Multiplier float64

	MinWait time.Duration
	MaxWait time.Duration
}

// NewRetryPolicy builds a policy from shared configuration, applying
// defaults for unset fields.
func NewRetryPolicy(cfg types.RetryConfig) RetryPolicy {
	p := RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		Multiplier:  cfg.Multiplier,
		MinWait:     cfg.MinWait,
		MaxWait:     cfg.MaxWait,
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.Multiplier <= 0 {
		p.Multiplier = defaultMultiplier
	}
	if p.MinWait <= 0 {
		p.MinWait = defaultMinWait
	}
	if p.MaxWait <= 0 {
		p.MaxWait = defaultMaxWait
	}
	return p
}

// wait returns the backoff before retry attempt n (0-based).
func (p RetryPolicy) wait(attempt int) time.Duration {
	d := time.Duration(p.Multiplier * math.Pow(2, float64(attempt)) * float64(time.Second))
	if d < p.MinWait {
		d = p.MinWait
	}
	if d > p.MaxWait {
		d = p.MaxWait
	}
	return d
}

// Do invokes fn, retrying transient failures until the attempt ceiling is
// reached. Non-retryable errors propagate immediately. After exhaustion the
// last error is returned for the caller to convert into an error envelope.
// If the context is cancelled during a backoff wait, ctx.Err() is returned.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) (*http.Response, error)) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		resp, err := fn(ctx)
		if err == nil {
			return resp, nil
		}
		if !IsRetryable(err) {
			return nil, err
		}
		lastErr = err

		if attempt == p.MaxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.wait(attempt)):
		}
	}
	return nil, lastErr
}

// IsRetryable reports whether an error is a transient network or timeout
// failure. Context cancellation is deliberate and never retried.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	// http.Client.Do wraps connection-level failures in *url.Error.
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
