/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package retry implements exponential backoff for transient judge provider
// errors. Per the layering of this module, retry lives inside the invoker:
// components above it (comparator, voter) never retry on their own.
package retry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/chainguard-dev/clog"
)

// Policy configures backoff behavior for provider calls. Rate limits on
// judge providers are quota-based, so the defaults back off longer than a
// typical HTTP retry policy would.
type Policy struct {
	// MaxRetries is the number of retry attempts after the first call.
	// 0 disables retries.
	MaxRetries int
	// BaseDelay is the initial backoff duration.
	BaseDelay time.Duration
	// MaxDelay caps the exponential backoff.
	MaxDelay time.Duration
	// MaxJitter is the maximum random jitter added to each backoff.
	MaxJitter time.Duration
}

// DefaultPolicy returns the backoff policy used for judge provider calls.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
		MaxJitter:  500 * time.Millisecond,
	}
}

// Do runs fn with exponential backoff, retrying only errors the retryable
// classifier accepts. The operation name appears in retry logs.
func Do[T any](ctx context.Context, p Policy, operation string, retryable func(error) bool, fn func() (T, error)) (T, error) {
	var result T
	var lastErr error

	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}

		if !retryable(lastErr) {
			return result, lastErr
		}

		if attempt >= p.MaxRetries {
			break
		}

		backoff := min(p.BaseDelay<<attempt, p.MaxDelay)
		if p.MaxJitter > 0 {
			backoff += rand.N(p.MaxJitter)
		}

		clog.FromContext(ctx).With("operation", operation).
			With("attempt", attempt+1).
			With("max_retries", p.MaxRetries).
			With("backoff", backoff).
			With("error", lastErr.Error()).
			Warn("Transient provider error, retrying")

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return result, fmt.Errorf("%s failed after %d retries: %w", operation, p.MaxRetries, lastErr)
}
