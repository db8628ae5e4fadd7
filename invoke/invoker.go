/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package invoke

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chainguard.dev/arbiter/invoke/retry"
	"chainguard.dev/arbiter/metrics"
	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"
)

// Invoker is the judge invocation capability consumed by the comparator,
// challenger, and voter. Implementations must capture failures on the
// Result rather than panicking or retrying above this layer.
type Invoker interface {
	Invoke(ctx context.Context, prompt string, cfg Config) Result
}

// Client is the production Invoker backed by the provider SDKs.
type Client struct {
	policy       retry.Policy
	judgeMetrics *metrics.Judge
}

// Option configures a Client.
type Option func(*Client)

// WithRetryPolicy overrides the default backoff policy.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Client) { c.policy = p }
}

// NewClient creates a provider-backed Invoker.
func NewClient(opts ...Option) *Client {
	c := &Client{
		policy:       retry.DefaultPolicy(),
		judgeMetrics: metrics.NewJudge("chainguard.ai.arbiter"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invoke implements Invoker. The call is bounded by the config timeout and
// retried on transient provider errors; any remaining failure is captured
// on the Result.
func (c *Client) Invoke(ctx context.Context, prompt string, cfg Config) Result {
	cfg = cfg.withDefaults()
	log := clog.FromContext(ctx).With("provider", cfg.Provider).With("model", cfg.Model)

	if err := cfg.Validate(); err != nil {
		return Result{Model: cfg.Model, Err: err}
	}

	callCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	started := time.Now()
	content, err := retry.Do(callCtx, c.policy, string(cfg.Provider)+"_invoke", retryableFor(cfg.Provider), func() (string, error) {
		return c.call(callCtx, prompt, cfg)
	})
	c.judgeMetrics.RecordInvocation(ctx, string(cfg.Provider), cfg.Model, time.Since(started), err != nil)

	if err != nil {
		log.With("error", err).Warn("Judge invocation failed")
		return Result{Model: cfg.Model, Err: err}
	}

	log.With("content_length", len(content)).Debug("Judge invocation complete")
	return Result{Model: cfg.Model, Content: content}
}

// call dispatches to the provider adapter.
func (c *Client) call(ctx context.Context, prompt string, cfg Config) (string, error) {
	switch cfg.Provider {
	case ProviderAnthropic:
		return callAnthropic(ctx, prompt, cfg)
	case ProviderOpenAI:
		return callOpenAI(ctx, prompt, cfg)
	case ProviderGemini:
		return callGemini(ctx, prompt, cfg)
	default:
		return "", fmt.Errorf("unknown provider: %q", cfg.Provider)
	}
}

// retryableFor returns the transient-error classifier for a provider.
func retryableFor(p Provider) func(error) bool {
	switch p {
	case ProviderAnthropic:
		return isRetryableAnthropicError
	case ProviderOpenAI:
		return isRetryableOpenAIError
	default:
		return isRetryableGeminiError
	}
}

// MinCriticalContent is the minimum response length Critical accepts.
// Shorter responses indicate a truncated or refused judgment.
const MinCriticalContent = 20

// Critical invokes a judge call that the caller cannot proceed without.
// A failed call, an empty response, or content shorter than minLen yields a
// typed *CriticalError carrying the model identifier and the cause. A
// non-positive minLen uses MinCriticalContent. The timeout is raised to
// CriticalTimeout unless the config sets its own.
func Critical(ctx context.Context, inv Invoker, prompt string, cfg Config, minLen int) (string, error) {
	if minLen <= 0 {
		minLen = MinCriticalContent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = CriticalTimeout
	}

	res := inv.Invoke(ctx, prompt, cfg)
	if res.Err != nil {
		return "", &CriticalError{Model: cfg.Model, Err: res.Err}
	}
	if len(strings.TrimSpace(res.Content)) < minLen {
		return "", &CriticalError{
			Model: cfg.Model,
			Err:   fmt.Errorf("insufficient output: %d characters, need at least %d", len(res.Content), minLen),
		}
	}
	return res.Content, nil
}

// Parallel issues one prompt to every configuration concurrently and
// returns per-config results in the same order as cfgs. Calls are isolated:
// a timeout or failure on one does not cancel its siblings. When fewer than
// minSuccesses calls succeed the results are still returned alongside a
// *BatchError; a non-positive minSuccesses means 1.
func Parallel(ctx context.Context, inv Invoker, prompt string, cfgs []Config, minSuccesses int) ([]Result, error) {
	if minSuccesses <= 0 {
		minSuccesses = 1
	}
	if len(cfgs) == 0 {
		return nil, errors.New("no judge configurations provided")
	}

	results := make([]Result, len(cfgs))
	var eg errgroup.Group
	for i, cfg := range cfgs {
		eg.Go(func() error {
			results[i] = inv.Invoke(ctx, prompt, cfg)
			return nil
		})
	}
	// Invoke captures failures on the Result, so Wait cannot fail.
	_ = eg.Wait()

	succeeded := 0
	for _, r := range results {
		if r.Err == nil {
			succeeded++
		}
	}
	if succeeded < minSuccesses {
		return results, &BatchError{Required: minSuccesses, Succeeded: succeeded, Total: len(cfgs)}
	}
	return results, nil
}
