/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics instruments judge invocations and evaluation outcomes.
// OpenTelemetry carries per-call dimensions (provider, model), Prometheus
// carries the coarse outcome counters scraped by dashboards.
package metrics

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Judge provides OpenTelemetry metrics for judge model invocations.
// Metric creation degrades gracefully: a failed instrument logs a warning
// and records into a no-op counter instead of failing the caller.
type Judge struct {
	meter       metric.Meter
	invocations metric.Int64Counter
	failures    metric.Int64Counter
	latency     metric.Float64Histogram
}

// NewJudge creates judge metrics under the given meter name. The meter name
// should be unified across the module (e.g. "chainguard.ai.arbiter") with
// provider and model as dimensions on the recorded metrics.
func NewJudge(meterName string) *Judge {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	invocations, err := meter.Int64Counter("judge.invocations",
		metric.WithDescription("The number of judge model invocations"),
		metric.WithUnit("{calls}"))
	if err != nil {
		slog.Warn("Failed to create invocation counter, metrics will be disabled", "error", err, "meter", meterName)
		invocations = noop.Int64Counter{}
	}

	failures, err := meter.Int64Counter("judge.failures",
		metric.WithDescription("The number of failed judge model invocations"),
		metric.WithUnit("{calls}"))
	if err != nil {
		slog.Warn("Failed to create failure counter, metrics will be disabled", "error", err, "meter", meterName)
		failures = noop.Int64Counter{}
	}

	latency, err := meter.Float64Histogram("judge.latency",
		metric.WithDescription("Judge invocation latency"),
		metric.WithUnit("s"))
	if err != nil {
		slog.Warn("Failed to create latency histogram, metrics will be disabled", "error", err, "meter", meterName)
		latency = noop.Float64Histogram{}
	}

	return &Judge{
		meter:       meter,
		invocations: invocations,
		failures:    failures,
		latency:     latency,
	}
}

// RecordInvocation records one judge call with its outcome and duration.
func (j *Judge) RecordInvocation(ctx context.Context, provider, model string, elapsed time.Duration, failed bool) {
	attrs := []attribute.KeyValue{
		attribute.String("provider", provider),
		attribute.String("model", model),
	}

	j.invocations.Add(ctx, 1, metric.WithAttributes(attrs...))
	if failed {
		j.failures.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	j.latency.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
}
