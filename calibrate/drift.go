/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package calibrate

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"chainguard.dev/arbiter/store"
)

// DefaultDriftThreshold is the absolute correlation change that counts as
// drift.
const DefaultDriftThreshold = 0.05

// DetectDrift recomputes the correlation over the current pairs and
// compares it against a stored baseline. A threshold <= 0 uses
// DefaultDriftThreshold. Drift is symmetric; DriftAmount keeps the sign so
// callers can distinguish improvement from degradation.
func DetectDrift(currentPairs []ScorePair, baselineR, threshold float64) (DriftReport, error) {
	if threshold <= 0 {
		threshold = DefaultDriftThreshold
	}

	currentR, err := PearsonCorrelation(currentPairs)
	if err != nil {
		return DriftReport{}, fmt.Errorf("computing current correlation: %w", err)
	}

	drift := currentR - baselineR
	return DriftReport{
		CurrentR:    currentR,
		BaselineR:   baselineR,
		DriftAmount: drift,
		Drifted:     math.Abs(drift) > threshold,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// baseline is the stored form of a calibration baseline.
type baseline struct {
	PearsonR   float64   `json:"pearsonR"`
	SampleSize int       `json:"sampleSize"`
	RecordedAt time.Time `json:"recordedAt"`
}

// BaselineStore persists per-judge baseline correlations through an
// injected store, keeping the calibration pipeline itself stateless.
type BaselineStore struct {
	store store.Interface
}

// NewBaselineStore wraps a store for baseline persistence.
func NewBaselineStore(s store.Interface) *BaselineStore {
	return &BaselineStore{store: s}
}

func baselineKey(judge string) string {
	return "baseline/" + judge
}

// Save records the correlation from a calibration result as the baseline
// for the named judge.
func (b *BaselineStore) Save(ctx context.Context, judge string, res Result) error {
	data, err := json.Marshal(baseline{
		PearsonR:   res.PearsonR,
		SampleSize: res.SampleCount,
		RecordedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encoding baseline: %w", err)
	}
	return b.store.Put(ctx, baselineKey(judge), data)
}

// Load returns the stored baseline correlation for the named judge, with
// false when none has been recorded.
func (b *BaselineStore) Load(ctx context.Context, judge string) (float64, bool, error) {
	data, ok, err := b.store.Get(ctx, baselineKey(judge))
	if err != nil || !ok {
		return 0, false, err
	}
	var bl baseline
	if err := json.Unmarshal(data, &bl); err != nil {
		return 0, false, fmt.Errorf("decoding baseline for %q: %w", judge, err)
	}
	return bl.PearsonR, true, nil
}

// Judges lists the judges with stored baselines.
func (b *BaselineStore) Judges(ctx context.Context) ([]string, error) {
	keys, err := b.store.List(ctx, "baseline/")
	if err != nil {
		return nil, err
	}
	judges := make([]string, 0, len(keys))
	for _, k := range keys {
		judges = append(judges, k[len("baseline/"):])
	}
	return judges, nil
}
