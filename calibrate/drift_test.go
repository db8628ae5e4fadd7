/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package calibrate

import (
	"context"
	"errors"
	"math"
	"testing"

	"chainguard.dev/arbiter/store"
)

func TestDetectDrift(t *testing.T) {
	// r = 1 over these pairs.
	pairs := pairsOf(
		[2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3},
		[2]float64{4, 4}, [2]float64{5, 5},
	)

	tests := []struct {
		name      string
		baselineR float64
		threshold float64
		drifted   bool
		amount    float64
	}{{
		name:      "no drift against matching baseline",
		baselineR: 1.0,
		drifted:   false,
		amount:    0,
	}, {
		name:      "improvement counts as drift",
		baselineR: 0.80,
		drifted:   true,
		amount:    0.20,
	}, {
		name:      "within threshold",
		baselineR: 0.96,
		drifted:   false,
		amount:    0.04,
	}, {
		name:      "custom threshold",
		baselineR: 0.96,
		threshold: 0.03,
		drifted:   true,
		amount:    0.04,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := DetectDrift(pairs, tt.baselineR, tt.threshold)
			if err != nil {
				t.Fatalf("DetectDrift() error = %v", err)
			}
			if report.Drifted != tt.drifted {
				t.Errorf("Drifted = %v, want %v", report.Drifted, tt.drifted)
			}
			if math.Abs(report.DriftAmount-tt.amount) > 1e-9 {
				t.Errorf("DriftAmount = %v, want %v", report.DriftAmount, tt.amount)
			}
			if report.CurrentR != 1 {
				t.Errorf("CurrentR = %v, want 1", report.CurrentR)
			}
			if report.Timestamp.IsZero() {
				t.Error("Timestamp should be set")
			}
		})
	}
}

func TestDetectDriftSignAntisymmetry(t *testing.T) {
	// Swapping which run is "current" negates the drift amount but
	// preserves the drift verdict.
	current := pairsOf(
		[2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3},
		[2]float64{4, 4}, [2]float64{5, 5},
	) // r = 1
	degraded := pairsOf(
		[2]float64{1, 2}, [2]float64{2, 1}, [2]float64{3, 4},
		[2]float64{4, 5}, [2]float64{5, 3},
	) // r = 0.6

	degradedR, err := PearsonCorrelation(degraded)
	if err != nil {
		t.Fatalf("PearsonCorrelation() error = %v", err)
	}

	forward, err := DetectDrift(current, degradedR, 0)
	if err != nil {
		t.Fatalf("DetectDrift() error = %v", err)
	}
	backward, err := DetectDrift(degraded, 1.0, 0)
	if err != nil {
		t.Fatalf("DetectDrift() error = %v", err)
	}

	if math.Abs(forward.DriftAmount+backward.DriftAmount) > 1e-9 {
		t.Errorf("drift amounts %v and %v should negate", forward.DriftAmount, backward.DriftAmount)
	}
	if forward.Drifted != backward.Drifted {
		t.Error("drift verdict should be direction-independent")
	}
}

func TestDetectDriftInsufficientData(t *testing.T) {
	if _, err := DetectDrift(pairsOf([2]float64{3, 3}), 0.9, 0); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("DetectDrift() error = %v, want ErrInsufficientData", err)
	}
}

func TestBaselineStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	bs := NewBaselineStore(store.NewMemory())

	if _, ok, err := bs.Load(ctx, "gemini-2.5-flash"); err != nil || ok {
		t.Fatalf("Load() before save = ok=%v err=%v", ok, err)
	}

	res := Calibrate(pairsOf(
		[2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3},
		[2]float64{4, 4}, [2]float64{5, 5},
	), 0)
	if err := bs.Save(ctx, "gemini-2.5-flash", res); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	r, ok, err := bs.Load(ctx, "gemini-2.5-flash")
	if err != nil || !ok {
		t.Fatalf("Load() = ok=%v err=%v", ok, err)
	}
	if r != 1 {
		t.Errorf("Load() r = %v, want 1", r)
	}

	judges, err := bs.Judges(ctx)
	if err != nil {
		t.Fatalf("Judges() error = %v", err)
	}
	if len(judges) != 1 || judges[0] != "gemini-2.5-flash" {
		t.Errorf("Judges() = %v", judges)
	}
}
