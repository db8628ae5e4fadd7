/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package calibrate

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func pairsOf(scores ...[2]float64) []ScorePair {
	out := make([]ScorePair, 0, len(scores))
	for i, s := range scores {
		out = append(out, ScorePair{
			SampleID:   fmt.Sprintf("s%d", i),
			HumanScore: s[0],
			LLMScore:   s[1],
		})
	}
	return out
}

func TestPearsonCorrelation(t *testing.T) {
	tests := []struct {
		name  string
		pairs []ScorePair
		want  float64
	}{{
		name:  "perfectly matched sequences",
		pairs: pairsOf([2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3}, [2]float64{4, 4}, [2]float64{5, 5}),
		want:  1,
	}, {
		name:  "perfectly inverse sequences",
		pairs: pairsOf([2]float64{1, 5}, [2]float64{2, 4}, [2]float64{3, 3}, [2]float64{4, 2}, [2]float64{5, 1}),
		want:  -1,
	}, {
		name:  "constant judge sequence has zero variance",
		pairs: pairsOf([2]float64{1, 3}, [2]float64{2, 3}, [2]float64{5, 3}),
		want:  0,
	}, {
		name:  "constant human sequence has zero variance",
		pairs: pairsOf([2]float64{3, 1}, [2]float64{3, 4}, [2]float64{3, 5}),
		want:  0,
	}, {
		name:  "both sequences constant",
		pairs: pairsOf([2]float64{2, 4}, [2]float64{2, 4}),
		want:  0,
	}, {
		name:  "linear transform preserves perfect correlation",
		pairs: pairsOf([2]float64{1, 2}, [2]float64{2, 2.5}, [2]float64{3, 3}, [2]float64{4, 3.5}),
		want:  1,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PearsonCorrelation(tt.pairs)
			if err != nil {
				t.Fatalf("PearsonCorrelation() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PearsonCorrelation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPearsonCorrelationInsufficientData(t *testing.T) {
	for _, pairs := range [][]ScorePair{nil, pairsOf([2]float64{3, 3})} {
		if _, err := PearsonCorrelation(pairs); !errors.Is(err, ErrInsufficientData) {
			t.Errorf("PearsonCorrelation(%d pairs) error = %v, want ErrInsufficientData", len(pairs), err)
		}
	}
}

func TestPearsonCorrelationRange(t *testing.T) {
	// Noisy but positively related scores stay inside [-1, 1].
	pairs := pairsOf(
		[2]float64{1, 2}, [2]float64{2, 1}, [2]float64{3, 4},
		[2]float64{4, 3}, [2]float64{5, 5}, [2]float64{2, 3},
	)
	r, err := PearsonCorrelation(pairs)
	if err != nil {
		t.Fatalf("PearsonCorrelation() error = %v", err)
	}
	if r < -1 || r > 1 {
		t.Errorf("PearsonCorrelation() = %v outside [-1, 1]", r)
	}
	if r <= 0 {
		t.Errorf("PearsonCorrelation() = %v, expected positive for positively related scores", r)
	}
}
