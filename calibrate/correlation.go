/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package calibrate

import (
	"errors"
	"fmt"
	"math"
)

// ErrInsufficientData indicates too few score pairs for a correlation.
var ErrInsufficientData = errors.New("insufficient data")

// MinPairsForCorrelation is the fewest pairs Pearson correlation accepts.
const MinPairsForCorrelation = 2

// PearsonCorrelation computes the linear correlation coefficient between
// the human and judge score sequences of the given pairs. Fewer than two
// pairs is a hard failure. Zero variance in either sequence is a defined
// degenerate case and returns 0 rather than dividing by zero.
func PearsonCorrelation(pairs []ScorePair) (float64, error) {
	n := len(pairs)
	if n < MinPairsForCorrelation {
		return 0, fmt.Errorf("%w: need at least %d pairs, got %d", ErrInsufficientData, MinPairsForCorrelation, n)
	}

	humanMean, judgeMean := means(pairs)

	var cov, humanVar, judgeVar float64
	for _, p := range pairs {
		dh := p.HumanScore - humanMean
		dj := p.LLMScore - judgeMean
		cov += dh * dj
		humanVar += dh * dh
		judgeVar += dj * dj
	}

	if humanVar == 0 || judgeVar == 0 {
		return 0, nil
	}

	return cov / math.Sqrt(humanVar*judgeVar), nil
}

func means(pairs []ScorePair) (human, judge float64) {
	for _, p := range pairs {
		human += p.HumanScore
		judge += p.LLMScore
	}
	n := float64(len(pairs))
	return human / n, judge / n
}

// stdDevs returns the population standard deviations of both sequences.
func stdDevs(pairs []ScorePair, humanMean, judgeMean float64) (human, judge float64) {
	var humanVar, judgeVar float64
	for _, p := range pairs {
		dh := p.HumanScore - humanMean
		dj := p.LLMScore - judgeMean
		humanVar += dh * dh
		judgeVar += dj * dj
	}
	n := float64(len(pairs))
	return math.Sqrt(humanVar / n), math.Sqrt(judgeVar / n)
}
