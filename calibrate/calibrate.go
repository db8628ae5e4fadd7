/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package calibrate

import (
	"math"

	"chainguard.dev/arbiter/metrics"
)

const (
	// DefaultThreshold is the Pearson r above which a judge counts as
	// calibrated.
	DefaultThreshold = 0.85
	// MinPairsForVerdict is the fewest pairs that yield a real calibration
	// verdict; below it Calibrate returns a flagged sentinel result.
	MinPairsForVerdict = 5
	// biasAlignedBelow is the mean-difference magnitude under which judge
	// and human scoring count as aligned.
	biasAlignedBelow = 0.3
)

// Calibrate compares judge scores against human scores and produces a
// verdict with bias classification and recommendations. A threshold <= 0
// uses DefaultThreshold. Fewer than MinPairsForVerdict pairs is a soft
// condition: the sentinel result is flagged uncalibrated with a
// recommendation to collect more data, never an error.
func Calibrate(pairs []ScorePair, threshold float64) Result {
	result := calibrate(pairs, threshold)
	metrics.RecordCalibration(OverallPartition, result.PearsonR)
	return result
}

// calibrate is Calibrate without the metric emission, so per-category runs
// can record under their own partition label.
func calibrate(pairs []ScorePair, threshold float64) Result {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	if len(pairs) < MinPairsForVerdict {
		return Result{
			PearsonR:      0,
			Calibrated:    false,
			SampleCount:   len(pairs),
			BiasDirection: BiasAligned,
			Recommendations: []string{
				"Insufficient data for a calibration verdict: collect at least 5 human-scored samples before drawing conclusions.",
			},
		}
	}

	r, err := PearsonCorrelation(pairs)
	if err != nil {
		// Unreachable: MinPairsForVerdict > MinPairsForCorrelation.
		r = 0
	}

	humanMean, judgeMean := means(pairs)
	humanStd, judgeStd := stdDevs(pairs, humanMean, judgeMean)

	biasMagnitude := math.Abs(judgeMean - humanMean)
	biasDirection := BiasAligned
	if biasMagnitude >= biasAlignedBelow {
		if judgeMean > humanMean {
			biasDirection = BiasLenient
		} else {
			biasDirection = BiasStrict
		}
	}

	result := Result{
		PearsonR:      r,
		Calibrated:    r >= threshold,
		SampleCount:   len(pairs),
		HumanMean:     humanMean,
		JudgeMean:     judgeMean,
		HumanStdDev:   humanStd,
		JudgeStdDev:   judgeStd,
		BiasDirection: biasDirection,
		BiasMagnitude: biasMagnitude,
	}
	result.Recommendations = recommend(result, threshold)
	return result
}

// recommend applies the cumulative rule set: every firing rule contributes,
// the rules are not mutually exclusive, and a calibrated run with no other
// findings gets the well-calibrated confirmation.
func recommend(res Result, threshold float64) []string {
	var recs []string

	switch {
	case res.PearsonR < 0.5:
		recs = append(recs, "Correlation is weak: the judge rubric needs significant revision before its scores can stand in for human review.")
	case res.PearsonR < 0.7:
		recs = append(recs, "Correlation is moderate: refine the rubric with concrete scoring anchors to tighten agreement with human scores.")
	case res.PearsonR < threshold:
		recs = append(recs, "Correlation is close to threshold: minor rubric adjustments should close the remaining gap.")
	}

	switch res.BiasDirection {
	case BiasLenient:
		recs = append(recs, "Judge is lenient relative to humans: tighten the rubric's upper score bands with explicit disqualifying criteria.")
	case BiasStrict:
		recs = append(recs, "Judge is strict relative to humans: clarify what a passing answer looks like so the rubric stops over-penalizing.")
	}

	if res.JudgeStdDev < res.HumanStdDev/2 {
		recs = append(recs, "Judge scores lack variance relative to human scores: this suggests anchoring near the middle of the scale; prompt the judge to commit to the full 1-5 range.")
	}

	if res.Calibrated && len(recs) == 0 {
		recs = append(recs, "Judge is well-calibrated against human scores.")
	}

	return recs
}
