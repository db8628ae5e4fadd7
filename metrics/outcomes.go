/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Global outcome metrics with consistent dimensions
	comparisonCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arbiter_comparisons_total",
			Help: "Total number of pairwise comparisons by declared winner",
		},
		[]string{"winner", "category"},
	)

	voteCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arbiter_sufficiency_votes_total",
			Help: "Total number of individual sufficiency votes by outcome",
		},
		[]string{"outcome", "model"},
	)

	challengeCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arbiter_challenges_total",
			Help: "Total number of synthesis challenges by gap verdict",
		},
		[]string{"has_gaps"},
	)

	calibrationGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "arbiter_calibration_pearson_r",
			Help: "Most recent Pearson correlation for a judge calibration run",
		},
		[]string{"partition"},
	)
)

// RecordComparison counts one pairwise comparison outcome.
func RecordComparison(winner, category string) {
	comparisonCounter.WithLabelValues(winner, category).Inc()
}

// RecordVote counts one sufficiency vote outcome for a model.
func RecordVote(outcome, model string) {
	voteCounter.WithLabelValues(outcome, model).Inc()
}

// RecordChallenge counts one challenge verdict.
func RecordChallenge(hasGaps bool) {
	if hasGaps {
		challengeCounter.WithLabelValues("true").Inc()
	} else {
		challengeCounter.WithLabelValues("false").Inc()
	}
}

// RecordCalibration publishes the most recent correlation for a partition.
func RecordCalibration(partition string, pearsonR float64) {
	calibrationGauge.WithLabelValues(partition).Set(pearsonR)
}
