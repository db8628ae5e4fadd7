/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package calibrate

import (
	"chainguard.dev/arbiter/metrics"
	"chainguard.dev/arbiter/rubric"
)

// OverallPartition is the key of the whole-dataset entry in a per-category
// calibration.
const OverallPartition = "overall"

// CalibrateByCategory partitions pairs by task category and calibrates each
// partition with at least MinPairsForVerdict pairs, plus an overall entry
// over the full set regardless of partition sizes. Pairs without a category
// are excluded from partitions but still count toward the overall figure.
func CalibrateByCategory(pairs []ScorePair, threshold float64) map[string]Result {
	partitions := make(map[rubric.TaskCategory][]ScorePair)
	for _, p := range pairs {
		if p.Category == "" {
			continue
		}
		partitions[p.Category] = append(partitions[p.Category], p)
	}

	results := make(map[string]Result, len(partitions)+1)
	for category, subset := range partitions {
		if len(subset) < MinPairsForVerdict {
			continue
		}
		res := calibrate(subset, threshold)
		results[string(category)] = res
		metrics.RecordCalibration(string(category), res.PearsonR)
	}

	overall := calibrate(pairs, threshold)
	results[OverallPartition] = overall
	metrics.RecordCalibration(OverallPartition, overall.PearsonR)
	return results
}
