/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package report renders calibration, drift, and comparison results as
// markdown tables for terminal and report output.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"chainguard.dev/arbiter/calibrate"
	"chainguard.dev/arbiter/compare"
)

// Calibration renders one calibration result with its recommendations.
// Degenerate results (too few pairs, zero variance) still render; the
// recommendations explain the degeneracy.
func Calibration(w io.Writer, judge string, res calibrate.Result) {
	fmt.Fprintf(w, "## Calibration: %s\n\n", judge)

	table := newTable([]string{"Metric", "Value"}, w)
	_ = table.Append([]string{"Pearson r", fmt.Sprintf("%.3f", res.PearsonR)})
	_ = table.Append([]string{"Calibrated", verdict(res.Calibrated)})
	_ = table.Append([]string{"Samples", fmt.Sprintf("%d", res.SampleCount)})
	_ = table.Append([]string{"Human mean / stddev", fmt.Sprintf("%.2f / %.2f", res.HumanMean, res.HumanStdDev)})
	_ = table.Append([]string{"Judge mean / stddev", fmt.Sprintf("%.2f / %.2f", res.JudgeMean, res.JudgeStdDev)})
	_ = table.Append([]string{"Bias", fmt.Sprintf("%s (%.2f)", res.BiasDirection, res.BiasMagnitude)})
	_ = table.Render()

	if len(res.Recommendations) > 0 {
		fmt.Fprintf(w, "\nRecommendations:\n")
		for _, r := range res.Recommendations {
			fmt.Fprintf(w, "- %s\n", r)
		}
	}
}

// ByCategory renders per-partition calibration results, the overall
// figure first and the remaining partitions alphabetically.
func ByCategory(w io.Writer, results map[string]calibrate.Result) {
	partitions := make([]string, 0, len(results))
	for p := range results {
		if p != calibrate.OverallPartition {
			partitions = append(partitions, p)
		}
	}
	sort.Strings(partitions)
	if _, ok := results[calibrate.OverallPartition]; ok {
		partitions = append([]string{calibrate.OverallPartition}, partitions...)
	}

	table := newTable([]string{"Partition", "Pearson r", "Calibrated", "Samples", "Bias"}, w)
	for _, p := range partitions {
		res := results[p]
		_ = table.Append([]string{
			p,
			fmt.Sprintf("%.3f", res.PearsonR),
			verdict(res.Calibrated),
			fmt.Sprintf("%d", res.SampleCount),
			string(res.BiasDirection),
		})
	}
	_ = table.Render()
}

// Drift renders a drift report for one judge.
func Drift(w io.Writer, judge string, rep calibrate.DriftReport) {
	fmt.Fprintf(w, "## Drift: %s\n\n", judge)

	table := newTable([]string{"Metric", "Value"}, w)
	_ = table.Append([]string{"Current r", fmt.Sprintf("%.3f", rep.CurrentR)})
	_ = table.Append([]string{"Baseline r", fmt.Sprintf("%.3f", rep.BaselineR)})
	_ = table.Append([]string{"Drift", fmt.Sprintf("%+.3f", rep.DriftAmount)})
	_ = table.Append([]string{"Drifted", verdict(rep.Drifted)})
	_ = table.Render()

	if rep.Drifted && rep.DriftAmount < 0 {
		fmt.Fprintf(w, "\nCorrelation with human scores has degraded; recalibrate the judge.\n")
	}
}

// Comparisons renders a winner tally followed by per-sample rows.
func Comparisons(w io.Writer, results []compare.Result) {
	tally := map[compare.Winner]int{}
	for _, r := range results {
		tally[r.Winner]++
	}
	fmt.Fprintf(w, "## Pairwise comparison: %d system / %d baseline / %d tie\n\n",
		tally[compare.WinnerSystem], tally[compare.WinnerBaseline], tally[compare.WinnerTie])

	table := newTable([]string{"#", "Winner", "System", "Baseline", "Consistent", "Reasoning"}, w)
	for i, r := range results {
		_ = table.Append([]string{
			fmt.Sprintf("%d", i+1),
			string(r.Winner),
			fmt.Sprintf("%.1f", r.SystemScore),
			fmt.Sprintf("%.1f", r.BaselineScore),
			verdict(r.PositionConsistent),
			truncate(r.Reasoning, 60),
		})
	}
	_ = table.Render()
}

func verdict(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
