/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"

	"chainguard.dev/arbiter/calibrate"
	"chainguard.dev/arbiter/report"
	"github.com/spf13/cobra"
)

func calibrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Correlate judge scores against human scores",
		Long: `Load a calibration dataset of paired human/judge scores and report
Pearson correlation, bias direction, and rubric recommendations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, _ := cmd.Flags().GetString("dataset")
			judge, _ := cmd.Flags().GetString("judge")
			threshold, _ := cmd.Flags().GetFloat64("threshold")
			byCategory, _ := cmd.Flags().GetBool("by-category")

			ds, err := calibrate.LoadDataset(dataset)
			if err != nil {
				return fmt.Errorf("loading dataset: %w", err)
			}

			out := cmd.OutOrStdout()
			if byCategory {
				report.ByCategory(out, calibrate.CalibrateByCategory(ds.ScorePairs, threshold))
				return nil
			}
			report.Calibration(out, judge, calibrate.Calibrate(ds.ScorePairs, threshold))
			return nil
		},
	}

	cmd.Flags().StringP("dataset", "d", "", "calibration dataset JSON file")
	cmd.Flags().StringP("judge", "j", "judge", "judge name for the report heading")
	cmd.Flags().Float64P("threshold", "t", calibrate.DefaultThreshold, "Pearson r required for calibration")
	cmd.Flags().Bool("by-category", false, "calibrate per task category")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func driftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drift",
		Short: "Compare current calibration against a stored baseline",
		Long: `Recompute the judge's correlation from a fresh dataset and compare it
against the baseline recorded for that judge. Drift is symmetric:
improvement and degradation both flag.`,
		RunE: runDrift,
	}

	cmd.Flags().StringP("dataset", "d", "", "calibration dataset JSON file")
	cmd.Flags().StringP("judge", "j", "", "judge name the baseline is stored under")
	cmd.Flags().String("baselines", defaultBaselineDir(), "baseline store directory")
	cmd.Flags().Float64P("threshold", "t", calibrate.DefaultDriftThreshold, "absolute drift that counts as drifted")
	cmd.Flags().Bool("update", false, "record the current run as the new baseline")
	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("judge")

	return cmd
}
