/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"chainguard.dev/arbiter/calibrate"
	"chainguard.dev/arbiter/report"
	"chainguard.dev/arbiter/store"
	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"
)

func defaultBaselineDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".arbiter/baselines"
	}
	return filepath.Join(home, ".arbiter", "baselines")
}

func runDrift(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dataset, _ := cmd.Flags().GetString("dataset")
	judge, _ := cmd.Flags().GetString("judge")
	baselineDir, _ := cmd.Flags().GetString("baselines")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	update, _ := cmd.Flags().GetBool("update")

	ds, err := calibrate.LoadDataset(dataset)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	dir, err := store.NewDir(baselineDir)
	if err != nil {
		return fmt.Errorf("opening baseline store: %w", err)
	}
	baselines := calibrate.NewBaselineStore(dir)

	baselineR, found, err := baselines.Load(ctx, judge)
	if err != nil {
		return fmt.Errorf("loading baseline for %s: %w", judge, err)
	}

	current := calibrate.Calibrate(ds.ScorePairs, calibrate.DefaultThreshold)

	if !found {
		clog.InfoContextf(ctx, "No baseline recorded for %s, storing the current run", judge)
		if err := baselines.Save(ctx, judge, current); err != nil {
			return fmt.Errorf("saving baseline: %w", err)
		}
		report.Calibration(cmd.OutOrStdout(), judge, current)
		return nil
	}

	rep, err := calibrate.DetectDrift(ds.ScorePairs, baselineR, threshold)
	if err != nil {
		return fmt.Errorf("detecting drift: %w", err)
	}
	report.Drift(cmd.OutOrStdout(), judge, rep)

	if update {
		if err := baselines.Save(ctx, judge, current); err != nil {
			return fmt.Errorf("updating baseline: %w", err)
		}
		clog.InfoContextf(ctx, "Baseline for %s updated to r=%.3f", judge, current.PearsonR)
	}
	return nil
}
