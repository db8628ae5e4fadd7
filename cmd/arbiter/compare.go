/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"chainguard.dev/arbiter/compare"
	"chainguard.dev/arbiter/config"
	"chainguard.dev/arbiter/invoke"
	"chainguard.dev/arbiter/report"
	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run bias-corrected pairwise A/B comparisons",
		Long: `Judge each sample's system answer against its baseline answer with
order-swapped trials, position-consistency checking, and verbosity
correction for synthesis tasks.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			samplesPath, _ := cmd.Flags().GetString("samples")
			ensemblePath, _ := cmd.Flags().GetString("ensemble")

			samples, err := loadSamples(samplesPath)
			if err != nil {
				return err
			}

			judgeCfg, err := loadJudge(ctx, ensemblePath)
			if err != nil {
				return err
			}

			comparator := compare.New(invoke.NewClient(), judgeCfg)
			results := make([]compare.Result, 0, len(samples))
			for i, sample := range samples {
				clog.InfoContextf(ctx, "Comparing sample %d/%d (%s)", i+1, len(samples), sample.Category)
				results = append(results, comparator.Compare(ctx, sample))
			}

			report.Comparisons(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().StringP("samples", "s", "", "JSON file holding an array of comparison samples")
	cmd.Flags().StringP("ensemble", "e", "", "ensemble YAML naming the judge")
	_ = cmd.MarkFlagRequired("samples")
	_ = cmd.MarkFlagRequired("ensemble")

	return cmd
}

func loadSamples(path string) ([]compare.Sample, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading samples: %w", err)
	}
	var samples []compare.Sample
	if err := json.Unmarshal(raw, &samples); err != nil {
		return nil, fmt.Errorf("parsing samples: %w", err)
	}
	if len(samples) == 0 {
		return nil, errors.New("samples file holds no samples")
	}
	return samples, nil
}

// loadJudge resolves the single-judge configuration used for comparisons
// and challenges.
func loadJudge(ctx context.Context, ensemblePath string) (invoke.Config, error) {
	creds, err := config.LoadCredentials(ctx)
	if err != nil {
		return invoke.Config{}, err
	}
	ensemble, err := config.LoadEnsemble(ensemblePath, creds)
	if err != nil {
		return invoke.Config{}, err
	}
	if ensemble.Judge == nil {
		return invoke.Config{}, errors.New("ensemble file names no judge")
	}
	return *ensemble.Judge, nil
}
