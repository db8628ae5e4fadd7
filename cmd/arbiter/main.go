/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// arbiter is the command-line surface of the evaluation engine: offline
// judge calibration and drift tracking, pairwise A/B comparison, and the
// challenge/vote quality gate.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd := &cobra.Command{
		Use:   "arbiter",
		Short: "LLM-as-judge calibration, comparison, and consensus",
		Long: `arbiter measures whether LLM judges can be trusted and uses them to
evaluate answers.

Offline: 'arbiter calibrate' correlates judge scores against human scores
and 'arbiter drift' tracks that correlation over time.

Online: 'arbiter compare' runs bias-corrected pairwise A/B judgments and
'arbiter review' gates a synthesized answer through an adversarial
challenge and an ensemble vote.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		calibrateCmd(),
		driftCmd(),
		compareCmd(),
		reviewCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
