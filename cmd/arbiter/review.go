/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"chainguard.dev/arbiter/config"
	"chainguard.dev/arbiter/consensus"
	"chainguard.dev/arbiter/invoke"
	"github.com/spf13/cobra"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Gate a synthesized answer through challenge and vote",
		Long: `Attack the synthesis against the original question and constraints;
if the challenge finds significant gaps, put it to an ensemble vote.
Ties favor the synthesis, and missing judges fail open to acceptance.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			question, _ := cmd.Flags().GetString("question")
			synthesisPath, _ := cmd.Flags().GetString("synthesis")
			constraints, _ := cmd.Flags().GetStringSlice("constraint")
			subQuestions, _ := cmd.Flags().GetStringSlice("sub-question")
			ensemblePath, _ := cmd.Flags().GetString("ensemble")

			synthesis, err := os.ReadFile(synthesisPath)
			if err != nil {
				return fmt.Errorf("reading synthesis: %w", err)
			}

			creds, err := config.LoadCredentials(ctx)
			if err != nil {
				return err
			}
			ensemble := config.Ensemble{}
			if ensemblePath != "" {
				ensemble, err = config.LoadEnsemble(ensemblePath, creds)
				if err != nil {
					return err
				}
			}

			client := invoke.NewClient()
			var challenger *consensus.Generator
			if ensemble.Judge != nil {
				challenger = consensus.NewGenerator(client, *ensemble.Judge)
			}
			var voter *consensus.Voter
			if len(ensemble.Voters) > 0 {
				voter = consensus.NewVoter(client, ensemble.Voters)
			}

			review := consensus.NewGate(challenger, voter).Review(ctx, consensus.Query{
				Question:     question,
				Constraints:  constraints,
				SubQuestions: subQuestions,
			}, string(synthesis))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(review); err != nil {
				return fmt.Errorf("encoding review: %w", err)
			}
			if !review.Accepted() {
				return fmt.Errorf("synthesis rejected with %d critical gaps", len(review.Vote.CriticalGaps))
			}
			return nil
		},
	}

	cmd.Flags().StringP("question", "q", "", "the original research question")
	cmd.Flags().StringP("synthesis", "s", "", "file holding the synthesized answer")
	cmd.Flags().StringSlice("constraint", nil, "stated constraint (repeatable)")
	cmd.Flags().StringSlice("sub-question", nil, "sub-question the synthesis must address (repeatable)")
	cmd.Flags().StringP("ensemble", "e", "", "ensemble YAML naming the challenge judge and voters")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("synthesis")

	return cmd
}
