/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package consensus

import (
	"context"
	"fmt"

	"chainguard.dev/arbiter/extract"
	"chainguard.dev/arbiter/invoke"
	"chainguard.dev/arbiter/metrics"
	"github.com/chainguard-dev/clog"
)

// MaxExcerptChars bounds the synthesis excerpt shown to voting judges.
// The critique points carry the specifics; the excerpt is context.
const MaxExcerptChars = 2000

// Voter runs the sufficiency vote across an ensemble of judges. The
// ensemble should be odd-sized and favor diverse providers/models over
// repeated identical calls; config validation enforces the former.
type Voter struct {
	invoker invoke.Invoker
	configs []invoke.Config
}

// NewVoter creates a Voter over the given ensemble.
func NewVoter(inv invoke.Invoker, cfgs []invoke.Config) *Voter {
	return &Voter{invoker: inv, configs: cfgs}
}

// Vote asks every judge in the ensemble whether the synthesis survives
// the critique and aggregates by majority, ties favoring the synthesis.
// A failed or unparseable judge defaults to synthesis_wins with the
// reason logged; the vote itself never fails.
func (v *Voter) Vote(ctx context.Context, query Query, synthesis string, critiques []Critique) SufficiencyVote {
	log := clog.FromContext(ctx)

	prompt, err := bindVote(query, excerpt(synthesis), critiques)
	if err != nil {
		log.With("error", err).Warn("Binding vote prompt failed, accepting synthesis")
		return SufficiencyVote{Sufficient: true}
	}

	results, err := invoke.Parallel(ctx, v.invoker, prompt, v.configs, 1)
	if err != nil {
		// Degraded results still carry per-call errors; each failed call
		// defaults below.
		log.With("error", err).Warn("Sufficiency vote batch degraded")
	}

	vote := SufficiencyVote{}
	seen := map[string]bool{}
	for i, res := range results {
		detail := v.tally(ctx, res, &vote, seen)
		detail.Model = v.configs[i].Model
		vote.Details = append(vote.Details, detail)
		metrics.RecordVote(detail.Vote, detail.Model)
	}

	vote.Sufficient = vote.VotesFor >= vote.VotesAgainst
	return vote
}

// tally counts one judge's result, defaulting failures and unparseable
// or unknown votes to synthesis_wins.
func (v *Voter) tally(ctx context.Context, res invoke.Result, vote *SufficiencyVote, seen map[string]bool) VoteDetail {
	log := clog.FromContext(ctx).With("model", res.Model)

	if res.Err != nil {
		log.With("error", res.Err).Warn("Voter call failed, defaulting to synthesis_wins")
		vote.VotesFor++
		return VoteDetail{
			Vote:      VoteSynthesisWins,
			Reasoning: fmt.Sprintf("defaulted: judge call failed: %v", res.Err),
		}
	}

	parsed, err := extract.Decode[voteResponse](res.Content)
	if err != nil {
		log.With("error", err).Warn("Voter response unparseable, defaulting to synthesis_wins")
		vote.VotesFor++
		return VoteDetail{
			Vote:      VoteSynthesisWins,
			Reasoning: fmt.Sprintf("defaulted: unparseable vote: %v", err),
		}
	}

	switch parsed.Vote {
	case VoteSynthesisWins:
		vote.VotesFor++
	case VoteCritiqueWins:
		vote.VotesAgainst++
		for _, gap := range parsed.CriticalGaps {
			if gap == "" || seen[gap] {
				continue
			}
			seen[gap] = true
			vote.CriticalGaps = append(vote.CriticalGaps, gap)
		}
	default:
		log.With("vote", parsed.Vote).Warn("Unknown vote token, defaulting to synthesis_wins")
		vote.VotesFor++
		return VoteDetail{
			Vote:      VoteSynthesisWins,
			Reasoning: fmt.Sprintf("defaulted: unknown vote token %q", parsed.Vote),
		}
	}

	return VoteDetail{Vote: parsed.Vote, Reasoning: parsed.Reasoning}
}

func excerpt(s string) string {
	if len(s) <= MaxExcerptChars {
		return s
	}
	return s[:MaxExcerptChars]
}
