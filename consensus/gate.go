/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package consensus

import (
	"context"

	"github.com/chainguard-dev/clog"
)

// State identifies where a synthesis sits in the quality gate.
type State string

const (
	StateSynthesized State = "synthesized"
	StateChallenged  State = "challenged"
	StateVoting      State = "voting"
	StateAccepted    State = "accepted"
	StateRejected    State = "rejected"
)

// Review is the gate's final verdict on one synthesis. The Vote is a
// documented default when the flow short-circuited before the ensemble.
type Review struct {
	State     State           `json:"state"`
	Challenge ChallengeResult `json:"challenge"`
	Vote      SufficiencyVote `json:"vote"`
}

// Accepted reports whether the synthesis survived the gate.
func (r Review) Accepted() bool { return r.State == StateAccepted }

// Gate chains the challenge and the sufficiency vote. Either collaborator
// may be absent: with no challenger the flow is skipped entirely, and
// with no voter a challenged synthesis is accepted on the challenge's
// critique alone.
type Gate struct {
	challenger *Generator
	voter      *Voter
}

// NewGate assembles the quality gate. Nil collaborators disable their
// stage.
func NewGate(challenger *Generator, voter *Voter) *Gate {
	return &Gate{challenger: challenger, voter: voter}
}

// Review runs the synthesis through challenge and, if the challenge found
// gaps, the ensemble vote. It never fails: every degenerate configuration
// resolves to acceptance with the reason recorded.
func (g *Gate) Review(ctx context.Context, query Query, synthesis string) Review {
	log := clog.FromContext(ctx)

	if g.challenger == nil {
		log.Info("No challenge judge configured, accepting synthesis by default")
		return Review{
			State: StateAccepted,
			Vote: SufficiencyVote{
				Sufficient: true,
				Details: []VoteDetail{{
					Vote:      VoteSynthesisWins,
					Reasoning: "no significant gaps identified",
				}},
			},
		}
	}

	challenge := g.challenger.Challenge(ctx, query, synthesis)
	if !challenge.HasSignificantGaps {
		return Review{
			State:     StateAccepted,
			Challenge: challenge,
			Vote:      SufficiencyVote{Sufficient: true},
		}
	}

	if g.voter == nil || len(g.voter.configs) == 0 {
		log.Info("Challenge found gaps but no voting ensemble configured, accepting synthesis")
		return Review{
			State:     StateAccepted,
			Challenge: challenge,
			Vote:      SufficiencyVote{Sufficient: true},
		}
	}

	vote := g.voter.Vote(ctx, query, synthesis, challenge.Critiques)
	state := StateAccepted
	if !vote.Sufficient {
		state = StateRejected
	}
	return Review{State: state, Challenge: challenge, Vote: vote}
}
