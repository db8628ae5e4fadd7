/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package consensus

import (
	"context"
	"testing"

	"chainguard.dev/arbiter/invoke"
)

func TestGateNoChallengerAcceptsByDefault(t *testing.T) {
	g := NewGate(nil, nil)

	got := g.Review(context.Background(), Query{Question: "q"}, "synthesis")

	if !got.Accepted() {
		t.Fatalf("State = %s, want accepted", got.State)
	}
	if !got.Vote.Sufficient {
		t.Error("default vote should be sufficient")
	}
	if len(got.Vote.Details) != 1 || got.Vote.Details[0].Reasoning != "no significant gaps identified" {
		t.Errorf("Vote.Details = %+v, want the documented default vote", got.Vote.Details)
	}
}

func TestGateCleanChallengeAccepts(t *testing.T) {
	inv := &fakeInvoker{responses: map[string]invoke.Result{
		"challenger": {Content: `{"pass": true, "critiques": []}`},
	}}
	g := NewGate(NewGenerator(inv, invoke.Config{Provider: invoke.ProviderAnthropic, Model: "challenger", Credential: "k"}), nil)

	got := g.Review(context.Background(), Query{Question: "q"}, "synthesis")

	if !got.Accepted() {
		t.Fatalf("State = %s, want accepted", got.State)
	}
	if got.Challenge.HasSignificantGaps {
		t.Error("challenge should have found no gaps")
	}
}

func TestGateGapsWithoutVotersAccepts(t *testing.T) {
	inv := &fakeInvoker{responses: map[string]invoke.Result{
		"challenger": {Content: `{"pass": false, "critiques": [{"section": "overview", "issue": "thin"}]}`},
	}}
	g := NewGate(NewGenerator(inv, invoke.Config{Provider: invoke.ProviderAnthropic, Model: "challenger", Credential: "k"}), nil)

	got := g.Review(context.Background(), Query{Question: "q"}, "synthesis")

	if !got.Accepted() {
		t.Fatalf("State = %s, want accepted with no voting ensemble", got.State)
	}
	if got.Vote.VotesFor != 0 || got.Vote.VotesAgainst != 0 {
		t.Errorf("tally = %d/%d, want empty", got.Vote.VotesFor, got.Vote.VotesAgainst)
	}
	if !got.Challenge.HasSignificantGaps {
		t.Error("challenge critique should be preserved in the review")
	}
}

func TestGateVoteDecides(t *testing.T) {
	challengerCfg := invoke.Config{Provider: invoke.ProviderAnthropic, Model: "challenger", Credential: "k"}

	tests := []struct {
		name      string
		votes     map[string]invoke.Result
		wantState State
	}{{
		name: "majority for synthesis",
		votes: map[string]invoke.Result{
			"a": {Content: voteJSON(VoteSynthesisWins, "fine")},
			"b": {Content: voteJSON(VoteSynthesisWins, "fine")},
			"c": {Content: voteJSON(VoteCritiqueWins, "thin", "gap")},
		},
		wantState: StateAccepted,
	}, {
		name: "majority for critique",
		votes: map[string]invoke.Result{
			"a": {Content: voteJSON(VoteCritiqueWins, "thin", "gap one")},
			"b": {Content: voteJSON(VoteCritiqueWins, "thin", "gap two")},
			"c": {Content: voteJSON(VoteSynthesisWins, "fine")},
		},
		wantState: StateRejected,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responses := map[string]invoke.Result{
				"challenger": {Content: `{"pass": false, "critiques": [{"section": "overview", "issue": "thin"}]}`},
			}
			for m, r := range tt.votes {
				responses[m] = r
			}
			inv := &fakeInvoker{responses: responses}

			g := NewGate(
				NewGenerator(inv, challengerCfg),
				NewVoter(inv, ensembleConfigs("a", "b", "c")),
			)

			got := g.Review(context.Background(), Query{Question: "q"}, "synthesis")
			if got.State != tt.wantState {
				t.Errorf("State = %s, want %s", got.State, tt.wantState)
			}
			if tt.wantState == StateRejected && len(got.Vote.CriticalGaps) == 0 {
				t.Error("rejection must carry the critical gaps")
			}
		})
	}
}
