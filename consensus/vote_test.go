/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package consensus

import (
	"context"
	"errors"
	"strings"
	"testing"

	"chainguard.dev/arbiter/invoke"
	"github.com/google/go-cmp/cmp"
)

func voteJSON(vote, reasoning string, gaps ...string) string {
	var b strings.Builder
	b.WriteString(`{"vote": "` + vote + `", "reasoning": "` + reasoning + `", "critical_gaps": [`)
	for i, g := range gaps {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(`"` + g + `"`)
	}
	b.WriteString("]}")
	return b.String()
}

func ensembleConfigs(models ...string) []invoke.Config {
	cfgs := make([]invoke.Config, 0, len(models))
	for _, m := range models {
		cfgs = append(cfgs, invoke.Config{Provider: invoke.ProviderAnthropic, Model: m, Credential: "k"})
	}
	return cfgs
}

func TestVoteTieFavorsSynthesis(t *testing.T) {
	inv := &fakeInvoker{responses: map[string]invoke.Result{
		"a": {Content: voteJSON(VoteSynthesisWins, "adequate")},
		"b": {Content: voteJSON(VoteSynthesisWins, "covers the question")},
		"c": {Content: voteJSON(VoteCritiqueWins, "missing detail", "gap one")},
		"d": {Content: voteJSON(VoteCritiqueWins, "missing detail", "gap two")},
	}}
	v := NewVoter(inv, ensembleConfigs("a", "b", "c", "d"))

	got := v.Vote(context.Background(), Query{Question: "q"}, "synthesis", []Critique{{Section: "overview", Issue: "x"}})

	if !got.Sufficient {
		t.Error("Sufficient = false, want true on a 2-2 split")
	}
	if got.VotesFor != 2 || got.VotesAgainst != 2 {
		t.Errorf("tally = %d/%d, want 2/2", got.VotesFor, got.VotesAgainst)
	}
}

func TestVoteMajorityAgainstUnionsGaps(t *testing.T) {
	inv := &fakeInvoker{responses: map[string]invoke.Result{
		"a": {Content: voteJSON(VoteSynthesisWins, "adequate")},
		"b": {Content: voteJSON(VoteCritiqueWins, "gaps", "unanswered sub-question", "shared gap")},
		"c": {Content: voteJSON(VoteCritiqueWins, "gaps", "shared gap", "no cost analysis")},
	}}
	v := NewVoter(inv, ensembleConfigs("a", "b", "c"))

	got := v.Vote(context.Background(), Query{Question: "q"}, "synthesis", []Critique{{Section: "overview", Issue: "x"}})

	if got.Sufficient {
		t.Error("Sufficient = true, want false at 1 for, 2 against")
	}
	wantGaps := []string{"unanswered sub-question", "shared gap", "no cost analysis"}
	if diff := cmp.Diff(wantGaps, got.CriticalGaps); diff != "" {
		t.Errorf("CriticalGaps (-want, +got):\n%s", diff)
	}
}

func TestVoteDefaultsFailuresToSynthesis(t *testing.T) {
	inv := &fakeInvoker{responses: map[string]invoke.Result{
		"down":      {Err: errors.New("timeout")},
		"confused":  {Content: "I cannot vote on this."},
		"dissenter": {Content: voteJSON(VoteCritiqueWins, "gaps", "a real gap")},
	}}
	v := NewVoter(inv, ensembleConfigs("down", "confused", "dissenter"))

	got := v.Vote(context.Background(), Query{Question: "q"}, "synthesis", []Critique{{Section: "overview", Issue: "x"}})

	if !got.Sufficient {
		t.Error("Sufficient = false, want true: defaulted votes count for the synthesis")
	}
	if got.VotesFor != 2 || got.VotesAgainst != 1 {
		t.Errorf("tally = %d/%d, want 2/1", got.VotesFor, got.VotesAgainst)
	}
	if len(got.Details) != 3 {
		t.Fatalf("Details has %d entries, want 3", len(got.Details))
	}
	for _, d := range got.Details {
		switch d.Model {
		case "down", "confused":
			if d.Vote != VoteSynthesisWins || !strings.HasPrefix(d.Reasoning, "defaulted:") {
				t.Errorf("model %s detail = %+v, want defaulted synthesis_wins", d.Model, d)
			}
		case "dissenter":
			if d.Vote != VoteCritiqueWins {
				t.Errorf("model dissenter vote = %s, want critique_wins", d.Vote)
			}
		default:
			t.Errorf("unexpected model %q in details", d.Model)
		}
	}
}

func TestVoteUnknownTokenDefaultsToSynthesis(t *testing.T) {
	inv := &fakeInvoker{responses: map[string]invoke.Result{
		"odd": {Content: voteJSON("abstain", "cannot decide")},
	}}
	v := NewVoter(inv, ensembleConfigs("odd"))

	got := v.Vote(context.Background(), Query{Question: "q"}, "synthesis", nil)
	if !got.Sufficient || got.VotesFor != 1 {
		t.Errorf("Vote() = %+v, want defaulted sufficient", got)
	}
}

func TestVoteDetailsRetainModelAssociation(t *testing.T) {
	inv := &fakeInvoker{responses: map[string]invoke.Result{
		"a": {Content: voteJSON(VoteSynthesisWins, "fine")},
		"b": {Content: voteJSON(VoteCritiqueWins, "not fine", "g")},
		"c": {Content: voteJSON(VoteSynthesisWins, "fine")},
	}}
	v := NewVoter(inv, ensembleConfigs("a", "b", "c"))

	got := v.Vote(context.Background(), Query{Question: "q"}, "synthesis", nil)

	wantModels := []string{"a", "b", "c"}
	for i, d := range got.Details {
		if d.Model != wantModels[i] {
			t.Errorf("Details[%d].Model = %q, want %q", i, d.Model, wantModels[i])
		}
	}
}
