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

// fakeInvoker routes invocations through a per-model response table.
type fakeInvoker struct {
	responses map[string]invoke.Result
}

func (f *fakeInvoker) Invoke(_ context.Context, _ string, cfg invoke.Config) invoke.Result {
	if r, ok := f.responses[cfg.Model]; ok {
		r.Model = cfg.Model
		return r
	}
	return invoke.Result{Model: cfg.Model, Err: errors.New("unconfigured model")}
}

func TestParseChallenge(t *testing.T) {
	longProse := strings.TrimSpace(strings.Repeat(
		"The synthesis glosses over the cost analysis the question demanded. ", 3))
	if len(longProse) < 200 {
		t.Fatalf("fixture too short: %d chars", len(longProse))
	}

	tests := []struct {
		name          string
		response      string
		wantGaps      bool
		wantCritiques []Critique
	}{{
		name:     "structured pass",
		response: `Verdict: {"pass": true, "critiques": []}`,
		wantGaps: false,
	}, {
		name: "structured critiques",
		response: `{"pass": false, "critiques": [
			{"section": "methodology", "issue": "sample size unstated"},
			{"issue": "ignores the latency constraint"}]}`,
		wantGaps: true,
		wantCritiques: []Critique{
			{Section: "methodology", Issue: "sample size unstated"},
			{Section: "overview", Issue: "ignores the latency constraint"},
		},
	}, {
		name:     "non-string section falls back to default",
		response: `{"pass": false, "critiques": [{"section": 3, "issue": "claim lacks a source"}]}`,
		wantGaps: true,
		wantCritiques: []Critique{
			{Section: "overview", Issue: "claim lacks a source"},
		},
	}, {
		name:     "no-gap phrase",
		response: "No significant gaps found.",
		wantGaps: false,
	}, {
		name: "numbered list",
		response: `The synthesis has problems:
1. The second sub-question is never addressed.
2) The cost estimate contradicts the cited figures.`,
		wantGaps: true,
		wantCritiques: []Critique{
			{Section: "overview", Issue: "The second sub-question is never addressed."},
			{Section: "overview", Issue: "The cost estimate contradicts the cited figures."},
		},
	}, {
		name:     "trivially short response",
		response: "Looks ok.",
		wantGaps: false,
	}, {
		name:     "long unstructured response becomes one critique",
		response: longProse,
		wantGaps: true,
		wantCritiques: []Critique{
			{Section: "overview", Issue: longProse},
		},
	}, {
		name:     "empty response",
		response: "",
		wantGaps: false,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseChallenge(tt.response)
			if got.HasSignificantGaps != tt.wantGaps {
				t.Errorf("HasSignificantGaps = %t, want %t", got.HasSignificantGaps, tt.wantGaps)
			}
			if got.HasSignificantGaps != (len(got.Critiques) > 0) {
				t.Errorf("gaps flag %t disagrees with %d critiques", got.HasSignificantGaps, len(got.Critiques))
			}
			if diff := cmp.Diff(tt.wantCritiques, got.Critiques); diff != "" {
				t.Errorf("Critiques (-want, +got):\n%s", diff)
			}
			if got.RawResponse != tt.response {
				t.Errorf("RawResponse = %q, want original text", got.RawResponse)
			}
		})
	}
}

func TestChallengeFailedCallMeansNoGaps(t *testing.T) {
	inv := &fakeInvoker{responses: map[string]invoke.Result{
		"down": {Err: errors.New("connection refused")},
	}}
	g := NewGenerator(inv, invoke.Config{Provider: invoke.ProviderAnthropic, Model: "down", Credential: "k"})

	got := g.Challenge(context.Background(), Query{Question: "q"}, "a synthesis")
	if got.HasSignificantGaps {
		t.Error("a failed challenge call must not report gaps")
	}
	if len(got.Critiques) != 0 {
		t.Errorf("Critiques = %v, want none", got.Critiques)
	}
}

func TestChallengeParsesJudgeOutput(t *testing.T) {
	inv := &fakeInvoker{responses: map[string]invoke.Result{
		"judge": {Content: `{"pass": false, "critiques": [{"section": "sources", "issue": "no primary sources cited"}]}`},
	}}
	g := NewGenerator(inv, invoke.Config{Provider: invoke.ProviderAnthropic, Model: "judge", Credential: "k"})

	got := g.Challenge(context.Background(), Query{
		Question:     "what changed in the 2025 release",
		Constraints:  []string{"cite primary sources"},
		SubQuestions: []string{"what broke", "what was deprecated"},
	}, "a synthesis")

	if !got.HasSignificantGaps {
		t.Fatal("HasSignificantGaps = false, want true")
	}
	want := []Critique{{Section: "sources", Issue: "no primary sources cited"}}
	if diff := cmp.Diff(want, got.Critiques); diff != "" {
		t.Errorf("Critiques (-want, +got):\n%s", diff)
	}
}
