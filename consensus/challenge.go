/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package consensus gates synthesized answers through an adversarial
// challenge followed, when the challenge finds gaps, by a majority vote
// across an ensemble of independent judges. The whole flow fails open
// toward acceptance: a judge that cannot be reached or understood never
// rejects a synthesis on its own.
package consensus

import (
	"context"
	"regexp"
	"strings"

	"chainguard.dev/arbiter/extract"
	"chainguard.dev/arbiter/invoke"
	"chainguard.dev/arbiter/metrics"
	"github.com/chainguard-dev/clog"
)

const (
	// DefaultSection labels a critique whose target section the judge did
	// not identify.
	DefaultSection = "overview"

	// ambiguousMinChars is the fail-safe cutoff for unstructured challenge
	// responses: anything this long is assumed to be describing a problem.
	ambiguousMinChars = 30
)

// Generator runs the adversarial challenge against one judge.
type Generator struct {
	invoker invoke.Invoker
	cfg     invoke.Config
}

// NewGenerator creates a challenge Generator judging with cfg.
func NewGenerator(inv invoke.Invoker, cfg invoke.Config) *Generator {
	return &Generator{invoker: inv, cfg: cfg}
}

// Challenge attacks the synthesis against the original query. It never
// returns an error: a failed judge call yields an empty response, which
// the fallback chain resolves to "no gaps".
func (g *Generator) Challenge(ctx context.Context, query Query, synthesis string) ChallengeResult {
	log := clog.FromContext(ctx)

	prompt, err := bindChallenge(query, synthesis)
	if err != nil {
		log.With("error", err).Warn("Binding challenge prompt failed")
		return ChallengeResult{}
	}

	res := g.invoker.Invoke(ctx, prompt, g.cfg)
	if res.Err != nil {
		log.With("model", res.Model).With("error", res.Err).
			Warn("Challenge judge call failed, treating as no gaps")
	}

	result := parseChallenge(res.Content)
	metrics.RecordChallenge(result.HasSignificantGaps)
	return result
}

// challengeParsers is the ordered fallback chain for challenge responses.
// Each stage either claims the response or passes; the first claim wins.
var challengeParsers = []func(string) (ChallengeResult, bool){
	parseStructuredChallenge,
	parseNoGapPhrase,
	parseNumberedCritiques,
}

// parseChallenge resolves free-form judge output into a ChallengeResult.
// When no stage matches, an ambiguous response at least ambiguousMinChars
// long fails safe to a single whole-response critique; anything shorter
// is treated as no gaps.
func parseChallenge(response string) ChallengeResult {
	trimmed := strings.TrimSpace(response)
	for _, parse := range challengeParsers {
		if result, ok := parse(trimmed); ok {
			result.RawResponse = response
			return result
		}
	}

	if len(trimmed) >= ambiguousMinChars {
		return ChallengeResult{
			Critiques:          []Critique{{Section: DefaultSection, Issue: trimmed}},
			HasSignificantGaps: true,
			RawResponse:        response,
		}
	}
	return ChallengeResult{RawResponse: response}
}

func parseStructuredChallenge(response string) (ChallengeResult, bool) {
	parsed, err := extract.Decode[challengeResponse](response)
	if err != nil {
		return ChallengeResult{}, false
	}
	if parsed.Pass {
		return ChallengeResult{}, true
	}
	critiques := make([]Critique, 0, len(parsed.Critiques))
	for _, c := range parsed.Critiques {
		issue := strings.TrimSpace(c.Issue)
		if issue == "" {
			continue
		}
		section := DefaultSection
		if s, ok := c.Section.(string); ok && strings.TrimSpace(s) != "" {
			section = strings.TrimSpace(s)
		}
		critiques = append(critiques, Critique{Section: section, Issue: issue})
	}
	return ChallengeResult{
		Critiques:          critiques,
		HasSignificantGaps: len(critiques) > 0,
	}, true
}

func parseNoGapPhrase(response string) (ChallengeResult, bool) {
	lower := strings.ToLower(response)
	for _, phrase := range []string{"no significant gaps", "no significant issues", "no major gaps"} {
		if strings.Contains(lower, phrase) {
			return ChallengeResult{}, true
		}
	}
	return ChallengeResult{}, false
}

var numberedItemPattern = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+(.+?)\s*$`)

func parseNumberedCritiques(response string) (ChallengeResult, bool) {
	matches := numberedItemPattern.FindAllStringSubmatch(response, -1)
	if len(matches) == 0 {
		return ChallengeResult{}, false
	}
	critiques := make([]Critique, 0, len(matches))
	for _, m := range matches {
		critiques = append(critiques, Critique{Section: DefaultSection, Issue: m[1]})
	}
	return ChallengeResult{
		Critiques:          critiques,
		HasSignificantGaps: true,
	}, true
}
