/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package compare decides system-vs-baseline with position and verbosity
// bias corrections.
//
// Every comparison runs two order-swapped trials against the same judge.
// Disagreement between the trials is position bias by construction, and
// forces a tie regardless of the numeric scores. For synthesis tasks a
// second correction counters reward-for-verbosity: scores are normalized
// per information unit (SIU) and a much-longer, barely-better answer is
// treated as a tie under the 25/5 rule.
package compare

import (
	"context"
	"fmt"
	"math"
	"strings"

	"chainguard.dev/arbiter/extract"
	"chainguard.dev/arbiter/invoke"
	"chainguard.dev/arbiter/metrics"
	"chainguard.dev/arbiter/rubric"
	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"
)

const (
	// lengthRatioLimit and scoreRatioFloor define the 25/5 rule: a winner
	// more than 25% longer but less than 5% better is a tie.
	lengthRatioLimit = 1.25
	scoreRatioFloor  = 1.05
)

// Comparator runs symmetric debiased A/B comparisons through one judge.
type Comparator struct {
	invoker invoke.Invoker
	cfg     invoke.Config
}

// New creates a Comparator that judges with the given configuration.
func New(inv invoke.Invoker, cfg invoke.Config) *Comparator {
	return &Comparator{invoker: inv, cfg: cfg}
}

// Compare evaluates one sample. It never returns an error: a failed or
// unparseable trial collapses the whole comparison to a scoreless tie with
// the cause recorded in the reasoning, and retry policy stays in the
// invoker layer.
func (c *Comparator) Compare(ctx context.Context, sample Sample) Result {
	log := clog.FromContext(ctx).With("category", sample.Category)
	rubricText := rubric.For(sample.Category)

	// The two trials differ only in answer order. Neither depends on the
	// other's output, so they are issued concurrently; the consistency
	// check below needs both complete before any verdict.
	var first, second trial
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		first, err = c.runTrial(egCtx, sample.Question, sample.SystemAnswer, sample.BaselineAnswer, rubricText, false)
		return err
	})
	eg.Go(func() error {
		var err error
		second, err = c.runTrial(egCtx, sample.Question, sample.BaselineAnswer, sample.SystemAnswer, rubricText, true)
		return err
	})
	if err := eg.Wait(); err != nil {
		log.With("error", err).Warn("Pairwise trial failed, collapsing to tie")
		result := Result{
			Winner:    WinnerTie,
			Reasoning: fmt.Sprintf("comparison failed: %v", err),
		}
		metrics.RecordComparison(string(result.Winner), string(sample.Category))
		return result
	}

	// Hard override: disagreement between order-swapped trials is position
	// bias, and the raw scores are discarded with the verdict.
	if first.winner != second.winner {
		log.With("trial1", first.winner).With("trial2", second.winner).
			Info("Position-inconsistent trials, forcing tie")
		result := Result{
			Winner: WinnerTie,
			Reasoning: fmt.Sprintf(
				"position-inconsistent judgment: the judge preferred %s with the system answer first but %s with positions swapped; scores discarded",
				first.winner, second.winner),
		}
		metrics.RecordComparison(string(result.Winner), string(sample.Category))
		return result
	}

	result := Result{
		Winner:             first.winner,
		Reasoning:          first.reasoning,
		SystemScore:        round1((first.systemScore + second.systemScore) / 2),
		BaselineScore:      round1((first.baselineScore + second.baselineScore) / 2),
		PositionConsistent: true,
	}

	if sample.Category == rubric.Synthesis {
		result = applyVerbosityCorrection(result, sample)
	}

	metrics.RecordComparison(string(result.Winner), string(sample.Category))
	return result
}

// runTrial executes one ordered judgment and maps the scores back onto the
// system/baseline identities. swapped indicates the baseline answer was in
// position 1.
func (c *Comparator) runTrial(ctx context.Context, question, firstAnswer, secondAnswer, rubricText string, swapped bool) (trial, error) {
	req := &trialRequest{
		Question: question,
		First:    firstAnswer,
		Second:   secondAnswer,
		Rubric:   rubricText,
	}
	bound, err := req.Bind(trialPrompt)
	if err != nil {
		return trial{}, fmt.Errorf("binding trial prompt: %w", err)
	}
	prompt, err := bound.Build()
	if err != nil {
		return trial{}, fmt.Errorf("building trial prompt: %w", err)
	}

	res := c.invoker.Invoke(ctx, prompt, c.cfg)
	if res.Err != nil {
		return trial{}, fmt.Errorf("judge call: %w", res.Err)
	}

	parsed, err := extract.Decode[trialResponse](res.Content)
	if err != nil {
		return trial{}, fmt.Errorf("parsing trial response: %w", err)
	}

	var winner Winner
	switch parsed.Winner {
	case "1":
		winner = WinnerSystem
		if swapped {
			winner = WinnerBaseline
		}
	case "2":
		winner = WinnerBaseline
		if swapped {
			winner = WinnerSystem
		}
	case "tie":
		winner = WinnerTie
	default:
		return trial{}, fmt.Errorf("trial winner %q is not one of 1, 2, tie", parsed.Winner)
	}

	out := trial{
		winner:        winner,
		systemScore:   parsed.Response1Score,
		baselineScore: parsed.Response2Score,
		reasoning:     parsed.Reasoning,
	}
	if swapped {
		out.systemScore, out.baselineScore = out.baselineScore, out.systemScore
	}
	return out, nil
}

// applyVerbosityCorrection normalizes synthesis scores per information
// unit and applies the 25/5 rule. The rule fires symmetrically for
// whichever side is longer.
func applyVerbosityCorrection(result Result, sample Sample) Result {
	systemWords := wordCount(sample.SystemAnswer)
	baselineWords := wordCount(sample.BaselineAnswer)

	result.SIUApplied = true

	// 25/5 rule: the higher-scoring side winning on verbosity alone is a
	// tie, not a win.
	if result.SystemScore != result.BaselineScore {
		hiScore, loScore := result.SystemScore, result.BaselineScore
		hiWords, loWords := systemWords, baselineWords
		if result.BaselineScore > result.SystemScore {
			hiScore, loScore = result.BaselineScore, result.SystemScore
			hiWords, loWords = baselineWords, systemWords
		}

		if loScore > 0 && loWords > 0 {
			lengthRatio := float64(hiWords) / float64(loWords)
			scoreRatio := hiScore / loScore
			if lengthRatio > lengthRatioLimit && scoreRatio < scoreRatioFloor {
				result.Winner = WinnerTie
				result.Reasoning = fmt.Sprintf(
					"verbosity correction: the higher-scoring answer is %.0f%% longer but only %.1f%% better; treated as tie. %s",
					(lengthRatio-1)*100, (scoreRatio-1)*100, result.Reasoning)
				return result
			}
		}
	}

	systemSIU := scorePerInfoUnit(result.SystemScore, systemWords)
	baselineSIU := scorePerInfoUnit(result.BaselineScore, baselineWords)
	switch {
	case systemSIU > baselineSIU:
		result.Winner = WinnerSystem
	case baselineSIU > systemSIU:
		result.Winner = WinnerBaseline
	default:
		result.Winner = WinnerTie
	}
	return result
}

// scorePerInfoUnit is the length-normalized score: score / ln(words+1).
func scorePerInfoUnit(score float64, words int) float64 {
	denom := math.Log(float64(words) + 1)
	if denom == 0 {
		return 0
	}
	return score / denom
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
