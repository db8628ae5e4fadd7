/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package compare

import "chainguard.dev/arbiter/rubric"

// Winner identifies which side of a pairwise comparison prevailed.
type Winner string

const (
	WinnerSystem   Winner = "system"
	WinnerBaseline Winner = "baseline"
	WinnerTie      Winner = "tie"
)

// Sample is one system-vs-baseline evaluation input.
type Sample struct {
	Question       string              `json:"question"`
	SystemAnswer   string              `json:"system_answer"`
	BaselineAnswer string              `json:"baseline_answer"`
	Category       rubric.TaskCategory `json:"category"`
}

// Result is the outcome of one pairwise A/B evaluation. Whenever
// PositionConsistent is false the winner is tie regardless of raw scores.
type Result struct {
	Winner             Winner  `json:"winner"`
	Reasoning          string  `json:"reasoning"`
	SystemScore        float64 `json:"system_score"`
	BaselineScore      float64 `json:"baseline_score"`
	PositionConsistent bool    `json:"position_consistent"`
	SIUApplied         bool    `json:"siu_applied"`
}

// trialResponse is the wire shape each trial's judge must return.
type trialResponse struct {
	Response1Claims     []string `json:"response_1_claims"`
	Response2Claims     []string `json:"response_2_claims"`
	Response1Evaluation string   `json:"response_1_evaluation"`
	Response2Evaluation string   `json:"response_2_evaluation"`
	Winner              string   `json:"winner"`
	Response1Score      float64  `json:"response_1_score"`
	Response2Score      float64  `json:"response_2_score"`
	Reasoning           string   `json:"reasoning"`
}

// trial is one completed judgment with scores mapped back onto the
// system/baseline identities, independent of prompt position.
type trial struct {
	winner        Winner
	systemScore   float64
	baselineScore float64
	reasoning     string
}
