/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package consensus

// Query is the original research request a synthesis is judged against.
type Query struct {
	Question     string   `json:"question"`
	Constraints  []string `json:"constraints,omitempty"`
	SubQuestions []string `json:"sub_questions,omitempty"`
}

// Critique is one identified weakness in a synthesis.
type Critique struct {
	Section string `json:"section"`
	Issue   string `json:"issue"`
}

// ChallengeResult is the outcome of attacking a synthesis.
// HasSignificantGaps is true exactly when Critiques is non-empty.
type ChallengeResult struct {
	Critiques          []Critique `json:"critiques"`
	HasSignificantGaps bool       `json:"has_significant_gaps"`
	RawResponse        string     `json:"raw_response"`
}

// Vote tokens the ensemble judges must return.
const (
	VoteSynthesisWins = "synthesis_wins"
	VoteCritiqueWins  = "critique_wins"
)

// VoteDetail records one judge's vote for audit. Model association is
// retained even when the vote itself was defaulted.
type VoteDetail struct {
	Model     string `json:"model"`
	Vote      string `json:"vote"`
	Reasoning string `json:"reasoning"`
}

// SufficiencyVote is the aggregated ensemble verdict on a challenged
// synthesis. Sufficient is votesFor >= votesAgainst: an even split keeps
// the synthesis.
type SufficiencyVote struct {
	Sufficient   bool         `json:"sufficient"`
	VotesFor     int          `json:"votes_for"`
	VotesAgainst int          `json:"votes_against"`
	CriticalGaps []string     `json:"critical_gaps,omitempty"`
	Details      []VoteDetail `json:"details,omitempty"`
}

// challengeResponse is the structured shape the challenge judge is asked
// to return. Section is loosely typed because judges sometimes emit
// numbers or objects there; anything that is not a string falls back to
// the default section.
type challengeResponse struct {
	Pass      bool `json:"pass"`
	Critiques []struct {
		Section any    `json:"section"`
		Issue   string `json:"issue"`
	} `json:"critiques"`
}

// voteResponse is the structured shape each ensemble judge must return.
type voteResponse struct {
	Vote         string   `json:"vote"`
	Reasoning    string   `json:"reasoning"`
	CriticalGaps []string `json:"critical_gaps"`
}
