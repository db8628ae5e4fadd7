/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package calibrate

import (
	"time"

	"chainguard.dev/arbiter/rubric"
)

// ScorePair is one human/judge score observation on the fixed 1-5 scale.
type ScorePair struct {
	SampleID   string              `json:"sampleId"`
	HumanScore float64             `json:"humanScore"`
	LLMScore   float64             `json:"llmScore"`
	Category   rubric.TaskCategory `json:"category,omitempty"`
}

// BiasDirection classifies how judge means relate to human means.
type BiasDirection string

const (
	// BiasAligned means judge and human means differ by less than the
	// alignment threshold.
	BiasAligned BiasDirection = "aligned"
	// BiasLenient means the judge scores higher than humans on average.
	BiasLenient BiasDirection = "lenient"
	// BiasStrict means the judge scores lower than humans on average.
	BiasStrict BiasDirection = "strict"
)

// Result is the outcome of calibrating one score-pair set.
type Result struct {
	PearsonR        float64       `json:"pearsonR"`
	Calibrated      bool          `json:"isCalibrated"`
	SampleCount     int           `json:"sampleCount"`
	HumanMean       float64       `json:"humanMean"`
	JudgeMean       float64       `json:"judgeMean"`
	HumanStdDev     float64       `json:"humanStdDev"`
	JudgeStdDev     float64       `json:"judgeStdDev"`
	BiasDirection   BiasDirection `json:"biasDirection"`
	BiasMagnitude   float64       `json:"biasMagnitude"`
	Recommendations []string      `json:"recommendations"`
}

// DriftReport compares a fresh correlation against a stored baseline.
// Drift is symmetric: improvement and degradation both count. Callers that
// only care about degradation must check the sign of DriftAmount.
type DriftReport struct {
	CurrentR    float64   `json:"currentR"`
	BaselineR   float64   `json:"baselineR"`
	DriftAmount float64   `json:"driftAmount"`
	Drifted     bool      `json:"hasDrifted"`
	Timestamp   time.Time `json:"timestamp"`
}
