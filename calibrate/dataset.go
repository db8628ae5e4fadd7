/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package calibrate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Dataset is the on-disk calibration data file consumed by the offline
// pipeline.
type Dataset struct {
	Version    string      `json:"version"`
	ScorePairs []ScorePair `json:"scorePairs"`
	Metadata   *Metadata   `json:"metadata,omitempty"`
}

// Metadata records the provenance of a calibration dataset.
type Metadata struct {
	Evaluator     string `json:"evaluator"`
	DateCollected string `json:"dateCollected"`
	Notes         string `json:"notes,omitempty"`
}

const datasetVersion = "1"

// ReadDataset decodes and validates a calibration data file.
func ReadDataset(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decoding calibration dataset: %w", err)
	}

	if ds.Version != datasetVersion {
		return nil, fmt.Errorf("unsupported dataset version %q (want %q)", ds.Version, datasetVersion)
	}

	for i, p := range ds.ScorePairs {
		if p.SampleID == "" {
			return nil, fmt.Errorf("score pair %d: missing sampleId", i)
		}
		if p.HumanScore < 1 || p.HumanScore > 5 {
			return nil, fmt.Errorf("score pair %q: human score %.2f outside the 1-5 scale", p.SampleID, p.HumanScore)
		}
		if p.LLMScore < 1 || p.LLMScore > 5 {
			return nil, fmt.Errorf("score pair %q: llm score %.2f outside the 1-5 scale", p.SampleID, p.LLMScore)
		}
	}

	return &ds, nil
}

// LoadDataset reads a calibration data file from disk.
func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return ReadDataset(f)
}
