/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package calibrate measures whether an LLM judge's scores track human
// ground truth, and watches for drift over time.
//
// The pipeline is offline: human-labeled score pairs in, a calibration
// verdict out. Pearson correlation is the statistical foundation;
// Calibrate layers bias classification and rule-based recommendations on
// top of it, DetectDrift compares a fresh correlation against a stored
// baseline, and CalibrateByCategory partitions pairs by task category.
//
// Degenerate statistics are absorbed, not raised: zero variance yields a
// correlation of zero, and too few pairs for a calibration verdict yields a
// flagged sentinel result carrying a recommendation instead of an error.
// Only a correlation over fewer than two pairs is a hard failure.
package calibrate
