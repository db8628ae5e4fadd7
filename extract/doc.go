/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package extract pulls structured JSON out of free-form model output.
//
// Judge models are instructed to respond with a single JSON object, but in
// practice they wrap it in prose, markdown fences, or trailing commentary.
// Rather than pattern-matching per call site, extraction happens in two
// explicit stages:
//
//  1. FirstObject locates the first balanced {...} span in the text,
//     respecting string literals and escapes.
//  2. Decode unmarshals that span against the expected shape, returning
//     ErrNoJSON when no span exists.
//
// All three judge response shapes (pairwise trial, challenge, vote) decode
// through this package.
package extract
