/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package invoke turns a prompt and a judge configuration into model output.
//
// It is the only package that talks to model providers. Three adapters are
// supported (Anthropic, OpenAI, Gemini) so that voting ensembles can favor
// diverse providers over repeated identical calls. Failure handling follows
// the module's layering:
//
//   - Invoke never returns an error; failures are captured on the Result so
//     ensemble callers can apply their own partial-failure policy.
//   - Critical wraps Invoke for calls that must succeed, returning a typed
//     *CriticalError carrying the model and cause, and treating content
//     below a minimum length as failure.
//   - Parallel fans out one prompt across several configurations with
//     errgroup, preserving config order and isolating per-call timeouts: a
//     timeout on one call surfaces as that call's failure without canceling
//     siblings.
//
// Retries for transient provider errors happen here (see the retry
// subpackage) and nowhere above.
package invoke
