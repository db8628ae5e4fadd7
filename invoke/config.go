/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package invoke

import (
	"fmt"
	"time"
)

// Provider identifies a judge model provider.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
)

const (
	// DefaultTimeout bounds a routine judge call.
	DefaultTimeout = 30 * time.Second
	// CriticalTimeout bounds a judge call whose failure aborts the caller.
	CriticalTimeout = 60 * time.Second
	// DefaultMaxOutputTokens bounds judge responses; verdict JSON is small.
	DefaultMaxOutputTokens = 4096
	// DefaultTemperature keeps judges near-deterministic.
	DefaultTemperature = 0.1
)

// Config describes one judge model invocation target.
type Config struct {
	Provider        Provider      `json:"provider" yaml:"provider"`
	Model           string        `json:"model" yaml:"model"`
	Credential      string        `json:"-" yaml:"-"`
	Timeout         time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	MaxOutputTokens int64         `json:"max_output_tokens,omitempty" yaml:"max_output_tokens,omitempty"`
	Temperature     float64       `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

// withDefaults fills unset fields. Temperature zero is a meaningful value
// for judges, so it is only defaulted when negative.
func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxOutputTokens <= 0 {
		c.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if c.Temperature < 0 {
		c.Temperature = DefaultTemperature
	}
	return c
}

// Validate checks the configuration is invocable.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown provider: %q", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("model is required for provider %s", c.Provider)
	}
	if c.Credential == "" {
		return fmt.Errorf("credential is required for model %s", c.Model)
	}
	return nil
}

// Result is the outcome of one judge invocation. A failed call carries its
// error here rather than failing the caller; Content is empty in that case.
type Result struct {
	Model   string
	Content string
	Err     error
}

// CriticalError is returned by Critical when a required judge call fails or
// produces insufficient output.
type CriticalError struct {
	Model string
	Err   error
}

func (e *CriticalError) Error() string {
	return fmt.Sprintf("critical judge call to %s failed: %v", e.Model, e.Err)
}

func (e *CriticalError) Unwrap() error { return e.Err }

// BatchError is returned by Parallel when fewer calls succeeded than the
// caller required.
type BatchError struct {
	Required  int
	Succeeded int
	Total     int
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("judge batch: %d of %d calls succeeded, %d required", e.Succeeded, e.Total, e.Required)
}
