/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package config loads judge credentials from the environment and judge
// ensembles from YAML files.
package config

import (
	"context"
	"fmt"
	"os"

	"chainguard.dev/arbiter/invoke"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// Credentials holds per-provider API keys. Any key may be empty; a judge
// configuration referencing a provider without a credential fails
// validation at assembly time, not here.
type Credentials struct {
	Anthropic string `env:"ANTHROPIC_API_KEY"`
	OpenAI    string `env:"OPENAI_API_KEY"`
	Gemini    string `env:"GEMINI_API_KEY"`
}

// LoadCredentials reads provider credentials from the environment.
func LoadCredentials(ctx context.Context) (Credentials, error) {
	var creds Credentials
	if err := envconfig.Process(ctx, &creds); err != nil {
		return Credentials{}, fmt.Errorf("processing credentials: %w", err)
	}
	return creds, nil
}

// For returns the credential for a provider, or empty if none is set.
func (c Credentials) For(p invoke.Provider) string {
	switch p {
	case invoke.ProviderAnthropic:
		return c.Anthropic
	case invoke.ProviderOpenAI:
		return c.OpenAI
	case invoke.ProviderGemini:
		return c.Gemini
	}
	return ""
}

// Ensemble is the YAML shape describing a voting ensemble and the
// optional single-judge roles around it.
type Ensemble struct {
	// Judge is the configuration used for pairwise comparisons and the
	// adversarial challenge.
	Judge *invoke.Config `yaml:"judge,omitempty"`
	// Voters is the sufficiency-vote ensemble. Must be odd-sized when
	// non-empty so a majority always exists.
	Voters []invoke.Config `yaml:"voters,omitempty"`
}

// LoadEnsemble reads an ensemble file, attaches credentials by provider,
// and validates every judge configuration.
func LoadEnsemble(path string, creds Credentials) (Ensemble, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Ensemble{}, fmt.Errorf("reading ensemble file: %w", err)
	}
	return ParseEnsemble(raw, creds)
}

// ParseEnsemble decodes and validates ensemble YAML.
func ParseEnsemble(raw []byte, creds Credentials) (Ensemble, error) {
	var e Ensemble
	if err := yaml.Unmarshal(raw, &e); err != nil {
		return Ensemble{}, fmt.Errorf("parsing ensemble file: %w", err)
	}

	if e.Judge != nil {
		e.Judge.Credential = creds.For(e.Judge.Provider)
		if err := e.Judge.Validate(); err != nil {
			return Ensemble{}, fmt.Errorf("judge: %w", err)
		}
	}

	if len(e.Voters) > 0 && len(e.Voters)%2 == 0 {
		return Ensemble{}, fmt.Errorf("voting ensemble has %d judges, need an odd count for a strict majority", len(e.Voters))
	}
	for i := range e.Voters {
		e.Voters[i].Credential = creds.For(e.Voters[i].Provider)
		if err := e.Voters[i].Validate(); err != nil {
			return Ensemble{}, fmt.Errorf("voter %d: %w", i, err)
		}
	}
	return e, nil
}
