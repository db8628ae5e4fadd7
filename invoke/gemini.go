/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package invoke

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// callGemini sends the prompt through the Gemini API.
func callGemini(ctx context.Context, prompt string, cfg Config) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Credential,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("creating Gemini client: %w", err)
	}

	response, err := client.Models.GenerateContent(ctx, cfg.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(cfg.Temperature)),
		MaxOutputTokens: int32(cfg.MaxOutputTokens),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := response.Text()
	if text == "" {
		return "", errors.New("no text content in Gemini response")
	}
	return text, nil
}

// isRetryableGeminiError reports whether a Gemini error is a rate limit,
// quota exhaustion, or transient server error. The genai SDK does not
// expose a stable typed error for these, so classification is by message.
func isRetryableGeminiError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "Resource exhausted") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "Overloaded") ||
		strings.Contains(msg, "quota exceeded") ||
		strings.Contains(msg, "server error")
}
