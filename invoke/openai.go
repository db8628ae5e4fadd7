/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package invoke

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// callOpenAI sends the prompt through the OpenAI Chat Completions API.
func callOpenAI(ctx context.Context, prompt string, cfg Config) (string, error) {
	client := openai.NewClient(
		option.WithAPIKey(cfg.Credential),
	)

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature:         openai.Float(cfg.Temperature),
		MaxCompletionTokens: openai.Int(cfg.MaxOutputTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", errors.New("no text content in OpenAI response")
	}
	return completion.Choices[0].Message.Content, nil
}

// isRetryableOpenAIError reports whether an OpenAI API error is a rate
// limit or transient server error.
func isRetryableOpenAIError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 500, 503, 504:
			return true
		}
	}
	return false
}
