/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON indicates the text contains no balanced JSON object.
var ErrNoJSON = errors.New("no JSON object found in response")

// FirstObject returns the first balanced {...} span in text.
// Brace depth is tracked outside of string literals, with backslash escapes
// honored inside them. Returns false when no complete object exists.
func FirstObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			continue
		}

		switch {
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// Braces inside strings don't count
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

// Decode locates the first balanced JSON object in text and unmarshals it
// into T. Returns ErrNoJSON when no balanced span exists, or the unmarshal
// error when the span does not match the expected shape.
func Decode[T any](text string) (T, error) {
	var out T

	span, ok := FirstObject(text)
	if !ok {
		return out, ErrNoJSON
	}

	if err := json.Unmarshal([]byte(span), &out); err != nil {
		return out, fmt.Errorf("decoding judge response: %w", err)
	}

	return out, nil
}
