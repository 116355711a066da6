// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package itinerary

import (
	"fmt"
	"strings"
)

// ExtractJSON finds the first balanced {...} object in raw model output.
// Backends routinely wrap JSON in Markdown code fences or surround it with
// prose; both are stripped before searching for the object boundaries. The
// scan is string-aware, so braces inside JSON string values do not confuse
// the balance count. Returns ErrMalformedResponse when no balanced object
// exists.
func ExtractJSON(raw string) (string, error) {
	cleaned := stripCodeFences(raw)

	start := strings.IndexByte(cleaned, '{')
	if start < 0 {
		return "", fmt.Errorf("%w: no JSON object in output", ErrMalformedResponse)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(cleaned); i++ {
		ch := cleaned[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return cleaned[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("%w: unbalanced JSON object in output", ErrMalformedResponse)
}

// stripCodeFences removes Markdown fence lines (``` or ```json) so the brace
// scan only sees content. Non-fence lines pass through untouched.
func stripCodeFences(raw string) string {
	if !strings.Contains(raw, "```") {
		return raw
	}
	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
