// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

// Package genai talks to an OpenAI-compatible chat completions backend and
// protects it with a circuit breaker. The rest of the application depends on
// the TextGenerator interface only, so tests substitute a fake and never
// touch the network.
package genai

import "context"

// TextGenerator produces free-form text from a system and user prompt.
type TextGenerator interface {
	// Generate returns the raw model output. Callers own all parsing; the
	// backend's output is treated as untrusted text.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Model identifies the backing model for provenance records.
	Model() string
}
