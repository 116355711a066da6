// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package itinerary

import "errors"

// Synthesis error taxonomy. Callers branch on these with errors.Is; the
// wrapped detail carries the specific cause.
var (
	// ErrRaceNotFound means the request's race slug resolved to nothing.
	// Not retryable without correcting the input.
	ErrRaceNotFound = errors.New("race not found")

	// ErrInvalidRequest means the request failed structural validation,
	// for example a departure day before the arrival day.
	ErrInvalidRequest = errors.New("invalid itinerary request")

	// ErrUpstreamGeneration means the text-generation backend was
	// unreachable or returned an error. Transient; safe to retry with
	// backoff. Never cached.
	ErrUpstreamGeneration = errors.New("generation backend failed")

	// ErrMalformedResponse means the backend returned content that could
	// not be parsed and validated into an itinerary. Retryable, since a
	// regeneration may succeed; never stored.
	ErrMalformedResponse = errors.New("malformed generation response")
)
