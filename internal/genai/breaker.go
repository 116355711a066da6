// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package genai

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/apextrip/apextrip/internal/logging"
	"github.com/apextrip/apextrip/internal/metrics"
)

// ErrBackendUnavailable is returned while the circuit is open and the
// generation backend is not being called.
var ErrBackendUnavailable = errors.New("generation backend unavailable")

// BreakerGenerator wraps a TextGenerator with a circuit breaker so a failing
// backend sheds load fast instead of queueing slow requests. The breaker uses
// real time for its recovery windows; tests should exercise the wrapped
// generator directly.
type BreakerGenerator struct {
	inner TextGenerator
	cb    *gobreaker.CircuitBreaker[string]
	name  string
}

// NewBreakerGenerator wraps the generator. The circuit opens after a 60%
// failure rate over at least 5 requests, waits 30 seconds before probing,
// and allows 2 concurrent probes half-open.
func NewBreakerGenerator(inner TextGenerator) *BreakerGenerator {
	const cbName = "generation-backend"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			trip := failureRatio >= 0.6
			if trip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Uint32("requests", counts.Requests).
					Msg("Opening generation circuit")
			}
			return trip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("Generation circuit state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &BreakerGenerator{inner: inner, cb: cb, name: cbName}
}

// Generate forwards to the wrapped generator under breaker protection.
func (b *BreakerGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	text, err := b.cb.Execute(func() (string, error) {
		return b.inner.Generate(ctx, systemPrompt, userPrompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.GenerationRequests.WithLabelValues("rejected").Inc()
			return "", ErrBackendUnavailable
		}
		metrics.GenerationRequests.WithLabelValues("failure").Inc()
		return "", err
	}
	metrics.GenerationRequests.WithLabelValues("success").Inc()
	return text, nil
}

// Model returns the wrapped generator's model identifier.
func (b *BreakerGenerator) Model() string {
	return b.inner.Model()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

var _ TextGenerator = (*BreakerGenerator)(nil)
