// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package cache

import "time"

// Noop is a Cacher that stores nothing. It backs the cache-disabled mode:
// consumers take the same code path and simply miss on every read.
type Noop struct{}

// Get always misses.
func (Noop) Get(string) (interface{}, bool) { return nil, false }

// Set discards the value.
func (Noop) Set(string, interface{}) {}

// SetWithTTL discards the value.
func (Noop) SetWithTTL(string, interface{}, time.Duration) {}

// Delete does nothing.
func (Noop) Delete(string) {}

// Clear does nothing.
func (Noop) Clear() {}

// Stats returns zeroed counters.
func (Noop) Stats() Stats { return Stats{} }
