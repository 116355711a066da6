// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package database

import "errors"

// Sentinel errors returned by data access methods.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateHash indicates an itinerary insert collided with an
	// existing prompt hash. Callers resolve this by re-fetching the row
	// stored under the same hash.
	ErrDuplicateHash = errors.New("itinerary with identical prompt hash already exists")
)
