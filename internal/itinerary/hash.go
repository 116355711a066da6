// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package itinerary

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/apextrip/apextrip/internal/models"
)

// canonicalRequest is the exact serialization hashed into the PromptHash.
// Field order and names are part of the hash contract: changing either
// invalidates every stored itinerary, so treat this struct as frozen.
type canonicalRequest struct {
	RaceID    string   `json:"race_id"`
	Arrival   string   `json:"arrival"`
	Departure string   `json:"departure"`
	Interests []string `json:"interests"`
	GroupSize int      `json:"group_size"`
	Note      string   `json:"note"`
}

// PromptHash derives the idempotence key for an itinerary request: a SHA-256
// hex digest over the canonical serialization of the race identity and the
// normalized request. Interests are sorted and the group size defaulted, so
// requests that differ only in interest order or an omitted group size hash
// identically.
func PromptHash(raceID uuid.UUID, req *models.ItineraryRequest) (string, error) {
	interests := append([]string(nil), req.Interests...)
	sort.Strings(interests)

	groupSize := req.GroupSize
	if groupSize < 1 {
		groupSize = 1
	}

	data, err := json.Marshal(canonicalRequest{
		RaceID:    raceID.String(),
		Arrival:   string(req.Arrival),
		Departure: string(req.Departure),
		Interests: interests,
		GroupSize: groupSize,
		Note:      req.Note,
	})
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize request: %w", err)
	}

	digest := sha256.Sum256(data)
	return fmt.Sprintf("%x", digest), nil
}
