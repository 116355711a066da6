// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package itinerary

import (
	"testing"

	"github.com/google/uuid"

	"github.com/apextrip/apextrip/internal/models"
)

func TestPromptHashInterestOrderInvariance(t *testing.T) {
	raceID := uuid.New()
	a := &models.ItineraryRequest{
		RaceSlug: "melbourne-2026", Arrival: models.Thursday, Departure: models.Sunday,
		Interests: []string{"food", "culture", "adventure"}, GroupSize: 2,
	}
	b := &models.ItineraryRequest{
		RaceSlug: "melbourne-2026", Arrival: models.Thursday, Departure: models.Sunday,
		Interests: []string{"culture", "adventure", "food"}, GroupSize: 2,
	}

	hashA, err := PromptHash(raceID, a)
	if err != nil {
		t.Fatalf("PromptHash() error: %v", err)
	}
	hashB, err := PromptHash(raceID, b)
	if err != nil {
		t.Fatalf("PromptHash() error: %v", err)
	}
	if hashA != hashB {
		t.Errorf("hashes differ for reordered interests: %s vs %s", hashA, hashB)
	}
	if len(hashA) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(hashA))
	}
}

func TestPromptHashGroupSizeDefault(t *testing.T) {
	raceID := uuid.New()
	omitted := &models.ItineraryRequest{
		RaceSlug: "melbourne-2026", Arrival: models.Friday, Departure: models.Sunday,
		Interests: []string{"food"},
	}
	explicit := &models.ItineraryRequest{
		RaceSlug: "melbourne-2026", Arrival: models.Friday, Departure: models.Sunday,
		Interests: []string{"food"}, GroupSize: 1,
	}

	hashOmitted, _ := PromptHash(raceID, omitted)
	hashExplicit, _ := PromptHash(raceID, explicit)
	if hashOmitted != hashExplicit {
		t.Error("omitted group size must hash like an explicit group of 1")
	}
}

func TestPromptHashFieldSensitivity(t *testing.T) {
	raceID := uuid.New()
	base := models.ItineraryRequest{
		RaceSlug: "melbourne-2026", Arrival: models.Thursday, Departure: models.Sunday,
		Interests: []string{"food"}, GroupSize: 2, Note: "with kids",
	}
	baseHash, _ := PromptHash(raceID, &base)

	mutations := map[string]func(*models.ItineraryRequest){
		"arrival":    func(r *models.ItineraryRequest) { r.Arrival = models.Friday },
		"departure":  func(r *models.ItineraryRequest) { r.Departure = models.Saturday },
		"interests":  func(r *models.ItineraryRequest) { r.Interests = []string{"food", "culture"} },
		"group size": func(r *models.ItineraryRequest) { r.GroupSize = 3 },
		"note":       func(r *models.ItineraryRequest) { r.Note = "no kids" },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			mutated := base
			mutated.Interests = append([]string(nil), base.Interests...)
			mutate(&mutated)
			hash, _ := PromptHash(raceID, &mutated)
			if hash == baseHash {
				t.Errorf("changing %s did not change the hash", name)
			}
		})
	}

	otherRace, _ := PromptHash(uuid.New(), &base)
	if otherRace == baseHash {
		t.Error("changing race id did not change the hash")
	}
}

func TestPromptHashStableAcrossCalls(t *testing.T) {
	raceID := uuid.New()
	req := &models.ItineraryRequest{
		RaceSlug: "melbourne-2026", Arrival: models.Thursday, Departure: models.Sunday,
		Interests: []string{"food", "culture"}, GroupSize: 2,
	}

	first, _ := PromptHash(raceID, req)
	second, _ := PromptHash(raceID, req)
	if first != second {
		t.Error("hash is not deterministic across calls")
	}
}
