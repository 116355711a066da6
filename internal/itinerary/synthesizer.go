// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

// Package itinerary synthesizes day-by-day race weekend plans. The pipeline
// is check-then-create keyed on a deterministic prompt hash: identical
// requests are answered from the store and never hit the generation backend
// twice.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apextrip/apextrip/internal/database"
	"github.com/apextrip/apextrip/internal/genai"
	"github.com/apextrip/apextrip/internal/logging"
	"github.com/apextrip/apextrip/internal/metrics"
	"github.com/apextrip/apextrip/internal/models"
)

// Schedule supplies the race data a synthesis run plans against. Satisfied
// by *catalog.Catalog.
type Schedule interface {
	GetRace(ctx context.Context, slug string) (*models.Race, error)
	GetSessions(ctx context.Context, raceID uuid.UUID) ([]models.Session, error)
	GetWindows(ctx context.Context, raceID uuid.UUID) ([]models.ExperienceWindow, error)
	GetTopExperiences(ctx context.Context, raceID uuid.UUID, limit int) ([]models.Experience, error)
}

// Store persists itineraries under their prompt hash. Satisfied by
// *database.DB.
type Store interface {
	SaveItinerary(ctx context.Context, raceID uuid.UUID, req *models.ItineraryRequest, it *models.Itinerary) error
	FindItineraryByHash(ctx context.Context, promptHash string) (*models.Itinerary, error)
}

// Synthesizer turns itinerary requests into stored itineraries.
type Synthesizer struct {
	schedule  Schedule
	store     Store
	generator genai.TextGenerator

	// maxExperiences caps the experience list embedded in a prompt.
	maxExperiences int
}

// NewSynthesizer wires a synthesizer from its collaborators.
func NewSynthesizer(schedule Schedule, store Store, generator genai.TextGenerator, maxExperiences int) *Synthesizer {
	if maxExperiences < 1 {
		maxExperiences = 25
	}
	return &Synthesizer{
		schedule:       schedule,
		store:          store,
		generator:      generator,
		maxExperiences: maxExperiences,
	}
}

// Synthesize resolves a request to an itinerary. On a prompt-hash hit the
// stored itinerary is returned unchanged with no backend call. On a miss the
// backend is invoked, its output validated, and the result persisted; when a
// concurrent identical request won the insert race, the winner's row is
// fetched and returned instead of an error.
func (s *Synthesizer) Synthesize(ctx context.Context, req *models.ItineraryRequest) (*models.Itinerary, error) {
	if req.Arrival.Index() < 0 || req.Departure.Index() < 0 {
		return nil, fmt.Errorf("%w: unknown day in range %s to %s",
			ErrInvalidRequest, req.Arrival, req.Departure)
	}
	if req.Departure.Index() < req.Arrival.Index() {
		return nil, fmt.Errorf("%w: departure %s before arrival %s",
			ErrInvalidRequest, req.Departure, req.Arrival)
	}

	race, err := s.schedule.GetRace(ctx, req.RaceSlug)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrRaceNotFound, req.RaceSlug)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve race: %w", err)
	}

	hash, err := PromptHash(race.ID, req)
	if err != nil {
		return nil, err
	}

	if stored, err := s.store.FindItineraryByHash(ctx, hash); err == nil {
		metrics.ItineraryHashHits.Inc()
		logging.Debug().Str("prompt_hash", hash).Str("itinerary_id", stored.ID).Msg("Itinerary served from hash index")
		return stored, nil
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up itinerary by hash: %w", err)
	}

	it, err := s.generate(ctx, race, req, hash)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveItinerary(ctx, race.ID, req, it); err != nil {
		if errors.Is(err, database.ErrDuplicateHash) {
			// A concurrent identical request stored its result first. Both
			// runs did the same work; return the winner's row.
			winner, ferr := s.store.FindItineraryByHash(ctx, hash)
			if ferr != nil {
				return nil, fmt.Errorf("failed to fetch itinerary after hash conflict: %w", ferr)
			}
			logging.Debug().Str("prompt_hash", hash).Msg("Lost itinerary insert race, returning stored row")
			return winner, nil
		}
		return nil, fmt.Errorf("failed to save itinerary: %w", err)
	}

	return it, nil
}

// generate runs the backend call and validation for one cache miss.
//
// The generation call runs on a context detached from the caller's
// cancellation: an itinerary is expensive to produce and caching it benefits
// the inevitable retry, so an impatient client closing the connection should
// not discard work in flight. The backend client's own timeout still bounds
// the call.
func (s *Synthesizer) generate(ctx context.Context, race *models.Race, req *models.ItineraryRequest, hash string) (*models.Itinerary, error) {
	sessions, err := s.schedule.GetSessions(ctx, race.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	windows, err := s.schedule.GetWindows(ctx, race.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load windows: %w", err)
	}
	experiences, err := s.schedule.GetTopExperiences(ctx, race.ID, s.maxExperiences)
	if err != nil {
		return nil, fmt.Errorf("failed to load experiences: %w", err)
	}

	userPrompt := buildUserPrompt(race, req, sessions, windows, experiences)

	raw, err := s.generator.Generate(context.WithoutCancel(ctx), systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamGeneration, err)
	}

	jsonText, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}
	doc, days, err := decodeDocument(jsonText, race, req.Arrival, req.Departure)
	if err != nil {
		return nil, err
	}

	return &models.Itinerary{
		ID:          newItineraryID(),
		Title:       doc.Title,
		Summary:     doc.Summary,
		Days:        days,
		PromptHash:  hash,
		GeneratedBy: s.generator.Model(),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// newItineraryID produces the short opaque id used in share URLs.
func newItineraryID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}
