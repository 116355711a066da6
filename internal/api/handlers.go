// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

// Package api exposes the itinerary engine over HTTP with Chi routing.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/apextrip/apextrip/internal/database"
	"github.com/apextrip/apextrip/internal/genai"
	"github.com/apextrip/apextrip/internal/itinerary"
	"github.com/apextrip/apextrip/internal/logging"
	"github.com/apextrip/apextrip/internal/models"
	"github.com/apextrip/apextrip/internal/timing"
	"github.com/apextrip/apextrip/internal/validation"
)

// Schedule is the catalog surface the handlers read from.
type Schedule interface {
	GetRace(ctx context.Context, slug string) (*models.Race, error)
	GetSessions(ctx context.Context, raceID uuid.UUID) ([]models.Session, error)
	GetWindows(ctx context.Context, raceID uuid.UUID) ([]models.ExperienceWindow, error)
	GetWindowExperienceIDs(ctx context.Context, raceID uuid.UUID, windowSlug string) ([]uuid.UUID, error)
}

// Synthesizer produces itineraries on demand.
type Synthesizer interface {
	Synthesize(ctx context.Context, req *models.ItineraryRequest) (*models.Itinerary, error)
}

// ItineraryReader fetches stored itineraries by their share id.
type ItineraryReader interface {
	FindItineraryByID(ctx context.Context, id string) (*models.Itinerary, error)
}

// Handler holds the endpoint implementations and their collaborators.
type Handler struct {
	schedule    Schedule
	synthesizer Synthesizer
	itineraries ItineraryReader

	// now is the clock source, overridable in tests.
	now func() time.Time
}

// NewHandler wires the endpoint handlers.
func NewHandler(schedule Schedule, synthesizer Synthesizer, itineraries ItineraryReader) *Handler {
	return &Handler{
		schedule:    schedule,
		synthesizer: synthesizer,
		itineraries: itineraries,
		now:         time.Now,
	}
}

// sessionView is a session enriched with its live classification.
type sessionView struct {
	models.Session
	Status   timing.Status `json:"status"`
	Progress int           `json:"progress"`
}

// scheduleResponse is the payload of the schedule endpoint.
type scheduleResponse struct {
	Race     *models.Race  `json:"race"`
	Now      string        `json:"now"`
	Sessions []sessionView `json:"sessions"`
}

// Schedule returns a race's sessions classified against the current instant.
// An "at" query parameter (RFC 3339) substitutes the evaluation instant,
// which keeps the endpoint previewable and testable.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	race, ok := h.resolveRace(w, r)
	if !ok {
		return
	}

	now, err := h.evaluationInstant(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'at' parameter, want RFC 3339")
		return
	}

	sessions, err := h.schedule.GetSessions(r.Context(), race.ID)
	if err != nil {
		logging.Error().Err(err).Str("race", race.Slug).Msg("Failed to load sessions")
		writeError(w, http.StatusInternalServerError, "failed to load schedule")
		return
	}

	clock := timing.NewClock(race, now)
	views := make([]sessionView, 0, len(sessions))
	for _, s := range sessions {
		status, progress, err := timing.ClassifySession(clock, &s)
		if err != nil {
			logging.Error().Err(err).Str("session", s.Code).Msg("Failed to classify session")
			writeError(w, http.StatusInternalServerError, "failed to classify schedule")
			return
		}
		views = append(views, sessionView{Session: s, Status: status, Progress: progress})
	}

	writeJSON(w, http.StatusOK, scheduleResponse{
		Race:     race,
		Now:      clock.Now.Format(time.RFC3339),
		Sessions: views,
	})
}

// windowView is a window with its recommended experiences resolved.
type windowView struct {
	models.ExperienceWindow
	ExperienceIDs []uuid.UUID `json:"experience_ids"`
}

// windowsResponse is the payload of the windows endpoint.
type windowsResponse struct {
	Race    *models.Race `json:"race"`
	Windows []windowView `json:"windows"`
}

// Windows returns a race's experience windows in display order, each with
// the experiences attached to it (most popular first).
func (h *Handler) Windows(w http.ResponseWriter, r *http.Request) {
	race, ok := h.resolveRace(w, r)
	if !ok {
		return
	}

	windows, err := h.schedule.GetWindows(r.Context(), race.ID)
	if err != nil {
		logging.Error().Err(err).Str("race", race.Slug).Msg("Failed to load windows")
		writeError(w, http.StatusInternalServerError, "failed to load windows")
		return
	}

	views := make([]windowView, 0, len(windows))
	for _, win := range windows {
		ids, err := h.schedule.GetWindowExperienceIDs(r.Context(), race.ID, win.Slug)
		if err != nil {
			logging.Error().Err(err).Str("window", win.Slug).Msg("Failed to load window experiences")
			writeError(w, http.StatusInternalServerError, "failed to load windows")
			return
		}
		views = append(views, windowView{ExperienceWindow: win, ExperienceIDs: ids})
	}

	writeJSON(w, http.StatusOK, windowsResponse{Race: race, Windows: views})
}

// CreateItinerary synthesizes (or re-serves) an itinerary for the posted
// request. Identical requests return the previously stored itinerary.
func (h *Handler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var req models.ItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		details := make([]string, len(verr.Fields()))
		for i, fe := range verr.Fields() {
			details[i] = fe.Message
		}
		writeError(w, http.StatusBadRequest, "validation failed", details...)
		return
	}

	it, err := h.synthesizer.Synthesize(r.Context(), &req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, it)
	case errors.Is(err, itinerary.ErrRaceNotFound):
		writeError(w, http.StatusNotFound, "race not found")
	case errors.Is(err, itinerary.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, genai.ErrBackendUnavailable),
		errors.Is(err, itinerary.ErrUpstreamGeneration),
		errors.Is(err, itinerary.ErrMalformedResponse):
		logging.Warn().Err(err).Str("race", req.RaceSlug).Msg("Itinerary synthesis failed")
		writeError(w, http.StatusBadGateway, "itinerary generation failed, please retry")
	default:
		logging.Error().Err(err).Str("race", req.RaceSlug).Msg("Itinerary synthesis error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// GetItinerary fetches a stored itinerary by its share id.
func (h *Handler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	it, err := h.itineraries.FindItineraryByID(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "itinerary not found")
		return
	}
	if err != nil {
		logging.Error().Err(err).Str("itinerary_id", id).Msg("Failed to load itinerary")
		writeError(w, http.StatusInternalServerError, "failed to load itinerary")
		return
	}

	writeJSON(w, http.StatusOK, it)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) resolveRace(w http.ResponseWriter, r *http.Request) (*models.Race, bool) {
	slug := chi.URLParam(r, "slug")
	race, err := h.schedule.GetRace(r.Context(), slug)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "race not found")
		return nil, false
	}
	if err != nil {
		logging.Error().Err(err).Str("race", slug).Msg("Failed to resolve race")
		writeError(w, http.StatusInternalServerError, "failed to resolve race")
		return nil, false
	}
	return race, true
}

func (h *Handler) evaluationInstant(r *http.Request) (time.Time, error) {
	if at := r.URL.Query().Get("at"); at != "" {
		return time.Parse(time.RFC3339, at)
	}
	return h.now(), nil
}
