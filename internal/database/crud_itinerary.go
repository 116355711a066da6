// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/apextrip/apextrip/internal/logging"
	"github.com/apextrip/apextrip/internal/metrics"
	"github.com/apextrip/apextrip/internal/models"
)

// viewIncrementTimeout bounds the detached view counter update.
const viewIncrementTimeout = 5 * time.Second

// SaveItinerary persists a newly synthesized itinerary under its prompt
// hash. The prompt_hash column carries a unique constraint; when a
// concurrent request stored an itinerary for the same hash first, the
// insert affects zero rows and ErrDuplicateHash is returned so the caller
// can re-fetch the winner instead of failing.
func (db *DB) SaveItinerary(ctx context.Context, raceID uuid.UUID, req *models.ItineraryRequest, it *models.Itinerary) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("save_itinerary", time.Since(start)) }()

	document, err := json.Marshal(struct {
		Title   string                `json:"title"`
		Summary string                `json:"summary"`
		Days    []models.ItineraryDay `json:"days"`
	}{it.Title, it.Summary, it.Days})
	if err != nil {
		return fmt.Errorf("failed to marshal itinerary document: %w", err)
	}

	interests := append([]string(nil), req.Interests...)
	sort.Strings(interests)
	interestsJSON, err := json.Marshal(interests)
	if err != nil {
		return fmt.Errorf("failed to marshal interests: %w", err)
	}

	groupSize := req.GroupSize
	if groupSize < 1 {
		groupSize = 1
	}

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO itineraries (
			id, race_id, prompt_hash, arrival, departure, interests,
			group_size, note, generated_by, document, views, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
		ON CONFLICT (prompt_hash) DO NOTHING`,
		it.ID, raceID, it.PromptHash, string(req.Arrival), string(req.Departure),
		string(interestsJSON), groupSize, req.Note, it.GeneratedBy,
		string(document), it.CreatedAt)
	if err != nil {
		metrics.ItinerarySaves.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to insert itinerary: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read insert result: %w", err)
	}
	if affected == 0 {
		metrics.ItinerarySaves.WithLabelValues("conflict").Inc()
		return ErrDuplicateHash
	}
	metrics.ItinerarySaves.WithLabelValues("created").Inc()
	return nil
}

// FindItineraryByHash returns the itinerary stored under a prompt hash, or
// ErrNotFound.
func (db *DB) FindItineraryByHash(ctx context.Context, promptHash string) (*models.Itinerary, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("find_itinerary_by_hash", time.Since(start)) }()

	row := db.conn.QueryRowContext(ctx,
		`SELECT id, prompt_hash, generated_by, document, views, created_at
		 FROM itineraries WHERE prompt_hash = ?`, promptHash)
	return scanItinerary(row)
}

// FindItineraryByID returns an itinerary by its public id, or ErrNotFound.
// Each successful read schedules a detached, best-effort view counter
// increment; a failed increment is logged and never affects the read.
func (db *DB) FindItineraryByID(ctx context.Context, id string) (*models.Itinerary, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("find_itinerary_by_id", time.Since(start)) }()

	row := db.conn.QueryRowContext(ctx,
		`SELECT id, prompt_hash, generated_by, document, views, created_at
		 FROM itineraries WHERE id = ?`, id)
	it, err := scanItinerary(row)
	if err != nil {
		return nil, err
	}

	go db.incrementViews(id)

	return it, nil
}

// incrementViews bumps the view counter outside the caller's request
// lifecycle. Read latency must never depend on this write succeeding.
func (db *DB) incrementViews(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), viewIncrementTimeout)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx,
		`UPDATE itineraries SET views = views + 1 WHERE id = ?`, id); err != nil {
		logging.Warn().Err(err).Str("itinerary_id", id).Msg("Failed to increment view counter")
	}
}

// scanItinerary decodes one itinerary row including its JSON document.
func scanItinerary(row *sql.Row) (*models.Itinerary, error) {
	var it models.Itinerary
	var document string

	err := row.Scan(&it.ID, &it.PromptHash, &it.GeneratedBy, &document,
		&it.Views, &it.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan itinerary: %w", err)
	}

	var doc struct {
		Title   string                `json:"title"`
		Summary string                `json:"summary"`
		Days    []models.ItineraryDay `json:"days"`
	}
	if err := json.Unmarshal([]byte(document), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary document: %w", err)
	}
	it.Title = doc.Title
	it.Summary = doc.Summary
	it.Days = doc.Days
	return &it, nil
}
