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
	"time"

	"github.com/google/uuid"

	"github.com/apextrip/apextrip/internal/metrics"
	"github.com/apextrip/apextrip/internal/models"
)

// GetRaceBySlug fetches a race by its URL slug. Returns ErrNotFound for an
// unknown slug.
func (db *DB) GetRaceBySlug(ctx context.Context, slug string) (*models.Race, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("get_race_by_slug", time.Since(start)) }()

	row := db.conn.QueryRowContext(ctx,
		`SELECT id, slug, name, circuit, location, timezone, first_day
		 FROM races WHERE slug = ?`, slug)

	var race models.Race
	err := row.Scan(&race.ID, &race.Slug, &race.Name, &race.Circuit,
		&race.Location, &race.Timezone, &race.FirstDay)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query race %q: %w", slug, err)
	}
	return &race, nil
}

// GetSessions returns all sessions of a race in the canonical order:
// weekend day (Thursday first), then start time ascending. An unknown race
// id yields an empty slice, not an error.
func (db *DB) GetSessions(ctx context.Context, raceID uuid.UUID) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("get_sessions", time.Since(start)) }()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, race_id, name, code, day, start_time, end_time, type
		 FROM sessions WHERE race_id = ?
		 ORDER BY CASE day
			WHEN 'Thursday' THEN 0 WHEN 'Friday' THEN 1
			WHEN 'Saturday' THEN 2 WHEN 'Sunday' THEN 3 ELSE 4 END,
		 start_time`, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer closeRows(rows)

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		var day, sessType string
		if err := rows.Scan(&s.ID, &s.RaceID, &s.Name, &s.Code, &day,
			&s.StartTime, &s.EndTime, &sessType); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		s.Day = models.RaceDay(day)
		s.Type = models.SessionType(sessType)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}

// GetWindows returns all experience windows of a race ordered by the
// seed-time sort order. An unknown race id yields an empty slice.
func (db *DB) GetWindows(ctx context.Context, raceID uuid.UUID) ([]models.ExperienceWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("get_windows", time.Since(start)) }()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, race_id, slug, label, day, start_time, end_time,
			max_duration_hours, guidance, sort_order
		 FROM experience_windows WHERE race_id = ?
		 ORDER BY sort_order`, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query windows: %w", err)
	}
	defer closeRows(rows)

	var windows []models.ExperienceWindow
	for rows.Next() {
		var w models.ExperienceWindow
		var day string
		var startTime, endTime, guidance sql.NullString
		var maxHours sql.NullFloat64
		if err := rows.Scan(&w.ID, &w.RaceID, &w.Slug, &w.Label, &day,
			&startTime, &endTime, &maxHours, &guidance, &w.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan window: %w", err)
		}
		w.Day = models.RaceDay(day)
		w.StartTime = startTime.String
		w.EndTime = endTime.String
		w.MaxDurationHours = maxHours.Float64
		w.Guidance = guidance.String
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate windows: %w", err)
	}
	return windows, nil
}

// GetWindowExperienceIDs resolves the experiences attached to a window via
// the membership join. Memberships pointing at experiences that no longer
// exist are filtered by the inner join rather than surfaced as errors; an
// unknown window slug or race yields an empty slice.
func (db *DB) GetWindowExperienceIDs(ctx context.Context, raceID uuid.UUID, windowSlug string) ([]uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("get_window_experiences", time.Since(start)) }()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT e.id
		 FROM window_experiences we
		 JOIN experience_windows w ON w.id = we.window_id
		 JOIN experiences e ON e.id = we.experience_id
		 WHERE w.race_id = ? AND w.slug = ?
		 ORDER BY e.popularity DESC, e.id`, raceID, windowSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to query window experiences: %w", err)
	}
	defer closeRows(rows)

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan experience id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate experience ids: %w", err)
	}
	return ids, nil
}

// GetTopExperiences returns up to limit experiences for a race ordered by
// descending popularity. The cap keeps generation prompts bounded no matter
// how large the catalog grows.
func (db *DB) GetTopExperiences(ctx context.Context, raceID uuid.UUID, limit int) ([]models.Experience, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("get_top_experiences", time.Since(start)) }()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, category, duration, price, rating, summary, popularity
		 FROM experiences WHERE race_id = ?
		 ORDER BY popularity DESC, id
		 LIMIT ?`, raceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query experiences: %w", err)
	}
	defer closeRows(rows)

	var experiences []models.Experience
	for rows.Next() {
		var e models.Experience
		var duration, price, summary sql.NullString
		var rating sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.Title, &e.Category, &duration, &price,
			&rating, &summary, &e.Popularity); err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		e.Duration = duration.String
		e.Price = price.String
		e.Rating = rating.Float64
		e.Summary = summary.String
		experiences = append(experiences, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate experiences: %w", err)
	}
	return experiences, nil
}
