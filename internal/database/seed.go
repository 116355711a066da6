// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/apextrip/apextrip/internal/logging"
	"github.com/apextrip/apextrip/internal/models"
	"github.com/apextrip/apextrip/internal/timing"
)

// ValidateSchedule enforces the seed-time schedule invariant: an experience
// window with explicit bounds must not overlap an on-track session of the
// same race on the same weekend day. A window that overlaps a session would
// recommend off-track activities while the visitor is expected trackside.
func ValidateSchedule(sessions []models.Session, windows []models.ExperienceWindow) error {
	for _, w := range windows {
		if w.StartTime == "" || w.EndTime == "" {
			continue
		}
		wStart, err := wallClockMinutes(w.StartTime)
		if err != nil {
			return fmt.Errorf("window %q: %w", w.Slug, err)
		}
		wEnd, err := wallClockMinutes(w.EndTime)
		if err != nil {
			return fmt.Errorf("window %q: %w", w.Slug, err)
		}
		if wEnd <= wStart {
			return fmt.Errorf("window %q: end %s not after start %s", w.Slug, w.EndTime, w.StartTime)
		}

		for _, s := range sessions {
			if s.RaceID != w.RaceID || s.Day != w.Day {
				continue
			}
			sStart, err := wallClockMinutes(s.StartTime)
			if err != nil {
				return fmt.Errorf("session %q: %w", s.Code, err)
			}
			sEnd, err := wallClockMinutes(s.EndTime)
			if err != nil {
				return fmt.Errorf("session %q: %w", s.Code, err)
			}
			if wStart < sEnd && sStart < wEnd {
				return fmt.Errorf("window %q (%s %s-%s) overlaps session %q (%s-%s)",
					w.Slug, w.Day, w.StartTime, w.EndTime, s.Code, s.StartTime, s.EndTime)
			}
		}
	}
	return nil
}

func wallClockMinutes(hhmm string) (int, error) {
	h, m, err := timing.ParseWallClock(hhmm)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// SeedFixtures loads the built-in demo race weekend when the database holds
// no races yet. Intended for demos and end-to-end tests.
func (db *DB) SeedFixtures(ctx context.Context) error {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM races`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count races: %w", err)
	}
	if count > 0 {
		logging.Debug().Msg("Races already present, skipping fixture seed")
		return nil
	}

	race, sessions, windows, experiences, memberships := melbourneFixture()
	return db.SeedRace(ctx, race, sessions, windows, experiences, memberships)
}

// SeedRace inserts a complete race weekend. The schedule invariant is
// validated before any row is written.
func (db *DB) SeedRace(ctx context.Context, race *models.Race,
	sessions []models.Session, windows []models.ExperienceWindow,
	experiences []models.Experience, memberships map[string][]uuid.UUID) error {

	if err := ValidateSchedule(sessions, windows); err != nil {
		return fmt.Errorf("schedule invariant violated: %w", err)
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO races (id, slug, name, circuit, location, timezone, first_day)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		race.ID, race.Slug, race.Name, race.Circuit, race.Location,
		race.Timezone, race.FirstDay); err != nil {
		return fmt.Errorf("failed to insert race: %w", err)
	}

	for _, s := range sessions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sessions (id, race_id, name, code, day, start_time, end_time, type)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, s.RaceID, s.Name, s.Code, string(s.Day),
			s.StartTime, s.EndTime, string(s.Type)); err != nil {
			return fmt.Errorf("failed to insert session %s: %w", s.Code, err)
		}
	}

	windowIDs := make(map[string]uuid.UUID, len(windows))
	for _, w := range windows {
		windowIDs[w.Slug] = w.ID
		var startTime, endTime, guidance interface{}
		if w.StartTime != "" {
			startTime = w.StartTime
		}
		if w.EndTime != "" {
			endTime = w.EndTime
		}
		if w.Guidance != "" {
			guidance = w.Guidance
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO experience_windows
			 (id, race_id, slug, label, day, start_time, end_time, max_duration_hours, guidance, sort_order)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			w.ID, w.RaceID, w.Slug, w.Label, string(w.Day),
			startTime, endTime, w.MaxDurationHours, guidance, w.SortOrder); err != nil {
			return fmt.Errorf("failed to insert window %s: %w", w.Slug, err)
		}
	}

	for _, e := range experiences {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO experiences (id, race_id, title, category, duration, price, rating, summary, popularity)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, race.ID, e.Title, e.Category, e.Duration, e.Price,
			e.Rating, e.Summary, e.Popularity); err != nil {
			return fmt.Errorf("failed to insert experience %s: %w", e.Title, err)
		}
	}

	for slug, expIDs := range memberships {
		windowID, ok := windowIDs[slug]
		if !ok {
			return fmt.Errorf("membership references unknown window %q", slug)
		}
		for _, expID := range expIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO window_experiences (experience_id, window_id) VALUES (?, ?)`,
				expID, windowID); err != nil {
				return fmt.Errorf("failed to insert membership %s: %w", slug, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	logging.Info().
		Str("race", race.Slug).
		Int("sessions", len(sessions)).
		Int("windows", len(windows)).
		Int("experiences", len(experiences)).
		Msg("Seeded race weekend")
	return nil
}

// melbourneFixture builds the demo weekend: the 2026 season opener at
// Albert Park with the championship session plan, eight free-time windows,
// and a small experience catalog.
func melbourneFixture() (*models.Race, []models.Session, []models.ExperienceWindow, []models.Experience, map[string][]uuid.UUID) {
	race := &models.Race{
		ID:       uuid.New(),
		Slug:     "melbourne-2026",
		Name:     "Australian Grand Prix 2026",
		Circuit:  "Albert Park Circuit",
		Location: "Melbourne, Australia",
		Timezone: "Australia/Melbourne",
		FirstDay: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	}

	newSession := func(name, code string, day models.RaceDay, start, end string, t models.SessionType) models.Session {
		return models.Session{
			ID: uuid.New(), RaceID: race.ID, Name: name, Code: code,
			Day: day, StartTime: start, EndTime: end, Type: t,
		}
	}
	sessions := []models.Session{
		newSession("Free Practice 1", "FP1", models.Friday, "12:30", "13:30", models.SessionPractice),
		newSession("Free Practice 2", "FP2", models.Friday, "16:00", "17:00", models.SessionPractice),
		newSession("Free Practice 3", "FP3", models.Saturday, "12:30", "13:30", models.SessionPractice),
		newSession("Qualifying", "Q", models.Saturday, "16:00", "17:00", models.SessionQualifying),
		newSession("Australian Grand Prix", "RACE", models.Sunday, "15:00", "17:00", models.SessionRace),
	}

	newWindow := func(slug, label string, day models.RaceDay, start, end string, maxHours float64, guidance string, order int) models.ExperienceWindow {
		return models.ExperienceWindow{
			ID: uuid.New(), RaceID: race.ID, Slug: slug, Label: label, Day: day,
			StartTime: start, EndTime: end, MaxDurationHours: maxHours,
			Guidance: guidance, SortOrder: order,
		}
	}
	windows := []models.ExperienceWindow{
		newWindow("thursday-arrival", "Arrival day", models.Thursday, "", "", 0,
			"Full day free; settle in, pick up race tickets, explore the city centre.", 1),
		newWindow("thursday-evening", "Thursday evening", models.Thursday, "18:00", "22:00", 4,
			"First night out; riverside dining along the Yarra works well.", 2),
		newWindow("friday-morning", "Friday morning", models.Friday, "08:00", "11:30", 3,
			"Short activities only; gates open at noon for first practice.", 3),
		newWindow("friday-evening", "Friday evening", models.Friday, "18:30", "22:30", 4,
			"Post-practice dinner; laneway food scene is a short tram ride away.", 4),
		newWindow("saturday-morning", "Saturday morning", models.Saturday, "08:00", "11:30", 3,
			"Keep it close to the circuit; qualifying day traffic builds early.", 5),
		newWindow("saturday-evening", "Saturday evening", models.Saturday, "18:30", "23:00", 4.5,
			"Qualifying night; bars around the circuit precinct fill quickly.", 6),
		newWindow("sunday-morning", "Sunday morning", models.Sunday, "08:00", "13:00", 4,
			"Race day; brunch and a relaxed start before heading to the grandstands.", 7),
		newWindow("sunday-evening", "Sunday evening", models.Sunday, "18:30", "23:00", 4.5,
			"Celebration dinner after the podium; book ahead.", 8),
	}

	newExperience := func(title, category, duration, price string, rating, popularity float64, summary string) models.Experience {
		return models.Experience{
			ID: uuid.New(), Title: title, Category: category, Duration: duration,
			Price: price, Rating: rating, Popularity: popularity, Summary: summary,
		}
	}
	experiences := []models.Experience{
		newExperience("Yarra River Dinner Cruise", "food", "2.5 hours", "from $95", 4.7, 98,
			"Three-course dinner cruising past the lit-up city skyline."),
		newExperience("Laneway Street Food Tour", "food", "3 hours", "from $75", 4.8, 95,
			"Guided walk through Melbourne's famous laneways with six tastings."),
		newExperience("Queen Victoria Market Breakfast", "food", "2 hours", "from $40", 4.5, 80,
			"Early market tour with coffee and pastry stops."),
		newExperience("National Gallery Highlights", "culture", "1.5 hours", "from $25", 4.6, 85,
			"Curated walk through the NGV international collection."),
		newExperience("Street Art Walking Tour", "culture", "2 hours", "from $35", 4.7, 88,
			"Hosier Lane and beyond with a local artist."),
		newExperience("Melbourne Cricket Ground Tour", "culture", "1.5 hours", "from $30", 4.5, 78,
			"Behind the scenes at the MCG, five minutes from Albert Park."),
		newExperience("St Kilda Beach Kitesurf Lesson", "adventure", "2 hours", "from $120", 4.4, 60,
			"Beginner kitesurfing on the bay, gear included."),
		newExperience("Hot Air Balloon Sunrise Flight", "adventure", "4 hours", "from $390", 4.9, 70,
			"Dawn flight over the city, champagne landing."),
		newExperience("Great Ocean Road Day Trip", "nature", "12 hours", "from $150", 4.8, 92,
			"Twelve Apostles and coastal lookouts; full-day coach tour."),
		newExperience("Royal Botanic Gardens Picnic", "nature", "2 hours", "from $20", 4.3, 55,
			"Self-guided gardens walk with a packed picnic."),
	}

	expID := func(title string) uuid.UUID {
		for _, e := range experiences {
			if e.Title == title {
				return e.ID
			}
		}
		return uuid.Nil
	}
	memberships := map[string][]uuid.UUID{
		"thursday-arrival": {expID("Street Art Walking Tour"), expID("National Gallery Highlights"), expID("Queen Victoria Market Breakfast")},
		"thursday-evening": {expID("Yarra River Dinner Cruise"), expID("Laneway Street Food Tour")},
		"friday-morning":   {expID("Queen Victoria Market Breakfast"), expID("Royal Botanic Gardens Picnic")},
		"friday-evening":   {expID("Laneway Street Food Tour"), expID("Yarra River Dinner Cruise")},
		"saturday-morning": {expID("Melbourne Cricket Ground Tour"), expID("Royal Botanic Gardens Picnic")},
		"saturday-evening": {expID("Yarra River Dinner Cruise"), expID("Laneway Street Food Tour")},
		"sunday-morning":   {expID("Queen Victoria Market Breakfast"), expID("Street Art Walking Tour")},
		"sunday-evening":   {expID("Yarra River Dinner Cruise"), expID("Laneway Street Food Tour")},
	}

	return race, sessions, windows, experiences, memberships
}
