// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package database

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/apextrip/apextrip/internal/models"
)

func TestValidateSchedule(t *testing.T) {
	raceID := uuid.New()
	sessions := []models.Session{
		{ID: uuid.New(), RaceID: raceID, Code: "FP1", Day: models.Friday,
			StartTime: "12:30", EndTime: "13:30", Type: models.SessionPractice},
		{ID: uuid.New(), RaceID: raceID, Code: "RACE", Day: models.Sunday,
			StartTime: "15:00", EndTime: "17:00", Type: models.SessionRace},
	}

	window := func(slug string, day models.RaceDay, start, end string) models.ExperienceWindow {
		return models.ExperienceWindow{
			ID: uuid.New(), RaceID: raceID, Slug: slug, Label: slug,
			Day: day, StartTime: start, EndTime: end,
		}
	}

	tests := []struct {
		name    string
		windows []models.ExperienceWindow
		wantErr string
	}{
		{
			name: "disjoint windows pass",
			windows: []models.ExperienceWindow{
				window("friday-morning", models.Friday, "08:00", "11:30"),
				window("friday-evening", models.Friday, "18:30", "22:30"),
				window("sunday-morning", models.Sunday, "08:00", "13:00"),
			},
		},
		{
			name: "all-day window without bounds passes",
			windows: []models.ExperienceWindow{
				window("thursday-arrival", models.Thursday, "", ""),
			},
		},
		{
			name: "window touching session start passes",
			windows: []models.ExperienceWindow{
				window("friday-late-morning", models.Friday, "10:00", "12:30"),
			},
		},
		{
			name: "window overlapping session fails",
			windows: []models.ExperienceWindow{
				window("friday-lunch", models.Friday, "12:00", "14:00"),
			},
			wantErr: "overlaps session \"FP1\"",
		},
		{
			name: "window inside session fails",
			windows: []models.ExperienceWindow{
				window("sunday-afternoon", models.Sunday, "15:30", "16:30"),
			},
			wantErr: "overlaps session \"RACE\"",
		},
		{
			name: "same times on another day pass",
			windows: []models.ExperienceWindow{
				window("saturday-lunch", models.Saturday, "12:00", "14:00"),
			},
		},
		{
			name: "inverted window fails",
			windows: []models.ExperienceWindow{
				window("friday-backwards", models.Friday, "19:00", "18:00"),
			},
			wantErr: "not after start",
		},
		{
			name: "malformed time fails",
			windows: []models.ExperienceWindow{
				window("friday-bad", models.Friday, "8am", "11:00"),
			},
			wantErr: "invalid wall-clock time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(sessions, tt.windows)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateSchedule() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateSchedule() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateSchedule() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestMelbourneFixtureIsValid(t *testing.T) {
	race, sessions, windows, experiences, memberships := melbourneFixture()

	if err := ValidateSchedule(sessions, windows); err != nil {
		t.Fatalf("fixture violates schedule invariant: %v", err)
	}
	if race.Slug != "melbourne-2026" {
		t.Errorf("fixture slug = %q, want melbourne-2026", race.Slug)
	}
	if got := race.FirstDay.Weekday(); got != 4 { // Thursday
		t.Errorf("fixture first day weekday = %v, want Thursday", got)
	}

	known := make(map[uuid.UUID]bool, len(experiences))
	for _, e := range experiences {
		known[e.ID] = true
	}
	windowSlugs := make(map[string]bool, len(windows))
	for _, w := range windows {
		windowSlugs[w.Slug] = true
	}
	for slug, ids := range memberships {
		if !windowSlugs[slug] {
			t.Errorf("membership references unknown window %q", slug)
		}
		for _, id := range ids {
			if !known[id] {
				t.Errorf("window %q references unknown experience %s", slug, id)
			}
		}
	}
}
