// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package models

import "github.com/google/uuid"

// SessionType classifies an on-track session.
type SessionType string

// Session types. The first four are championship sessions; SessionSupport
// and SessionEvent cover support series and off-track ceremonies that are
// displayed alongside them.
const (
	SessionPractice   SessionType = "practice"
	SessionQualifying SessionType = "qualifying"
	SessionSprint     SessionType = "sprint"
	SessionRace       SessionType = "race"
	SessionSupport    SessionType = "support"
	SessionEvent      SessionType = "event"
)

// Session is a scheduled on-track activity with a fixed weekend day and a
// local wall-clock window. Times carry no date; the parent race's FirstDay
// anchors them to the calendar. Sessions are seeded once and never mutated.
type Session struct {
	ID     uuid.UUID `json:"id"`
	RaceID uuid.UUID `json:"race_id"`

	// Name is the display name ("Free Practice 1"); Code is the short form
	// used in compact layouts ("FP1").
	Name string `json:"name"`
	Code string `json:"code"`

	Day RaceDay `json:"day"`

	// StartTime and EndTime are local wall-clock times in "HH:MM" form.
	// Sessions never cross midnight.
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	Type SessionType `json:"type"`
}

// ExperienceWindow is a labeled block of free time during the race weekend
// (a "gap"): the hours before the first session, a long lunch break, the
// evening after qualifying. Windows drive off-track recommendations.
type ExperienceWindow struct {
	ID     uuid.UUID `json:"id"`
	RaceID uuid.UUID `json:"race_id"`

	// Slug is the stable key used in URLs and cache keys.
	Slug  string  `json:"slug"`
	Label string  `json:"label"`
	Day   RaceDay `json:"day"`

	// StartTime and EndTime are optional "HH:MM" bounds; both empty means
	// the window spans whatever the day leaves free.
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`

	// MaxDurationHours caps recommended activity length, one decimal place.
	// Zero means no ceiling.
	MaxDurationHours float64 `json:"max_duration_hours,omitempty"`

	// Guidance is free-text advice passed through to itinerary generation.
	Guidance string `json:"guidance,omitempty"`

	// SortOrder is the display order set at seed time.
	SortOrder int `json:"sort_order"`
}

// Experience is a bookable third-party activity. The catalog itself is
// maintained externally; this carries just enough to rank experiences and
// embed them in a generation prompt.
type Experience struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Category string    `json:"category"`

	// Duration and Price are display labels ("3 hours", "from $120"), not
	// parsed values.
	Duration string `json:"duration,omitempty"`
	Price    string `json:"price,omitempty"`

	Rating  float64 `json:"rating,omitempty"`
	Summary string  `json:"summary,omitempty"`

	// Popularity is the catalog's ranking score; higher sorts first.
	Popularity float64 `json:"popularity"`
}
