// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RaceDay identifies a day of a race weekend. The weekend runs Thursday
// through Sunday; ordering is fixed (Thursday=0 .. Sunday=3) and is the only
// ordering used anywhere in the application.
type RaceDay string

// Race weekend days in weekend order.
const (
	Thursday RaceDay = "Thursday"
	Friday   RaceDay = "Friday"
	Saturday RaceDay = "Saturday"
	Sunday   RaceDay = "Sunday"
)

// RaceDays lists the weekend days in weekend order (Thursday first).
var RaceDays = []RaceDay{Thursday, Friday, Saturday, Sunday}

// ParseRaceDay converts a day name to a RaceDay. Matching is exact; the
// wire format uses capitalized English day names.
func ParseRaceDay(s string) (RaceDay, error) {
	for _, d := range RaceDays {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown race day %q", s)
}

// Index returns the position of the day within the weekend
// (Thursday=0 .. Sunday=3), or -1 for an unknown day.
func (d RaceDay) Index() int {
	for i, day := range RaceDays {
		if day == d {
			return i
		}
	}
	return -1
}

// String returns the day name.
func (d RaceDay) String() string { return string(d) }

// Race is a race weekend: the anchor entity that sessions, experience
// windows, and itineraries hang off. Rows are created at seed time and are
// immutable afterwards.
type Race struct {
	ID       uuid.UUID `json:"id"`
	Slug     string    `json:"slug"`
	Name     string    `json:"name"`
	Circuit  string    `json:"circuit"`
	Location string    `json:"location"`

	// Timezone is the IANA zone of the circuit (e.g. "Australia/Melbourne").
	// All session wall-clock times are local to this zone.
	Timezone string `json:"timezone"`

	// FirstDay is the calendar date of the weekend's Thursday. It anchors
	// weekend days to absolute dates: Friday is FirstDay+1 and so on.
	FirstDay time.Time `json:"first_day"`
}

// DateOf returns the calendar date of the given weekend day.
func (r *Race) DateOf(day RaceDay) time.Time {
	return r.FirstDay.AddDate(0, 0, day.Index())
}

// LoadLocation resolves the race's time zone, falling back to UTC when the
// configured zone name does not resolve.
func (r *Race) LoadLocation() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
