// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

// Package timing classifies race-weekend sessions against wall-clock time.
//
// Everything here is a pure function: callers pass an explicit Clock (the
// current instant in the race's local zone plus the weekend's anchor date)
// and get a status back. Keeping the reference date explicit avoids the
// classic weekday-only trap where a "Saturday 14:00" session is ambiguous
// when the evaluation instant falls in a different calendar week than the
// race.
package timing

import (
	"fmt"
	"time"

	"github.com/apextrip/apextrip/internal/models"
)

// Status is the temporal state of a session relative to a Clock.
type Status string

// Session statuses.
const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// Clock is the evaluation instant for classification.
type Clock struct {
	// Now is the current instant, already converted to the race's local
	// time zone.
	Now time.Time

	// FirstDay is the calendar date of the weekend's Thursday at midnight
	// in the race's local zone. It anchors weekend days to absolute dates,
	// so an instant in a different calendar week classifies correctly
	// (entirely before the weekend reads upcoming, entirely after reads
	// completed).
	FirstDay time.Time
}

// NewClock builds a Clock for a race at the given instant. The instant is
// converted into the race's zone and the anchor date is normalized to
// midnight local time.
func NewClock(race *models.Race, now time.Time) Clock {
	loc := race.LoadLocation()
	first := race.FirstDay.In(loc)
	first = time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc)
	return Clock{Now: now.In(loc), FirstDay: first}
}

// Classify returns the status of a session window on the given weekend day.
// start and end are local wall-clock times in "HH:MM" form; sessions that
// cross midnight are not supported. The window is half-open: a session is
// live on [start, end).
func Classify(clock Clock, day models.RaceDay, start, end string) (Status, error) {
	startAt, err := clock.instant(day, start)
	if err != nil {
		return "", err
	}
	endAt, err := clock.instant(day, end)
	if err != nil {
		return "", err
	}
	if !endAt.After(startAt) {
		return "", fmt.Errorf("session end %s not after start %s", end, start)
	}

	switch {
	case clock.Now.Before(startAt):
		return StatusUpcoming, nil
	case clock.Now.Before(endAt):
		return StatusLive, nil
	default:
		return StatusCompleted, nil
	}
}

// Progress returns the elapsed share of a live session as an integer
// percentage, clamped to [0, 100]. It is only meaningful for a session that
// Classify reports as live; for an upcoming session it returns 0 and for a
// completed one 100.
func Progress(clock Clock, day models.RaceDay, start, end string) (int, error) {
	startAt, err := clock.instant(day, start)
	if err != nil {
		return 0, err
	}
	endAt, err := clock.instant(day, end)
	if err != nil {
		return 0, err
	}
	if !endAt.After(startAt) {
		return 0, fmt.Errorf("session end %s not after start %s", end, start)
	}

	elapsed := clock.Now.Sub(startAt)
	total := endAt.Sub(startAt)
	pct := int(elapsed * 100 / total)
	if pct < 0 {
		return 0, nil
	}
	if pct > 100 {
		return 100, nil
	}
	return pct, nil
}

// ClassifySession classifies a session and, when live, its progress.
func ClassifySession(clock Clock, s *models.Session) (Status, int, error) {
	status, err := Classify(clock, s.Day, s.StartTime, s.EndTime)
	if err != nil {
		return "", 0, err
	}
	if status != StatusLive {
		return status, 0, nil
	}
	pct, err := Progress(clock, s.Day, s.StartTime, s.EndTime)
	if err != nil {
		return "", 0, err
	}
	return status, pct, nil
}

// instant resolves a weekend day plus "HH:MM" wall-clock time to an absolute
// instant in the clock's zone.
func (c Clock) instant(day models.RaceDay, hhmm string) (time.Time, error) {
	idx := day.Index()
	if idx < 0 {
		return time.Time{}, fmt.Errorf("unknown race day %q", day)
	}
	h, m, err := ParseWallClock(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	date := c.FirstDay.AddDate(0, 0, idx)
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, c.FirstDay.Location()), nil
}

// ParseWallClock parses an "HH:MM" wall-clock string.
func ParseWallClock(hhmm string) (hour, minute int, err error) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, 0, fmt.Errorf("invalid wall-clock time %q, want HH:MM", hhmm)
	}
	if _, err := fmt.Sscanf(hhmm, "%02d:%02d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid wall-clock time %q: %w", hhmm, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("wall-clock time %q out of range", hhmm)
	}
	return hour, minute, nil
}
