// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package timing

import (
	"testing"
	"time"

	"github.com/apextrip/apextrip/internal/models"
)

// weekendClock returns a Clock anchored to a fixed weekend (Thursday
// 2026-03-05, UTC) with Now set to the given day and wall-clock time.
func weekendClock(t *testing.T, day models.RaceDay, hhmm string) Clock {
	t.Helper()
	first := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	h, m, err := ParseWallClock(hhmm)
	if err != nil {
		t.Fatalf("bad test time %q: %v", hhmm, err)
	}
	date := first.AddDate(0, 0, day.Index())
	return Clock{
		Now:      time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, time.UTC),
		FirstDay: first,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		nowDay   models.RaceDay
		nowTime  string
		day      models.RaceDay
		start    string
		end      string
		expected Status
	}{
		{"before start same day", models.Saturday, "09:00", models.Saturday, "14:00", "15:00", StatusUpcoming},
		{"exactly at start", models.Saturday, "14:00", models.Saturday, "14:00", "15:00", StatusLive},
		{"mid session", models.Saturday, "14:30", models.Saturday, "14:00", "15:00", StatusLive},
		{"one minute before end", models.Saturday, "14:59", models.Saturday, "14:00", "15:00", StatusLive},
		{"exactly at end", models.Saturday, "15:00", models.Saturday, "14:00", "15:00", StatusCompleted},
		{"after end same day", models.Saturday, "18:00", models.Saturday, "14:00", "15:00", StatusCompleted},
		{"earlier weekday fully elapsed", models.Saturday, "08:00", models.Friday, "14:00", "15:00", StatusCompleted},
		{"later weekday still ahead", models.Friday, "23:00", models.Sunday, "15:00", "17:00", StatusUpcoming},
		{"thursday before everything", models.Thursday, "06:00", models.Sunday, "15:00", "17:00", StatusUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := weekendClock(t, tt.nowDay, tt.nowTime)
			status, err := Classify(clock, tt.day, tt.start, tt.end)
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}
			if status != tt.expected {
				t.Errorf("Classify = %s, want %s", status, tt.expected)
			}
		})
	}
}

func TestClassifyAcrossWeeks(t *testing.T) {
	first := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	// An instant a full week before the weekend must read upcoming even
	// though the weekday matches the session's day.
	before := Clock{Now: first.AddDate(0, 0, -7).Add(14 * time.Hour), FirstDay: first}
	status, err := Classify(before, models.Thursday, "13:00", "14:00")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if status != StatusUpcoming {
		t.Errorf("week-before instant: got %s, want %s", status, StatusUpcoming)
	}

	// An instant a week after must read completed.
	after := Clock{Now: first.AddDate(0, 0, 9), FirstDay: first}
	status, err = Classify(after, models.Sunday, "15:00", "17:00")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if status != StatusCompleted {
		t.Errorf("week-after instant: got %s, want %s", status, StatusCompleted)
	}
}

func TestClassifyRejectsBadInput(t *testing.T) {
	clock := weekendClock(t, models.Saturday, "12:00")

	if _, err := Classify(clock, models.Saturday, "25:00", "26:00"); err == nil {
		t.Error("expected error for out-of-range hour")
	}
	if _, err := Classify(clock, models.Saturday, "1400", "1500"); err == nil {
		t.Error("expected error for missing colon")
	}
	if _, err := Classify(clock, models.Saturday, "15:00", "14:00"); err == nil {
		t.Error("expected error for end before start")
	}
	if _, err := Classify(clock, "Monday", "14:00", "15:00"); err == nil {
		t.Error("expected error for non-weekend day")
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name    string
		nowTime string
		want    int
	}{
		{"at start", "14:00", 0},
		{"quarter in", "14:15", 25},
		{"half way", "14:30", 50},
		{"one minute left", "14:59", 98},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := weekendClock(t, models.Saturday, tt.nowTime)
			pct, err := Progress(clock, models.Saturday, "14:00", "15:00")
			if err != nil {
				t.Fatalf("Progress: %v", err)
			}
			if pct != tt.want {
				t.Errorf("Progress = %d, want %d", pct, tt.want)
			}
		})
	}
}

func TestProgressClamped(t *testing.T) {
	early := weekendClock(t, models.Saturday, "10:00")
	pct, err := Progress(early, models.Saturday, "14:00", "15:00")
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if pct != 0 {
		t.Errorf("progress before start = %d, want 0", pct)
	}

	late := weekendClock(t, models.Sunday, "10:00")
	pct, err = Progress(late, models.Saturday, "14:00", "15:00")
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if pct != 100 {
		t.Errorf("progress after end = %d, want 100", pct)
	}
}

func TestClassifySession(t *testing.T) {
	s := &models.Session{
		Name:      "Qualifying",
		Day:       models.Saturday,
		StartTime: "15:00",
		EndTime:   "16:00",
		Type:      models.SessionQualifying,
	}

	clock := weekendClock(t, models.Saturday, "15:45")
	status, pct, err := ClassifySession(clock, s)
	if err != nil {
		t.Fatalf("ClassifySession: %v", err)
	}
	if status != StatusLive {
		t.Errorf("status = %s, want %s", status, StatusLive)
	}
	if pct != 75 {
		t.Errorf("progress = %d, want 75", pct)
	}

	clock = weekendClock(t, models.Saturday, "10:00")
	status, pct, err = ClassifySession(clock, s)
	if err != nil {
		t.Fatalf("ClassifySession: %v", err)
	}
	if status != StatusUpcoming || pct != 0 {
		t.Errorf("got (%s, %d), want (%s, 0)", status, pct, StatusUpcoming)
	}
}

func TestNewClockNormalizesZone(t *testing.T) {
	race := &models.Race{
		Timezone: "UTC",
		FirstDay: time.Date(2026, 3, 5, 11, 30, 0, 0, time.UTC), // non-midnight anchor
	}
	clock := NewClock(race, time.Date(2026, 3, 7, 14, 0, 0, 0, time.UTC))

	if clock.FirstDay.Hour() != 0 || clock.FirstDay.Minute() != 0 {
		t.Errorf("FirstDay not normalized to midnight: %v", clock.FirstDay)
	}
	status, err := Classify(clock, models.Saturday, "13:00", "15:00")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if status != StatusLive {
		t.Errorf("status = %s, want %s", status, StatusLive)
	}
}
