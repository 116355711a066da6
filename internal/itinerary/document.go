// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package itinerary

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/apextrip/apextrip/internal/models"
	"github.com/apextrip/apextrip/internal/timing"
)

// generatedDocument is the untrusted intermediate shape decoded from backend
// output before validation.
type generatedDocument struct {
	Title   string         `json:"title"`
	Summary string         `json:"summary"`
	Days    []generatedDay `json:"days"`
}

type generatedDay struct {
	Date  string          `json:"date"`
	Day   string          `json:"day"`
	Slots []generatedSlot `json:"slots"`
}

type generatedSlot struct {
	Type          string   `json:"type"`
	Name          string   `json:"name"`
	Series        string   `json:"series"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	WindowLabel   string   `json:"window_label"`
	ExperienceIDs []string `json:"experience_ids"`
	ExperienceID  string   `json:"experience_id"`
	Note          string   `json:"note"`
}

// decodeDocument parses extracted JSON and validates it into itinerary days.
// Validation is strict: a slot with an unknown tag or a missing required
// field fails the whole document rather than being repaired with defaults.
// An itinerary with an invented session time is a correctness risk, not a
// cosmetic one.
//
// Days must cover arrival through departure in order. The backend's day
// labels are checked against the expected sequence; the calendar dates are
// taken from the race record, which is authoritative, not from the backend.
func decodeDocument(jsonText string, race *models.Race, arrival, departure models.RaceDay) (*generatedDocument, []models.ItineraryDay, error) {
	var doc generatedDocument
	if err := json.Unmarshal([]byte(jsonText), &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if doc.Title == "" {
		return nil, nil, fmt.Errorf("%w: missing title", ErrMalformedResponse)
	}
	if doc.Summary == "" {
		return nil, nil, fmt.Errorf("%w: missing summary", ErrMalformedResponse)
	}
	if len(doc.Days) == 0 {
		return nil, nil, fmt.Errorf("%w: empty days list", ErrMalformedResponse)
	}

	expected := models.RaceDays[arrival.Index() : departure.Index()+1]
	if len(doc.Days) != len(expected) {
		return nil, nil, fmt.Errorf("%w: got %d days, want %d (%s through %s)",
			ErrMalformedResponse, len(doc.Days), len(expected), arrival, departure)
	}

	days := make([]models.ItineraryDay, len(doc.Days))
	for i, d := range doc.Days {
		if d.Day != string(expected[i]) {
			return nil, nil, fmt.Errorf("%w: day %d is %q, want %q",
				ErrMalformedResponse, i, d.Day, expected[i])
		}

		slots := make([]models.Slot, 0, len(d.Slots))
		for j, s := range d.Slots {
			slot, err := validateSlot(s)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: day %s slot %d: %v",
					ErrMalformedResponse, d.Day, j, err)
			}
			slots = append(slots, slot)
		}

		days[i] = models.ItineraryDay{
			Date:  race.DateOf(expected[i]).Format("2006-01-02"),
			Day:   string(expected[i]),
			Slots: slots,
		}
	}

	return &doc, days, nil
}

// validateSlot converts one untrusted slot into the tagged model variant,
// enforcing the required fields per tag.
func validateSlot(s generatedSlot) (models.Slot, error) {
	switch models.SlotType(s.Type) {
	case models.SlotSession:
		if s.Name == "" {
			return models.Slot{}, fmt.Errorf("session slot missing name")
		}
		if err := checkWallClock(s.StartTime); err != nil {
			return models.Slot{}, fmt.Errorf("session slot start: %v", err)
		}
		if err := checkWallClock(s.EndTime); err != nil {
			return models.Slot{}, fmt.Errorf("session slot end: %v", err)
		}
		return models.Slot{
			Type:      models.SlotSession,
			Name:      s.Name,
			Series:    s.Series,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		}, nil

	case models.SlotGap:
		if s.WindowLabel == "" {
			return models.Slot{}, fmt.Errorf("gap slot missing window_label")
		}
		return models.Slot{
			Type:          models.SlotGap,
			WindowLabel:   s.WindowLabel,
			ExperienceIDs: s.ExperienceIDs,
		}, nil

	case models.SlotExperience:
		if s.ExperienceID == "" {
			return models.Slot{}, fmt.Errorf("experience slot missing experience_id")
		}
		if s.StartTime != "" {
			if err := checkWallClock(s.StartTime); err != nil {
				return models.Slot{}, fmt.Errorf("experience slot start: %v", err)
			}
		}
		if s.EndTime != "" {
			if err := checkWallClock(s.EndTime); err != nil {
				return models.Slot{}, fmt.Errorf("experience slot end: %v", err)
			}
		}
		return models.Slot{
			Type:         models.SlotExperience,
			ExperienceID: s.ExperienceID,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			Note:         s.Note,
		}, nil

	default:
		return models.Slot{}, fmt.Errorf("unknown slot type %q", s.Type)
	}
}

func checkWallClock(hhmm string) error {
	_, _, err := timing.ParseWallClock(hhmm)
	return err
}
