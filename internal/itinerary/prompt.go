// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package itinerary

import (
	"fmt"
	"strings"

	"github.com/apextrip/apextrip/internal/models"
)

// systemPrompt fixes the assistant's role and the output contract. The
// format requirements mirror what validateDocument enforces, so a compliant
// backend response always passes validation.
const systemPrompt = `You are a race-weekend travel planner. You build day-by-day itineraries for visitors attending a Formula 1 race weekend.

Rules:
- Respond with a single JSON object and nothing else. No prose, no code fences.
- The object has exactly these fields: "title" (string), "summary" (string), "days" (array).
- Each day has "date" ("YYYY-MM-DD"), "day" (weekday name), "slots" (array).
- Each slot has a "type" of "session", "gap", or "experience".
- A "session" slot requires "name", "series", "start_time" and "end_time" ("HH:MM").
- A "gap" slot requires "window_label" and "experience_ids" (array of ids drawn from the provided experiences).
- An "experience" slot requires "experience_id"; "start_time", "end_time" and "note" are optional.
- Every on-track session listed for a day the visitor attends MUST appear as a session slot with its exact times. Never invent, move, or drop a session.
- Only recommend experiences from the provided list, referenced by id.
- Include every day from arrival to departure, in order, even if a day has no slots.`

// buildUserPrompt renders the visitor's stay and the race's schedule data
// into the structured textual form the backend plans against.
func buildUserPrompt(race *models.Race, req *models.ItineraryRequest,
	sessions []models.Session, windows []models.ExperienceWindow,
	experiences []models.Experience) string {

	var b strings.Builder

	fmt.Fprintf(&b, "Race: %s at %s, %s.\n", race.Name, race.Circuit, race.Location)
	fmt.Fprintf(&b, "Visitor: arriving %s, departing %s", req.Arrival, req.Departure)
	groupSize := req.GroupSize
	if groupSize < 1 {
		groupSize = 1
	}
	fmt.Fprintf(&b, ", group of %d.\n", groupSize)
	fmt.Fprintf(&b, "Interests: %s.\n", strings.Join(req.Interests, ", "))
	if req.Note != "" {
		fmt.Fprintf(&b, "Special request: %s\n", req.Note)
	}

	b.WriteString("\nDay dates:\n")
	for idx := req.Arrival.Index(); idx <= req.Departure.Index(); idx++ {
		day := models.RaceDays[idx]
		fmt.Fprintf(&b, "- %s: %s\n", day, race.DateOf(day).Format("2006-01-02"))
	}

	b.WriteString("\nOn-track sessions (fixed, local time):\n")
	for _, s := range sessions {
		fmt.Fprintf(&b, "- %s %s-%s: %s (%s, %s)\n",
			s.Day, s.StartTime, s.EndTime, s.Name, s.Code, s.Type)
	}

	b.WriteString("\nFree-time windows:\n")
	for _, w := range windows {
		fmt.Fprintf(&b, "- %s", w.Day)
		if w.StartTime != "" && w.EndTime != "" {
			fmt.Fprintf(&b, " %s-%s", w.StartTime, w.EndTime)
		} else {
			b.WriteString(" (open)")
		}
		fmt.Fprintf(&b, ": %s", w.Label)
		if w.MaxDurationHours > 0 {
			fmt.Fprintf(&b, " (activities up to %.1f hours)", w.MaxDurationHours)
		}
		if w.Guidance != "" {
			fmt.Fprintf(&b, " - %s", w.Guidance)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nBookable experiences (reference by id):\n")
	for _, e := range experiences {
		fmt.Fprintf(&b, "- id=%s [%s] %s", e.ID, e.Category, e.Title)
		if e.Duration != "" {
			fmt.Fprintf(&b, ", %s", e.Duration)
		}
		if e.Price != "" {
			fmt.Fprintf(&b, ", %s", e.Price)
		}
		if e.Rating > 0 {
			fmt.Fprintf(&b, ", rated %.1f", e.Rating)
		}
		if e.Summary != "" {
			fmt.Fprintf(&b, " - %s", e.Summary)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nBuild the itinerary JSON now.")
	return b.String()
}
