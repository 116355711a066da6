// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package models

import "time"

// ItineraryRequest captures a visitor's inputs for itinerary synthesis.
// The normalized request (plus the race identity) is the sole idempotence
// key: two requests that normalize identically always resolve to the same
// stored itinerary.
type ItineraryRequest struct {
	RaceSlug  string  `json:"race_slug" validate:"required"`
	Arrival   RaceDay `json:"arrival" validate:"required,oneof=Thursday Friday Saturday Sunday"`
	Departure RaceDay `json:"departure" validate:"required,oneof=Thursday Friday Saturday Sunday"`

	// Interests is a non-empty set of tags ("food", "culture", ...). Order
	// is irrelevant; hashing normalizes it.
	Interests []string `json:"interests" validate:"required,min=1,dive,min=1,max=64"`

	// GroupSize defaults to 1 when omitted.
	GroupSize int `json:"group_size,omitempty" validate:"omitempty,min=1,max=50"`

	// Note is an optional free-text request ("travelling with kids").
	Note string `json:"note,omitempty" validate:"max=500"`
}

// SlotType tags the variant of an itinerary slot.
type SlotType string

// Slot variants.
const (
	// SlotSession is a fixed on-track session block.
	SlotSession SlotType = "session"
	// SlotGap is a free-time window with recommended experiences.
	SlotGap SlotType = "gap"
	// SlotExperience is a single booked or suggested activity.
	SlotExperience SlotType = "experience"
)

// Slot is one scheduled item within an itinerary day. It is a tagged
// variant: Type determines which fields are meaningful. The itinerary
// package validates that every slot decoded from generated output carries
// the required fields for its variant; nothing downstream inspects a slot
// without that guarantee.
type Slot struct {
	Type SlotType `json:"type"`

	// Session variant.
	Name   string `json:"name,omitempty"`
	Series string `json:"series,omitempty"`

	// Session and experience variants.
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`

	// Gap variant.
	WindowLabel   string   `json:"window_label,omitempty"`
	ExperienceIDs []string `json:"experience_ids,omitempty"`

	// Experience variant.
	ExperienceID string `json:"experience_id,omitempty"`
	Note         string `json:"note,omitempty"`
}

// ItineraryDay is one calendar day of a synthesized itinerary. Days with no
// qualifying sessions or windows still appear with an empty slot list so the
// presentation layer can render a placeholder instead of skipping the day.
type ItineraryDay struct {
	// Date is the calendar date in "2006-01-02" form.
	Date string `json:"date"`

	// Day is the weekend day label ("Saturday").
	Day string `json:"day"`

	Slots []Slot `json:"slots"`
}

// Itinerary is a synthesized day-by-day plan. Created once on cache miss and
// immutable afterwards except for the view counter.
type Itinerary struct {
	// ID is a short opaque identifier used in share URLs.
	ID string `json:"id"`

	Title   string         `json:"title"`
	Summary string         `json:"summary"`
	Days    []ItineraryDay `json:"days"`

	// PromptHash is the dedup key the itinerary was stored under.
	PromptHash string `json:"prompt_hash,omitempty"`

	// GeneratedBy records the backend model tag that produced the plan.
	GeneratedBy string `json:"generated_by,omitempty"`

	// Views counts reads; incremented best-effort on fetch-by-id.
	Views int64 `json:"views"`

	CreatedAt time.Time `json:"created_at"`
}
