// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

// Package models defines the domain types shared across the application:
// races and their on-track sessions, free-time experience windows, bookable
// experiences, and synthesized itineraries.
//
// The types here are plain data carriers. Temporal classification lives in
// the timing package, persistence in the database package, and itinerary
// construction and validation in the itinerary package.
package models
