// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package database

import (
	"context"
	"fmt"
)

// createTables creates the schema if it does not exist. Reference tables are
// populated by seeding; itineraries accumulate at runtime.
func (db *DB) createTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*queryTimeout)
	defer cancel()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS races (
			id UUID PRIMARY KEY,
			slug VARCHAR NOT NULL UNIQUE,
			name VARCHAR NOT NULL,
			circuit VARCHAR NOT NULL,
			location VARCHAR NOT NULL,
			timezone VARCHAR NOT NULL,
			first_day DATE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			race_id UUID NOT NULL,
			name VARCHAR NOT NULL,
			code VARCHAR NOT NULL,
			day VARCHAR NOT NULL,
			start_time VARCHAR NOT NULL,
			end_time VARCHAR NOT NULL,
			type VARCHAR NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS experience_windows (
			id UUID PRIMARY KEY,
			race_id UUID NOT NULL,
			slug VARCHAR NOT NULL,
			label VARCHAR NOT NULL,
			day VARCHAR NOT NULL,
			start_time VARCHAR,
			end_time VARCHAR,
			max_duration_hours DOUBLE,
			guidance VARCHAR,
			sort_order INTEGER NOT NULL DEFAULT 0,
			UNIQUE (race_id, slug)
		)`,
		`CREATE TABLE IF NOT EXISTS experiences (
			id UUID PRIMARY KEY,
			race_id UUID NOT NULL,
			title VARCHAR NOT NULL,
			category VARCHAR NOT NULL,
			duration VARCHAR,
			price VARCHAR,
			rating DOUBLE,
			summary VARCHAR,
			popularity DOUBLE NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS window_experiences (
			experience_id UUID NOT NULL,
			window_id UUID NOT NULL,
			PRIMARY KEY (experience_id, window_id)
		)`,
		`CREATE TABLE IF NOT EXISTS itineraries (
			id VARCHAR PRIMARY KEY,
			race_id UUID NOT NULL,
			prompt_hash VARCHAR NOT NULL UNIQUE,
			arrival VARCHAR NOT NULL,
			departure VARCHAR NOT NULL,
			interests VARCHAR NOT NULL,
			group_size INTEGER NOT NULL DEFAULT 1,
			note VARCHAR,
			generated_by VARCHAR NOT NULL,
			document VARCHAR NOT NULL,
			views BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_sessions_race ON sessions (race_id)`,
		`CREATE INDEX IF NOT EXISTS idx_windows_race ON experience_windows (race_id)`,
		`CREATE INDEX IF NOT EXISTS idx_experiences_race ON experiences (race_id)`,
		`CREATE INDEX IF NOT EXISTS idx_itineraries_hash ON itineraries (prompt_hash)`,
	}
	for _, stmt := range indexes {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
