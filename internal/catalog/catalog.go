// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

// Package catalog serves race-weekend schedule data through a read-through
// cache. The cache is best-effort: a miss, a type mismatch, or a Noop cache
// all fall through to the store, so results are identical with caching
// disabled.
package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/apextrip/apextrip/internal/cache"
	"github.com/apextrip/apextrip/internal/metrics"
	"github.com/apextrip/apextrip/internal/models"
)

// Store is the persistence surface the catalog reads from.
type Store interface {
	GetRaceBySlug(ctx context.Context, slug string) (*models.Race, error)
	GetSessions(ctx context.Context, raceID uuid.UUID) ([]models.Session, error)
	GetWindows(ctx context.Context, raceID uuid.UUID) ([]models.ExperienceWindow, error)
	GetWindowExperienceIDs(ctx context.Context, raceID uuid.UUID, windowSlug string) ([]uuid.UUID, error)
	GetTopExperiences(ctx context.Context, raceID uuid.UUID, limit int) ([]models.Experience, error)
}

// Catalog caches schedule reads in front of a Store. Schedule data only
// changes on reseed, so entries live for the cache's default TTL.
type Catalog struct {
	store Store
	cache cache.Cacher
}

// New creates a catalog backed by the given store and cache. Pass cache.Noop
// to disable caching.
func New(store Store, cacher cache.Cacher) *Catalog {
	return &Catalog{store: store, cache: cacher}
}

// GetRace resolves a race by slug.
func (c *Catalog) GetRace(ctx context.Context, slug string) (*models.Race, error) {
	key := cache.GenerateKey("catalog:race", slug)
	if cached, ok := c.cache.Get(key); ok {
		if race, ok := cached.(*models.Race); ok {
			metrics.CatalogCacheHits.WithLabelValues("race").Inc()
			return race, nil
		}
	}
	metrics.CatalogCacheMisses.WithLabelValues("race").Inc()

	race, err := c.store.GetRaceBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, race)
	return race, nil
}

// GetSessions returns a race's sessions in weekend order.
func (c *Catalog) GetSessions(ctx context.Context, raceID uuid.UUID) ([]models.Session, error) {
	key := cache.GenerateKey("catalog:sessions", raceID)
	if cached, ok := c.cache.Get(key); ok {
		if sessions, ok := cached.([]models.Session); ok {
			metrics.CatalogCacheHits.WithLabelValues("sessions").Inc()
			return sessions, nil
		}
	}
	metrics.CatalogCacheMisses.WithLabelValues("sessions").Inc()

	sessions, err := c.store.GetSessions(ctx, raceID)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, sessions)
	return sessions, nil
}

// GetWindows returns a race's experience windows in display order.
func (c *Catalog) GetWindows(ctx context.Context, raceID uuid.UUID) ([]models.ExperienceWindow, error) {
	key := cache.GenerateKey("catalog:windows", raceID)
	if cached, ok := c.cache.Get(key); ok {
		if windows, ok := cached.([]models.ExperienceWindow); ok {
			metrics.CatalogCacheHits.WithLabelValues("windows").Inc()
			return windows, nil
		}
	}
	metrics.CatalogCacheMisses.WithLabelValues("windows").Inc()

	windows, err := c.store.GetWindows(ctx, raceID)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, windows)
	return windows, nil
}

// GetWindowExperienceIDs returns the experiences attached to one window,
// most popular first. Unknown windows yield an empty slice.
func (c *Catalog) GetWindowExperienceIDs(ctx context.Context, raceID uuid.UUID, windowSlug string) ([]uuid.UUID, error) {
	key := cache.GenerateKey("catalog:window_experiences", struct {
		RaceID uuid.UUID `json:"race_id"`
		Slug   string    `json:"slug"`
	}{raceID, windowSlug})
	if cached, ok := c.cache.Get(key); ok {
		if ids, ok := cached.([]uuid.UUID); ok {
			metrics.CatalogCacheHits.WithLabelValues("window_experiences").Inc()
			return ids, nil
		}
	}
	metrics.CatalogCacheMisses.WithLabelValues("window_experiences").Inc()

	ids, err := c.store.GetWindowExperienceIDs(ctx, raceID, windowSlug)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, ids)
	return ids, nil
}

// GetTopExperiences returns up to limit experiences by descending popularity.
func (c *Catalog) GetTopExperiences(ctx context.Context, raceID uuid.UUID, limit int) ([]models.Experience, error) {
	key := cache.GenerateKey("catalog:experiences", struct {
		RaceID uuid.UUID `json:"race_id"`
		Limit  int       `json:"limit"`
	}{raceID, limit})
	if cached, ok := c.cache.Get(key); ok {
		if experiences, ok := cached.([]models.Experience); ok {
			metrics.CatalogCacheHits.WithLabelValues("experiences").Inc()
			return experiences, nil
		}
	}
	metrics.CatalogCacheMisses.WithLabelValues("experiences").Inc()

	experiences, err := c.store.GetTopExperiences(ctx, raceID, limit)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, experiences)
	return experiences, nil
}

// Invalidate drops all cached entries, for use after a reseed.
func (c *Catalog) Invalidate() {
	c.cache.Clear()
}
