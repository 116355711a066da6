// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

// Package config defines the application configuration and loads it with
// Koanf v2 from layered sources: built-in defaults, an optional YAML file,
// and environment variables (highest priority).
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Cache      CacheConfig      `koanf:"cache"`
	Generation GenerationConfig `koanf:"generation"`
	Itinerary  ItineraryConfig  `koanf:"itinerary"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// RateLimitReqs requests per RateLimitWindow per client IP.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file path; ":memory:" for an in-memory database.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`

	// Threads for the DuckDB engine; 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`

	// SeedFixtures loads the built-in demo race on startup when the
	// database is empty.
	SeedFixtures bool `koanf:"seed_fixtures"`
}

// CacheConfig holds schedule catalog cache settings.
type CacheConfig struct {
	// Enabled controls whether the read-through cache is active. The
	// application is correct with the cache disabled, only slower.
	Enabled bool          `koanf:"enabled"`
	TTL     time.Duration `koanf:"ttl"`
}

// GenerationConfig holds text-generation backend settings.
type GenerationConfig struct {
	// BaseURL of an OpenAI-compatible chat completions endpoint.
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`

	// Timeout bounds a single backend call; the backend may otherwise hang
	// indefinitely.
	Timeout    time.Duration `koanf:"timeout"`
	MaxRetries int           `koanf:"max_retries"`
}

// ItineraryConfig holds synthesis settings.
type ItineraryConfig struct {
	// MaxExperiences caps the experience list embedded in a generation
	// prompt so prompt size stays bounded as the catalog grows.
	MaxExperiences int `koanf:"max_experiences"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults. These are applied first, then
// overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8460,
			Timeout:         30 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Database: DatabaseConfig{
			Path:         "/data/apextrip.duckdb",
			MaxMemory:    "1GB",
			Threads:      0,
			SeedFixtures: false,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Generation: GenerationConfig{
			BaseURL:    "https://api.openai.com/v1/chat/completions",
			APIKey:     "",
			Model:      "gpt-4o-mini",
			Timeout:    60 * time.Second,
			MaxRetries: 2,
		},
		Itinerary: ItineraryConfig{
			MaxExperiences: 25,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
	}
	if c.Generation.BaseURL == "" {
		return fmt.Errorf("generation.base_url must not be empty")
	}
	if c.Generation.Model == "" {
		return fmt.Errorf("generation.model must not be empty")
	}
	if c.Generation.Timeout <= 0 {
		return fmt.Errorf("generation.timeout must be positive, got %v", c.Generation.Timeout)
	}
	if c.Generation.MaxRetries < 0 {
		return fmt.Errorf("generation.max_retries must be non-negative, got %d", c.Generation.MaxRetries)
	}
	if c.Itinerary.MaxExperiences < 1 {
		return fmt.Errorf("itinerary.max_experiences must be positive, got %d", c.Itinerary.MaxExperiences)
	}
	return nil
}
