// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package config

import (
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"negative timeout", func(c *Config) { c.Server.Timeout = -time.Second }},
		{"empty db path", func(c *Config) { c.Database.Path = "" }},
		{"zero cache ttl", func(c *Config) { c.Cache.TTL = 0 }},
		{"empty generation url", func(c *Config) { c.Generation.BaseURL = "" }},
		{"empty model", func(c *Config) { c.Generation.Model = "" }},
		{"zero generation timeout", func(c *Config) { c.Generation.Timeout = 0 }},
		{"negative retries", func(c *Config) { c.Generation.MaxRetries = -1 }},
		{"zero experience cap", func(c *Config) { c.Itinerary.MaxExperiences = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"APEXTRIP_SERVER_PORT", "server.port"},
		{"APEXTRIP_SERVER_RATE_LIMIT_REQS", "server.rate_limit_reqs"},
		{"APEXTRIP_DATABASE_PATH", "database.path"},
		{"APEXTRIP_GENERATION_API_KEY", "generation.api_key"},
		{"APEXTRIP_CACHE_ENABLED", "cache.enabled"},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("APEXTRIP_SERVER_PORT", "9000")
	t.Setenv("APEXTRIP_CACHE_ENABLED", "false")
	t.Setenv("APEXTRIP_SERVER_CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled = true, want false")
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[0] != "https://a.example" {
		t.Errorf("CORSOrigins = %v, want two origins", cfg.Server.CORSOrigins)
	}
}
