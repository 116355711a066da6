// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

// Command server runs the Apextrip API: race weekend schedules with live
// session classification plus AI-synthesized, deduplicated itineraries.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apextrip/apextrip/internal/api"
	"github.com/apextrip/apextrip/internal/cache"
	"github.com/apextrip/apextrip/internal/catalog"
	"github.com/apextrip/apextrip/internal/config"
	"github.com/apextrip/apextrip/internal/database"
	"github.com/apextrip/apextrip/internal/genai"
	"github.com/apextrip/apextrip/internal/itinerary"
	"github.com/apextrip/apextrip/internal/logging"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting apextrip server")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close database")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.SeedFixtures {
		if err := db.SeedFixtures(ctx); err != nil {
			return fmt.Errorf("failed to seed fixtures: %w", err)
		}
	}

	var cacher cache.Cacher = cache.Noop{}
	if cfg.Cache.Enabled {
		cacher = cache.New(cfg.Cache.TTL)
	} else {
		logging.Info().Msg("Schedule cache disabled")
	}

	cat := catalog.New(db, cacher)
	generator := genai.NewBreakerGenerator(genai.NewOpenAIClient(&cfg.Generation))
	synthesizer := itinerary.NewSynthesizer(cat, db, generator, cfg.Itinerary.MaxExperiences)
	handler := api.NewHandler(cat, synthesizer, db)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(&cfg.Server, handler),
		ReadHeaderTimeout: 10 * time.Second,
		// No WriteTimeout: itinerary synthesis legitimately outlives typical
		// write deadlines; the generation client enforces its own timeout.
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logging.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logging.Info().Msg("Shutdown complete")
	return nil
}
