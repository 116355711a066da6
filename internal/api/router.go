// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/apextrip/apextrip/internal/config"
	"github.com/apextrip/apextrip/internal/logging"
	"github.com/apextrip/apextrip/internal/metrics"
)

// NewRouter assembles the HTTP surface: global recovery/CORS middleware,
// per-IP rate limiting on the API routes, request metrics, health and
// Prometheus endpoints.
func NewRouter(cfg *config.ServerConfig, h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         86400,
	}))

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))

		r.Get("/races/{slug}/schedule", h.Schedule)
		r.Get("/races/{slug}/windows", h.Windows)
		r.Post("/itineraries", h.CreateItinerary)
		r.Get("/itineraries/{id}", h.GetItinerary)
	})

	return r
}

// requestLogger records one log line and the API metrics per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = r.URL.Path
		}
		metrics.RecordAPIRequest(r.Method, routePattern, ww.Status(), duration)

		logging.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", duration).
			Str("remote", r.RemoteAddr).
			Msg("Request handled")
	})
}
