// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/apextrip/apextrip/internal/logging"
)

// errorResponse is the JSON envelope for all error replies.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string, details ...string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}
