// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package genai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/apextrip/apextrip/internal/config"
)

func newTestClient(serverURL string, maxRetries int) *OpenAIClient {
	return NewOpenAIClient(&config.GenerationConfig{
		BaseURL:    serverURL,
		APIKey:     "test-key",
		Model:      "test-model",
		Timeout:    5 * time.Second,
		MaxRetries: maxRetries,
	})
}

func TestOpenAIClientGenerate(t *testing.T) {
	var gotAuth, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"content": "itinerary text"}, "finish_reason": "stop"}],
			"usage": {"total_tokens": 420}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	text, err := client.Generate(context.Background(), "you are a planner", "plan my weekend")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if text != "itinerary text" {
		t.Errorf("Generate() = %q, want %q", text, "itinerary text")
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization header = %q, want bearer token", gotAuth)
	}
	if !strings.Contains(gotBody, `"role":"system"`) || !strings.Contains(gotBody, `"role":"user"`) {
		t.Errorf("request body missing system/user messages: %s", gotBody)
	}
	if !strings.Contains(gotBody, `"model":"test-model"`) {
		t.Errorf("request body missing model: %s", gotBody)
	}
}

func TestOpenAIClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2)
	text, err := client.Generate(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("Generate() error after retries: %v", err)
	}
	if text != "ok" {
		t.Errorf("Generate() = %q, want %q", text, "ok")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("backend calls = %d, want 3", got)
	}
}

func TestOpenAIClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "bad key", "type": "auth"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	_, err := client.Generate(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("Generate() expected error for 401")
	}
	if !strings.Contains(err.Error(), "bad key") {
		t.Errorf("error %q missing backend message", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("backend calls = %d, want 1 (401 must not retry)", got)
	}
}

func TestOpenAIClientEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	if _, err := client.Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("Generate() expected error for empty choices")
	}
}

// fakeGenerator returns canned output or a fixed error.
type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	return f.text, f.err
}

func (f *fakeGenerator) Model() string { return "fake-model" }

func TestBreakerGeneratorPassesThrough(t *testing.T) {
	bg := NewBreakerGenerator(&fakeGenerator{text: "hello"})

	text, err := bg.Generate(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if text != "hello" {
		t.Errorf("Generate() = %q, want %q", text, "hello")
	}
	if bg.Model() != "fake-model" {
		t.Errorf("Model() = %q, want fake-model", bg.Model())
	}
}

func TestBreakerGeneratorOpensOnFailures(t *testing.T) {
	backendErr := errors.New("backend down")
	bg := NewBreakerGenerator(&fakeGenerator{err: backendErr})

	// Trip threshold: 60% failure rate over at least 5 requests.
	var lastErr error
	for i := 0; i < 10; i++ {
		_, lastErr = bg.Generate(context.Background(), "s", "u")
	}
	if !errors.Is(lastErr, ErrBackendUnavailable) {
		t.Fatalf("error after repeated failures = %v, want ErrBackendUnavailable", lastErr)
	}
}
