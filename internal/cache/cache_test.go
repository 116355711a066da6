// Apextrip - Race Weekend Travel Companion and Itinerary Engine
// Copyright 2026 Apextrip Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/apextrip/apextrip

package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("key", "value")
	got, ok := c.Get("key")
	if !ok {
		t.Fatal("expected hit for fresh entry")
	}
	if got.(string) != "value" {
		t.Errorf("got %v, want value", got)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestCacheExpiration(t *testing.T) {
	c := New(time.Minute)

	c.SetWithTTL("short", 42, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expected expired entry to miss")
	}

	s := c.Stats()
	if s.Evictions == 0 {
		t.Error("expected expired read to count as eviction")
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted key still present")
	}

	c.Clear()
	if _, ok := c.Get("b"); ok {
		t.Error("cleared key still present")
	}
	if total := c.Stats().TotalKeys; total != 0 {
		t.Errorf("TotalKeys = %d after Clear, want 0", total)
	}
}

func TestCacheStats(t *testing.T) {
	c := New(time.Minute)

	c.Set("k", "v")
	c.Get("k")
	c.Get("k")
	c.Get("nope")

	s := c.Stats()
	if s.Hits != 2 {
		t.Errorf("Hits = %d, want 2", s.Hits)
	}
	if s.Misses != 1 {
		t.Errorf("Misses = %d, want 1", s.Misses)
	}
	if rate := c.HitRate(); rate < 66 || rate > 67 {
		t.Errorf("HitRate = %f, want ~66.7", rate)
	}
}

func TestGenerateKeyStable(t *testing.T) {
	type params struct {
		Race string
		Day  string
	}

	k1 := GenerateKey("sessions", params{Race: "melbourne-2026", Day: "Saturday"})
	k2 := GenerateKey("sessions", params{Race: "melbourne-2026", Day: "Saturday"})
	k3 := GenerateKey("sessions", params{Race: "melbourne-2026", Day: "Sunday"})

	if k1 != k2 {
		t.Error("identical params produced different keys")
	}
	if k1 == k3 {
		t.Error("different params produced identical keys")
	}
}

func TestNoopAlwaysMisses(t *testing.T) {
	var c Cacher = Noop{}

	c.Set("key", "value")
	if _, ok := c.Get("key"); ok {
		t.Error("noop cache returned a hit")
	}
	c.SetWithTTL("key", "value", time.Hour)
	if _, ok := c.Get("key"); ok {
		t.Error("noop cache returned a hit after SetWithTTL")
	}
}
