// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/adinterest/internal/models"
)

func testPrediction(userID string) *models.Prediction {
	return &models.Prediction{
		UserID:          userID,
		PrimaryInterest: "tech",
		InterestScores:  map[string]float64{"tech": 0.8, "sports": 0.2},
		Confidence:      0.8,
		Timestamp:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ModelVersion:    "1.0.0",
	}
}

func TestMemoryPredictionCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPredictionCache(10, time.Minute)

	if _, ok := c.Get(ctx, "alice"); ok {
		t.Fatal("Get() on empty cache should miss")
	}

	p := testPrediction("alice")
	c.Set(ctx, p)

	// Caller mutations must not reach the cached copy.
	p.InterestScores["tech"] = 0

	got, ok := c.Get(ctx, "alice")
	if !ok {
		t.Fatal("Get() should hit after Set()")
	}
	if got.InterestScores["tech"] != 0.8 {
		t.Errorf("cached scores = %v, want tech 0.8", got.InterestScores)
	}

	got.PrimaryInterest = "food"
	again, _ := c.Get(ctx, "alice")
	if again.PrimaryInterest != "tech" {
		t.Errorf("PrimaryInterest = %q, returned copies must be independent", again.PrimaryInterest)
	}

	c.Delete(ctx, "alice")
	if _, ok := c.Get(ctx, "alice"); ok {
		t.Error("Get() should miss after Delete()")
	}

	c.Set(ctx, testPrediction("bob"))
	c.Set(ctx, nil)
	c.Clear(ctx)
	if _, ok := c.Get(ctx, "bob"); ok {
		t.Error("Get() should miss after Clear()")
	}

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 3 {
		t.Errorf("Stats() = %+v, want 2 hits and 3 misses", stats)
	}
}

func TestNewPredictionCache(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", Config{}, false},
		{"memory", Config{Backend: BackendMemory, Capacity: 5, TTL: time.Second}, false},
		{"none", Config{Backend: BackendNone}, false},
		{"redis", Config{Backend: BackendRedis, Redis: RedisConfig{Addr: "127.0.0.1:6379"}}, false},
		{"redis without addr", Config{Backend: BackendRedis}, true},
		{"unknown", Config{Backend: "memcached"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewPredictionCache(tt.cfg, zerolog.Nop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewPredictionCache() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && c == nil {
				t.Error("NewPredictionCache() returned nil cache")
			}
			if rc, ok := c.(*RedisPredictionCache); ok {
				rc.Close()
			}
		})
	}
}

func TestNopPredictionCache(t *testing.T) {
	ctx := context.Background()
	var c PredictionCache = NopPredictionCache{}
	c.Set(ctx, testPrediction("alice"))
	if _, ok := c.Get(ctx, "alice"); ok {
		t.Error("NopPredictionCache should never hit")
	}
	c.Delete(ctx, "alice")
	c.Clear(ctx)
}

func TestRedisPredictionCache_DegradesWhenUnreachable(t *testing.T) {
	ctx := context.Background()

	// Nothing listens on port 1; every call fails fast.
	c, err := NewRedisPredictionCache(RedisConfig{Addr: "127.0.0.1:1", Timeout: 50 * time.Millisecond}, time.Minute, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRedisPredictionCache() error = %v", err)
	}
	defer c.Close()

	if _, ok := c.Get(ctx, "alice"); ok {
		t.Error("Get() should miss when Redis is unreachable")
	}

	for i := 0; i < 5; i++ {
		c.Set(ctx, testPrediction("alice"))
	}
	if c.State() != gobreaker.StateOpen {
		t.Errorf("breaker state = %v, want open after repeated failures", c.State())
	}

	// With the breaker open calls are rejected without touching Redis.
	if _, ok := c.Get(ctx, "alice"); ok {
		t.Error("Get() should miss while the breaker is open")
	}
	c.Delete(ctx, "alice")
	c.Clear(ctx)
}

func TestStateToFloat(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		want  float64
	}{
		{gobreaker.StateClosed, 0},
		{gobreaker.StateHalfOpen, 1},
		{gobreaker.StateOpen, 2},
		{gobreaker.State(42), -1},
	}
	for _, tt := range tests {
		if got := stateToFloat(tt.state); got != tt.want {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}
