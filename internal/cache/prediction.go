// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/adinterest/internal/models"
)

// Stats reports cache effectiveness.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// HitRate returns hits as a percentage of lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// PredictionCache holds the latest prediction per user in front of the store.
// Implementations never fail a caller: backend errors are treated as misses.
type PredictionCache interface {
	// Get returns a copy of the cached prediction for userID.
	Get(ctx context.Context, userID string) (*models.Prediction, bool)

	// Set caches a copy of prediction under its user ID.
	Set(ctx context.Context, prediction *models.Prediction)

	// Delete drops the user's entry.
	Delete(ctx context.Context, userID string)

	// Clear drops every entry. Called after the model is retrained.
	Clear(ctx context.Context)
}

// Backend names accepted by NewPredictionCache.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Config selects and configures a PredictionCache.
type Config struct {
	Backend  string
	Capacity int
	TTL      time.Duration
	Redis    RedisConfig
}

// NewPredictionCache builds the cache named by cfg.Backend.
//
//nolint:gocritic // logger passed by value per zerolog convention
func NewPredictionCache(cfg Config, logger zerolog.Logger) (PredictionCache, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryPredictionCache(cfg.Capacity, cfg.TTL), nil
	case BackendRedis:
		c, err := NewRedisPredictionCache(cfg.Redis, cfg.TTL, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NopPredictionCache{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// MemoryPredictionCache is an in-process PredictionCache backed by an LRU.
type MemoryPredictionCache struct {
	lru *LRU[*models.Prediction]
}

// NewMemoryPredictionCache creates an LRU-backed prediction cache.
func NewMemoryPredictionCache(capacity int, ttl time.Duration) *MemoryPredictionCache {
	return &MemoryPredictionCache{lru: NewLRU[*models.Prediction](capacity, ttl)}
}

// Get implements PredictionCache.
func (c *MemoryPredictionCache) Get(_ context.Context, userID string) (*models.Prediction, bool) {
	p, ok := c.lru.Get(userID)
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Set implements PredictionCache.
func (c *MemoryPredictionCache) Set(_ context.Context, prediction *models.Prediction) {
	if prediction == nil {
		return
	}
	c.lru.Set(prediction.UserID, prediction.Clone())
}

// Delete implements PredictionCache.
func (c *MemoryPredictionCache) Delete(_ context.Context, userID string) {
	c.lru.Delete(userID)
}

// Clear implements PredictionCache.
func (c *MemoryPredictionCache) Clear(_ context.Context) {
	c.lru.Clear()
}

// Stats returns the underlying LRU statistics.
func (c *MemoryPredictionCache) Stats() Stats {
	return c.lru.Stats()
}

// NopPredictionCache caches nothing.
type NopPredictionCache struct{}

// Get implements PredictionCache.
func (NopPredictionCache) Get(context.Context, string) (*models.Prediction, bool) { return nil, false }

// Set implements PredictionCache.
func (NopPredictionCache) Set(context.Context, *models.Prediction) {}

// Delete implements PredictionCache.
func (NopPredictionCache) Delete(context.Context, string) {}

// Clear implements PredictionCache.
func (NopPredictionCache) Clear(context.Context) {}

// Verify interface implementations at compile time
var (
	_ PredictionCache = (*MemoryPredictionCache)(nil)
	_ PredictionCache = (*RedisPredictionCache)(nil)
	_ PredictionCache = NopPredictionCache{}
)
