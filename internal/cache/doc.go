// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

/*
Package cache keeps each user's current prediction close to the request path.

# Backends

PredictionCache has three implementations, selected by Config.Backend:

  - memory: MemoryPredictionCache, a generic LRU with TTL (default)
  - redis: RedisPredictionCache, shared between instances, wrapped in a
    sony/gobreaker circuit breaker so a Redis outage degrades to cache misses
  - none: NopPredictionCache

The store remains the source of truth. A miss falls through to the stored
prediction, and training clears the cache because predictions from the
previous model are stale.

# Usage Example

	c, err := cache.NewPredictionCache(cache.Config{
	    Backend:  cache.BackendMemory,
	    Capacity: 10000,
	    TTL:      10 * time.Minute,
	}, logger)
	if err != nil {
	    return err
	}

	c.Set(ctx, prediction)
	if p, ok := c.Get(ctx, userID); ok {
	    // serve p
	}

# Thread Safety

All implementations are safe for concurrent use.
*/
package cache
