// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/adinterest/internal/metrics"
	"github.com/tomtom215/adinterest/internal/models"
)

// redisKeyPrefix namespaces prediction keys in a shared Redis.
const redisKeyPrefix = "adinterest:prediction:"

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// RedisPredictionCache stores predictions in Redis so several instances can
// share them. Every call goes through a circuit breaker; while Redis is
// unreachable lookups are misses and writes are dropped.
type RedisPredictionCache struct {
	client redis.UniversalClient
	cb     *gobreaker.CircuitBreaker[[]byte]
	ttl    time.Duration
	name   string
	logger zerolog.Logger
}

// NewRedisPredictionCache connects lazily to the Redis at cfg.Addr.
//
//nolint:gocritic // logger passed by value per zerolog convention
func NewRedisPredictionCache(cfg RedisConfig, ttl time.Duration, logger zerolog.Logger) (*RedisPredictionCache, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})
	return NewRedisPredictionCacheWithClient(client, ttl, logger), nil
}

// NewRedisPredictionCacheWithClient wraps an existing client.
//
//nolint:gocritic // logger passed by value per zerolog convention
func NewRedisPredictionCacheWithClient(client redis.UniversalClient, ttl time.Duration, logger zerolog.Logger) *RedisPredictionCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	name := "redis-prediction-cache"
	log := logger.With().Str("component", "prediction_cache").Str("backend", "redis").Logger()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,                // Allow 3 requests in half-open state
		Interval:    time.Minute,      // Reset counts after 1 minute in closed state
		Timeout:     30 * time.Second, // Wait before probing Redis again

		// A cache should stop hammering a dead Redis quickly.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &RedisPredictionCache{
		client: client,
		cb:     cb,
		ttl:    ttl,
		name:   name,
		logger: log,
	}
}

func (c *RedisPredictionCache) key(userID string) string {
	return redisKeyPrefix + userID
}

// execute runs fn through the breaker and records the outcome.
func (c *RedisPredictionCache) execute(op string, fn func() ([]byte, error)) ([]byte, error) {
	result, err := c.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
			c.logger.Debug().Err(err).Str("op", op).Msg("Redis cache operation failed")
		}
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	return result, nil
}

// Get implements PredictionCache.
func (c *RedisPredictionCache) Get(ctx context.Context, userID string) (*models.Prediction, bool) {
	data, err := c.execute("get", func() ([]byte, error) {
		b, err := c.client.Get(ctx, c.key(userID)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil // a miss is not a failure
		}
		return b, err
	})
	if err != nil || data == nil {
		return nil, false
	}

	var p models.Prediction
	if err := json.Unmarshal(data, &p); err != nil {
		c.logger.Warn().Err(err).Str("user_id", userID).Msg("Discarding undecodable cached prediction")
		c.Delete(ctx, userID)
		return nil, false
	}
	return &p, true
}

// Set implements PredictionCache.
func (c *RedisPredictionCache) Set(ctx context.Context, prediction *models.Prediction) {
	if prediction == nil {
		return
	}
	data, err := json.Marshal(prediction)
	if err != nil {
		c.logger.Warn().Err(err).Str("user_id", prediction.UserID).Msg("Failed to encode prediction for cache")
		return
	}
	//nolint:errcheck // failures are recorded by execute and degrade to a miss
	c.execute("set", func() ([]byte, error) {
		return nil, c.client.Set(ctx, c.key(prediction.UserID), data, c.ttl).Err()
	})
}

// Delete implements PredictionCache.
func (c *RedisPredictionCache) Delete(ctx context.Context, userID string) {
	//nolint:errcheck // failures are recorded by execute
	c.execute("delete", func() ([]byte, error) {
		return nil, c.client.Del(ctx, c.key(userID)).Err()
	})
}

// Clear implements PredictionCache. Only keys under the prediction prefix are removed.
func (c *RedisPredictionCache) Clear(ctx context.Context) {
	_, err := c.execute("clear", func() ([]byte, error) {
		var cursor uint64
		for {
			keys, next, err := c.client.Scan(ctx, cursor, redisKeyPrefix+"*", 500).Result()
			if err != nil {
				return nil, fmt.Errorf("scan prediction keys: %w", err)
			}
			if len(keys) > 0 {
				if err := c.client.Del(ctx, keys...).Err(); err != nil {
					return nil, fmt.Errorf("delete prediction keys: %w", err)
				}
			}
			if next == 0 {
				return nil, nil
			}
			cursor = next
		}
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to clear prediction cache")
	}
}

// Ping checks Redis connectivity.
func (c *RedisPredictionCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// State returns the circuit breaker state.
func (c *RedisPredictionCache) State() gobreaker.State {
	return c.cb.State()
}

// Close closes the Redis client.
func (c *RedisPredictionCache) Close() error {
	return c.client.Close()
}

// stateToFloat converts circuit breaker state to float for Prometheus metrics
// 0 = closed, 1 = half-open, 2 = open
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
