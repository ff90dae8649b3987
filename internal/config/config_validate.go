// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package config

import (
	"fmt"
	"strings"
	"time"
)

var (
	validLogLevels       = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	validLogFormats      = map[string]bool{"json": true, "console": true}
	validEnvironments    = map[string]bool{"development": true, "staging": true, "production": true}
	validDatabaseBackend = map[string]bool{"badger": true, "memory": true}
	validCacheBackends   = map[string]bool{"memory": true, "redis": true, "none": true}
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateSecurity,
		c.validateDatabase,
		c.validateCache,
		c.validateClassifier,
		c.validateAds,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	// Production deployments must list explicit origins.
	if c.Server.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if strings.TrimSpace(origin) == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain '*' when ENVIRONMENT=production")
			}
		}
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000")
	}
	if c.Security.RateLimitWindow < time.Second {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if !validDatabaseBackend[c.Database.Backend] {
		return fmt.Errorf("DATABASE_BACKEND must be one of: badger, memory")
	}
	if c.Database.Backend == "badger" && c.Database.Path == "" {
		return fmt.Errorf("DATABASE_PATH is required when DATABASE_BACKEND=badger")
	}
	return nil
}

func (c *Config) validateCache() error {
	if !validCacheBackends[c.Cache.Backend] {
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, redis, none")
	}
	if c.Cache.Backend == "memory" && c.Cache.Capacity < 1 {
		return fmt.Errorf("CACHE_CAPACITY must be positive")
	}
	if c.Cache.Backend != "none" && c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
	}
	return nil
}

func (c *Config) validateClassifier() error {
	cl := c.Classifier
	switch {
	case cl.ModelPath == "":
		return fmt.Errorf("MODEL_PATH is required")
	case cl.NumTrees < 1:
		return fmt.Errorf("CLASSIFIER_NUM_TREES must be positive")
	case cl.MaxDepth < 0:
		return fmt.Errorf("CLASSIFIER_MAX_DEPTH must not be negative")
	case cl.MinSamplesSplit < 2:
		return fmt.Errorf("CLASSIFIER_MIN_SAMPLES_SPLIT must be at least 2")
	case cl.MinSamplesLeaf < 1:
		return fmt.Errorf("CLASSIFIER_MIN_SAMPLES_LEAF must be at least 1")
	case cl.TestFraction <= 0 || cl.TestFraction >= 1:
		return fmt.Errorf("CLASSIFIER_TEST_FRACTION must be between 0 and 1 exclusive")
	case cl.ModelVersion == "":
		return fmt.Errorf("MODEL_VERSION is required")
	case cl.RetrainInterval != 0 && cl.RetrainInterval < time.Minute:
		return fmt.Errorf("RETRAIN_INTERVAL must be 0 (disabled) or at least 1m")
	case cl.PredictHistoryLimit < 1 || cl.AnalyticsHistoryLimit < 1:
		return fmt.Errorf("PREDICT_HISTORY_LIMIT and ANALYTICS_HISTORY_LIMIT must be positive")
	}
	// The synthetic sample floor depends on the category count and is checked
	// by the classifier itself.
	return nil
}

func (c *Config) validateAds() error {
	if c.Ads.DefaultLimit < 1 {
		return fmt.Errorf("ADS_DEFAULT_LIMIT must be positive")
	}
	if c.Ads.MaxLimit < c.Ads.DefaultLimit {
		return fmt.Errorf("ADS_MAX_LIMIT must be at least ADS_DEFAULT_LIMIT")
	}
	if c.Ads.TrainRateLimit <= 0 {
		return fmt.Errorf("TRAIN_RATE_LIMIT must be positive")
	}
	return nil
}
