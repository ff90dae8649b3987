// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Security   SecurityConfig   `koanf:"security"`
	Database   DatabaseConfig   `koanf:"database"`
	Cache      CacheConfig      `koanf:"cache"`
	Classifier ClassifierConfig `koanf:"classifier"`
	Ads        AdsConfig        `koanf:"ads"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// SecurityConfig holds CORS and rate limiting settings. There is no
// authentication layer.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// DatabaseConfig selects the persistence backend.
type DatabaseConfig struct {
	// Backend is "badger" (durable) or "memory".
	Backend    string `koanf:"backend"`
	Path       string `koanf:"path"`
	SyncWrites bool   `koanf:"sync_writes"`
}

// CacheConfig configures the prediction cache.
type CacheConfig struct {
	// Backend is "memory", "redis" or "none".
	Backend  string        `koanf:"backend"`
	Capacity int           `koanf:"capacity"`
	TTL      time.Duration `koanf:"ttl"`
	Redis    RedisConfig   `koanf:"redis"`
}

// RedisConfig holds the Redis connection used by the redis cache backend.
type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	Timeout  time.Duration `koanf:"timeout"`
}

// ClassifierConfig holds interest classifier training settings.
type ClassifierConfig struct {
	ModelPath        string  `koanf:"model_path"`
	NumTrees         int     `koanf:"num_trees"`
	MaxDepth         int     `koanf:"max_depth"` // 0 = unlimited
	MinSamplesSplit  int     `koanf:"min_samples_split"`
	MinSamplesLeaf   int     `koanf:"min_samples_leaf"`
	Seed             int64   `koanf:"seed"`
	SyntheticSamples int     `koanf:"synthetic_samples"`
	TestFraction     float64 `koanf:"test_fraction"`
	ModelVersion     string  `koanf:"model_version"`

	// TrainOnStartup forces a fresh training run even if an artifact exists.
	TrainOnStartup bool `koanf:"train_on_startup"`

	// RetrainInterval schedules periodic retraining. 0 disables it.
	RetrainInterval time.Duration `koanf:"retrain_interval"`

	PredictHistoryLimit   int `koanf:"predict_history_limit"`
	AnalyticsHistoryLimit int `koanf:"analytics_history_limit"`
}

// AdsConfig holds ad catalog and recommendation settings.
type AdsConfig struct {
	// CatalogPath points at a YAML catalog. Empty uses the built-in catalog.
	CatalogPath  string `koanf:"catalog_path"`
	DefaultLimit int    `koanf:"default_limit"`
	MaxLimit     int    `koanf:"max_limit"`
	RandomSeed   int64  `koanf:"random_seed"`

	// TrainRateLimit is the number of manual training runs allowed per minute.
	TrainRateLimit float64 `koanf:"train_rate_limit"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// IsProduction reports whether the server runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}
