// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/adinterest/config.yaml",
	"/etc/adinterest/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Database: DatabaseConfig{
			Backend:    "badger",
			Path:       "./data/adinterest",
			SyncWrites: false,
		},
		Cache: CacheConfig{
			Backend:  "memory",
			Capacity: 10000,
			TTL:      10 * time.Minute,
			Redis: RedisConfig{
				Addr:    "127.0.0.1:6379",
				DB:      0,
				Timeout: 500 * time.Millisecond,
			},
		},
		Classifier: ClassifierConfig{
			ModelPath:             "./ml_models/user_classifier.gob.gz",
			NumTrees:              100,
			MaxDepth:              0,
			MinSamplesSplit:       2,
			MinSamplesLeaf:        1,
			Seed:                  42,
			SyntheticSamples:      1000,
			TestFraction:          0.2,
			ModelVersion:          "1.0.0",
			TrainOnStartup:        false,
			RetrainInterval:       0,
			PredictHistoryLimit:   500,
			AnalyticsHistoryLimit: 1000,
		},
		Ads: AdsConfig{
			CatalogPath:    "",
			DefaultLimit:   3,
			MaxLimit:       10,
			RandomSeed:     0, // 0 = seed from the clock
			TrainRateLimit: 2,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf with layered sources.
//
// Order of precedence (lowest to highest):
//  1. Struct defaults
//  2. Config file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are keys whose environment values are comma-separated lists.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf keys.
var envMappings = map[string]string{
	"http_port":        "server.port",
	"http_host":        "server.host",
	"server_timeout":   "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"database_backend":     "database.backend",
	"database_path":        "database.path",
	"database_sync_writes": "database.sync_writes",

	"cache_backend":  "cache.backend",
	"cache_capacity": "cache.capacity",
	"cache_ttl":      "cache.ttl",
	"redis_addr":     "cache.redis.addr",
	"redis_password": "cache.redis.password",
	"redis_db":       "cache.redis.db",
	"redis_timeout":  "cache.redis.timeout",

	"model_path":                   "classifier.model_path",
	"classifier_num_trees":         "classifier.num_trees",
	"classifier_max_depth":         "classifier.max_depth",
	"classifier_seed":              "classifier.seed",
	"classifier_samples":           "classifier.synthetic_samples",
	"classifier_test_fraction":     "classifier.test_fraction",
	"model_version":                "classifier.model_version",
	"train_on_startup":             "classifier.train_on_startup",
	"retrain_interval":             "classifier.retrain_interval",
	"predict_history_limit":        "classifier.predict_history_limit",
	"analytics_history_limit":      "classifier.analytics_history_limit",
	"classifier_min_samples_split": "classifier.min_samples_split",
	"classifier_min_samples_leaf":  "classifier.min_samples_leaf",

	"ads_catalog_path":  "ads.catalog_path",
	"ads_default_limit": "ads.default_limit",
	"ads_max_limit":     "ads.max_limit",
	"ads_random_seed":   "ads.random_seed",
	"train_rate_limit":  "ads.train_rate_limit",
}

// envTransformFunc maps environment variable names to koanf keys.
// Unmapped variables return "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
