// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

/*
Package config provides centralized configuration management.

Configuration is loaded by LoadWithKoanf in three layers, later layers
overriding earlier ones:

 1. Struct defaults (defaultConfig)
 2. A YAML file: CONFIG_PATH, or the first of DefaultConfigPaths that exists
 3. Environment variables listed in envMappings

Comma-separated environment values for list settings (CORS_ORIGINS) are split
after loading. The result is checked by Config.Validate.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8000)
  - SERVER_TIMEOUT, SHUTDOWN_TIMEOUT
  - ENVIRONMENT: development, staging, production

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Security:
  - CORS_ORIGINS: comma-separated list (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Storage:
  - DATABASE_BACKEND: badger or memory; DATABASE_PATH; DATABASE_SYNC_WRITES
  - CACHE_BACKEND: memory, redis or none; CACHE_CAPACITY; CACHE_TTL
  - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, REDIS_TIMEOUT

Classifier:
  - MODEL_PATH (default: ./ml_models/user_classifier.gob.gz)
  - CLASSIFIER_NUM_TREES, CLASSIFIER_MAX_DEPTH, CLASSIFIER_SEED, CLASSIFIER_SAMPLES
  - CLASSIFIER_TEST_FRACTION, CLASSIFIER_MIN_SAMPLES_SPLIT, CLASSIFIER_MIN_SAMPLES_LEAF
  - MODEL_VERSION, TRAIN_ON_STARTUP, RETRAIN_INTERVAL
  - PREDICT_HISTORY_LIMIT, ANALYTICS_HISTORY_LIMIT

Ads:
  - ADS_CATALOG_PATH, ADS_DEFAULT_LIMIT, ADS_MAX_LIMIT, ADS_RANDOM_SEED
  - TRAIN_RATE_LIMIT: manual training runs per minute
*/
package config
