// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

/*
Package main is the entry point for the adinterest server.

adinterest records user behavior events (clicks, page views, scrolls,
dwell time), classifies each user's primary interest with a random forest
and serves ads from the matching catalog category.

# Application Architecture

	RootSupervisor ("adinterest")
	├── DataSupervisor ("data-layer")
	│   ├── ModelService (load artifact or train, optional retrain)
	│   └── StoreGCService (badger backend only)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog with JSON or console output
 3. Store: BadgerDB or in-memory
 4. Prediction cache: in-process LRU, Redis, or none
 5. Classifier: random forest backed by a gzip artifact on disk
 6. Ad catalog and selector: built-in or YAML catalog
 7. Recommendation service
 8. Supervisor tree and HTTP server

# Configuration

Common environment variables:

	HTTP_PORT=8000
	LOG_LEVEL=info
	DATABASE_BACKEND=badger
	DATABASE_PATH=/data/adinterest
	CACHE_BACKEND=redis
	REDIS_ADDR=redis:6379
	MODEL_PATH=/data/ml_models/user_classifier.gob.gz
	TRAIN_ON_STARTUP=false
	RETRAIN_INTERVAL=24h
	ADS_CATALOG_PATH=/etc/adinterest/catalog.yaml

A config.yaml found via CONFIG_PATH uses the same keys as the koanf tags
in internal/config.

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests for SHUTDOWN_TIMEOUT, then the store is closed.
*/
package main
