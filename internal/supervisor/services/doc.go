// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

/*
Package services provides suture.Service wrappers for the ad service's
long-running components.

Each wrapper implements:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer so suture can name it in logs.

# Available Services

HTTPServerService:
  - Runs *http.Server and shuts it down gracefully on cancellation
  - Listener failures are returned so suture restarts the server

ModelService:
  - Loads the persisted classifier or trains one from synthetic data
  - TrainOnStartup forces a fresh model
  - Optional periodic retrain that keeps the current model on failure

StoreGCService:
  - Periodic BadgerDB value log garbage collection

# Dependencies

The wrappers depend on small interfaces (HTTPServer, ModelLoader,
ModelTrainer, GarbageCollector) rather than concrete types, so tests use
in-package fakes.
*/
package services
