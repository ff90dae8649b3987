// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

/*
Package database provides the persistence layer for users, interaction events
and interest predictions.

Two Store implementations are available:

  - BadgerStore: durable storage in an embedded BadgerDB. Values are JSON
    encoded and interaction keys sort by user and timestamp.
  - MemoryStore: map-backed storage for tests and throwaway deployments.

Open selects one from configuration:

	store, err := database.Open(database.Config{Backend: "badger", Path: "./data/adinterest"})
	if err != nil {
		return err
	}
	defer store.Close()

Lookups that find nothing return an error matching models.ErrNotFound, so
callers test with errors.Is regardless of backend.
*/
package database
