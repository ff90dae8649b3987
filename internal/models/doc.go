// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

/*
Package models defines data structures for the Adinterest application.

This package is the single source of truth for records shared between the
persistence layer, the recommendation core and the HTTP API.

Key Components:

  - User: Demo user record created through the API
  - InteractionEvent: Append-only behavioral event (click, page_view, ...)
  - Prediction: Latest interest prediction for a user (upsert semantics)
  - Ad / RecommendedAd: Static catalog entry and its annotated copy
  - DomainError: Error kinds surfaced by the recommendation core
  - APIResponse: Standardized API response wrapper

Immutability:

Catalog ads are never annotated in place. RecommendedAd embeds a copy of the
Ad value, so annotation cannot alias the shared catalog entry.
*/
package models
