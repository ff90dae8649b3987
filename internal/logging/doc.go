// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

// Package logging provides centralized zerolog-based logging.
//
// The global logger is configured once at startup:
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//	logging.Info().Str("addr", addr).Msg("Server starting")
//
// Components receive a zerolog.Logger tagged with their name instead of
// reaching for the global one:
//
//	clf := classifier.New(cfg, store, logging.Component("classifier"))
//
// HTTP middleware stores request and correlation IDs in the request context;
// Ctx picks them up:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Prediction failed")
//
// SlogHandler bridges log/slog consumers (the suture event hook) to zerolog.
package logging
