// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

/*
Package middleware provides HTTP middleware shared by the API router.

  - RequestID: X-Request-ID propagation plus request and correlation IDs in
    the request context for logging.Ctx
  - PrometheusMetrics: request count, latency and in-flight gauge labelled by
    the matched chi route pattern

Both are plain func(http.Handler) http.Handler and mount with chi's Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
