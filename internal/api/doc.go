// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

/*
Package api exposes the recommendation service over HTTP using the chi router.

Every endpoint answers with the models.APIResponse envelope:

	{"status": "success", "data": {...}, "metadata": {"timestamp": "...", "query_time_ms": 2}}
	{"status": "error", "error": {"code": "NOT_TRAINED", "message": "..."}, "metadata": {...}}

Service failures map to HTTP status by error kind:

	invalid_input  400 VALIDATION_ERROR
	no_data        400 NO_DATA
	not_found      404 NOT_FOUND
	not_trained    503 NOT_TRAINED
	training       500 TRAINING_ERROR (409 TRAINING_IN_PROGRESS)
	persistence    500 PERSISTENCE_ERROR

Middleware: request IDs, panic recovery, go-chi/cors, per-IP go-chi/httprate
limits per route group, a shared golang.org/x/time/rate bucket on
POST /api/ml/train, security headers and Prometheus request metrics.
*/
package api
