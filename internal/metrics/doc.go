// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

/*
Package metrics provides Prometheus metrics collection and export for observability.

All metrics are registered with the default registry under the adinterest
namespace and exposed at /metrics in Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

API Metrics:
  - adinterest_api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - adinterest_api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - adinterest_api_active_requests: In-flight requests (gauge)
  - adinterest_api_rate_limit_hits_total: Rate limit rejections (counter)

Model Metrics:
  - adinterest_predictions_total: Predictions by result (counter)
  - adinterest_predicted_interests_total: Predictions by primary interest (counter)
  - adinterest_prediction_cache_total: Prediction lookups by source (counter)
  - adinterest_training_runs_total: Training runs by result (counter)
  - adinterest_training_duration_seconds: Training time (histogram)
  - adinterest_model_accuracy: Held-out accuracy of the loaded model (gauge)
  - adinterest_model_trained: Whether a model is loaded (gauge)

Ad Metrics:
  - adinterest_ads_served_total: Ads served by source (counter)
  - adinterest_interactions_tracked_total: Recorded events by type (counter)

Circuit Breaker Metrics:
  - adinterest_circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - adinterest_circuit_breaker_requests_total: Requests by result (counter)

# Usage

	start := time.Now()
	// ... handle request ...
	metrics.RecordAPIRequest("GET", "/api/users/{userID}/ads", "200", time.Since(start))
*/
package metrics
