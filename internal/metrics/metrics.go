// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "adinterest"

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "API request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_active_requests",
			Help:      "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_rate_limit_hits_total",
			Help:      "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Prediction Metrics
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Total number of interest predictions by result",
		},
		[]string{"result"}, // "success", "no_data", "not_trained", "error"
	)

	PredictedInterests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predicted_interests_total",
			Help:      "Total number of predictions per primary interest",
		},
		[]string{"interest"},
	)

	PredictionCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_cache_total",
			Help:      "Prediction lookups by source",
		},
		[]string{"result"}, // "hit", "store", "miss"
	)

	// Training Metrics
	TrainingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "training_runs_total",
			Help:      "Total number of classifier training runs by result",
		},
		[]string{"result"},
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "training_duration_seconds",
			Help:      "Duration of classifier training runs in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	ModelAccuracy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_accuracy",
			Help:      "Held-out accuracy of the currently loaded classifier",
		},
	)

	ModelTrained = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_trained",
			Help:      "1 if a classifier artifact is loaded, 0 otherwise",
		},
	)

	// Ad Metrics
	AdsServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ads_served_total",
			Help:      "Total number of ads served by selection source",
		},
		[]string{"source"}, // "interest", "random"
	)

	// Tracking Metrics
	InteractionsTrackedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_tracked_total",
			Help:      "Total number of interaction events recorded",
		},
		[]string{"event_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_requests_total",
			Help:      "Requests through a circuit breaker by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordPrediction records a prediction attempt. interest is empty on failure.
func RecordPrediction(result, interest string) {
	PredictionsTotal.WithLabelValues(result).Inc()
	if interest != "" {
		PredictedInterests.WithLabelValues(interest).Inc()
	}
}

// RecordTraining records a training run. Accuracy is only published for
// successful runs.
func RecordTraining(duration time.Duration, accuracy float64, err error) {
	TrainingDuration.Observe(duration.Seconds())
	if err != nil {
		TrainingRunsTotal.WithLabelValues("failure").Inc()
		return
	}
	TrainingRunsTotal.WithLabelValues("success").Inc()
	ModelAccuracy.Set(accuracy)
	ModelTrained.Set(1)
}

// RecordModelLoaded publishes the accuracy of an artifact loaded from disk.
func RecordModelLoaded(accuracy float64) {
	ModelAccuracy.Set(accuracy)
	ModelTrained.Set(1)
}

// RecordAdsServed records n ads served from source.
func RecordAdsServed(source string, n int) {
	AdsServedTotal.WithLabelValues(source).Add(float64(n))
}
