// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/adinterest/internal/models"
)

// HealthStatus is the payload of GET /health.
type HealthStatus struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	ModelTrained  bool    `json:"model_trained"`
	ModelVersion  string  `json:"model_version,omitempty"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Health handles health check requests
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	st := h.svc.Status().Data

	status := "healthy"
	if !st.Trained {
		status = "degraded"
	}

	respondSuccess(w, r, http.StatusOK, HealthStatus{
		Status:        status,
		Version:       h.version,
		ModelTrained:  st.Trained,
		ModelVersion:  st.Version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}, start)
}

// HealthLive handles liveness probe requests
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// HealthReady handles readiness probe requests. The service is ready once a
// trained model is loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Status().Data.Trained {
		respondAPIError(w, r, http.StatusServiceUnavailable, &models.APIError{
			Code:    ErrCodeNotTrained,
			Message: "Model is not loaded yet",
		})
		return
	}
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{"ready": true}, time.Now())
}
