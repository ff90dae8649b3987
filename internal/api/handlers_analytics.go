// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package api

import (
	"net/http"
	"time"
)

// AnalyticsOverview handles GET /api/analytics/overview
func (h *Handler) AnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondResult(w, r, http.StatusOK, h.svc.SystemOverview(r.Context()), start)
}

// AnalyticsInterests handles GET /api/analytics/interests
func (h *Handler) AnalyticsInterests(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondResult(w, r, http.StatusOK, h.svc.InterestAnalytics(r.Context()), start)
}

// AnalyticsInteractions handles GET /api/analytics/interactions
func (h *Handler) AnalyticsInteractions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondResult(w, r, http.StatusOK, h.svc.InteractionAnalytics(r.Context()), start)
}
