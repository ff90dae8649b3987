// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/adinterest/internal/middleware"
	"github.com/tomtom215/adinterest/internal/models"
)

// NewRouter configures all HTTP routes.
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}

	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondAPIError(w, r, http.StatusMethodNotAllowed, &models.APIError{
			Code:    "METHOD_NOT_ALLOWED",
			Message: "Method not allowed",
		})
	})

	// ========================
	// Health and Metrics
	// ========================
	r.Get("/health", h.Health)
	r.Get("/health/live", h.HealthLive)
	r.Get("/health/ready", h.HealthReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chimiddleware.Timeout(60 * time.Second))

		// ========================
		// Users
		// ========================
		r.Route("/users", func(r chi.Router) {
			r.Use(mw.RateLimit("users"))
			r.Post("/", h.CreateUser)
			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", h.GetUser)
				r.Post("/interactions", h.TrackInteraction)
				r.Get("/interactions", h.ListInteractions)
				r.Post("/predict", h.Predict)
				r.Get("/ads", h.UserAds)
				r.Get("/analytics", h.UserAnalytics)
			})
		})

		// ========================
		// Ads
		// ========================
		r.Route("/ads", func(r chi.Router) {
			r.Use(mw.RateLimit("ads"))
			r.Get("/categories", h.AdCategories)
			r.Get("/categories/{category}", h.AdsByCategory)
			r.Get("/random", h.RandomAds)
		})

		// ========================
		// ML
		// ========================
		r.Route("/ml", func(r chi.Router) {
			r.Use(mw.RateLimit("ml"))
			r.With(mw.TrainThrottle()).Post("/train", h.Train)
			r.Get("/info", h.ModelInfo)
			r.Post("/predict/{userID}", h.Predict)
		})

		// ========================
		// System Analytics
		// ========================
		r.Route("/analytics", func(r chi.Router) {
			r.Use(mw.RateLimit("analytics"))
			r.Get("/overview", h.AnalyticsOverview)
			r.Get("/interests", h.AnalyticsInterests)
			r.Get("/interactions", h.AnalyticsInteractions)
		})
	})

	return r
}
