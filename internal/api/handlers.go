// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package api

import (
	"time"

	"github.com/tomtom215/adinterest/internal/recommend"
)

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: request decoding and validation helpers
//   - handlers_health.go: health endpoints
//   - handlers_users.go: users, interactions, predictions and user ads
//   - handlers_ads.go: catalog and random ads
//   - handlers_ml.go: training and model status
//   - handlers_analytics.go: system analytics
type Handler struct {
	svc            *recommend.Service
	defaultAdLimit int
	version        string
	startTime      time.Time
}

// HandlerConfig holds handler settings.
type HandlerConfig struct {
	DefaultAdLimit int
	Version        string
}

// NewHandler creates a new API handler.
//
// Example:
//
//	handler := api.NewHandler(svc, api.HandlerConfig{DefaultAdLimit: 3, Version: "1.0.0"})
//	router := api.NewRouter(handler, api.NewChiMiddleware(nil))
//	http.ListenAndServe(":8000", router)
func NewHandler(svc *recommend.Service, cfg HandlerConfig) *Handler {
	if cfg.DefaultAdLimit <= 0 {
		cfg.DefaultAdLimit = 3
	}
	return &Handler{
		svc:            svc,
		defaultAdLimit: cfg.DefaultAdLimit,
		version:        cfg.Version,
		startTime:      time.Now(),
	}
}
