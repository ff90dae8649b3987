// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/adinterest/internal/models"
	"github.com/tomtom215/adinterest/internal/recommend/features"
)

// CategoryAds is the payload of GET /api/ads/categories/{category}.
type CategoryAds struct {
	Category string      `json:"category"`
	Ads      []models.Ad `json:"ads"`
}

// AdCategories handles GET /api/ads/categories
func (h *Handler) AdCategories(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, h.svc.Catalog().Categories(), time.Now())
}

// AdsByCategory handles GET /api/ads/categories/{category}
// The category is canonicalized first, so "technology" returns the tech ads.
func (h *Handler) AdsByCategory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	category, _ := features.Canonicalize(chi.URLParam(r, "category"))

	list := h.svc.Catalog().Ads(category)
	if len(list) == 0 {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Category not found", nil)
		return
	}
	respondSuccess(w, r, http.StatusOK, CategoryAds{Category: category, Ads: list}, start)
}

// RandomAds handles GET /api/ads/random
func (h *Handler) RandomAds(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := AdsRequest{Limit: getIntParam(r, "limit", h.defaultAdLimit)}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	respondResult(w, r, http.StatusOK, h.svc.RandomAds(req.Limit), start)
}
