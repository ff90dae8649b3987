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
	"github.com/tomtom215/adinterest/internal/recommend"
)

// CreateUser handles POST /api/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	res := h.svc.CreateUser(r.Context(), recommend.CreateUserInput{
		Email:       req.Email,
		Name:        req.Name,
		Preferences: req.Preferences,
	})
	respondResult(w, r, http.StatusCreated, res, start)
}

// GetUser handles GET /api/users/{userID}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	res := h.svc.GetUser(r.Context(), chi.URLParam(r, "userID"))
	respondResult(w, r, http.StatusOK, res, start)
}

// TrackInteraction handles POST /api/users/{userID}/interactions
func (h *Handler) TrackInteraction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req TrackInteractionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	in := recommend.InteractionInput{
		SessionID:       req.SessionID,
		EventType:       models.EventType(req.EventType),
		ContentCategory: req.ContentCategory,
		ContentID:       req.ContentID,
		Duration:        req.Duration,
		Metadata:        req.Metadata,
	}
	if req.Timestamp != nil {
		in.Timestamp = *req.Timestamp
	}

	res := h.svc.TrackInteraction(r.Context(), chi.URLParam(r, "userID"), in)
	respondResult(w, r, http.StatusCreated, res, start)
}

// ListInteractions handles GET /api/users/{userID}/interactions
func (h *Handler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := InteractionsRequest{Limit: getIntParam(r, "limit", 100)}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	res := h.svc.ListInteractions(r.Context(), chi.URLParam(r, "userID"), req.Limit)
	respondResult(w, r, http.StatusOK, res, start)
}

// Predict handles POST /api/users/{userID}/predict and POST /api/ml/predict/{userID}
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	res := h.svc.Predict(r.Context(), chi.URLParam(r, "userID"))
	respondResult(w, r, http.StatusOK, res, start)
}

// UserAds handles GET /api/users/{userID}/ads
func (h *Handler) UserAds(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := AdsRequest{Limit: getIntParam(r, "limit", h.defaultAdLimit)}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	res := h.svc.GetRecommendations(r.Context(), chi.URLParam(r, "userID"), req.Limit)
	respondResult(w, r, http.StatusOK, res, start)
}

// UserAnalytics handles GET /api/users/{userID}/analytics
func (h *Handler) UserAnalytics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	res := h.svc.GetUserAnalytics(r.Context(), chi.URLParam(r, "userID"))
	respondResult(w, r, http.StatusOK, res, start)
}
