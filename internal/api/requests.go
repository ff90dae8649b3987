// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

// Request structs validated with go-playground/validator tags before they
// reach the recommendation service.
//
// Example usage:
//
//	req := AdsRequest{Limit: getIntParam(r, "limit", h.defaultAdLimit)}
//	if apiErr := validateRequest(&req); apiErr != nil {
//	    respondAPIError(w, r, http.StatusBadRequest, apiErr)
//	    return
//	}
package api

import (
	"time"
)

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Email       string                 `json:"email" validate:"required,email,max=254"`
	Name        string                 `json:"name" validate:"omitempty,max=200"`
	Preferences map[string]interface{} `json:"preferences"`
}

// TrackInteractionRequest is the body of POST /api/users/{userID}/interactions.
// A missing session_id gets a generated one and a missing timestamp means now.
type TrackInteractionRequest struct {
	SessionID       string                 `json:"session_id" validate:"omitempty,max=128"`
	EventType       string                 `json:"event_type" validate:"required,event_type"`
	ContentCategory string                 `json:"content_category" validate:"omitempty,max=100"`
	ContentID       string                 `json:"content_id" validate:"omitempty,max=256"`
	Duration        float64                `json:"duration" validate:"gte=0"`
	Timestamp       *time.Time             `json:"timestamp"`
	Metadata        map[string]interface{} `json:"metadata"`
}

// AdsRequest holds the limit query parameter of the ad endpoints.
type AdsRequest struct {
	Limit int `json:"limit" validate:"min=1,max=100"`
}

// InteractionsRequest holds the limit query parameter of the interaction list.
type InteractionsRequest struct {
	Limit int `json:"limit" validate:"min=1,max=1000"`
}
