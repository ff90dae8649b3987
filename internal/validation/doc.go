// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide. Field names in errors
// come from json tags, and the custom "event_type" tag accepts the tracked
// interaction event types.
//
//	type TrackInteractionRequest struct {
//	    EventType string  `json:"event_type" validate:"required,event_type"`
//	    Duration  float64 `json:"duration" validate:"gte=0"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondAPIError(w, r, http.StatusBadRequest, verr.ToAPIError())
//	    return
//	}
package validation
