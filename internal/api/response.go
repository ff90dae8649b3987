// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/adinterest/internal/logging"
	"github.com/tomtom215/adinterest/internal/models"
	"github.com/tomtom215/adinterest/internal/recommend"
)

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time) {
	respondJSON(w, r, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondAPIError sends an error envelope.
func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError) {
	respondJSON(w, r, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    apiErr,
	})
}

// respondError sends an error envelope and logs err when present.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", code).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}
	respondAPIError(w, r, status, &models.APIError{Code: code, Message: message})
}

// respondResult writes a service result, mapping failures by error kind.
func respondResult[T any](w http.ResponseWriter, r *http.Request, status int, res recommend.Result[T], start time.Time) {
	if res.Success {
		respondSuccess(w, r, status, res.Data, start)
		return
	}

	errStatus, code := errorStatus(res.Kind, res.Err)
	if errStatus >= http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().
			Str("code", code).
			Str("error", sanitizeLogValue(res.Message)).
			Msg("Request failed")
	}
	respondAPIError(w, r, errStatus, &models.APIError{
		Code:    code,
		Message: res.Message,
		Details: map[string]interface{}{"kind": string(res.Kind)},
	})
}
