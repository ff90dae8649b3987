// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/adinterest/internal/models"
	"github.com/tomtom215/adinterest/internal/recommend/classifier"
)

// Error codes for API responses
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeNoData             = "NO_DATA"
	ErrCodeNotTrained         = "NOT_TRAINED"
	ErrCodeTraining           = "TRAINING_ERROR"
	ErrCodeTrainingInProgress = "TRAINING_IN_PROGRESS"
	ErrCodePersistence        = "PERSISTENCE_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
)

// errorStatus maps a service failure to an HTTP status and error code.
func errorStatus(kind models.ErrorKind, err error) (int, string) {
	switch kind {
	case models.KindInvalidInput:
		return http.StatusBadRequest, ErrCodeValidation
	case models.KindNoData:
		return http.StatusBadRequest, ErrCodeNoData
	case models.KindNotFound:
		return http.StatusNotFound, ErrCodeNotFound
	case models.KindNotTrained:
		return http.StatusServiceUnavailable, ErrCodeNotTrained
	case models.KindTraining:
		if errors.Is(err, classifier.ErrTrainingInProgress) {
			return http.StatusConflict, ErrCodeTrainingInProgress
		}
		return http.StatusInternalServerError, ErrCodeTraining
	case models.KindPersistence:
		return http.StatusInternalServerError, ErrCodePersistence
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}
