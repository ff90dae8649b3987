// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/adinterest/internal/logging"
)

// Train handles POST /api/ml/train
func (h *Handler) Train(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logging.Ctx(r.Context()).Info().Msg("Training requested")

	res := h.svc.Train(r.Context())
	respondResult(w, r, http.StatusOK, res, start)
}

// ModelInfo handles GET /api/ml/info
func (h *Handler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	respondResult(w, r, http.StatusOK, h.svc.ModelInfo(), time.Now())
}
