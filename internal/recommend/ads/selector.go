// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package ads

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/adinterest/internal/models"
	"github.com/tomtom215/adinterest/internal/recommend/features"
)

// ReasonRandom is the recommendation reason attached to random ads.
const ReasonRandom = "random"

// InterestReason returns the recommendation reason for an interest-based ad.
func InterestReason(primary string) string {
	return "Based on your interest in " + primary
}

// Selector picks ads from a catalog.
type Selector struct {
	catalog *Catalog
	logger  zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewSelector creates a selector over catalog. seed drives RandomAds.
//
//nolint:gocritic // logger passed by value per zerolog convention
func NewSelector(catalog *Catalog, seed int64, logger zerolog.Logger) *Selector {
	return &Selector{
		catalog: catalog,
		logger:  logger.With().Str("component", "ad_selector").Logger(),
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for ad sampling
	}
}

// Catalog returns the underlying catalog.
func (s *Selector) Catalog() *Catalog {
	return s.catalog
}

// SelectAds returns up to limit ads for primary, backfilling from the other
// catalog categories in descending order of interestScores. Ties keep catalog
// order. Ads whose targeting rule rejects the prediction are skipped.
func (s *Selector) SelectAds(primary string, interestScores map[string]float64, confidence float64, limit int) []models.RecommendedAd {
	if limit <= 0 {
		return []models.RecommendedAd{}
	}
	primary, _ = features.Canonicalize(primary)

	vars := map[string]interface{}{
		"primary_interest": primary,
		"confidence":       confidence,
		"interest_scores":  interestScores,
	}
	reason := InterestReason(primary)
	out := make([]models.RecommendedAd, 0, limit)

	take := func(category string) {
		for _, ca := range s.catalog.ads[category] {
			if len(out) >= limit {
				return
			}
			if !s.eligible(ca, vars) {
				continue
			}
			out = append(out, models.RecommendedAd{
				Ad:                   ca.ad,
				Category:             category,
				RecommendationReason: reason,
				ConfidenceScore:      confidence,
			})
		}
	}

	take(primary)
	if len(out) >= limit {
		return out
	}

	remaining := make([]string, 0, len(s.catalog.order))
	for _, c := range s.catalog.order {
		if c != primary {
			remaining = append(remaining, c)
		}
	}
	sort.SliceStable(remaining, func(i, j int) bool {
		return interestScores[remaining[i]] > interestScores[remaining[j]]
	})

	for _, c := range remaining {
		if len(out) >= limit {
			break
		}
		take(c)
	}
	return out
}

// RandomAds draws min(limit, catalog size) distinct ads uniformly across the
// catalog, annotated with ReasonRandom and zero confidence.
func (s *Selector) RandomAds(limit int) []models.RecommendedAd {
	if limit <= 0 {
		return []models.RecommendedAd{}
	}

	type ref struct {
		category string
		ad       models.Ad
	}
	pool := make([]ref, 0, s.catalog.total)
	for _, c := range s.catalog.order {
		for _, ca := range s.catalog.ads[c] {
			pool = append(pool, ref{category: c, ad: ca.ad})
		}
	}
	if limit > len(pool) {
		limit = len(pool)
	}

	s.rngMu.Lock()
	perm := s.rng.Perm(len(pool))
	s.rngMu.Unlock()

	out := make([]models.RecommendedAd, 0, limit)
	for _, i := range perm[:limit] {
		out = append(out, models.RecommendedAd{
			Ad:                   pool[i].ad,
			Category:             pool[i].category,
			RecommendationReason: ReasonRandom,
			ConfidenceScore:      0,
		})
	}
	return out
}

func (s *Selector) eligible(ca catalogAd, vars map[string]interface{}) bool {
	if ca.rule == nil {
		return true
	}
	val, _, err := ca.rule.Eval(vars)
	if err != nil {
		s.logger.Warn().Err(err).Str("ad_id", ca.ad.ID).Msg("Ad rule evaluation failed, skipping ad")
		return false
	}
	ok, isBool := val.Value().(bool)
	if !isBool {
		s.logger.Warn().Str("ad_id", ca.ad.ID).Msg("Ad rule did not return a boolean, skipping ad")
		return false
	}
	return ok
}
