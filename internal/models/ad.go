// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package models

// Ad is a static catalog entry. Catalog ads are immutable at runtime.
type Ad struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	ImageURL    string `json:"image_url" yaml:"image_url"`
	CTA         string `json:"cta" yaml:"cta"`
	URL         string `json:"url" yaml:"url"`
}

// RecommendedAd is an annotated copy of a catalog Ad.
type RecommendedAd struct {
	Ad

	// Category is the catalog category the ad was drawn from.
	Category string `json:"category"`

	// RecommendationReason is a human-readable explanation.
	RecommendationReason string `json:"recommendation_reason"`

	// ConfidenceScore is the classifier confidence (0 for random ads).
	ConfidenceScore float64 `json:"confidence_score"`
}
