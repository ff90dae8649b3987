// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package models

import "time"

// Prediction is the current interest prediction for a user.
// Exactly one Prediction is kept per user; a newer one overwrites the old.
type Prediction struct {
	// UserID is the user the prediction belongs to.
	UserID string `json:"user_id"`

	// PrimaryInterest is the arg-max category of InterestScores.
	PrimaryInterest string `json:"primary_interest"`

	// InterestScores maps every category to the classifier's probability.
	// Scores are not required to sum to 1.
	InterestScores map[string]float64 `json:"interest_scores"`

	// Confidence is the probability mass on PrimaryInterest (0..1).
	Confidence float64 `json:"confidence"`

	// FeaturesUsed is a diagnostic snapshot of the feature vector.
	FeaturesUsed map[string]float64 `json:"features_used"`

	// Timestamp is when the prediction was computed.
	Timestamp time.Time `json:"timestamp"`

	// ModelVersion is the version tag of the model that produced it.
	ModelVersion string `json:"model_version"`
}

// Clone returns a deep copy of the prediction.
func (p *Prediction) Clone() *Prediction {
	if p == nil {
		return nil
	}
	c := *p
	c.InterestScores = make(map[string]float64, len(p.InterestScores))
	for k, v := range p.InterestScores {
		c.InterestScores[k] = v
	}
	c.FeaturesUsed = make(map[string]float64, len(p.FeaturesUsed))
	for k, v := range p.FeaturesUsed {
		c.FeaturesUsed[k] = v
	}
	return &c
}
