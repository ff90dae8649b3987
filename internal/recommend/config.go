// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package recommend

import (
	"fmt"
)

// Config holds the recommendation service settings.
type Config struct {
	// ModelVersion is stamped on every stored prediction.
	ModelVersion string

	// PredictHistoryLimit is how many recent interactions feed a prediction.
	PredictHistoryLimit int

	// AnalyticsHistoryLimit is how many recent interactions feed user analytics.
	AnalyticsHistoryLimit int

	// DefaultAdLimit is used when a caller asks for zero or fewer ads.
	DefaultAdLimit int

	// MaxAdLimit caps the number of ads returned per request.
	MaxAdLimit int
}

// DefaultConfig returns the default service configuration.
func DefaultConfig() Config {
	return Config{
		ModelVersion:          "1.0.0",
		PredictHistoryLimit:   500,
		AnalyticsHistoryLimit: 1000,
		DefaultAdLimit:        3,
		MaxAdLimit:            10,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.ModelVersion == "" {
		return fmt.Errorf("model_version is required")
	}
	if c.PredictHistoryLimit < 1 {
		return fmt.Errorf("predict_history_limit must be positive, got %d", c.PredictHistoryLimit)
	}
	if c.AnalyticsHistoryLimit < 1 {
		return fmt.Errorf("analytics_history_limit must be positive, got %d", c.AnalyticsHistoryLimit)
	}
	if c.DefaultAdLimit < 1 {
		return fmt.Errorf("default_ad_limit must be positive, got %d", c.DefaultAdLimit)
	}
	if c.MaxAdLimit < c.DefaultAdLimit {
		return fmt.Errorf("max_ad_limit (%d) must be >= default_ad_limit (%d)", c.MaxAdLimit, c.DefaultAdLimit)
	}
	return nil
}

// clampLimit maps a requested ad count into [1, MaxAdLimit].
func (c *Config) clampLimit(limit int) int {
	if limit <= 0 {
		return c.DefaultAdLimit
	}
	if limit > c.MaxAdLimit {
		return c.MaxAdLimit
	}
	return limit
}
