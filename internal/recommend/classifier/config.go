// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package classifier

import (
	"fmt"

	"github.com/tomtom215/adinterest/internal/recommend/features"
)

// Config holds classifier training parameters.
type Config struct {
	// NumTrees is the number of trees in the forest.
	// Default: 100
	NumTrees int `json:"num_trees"`

	// MaxDepth limits tree depth. 0 grows trees until leaves are pure.
	// Default: 0
	MaxDepth int `json:"max_depth"`

	// MinSamplesSplit is the minimum node size that may be split.
	// Default: 2
	MinSamplesSplit int `json:"min_samples_split"`

	// MinSamplesLeaf is the minimum number of samples in each leaf.
	// Default: 1
	MinSamplesLeaf int `json:"min_samples_leaf"`

	// Seed drives synthetic data, the train/test split and the forest.
	// Default: 42
	Seed int64 `json:"seed"`

	// SyntheticSamples is the synthetic dataset size.
	// Default: 1000
	SyntheticSamples int `json:"synthetic_samples"`

	// TestFraction is the held-out share of each class.
	// Default: 0.2
	TestFraction float64 `json:"test_fraction"`

	// Version is the model version tag stored in the artifact.
	// Default: 1.0.0
	Version string `json:"version"`
}

// DefaultConfig returns the default training parameters.
func DefaultConfig() Config {
	return Config{
		NumTrees:         100,
		MaxDepth:         0,
		MinSamplesSplit:  2,
		MinSamplesLeaf:   1,
		Seed:             42,
		SyntheticSamples: 1000,
		TestFraction:     0.2,
		Version:          "1.0.0",
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.NumTrees < 1 {
		return fmt.Errorf("num_trees must be positive, got %d", c.NumTrees)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative, got %d", c.MaxDepth)
	}
	if c.MinSamplesSplit < 2 {
		return fmt.Errorf("min_samples_split must be at least 2, got %d", c.MinSamplesSplit)
	}
	if c.MinSamplesLeaf < 1 {
		return fmt.Errorf("min_samples_leaf must be positive, got %d", c.MinSamplesLeaf)
	}
	if minSamples := 2 * features.NumCategories; c.SyntheticSamples < minSamples {
		return fmt.Errorf("synthetic_samples must be at least %d, got %d", minSamples, c.SyntheticSamples)
	}
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return fmt.Errorf("test_fraction must be in (0, 1), got %f", c.TestFraction)
	}
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}
	return nil
}
