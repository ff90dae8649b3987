// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

// Package classifier implements the interest classifier: a random forest of
// CART decision trees over standardized interaction features.
//
// # Training
//
// Train fits a StandardScaler on the training split only, then fits the
// forest on the scaled features. When no dataset is supplied a synthetic one
// is generated from a fixed seed, so repeated runs produce the same model and
// the same held-out accuracy.
//
// # Artifact lifecycle
//
// A trained model is bundled with its scaler, category list and feature names
// into an Artifact. The artifact is persisted before it becomes visible, and
// it is published with a single atomic pointer store. Concurrent Predict calls
// observe either the previous artifact or the new one. A failed training run
// leaves the loaded artifact untouched.
//
// # Determinism
//
// Each tree draws its bootstrap sample and feature subsets from its own RNG
// seeded from the forest seed. Predictions depend only on the artifact, so a
// reloaded artifact reproduces the predictions of the process that saved it.
package classifier
