// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

// Package features converts a user's interaction history into the fixed-length
// numeric vector consumed by the interest classifier.
//
// The category set, the category canonicalization rule and the feature order
// all live here so that every component reading or writing a content category
// agrees on a single spelling. The feature order is part of the serialized
// model contract: a persisted classifier trained against a different order is
// rejected on load.
package features
