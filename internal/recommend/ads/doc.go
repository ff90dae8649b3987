// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

// Package ads holds the static ad catalog and the selection policy that turns
// an interest prediction into an ordered list of recommended ads.
//
// # Catalog
//
// The catalog is an ordered list of categories, each with its ads. It is built
// in code (DefaultCatalog) or loaded from a YAML file (LoadCatalog). Category
// keys go through features.Canonicalize, so a file keyed "technology" serves
// the "tech" interest. Ads may carry a CEL targeting rule evaluated against the
// prediction, for example:
//
//	rule: 'confidence >= 0.4 && interest_scores["business"] > 0.1'
//
// # Selection
//
// SelectAds takes the primary category's ads first and backfills from the
// remaining categories in descending score order. RandomAds samples without
// replacement across the whole catalog. Both return fresh copies; catalog
// entries are never annotated in place.
package ads
