// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

// Package recommend orchestrates interest prediction, ad selection and
// analytics on top of a database.Store.
//
// # Components
//
//   - features: turns interaction events into a fixed-order feature vector
//   - classifier: random forest over scaled features, persisted as one artifact
//   - ads: static catalog and the selection/backfill policy
//   - Service: the operations exposed to the API layer
//
// # Results
//
// Every Service operation returns a Result[T]. Failures carry a
// models.ErrorKind so callers can map them without inspecting messages:
//
//	res := svc.GetRecommendations(ctx, userID, 3)
//	if !res.Success {
//	    // res.Kind is not_trained, persistence, ...
//	}
//
// A user without interaction history never fails GetRecommendations; random
// ads are served instead and Recommendations.Source is "random".
//
// # Predictions
//
// Each user has one current prediction (last writer wins). GetRecommendations
// reads it through the prediction cache and the store, computing and storing
// a new one only when none exists. Concurrent computations for the same user
// are coalesced. Predict always recomputes.
//
// # Usage
//
//	svc, err := recommend.NewService(recommend.DefaultConfig(), store, clf, selector, predictionCache, logger)
//	if err != nil {
//	    return err
//	}
//	res := svc.Train(ctx)
package recommend
