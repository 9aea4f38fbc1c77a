// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

// Package recommend defines the shared data model and error kinds for the
// content-based restaurant recommender.
//
// # Architecture
//
// The pipeline runs in one direction:
//
//	catalog -> vocabulary -> feature vectors -> preference vector -> scores -> ranking
//
// It is split across three subpackages:
//
//   - features: builds the category vocabulary and one-hot encodes restaurants
//   - algorithms: the ContentBased recommender (fit a user, predict a ranking)
//   - engine: loads the dataset once, shares the feature space between
//     per-request sessions and caches rankings
//
// # Data Ownership
//
// The catalog, users and reviews are supplied by the caller and treated as
// read-only. Every derived structure (vocabulary, feature matrix, preference
// vector, score table, ranking) is owned by the component that built it.
//
// # Determinism
//
// Given the same dataset, the vocabulary has the same label order, the same
// user receives the same preference vector and ties in the ranking are broken
// by catalog order. Parallel encoding and scoring never change results.
//
// # Usage
//
//	space, err := features.NewSpace(ctx, ds.Restaurants, 4)
//	cb := algorithms.NewContentBased(space, ds.Reviews, algorithms.ContentBasedConfig{})
//	if err := cb.Fit(ctx, userID); err != nil {
//	    // *NoHistoryError, *DegenerateModelError, *ConfigurationError
//	}
//	recs, err := cb.Predict()
package recommend
