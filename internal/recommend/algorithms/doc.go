// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

// Package algorithms implements the per-user recommendation sessions that run
// on top of a shared features.Space.
//
// # Content-Based Filtering
//
// ContentBased profiles a user from the restaurants they rated and scores the
// whole catalog against that profile:
//
//	w        = r . V               (rating-weighted sum of visited rows)
//	score[i] = dot(F[i], w) / sum(w)
//
// where V holds the visited restaurants' one-hot rows sorted by business id, r
// the matching star ratings and F the encoded catalog. Restaurants are ranked
// by score descending; ties keep catalog order.
//
// # Session Lifecycle
//
// A session starts unfitted. Fit moves it to fitted for one user and a later
// Fit replaces that state entirely. A failed Fit leaves the session unfitted,
// so Predict never serves a ranking computed for a different user.
//
// # Thread Safety
//
// Sessions are safe for concurrent use. Fit acquires an exclusive lock while
// Predict and the inspection methods use a shared lock. The Space is never
// written, so any number of sessions for different users may share it.
//
// # Usage
//
//	space, err := features.NewSpace(ctx, dataset.Restaurants, 4)
//	if err != nil {
//	    return err
//	}
//	session := algorithms.NewContentBased(space, dataset.Reviews, algorithms.ContentBasedConfig{})
//	if err := session.Fit(ctx, "user-42"); err != nil {
//	    return err
//	}
//	ranked, err := session.Predict()
package algorithms
