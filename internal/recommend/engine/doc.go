// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

/*
Package engine serves recommendations from a loaded dataset.

Load reads the restaurants, users and reviews from a DataProvider once,
builds the shared feature space and indexes reviews by user. Each call to
Recommend then fits a fresh content-based session for the requested user,
so concurrent requests never share mutable state.

# Caching

When a RankingCache is configured, fitted rankings are stored under a key
derived from the dataset fingerprint and the user id. A ranking keeps
MaxK plus the number of visited restaurants, enough to answer any K with or
without visited restaurants excluded. Reloading a dataset with different
content changes the fingerprint and purges stale entries. Cache failures are
logged and the request falls back to a fresh fit.

# Errors

Fit errors are returned wrapped, so callers classify them with errors.Is
against recommend.ErrNoHistory, recommend.ErrDegenerateModel and
recommend.ErrUnknownCategory, or with recommend.ErrorKind. ErrNotLoaded is
returned by every query before the first successful Load.
*/
package engine
