// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

// Package cache stores computed rankings so repeat requests for a user skip
// the fit.
//
// Entries are keyed by dataset fingerprint and user id:
//
//	ranking:<fingerprint>:<user_id>
//
// A reload with different data produces a new fingerprint, so old entries are
// never served; PurgeStale reclaims them. Store layers a small in-process LRU
// over BadgerDB, which holds entries with a native TTL and survives restarts.
//
//	store, err := cache.Open(cache.Config{Path: "./data/cache", TTL: time.Hour})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
package cache
