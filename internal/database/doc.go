// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

// Package database stores the review dataset in DuckDB.
//
// # Tables
//
//   - restaurants(business_id, name, stars, categories, seq)
//   - users(user_id, name, review_count, seq)
//   - reviews(review_id, user_id, business_id, stars, seq)
//
// categories keeps Yelp's comma-joined string; SplitCategories turns it
// into labels on read. seq is the source row order. Catalog order decides
// vocabulary slots and how ties rank, so every read is ORDER BY seq.
//
// # Loading
//
// ImportJSON streams the raw Yelp JSON-lines files through a DuckDB
// appender. ImportParquet and ExportParquet move the tables to and from
// ZSTD-compressed Parquet, including the files written by the older pandas
// preprocessing step (yelp_business_data.parquet and friends).
//
// # Serving
//
// DB and Provider implement the engine's DataProvider. Provider can
// restrict the catalog to businesses carrying a category such as
// "Restaurants".
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//	provider := database.NewProvider(db, cfg.Data.RequireCategory)
package database
