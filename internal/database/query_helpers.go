// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/tomtom215/platewise/internal/metrics"
)

// scanFunc is a function that scans a single row into a result type
type scanFunc[T any] func(*sql.Rows) (T, error)

// queryAndScan executes a query and scans all rows using the provided scan
// function. sizeHint preallocates the result.
func queryAndScan[T any](ctx context.Context, db *sql.DB, table, query string, sizeHint int, scan scanFunc[T]) (results []T, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("select", table, time.Since(start), err)
	}()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows)

	results = make([]T, 0, sizeHint)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
