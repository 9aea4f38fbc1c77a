// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package database

import (
	"bufio"
	"bytes"
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/duckdb/duckdb-go/v2"
	"github.com/goccy/go-json"

	"github.com/tomtom215/platewise/internal/metrics"
)

// maxLineBytes bounds a single JSON-lines record. Yelp reviews carry the
// full review text.
const maxLineBytes = 16 << 20

// DefaultBatchSize is the number of rows appended between flushes.
const DefaultBatchSize = 10000

// JSONSources names the raw Yelp JSON-lines files.
type JSONSources struct {
	Businesses string
	Users      string
	Reviews    string
}

// ImportStats reports an import run.
type ImportStats struct {
	Restaurants int64         `json:"restaurants"`
	Users       int64         `json:"users"`
	Reviews     int64         `json:"reviews"`
	Took        time.Duration `json:"took"`
}

// yelpBusiness is one line of yelp_academic_dataset_business.json.
// categories is a comma-joined string and may be null.
type yelpBusiness struct {
	BusinessID string  `json:"business_id"`
	Name       string  `json:"name"`
	Stars      float64 `json:"stars"`
	Categories *string `json:"categories"`
}

type yelpUser struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	ReviewCount int64  `json:"review_count"`
}

type yelpReview struct {
	ReviewID   string  `json:"review_id"`
	UserID     string  `json:"user_id"`
	BusinessID string  `json:"business_id"`
	Stars      float64 `json:"stars"`
}

// lineSpec maps one JSON-lines record type onto a table.
type lineSpec[T any] struct {
	table  string
	check  func(rec *T) error
	values func(rec *T, seq int64) []driver.Value
}

var businessLines = lineSpec[yelpBusiness]{
	table: TableRestaurants,
	check: func(b *yelpBusiness) error {
		if b.BusinessID == "" {
			return errors.New("missing business_id")
		}
		return nil
	},
	values: func(b *yelpBusiness, seq int64) []driver.Value {
		categories := ""
		if b.Categories != nil {
			categories = *b.Categories
		}
		return []driver.Value{b.BusinessID, b.Name, b.Stars, categories, seq}
	},
}

var userLines = lineSpec[yelpUser]{
	table: TableUsers,
	check: func(u *yelpUser) error {
		if u.UserID == "" {
			return errors.New("missing user_id")
		}
		return nil
	},
	values: func(u *yelpUser, seq int64) []driver.Value {
		return []driver.Value{u.UserID, u.Name, u.ReviewCount, seq}
	},
}

var reviewLines = lineSpec[yelpReview]{
	table: TableReviews,
	check: func(r *yelpReview) error {
		if r.UserID == "" || r.BusinessID == "" {
			return errors.New("missing user_id or business_id")
		}
		return nil
	},
	values: func(r *yelpReview, seq int64) []driver.Value {
		return []driver.Value{r.ReviewID, r.UserID, r.BusinessID, r.Stars, seq}
	},
}

// ImportJSON replaces the dataset tables with the contents of the Yelp
// JSON-lines files. Empty paths leave the corresponding table untouched.
// Rows keep file order.
func (db *DB) ImportJSON(ctx context.Context, src JSONSources, batchSize int) (*ImportStats, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	start := time.Now()
	stats := &ImportStats{}

	var err error
	if src.Businesses != "" {
		if stats.Restaurants, err = importLines(ctx, db, src.Businesses, businessLines, batchSize); err != nil {
			return nil, err
		}
	}
	if src.Users != "" {
		if stats.Users, err = importLines(ctx, db, src.Users, userLines, batchSize); err != nil {
			return nil, err
		}
	}
	if src.Reviews != "" {
		if stats.Reviews, err = importLines(ctx, db, src.Reviews, reviewLines, batchSize); err != nil {
			return nil, err
		}
	}

	stats.Took = time.Since(start)
	db.logger.Info().
		Int64("restaurants", stats.Restaurants).
		Int64("users", stats.Users).
		Int64("reviews", stats.Reviews).
		Dur("took", stats.Took).
		Msg("JSON import complete")
	return stats, nil
}

// importLines streams one JSON-lines file into spec.table through a DuckDB
// appender. A failed import leaves the table empty.
func importLines[T any](ctx context.Context, db *DB, path string, spec lineSpec[T], batchSize int) (n int64, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("import_json", spec.table, time.Since(start), err)
		if err == nil {
			metrics.RecordImport(spec.table, n)
		}
	}()

	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer closeWithLog(f, db.logger, "import file")

	if err := db.truncate(ctx, spec.table); err != nil {
		return 0, err
	}

	n, err = db.withAppender(ctx, spec.table, func(a *duckdb.Appender) (int64, error) {
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

		var rows int64
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}

			var rec T
			if err := json.Unmarshal(line, &rec); err != nil {
				return rows, fmt.Errorf("%s line %d: %w", filepath.Base(path), lineNo, err)
			}
			if err := spec.check(&rec); err != nil {
				return rows, fmt.Errorf("%s line %d: %w", filepath.Base(path), lineNo, err)
			}
			if err := a.AppendRow(spec.values(&rec, rows)...); err != nil {
				return rows, fmt.Errorf("append %s row %d: %w", spec.table, rows, err)
			}
			rows++

			if rows%int64(batchSize) == 0 {
				if err := a.Flush(); err != nil {
					return rows, fmt.Errorf("flush %s: %w", spec.table, err)
				}
				if err := ctx.Err(); err != nil {
					return rows, err
				}
				db.logger.Debug().Str("table", spec.table).Int64("rows", rows).Msg("import progress")
			}
		}
		if err := scanner.Err(); err != nil {
			return rows, fmt.Errorf("read %s: %w", path, err)
		}
		return rows, nil
	})
	if err != nil {
		// Never leave a half-imported table behind.
		cleanupCtx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
		if clearErr := db.truncate(cleanupCtx, spec.table); clearErr != nil {
			db.logger.Warn().Err(clearErr).Str("table", spec.table).Msg("Failed to clear table after import error")
		}
		cancel()
		return 0, err
	}

	db.logger.Info().Str("table", spec.table).Int64("rows", n).Str("file", path).Msg("table imported")
	return n, nil
}

// withAppender runs fn with a DuckDB appender on table and closes it,
// flushing any remaining rows.
func (db *DB) withAppender(ctx context.Context, table string, fn func(a *duckdb.Appender) (int64, error)) (int64, error) {
	conn, err := db.conn.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer closeQuietly(conn)

	var n int64
	err = conn.Raw(func(driverConn any) error {
		dc, ok := driverConn.(driver.Conn)
		if !ok {
			return fmt.Errorf("unexpected driver connection type %T", driverConn)
		}

		a, err := duckdb.NewAppenderFromConn(dc, "", table)
		if err != nil {
			return fmt.Errorf("failed to create appender for %s: %w", table, err)
		}

		n, err = fn(a)
		if closeErr := a.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close appender for %s: %w", table, closeErr)
		}
		return err
	})
	return n, err
}
