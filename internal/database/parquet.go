// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/platewise/internal/metrics"
)

// parquetTable describes how one table maps to Parquet files.
type parquetTable struct {
	table string
	// patterns are tried in order; the first with matches wins. The second
	// pattern accepts the file names of the pandas preprocessing script.
	patterns []string
	// columns is the export projection and the import column order.
	columns []string
	// selects casts and defaults each column when importing.
	selects []string
}

var parquetTables = []parquetTable{
	{
		table:    TableRestaurants,
		patterns: []string{"restaurants*.parquet", "yelp_business_data*.parquet"},
		columns:  []string{"business_id", "name", "stars", "categories"},
		selects: []string{
			"CAST(business_id AS VARCHAR)",
			"COALESCE(CAST(name AS VARCHAR), '')",
			"COALESCE(CAST(stars AS DOUBLE), 0)",
			"COALESCE(CAST(categories AS VARCHAR), '')",
		},
	},
	{
		table:    TableUsers,
		patterns: []string{"users*.parquet", "yelp_user_data*.parquet"},
		columns:  []string{"user_id", "name", "review_count"},
		selects: []string{
			"CAST(user_id AS VARCHAR)",
			"COALESCE(CAST(name AS VARCHAR), '')",
			"COALESCE(CAST(review_count AS BIGINT), 0)",
		},
	},
	{
		table:    TableReviews,
		patterns: []string{"reviews*.parquet", "yelp_academic_dataset_reviews*.parquet"},
		columns:  []string{"review_id", "user_id", "business_id", "stars"},
		selects: []string{
			"COALESCE(CAST(review_id AS VARCHAR), '')",
			"CAST(user_id AS VARCHAR)",
			"CAST(business_id AS VARCHAR)",
			"COALESCE(CAST(stars AS DOUBLE), 0)",
		},
	},
}

// ExportParquet writes every dataset table to dir as
// restaurants.parquet, users.parquet and reviews.parquet (ZSTD), rows in
// source order.
func (db *DB) ExportParquet(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	for _, pt := range parquetTables {
		outputPath := filepath.Join(dir, pt.table+".parquet")
		start := time.Now()

		exportQuery := fmt.Sprintf(`
			COPY (SELECT %s FROM %s ORDER BY seq) TO ? (
				FORMAT PARQUET,
				COMPRESSION 'ZSTD',
				ROW_GROUP_SIZE 100000
			)`, strings.Join(pt.columns, ", "), pt.table)

		_, err := db.conn.ExecContext(ctx, exportQuery, outputPath)
		metrics.RecordDBQuery("export_parquet", pt.table, time.Since(start), err)
		if err != nil {
			return fmt.Errorf("failed to export %s to Parquet: %w", pt.table, err)
		}

		db.logger.Info().Str("table", pt.table).Str("file", outputPath).Msg("table exported")
	}
	return nil
}

// ImportParquet replaces the dataset tables with the Parquet files in dir.
// Multiple files per table (e.g. reviews_part1, reviews_part2) are read in
// file name order.
func (db *DB) ImportParquet(ctx context.Context, dir string) (*ImportStats, error) {
	start := time.Now()
	stats := &ImportStats{}
	targets := map[string]*int64{
		TableRestaurants: &stats.Restaurants,
		TableUsers:       &stats.Users,
		TableReviews:     &stats.Reviews,
	}

	for _, pt := range parquetTables {
		files, err := resolveParquetFiles(dir, pt.patterns)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no Parquet files for %s in %s (want %s)", pt.table, dir, strings.Join(pt.patterns, " or "))
		}

		n, err := db.importParquetTable(ctx, pt, files)
		if err != nil {
			return nil, err
		}
		*targets[pt.table] = n
	}

	stats.Took = time.Since(start)
	db.logger.Info().
		Int64("restaurants", stats.Restaurants).
		Int64("users", stats.Users).
		Int64("reviews", stats.Reviews).
		Dur("took", stats.Took).
		Msg("Parquet import complete")
	return stats, nil
}

// importParquetTable loads files into pt.table in a single transaction.
func (db *DB) importParquetTable(ctx context.Context, pt parquetTable, files []string) (n int64, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("import_parquet", pt.table, time.Since(start), err)
		if err == nil {
			metrics.RecordImport(pt.table, n)
		}
	}()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				db.logger.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM "+pt.table); err != nil {
		return 0, fmt.Errorf("failed to clear %s: %w", pt.table, err)
	}

	// seq restarts from zero across all files in file name order.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, seq)
		SELECT %s, row_number() OVER (ORDER BY filename, file_row_number) - 1
		FROM read_parquet(%s, filename = true, file_row_number = true)`,
		pt.table, strings.Join(pt.columns, ", "), strings.Join(pt.selects, ", "), sqlStringList(files))

	if _, err = tx.ExecContext(ctx, query); err != nil {
		return 0, fmt.Errorf("failed to import %s from Parquet: %w", pt.table, err)
	}

	if err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+pt.table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", pt.table, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit %s import: %w", pt.table, err)
	}

	db.logger.Info().Str("table", pt.table).Int64("rows", n).Int("files", len(files)).Msg("table imported")
	return n, nil
}

// resolveParquetFiles returns the sorted matches of the first pattern that
// matches anything in dir.
func resolveParquetFiles(dir string, patterns []string) ([]string, error) {
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad Parquet pattern %q: %w", pattern, err)
		}
		if len(matches) > 0 {
			sort.Strings(matches)
			return matches, nil
		}
	}
	return nil, nil
}

// sqlStringList renders paths as a DuckDB list literal. Table functions
// take their file argument as a constant, so paths are quoted rather than
// bound.
func sqlStringList(paths []string) string {
	quoted := make([]string, len(paths))
	for i, p := range paths {
		quoted[i] = "'" + strings.ReplaceAll(p, "'", "''") + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
