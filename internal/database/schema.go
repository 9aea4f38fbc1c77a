// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package database

import (
	"context"
	"fmt"
)

// Table names.
const (
	TableRestaurants = "restaurants"
	TableUsers       = "users"
	TableReviews     = "reviews"
)

// Tables lists every dataset table in import order.
var Tables = []string{TableRestaurants, TableUsers, TableReviews}

// seq records source order. Catalog order fixes vocabulary slots and tie
// order; review order fixes the order of repeated visits.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS restaurants (
		business_id VARCHAR NOT NULL,
		name        VARCHAR NOT NULL,
		stars       DOUBLE  NOT NULL,
		categories  VARCHAR NOT NULL,
		seq         BIGINT  NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id      VARCHAR NOT NULL,
		name         VARCHAR NOT NULL,
		review_count BIGINT  NOT NULL,
		seq          BIGINT  NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		review_id   VARCHAR NOT NULL,
		user_id     VARCHAR NOT NULL,
		business_id VARCHAR NOT NULL,
		stars       DOUBLE  NOT NULL,
		seq         BIGINT  NOT NULL
	)`,
}

// createTables creates the dataset tables if they are missing.
func (db *DB) createTables() error {
	ctx, cancel := db.ensureContext(context.Background())
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// truncate empties one dataset table.
func (db *DB) truncate(ctx context.Context, table string) error {
	// table is always one of the constants above.
	if _, err := db.conn.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	return nil
}

// TableCounts holds row counts per dataset table.
type TableCounts struct {
	Restaurants int64 `json:"restaurants"`
	Users       int64 `json:"users"`
	Reviews     int64 `json:"reviews"`
}

// Counts returns the number of rows in each dataset table.
func (db *DB) Counts(ctx context.Context) (TableCounts, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var c TableCounts
	targets := map[string]*int64{
		TableRestaurants: &c.Restaurants,
		TableUsers:       &c.Users,
		TableReviews:     &c.Reviews,
	}
	for _, table := range Tables {
		if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(targets[table]); err != nil {
			return TableCounts{}, fmt.Errorf("failed to count %s: %w", table, err)
		}
	}
	return c, nil
}
