// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tomtom215/platewise/internal/recommend"
)

// Restaurants returns the catalog in source order.
func (db *DB) Restaurants(ctx context.Context) ([]recommend.Restaurant, error) {
	out, err := queryAndScan(ctx, db.conn, TableRestaurants,
		`SELECT business_id, name, stars, categories FROM restaurants ORDER BY seq`,
		1024,
		func(rows *sql.Rows) (recommend.Restaurant, error) {
			var r recommend.Restaurant
			var categories string
			if err := rows.Scan(&r.ID, &r.Name, &r.Rating, &categories); err != nil {
				return r, err
			}
			r.Categories = SplitCategories(categories)
			return r, nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to read restaurants: %w", err)
	}
	return out, nil
}

// Users returns every user in source order.
func (db *DB) Users(ctx context.Context) ([]recommend.User, error) {
	out, err := queryAndScan(ctx, db.conn, TableUsers,
		`SELECT user_id, name, review_count FROM users ORDER BY seq`,
		1024,
		func(rows *sql.Rows) (recommend.User, error) {
			var u recommend.User
			var count int64
			err := rows.Scan(&u.ID, &u.Name, &count)
			u.ReviewCount = int(count)
			return u, err
		})
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return out, nil
}

// Reviews returns every review in source order.
func (db *DB) Reviews(ctx context.Context) ([]recommend.Review, error) {
	out, err := queryAndScan(ctx, db.conn, TableReviews,
		`SELECT user_id, business_id, stars FROM reviews ORDER BY seq`,
		4096,
		func(rows *sql.Rows) (recommend.Review, error) {
			var r recommend.Review
			err := rows.Scan(&r.UserID, &r.BusinessID, &r.Stars)
			return r, err
		})
	if err != nil {
		return nil, fmt.Errorf("failed to read reviews: %w", err)
	}
	return out, nil
}

// SplitCategories splits Yelp's comma-joined category string. Pieces keep
// their surrounding whitespace; the vocabulary trims them.
func SplitCategories(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}

// Provider serves the dataset tables, optionally restricting the catalog to
// businesses carrying one category.
type Provider struct {
	db              *DB
	requireCategory string
}

// NewProvider returns a Provider over db. An empty requireCategory keeps
// every business.
func NewProvider(db *DB, requireCategory string) *Provider {
	return &Provider{db: db, requireCategory: strings.TrimSpace(requireCategory)}
}

// Restaurants returns the (filtered) catalog in source order. Reviews of
// filtered-out businesses become orphans and are ignored when fitting.
func (p *Provider) Restaurants(ctx context.Context) ([]recommend.Restaurant, error) {
	all, err := p.db.Restaurants(ctx)
	if err != nil {
		return nil, err
	}
	if p.requireCategory == "" {
		return all, nil
	}
	return FilterByCategory(all, p.requireCategory), nil
}

// Users returns every user.
func (p *Provider) Users(ctx context.Context) ([]recommend.User, error) {
	return p.db.Users(ctx)
}

// Reviews returns every review.
func (p *Provider) Reviews(ctx context.Context) ([]recommend.Review, error) {
	return p.db.Reviews(ctx)
}

// FilterByCategory keeps restaurants with a category equal to label after
// trimming. Order is preserved.
//
//nolint:gocritic // rangeValCopy: Restaurant read by value for clarity
func FilterByCategory(restaurants []recommend.Restaurant, label string) []recommend.Restaurant {
	label = strings.TrimSpace(label)
	out := make([]recommend.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		for _, c := range r.Categories {
			if strings.TrimSpace(c) == label {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
