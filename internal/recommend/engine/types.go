// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package engine

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/platewise/internal/cache"
	"github.com/tomtom215/platewise/internal/recommend"
)

// ErrNotLoaded is returned before a successful Load.
var ErrNotLoaded = errors.New("dataset not loaded")

// ErrUnknownUser is returned by User for ids absent from the users table.
var ErrUnknownUser = errors.New("unknown user")

// DataProvider supplies the three dataset tables. It is typically
// implemented by the database layer.
type DataProvider interface {
	// Restaurants returns the catalog in a stable order.
	Restaurants(ctx context.Context) ([]recommend.Restaurant, error)

	// Users returns every known user.
	Users(ctx context.Context) ([]recommend.User, error)

	// Reviews returns every review in dataset order.
	Reviews(ctx context.Context) ([]recommend.Review, error)
}

// RankingCache stores fitted rankings keyed by dataset fingerprint and user.
type RankingCache interface {
	Get(ctx context.Context, key string) (*cache.Entry, bool, error)
	Put(ctx context.Context, key string, e *cache.Entry) error
	PurgeStale(ctx context.Context, fingerprint string) (int, error)
}

// Request is a recommendation request.
type Request struct {
	// RequestID correlates logs. Generated when empty.
	RequestID string `json:"request_id,omitempty"`

	// UserID is the target user.
	UserID string `json:"user_id"`

	// K is the number of recommendations. Zero means the configured default;
	// values above the configured maximum are clamped.
	K int `json:"k,omitempty"`

	// ExcludeVisited overrides the configured default when non-nil.
	ExcludeVisited *bool `json:"exclude_visited,omitempty"`
}

// Response is a ranked recommendation list.
type Response struct {
	Items           []recommend.Recommendation `json:"items"`
	TotalCandidates int                        `json:"total_candidates"`
	Metadata        ResponseMetadata           `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID      string    `json:"request_id"`
	UserID         string    `json:"user_id"`
	K              int       `json:"k"`
	ExcludeVisited bool      `json:"exclude_visited"`
	Visited        int       `json:"visited"`
	CacheHit       bool      `json:"cache_hit"`
	LatencyMS      int64     `json:"latency_ms"`
	Fingerprint    string    `json:"fingerprint"`
	FittedAt       time.Time `json:"fitted_at"`
	Timestamp      time.Time `json:"timestamp"`
}

// Stats summarizes the loaded dataset and request counters.
type Stats struct {
	Loaded       bool          `json:"loaded"`
	Restaurants  int           `json:"restaurants"`
	Users        int           `json:"users"`
	Reviews      int           `json:"reviews"`
	Vocabulary   int           `json:"vocabulary"`
	Fingerprint  string        `json:"fingerprint,omitempty"`
	LoadedAt     time.Time     `json:"loaded_at,omitempty"`
	LoadDuration time.Duration `json:"load_duration"`
	Requests     int64         `json:"requests"`
	CacheHits    int64         `json:"cache_hits"`
	CacheMisses  int64         `json:"cache_misses"`
	Errors       int64         `json:"errors"`
}
