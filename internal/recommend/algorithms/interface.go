// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package algorithms

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/platewise/internal/recommend"
)

// Recommender is a single-user recommendation session.
type Recommender interface {
	// Name returns the algorithm identifier.
	Name() string

	// Fit computes the model for userID, replacing any previous state.
	Fit(ctx context.Context, userID string) error

	// Predict returns the full catalog in ranked order.
	Predict() ([]recommend.Recommendation, error)

	// IsFitted reports whether the last Fit succeeded.
	IsFitted() bool

	// Version counts successful fits.
	Version() int
}

// BaseAlgorithm provides the session bookkeeping shared by algorithms.
type BaseAlgorithm struct {
	name        string
	fitted      bool
	version     int
	lastFitAt   time.Time
	lastFitTook time.Duration
	mu          sync.RWMutex
}

// NewBaseAlgorithm creates a new base algorithm with the given name.
func NewBaseAlgorithm(name string) BaseAlgorithm {
	return BaseAlgorithm{
		name: name,
	}
}

// Name returns the algorithm identifier.
func (b *BaseAlgorithm) Name() string {
	return b.name
}

// IsFitted returns whether the session holds a model.
func (b *BaseAlgorithm) IsFitted() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fitted
}

// Version returns the number of successful fits.
func (b *BaseAlgorithm) Version() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// LastFitAt returns when the session was last fitted.
func (b *BaseAlgorithm) LastFitAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastFitAt
}

// LastFitDuration returns how long the last successful fit took.
func (b *BaseAlgorithm) LastFitDuration() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastFitTook
}

// markFitted records a successful fit that started at start.
// Must be called while holding the fit lock.
func (b *BaseAlgorithm) markFitted(start time.Time) {
	b.fitted = true
	b.version++
	b.lastFitAt = time.Now()
	b.lastFitTook = b.lastFitAt.Sub(start)
}

// markUnfitted drops the fitted flag. Must be called while holding the fit lock.
func (b *BaseAlgorithm) markUnfitted() {
	b.fitted = false
}

// acquireFitLock acquires the exclusive fit lock.
func (b *BaseAlgorithm) acquireFitLock() {
	b.mu.Lock()
}

// releaseFitLock releases the exclusive fit lock.
func (b *BaseAlgorithm) releaseFitLock() {
	b.mu.Unlock()
}

// acquirePredictLock acquires the shared prediction lock.
func (b *BaseAlgorithm) acquirePredictLock() {
	b.mu.RLock()
}

// releasePredictLock releases the shared prediction lock.
func (b *BaseAlgorithm) releasePredictLock() {
	b.mu.RUnlock()
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

var _ Recommender = (*ContentBased)(nil)
