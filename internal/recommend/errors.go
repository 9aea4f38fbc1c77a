// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package recommend

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below unwrap to these so callers can use
// errors.Is without caring about the diagnostic fields.
var (
	// ErrUnknownCategory is returned when encoding a label outside the vocabulary.
	ErrUnknownCategory = errors.New("category outside known vocabulary")

	// ErrNoHistory is returned when the target user has no rated restaurants.
	ErrNoHistory = errors.New("user has no rated restaurants")

	// ErrDegenerateModel is returned when the preference vector sums to zero.
	ErrDegenerateModel = errors.New("preference vector has zero magnitude")

	// ErrNotFitted is returned when predicting before a successful fit.
	ErrNotFitted = errors.New("recommender has not been fitted")

	// ErrEmptyCatalog is returned when building a vocabulary from no restaurants.
	ErrEmptyCatalog = errors.New("restaurant catalog is empty")

	// ErrMisaligned is returned when visited features and ratings disagree.
	ErrMisaligned = errors.New("visited features and ratings are misaligned")
)

// ConfigurationError reports a category label that is not part of the
// vocabulary the encoder was built with.
type ConfigurationError struct {
	// Category is the offending label after trimming.
	Category string

	// RestaurantID identifies the restaurant being encoded, when known.
	RestaurantID string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.RestaurantID != "" {
		return fmt.Sprintf("%s: %q (restaurant %s)", ErrUnknownCategory, e.Category, e.RestaurantID)
	}
	return fmt.Sprintf("%s: %q", ErrUnknownCategory, e.Category)
}

// Unwrap returns ErrUnknownCategory.
func (e *ConfigurationError) Unwrap() error {
	return ErrUnknownCategory
}

// NoHistoryError reports a fit for a user with no usable reviews.
type NoHistoryError struct {
	// UserID is the target user.
	UserID string

	// Orphaned counts the user's reviews that referenced restaurants missing
	// from the catalog and were therefore excluded.
	Orphaned int
}

// Error implements the error interface.
func (e *NoHistoryError) Error() string {
	if e.Orphaned > 0 {
		return fmt.Sprintf("%s: user %s (%d reviews reference unknown restaurants)", ErrNoHistory, e.UserID, e.Orphaned)
	}
	return fmt.Sprintf("%s: user %s", ErrNoHistory, e.UserID)
}

// Unwrap returns ErrNoHistory.
func (e *NoHistoryError) Unwrap() error {
	return ErrNoHistory
}

// DegenerateModelError reports a preference vector that cannot be normalized.
type DegenerateModelError struct {
	// UserID is the target user.
	UserID string

	// Visited is the number of rated restaurants that contributed.
	Visited int
}

// Error implements the error interface.
func (e *DegenerateModelError) Error() string {
	return fmt.Sprintf("%s: user %s (%d visited restaurants)", ErrDegenerateModel, e.UserID, e.Visited)
}

// Unwrap returns ErrDegenerateModel.
func (e *DegenerateModelError) Unwrap() error {
	return ErrDegenerateModel
}

// NotFittedError reports an operation that requires a prior successful fit.
type NotFittedError struct {
	// Op is the operation that was attempted.
	Op string
}

// Error implements the error interface.
func (e *NotFittedError) Error() string {
	return e.Op + ": " + ErrNotFitted.Error()
}

// Unwrap returns ErrNotFitted.
func (e *NotFittedError) Unwrap() error {
	return ErrNotFitted
}

// ErrorKind returns a short label for err suitable for metrics and logs.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownCategory):
		return "configuration"
	case errors.Is(err, ErrNoHistory):
		return "no_history"
	case errors.Is(err, ErrDegenerateModel):
		return "degenerate_model"
	case errors.Is(err, ErrNotFitted):
		return "not_fitted"
	case errors.Is(err, ErrEmptyCatalog):
		return "empty_catalog"
	case errors.Is(err, ErrMisaligned):
		return "misaligned"
	default:
		return "internal"
	}
}
