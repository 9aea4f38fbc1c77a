// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package recommend

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDataset_ReviewsByUser(t *testing.T) {
	ds := &Dataset{
		Reviews: []Review{
			{UserID: "u1", BusinessID: "b2", Stars: 4},
			{UserID: "u2", BusinessID: "b1", Stars: 3},
			{UserID: "u1", BusinessID: "b1", Stars: 5},
		},
	}

	got := ds.ReviewsByUser("u1")
	if len(got) != 2 {
		t.Fatalf("ReviewsByUser(u1) returned %d reviews, want 2", len(got))
	}
	if got[0].BusinessID != "b2" || got[1].BusinessID != "b1" {
		t.Errorf("ReviewsByUser(u1) = %v, want dataset order [b2 b1]", got)
	}
	if got := ds.ReviewsByUser("missing"); len(got) != 0 {
		t.Errorf("ReviewsByUser(missing) = %v, want empty", got)
	}
}

func TestNewRecommendation(t *testing.T) {
	r := Restaurant{ID: "b1", Name: "Sushi Place", Rating: 4.5, Categories: []string{"Sushi"}}
	rec := NewRecommendation(r, 0.75)

	if rec.ID != "b1" || rec.Name != "Sushi Place" || rec.Rating != 4.5 || rec.Score != 0.75 {
		t.Errorf("NewRecommendation() = %+v", rec)
	}
	if len(rec.Categories) != 1 || rec.Categories[0] != "Sushi" {
		t.Errorf("Categories = %v, want [Sushi]", rec.Categories)
	}
}

func TestTypedErrors_Unwrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		kind     string
		contains string
	}{
		{"configuration", &ConfigurationError{Category: "Tapas", RestaurantID: "b9"}, ErrUnknownCategory, "configuration", "Tapas"},
		{"no history", &NoHistoryError{UserID: "u1"}, ErrNoHistory, "no_history", "u1"},
		{"no history orphaned", &NoHistoryError{UserID: "u1", Orphaned: 2}, ErrNoHistory, "no_history", "2 reviews"},
		{"degenerate", &DegenerateModelError{UserID: "u2", Visited: 3}, ErrDegenerateModel, "degenerate_model", "u2"},
		{"not fitted", &NotFittedError{Op: "predict"}, ErrNotFitted, "not_fitted", "predict"},
		{"wrapped", fmt.Errorf("fit: %w", &NoHistoryError{UserID: "u3"}), ErrNoHistory, "no_history", "u3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
			if got := ErrorKind(tt.err); got != tt.kind {
				t.Errorf("ErrorKind() = %q, want %q", got, tt.kind)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("Error() = %q, want it to contain %q", tt.err.Error(), tt.contains)
			}
		})
	}
}

func TestErrorKind_Other(t *testing.T) {
	if got := ErrorKind(nil); got != "" {
		t.Errorf("ErrorKind(nil) = %q, want empty", got)
	}
	if got := ErrorKind(errors.New("boom")); got != "internal" {
		t.Errorf("ErrorKind(boom) = %q, want internal", got)
	}
	if got := ErrorKind(ErrEmptyCatalog); got != "empty_catalog" {
		t.Errorf("ErrorKind(ErrEmptyCatalog) = %q, want empty_catalog", got)
	}
}
