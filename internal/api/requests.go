// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/platewise/internal/validation"
)

// RecommendationsRequest holds the validated parameters of
// GET /api/v1/recommendations/{userID}. K of zero means the configured
// default.
type RecommendationsRequest struct {
	UserID         string `validate:"required,label,max=128"`
	K              int    `validate:"min=0,max=10000"`
	ExcludeVisited *bool
}

// CategoriesRequest holds the parameters of GET /api/v1/categories.
type CategoriesRequest struct {
	Prefix string `validate:"max=128"`
	Limit  int    `validate:"min=0,max=10000"`
}

// AssociationsRequest holds the parameters of
// GET /api/v1/categories/{label}/associations.
type AssociationsRequest struct {
	Label string `validate:"required,label,max=128"`
	K     int    `validate:"min=0,max=10000"`
}

// PairsRequest holds the parameters of GET /api/v1/categories/pairs.
type PairsRequest struct {
	K int `validate:"min=1,max=10000"`
}

// UsersRequest holds the pagination parameters of GET /api/v1/users.
type UsersRequest struct {
	Limit  int `validate:"min=1,max=1000"`
	Offset int `validate:"min=0"`
}

// UserRequest identifies one user by path parameter.
type UserRequest struct {
	UserID string `validate:"required,label,max=128"`
}

// queryInt parses an integer query parameter. Missing values yield def;
// malformed values are an error.
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query parameter %s must be an integer, got %q", key, raw)
	}
	return v, nil
}

// queryBool parses an optional boolean query parameter.
func queryBool(r *http.Request, key string) (*bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("query parameter %s must be a boolean, got %q", key, raw)
	}
	return &v, nil
}

// pathParam returns an unescaped chi URL parameter.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// validateRequest validates v and writes a 400 response on failure. It
// reports whether the handler may continue.
func validateRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return true
	}
	NewResponseWriter(w, r).ValidationError(verr.Error(), verr.Details())
	return false
}
