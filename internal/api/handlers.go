// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/platewise/internal/middleware"
	"github.com/tomtom215/platewise/internal/recommend"
	"github.com/tomtom215/platewise/internal/recommend/engine"
	"github.com/tomtom215/platewise/internal/recommend/features"
)

// Handler serves the recommendation API from a loaded engine.
type Handler struct {
	engine    *engine.Engine
	startTime time.Time
}

// NewHandler creates a handler for eng.
func NewHandler(eng *engine.Engine) *Handler {
	return &Handler{
		engine:    eng,
		startTime: time.Now(),
	}
}

// Recommendations handles GET /api/v1/recommendations/{userID}.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	k, err := queryInt(r, "k", 0)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	exclude, err := queryBool(r, "exclude_visited")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	req := RecommendationsRequest{
		UserID:         pathParam(r, "userID"),
		K:              k,
		ExcludeVisited: exclude,
	}
	if !validateRequest(w, r, &req) {
		return
	}

	resp, err := h.engine.Recommend(r.Context(), engine.Request{
		RequestID:      middleware.GetRequestID(r.Context()),
		UserID:         req.UserID,
		K:              req.K,
		ExcludeVisited: req.ExcludeVisited,
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	rw.SuccessList(resp, len(resp.Items))
}

// Profile handles GET /api/v1/users/{userID}/profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	req := UserRequest{UserID: pathParam(r, "userID")}
	if !validateRequest(w, r, &req) {
		return
	}

	p, err := h.engine.Profile(r.Context(), req.UserID)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(p)
}

// User handles GET /api/v1/users/{userID}.
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	req := UserRequest{UserID: pathParam(r, "userID")}
	if !validateRequest(w, r, &req) {
		return
	}

	u, err := h.engine.User(req.UserID)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(u)
}

// Users handles GET /api/v1/users?limit=&offset=.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, err := queryInt(r, "limit", 100)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req := UsersRequest{Limit: limit, Offset: offset}
	if !validateRequest(w, r, &req) {
		return
	}

	users, err := h.engine.Users()
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	page := make([]recommend.User, 0, req.Limit)
	if req.Offset < len(users) {
		end := req.Offset + req.Limit
		if end > len(users) {
			end = len(users)
		}
		page = append(page, users[req.Offset:end]...)
	}
	rw.SuccessList(map[string]interface{}{
		"users":  page,
		"total":  len(users),
		"offset": req.Offset,
		"limit":  req.Limit,
	}, len(page))
}

// Categories handles GET /api/v1/categories?prefix=&limit=. Without a prefix
// it lists the whole vocabulary in column order; with one it returns
// completions, most common first.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req := CategoriesRequest{Prefix: r.URL.Query().Get("prefix"), Limit: limit}
	if !validateRequest(w, r, &req) {
		return
	}

	if req.Prefix != "" {
		suggestions, err := h.engine.Suggest(req.Prefix, req.Limit)
		if err != nil {
			respondEngineError(w, r, err)
			return
		}
		if suggestions == nil {
			suggestions = []features.LabelCount{}
		}
		rw.SuccessList(suggestions, len(suggestions))
		return
	}

	labels, err := h.engine.Categories()
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	if req.Limit > 0 && req.Limit < len(labels) {
		labels = labels[:req.Limit]
	}
	rw.SuccessList(labels, len(labels))
}

// Associations handles GET /api/v1/categories/{label}/associations?k=.
func (h *Handler) Associations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	k, err := queryInt(r, "k", 10)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req := AssociationsRequest{Label: pathParam(r, "label"), K: k}
	if !validateRequest(w, r, &req) {
		return
	}

	assoc, err := h.engine.Associations(req.Label, req.K)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	if assoc == nil {
		assoc = []features.Association{}
	}
	rw.SuccessList(assoc, len(assoc))
}

// Pairs handles GET /api/v1/categories/pairs?k=.
func (h *Handler) Pairs(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	k, err := queryInt(r, "k", 20)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req := PairsRequest{K: k}
	if !validateRequest(w, r, &req) {
		return
	}

	pairs, err := h.engine.TopPairs(req.K)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	if pairs == nil {
		pairs = []features.Association{}
	}
	rw.SuccessList(pairs, len(pairs))
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.engine.Stats())
}

// Reload handles POST /api/v1/admin/reload. It rereads the dataset from the
// engine's provider; on failure the previous dataset keeps serving.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Load(r.Context()); err != nil {
		respondEngineError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(h.engine.Stats())
}
