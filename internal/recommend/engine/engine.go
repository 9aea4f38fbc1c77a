// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/platewise/internal/cache"
	"github.com/tomtom215/platewise/internal/logging"
	"github.com/tomtom215/platewise/internal/metrics"
	"github.com/tomtom215/platewise/internal/recommend"
	"github.com/tomtom215/platewise/internal/recommend/algorithms"
	"github.com/tomtom215/platewise/internal/recommend/features"
)

// Engine loads the dataset once and serves recommendations from it.
// It is safe for concurrent use; every request fits its own session over
// the shared feature space.
type Engine struct {
	config   *recommend.Config
	provider DataProvider
	cache    RankingCache
	logger   zerolog.Logger

	mu   sync.RWMutex
	snap *snapshot

	requests    atomic.Int64
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
	errorCount  atomic.Int64
}

// snapshot is one loaded dataset. It is replaced wholesale by Load.
type snapshot struct {
	space       *features.Space
	users       []recommend.User
	userIndex   map[string]int
	byUser      map[string][]recommend.Review
	reviews     int
	fingerprint string
	loadedAt    time.Time
	loadTook    time.Duration

	coocOnce sync.Once
	cooc     [][]int
}

// New creates an engine. rc may be nil to disable ranking caching.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg *recommend.Config, provider DataProvider, rc RankingCache, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("data provider is required")
	}

	return &Engine{
		config:   cfg.Clone(),
		provider: provider,
		cache:    rc,
		logger:   logger.With().Str("component", "engine").Logger(),
	}, nil
}

// Load reads the dataset from the provider and builds the shared feature
// space. A failed load keeps the previous dataset.
func (e *Engine) Load(ctx context.Context) error {
	start := time.Now()

	restaurants, err := e.provider.Restaurants(ctx)
	if err != nil {
		return fmt.Errorf("load restaurants: %w", err)
	}
	users, err := e.provider.Users(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	reviews, err := e.provider.Reviews(ctx)
	if err != nil {
		return fmt.Errorf("load reviews: %w", err)
	}

	space, err := features.NewSpace(ctx, restaurants, e.config.Workers)
	if err != nil {
		return fmt.Errorf("build feature space: %w", err)
	}

	userIndex := make(map[string]int, len(users))
	for i := range users {
		userIndex[users[i].ID] = i
	}

	snap := &snapshot{
		space:       space,
		users:       users,
		userIndex:   userIndex,
		byUser:      groupByUser(reviews),
		reviews:     len(reviews),
		fingerprint: fingerprint(restaurants, reviews),
		loadedAt:    time.Now(),
	}
	snap.loadTook = time.Since(start)

	e.mu.Lock()
	e.snap = snap
	e.mu.Unlock()

	metrics.RecordDatasetLoad(snap.loadTook, len(restaurants), len(users), len(reviews), space.Dim())

	if e.cachingEnabled() {
		purged, err := e.cache.PurgeStale(ctx, snap.fingerprint)
		if err != nil {
			e.logger.Warn().Err(err).Msg("failed to purge stale rankings")
		} else if purged > 0 {
			e.logger.Info().Int("purged", purged).Msg("purged rankings from previous dataset")
		}
	}

	e.logger.Info().
		Int("restaurants", len(restaurants)).
		Int("users", len(users)).
		Int("reviews", len(reviews)).
		Int("vocabulary", space.Dim()).
		Str("fingerprint", snap.fingerprint).
		Dur("took", snap.loadTook).
		Msg("dataset loaded")
	return nil
}

// groupByUser splits reviews per user, keeping dataset order within a user.
func groupByUser(reviews []recommend.Review) map[string][]recommend.Review {
	out := make(map[string][]recommend.Review)
	for _, r := range reviews {
		out[r.UserID] = append(out[r.UserID], r)
	}
	return out
}

// fingerprint identifies a dataset's content and order. Cached rankings are
// valid only for the fingerprint they were fitted against.
func fingerprint(restaurants []recommend.Restaurant, reviews []recommend.Review) string {
	h := sha256.New()
	buf := make([]byte, 0, 64)

	for i := range restaurants {
		r := &restaurants[i]
		writeField(h, r.ID)
		writeField(h, r.Name)
		buf = strconv.AppendFloat(buf[:0], r.Rating, 'g', -1, 64)
		_, _ = h.Write(buf)
		for _, c := range r.Categories {
			writeField(h, c)
		}
		_, _ = h.Write([]byte{0x1e})
	}
	for i := range reviews {
		r := &reviews[i]
		writeField(h, r.UserID)
		writeField(h, r.BusinessID)
		buf = strconv.AppendFloat(buf[:0], r.Stars, 'g', -1, 64)
		_, _ = h.Write(buf)
		_, _ = h.Write([]byte{0x1e})
	}

	return hex.EncodeToString(h.Sum(nil)[:8])
}

// writeField writes s followed by a unit separator.
func writeField(h hash.Hash, s string) {
	_, _ = h.Write([]byte(s))
	_, _ = h.Write([]byte{0x1f})
}

// current returns the loaded snapshot.
func (e *Engine) current() (*snapshot, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.snap == nil {
		return nil, ErrNotLoaded
	}
	return e.snap, nil
}

// cachingEnabled reports whether rankings go through the cache.
func (e *Engine) cachingEnabled() bool {
	return e.config.Cache.Enabled && e.cache != nil
}

// Recommend returns the top K restaurants for a user.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requests.Add(1)

	snap, err := e.current()
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	req, exclude := e.prepareRequest(req)
	logger := e.requestLogger(ctx, req)
	logger.Debug().Msg("processing recommendation request")

	entry, hit := e.lookup(ctx, snap, req.UserID, logger)
	if !hit {
		entry, err = e.fit(ctx, snap, req.UserID)
		if err != nil {
			e.errorCount.Add(1)
			logger.Debug().Err(err).Str("kind", recommend.ErrorKind(err)).Msg("fit failed")
			return nil, err
		}
		e.store(ctx, snap, entry, logger)
	}

	resp := e.buildResponse(req, exclude, entry, hit, snap.fingerprint, start)
	metrics.RecordServed(len(resp.Items))

	logger.Debug().
		Bool("cache_hit", hit).
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")
	return resp, nil
}

// prepareRequest applies defaults and limits.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, bool) {
	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}
	if req.K <= 0 {
		req.K = e.config.Limits.DefaultK
	}
	if req.K > e.config.Limits.MaxK {
		req.K = e.config.Limits.MaxK
	}

	exclude := e.config.ExcludeVisited
	if req.ExcludeVisited != nil {
		exclude = *req.ExcludeVisited
	}
	return req, exclude
}

// requestLogger derives a logger carrying the request's identifiers and
// the HTTP correlation id when one is present.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) requestLogger(ctx context.Context, req Request) zerolog.Logger {
	lc := e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Int("k", req.K)
	if id := logging.RequestIDFromContext(ctx); id != "" && id != req.RequestID {
		lc = lc.Str("correlation_id", id)
	}
	return lc.Logger()
}

// lookup returns a cached ranking for the user if one exists.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) lookup(ctx context.Context, snap *snapshot, userID string, logger zerolog.Logger) (*cache.Entry, bool) {
	if !e.cachingEnabled() {
		return nil, false
	}

	entry, ok, err := e.cache.Get(ctx, cache.Key(snap.fingerprint, userID))
	if err != nil {
		logger.Warn().Err(err).Msg("ranking cache lookup failed")
		e.cacheMisses.Add(1)
		return nil, false
	}
	if !ok || entry.Fingerprint != snap.fingerprint {
		e.cacheMisses.Add(1)
		return nil, false
	}
	// Entries fitted under a smaller max_k are too short to serve now.
	if want := min(e.config.Limits.MaxK+len(entry.Visited), entry.Candidates); len(entry.Items) < want {
		logger.Debug().Int("cached", len(entry.Items)).Int("want", want).Msg("cached ranking too short, refitting")
		e.cacheMisses.Add(1)
		return nil, false
	}

	e.cacheHits.Add(1)
	return entry, true
}

// store caches a fitted ranking. Failures are logged only.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) store(ctx context.Context, snap *snapshot, entry *cache.Entry, logger zerolog.Logger) {
	if !e.cachingEnabled() {
		return
	}
	if err := e.cache.Put(ctx, cache.Key(snap.fingerprint, entry.UserID), entry); err != nil {
		logger.Warn().Err(err).Msg("failed to cache ranking")
	}
}

// fit runs a fresh content-based session for userID and keeps enough of
// the ranking to serve MaxK results even after visited restaurants are
// removed.
func (e *Engine) fit(ctx context.Context, snap *snapshot, userID string) (*cache.Entry, error) {
	fitCtx, cancel := context.WithTimeout(ctx, e.config.Limits.FitTimeout)
	defer cancel()

	session := algorithms.NewContentBased(snap.space, snap.byUser[userID], algorithms.ContentBasedConfig{
		Workers: e.config.Workers,
		Logger:  e.logger,
	})

	fitStart := time.Now()
	err := session.Fit(fitCtx, userID)
	metrics.RecordFit(time.Since(fitStart), err)
	if err != nil {
		return nil, fmt.Errorf("fit user %s: %w", userID, err)
	}

	visited, err := session.VisitedIDs()
	if err != nil {
		return nil, err
	}
	visited = uniqueIDs(visited)

	items, err := session.Top(e.config.Limits.MaxK + len(visited))
	if err != nil {
		return nil, err
	}

	return &cache.Entry{
		Fingerprint: snap.fingerprint,
		UserID:      userID,
		Items:       items,
		Visited:     visited,
		Candidates:  snap.space.Len(),
		ModelFitAt:  session.LastFitAt(),
		CreatedAt:   time.Now(),
	}, nil
}

// uniqueIDs drops repeats, keeping first occurrences in order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// buildResponse trims a ranking to the request. The entry is shared with
// the cache and is never modified.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponse(req Request, exclude bool, entry *cache.Entry, hit bool, fp string, start time.Time) *Response {
	var skip map[string]struct{}
	candidates := entry.Candidates
	if exclude && len(entry.Visited) > 0 {
		skip = make(map[string]struct{}, len(entry.Visited))
		for _, id := range entry.Visited {
			skip[id] = struct{}{}
		}
		candidates -= len(entry.Visited)
	}

	items := make([]recommend.Recommendation, 0, req.K)
	for i := range entry.Items {
		if len(items) == req.K {
			break
		}
		if _, ok := skip[entry.Items[i].ID]; ok {
			continue
		}
		items = append(items, entry.Items[i])
	}

	return &Response{
		Items:           items,
		TotalCandidates: candidates,
		Metadata: ResponseMetadata{
			RequestID:      req.RequestID,
			UserID:         req.UserID,
			K:              req.K,
			ExcludeVisited: exclude,
			Visited:        len(entry.Visited),
			CacheHit:       hit,
			LatencyMS:      time.Since(start).Milliseconds(),
			Fingerprint:    fp,
			FittedAt:       entry.ModelFitAt,
			Timestamp:      time.Now(),
		},
	}
}

// LabelWeight is one preference vector component.
type LabelWeight struct {
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// Profile explains a user's fit: the restaurants that contributed and the
// non-zero preference weights.
type Profile struct {
	UserID  string        `json:"user_id"`
	Visited []string      `json:"visited"`
	Weights []LabelWeight `json:"weights"`
	Total   float64       `json:"total"`
}

// Profile fits userID and returns the preference vector, heaviest labels
// first. Ties keep vocabulary order.
func (e *Engine) Profile(ctx context.Context, userID string) (*Profile, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}

	fitCtx, cancel := context.WithTimeout(ctx, e.config.Limits.FitTimeout)
	defer cancel()

	session := algorithms.NewContentBased(snap.space, snap.byUser[userID], algorithms.ContentBasedConfig{
		Workers: e.config.Workers,
		Logger:  e.logger,
	})
	if err := session.Fit(fitCtx, userID); err != nil {
		return nil, fmt.Errorf("fit user %s: %w", userID, err)
	}

	prefs, err := session.Preferences()
	if err != nil {
		return nil, err
	}
	visited, err := session.VisitedIDs()
	if err != nil {
		return nil, err
	}

	vocab := snap.space.Vocabulary()
	p := &Profile{UserID: userID, Visited: visited, Weights: make([]LabelWeight, 0)}
	for i, w := range prefs {
		p.Total += w
		if w != 0 {
			p.Weights = append(p.Weights, LabelWeight{Label: vocab.Label(i), Weight: w})
		}
	}
	sort.SliceStable(p.Weights, func(a, b int) bool {
		return p.Weights[a].Weight > p.Weights[b].Weight
	})
	return p, nil
}

// Vocabulary returns the loaded category vocabulary.
func (e *Engine) Vocabulary() (*features.Vocabulary, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}
	return snap.space.Vocabulary(), nil
}

// Categories returns every label with the number of restaurants carrying
// it, in vocabulary order.
func (e *Engine) Categories() ([]features.LabelCount, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}
	return snap.space.LabelCounts(), nil
}

// Suggest completes a category prefix, most common labels first.
func (e *Engine) Suggest(prefix string, limit int) ([]features.LabelCount, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}
	return snap.space.Suggest(prefix, limit), nil
}

// Associations returns the labels that most often share a restaurant with
// target. k <= 0 returns all of them.
func (e *Engine) Associations(target string, k int) ([]features.Association, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}
	return features.TopAssociations(snap.space.Vocabulary(), snap.cooccurrence(), target, k)
}

// TopPairs returns the k most frequent label pairs across the catalog.
func (e *Engine) TopPairs(k int) ([]features.Association, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}
	pairs := features.Associations(snap.space.Vocabulary(), snap.cooccurrence())
	if k > 0 && k < len(pairs) {
		pairs = pairs[:k]
	}
	return pairs, nil
}

// cooccurrence builds the label co-occurrence matrix on first use.
func (s *snapshot) cooccurrence() [][]int {
	s.coocOnce.Do(func() {
		s.cooc = features.CoOccurrence(s.space.Matrix(), s.space.Dim())
	})
	return s.cooc
}

// Users returns every loaded user in dataset order.
func (e *Engine) Users() ([]recommend.User, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}
	out := make([]recommend.User, len(snap.users))
	copy(out, snap.users)
	return out, nil
}

// User looks up one user.
func (e *Engine) User(id string) (recommend.User, error) {
	snap, err := e.current()
	if err != nil {
		return recommend.User{}, err
	}
	i, ok := snap.userIndex[id]
	if !ok {
		return recommend.User{}, fmt.Errorf("%w: %s", ErrUnknownUser, id)
	}
	return snap.users[i], nil
}

// Loaded reports whether a dataset is available.
func (e *Engine) Loaded() bool {
	_, err := e.current()
	return err == nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *recommend.Config {
	return e.config.Clone()
}

// Stats returns dataset sizes and request counters.
func (e *Engine) Stats() Stats {
	st := Stats{
		Requests:    e.requests.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
		Errors:      e.errorCount.Load(),
	}

	snap, err := e.current()
	if err != nil {
		return st
	}
	st.Loaded = true
	st.Restaurants = snap.space.Len()
	st.Users = len(snap.users)
	st.Reviews = snap.reviews
	st.Vocabulary = snap.space.Dim()
	st.Fingerprint = snap.fingerprint
	st.LoadedAt = snap.loadedAt
	st.LoadDuration = snap.loadTook
	return st
}
