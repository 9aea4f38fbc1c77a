// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package algorithms

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/platewise/internal/recommend"
	"github.com/tomtom215/platewise/internal/recommend/features"
)

// ContentBased recommends restaurants whose categories overlap with those a
// user rated highly. See the package documentation for the scoring formula.
type ContentBased struct {
	BaseAlgorithm

	// Shared, read-only inputs
	space   *features.Space
	reviews []recommend.Review
	workers int
	logger  zerolog.Logger

	// Fitted state, owned by the session
	user    string
	visited []visit
	prefs   []float64
	scores  []float64
	ranking []int
}

// visit is one of the target user's reviews matched to a catalog row.
type visit struct {
	row   int
	id    string
	stars float64
}

// ContentBasedConfig contains configuration for content-based filtering.
type ContentBasedConfig struct {
	// Workers bounds the goroutines used to score the catalog.
	// Values below 2 score sequentially.
	Workers int

	// Logger receives one debug line per fit. The zero value discards.
	Logger zerolog.Logger
}

// NewContentBased creates an unfitted session over space. reviews is borrowed
// and must not be modified while the session is in use.
func NewContentBased(space *features.Space, reviews []recommend.Review, cfg ContentBasedConfig) *ContentBased {
	return &ContentBased{
		BaseAlgorithm: NewBaseAlgorithm("content"),
		space:         space,
		reviews:       reviews,
		workers:       cfg.Workers,
		logger:        cfg.Logger,
	}
}

// Fit builds the preference vector for userID and ranks the catalog against
// it. Any error leaves the session unfitted.
func (c *ContentBased) Fit(ctx context.Context, userID string) error {
	c.acquireFitLock()
	defer c.releaseFitLock()

	start := time.Now()
	c.reset()

	visited, orphaned := c.selectVisited(userID)
	if len(visited) == 0 {
		return &recommend.NoHistoryError{UserID: userID, Orphaned: orphaned}
	}

	// Business id order keeps intermediate rows reproducible. The stable sort
	// keeps repeat reviews of one restaurant in dataset order.
	sort.SliceStable(visited, func(i, j int) bool {
		return visited[i].id < visited[j].id
	})

	restaurants := make([]recommend.Restaurant, len(visited))
	ratings := make([]float64, len(visited))
	for i, v := range visited {
		restaurants[i] = c.space.Restaurant(v.row)
		ratings[i] = v.stars
	}

	rows, err := c.space.Vocabulary().EncodeMany(restaurants)
	if err != nil {
		return fmt.Errorf("encode visited restaurants: %w", err)
	}
	if err := checkAlignment(visited, restaurants, rows, ratings); err != nil {
		return err
	}

	dim := c.space.Dim()
	prefs := features.WeightedSum(ratings, rows, dim)
	total := features.Vector(prefs).Sum()
	if total == 0 {
		return &recommend.DegenerateModelError{UserID: userID, Visited: len(visited)}
	}

	scores, err := ScoreRows(ctx, c.space.Matrix(), prefs, total, c.workers)
	if err != nil {
		return err
	}

	c.user = userID
	c.visited = visited
	c.prefs = prefs
	c.scores = scores
	c.ranking = Rank(scores)
	c.markFitted(start)

	c.logger.Debug().
		Str("user_id", userID).
		Int("visited", len(visited)).
		Int("orphaned", orphaned).
		Float64("total", total).
		Int("candidates", len(scores)).
		Dur("took", time.Since(start)).
		Msg("content-based fit complete")
	return nil
}

// selectVisited returns the user's reviews that reference catalog rows, in
// dataset order, and the number of reviews that did not.
func (c *ContentBased) selectVisited(userID string) ([]visit, int) {
	var visited []visit
	orphaned := 0
	for _, r := range c.reviews {
		if r.UserID != userID {
			continue
		}
		row, ok := c.space.Lookup(r.BusinessID)
		if !ok {
			orphaned++
			continue
		}
		visited = append(visited, visit{row: row, id: r.BusinessID, stars: r.Stars})
	}
	return visited, orphaned
}

// checkAlignment verifies that feature row i and rating i describe the same
// visit.
func checkAlignment(visited []visit, restaurants []recommend.Restaurant, rows []features.Vector, ratings []float64) error {
	if len(rows) != len(ratings) || len(rows) != len(visited) {
		return fmt.Errorf("%w: %d feature rows, %d ratings", recommend.ErrMisaligned, len(rows), len(ratings))
	}
	for i := range visited {
		if restaurants[i].ID != visited[i].id {
			return fmt.Errorf("%w: row %d is %s, rating is for %s",
				recommend.ErrMisaligned, i, restaurants[i].ID, visited[i].id)
		}
	}
	return nil
}

// reset discards all fitted state. Must be called while holding the fit lock.
func (c *ContentBased) reset() {
	c.user = ""
	c.visited = nil
	c.prefs = nil
	c.scores = nil
	c.ranking = nil
	c.markUnfitted()
}

// ScoreRows computes dot(rows[i], w) / total for every row. Rows are split
// across workers goroutines; each score depends only on its own row, so the
// result does not depend on scheduling. Every row must have len(w) columns.
func ScoreRows(ctx context.Context, rows []features.Vector, w []float64, total float64, workers int) ([]float64, error) {
	for i, row := range rows {
		if len(row) != len(w) {
			return nil, fmt.Errorf("%w: row %d has %d columns, preference vector has %d",
				recommend.ErrMisaligned, i, len(row), len(w))
		}
	}

	scores := make([]float64, len(rows))

	if workers < 2 {
		for i, row := range rows {
			scores[i] = row.Dot(w) / total
		}
		return scores, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, span := range features.Chunks(len(rows), workers) {
		lo, hi := span[0], span[1]
		g.Go(func() error {
			if ContextCancelled(ctx) {
				return ctx.Err()
			}
			for i := lo; i < hi; i++ {
				scores[i] = rows[i].Dot(w) / total
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// Rank returns row indices ordered by score descending. Equal scores keep
// ascending row order.
func Rank(scores []float64) []int {
	ranking := make([]int, len(scores))
	for i := range ranking {
		ranking[i] = i
	}
	sort.SliceStable(ranking, func(a, b int) bool {
		return scores[ranking[a]] > scores[ranking[b]]
	})
	return ranking
}

// Predict returns every catalog restaurant in ranked order.
func (c *ContentBased) Predict() ([]recommend.Recommendation, error) {
	return c.Top(0)
}

// Top returns the k best restaurants in ranked order. k <= 0 returns all.
func (c *ContentBased) Top(k int) ([]recommend.Recommendation, error) {
	c.acquirePredictLock()
	defer c.releasePredictLock()

	if !c.fitted {
		return nil, &recommend.NotFittedError{Op: "predict"}
	}

	n := len(c.ranking)
	if k > 0 && k < n {
		n = k
	}
	out := make([]recommend.Recommendation, n)
	for i := 0; i < n; i++ {
		row := c.ranking[i]
		out[i] = recommend.NewRecommendation(c.space.Restaurant(row), c.scores[row])
	}
	return out, nil
}

// TargetUser returns the user of the last successful fit.
func (c *ContentBased) TargetUser() (string, error) {
	c.acquirePredictLock()
	defer c.releasePredictLock()

	if !c.fitted {
		return "", &recommend.NotFittedError{Op: "target user"}
	}
	return c.user, nil
}

// Preferences returns a copy of the preference vector in vocabulary order.
func (c *ContentBased) Preferences() ([]float64, error) {
	c.acquirePredictLock()
	defer c.releasePredictLock()

	if !c.fitted {
		return nil, &recommend.NotFittedError{Op: "preferences"}
	}
	return append([]float64(nil), c.prefs...), nil
}

// Scores returns a copy of the per-row scores in catalog order.
func (c *ContentBased) Scores() ([]float64, error) {
	c.acquirePredictLock()
	defer c.releasePredictLock()

	if !c.fitted {
		return nil, &recommend.NotFittedError{Op: "scores"}
	}
	return append([]float64(nil), c.scores...), nil
}

// Ranking returns a copy of the ranked catalog row indices.
func (c *ContentBased) Ranking() ([]int, error) {
	c.acquirePredictLock()
	defer c.releasePredictLock()

	if !c.fitted {
		return nil, &recommend.NotFittedError{Op: "ranking"}
	}
	return append([]int(nil), c.ranking...), nil
}

// VisitedIDs returns the business ids that contributed to the fit, in the
// order their rows were accumulated.
func (c *ContentBased) VisitedIDs() ([]string, error) {
	c.acquirePredictLock()
	defer c.releasePredictLock()

	if !c.fitted {
		return nil, &recommend.NotFittedError{Op: "visited"}
	}
	out := make([]string, len(c.visited))
	for i, v := range c.visited {
		out[i] = v.id
	}
	return out, nil
}
