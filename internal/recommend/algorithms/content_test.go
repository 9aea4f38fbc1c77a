// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package algorithms

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/platewise/internal/recommend"
	"github.com/tomtom215/platewise/internal/recommend/features"
)

func newSpace(t *testing.T, catalog []recommend.Restaurant) *features.Space {
	t.Helper()
	space, err := features.NewSpace(context.Background(), catalog, 1)
	if err != nil {
		t.Fatalf("NewSpace() error = %v", err)
	}
	return space
}

func TestContentBased_PreferenceVector(t *testing.T) {
	t.Parallel()

	space := newSpace(t, []recommend.Restaurant{
		{ID: "r1", Name: "Sakura", Categories: []string{"Sushi"}},
		{ID: "r2", Name: "Luigi's", Categories: []string{"Pizza"}},
	})
	reviews := []recommend.Review{{UserID: "u1", BusinessID: "r1", Stars: 5.0}}

	c := NewContentBased(space, reviews, ContentBasedConfig{})
	if err := c.Fit(context.Background(), "u1"); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	prefs, err := c.Preferences()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(prefs, []float64{5.0, 0.0}) {
		t.Errorf("Preferences() = %v, want [5 0]", prefs)
	}
}

func TestContentBased_ScoresAndTieOrder(t *testing.T) {
	t.Parallel()

	space := newSpace(t, []recommend.Restaurant{
		{ID: "a", Name: "First Sushi", Categories: []string{"Sushi"}},
		{ID: "b", Name: "Pizza Place", Categories: []string{"Pizza"}},
		{ID: "c", Name: "Second Sushi", Categories: []string{"Sushi"}},
	})
	reviews := []recommend.Review{{UserID: "u1", BusinessID: "a", Stars: 5.0}}

	for _, workers := range []int{0, 2, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			t.Parallel()

			c := NewContentBased(space, reviews, ContentBasedConfig{Workers: workers})
			if err := c.Fit(context.Background(), "u1"); err != nil {
				t.Fatalf("Fit() error = %v", err)
			}

			scores, _ := c.Scores()
			if !reflect.DeepEqual(scores, []float64{1.0, 0.0, 1.0}) {
				t.Errorf("Scores() = %v, want [1 0 1]", scores)
			}

			got, err := c.Predict()
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}
			var names []string
			for _, r := range got {
				names = append(names, r.Name)
			}
			want := []string{"First Sushi", "Second Sushi", "Pizza Place"}
			if !reflect.DeepEqual(names, want) {
				t.Errorf("Predict() order = %v, want %v", names, want)
			}
			if got[0].Score != 1.0 || got[2].Score != 0.0 {
				t.Errorf("scores on records = %v, %v", got[0].Score, got[2].Score)
			}
		})
	}
}

func TestContentBased_Errors(t *testing.T) {
	t.Parallel()

	space := newSpace(t, []recommend.Restaurant{
		{ID: "r1", Categories: []string{"Sushi"}},
		{ID: "r2", Categories: []string{"Pizza"}},
	})
	reviews := []recommend.Review{
		{UserID: "zero", BusinessID: "r1", Stars: 0},
		{UserID: "zero", BusinessID: "r2", Stars: 0},
		{UserID: "orphan", BusinessID: "gone", Stars: 4},
	}

	tests := []struct {
		name    string
		user    string
		wantErr error
		check   func(t *testing.T, err error)
	}{
		{
			name:    "no reviews",
			user:    "nobody",
			wantErr: recommend.ErrNoHistory,
			check: func(t *testing.T, err error) {
				var e *recommend.NoHistoryError
				if !errors.As(err, &e) || e.UserID != "nobody" || e.Orphaned != 0 {
					t.Errorf("error = %#v", err)
				}
			},
		},
		{
			name:    "only orphaned reviews",
			user:    "orphan",
			wantErr: recommend.ErrNoHistory,
			check: func(t *testing.T, err error) {
				var e *recommend.NoHistoryError
				if !errors.As(err, &e) || e.Orphaned != 1 {
					t.Errorf("error = %#v", err)
				}
			},
		},
		{
			name:    "all ratings zero",
			user:    "zero",
			wantErr: recommend.ErrDegenerateModel,
			check: func(t *testing.T, err error) {
				var e *recommend.DegenerateModelError
				if !errors.As(err, &e) || e.UserID != "zero" || e.Visited != 2 {
					t.Errorf("error = %#v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := NewContentBased(space, reviews, ContentBasedConfig{})
			err := c.Fit(context.Background(), tt.user)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Fit() error = %v, want %v", err, tt.wantErr)
			}
			tt.check(t, err)
			if c.IsFitted() {
				t.Error("session should stay unfitted after a failed fit")
			}
		})
	}
}

func TestContentBased_EmptyVocabularyIsDegenerate(t *testing.T) {
	t.Parallel()

	space := newSpace(t, []recommend.Restaurant{{ID: "r1"}, {ID: "r2"}})
	c := NewContentBased(space, []recommend.Review{{UserID: "u", BusinessID: "r1", Stars: 5}}, ContentBasedConfig{})
	if err := c.Fit(context.Background(), "u"); !errors.Is(err, recommend.ErrDegenerateModel) {
		t.Errorf("Fit() error = %v, want ErrDegenerateModel", err)
	}
}

func TestContentBased_NotFitted(t *testing.T) {
	t.Parallel()

	space := newSpace(t, []recommend.Restaurant{{ID: "r1", Categories: []string{"Sushi"}}})
	c := NewContentBased(space, nil, ContentBasedConfig{})

	if _, err := c.Predict(); !errors.Is(err, recommend.ErrNotFitted) {
		t.Errorf("Predict() error = %v, want ErrNotFitted", err)
	}
	var nf *recommend.NotFittedError
	if _, err := c.Scores(); !errors.As(err, &nf) || nf.Op != "scores" {
		t.Errorf("Scores() error = %v", err)
	}
	if _, err := c.Preferences(); !errors.Is(err, recommend.ErrNotFitted) {
		t.Errorf("Preferences() error = %v", err)
	}
	if _, err := c.Ranking(); !errors.Is(err, recommend.ErrNotFitted) {
		t.Errorf("Ranking() error = %v", err)
	}
	if _, err := c.TargetUser(); !errors.Is(err, recommend.ErrNotFitted) {
		t.Errorf("TargetUser() error = %v", err)
	}
}

func TestContentBased_RefitDiscardsPreviousUser(t *testing.T) {
	t.Parallel()

	space := newSpace(t, []recommend.Restaurant{
		{ID: "a", Categories: []string{"Sushi"}},
		{ID: "b", Categories: []string{"Pizza"}},
		{ID: "c", Categories: []string{"Sushi", "Pizza"}},
	})
	reviews := []recommend.Review{
		{UserID: "sushi-fan", BusinessID: "a", Stars: 5},
		{UserID: "pizza-fan", BusinessID: "b", Stars: 4},
	}

	c := NewContentBased(space, reviews, ContentBasedConfig{})
	ctx := context.Background()
	if err := c.Fit(ctx, "sushi-fan"); err != nil {
		t.Fatal(err)
	}
	if err := c.Fit(ctx, "pizza-fan"); err != nil {
		t.Fatal(err)
	}

	fresh := NewContentBased(space, reviews, ContentBasedConfig{})
	if err := fresh.Fit(ctx, "pizza-fan"); err != nil {
		t.Fatal(err)
	}

	gotPrefs, _ := c.Preferences()
	wantPrefs, _ := fresh.Preferences()
	if !reflect.DeepEqual(gotPrefs, wantPrefs) {
		t.Errorf("Preferences() = %v, want %v", gotPrefs, wantPrefs)
	}
	gotRank, _ := c.Ranking()
	wantRank, _ := fresh.Ranking()
	if !reflect.DeepEqual(gotRank, wantRank) {
		t.Errorf("Ranking() = %v, want %v", gotRank, wantRank)
	}
	if user, _ := c.TargetUser(); user != "pizza-fan" {
		t.Errorf("TargetUser() = %q", user)
	}
	if c.Version() != 2 {
		t.Errorf("Version() = %d, want 2", c.Version())
	}

	// A failed refit must not leave the earlier ranking behind.
	if err := c.Fit(ctx, "nobody"); !errors.Is(err, recommend.ErrNoHistory) {
		t.Fatalf("Fit(nobody) error = %v", err)
	}
	if _, err := c.Predict(); !errors.Is(err, recommend.ErrNotFitted) {
		t.Errorf("Predict() after failed refit error = %v", err)
	}
}

func TestContentBased_VisitOrderAndRepeats(t *testing.T) {
	t.Parallel()

	space := newSpace(t, []recommend.Restaurant{
		{ID: "z", Categories: []string{"Bars"}},
		{ID: "m", Categories: []string{"Sushi"}},
		{ID: "a", Categories: []string{"Sushi", "Bars"}},
	})
	reviews := []recommend.Review{
		{UserID: "u", BusinessID: "z", Stars: 1},
		{UserID: "u", BusinessID: "a", Stars: 3},
		{UserID: "other", BusinessID: "m", Stars: 5},
		{UserID: "u", BusinessID: "a", Stars: 2},
	}

	c := NewContentBased(space, reviews, ContentBasedConfig{})
	if err := c.Fit(context.Background(), "u"); err != nil {
		t.Fatal(err)
	}

	ids, _ := c.VisitedIDs()
	if !reflect.DeepEqual(ids, []string{"a", "a", "z"}) {
		t.Errorf("VisitedIDs() = %v, want [a a z]", ids)
	}

	// Bars = 1 + 3 + 2, Sushi = 3 + 2
	prefs, _ := c.Preferences()
	if !reflect.DeepEqual(prefs, []float64{6, 5}) {
		t.Errorf("Preferences() = %v, want [6 5]", prefs)
	}
}

func TestContentBased_Top(t *testing.T) {
	t.Parallel()

	space := newSpace(t, []recommend.Restaurant{
		{ID: "a", Categories: []string{"Sushi"}},
		{ID: "b", Categories: []string{"Pizza"}},
		{ID: "c", Categories: []string{"Sushi", "Pizza"}},
	})
	c := NewContentBased(space, []recommend.Review{{UserID: "u", BusinessID: "a", Stars: 4}}, ContentBasedConfig{})
	if err := c.Fit(context.Background(), "u"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		k    int
		want []string
	}{
		{k: 1, want: []string{"a"}},
		{k: 2, want: []string{"a", "c"}},
		{k: 0, want: []string{"a", "c", "b"}},
		{k: 10, want: []string{"a", "c", "b"}},
	}
	for _, tt := range tests {
		got, err := c.Top(tt.k)
		if err != nil {
			t.Fatal(err)
		}
		var ids []string
		for _, r := range got {
			ids = append(ids, r.ID)
		}
		if !reflect.DeepEqual(ids, tt.want) {
			t.Errorf("Top(%d) = %v, want %v", tt.k, ids, tt.want)
		}
	}
}

func TestContentBased_ConcurrentSessionsShareSpace(t *testing.T) {
	t.Parallel()

	var catalog []recommend.Restaurant
	var reviews []recommend.Review
	labels := []string{"Sushi", "Pizza", "Thai", "Bars"}
	for i := 0; i < 40; i++ {
		id := fmt.Sprintf("r%02d", i)
		catalog = append(catalog, recommend.Restaurant{ID: id, Categories: []string{labels[i%4], labels[(i/4)%4]}})
	}
	for u := 0; u < 8; u++ {
		for j := 0; j < 3; j++ {
			reviews = append(reviews, recommend.Review{
				UserID:     fmt.Sprintf("u%d", u),
				BusinessID: fmt.Sprintf("r%02d", (u*5+j*7)%40),
				Stars:      float64(1 + (u+j)%5),
			})
		}
	}
	space := newSpace(t, catalog)

	want := make([][]int, 8)
	for u := range want {
		c := NewContentBased(space, reviews, ContentBasedConfig{})
		if err := c.Fit(context.Background(), fmt.Sprintf("u%d", u)); err != nil {
			t.Fatal(err)
		}
		want[u], _ = c.Ranking()
	}

	var wg sync.WaitGroup
	got := make([][]int, 8)
	errs := make([]error, 8)
	for u := 0; u < 8; u++ {
		wg.Add(1)
		go func(u int) {
			defer wg.Done()
			c := NewContentBased(space, reviews, ContentBasedConfig{Workers: 3})
			if err := c.Fit(context.Background(), fmt.Sprintf("u%d", u)); err != nil {
				errs[u] = err
				return
			}
			got[u], errs[u] = c.Ranking()
		}(u)
	}
	wg.Wait()

	for u := range got {
		if errs[u] != nil {
			t.Fatalf("user %d: %v", u, errs[u])
		}
		if !reflect.DeepEqual(got[u], want[u]) {
			t.Errorf("user %d ranking differs under concurrency", u)
		}
	}
}

func TestContentBased_FitCancelled(t *testing.T) {
	t.Parallel()

	var catalog []recommend.Restaurant
	for i := 0; i < 20; i++ {
		catalog = append(catalog, recommend.Restaurant{ID: fmt.Sprintf("r%d", i), Categories: []string{"Sushi"}})
	}
	space := newSpace(t, catalog)
	c := NewContentBased(space, []recommend.Review{{UserID: "u", BusinessID: "r1", Stars: 5}}, ContentBasedConfig{Workers: 4})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Fit(ctx, "u"); !errors.Is(err, context.Canceled) {
		t.Errorf("Fit() error = %v, want context.Canceled", err)
	}
	if c.IsFitted() {
		t.Error("cancelled fit should leave session unfitted")
	}
}

func TestRank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scores []float64
		want   []int
	}{
		{scores: nil, want: []int{}},
		{scores: []float64{1, 0, 1}, want: []int{0, 2, 1}},
		{scores: []float64{0.2, 0.2, 0.2}, want: []int{0, 1, 2}},
		{scores: []float64{0.1, 0.9, 0.5, 0.9}, want: []int{1, 3, 2, 0}},
	}
	for _, tt := range tests {
		if got := Rank(tt.scores); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Rank(%v) = %v, want %v", tt.scores, got, tt.want)
		}
	}
}

func TestScoreRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rows    []features.Vector
		w       []float64
		want    []float64
		wantErr error
	}{
		{"aligned", []features.Vector{{1, 0}, {0, 1}, {1, 0}}, []float64{5, 0}, []float64{1, 0, 1}, nil},
		{"short row", []features.Vector{{1, 0}, {1}}, []float64{5, 0}, nil, recommend.ErrMisaligned},
		{"long row", []features.Vector{{1, 0, 1}}, []float64{5, 0}, nil, recommend.ErrMisaligned},
	}

	for _, tt := range tests {
		for _, workers := range []int{1, 4} {
			got, err := ScoreRows(context.Background(), tt.rows, tt.w, 5, workers)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("%s/workers=%d: ScoreRows() error = %v, want %v", tt.name, workers, err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%s/workers=%d: ScoreRows() = %v, want %v", tt.name, workers, got, tt.want)
			}
		}
	}
}

func TestContentBased_FitLogsSummary(t *testing.T) {
	t.Parallel()

	space := newSpace(t, []recommend.Restaurant{
		{ID: "r1", Name: "Sakura", Categories: []string{"Sushi"}},
		{ID: "r2", Name: "Luigi's", Categories: []string{"Pizza"}},
	})
	reviews := []recommend.Review{
		{UserID: "u1", BusinessID: "r1", Stars: 4},
		{UserID: "u1", BusinessID: "gone", Stars: 2},
	}

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	c := NewContentBased(space, reviews, ContentBasedConfig{Logger: logger})
	if err := c.Fit(context.Background(), "u1"); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	var line struct {
		Message  string  `json:"message"`
		UserID   string  `json:"user_id"`
		Visited  int     `json:"visited"`
		Orphaned int     `json:"orphaned"`
		Total    float64 `json:"total"`
	}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line.Message != "content-based fit complete" || line.UserID != "u1" ||
		line.Visited != 1 || line.Orphaned != 1 || line.Total != 4 {
		t.Errorf("fit log = %+v", line)
	}
}
