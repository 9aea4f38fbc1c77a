// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package features

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/platewise/internal/recommend"
)

// Vocabulary is the ordered set of distinct category labels in a catalog.
// It is immutable once built and safe for concurrent use.
type Vocabulary struct {
	labels []string
	index  map[string]int
}

// Build derives the vocabulary from the full catalog. Labels are trimmed of
// surrounding whitespace and deduplicated in first-seen order; labels that
// are empty after trimming are skipped.
//
//nolint:gocritic // rangeValCopy: Restaurant read by value for clarity
func Build(catalog []recommend.Restaurant) (*Vocabulary, error) {
	if len(catalog) == 0 {
		return nil, recommend.ErrEmptyCatalog
	}

	v := &Vocabulary{
		labels: make([]string, 0),
		index:  make(map[string]int),
	}
	for _, r := range catalog {
		for _, raw := range r.Categories {
			label := normalize(raw)
			if label == "" {
				continue
			}
			if _, ok := v.index[label]; ok {
				continue
			}
			v.index[label] = len(v.labels)
			v.labels = append(v.labels, label)
		}
	}
	return v, nil
}

// normalize is the only text normalization applied to labels.
func normalize(label string) string {
	return strings.TrimSpace(label)
}

// Size returns the number of labels.
func (v *Vocabulary) Size() int {
	return len(v.labels)
}

// Labels returns a copy of the labels in slot order.
func (v *Vocabulary) Labels() []string {
	out := make([]string, len(v.labels))
	copy(out, v.labels)
	return out
}

// Label returns the label in slot i.
func (v *Vocabulary) Label(i int) string {
	return v.labels[i]
}

// Index returns the slot of label after trimming.
func (v *Vocabulary) Index(label string) (int, bool) {
	i, ok := v.index[normalize(label)]
	return i, ok
}

// Encode returns the one-hot vector for a category set. A label outside the
// vocabulary yields a *recommend.ConfigurationError.
func (v *Vocabulary) Encode(categories []string) (Vector, error) {
	vec := make(Vector, len(v.labels))
	for _, raw := range categories {
		label := normalize(raw)
		if label == "" {
			continue
		}
		i, ok := v.index[label]
		if !ok {
			return nil, &recommend.ConfigurationError{Category: label}
		}
		vec[i] = 1
	}
	return vec, nil
}

// EncodeRestaurant encodes r and attaches its id to any error.
//
//nolint:gocritic // Restaurant passed by value for immutability
func (v *Vocabulary) EncodeRestaurant(r recommend.Restaurant) (Vector, error) {
	vec, err := v.Encode(r.Categories)
	if err != nil {
		if cfgErr, ok := err.(*recommend.ConfigurationError); ok {
			cfgErr.RestaurantID = r.ID
		}
		return nil, err
	}
	return vec, nil
}

// EncodeMany encodes restaurants in input order, one vector per restaurant.
func (v *Vocabulary) EncodeMany(restaurants []recommend.Restaurant) ([]Vector, error) {
	out := make([]Vector, len(restaurants))
	for i := range restaurants {
		vec, err := v.EncodeRestaurant(restaurants[i])
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// EncodeManyParallel is EncodeMany split across workers goroutines. Each
// restaurant is encoded independently, so the output is identical to
// EncodeMany. workers < 2 falls back to the sequential path.
func (v *Vocabulary) EncodeManyParallel(ctx context.Context, restaurants []recommend.Restaurant, workers int) ([]Vector, error) {
	if workers < 2 || len(restaurants) < 2*workers {
		return v.EncodeMany(restaurants)
	}

	out := make([]Vector, len(restaurants))
	g, ctx := errgroup.WithContext(ctx)

	for _, span := range Chunks(len(restaurants), workers) {
		lo, hi := span[0], span[1]
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				vec, err := v.EncodeRestaurant(restaurants[i])
				if err != nil {
					return err
				}
				out[i] = vec
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Chunks splits [0, n) into at most parts contiguous half-open ranges of
// near-equal size.
func Chunks(n, parts int) [][2]int {
	if n <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if parts > n {
		parts = n
	}
	size := (n + parts - 1) / parts
	out := make([][2]int, 0, parts)
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		out = append(out, [2]int{lo, hi})
	}
	return out
}

// String implements fmt.Stringer.
func (v *Vocabulary) String() string {
	return fmt.Sprintf("Vocabulary(%d labels)", len(v.labels))
}
