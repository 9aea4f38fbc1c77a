// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package features

import (
	"context"
	"fmt"

	"github.com/tomtom215/platewise/internal/recommend"
)

// Space is a vocabulary together with the encoded catalog it was built from.
// Row i of the matrix corresponds to catalog entry i. A Space is read-only
// after NewSpace returns.
type Space struct {
	vocab   *Vocabulary
	catalog []recommend.Restaurant
	matrix  []Vector
	rows    map[string]int
	counts  []int
	labels  *LabelIndex
}

// NewSpace builds the vocabulary for catalog and encodes every restaurant.
// The catalog slice is borrowed and must not be modified afterwards.
func NewSpace(ctx context.Context, catalog []recommend.Restaurant, workers int) (*Space, error) {
	vocab, err := Build(catalog)
	if err != nil {
		return nil, err
	}

	matrix, err := vocab.EncodeManyParallel(ctx, catalog, workers)
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}

	rows := make(map[string]int, len(catalog))
	for i := range catalog {
		if _, dup := rows[catalog[i].ID]; dup {
			return nil, fmt.Errorf("duplicate restaurant id %q at row %d", catalog[i].ID, i)
		}
		rows[catalog[i].ID] = i
	}

	counts := ColumnCounts(matrix, vocab.Size())

	return &Space{
		vocab:   vocab,
		catalog: catalog,
		matrix:  matrix,
		rows:    rows,
		counts:  counts,
		labels:  NewLabelIndex(vocab, counts),
	}, nil
}

// Vocabulary returns the category vocabulary.
func (s *Space) Vocabulary() *Vocabulary {
	return s.vocab
}

// Dim returns the vocabulary size.
func (s *Space) Dim() int {
	return s.vocab.Size()
}

// Len returns the number of catalog rows.
func (s *Space) Len() int {
	return len(s.catalog)
}

// Restaurant returns catalog row i.
func (s *Space) Restaurant(i int) recommend.Restaurant {
	return s.catalog[i]
}

// Row returns the encoded vector for catalog row i. Callers must not modify it.
func (s *Space) Row(i int) Vector {
	return s.matrix[i]
}

// Matrix returns the encoded catalog. Callers must not modify it.
func (s *Space) Matrix() []Vector {
	return s.matrix
}

// Lookup returns the catalog row of a restaurant id.
func (s *Space) Lookup(id string) (int, bool) {
	i, ok := s.rows[id]
	return i, ok
}

// LabelCounts returns every label with the number of restaurants carrying
// it, in vocabulary order.
func (s *Space) LabelCounts() []LabelCount {
	out := make([]LabelCount, len(s.counts))
	for i, n := range s.counts {
		out[i] = LabelCount{Label: s.vocab.Label(i), Count: n}
	}
	return out
}

// Suggest returns labels matching prefix. See LabelIndex.Suggest.
func (s *Space) Suggest(prefix string, limit int) []LabelCount {
	return s.labels.Suggest(prefix, limit)
}
