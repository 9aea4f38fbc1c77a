// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package features

import (
	"sort"

	"github.com/tomtom215/platewise/internal/recommend"
)

// Association is a pair of labels that appear together on restaurants.
type Association struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Count  int    `json:"count"`
}

// CoOccurrence returns the symmetric label co-occurrence matrix F^T F for a
// set of encoded rows. Entry [i][j] counts the rows carrying both label i and
// label j; the diagonal counts rows carrying label i.
func CoOccurrence(rows []Vector, dim int) [][]int {
	m := make([][]int, dim)
	for i := range m {
		m[i] = make([]int, dim)
	}
	for _, row := range rows {
		idx := row.Indices()
		for _, a := range idx {
			for _, b := range idx {
				m[a][b]++
			}
		}
	}
	return m
}

// Associations lists every unordered label pair with a non-zero count,
// excluding self-pairs, sorted by count descending. Ties keep vocabulary
// order.
func Associations(vocab *Vocabulary, m [][]int) []Association {
	var out []Association
	for i := 0; i < len(m); i++ {
		for j := i + 1; j < len(m[i]); j++ {
			if m[i][j] == 0 {
				continue
			}
			out = append(out, Association{
				First:  vocab.Label(i),
				Second: vocab.Label(j),
				Count:  m[i][j],
			})
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Count > out[b].Count
	})
	return out
}

// TopAssociations returns up to k pairs that include target, strongest first.
// k <= 0 returns all of them. The target is always reported as First.
func TopAssociations(vocab *Vocabulary, m [][]int, target string, k int) ([]Association, error) {
	t, ok := vocab.Index(target)
	if !ok {
		return nil, &recommend.ConfigurationError{Category: normalize(target)}
	}

	var out []Association
	for j, n := range m[t] {
		if j == t || n == 0 {
			continue
		}
		out = append(out, Association{
			First:  vocab.Label(t),
			Second: vocab.Label(j),
			Count:  n,
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Count > out[b].Count
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out, nil
}
