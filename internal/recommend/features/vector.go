// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package features

// Vector is a dense feature row over the vocabulary.
type Vector []float64

// Dot returns the dot product of v and w. Extra trailing entries in the
// longer operand are ignored.
func (v Vector) Dot(w []float64) float64 {
	n := len(v)
	if len(w) < n {
		n = len(w)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += v[i] * w[i]
	}
	return sum
}

// Sum returns the sum of all entries.
func (v Vector) Sum() float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum
}

// Nnz returns the number of non-zero entries.
func (v Vector) Nnz() int {
	n := 0
	for _, x := range v {
		if x != 0 {
			n++
		}
	}
	return n
}

// Indices returns the positions of non-zero entries in ascending order.
func (v Vector) Indices() []int {
	out := make([]int, 0, v.Nnz())
	for i, x := range v {
		if x != 0 {
			out = append(out, i)
		}
	}
	return out
}

// WeightedSum returns sum_i weights[i] * rows[i]: the row-vector product
// weights . M for a matrix given as rows. All rows must have length dim.
func WeightedSum(weights []float64, rows []Vector, dim int) []float64 {
	out := make([]float64, dim)
	for i, row := range rows {
		w := weights[i]
		if w == 0 {
			continue
		}
		for j, x := range row {
			if x != 0 {
				out[j] += w * x
			}
		}
	}
	return out
}
