// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package features

import (
	"sort"
	"strings"
)

// LabelCount is a category label with the number of restaurants carrying it.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// labelNode is a node in the prefix tree. Labels are case-sensitive in the
// vocabulary but matched case-insensitively here, so one node may end
// several labels ("thai" and "Thai").
type labelNode struct {
	children map[rune]*labelNode
	slots    []int
}

// LabelIndex answers case-insensitive prefix queries over a vocabulary.
// It is immutable after construction.
type LabelIndex struct {
	root   *labelNode
	labels []string
	counts []int
}

// NewLabelIndex indexes every vocabulary label. counts[i] is the popularity of
// slot i used to order suggestions; it may be nil.
func NewLabelIndex(vocab *Vocabulary, counts []int) *LabelIndex {
	idx := &LabelIndex{
		root:   &labelNode{children: make(map[rune]*labelNode)},
		labels: vocab.Labels(),
		counts: make([]int, vocab.Size()),
	}
	copy(idx.counts, counts)

	for slot, label := range idx.labels {
		node := idx.root
		for _, ch := range strings.ToLower(label) {
			next, ok := node.children[ch]
			if !ok {
				next = &labelNode{children: make(map[rune]*labelNode)}
				node.children[ch] = next
			}
			node = next
		}
		node.slots = append(node.slots, slot)
	}
	return idx
}

// Suggest returns up to limit labels starting with prefix, most common first
// and then alphabetically. limit <= 0 returns every match.
func (idx *LabelIndex) Suggest(prefix string, limit int) []LabelCount {
	node := idx.root
	for _, ch := range strings.ToLower(strings.TrimSpace(prefix)) {
		next, ok := node.children[ch]
		if !ok {
			return nil
		}
		node = next
	}

	var slots []int
	collect(node, &slots)

	out := make([]LabelCount, len(slots))
	for i, slot := range slots {
		out[i] = LabelCount{Label: idx.labels[slot], Count: idx.counts[slot]}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func collect(node *labelNode, slots *[]int) {
	*slots = append(*slots, node.slots...)
	for _, child := range node.children {
		collect(child, slots)
	}
}

// ColumnCounts returns, for each of dim slots, how many rows have it set.
func ColumnCounts(rows []Vector, dim int) []int {
	counts := make([]int, dim)
	for _, row := range rows {
		for j, x := range row {
			if x != 0 {
				counts[j]++
			}
		}
	}
	return counts
}
