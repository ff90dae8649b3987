// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package classifier

import (
	"math"
	"math/rand"
	"sort"
)

// Node is a decision tree node stored in a flat slice.
// Leaves have Left == -1 and carry the class distribution in Value.
type Node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     []float64
}

// Tree is a binary classification tree (CART, gini impurity).
type Tree struct {
	Nodes []Node
}

// predict returns the class distribution of the leaf x falls into.
func (t *Tree) predict(x []float64) []float64 {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.Left < 0 {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// treeParams controls tree growth.
type treeParams struct {
	numClasses      int
	maxFeatures     int
	maxDepth        int // 0 = unlimited
	minSamplesSplit int
	minSamplesLeaf  int
}

// treeBuilder grows one tree over a fixed training matrix.
type treeBuilder struct {
	x      [][]float64
	y      []int
	params treeParams
	rng    *rand.Rand
	nodes  []Node

	// scratch buffers reused across splits
	sorted []int
	left   []float64
}

// fitTree grows a tree on the given sample indices (duplicates allowed).
func fitTree(x [][]float64, y []int, samples []int, params treeParams, rng *rand.Rand) Tree {
	b := &treeBuilder{
		x:      x,
		y:      y,
		params: params,
		rng:    rng,
		sorted: make([]int, len(samples)),
		left:   make([]float64, params.numClasses),
	}
	b.build(samples, 0)
	return Tree{Nodes: b.nodes}
}

func (b *treeBuilder) build(samples []int, depth int) int {
	counts := b.classCounts(samples)
	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{Left: -1, Right: -1})

	if b.stop(counts, len(samples), depth) {
		b.nodes[idx].Value = normalize(counts)
		return idx
	}

	feature, threshold, ok := b.bestSplit(samples, counts)
	if !ok {
		b.nodes[idx].Value = normalize(counts)
		return idx
	}

	leftSamples := make([]int, 0, len(samples))
	rightSamples := make([]int, 0, len(samples))
	for _, s := range samples {
		if b.x[s][feature] <= threshold {
			leftSamples = append(leftSamples, s)
		} else {
			rightSamples = append(rightSamples, s)
		}
	}

	l := b.build(leftSamples, depth+1)
	r := b.build(rightSamples, depth+1)

	// b.nodes may have been reallocated by the recursive calls
	b.nodes[idx].Feature = feature
	b.nodes[idx].Threshold = threshold
	b.nodes[idx].Left = l
	b.nodes[idx].Right = r
	return idx
}

func (b *treeBuilder) stop(counts []float64, n, depth int) bool {
	if n < b.params.minSamplesSplit || n < 2*b.params.minSamplesLeaf {
		return true
	}
	if b.params.maxDepth > 0 && depth >= b.params.maxDepth {
		return true
	}
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

// bestSplit searches up to maxFeatures non-constant features, drawn in random
// order, for the threshold minimizing weighted gini impurity.
func (b *treeBuilder) bestSplit(samples []int, parent []float64) (int, float64, bool) {
	n := len(samples)
	sorted := b.sorted[:n]
	left := b.left

	bestScore := math.Inf(1)
	bestFeature := -1
	var bestThreshold float64

	visited := 0
	for _, f := range b.rng.Perm(len(b.x[0])) {
		if visited >= b.params.maxFeatures {
			break
		}

		copy(sorted, samples)
		sort.Slice(sorted, func(i, j int) bool {
			return b.x[sorted[i]][f] < b.x[sorted[j]][f]
		})
		if b.x[sorted[0]][f] == b.x[sorted[n-1]][f] {
			continue
		}
		visited++

		for k := range left {
			left[k] = 0
		}
		for i := 0; i < n-1; i++ {
			left[b.y[sorted[i]]]++

			cur, next := b.x[sorted[i]][f], b.x[sorted[i+1]][f]
			if cur == next {
				continue
			}
			nl, nr := i+1, n-i-1
			if nl < b.params.minSamplesLeaf || nr < b.params.minSamplesLeaf {
				continue
			}

			score := weightedGini(left, nil, nl) + weightedGini(parent, left, nr)
			if score < bestScore {
				bestScore = score
				bestFeature = f
				bestThreshold = cur + (next-cur)/2
				if bestThreshold == next {
					bestThreshold = cur
				}
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

func (b *treeBuilder) classCounts(samples []int) []float64 {
	counts := make([]float64, b.params.numClasses)
	for _, s := range samples {
		counts[b.y[s]]++
	}
	return counts
}

// weightedGini returns n * gini(counts - minus). A nil minus is treated as zeros.
func weightedGini(counts, minus []float64, n int) float64 {
	if n == 0 {
		return 0
	}
	var sumSq float64
	for k, c := range counts {
		if minus != nil {
			c -= minus[k]
		}
		sumSq += c * c
	}
	fn := float64(n)
	return fn - sumSq/fn
}

func normalize(counts []float64) []float64 {
	var total float64
	for _, c := range counts {
		total += c
	}
	out := make([]float64, len(counts))
	if total == 0 {
		return out
	}
	for k, c := range counts {
		out[k] = c / total
	}
	return out
}
