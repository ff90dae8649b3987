// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package classifier

import (
	"context"
	"fmt"
	"math"
	"math/rand"
)

// Forest is a bagged ensemble of decision trees with soft voting.
type Forest struct {
	Trees       []Tree
	NumClasses  int
	NumFeatures int
}

// forestParams controls ensemble training.
type forestParams struct {
	numTrees        int
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	seed            int64
}

// fitForest trains numTrees trees on bootstrap samples of (x, y).
func fitForest(ctx context.Context, x [][]float64, y []int, numClasses int, p forestParams) (*Forest, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("empty training set")
	}
	numFeatures := len(x[0])

	tp := treeParams{
		numClasses:      numClasses,
		maxFeatures:     int(math.Max(1, math.Floor(math.Sqrt(float64(numFeatures))))),
		maxDepth:        p.maxDepth,
		minSamplesSplit: p.minSamplesSplit,
		minSamplesLeaf:  p.minSamplesLeaf,
	}

	//nolint:gosec // G404: math/rand is acceptable for ML training (not security)
	master := rand.New(rand.NewSource(p.seed))

	f := &Forest{
		Trees:       make([]Tree, 0, p.numTrees),
		NumClasses:  numClasses,
		NumFeatures: numFeatures,
	}

	n := len(x)
	samples := make([]int, n)
	for t := 0; t < p.numTrees; t++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		//nolint:gosec // G404: math/rand is acceptable for ML training (not security)
		rng := rand.New(rand.NewSource(master.Int63()))
		for i := range samples {
			samples[i] = rng.Intn(n)
		}
		f.Trees = append(f.Trees, fitTree(x, y, samples, tp, rng))
	}

	return f, nil
}

// PredictProba averages the leaf class distributions of every tree.
func (f *Forest) PredictProba(x []float64) []float64 {
	proba := make([]float64, f.NumClasses)
	if len(f.Trees) == 0 {
		return proba
	}
	for i := range f.Trees {
		for k, v := range f.Trees[i].predict(x) {
			proba[k] += v
		}
	}
	for k := range proba {
		proba[k] /= float64(len(f.Trees))
	}
	return proba
}

// Predict returns the arg-max class index. Ties resolve to the lowest index.
func (f *Forest) Predict(x []float64) int {
	return argmax(f.PredictProba(x))
}

func argmax(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
