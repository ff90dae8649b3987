// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package classifier

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/tomtom215/adinterest/internal/recommend/features"
)

// Dataset is a labeled training set. Rows of X follow features.Names() order
// and Labels hold canonical category names.
type Dataset struct {
	X      [][]float64
	Labels []string
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.X)
}

// encode validates the dataset and maps labels to category indices.
func (d *Dataset) encode(categories []string, numFeatures int) ([]int, error) {
	if len(d.X) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	if len(d.X) != len(d.Labels) {
		return nil, fmt.Errorf("dataset has %d rows but %d labels", len(d.X), len(d.Labels))
	}

	index := make(map[string]int, len(categories))
	for i, c := range categories {
		index[c] = i
	}

	y := make([]int, len(d.Labels))
	for i, row := range d.X {
		if len(row) != numFeatures {
			return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), numFeatures)
		}
		label, _ := features.Canonicalize(d.Labels[i])
		k, ok := index[label]
		if !ok {
			return nil, fmt.Errorf("row %d has unknown label %q", i, d.Labels[i])
		}
		y[i] = k
	}
	return y, nil
}

// Synthetic value ranges (inclusive lower bound, exclusive upper bound).
const (
	synthClicksMax      = 21
	synthTimeMax        = 300
	synthSessionsMin    = 1
	synthSessionsMax    = 50
	synthSessionDurMin  = 60
	synthSessionDurMax  = 1800
	synthInteractionMin = 10
	synthInteractionMax = 200
	synthNoiseStdDev    = 5.0
)

// GenerateSynthetic builds n labeled samples from a fixed seed. Each sample's
// label is the arg-max of clicks*2 + time/10 plus Gaussian noise per category.
func GenerateSynthetic(n int, seed int64) *Dataset {
	//nolint:gosec // G404: math/rand is acceptable for synthetic data (not security)
	rng := rand.New(rand.NewSource(seed))
	categories := features.Categories()
	numCategories := len(categories)

	d := &Dataset{
		X:      make([][]float64, n),
		Labels: make([]string, n),
	}

	for i := 0; i < n; i++ {
		row := make([]float64, features.Size)
		for c := 0; c < numCategories; c++ {
			row[2*c] = float64(rng.Intn(synthClicksMax))
			row[2*c+1] = float64(rng.Intn(synthTimeMax))
		}
		base := 2 * numCategories
		row[base] = float64(synthSessionsMin + rng.Intn(synthSessionsMax-synthSessionsMin))
		row[base+1] = float64(synthSessionDurMin + rng.Intn(synthSessionDurMax-synthSessionDurMin))
		row[base+2] = float64(synthInteractionMin + rng.Intn(synthInteractionMax-synthInteractionMin))

		best, bestScore := 0, math.Inf(-1)
		for c := 0; c < numCategories; c++ {
			score := row[2*c]*2 + row[2*c+1]/10 + rng.NormFloat64()*synthNoiseStdDev
			if score > bestScore {
				best, bestScore = c, score
			}
		}

		d.X[i] = row
		d.Labels[i] = categories[best]
	}
	return d
}

// stratifiedSplit partitions sample indices so that each class contributes
// round(n_c * testFraction) samples to the test split, clamped to [1, n_c-1].
// Every class needs at least two samples.
func stratifiedSplit(y []int, numClasses int, testFraction float64, rng *rand.Rand) (train, test []int, err error) {
	byClass := make([][]int, numClasses)
	for i, k := range y {
		byClass[k] = append(byClass[k], i)
	}

	for k, idx := range byClass {
		if len(idx) == 0 {
			continue
		}
		if len(idx) < 2 {
			return nil, nil, fmt.Errorf("class %d has %d sample, need at least 2 for a stratified split", k, len(idx))
		}

		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nTest := int(math.Round(float64(len(idx)) * testFraction))
		if nTest < 1 {
			nTest = 1
		}
		if nTest > len(idx)-1 {
			nTest = len(idx) - 1
		}
		test = append(test, idx[:nTest]...)
		train = append(train, idx[nTest:]...)
	}

	rng.Shuffle(len(train), func(i, j int) { train[i], train[j] = train[j], train[i] })
	rng.Shuffle(len(test), func(i, j int) { test[i], test[j] = test[j], test[i] })
	return train, test, nil
}

func gather(x [][]float64, y []int, idx []int) ([][]float64, []int) {
	gx := make([][]float64, len(idx))
	gy := make([]int, len(idx))
	for i, j := range idx {
		gx[i] = x[j]
		gy[i] = y[j]
	}
	return gx, gy
}
