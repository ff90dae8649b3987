// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package classifier

import "math"

// Scaler standardizes features to zero mean and unit variance.
// Features with zero variance are centered but not scaled.
type Scaler struct {
	Mean  []float64
	Scale []float64
}

// fitScaler computes per-feature mean and population standard deviation.
func fitScaler(x [][]float64) Scaler {
	if len(x) == 0 {
		return Scaler{}
	}
	d := len(x[0])
	n := float64(len(x))
	s := Scaler{Mean: make([]float64, d), Scale: make([]float64, d)}

	for _, row := range x {
		for j, v := range row {
			s.Mean[j] += v
		}
	}
	for j := range s.Mean {
		s.Mean[j] /= n
	}

	for _, row := range x {
		for j, v := range row {
			diff := v - s.Mean[j]
			s.Scale[j] += diff * diff
		}
	}
	for j := range s.Scale {
		std := math.Sqrt(s.Scale[j] / n)
		if std == 0 {
			std = 1
		}
		s.Scale[j] = std
	}
	return s
}

// Transform returns a standardized copy of x.
func (s *Scaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out
}

// transformAll standardizes every row.
func (s *Scaler) transformAll(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = s.Transform(row)
	}
	return out
}
