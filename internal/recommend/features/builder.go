// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package features

import (
	"github.com/tomtom215/adinterest/internal/models"
)

// Size is the length of every feature vector: a click and a time aggregate per
// category, plus total_sessions, avg_session_duration and total_interactions.
const Size = 2*NumCategories + 3

// Vector is a feature vector in Names() order.
type Vector []float64

var names = func() []string {
	n := make([]string, 0, Size)
	for _, c := range categories {
		n = append(n, c+"_clicks", c+"_time")
	}
	return append(n, "total_sessions", "avg_session_duration", "total_interactions")
}()

// Names returns the ordered feature names.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Build aggregates events into a feature vector. An empty input yields an
// all-zero vector. Events with an unrecognized category count toward
// total_interactions and the session aggregates only.
func Build(events []models.InteractionEvent) Vector {
	v := make(Vector, Size)
	base := 2 * NumCategories

	sessions := make(map[string]struct{})
	var totalDuration float64

	for i := range events {
		ev := &events[i]
		totalDuration += ev.Duration
		if ev.SessionID != "" {
			sessions[ev.SessionID] = struct{}{}
		}

		category, ok := Canonicalize(ev.ContentCategory)
		if !ok {
			continue
		}
		ci := categoryIndex[category]
		if ev.EventType == models.EventClick {
			v[2*ci]++
		}
		v[2*ci+1] += ev.Duration
	}

	v[base] = float64(len(sessions))
	if len(sessions) > 0 {
		v[base+1] = totalDuration / float64(len(sessions))
	}
	v[base+2] = float64(len(events))
	return v
}

// Map returns the vector keyed by feature name.
func (v Vector) Map() map[string]float64 {
	m := make(map[string]float64, len(v))
	for i, val := range v {
		if i < len(names) {
			m[names[i]] = val
		}
	}
	return m
}
