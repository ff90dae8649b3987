// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package features

import (
	"testing"
	"time"

	"github.com/tomtom215/adinterest/internal/models"
)

func event(session string, et models.EventType, category string, duration float64) models.InteractionEvent {
	return models.InteractionEvent{
		UserID:          "u1",
		SessionID:       session,
		EventType:       et,
		ContentCategory: category,
		Duration:        duration,
		Timestamp:       time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNames(t *testing.T) {
	n := Names()
	if len(n) != 19 {
		t.Fatalf("len(Names()) = %d, want 19", len(n))
	}
	if n[0] != "sports_clicks" || n[1] != "sports_time" || n[2] != "tech_clicks" {
		t.Errorf("unexpected leading names: %v", n[:3])
	}
	if n[16] != "total_sessions" || n[17] != "avg_session_duration" || n[18] != "total_interactions" {
		t.Errorf("unexpected trailing names: %v", n[16:])
	}

	n[0] = "mutated"
	if Names()[0] != "sports_clicks" {
		t.Error("Names() should return a copy")
	}
}

func TestCategories(t *testing.T) {
	c := Categories()
	if len(c) != NumCategories || Size != 2*NumCategories+3 {
		t.Fatalf("len(Categories()) = %d, Size = %d", len(c), Size)
	}
	seen := make(map[string]bool, len(c))
	for i, cat := range c {
		if cat == "" || seen[cat] {
			t.Errorf("Categories()[%d] = %q is empty or duplicated", i, cat)
		}
		seen[cat] = true
		if CategoryIndex(cat) != i {
			t.Errorf("CategoryIndex(%q) = %d, want %d", cat, CategoryIndex(cat), i)
		}
	}

	c[0] = "mutated"
	if Categories()[0] != "sports" {
		t.Error("Categories() should return a copy")
	}
	if len(Build(nil)) != Size {
		t.Errorf("Build() length changed after mutating the returned slice")
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"sports", "sports", true},
		{"  Sports ", "sports", true},
		{"tech", "tech", true},
		{"technology", "tech", true},
		{"TECHNOLOGY", "tech", true},
		{"movie_reviews", "entertainment", true},
		{"food_recipes", "food", true},
		{"Gardening", "gardening", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Canonicalize(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Canonicalize(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestBuild_Empty(t *testing.T) {
	v := Build(nil)
	if len(v) != Size {
		t.Fatalf("len = %d, want %d", len(v), Size)
	}
	for i, x := range v {
		if x != 0 {
			t.Errorf("v[%d] = %v, want 0", i, x)
		}
	}
}

func TestBuild_Aggregates(t *testing.T) {
	events := []models.InteractionEvent{
		event("s1", models.EventClick, "sports", 10),
		event("s1", models.EventPageView, "sports", 30),
		event("s2", models.EventClick, "technology", 20),
		event("s2", models.EventClick, "tech", 0),
		event("s3", models.EventScroll, "gardening", 40),
	}

	m := Build(events).Map()

	tests := []struct {
		feature string
		want    float64
	}{
		{"sports_clicks", 1},
		{"sports_time", 40},
		{"tech_clicks", 2},
		{"tech_time", 20},
		{"fashion_clicks", 0},
		{"total_sessions", 3},
		{"avg_session_duration", 100.0 / 3.0},
		{"total_interactions", 5},
	}

	for _, tt := range tests {
		t.Run(tt.feature, func(t *testing.T) {
			if got := m[tt.feature]; got != tt.want {
				t.Errorf("%s = %v, want %v", tt.feature, got, tt.want)
			}
		})
	}
}

func TestBuild_TotalInteractionsEqualsInputLength(t *testing.T) {
	categories := []string{"sports", "unknown", "", "food", "technology"}
	var events []models.InteractionEvent
	for n := 0; n < 25; n++ {
		if got := Build(events)[Size-1]; got != float64(len(events)) {
			t.Fatalf("total_interactions = %v for %d events", got, len(events))
		}
		events = append(events, event("s", models.EventClick, categories[n%len(categories)], float64(n)))
	}
}

func TestBuild_SynonymsAggregateIdentically(t *testing.T) {
	pairs := [][2]string{
		{"technology", "tech"},
		{"Technology", "tech"},
		{"tech_news", "tech"},
		{"sports_news", "sports"},
	}

	for _, p := range pairs {
		t.Run(p[0], func(t *testing.T) {
			a := Build([]models.InteractionEvent{
				event("s1", models.EventClick, p[0], 12),
				event("s1", models.EventLike, p[0], 3),
			})
			b := Build([]models.InteractionEvent{
				event("s1", models.EventClick, p[1], 12),
				event("s1", models.EventLike, p[1], 3),
			})
			for i := range a {
				if a[i] != b[i] {
					t.Errorf("feature %s differs: %v vs %v", names[i], a[i], b[i])
				}
			}
		})
	}
}

func TestBuild_NoSessions(t *testing.T) {
	v := Build([]models.InteractionEvent{event("", models.EventClick, "food", 50)})
	m := v.Map()
	if m["total_sessions"] != 0 || m["avg_session_duration"] != 0 {
		t.Errorf("sessions = %v, avg = %v, want 0, 0", m["total_sessions"], m["avg_session_duration"])
	}
	if m["food_clicks"] != 1 || m["food_time"] != 50 {
		t.Errorf("food aggregates = %v/%v", m["food_clicks"], m["food_time"])
	}
}
