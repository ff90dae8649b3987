// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/adinterest/internal/models"
)

// setupBadgerStore creates an in-memory BadgerDB store for testing.
func setupBadgerStore(t *testing.T) Store {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("Failed to open BadgerDB: %v", err)
	}
	store := NewBadgerStore(db)
	t.Cleanup(func() { store.Close() })
	return store
}

func setupMemoryStore(t *testing.T) Store {
	t.Helper()
	return NewMemoryStore()
}

var backends = []struct {
	name  string
	setup func(t *testing.T) Store
}{
	{"memory", setupMemoryStore},
	{"badger", setupBadgerStore},
}

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func event(userID string, n int, at time.Time) *models.InteractionEvent {
	return &models.InteractionEvent{
		ID:              fmt.Sprintf("%s-evt-%d", userID, n),
		UserID:          userID,
		SessionID:       "session-1",
		EventType:       models.EventClick,
		ContentCategory: "sports",
		ContentID:       fmt.Sprintf("content-%d", n),
		Duration:        float64(n),
		Timestamp:       at,
		Metadata:        map[string]interface{}{"n": float64(n)},
	}
}

func TestStore_Users(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			s := b.setup(t)

			user := &models.User{
				UserID:    "user-1",
				Email:     "user1@example.com",
				Name:      models.DefaultUserName,
				CreatedAt: baseTime,
			}
			if err := s.CreateUser(ctx, user); err != nil {
				t.Fatalf("CreateUser() error = %v", err)
			}
			if err := s.CreateUser(ctx, user); !errors.Is(err, ErrUserExists) {
				t.Errorf("CreateUser() duplicate error = %v, want ErrUserExists", err)
			}

			got, err := s.GetUser(ctx, "user-1")
			if err != nil {
				t.Fatalf("GetUser() error = %v", err)
			}
			if got.Email != user.Email || !got.CreatedAt.Equal(baseTime) {
				t.Errorf("GetUser() = %+v", got)
			}

			if _, err := s.GetUser(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
				t.Errorf("GetUser(missing) error = %v, want ErrNotFound", err)
			}

			touched := baseTime.Add(time.Hour)
			if err := s.TouchUser(ctx, "user-1", touched); err != nil {
				t.Fatalf("TouchUser() error = %v", err)
			}
			got, _ = s.GetUser(ctx, "user-1")
			if !got.LastActive.Equal(touched) {
				t.Errorf("LastActive = %v, want %v", got.LastActive, touched)
			}
			if err := s.TouchUser(ctx, "missing", touched); !errors.Is(err, models.ErrNotFound) {
				t.Errorf("TouchUser(missing) error = %v, want ErrNotFound", err)
			}

			old := &models.User{UserID: "user-0", Email: "old@example.com", CreatedAt: baseTime.AddDate(0, 0, -30)}
			if err := s.CreateUser(ctx, old); err != nil {
				t.Fatalf("CreateUser() error = %v", err)
			}

			tests := []struct {
				since time.Time
				want  int
			}{
				{time.Time{}, 2},
				{baseTime.AddDate(0, 0, -7), 1},
				{baseTime, 1},
				{baseTime.Add(time.Second), 0},
			}
			for _, tt := range tests {
				n, err := s.CountUsers(ctx, tt.since)
				if err != nil {
					t.Fatalf("CountUsers() error = %v", err)
				}
				if n != tt.want {
					t.Errorf("CountUsers(%v) = %d, want %d", tt.since, n, tt.want)
				}
			}
		})
	}
}

func TestStore_Interactions(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			s := b.setup(t)

			// Appended out of order on purpose.
			order := []int{2, 0, 4, 1, 3}
			for _, n := range order {
				if err := s.AppendInteraction(ctx, event("alice", n, baseTime.Add(time.Duration(n)*time.Minute))); err != nil {
					t.Fatalf("AppendInteraction() error = %v", err)
				}
			}
			if err := s.AppendInteraction(ctx, event("bob", 0, baseTime)); err != nil {
				t.Fatalf("AppendInteraction() error = %v", err)
			}

			all, err := s.ListInteractions(ctx, "alice", 0)
			if err != nil {
				t.Fatalf("ListInteractions() error = %v", err)
			}
			if len(all) != 5 {
				t.Fatalf("ListInteractions() returned %d events, want 5", len(all))
			}
			for i, e := range all {
				wantID := fmt.Sprintf("alice-evt-%d", 4-i)
				if e.ID != wantID {
					t.Errorf("ListInteractions()[%d].ID = %q, want %q (newest first)", i, e.ID, wantID)
				}
			}
			if all[0].Metadata["n"] != float64(4) {
				t.Errorf("metadata = %v", all[0].Metadata)
			}

			limited, err := s.ListInteractions(ctx, "alice", 2)
			if err != nil {
				t.Fatalf("ListInteractions() error = %v", err)
			}
			if len(limited) != 2 || limited[0].ID != "alice-evt-4" || limited[1].ID != "alice-evt-3" {
				t.Errorf("ListInteractions(limit=2) = %v", limited)
			}

			none, err := s.ListInteractions(ctx, "nobody", 10)
			if err != nil {
				t.Fatalf("ListInteractions() error = %v", err)
			}
			if len(none) != 0 {
				t.Errorf("ListInteractions(nobody) = %v, want empty", none)
			}

			seen := 0
			err = s.ScanInteractions(ctx, func(e *models.InteractionEvent) error {
				seen++
				return nil
			})
			if err != nil {
				t.Fatalf("ScanInteractions() error = %v", err)
			}
			if seen != 6 {
				t.Errorf("ScanInteractions() visited %d events, want 6", seen)
			}

			stop := errors.New("stop")
			err = s.ScanInteractions(ctx, func(e *models.InteractionEvent) error { return stop })
			if !errors.Is(err, stop) {
				t.Errorf("ScanInteractions() error = %v, want stop", err)
			}

			n, err := s.CountInteractions(ctx, baseTime.Add(2*time.Minute))
			if err != nil {
				t.Fatalf("CountInteractions() error = %v", err)
			}
			if n != 3 {
				t.Errorf("CountInteractions() = %d, want 3", n)
			}
		})
	}
}

func TestStore_InteractionValidation(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			s := b.setup(t)
			tests := []*models.InteractionEvent{
				nil,
				{ID: "x"},
				{UserID: "u"},
			}
			for _, e := range tests {
				err := s.AppendInteraction(context.Background(), e)
				if !errors.Is(err, models.ErrInvalidInput) {
					t.Errorf("AppendInteraction(%+v) error = %v, want ErrInvalidInput", e, err)
				}
			}
		})
	}
}

func TestStore_InteractionsAcrossEpoch(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			s := b.setup(t)

			times := map[int]time.Time{
				1960: time.Date(1960, 6, 1, 0, 0, 0, 0, time.UTC),
				1965: time.Date(1965, 6, 1, 0, 0, 0, 0, time.UTC),
				2020: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
			}
			for _, year := range []int{1960, 1965, 2020} {
				if err := s.AppendInteraction(ctx, event("u", year, times[year])); err != nil {
					t.Fatalf("AppendInteraction(%d) error = %v", year, err)
				}
			}

			got, err := s.ListInteractions(ctx, "u", 2)
			if err != nil {
				t.Fatalf("ListInteractions() error = %v", err)
			}
			if len(got) != 2 || got[0].ID != "u-evt-2020" || got[1].ID != "u-evt-1965" {
				ids := make([]string, len(got))
				for i, e := range got {
					ids[i] = e.ID
				}
				t.Errorf("ListInteractions(limit=2) = %v, want [u-evt-2020 u-evt-1965]", ids)
			}
		})
	}
}

func TestStore_RejectsUnrepresentableTimestamps(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			s := b.setup(t)
			tests := []time.Time{
				{},
				MinEventTime.Add(-time.Second),
				MaxEventTime.Add(time.Second),
			}
			for _, at := range tests {
				err := s.AppendInteraction(context.Background(), event("u", 1, at))
				if !errors.Is(err, models.ErrInvalidInput) {
					t.Errorf("AppendInteraction(%s) error = %v, want ErrInvalidInput", at, err)
				}
			}
			if err := s.AppendInteraction(context.Background(), event("u", 2, MinEventTime)); err != nil {
				t.Errorf("AppendInteraction(MinEventTime) error = %v", err)
			}
		})
	}
}

func TestTimeKey_Ordering(t *testing.T) {
	t.Parallel()

	ordered := []time.Time{
		MinEventTime,
		time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Unix(0, -1),
		time.Unix(0, 0),
		time.Unix(0, 1),
		baseTime,
		MaxEventTime,
	}
	for i := 1; i < len(ordered); i++ {
		prev, cur := timeKey(ordered[i-1]), timeKey(ordered[i])
		if prev >= cur {
			t.Errorf("timeKey(%s) = %s, not below timeKey(%s) = %s", ordered[i-1], prev, ordered[i], cur)
		}
		if len(cur) != 16 {
			t.Errorf("timeKey(%s) has length %d, want 16", ordered[i], len(cur))
		}
	}
}

func TestStore_ListDoesNotLeakAcrossPrefixes(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			s := b.setup(t)

			if err := s.AppendInteraction(ctx, event("a", 1, baseTime)); err != nil {
				t.Fatal(err)
			}
			if err := s.AppendInteraction(ctx, event("a:b", 1, baseTime)); err != nil {
				t.Fatal(err)
			}

			got, err := s.ListInteractions(ctx, "a", 0)
			if err != nil {
				t.Fatalf("ListInteractions() error = %v", err)
			}
			if len(got) != 1 || got[0].UserID != "a" {
				t.Errorf("ListInteractions(a) = %+v", got)
			}
		})
	}
}

func TestStore_Predictions(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			s := b.setup(t)

			if _, err := s.GetPrediction(ctx, "alice"); !errors.Is(err, models.ErrNotFound) {
				t.Errorf("GetPrediction() error = %v, want ErrNotFound", err)
			}

			first := &models.Prediction{
				UserID:          "alice",
				PrimaryInterest: "sports",
				InterestScores:  map[string]float64{"sports": 0.7, "tech": 0.3},
				Confidence:      0.7,
				Timestamp:       baseTime,
				ModelVersion:    "1.0.0",
			}
			if err := s.UpsertPrediction(ctx, first); err != nil {
				t.Fatalf("UpsertPrediction() error = %v", err)
			}

			// Mutating the caller's copy must not change what is stored.
			first.InterestScores["sports"] = 0

			got, err := s.GetPrediction(ctx, "alice")
			if err != nil {
				t.Fatalf("GetPrediction() error = %v", err)
			}
			if got.InterestScores["sports"] != 0.7 {
				t.Errorf("stored scores = %v", got.InterestScores)
			}

			second := &models.Prediction{
				UserID:          "alice",
				PrimaryInterest: "tech",
				Confidence:      0.6,
				Timestamp:       baseTime.Add(time.Hour),
			}
			if err := s.UpsertPrediction(ctx, second); err != nil {
				t.Fatalf("UpsertPrediction() error = %v", err)
			}
			got, _ = s.GetPrediction(ctx, "alice")
			if got.PrimaryInterest != "tech" {
				t.Errorf("PrimaryInterest = %q, want tech (last writer wins)", got.PrimaryInterest)
			}

			if err := s.UpsertPrediction(ctx, &models.Prediction{UserID: "bob", PrimaryInterest: "food"}); err != nil {
				t.Fatal(err)
			}
			count := 0
			if err := s.ScanPredictions(ctx, func(p *models.Prediction) error {
				count++
				return nil
			}); err != nil {
				t.Fatalf("ScanPredictions() error = %v", err)
			}
			if count != 2 {
				t.Errorf("ScanPredictions() visited %d, want 2", count)
			}

			if err := s.UpsertPrediction(ctx, &models.Prediction{}); !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("UpsertPrediction(empty) error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Backend: BackendMemory}, false},
		{"default", Config{}, false},
		{"badger", Config{Backend: BackendBadger, Path: t.TempDir()}, false},
		{"badger without path", Config{Backend: BackendBadger}, true},
		{"unknown", Config{Backend: "postgres"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if s != nil {
				if err := s.Close(); err != nil {
					t.Errorf("Close() error = %v", err)
				}
			}
		})
	}
}

func TestBadgerStore_Persists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := OpenBadgerStore(dir, true)
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	if err := s.CreateUser(ctx, &models.User{UserID: "u1", Email: "u1@example.com", CreatedAt: baseTime}); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendInteraction(ctx, event("u1", 1, baseTime)); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenBadgerStore(dir, true)
	if err != nil {
		t.Fatalf("OpenBadgerStore() reopen error = %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.GetUser(ctx, "u1"); err != nil {
		t.Errorf("GetUser() after reopen error = %v", err)
	}
	events, err := reopened.ListInteractions(ctx, "u1", 0)
	if err != nil || len(events) != 1 {
		t.Errorf("ListInteractions() after reopen = %v, %v", events, err)
	}
}

func TestBadgerStore_RunGC(t *testing.T) {
	s, err := OpenBadgerStore(t.TempDir(), false)
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	defer s.Close()

	if err := s.AppendInteraction(context.Background(), event("u1", 1, baseTime)); err != nil {
		t.Fatal(err)
	}
	// Nothing to rewrite on a fresh store.
	if err := s.RunGC(0.5); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
}
