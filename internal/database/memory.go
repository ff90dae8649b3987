// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/adinterest/internal/models"
)

// MemoryStore is an in-process Store. Nothing survives a restart.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[string]models.User
	interactions map[string][]models.InteractionEvent
	predictions  map[string]*models.Prediction
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]models.User),
		interactions: make(map[string][]models.InteractionEvent),
		predictions:  make(map[string]*models.Prediction),
	}
}

// CreateUser implements Store.
func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.UserID]; ok {
		return ErrUserExists
	}
	s.users[user.UserID] = *user
	return nil
}

// GetUser implements Store.
func (s *MemoryStore) GetUser(_ context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, notFound("get user", "user", userID)
	}
	return &u, nil
}

// TouchUser implements Store.
func (s *MemoryStore) TouchUser(_ context.Context, userID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return notFound("touch user", "user", userID)
	}
	u.LastActive = at
	s.users[userID] = u
	return nil
}

// CountUsers implements Store.
func (s *MemoryStore) CountUsers(_ context.Context, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, u := range s.users {
		if afterOrAt(u.CreatedAt, since) {
			n++
		}
	}
	return n, nil
}

// AppendInteraction implements Store. History is kept ordered by timestamp.
func (s *MemoryStore) AppendInteraction(_ context.Context, event *models.InteractionEvent) error {
	if err := checkEvent(event); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.interactions[event.UserID]
	i := sort.Search(len(list), func(i int) bool {
		return list[i].Timestamp.After(event.Timestamp)
	})
	list = append(list, models.InteractionEvent{})
	copy(list[i+1:], list[i:])
	list[i] = copyEvent(event)
	s.interactions[event.UserID] = list
	return nil
}

// ListInteractions implements Store.
func (s *MemoryStore) ListInteractions(_ context.Context, userID string, limit int) ([]models.InteractionEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.interactions[userID]
	n := len(list)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]models.InteractionEvent, 0, n)
	for i := len(list) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, copyEvent(&list[i]))
	}
	return out, nil
}

// ScanInteractions implements Store.
func (s *MemoryStore) ScanInteractions(ctx context.Context, fn func(*models.InteractionEvent) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, list := range s.interactions {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := range list {
			e := copyEvent(&list[i])
			if err := fn(&e); err != nil {
				return err
			}
		}
	}
	return nil
}

// CountInteractions implements Store.
func (s *MemoryStore) CountInteractions(_ context.Context, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, list := range s.interactions {
		for i := range list {
			if afterOrAt(list[i].Timestamp, since) {
				n++
			}
		}
	}
	return n, nil
}

// UpsertPrediction implements Store.
func (s *MemoryStore) UpsertPrediction(_ context.Context, prediction *models.Prediction) error {
	if prediction == nil || prediction.UserID == "" {
		return models.Errorf(models.KindInvalidInput, "upsert prediction", "prediction requires user_id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.predictions[prediction.UserID] = prediction.Clone()
	return nil
}

// GetPrediction implements Store.
func (s *MemoryStore) GetPrediction(_ context.Context, userID string) (*models.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.predictions[userID]
	if !ok {
		return nil, notFound("get prediction", "prediction for user", userID)
	}
	return p.Clone(), nil
}

// ScanPredictions implements Store.
func (s *MemoryStore) ScanPredictions(ctx context.Context, fn func(*models.Prediction) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.predictions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(p.Clone()); err != nil {
			return err
		}
	}
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}

func copyEvent(e *models.InteractionEvent) models.InteractionEvent {
	out := *e
	if e.Metadata != nil {
		out.Metadata = make(map[string]interface{}, len(e.Metadata))
		for k, v := range e.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}
