// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/adinterest/internal/models"
)

// Key prefixes for BadgerDB storage
const (
	userKeyPrefix        = "user:"
	interactionKeyPrefix = "interaction:"
	predictionKeyPrefix  = "prediction:"
)

// BadgerStore implements Store on top of BadgerDB.
//
// Interaction keys are interaction:{user_id}:{time}:{event_id}. The time is
// the Unix nanosecond count with its sign bit flipped, as 16 hex digits, so
// byte order matches time order on both sides of 1970 and a prefix scan over
// one user yields the history in time order.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a BadgerDB at path.
func OpenBadgerStore(path string, syncWrites bool) (*BadgerStore, error) {
	if path == "" {
		return nil, errors.New("badger path is required")
	}

	opts := badger.DefaultOptions(path)
	opts.SyncWrites = syncWrites
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}
	return NewBadgerStore(db), nil
}

// NewBadgerStore wraps an open BadgerDB. The store takes ownership of db.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func interactionUserPrefix(userID string) []byte {
	return []byte(interactionKeyPrefix + userID + ":")
}

func interactionKey(e *models.InteractionEvent) []byte {
	return []byte(fmt.Sprintf("%s%s:%s:%s", interactionKeyPrefix, e.UserID, timeKey(e.Timestamp), e.ID))
}

// timeKey encodes t so that lexical order is chronological order. t must be
// within [MinEventTime, MaxEventTime].
func timeKey(t time.Time) string {
	return fmt.Sprintf("%016x", uint64(t.UnixNano())^(1<<63)) //nolint:gosec // sign flip is intended
}

// CreateUser implements Store.
func (s *BadgerStore) CreateUser(_ context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(userKeyPrefix + user.UserID)
		_, err := txn.Get(key)
		if err == nil {
			return ErrUserExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get user: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		return nil
	})
}

// GetUser implements Store.
func (s *BadgerStore) GetUser(_ context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, []byte(userKeyPrefix+userID), &user)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, notFound("get user", "user", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// TouchUser implements Store.
func (s *BadgerStore) TouchUser(_ context.Context, userID string, at time.Time) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(userKeyPrefix + userID)
		var user models.User
		if err := getJSON(txn, key, &user); err != nil {
			return err
		}
		user.LastActive = at
		data, err := json.Marshal(&user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		return txn.Set(key, data)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return notFound("touch user", "user", userID)
	}
	if err != nil {
		return fmt.Errorf("touch user: %w", err)
	}
	return nil
}

// CountUsers implements Store.
func (s *BadgerStore) CountUsers(ctx context.Context, since time.Time) (int, error) {
	n := 0
	err := s.scanPrefix(ctx, []byte(userKeyPrefix), func(val []byte) error {
		if since.IsZero() {
			n++
			return nil
		}
		var user models.User
		if err := json.Unmarshal(val, &user); err != nil {
			return fmt.Errorf("unmarshal user: %w", err)
		}
		if afterOrAt(user.CreatedAt, since) {
			n++
		}
		return nil
	})
	return n, err
}

// AppendInteraction implements Store.
func (s *BadgerStore) AppendInteraction(_ context.Context, event *models.InteractionEvent) error {
	if err := checkEvent(event); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(interactionKey(event), data); err != nil {
			return fmt.Errorf("set interaction: %w", err)
		}
		return nil
	})
}

// ListInteractions implements Store.
func (s *BadgerStore) ListInteractions(ctx context.Context, userID string, limit int) ([]models.InteractionEvent, error) {
	prefix := interactionUserPrefix(userID)
	out := make([]models.InteractionEvent, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		// Seek past the last key carrying the prefix.
		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(out) >= limit {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			var e models.InteractionEvent
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			})
			if err != nil {
				return fmt.Errorf("unmarshal interaction: %w", err)
			}
			// A user ID containing ':' can share a key prefix with another user.
			if e.UserID != userID {
				continue
			}
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	return out, nil
}

// ScanInteractions implements Store.
func (s *BadgerStore) ScanInteractions(ctx context.Context, fn func(*models.InteractionEvent) error) error {
	return s.scanPrefix(ctx, []byte(interactionKeyPrefix), func(val []byte) error {
		var e models.InteractionEvent
		if err := json.Unmarshal(val, &e); err != nil {
			return fmt.Errorf("unmarshal interaction: %w", err)
		}
		return fn(&e)
	})
}

// CountInteractions implements Store.
func (s *BadgerStore) CountInteractions(ctx context.Context, since time.Time) (int, error) {
	n := 0
	err := s.ScanInteractions(ctx, func(e *models.InteractionEvent) error {
		if afterOrAt(e.Timestamp, since) {
			n++
		}
		return nil
	})
	return n, err
}

// UpsertPrediction implements Store.
func (s *BadgerStore) UpsertPrediction(_ context.Context, prediction *models.Prediction) error {
	if prediction == nil || prediction.UserID == "" {
		return models.Errorf(models.KindInvalidInput, "upsert prediction", "prediction requires user_id")
	}

	data, err := json.Marshal(prediction)
	if err != nil {
		return fmt.Errorf("marshal prediction: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(predictionKeyPrefix+prediction.UserID), data); err != nil {
			return fmt.Errorf("set prediction: %w", err)
		}
		return nil
	})
}

// GetPrediction implements Store.
func (s *BadgerStore) GetPrediction(_ context.Context, userID string) (*models.Prediction, error) {
	var p models.Prediction
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, []byte(predictionKeyPrefix+userID), &p)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, notFound("get prediction", "prediction for user", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("get prediction: %w", err)
	}
	return &p, nil
}

// ScanPredictions implements Store.
func (s *BadgerStore) ScanPredictions(ctx context.Context, fn func(*models.Prediction) error) error {
	return s.scanPrefix(ctx, []byte(predictionKeyPrefix), func(val []byte) error {
		var p models.Prediction
		if err := json.Unmarshal(val, &p); err != nil {
			return fmt.Errorf("unmarshal prediction: %w", err)
		}
		return fn(&p)
	})
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// RunGC reclaims value log space until BadgerDB reports nothing left to rewrite.
func (s *BadgerStore) RunGC(discardRatio float64) error {
	for {
		err := s.db.RunValueLogGC(discardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

func getJSON(txn *badger.Txn, key []byte, v interface{}) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

// scanPrefix calls fn with every value under prefix. fn must not retain val.
func (s *BadgerStore) scanPrefix(ctx context.Context, prefix []byte, fn func(val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	})
}
