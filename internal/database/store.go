// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package database

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/adinterest/internal/models"
)

// Interaction timestamps must be representable as Unix nanoseconds.
var (
	MinEventTime = time.Unix(0, math.MinInt64).UTC()
	MaxEventTime = time.Unix(0, math.MaxInt64).UTC()
)

// ErrUserExists is returned by CreateUser when the user ID is already taken.
var ErrUserExists = errors.New("user already exists")

// Store is the persistence collaborator for users, interaction events and
// predictions. Lookups that find nothing return an error matching
// models.ErrNotFound.
type Store interface {
	// CreateUser stores a new user. It fails with ErrUserExists if the ID is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser returns the user with userID.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// TouchUser sets the user's LastActive time.
	TouchUser(ctx context.Context, userID string, at time.Time) error

	// CountUsers counts users created at or after since. A zero since counts all users.
	CountUsers(ctx context.Context, since time.Time) (int, error)

	// AppendInteraction appends an event to the user's history.
	AppendInteraction(ctx context.Context, event *models.InteractionEvent) error

	// ListInteractions returns up to limit events for userID, newest first.
	// A limit <= 0 returns the full history.
	ListInteractions(ctx context.Context, userID string, limit int) ([]models.InteractionEvent, error)

	// ScanInteractions calls fn for every stored event. Returning an error
	// from fn stops the scan and is returned as is.
	ScanInteractions(ctx context.Context, fn func(*models.InteractionEvent) error) error

	// CountInteractions counts events recorded at or after since. A zero since counts all.
	CountInteractions(ctx context.Context, since time.Time) (int, error)

	// UpsertPrediction stores prediction as the user's current prediction.
	UpsertPrediction(ctx context.Context, prediction *models.Prediction) error

	// GetPrediction returns the user's current prediction.
	GetPrediction(ctx context.Context, userID string) (*models.Prediction, error)

	// ScanPredictions calls fn for every stored prediction.
	ScanPredictions(ctx context.Context, fn func(*models.Prediction) error) error

	// Close releases the store's resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Config selects and configures a Store backend.
type Config struct {
	Backend    string
	Path       string
	SyncWrites bool
}

// Open creates the Store named by cfg.Backend.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendBadger:
		s, err := OpenBadgerStore(cfg.Path, cfg.SyncWrites)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database backend %q", cfg.Backend)
	}
}

func notFound(op, what, id string) error {
	return models.Errorf(models.KindNotFound, op, "%s %q not found", what, id)
}

func checkEvent(event *models.InteractionEvent) error {
	if event == nil || event.UserID == "" || event.ID == "" {
		return models.Errorf(models.KindInvalidInput, "append interaction", "event requires user_id and id")
	}
	if !EventTimeInRange(event.Timestamp) {
		return models.Errorf(models.KindInvalidInput, "append interaction",
			"timestamp %s outside supported range", event.Timestamp.Format(time.RFC3339))
	}
	return nil
}

// EventTimeInRange reports whether t can be stored as an interaction timestamp.
func EventTimeInRange(t time.Time) bool {
	return !t.Before(MinEventTime) && !t.After(MaxEventTime)
}

func afterOrAt(t, since time.Time) bool {
	return since.IsZero() || !t.Before(since)
}
