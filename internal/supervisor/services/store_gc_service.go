// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector reclaims store space. Satisfied by *database.BadgerStore.
type GarbageCollector interface {
	RunGC(discardRatio float64) error
}

// StoreGCService runs value log garbage collection on an interval.
type StoreGCService struct {
	gc           GarbageCollector
	interval     time.Duration
	discardRatio float64
	logger       zerolog.Logger
	name         string
}

// NewStoreGCService creates the GC loop. Defaults: every 10 minutes with a
// discard ratio of 0.5.
//
//nolint:gocritic // logger passed by value per zerolog convention
func NewStoreGCService(gc GarbageCollector, interval time.Duration, discardRatio float64, logger zerolog.Logger) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if discardRatio <= 0 || discardRatio >= 1 {
		discardRatio = 0.5
	}
	return &StoreGCService{
		gc:           gc,
		interval:     interval,
		discardRatio: discardRatio,
		logger:       logger.With().Str("service", "store-gc").Logger(),
		name:         "store-gc",
	}
}

// Serve implements suture.Service. GC errors are logged, not returned.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.gc.RunGC(s.discardRatio); err != nil {
				s.logger.Warn().Err(err).Msg("Store GC failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("Store GC complete")
		}
	}
}

// String identifies the service in supervisor logs.
func (s *StoreGCService) String() string {
	return s.name
}
