// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/adinterest/internal/metrics"
	"github.com/tomtom215/adinterest/internal/recommend/classifier"
)

// ModelLoader loads a persisted classifier, training one when none exists.
// Satisfied by *classifier.Classifier.
type ModelLoader interface {
	LoadOrTrain(ctx context.Context) (bool, error)
	Status() classifier.Status
}

// ModelTrainer retrains the classifier and invalidates cached predictions.
// Satisfied by *recommend.Service.
type ModelTrainer interface {
	Retrain(ctx context.Context) error
}

// ModelServiceConfig controls the classifier lifecycle.
type ModelServiceConfig struct {
	// TrainOnStartup ignores a persisted artifact and trains a fresh model.
	TrainOnStartup bool

	// RetrainInterval schedules periodic retraining. Zero disables it.
	RetrainInterval time.Duration

	// TrainTimeout bounds a single training run. Default: 10m
	TrainTimeout time.Duration
}

// ModelService brings the classifier up when the process starts and
// optionally retrains it on a schedule.
//
// Bootstrap failures are logged and the service keeps running: the API
// reports itself degraded and POST /api/ml/train can still recover.
type ModelService struct {
	loader  ModelLoader
	trainer ModelTrainer
	config  ModelServiceConfig
	logger  zerolog.Logger
	name    string
}

// NewModelService creates the classifier lifecycle service.
//
//nolint:gocritic // logger passed by value per zerolog convention
func NewModelService(loader ModelLoader, trainer ModelTrainer, cfg ModelServiceConfig, logger zerolog.Logger) *ModelService {
	if cfg.TrainTimeout <= 0 {
		cfg.TrainTimeout = 10 * time.Minute
	}
	return &ModelService{
		loader:  loader,
		trainer: trainer,
		config:  cfg,
		logger:  logger.With().Str("service", "model").Logger(),
		name:    "model-service",
	}
}

// Serve implements suture.Service.
func (s *ModelService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("retrain_interval", s.config.RetrainInterval).
		Msg("Model service starting")

	// A restart by the supervisor keeps the model already in memory.
	if !s.loader.Status().Trained {
		s.bootstrap(ctx)
	}

	if s.config.RetrainInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.RetrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Model service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.logger.Debug().Msg("Scheduled retrain triggered")
			if err := s.retrain(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("Scheduled retrain failed, keeping current model")
			}
		}
	}
}

func (s *ModelService) bootstrap(ctx context.Context) {
	if s.config.TrainOnStartup {
		if err := s.retrain(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Startup training failed")
		}
		return
	}

	trainCtx, cancel := context.WithTimeout(ctx, s.config.TrainTimeout)
	defer cancel()

	trained, err := s.loader.LoadOrTrain(trainCtx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Model unavailable, serving without predictions")
		return
	}

	st := s.loader.Status()
	metrics.RecordModelLoaded(st.Accuracy)
	s.logger.Info().
		Bool("trained_now", trained).
		Str("version", st.Version).
		Float64("accuracy", st.Accuracy).
		Msg("Model ready")
}

func (s *ModelService) retrain(ctx context.Context) error {
	trainCtx, cancel := context.WithTimeout(ctx, s.config.TrainTimeout)
	defer cancel()

	start := time.Now()
	if err := s.trainer.Retrain(trainCtx); err != nil {
		return err
	}
	s.logger.Info().Dur("duration", time.Since(start)).Msg("Model retrained")
	return nil
}

// String identifies the service in supervisor logs.
func (s *ModelService) String() string {
	return s.name
}
