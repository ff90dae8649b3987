// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/adinterest/internal/cache"
	"github.com/tomtom215/adinterest/internal/database"
	"github.com/tomtom215/adinterest/internal/metrics"
	"github.com/tomtom215/adinterest/internal/models"
	"github.com/tomtom215/adinterest/internal/recommend/ads"
	"github.com/tomtom215/adinterest/internal/recommend/classifier"
	"github.com/tomtom215/adinterest/internal/recommend/features"
	"github.com/tomtom215/adinterest/internal/recommend/storage"
)

// Ad sources reported in Recommendations.Source and the ads_served metric.
const (
	SourcePrediction = "prediction"
	SourceRandom     = "random"
)

// Model is the interest classifier used by the service.
type Model interface {
	Train(ctx context.Context, data *classifier.Dataset) (*classifier.TrainResult, error)
	Predict(events []models.InteractionEvent) (*classifier.Inference, error)
	Status() classifier.Status
	StoredArtifact() (*storage.Metadata, error)
}

// ModelInfo is the in-memory model status plus the metadata of the artifact
// on disk.
type ModelInfo struct {
	classifier.Status
	Artifact *storage.Metadata `json:"artifact,omitempty"`
}

// TrainReport is returned by Train.
type TrainReport struct {
	Accuracy float64                `json:"accuracy"`
	Training classifier.TrainResult `json:"training"`
	Model    classifier.Status      `json:"model"`
}

// Recommendations is the ad list served to a user.
type Recommendations struct {
	UserID          string                 `json:"user_id"`
	Source          string                 `json:"source"`
	PrimaryInterest string                 `json:"primary_interest,omitempty"`
	Confidence      float64                `json:"confidence"`
	Ads             []models.RecommendedAd `json:"ads"`
}

// CreateUserInput holds the fields accepted when creating a user.
type CreateUserInput struct {
	Email       string
	Name        string
	Preferences map[string]interface{}
}

// InteractionInput holds the fields accepted when tracking an interaction.
type InteractionInput struct {
	SessionID       string
	EventType       models.EventType
	ContentCategory string
	ContentID       string
	Duration        float64
	Timestamp       time.Time
	Metadata        map[string]interface{}
}

// Service orchestrates prediction, ad selection and analytics.
// It is safe for concurrent use.
type Service struct {
	config   Config
	store    database.Store
	model    Model
	selector *ads.Selector
	cache    cache.PredictionCache
	logger   zerolog.Logger

	// predictions coalesces concurrent on-demand predictions per user.
	predictions singleflight.Group

	now func() time.Time
}

// NewService wires the service. A nil predictionCache disables caching.
//
//nolint:gocritic // logger passed by value per zerolog convention
func NewService(cfg Config, store database.Store, model Model, selector *ads.Selector, predictionCache cache.PredictionCache, logger zerolog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}
	if store == nil || model == nil || selector == nil {
		return nil, fmt.Errorf("store, model and selector are required")
	}
	if predictionCache == nil {
		predictionCache = cache.NopPredictionCache{}
	}
	return &Service{
		config:   cfg,
		store:    store,
		model:    model,
		selector: selector,
		cache:    predictionCache,
		logger:   logger.With().Str("component", "recommend").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Train retrains the classifier on synthetic data and clears cached
// predictions. A failed run leaves the previous model in place.
func (s *Service) Train(ctx context.Context) Result[*TrainReport] {
	start := time.Now()
	res, err := s.model.Train(ctx, nil)
	if err != nil {
		metrics.RecordTraining(time.Since(start), 0, err)
		s.logger.Error().Err(err).Msg("Training failed")
		return Fail[*TrainReport](err)
	}
	metrics.RecordTraining(res.Duration, res.Accuracy, nil)
	s.cache.Clear(ctx)

	return Ok(&TrainReport{
		Accuracy: res.Accuracy,
		Training: *res,
		Model:    s.model.Status(),
	}, fmt.Sprintf("Model trained with accuracy %.4f", res.Accuracy))
}

// Retrain is Train for callers that only need the error, such as the
// scheduled retrain loop.
func (s *Service) Retrain(ctx context.Context) error {
	_, err := s.Train(ctx).Unwrap()
	return err
}

// Status reports the classifier currently loaded in memory.
func (s *Service) Status() Result[classifier.Status] {
	st := s.model.Status()
	if !st.Trained {
		return Ok(st, "Model is not trained")
	}
	return Ok(st, "Model is trained")
}

// ModelInfo reports Status together with the stored artifact's metadata.
func (s *Service) ModelInfo() Result[ModelInfo] {
	info := ModelInfo{Status: s.model.Status()}
	meta, err := s.model.StoredArtifact()
	if err != nil {
		return Fail[ModelInfo](err)
	}
	info.Artifact = meta

	switch {
	case !info.Trained:
		return Ok(info, "Model is not trained")
	case meta == nil:
		return Ok(info, "Model is trained but no artifact is stored")
	default:
		return Ok(info, "Model is trained")
	}
}

// Predict computes a fresh prediction from the user's recent interactions
// and stores it as the user's current prediction.
func (s *Service) Predict(ctx context.Context, userID string) Result[*models.Prediction] {
	p, err := s.predict(ctx, userID)
	if err != nil {
		return Fail[*models.Prediction](err)
	}
	return Ok(p, "Prediction generated successfully")
}

func (s *Service) predict(ctx context.Context, userID string) (*models.Prediction, error) {
	events, err := s.store.ListInteractions(ctx, userID, s.config.PredictHistoryLimit)
	if err != nil {
		metrics.RecordPrediction("failure", "")
		return nil, persistenceError("predict", err)
	}
	if len(events) == 0 {
		metrics.RecordPrediction(string(models.KindNoData), "")
		return nil, models.Errorf(models.KindNoData, "predict", "no interaction data available for user %q", userID)
	}

	inf, err := s.model.Predict(events)
	if err != nil {
		metrics.RecordPrediction(string(models.KindOf(err)), "")
		return nil, err
	}

	prediction := &models.Prediction{
		UserID:          userID,
		PrimaryInterest: inf.PrimaryInterest,
		InterestScores:  inf.InterestScores,
		Confidence:      inf.Confidence,
		FeaturesUsed:    inf.FeaturesUsed,
		Timestamp:       s.now(),
		ModelVersion:    s.config.ModelVersion,
	}
	if err := s.store.UpsertPrediction(ctx, prediction); err != nil {
		metrics.RecordPrediction("failure", "")
		return nil, persistenceError("predict", err)
	}
	s.cache.Set(ctx, prediction)
	metrics.RecordPrediction("success", prediction.PrimaryInterest)

	s.logger.Debug().
		Str("user_id", userID).
		Str("primary_interest", prediction.PrimaryInterest).
		Float64("confidence", prediction.Confidence).
		Int("events", len(events)).
		Msg("Prediction stored")

	return prediction, nil
}

// currentPrediction returns the user's stored prediction, computing one when
// none exists.
func (s *Service) currentPrediction(ctx context.Context, userID string) (*models.Prediction, error) {
	if p, ok := s.cache.Get(ctx, userID); ok {
		metrics.PredictionCacheTotal.WithLabelValues("hit").Inc()
		return p, nil
	}
	metrics.PredictionCacheTotal.WithLabelValues("miss").Inc()

	p, err := s.store.GetPrediction(ctx, userID)
	if err == nil {
		s.cache.Set(ctx, p)
		return p, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, persistenceError("get prediction", err)
	}

	v, err, _ := s.predictions.Do(userID, func() (interface{}, error) {
		return s.predict(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Prediction).Clone(), nil
}

// GetRecommendations returns up to limit ads for the user. Users without any
// interaction history get random ads.
func (s *Service) GetRecommendations(ctx context.Context, userID string, limit int) Result[*Recommendations] {
	limit = s.config.clampLimit(limit)

	p, err := s.currentPrediction(ctx, userID)
	if errors.Is(err, models.ErrNoData) {
		picked := s.selector.RandomAds(limit)
		metrics.RecordAdsServed(SourceRandom, len(picked))
		return Ok(&Recommendations{
			UserID: userID,
			Source: SourceRandom,
			Ads:    picked,
		}, "No interaction data, serving random ads")
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Recommendation failed")
		return Fail[*Recommendations](err)
	}

	picked := s.selector.SelectAds(p.PrimaryInterest, p.InterestScores, p.Confidence, limit)
	metrics.RecordAdsServed(SourcePrediction, len(picked))
	return Ok(&Recommendations{
		UserID:          userID,
		Source:          SourcePrediction,
		PrimaryInterest: p.PrimaryInterest,
		Confidence:      p.Confidence,
		Ads:             picked,
	}, "Recommendations generated successfully")
}

// RandomAds returns up to limit random ads.
func (s *Service) RandomAds(limit int) Result[[]models.RecommendedAd] {
	picked := s.selector.RandomAds(s.config.clampLimit(limit))
	metrics.RecordAdsServed(SourceRandom, len(picked))
	return Ok(picked, "Random ads selected")
}

// Catalog returns the ad catalog.
func (s *Service) Catalog() *ads.Catalog {
	return s.selector.Catalog()
}

// CreateUser creates a user with a generated ID.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) Result[*models.User] {
	if in.Email == "" {
		return Fail[*models.User](models.Errorf(models.KindInvalidInput, "create user", "email is required"))
	}
	name := in.Name
	if name == "" {
		name = models.DefaultUserName
	}
	prefs := in.Preferences
	if prefs == nil {
		prefs = map[string]interface{}{}
	}

	now := s.now()
	user := &models.User{
		UserID:      uuid.NewString(),
		Email:       in.Email,
		Name:        name,
		CreatedAt:   now,
		LastActive:  now,
		Preferences: prefs,
		IsDemoUser:  true,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrUserExists) {
			return Fail[*models.User](models.NewError(models.KindInvalidInput, "create user", err))
		}
		return Fail[*models.User](persistenceError("create user", err))
	}

	s.logger.Info().Str("user_id", user.UserID).Msg("User created")
	return Ok(user, "User created successfully")
}

// GetUser returns a user by ID.
func (s *Service) GetUser(ctx context.Context, userID string) Result[*models.User] {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return Fail[*models.User](persistenceError("get user", err))
	}
	return Ok(user, "")
}

// TrackInteraction records an interaction event. The category is stored in
// canonical form and a missing session ID gets a generated one.
func (s *Service) TrackInteraction(ctx context.Context, userID string, in InteractionInput) Result[*models.InteractionEvent] {
	if userID == "" {
		return Fail[*models.InteractionEvent](models.Errorf(models.KindInvalidInput, "track interaction", "user_id is required"))
	}
	if !in.EventType.Valid() {
		return Fail[*models.InteractionEvent](models.Errorf(models.KindInvalidInput, "track interaction", "unknown event type %q", in.EventType))
	}
	if in.Duration < 0 {
		return Fail[*models.InteractionEvent](models.Errorf(models.KindInvalidInput, "track interaction", "duration must not be negative"))
	}

	category, _ := features.Canonicalize(in.ContentCategory)
	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	ts := in.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	if !database.EventTimeInRange(ts) {
		return Fail[*models.InteractionEvent](models.Errorf(models.KindInvalidInput, "track interaction",
			"timestamp must be between %d and %d", database.MinEventTime.Year(), database.MaxEventTime.Year()))
	}

	event := &models.InteractionEvent{
		ID:              uuid.NewString(),
		UserID:          userID,
		SessionID:       sessionID,
		EventType:       in.EventType,
		ContentCategory: category,
		ContentID:       in.ContentID,
		Duration:        in.Duration,
		Timestamp:       ts.UTC(),
		Metadata:        in.Metadata,
	}
	if err := s.store.AppendInteraction(ctx, event); err != nil {
		return Fail[*models.InteractionEvent](persistenceError("track interaction", err))
	}
	metrics.InteractionsTrackedTotal.WithLabelValues(string(event.EventType)).Inc()

	if err := s.store.TouchUser(ctx, userID, s.now()); err != nil && !errors.Is(err, models.ErrNotFound) {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to update last_active")
	}

	return Ok(event, "Interaction tracked successfully")
}

// ListInteractions returns up to limit of the user's events, newest first.
func (s *Service) ListInteractions(ctx context.Context, userID string, limit int) Result[[]models.InteractionEvent] {
	events, err := s.store.ListInteractions(ctx, userID, limit)
	if err != nil {
		return Fail[[]models.InteractionEvent](persistenceError("list interactions", err))
	}
	if events == nil {
		events = []models.InteractionEvent{}
	}
	return Ok(events, "")
}

// persistenceError passes domain errors through and tags anything else as a
// persistence failure.
func persistenceError(op string, err error) error {
	var de *models.DomainError
	if errors.As(err, &de) {
		return err
	}
	return models.NewError(models.KindPersistence, op, err)
}
