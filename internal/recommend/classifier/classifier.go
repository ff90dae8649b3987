// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package classifier

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/adinterest/internal/models"
	"github.com/tomtom215/adinterest/internal/recommend/features"
	"github.com/tomtom215/adinterest/internal/recommend/storage"
)

// ModelKind identifies the estimator family in status and artifact metadata.
const ModelKind = "RandomForestClassifier"

var (
	// ErrTrainingInProgress is wrapped in a training error when Train is
	// called while another training run holds the lock.
	ErrTrainingInProgress = errors.New("training already in progress")

	// ErrIncompatibleArtifact is returned by Load when the stored artifact was
	// trained against a different category set or feature order.
	ErrIncompatibleArtifact = errors.New("artifact is incompatible with the current feature layout")
)

// ArtifactStore persists the trained artifact.
type ArtifactStore interface {
	Save(data interface{}, meta storage.Metadata) error
	Load(target interface{}) (*storage.Metadata, error)
	Metadata() (*storage.Metadata, error)
	Exists() bool
	Delete() error
	Path() string
}

// Artifact bundles everything needed to reproduce predictions.
type Artifact struct {
	ModelKind    string
	Version      string
	Categories   []string
	FeatureNames []string
	Scaler       Scaler
	Forest       Forest
	TrainedAt    time.Time
	Accuracy     float64
	TrainSamples int
	TestSamples  int
}

// Inference is the classifier output for one user.
type Inference struct {
	PrimaryInterest string             `json:"primary_interest"`
	InterestScores  map[string]float64 `json:"interest_scores"`
	Confidence      float64            `json:"confidence"`
	FeaturesUsed    map[string]float64 `json:"features_used"`
}

// TrainResult summarizes a completed training run.
type TrainResult struct {
	Accuracy     float64       `json:"accuracy"`
	TrainSamples int           `json:"train_samples"`
	TestSamples  int           `json:"test_samples"`
	Synthetic    bool          `json:"synthetic"`
	Duration     time.Duration `json:"duration"`
	TrainedAt    time.Time     `json:"trained_at"`
}

// Status describes the artifact currently loaded in memory.
type Status struct {
	Trained          bool       `json:"trained"`
	ModelKind        string     `json:"model_kind,omitempty"`
	Version          string     `json:"version,omitempty"`
	Categories       []string   `json:"categories"`
	FeatureNames     []string   `json:"feature_names"`
	ArtifactLocation string     `json:"artifact_location"`
	TrainedAt        *time.Time `json:"trained_at,omitempty"`
	Accuracy         float64    `json:"accuracy,omitempty"`
	NumTrees         int        `json:"num_trees,omitempty"`
}

// Classifier predicts a user's primary interest category.
type Classifier struct {
	config Config
	store  ArtifactStore
	logger zerolog.Logger

	// trainMu serializes training runs; Predict never takes it.
	trainMu sync.Mutex

	current atomic.Pointer[Artifact]
}

// New creates an untrained classifier backed by store.
//
//nolint:gocritic // logger passed by value per zerolog convention
func New(cfg Config, store ArtifactStore, logger zerolog.Logger) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid classifier config: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("artifact store is required")
	}
	return &Classifier{
		config: cfg,
		store:  store,
		logger: logger.With().Str("component", "classifier").Logger(),
	}, nil
}

// IsTrained reports whether an artifact is loaded.
func (c *Classifier) IsTrained() bool {
	return c.current.Load() != nil
}

// Train fits a new model and publishes it. A nil dataset trains on synthetic
// data. On any failure the previously loaded artifact stays in place.
func (c *Classifier) Train(ctx context.Context, data *Dataset) (*TrainResult, error) {
	if !c.trainMu.TryLock() {
		return nil, models.NewError(models.KindTraining, "train", ErrTrainingInProgress)
	}
	defer c.trainMu.Unlock()

	start := time.Now()
	synthetic := data == nil
	if synthetic {
		data = GenerateSynthetic(c.config.SyntheticSamples, c.config.Seed)
	}

	categories := features.Categories()
	y, err := data.encode(categories, features.Size)
	if err != nil {
		return nil, models.NewError(models.KindTraining, "train", err)
	}

	//nolint:gosec // G404: math/rand is acceptable for data splitting (not security)
	splitRNG := rand.New(rand.NewSource(c.config.Seed))
	trainIdx, testIdx, err := stratifiedSplit(y, len(categories), c.config.TestFraction, splitRNG)
	if err != nil {
		return nil, models.NewError(models.KindTraining, "train", err)
	}

	xTrain, yTrain := gather(data.X, y, trainIdx)
	xTest, yTest := gather(data.X, y, testIdx)

	scaler := fitScaler(xTrain)
	xTrainScaled := scaler.transformAll(xTrain)
	xTestScaled := scaler.transformAll(xTest)

	forest, err := fitForest(ctx, xTrainScaled, yTrain, len(categories), forestParams{
		numTrees:        c.config.NumTrees,
		maxDepth:        c.config.MaxDepth,
		minSamplesSplit: c.config.MinSamplesSplit,
		minSamplesLeaf:  c.config.MinSamplesLeaf,
		seed:            c.config.Seed,
	})
	if err != nil {
		return nil, models.NewError(models.KindTraining, "train", err)
	}

	correct := 0
	for i, row := range xTestScaled {
		if forest.Predict(row) == yTest[i] {
			correct++
		}
	}
	accuracy := float64(correct) / float64(len(yTest))

	trainedAt := time.Now().UTC()
	artifact := &Artifact{
		ModelKind:    ModelKind,
		Version:      c.config.Version,
		Categories:   categories,
		FeatureNames: features.Names(),
		Scaler:       scaler,
		Forest:       *forest,
		TrainedAt:    trainedAt,
		Accuracy:     accuracy,
		TrainSamples: len(trainIdx),
		TestSamples:  len(testIdx),
	}

	duration := time.Since(start)
	meta := storage.Metadata{
		ModelKind:          ModelKind,
		Version:            c.config.Version,
		TrainedAt:          trainedAt,
		TrainSamples:       len(trainIdx),
		TestSamples:        len(testIdx),
		Accuracy:           accuracy,
		TrainingDurationMS: duration.Milliseconds(),
	}
	if err := c.store.Save(artifact, meta); err != nil {
		return nil, models.NewError(models.KindPersistence, "train", err)
	}

	c.current.Store(artifact)

	c.logger.Info().
		Float64("accuracy", accuracy).
		Int("train_samples", len(trainIdx)).
		Int("test_samples", len(testIdx)).
		Bool("synthetic", synthetic).
		Dur("duration", duration).
		Str("artifact", c.store.Path()).
		Msg("Classifier trained")

	return &TrainResult{
		Accuracy:     accuracy,
		TrainSamples: len(trainIdx),
		TestSamples:  len(testIdx),
		Synthetic:    synthetic,
		Duration:     duration,
		TrainedAt:    trainedAt,
	}, nil
}

// Load reads the persisted artifact and publishes it.
func (c *Classifier) Load(_ context.Context) error {
	var artifact Artifact
	if _, err := c.store.Load(&artifact); err != nil {
		return models.NewError(models.KindPersistence, "load", err)
	}
	if !sameStrings(artifact.FeatureNames, features.Names()) || !sameStrings(artifact.Categories, features.Categories()) {
		return models.NewError(models.KindPersistence, "load", ErrIncompatibleArtifact)
	}
	if artifact.Forest.NumFeatures != features.Size || len(artifact.Scaler.Mean) != features.Size {
		return models.NewError(models.KindPersistence, "load", ErrIncompatibleArtifact)
	}

	c.current.Store(&artifact)
	c.logger.Info().
		Str("artifact", c.store.Path()).
		Time("trained_at", artifact.TrainedAt).
		Float64("accuracy", artifact.Accuracy).
		Msg("Classifier loaded from artifact")
	return nil
}

// LoadOrTrain loads the persisted artifact, training a new one when none
// exists or the stored one is incompatible. It reports whether it trained.
func (c *Classifier) LoadOrTrain(ctx context.Context) (bool, error) {
	if !c.store.Exists() {
		c.logger.Info().Str("artifact", c.store.Path()).Msg("No artifact found, training classifier")
		return c.trainFresh(ctx)
	}

	err := c.Load(ctx)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, ErrIncompatibleArtifact):
		c.logger.Warn().Err(err).Str("artifact", c.store.Path()).Msg("Discarding incompatible artifact")
		if delErr := c.store.Delete(); delErr != nil {
			return false, models.NewError(models.KindPersistence, "load or train", delErr)
		}
		return c.trainFresh(ctx)
	case errors.Is(err, storage.ErrArtifactNotFound):
		return c.trainFresh(ctx)
	default:
		return false, err
	}
}

func (c *Classifier) trainFresh(ctx context.Context) (bool, error) {
	if _, err := c.Train(ctx, nil); err != nil {
		return false, err
	}
	return true, nil
}

// StoredArtifact returns the metadata of the artifact on disk, or nil if
// nothing has been saved yet. It may differ from the in-memory model while
// a save is in flight or after a failed load.
func (c *Classifier) StoredArtifact() (*storage.Metadata, error) {
	meta, err := c.store.Metadata()
	if errors.Is(err, storage.ErrArtifactNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewError(models.KindPersistence, "stored artifact", err)
	}
	return meta, nil
}

// Predict classifies a user from their interaction events.
func (c *Classifier) Predict(events []models.InteractionEvent) (*Inference, error) {
	return c.PredictVector(features.Build(events))
}

// PredictVector classifies a pre-built feature vector.
func (c *Classifier) PredictVector(v features.Vector) (*Inference, error) {
	a := c.current.Load()
	if a == nil {
		return nil, models.ErrNotTrained
	}
	if len(v) != len(a.FeatureNames) {
		return nil, models.Errorf(models.KindInvalidInput, "predict", "feature vector has %d values, want %d", len(v), len(a.FeatureNames))
	}

	proba := a.Forest.PredictProba(a.Scaler.Transform(v))
	best := argmax(proba)

	scores := make(map[string]float64, features.NumCategories)
	for _, cat := range features.Categories() {
		scores[cat] = 0
	}
	for k, cat := range a.Categories {
		scores[cat] = proba[k]
	}

	used := make(map[string]float64, len(v))
	for i, name := range a.FeatureNames {
		used[name] = v[i]
	}

	return &Inference{
		PrimaryInterest: a.Categories[best],
		InterestScores:  scores,
		Confidence:      proba[best],
		FeaturesUsed:    used,
	}, nil
}

// Status describes the artifact currently loaded in memory.
func (c *Classifier) Status() Status {
	a := c.current.Load()
	if a == nil {
		return Status{
			Trained:          false,
			Categories:       features.Categories(),
			FeatureNames:     features.Names(),
			ArtifactLocation: c.store.Path(),
		}
	}
	trainedAt := a.TrainedAt
	return Status{
		Trained:          true,
		ModelKind:        a.ModelKind,
		Version:          a.Version,
		Categories:       append([]string(nil), a.Categories...),
		FeatureNames:     append([]string(nil), a.FeatureNames...),
		ArtifactLocation: c.store.Path(),
		TrainedAt:        &trainedAt,
		Accuracy:         a.Accuracy,
		NumTrees:         len(a.Forest.Trees),
	}
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
